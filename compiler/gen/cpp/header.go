package cpp

import (
	"io"

	"github.com/syssam/xmlgen/compiler/gen"
	"github.com/syssam/xmlgen/compiler/gen/internal/printer"
)

// HeaderEmitter renders the C++ declaration file.
type HeaderEmitter struct{}

// Header returns the declaration emitter.
func Header() *HeaderEmitter { return &HeaderEmitter{} }

// Name implements gen.Emitter.
func (*HeaderEmitter) Name() string { return "cpp/header" }

// Filename implements gen.Emitter.
func (*HeaderEmitter) Filename(g *gen.Graph) string { return g.Filename(".h") }

// Emit implements gen.Emitter.
func (*HeaderEmitter) Emit(w io.Writer, g *gen.Graph) error {
	p := printer.New("\t")
	for _, l := range banner(g) {
		p.Line(l)
	}
	p.Blank()
	hg := guard(g)
	p.Linef("#ifndef %s", hg)
	p.Linef("#define %s", hg)
	p.Blank()
	p.Line("#include <cstdint>")
	p.Line("#include <string>")
	p.Line("#include <vector>")
	p.Blank()
	p.Line(`#include "pugixml.hpp"`)
	p.Blank()
	genStatus(p)
	for _, n := range g.Nodes {
		p.Blank()
		genClass(p, g, n)
	}
	p.Blank()
	p.Linef("#endif // %s", hg)
	_, err := p.WriteTo(w)
	return err
}

// genStatus declares the status enum. It is guarded so that several
// generated headers can be included in one translation unit.
func genStatus(p *printer.Printer) {
	p.Linef("#ifndef %s", statusGuard)
	p.Linef("#define %s", statusGuard)
	p.Block("enum "+statusType+" {", "};", func() {
		p.Linef("%s = 0,", statusOK)
		p.Linef("%s,", statusParse)
		p.Linef("%s,", statusRoot)
		p.Linef("%s,", statusField)
	})
	p.Linef("#endif // %s", statusGuard)
}

func genClass(p *printer.Printer, g *gen.Graph, n *gen.Type) {
	p.Linef("class %s {", n.Name)
	p.Line("public:")
	p.In()
	p.Linef("%s();", n.Name)
	p.Linef("~%s();", n.Name)
	p.Blank()
	p.Line("bool loadConfigData(const std::string& fname);")
	p.Linef("%s status() const;", statusType)
	p.Line("const std::string& failedField() const;")
	p.Out()
	if n.HasTypes && len(n.Types) > 0 {
		p.Blank()
		p.Line("public:")
		p.In()
		// Items are held by value, so a struct is declared after its items' types.
		for i, td := range n.Types.Sorted() {
			if i > 0 {
				p.Blank()
			}
			p.Block("struct "+td.Name+" {", "};", func() {
				for _, f := range td.Items {
					p.Linef("%s %s;%s", fieldType(f), f.Name, trailing(g, f.Comment))
				}
			})
		}
		p.Out()
	}
	p.Blank()
	p.Line("private:")
	p.In()
	for _, td := range n.Types {
		p.Linef("bool %s(%s& item, const %s& node);", td.LoadFunc(), td.Name, nodeType)
	}
	p.Line("bool missingField(const char* name);")
	p.Out()
	if len(n.Vars) > 0 {
		p.Blank()
		p.Line("public:")
		p.In()
		for _, f := range n.Vars {
			p.Linef("%s %s;%s", fieldType(f), f.Name, trailing(g, f.Comment))
		}
		p.Out()
	}
	p.Blank()
	p.Line("private:")
	p.In()
	p.Linef("%s m_status = %s;", statusType, statusOK)
	p.Line("std::string m_failedField;")
	p.Out()
	p.Line("};")
}
