package cpp

import (
	"io"

	"github.com/syssam/xmlgen/compiler/gen"
	"github.com/syssam/xmlgen/compiler/gen/internal/printer"
)

// SourceEmitter renders the C++ loader source.
type SourceEmitter struct{}

// Source returns the loader emitter.
func Source() *SourceEmitter { return &SourceEmitter{} }

// Name implements gen.Emitter.
func (*SourceEmitter) Name() string { return "cpp/source" }

// Filename implements gen.Emitter.
func (*SourceEmitter) Filename(g *gen.Graph) string { return g.Filename(".cpp") }

// Emit implements gen.Emitter.
func (*SourceEmitter) Emit(w io.Writer, g *gen.Graph) error {
	p := printer.New("\t")
	for _, l := range banner(g) {
		p.Line(l)
	}
	p.Blank()
	p.Linef(`#include "%s"`, g.Filename(".h"))
	for _, n := range g.Nodes {
		genMembers(p, n)
		for _, td := range n.Types {
			p.Blank()
			genLoadType(p, n, td)
		}
		p.Blank()
		genLoadConfig(p, n)
	}
	_, err := p.WriteTo(w)
	return err
}

// genMembers defines the constructor, destructor and status accessors.
func genMembers(p *printer.Printer, n *gen.Type) {
	p.Blank()
	p.Linef("%s::%s()", n.Name, n.Name)
	p.Line("{")
	p.Line("}")
	p.Blank()
	p.Linef("%s::~%s()", n.Name, n.Name)
	p.Line("{")
	p.Line("}")
	p.Blank()
	p.Linef("%s %s::status() const", statusType, n.Name)
	p.Block("{", "}", func() {
		p.Line("return m_status;")
	})
	p.Blank()
	p.Linef("const std::string& %s::failedField() const", n.Name)
	p.Block("{", "}", func() {
		p.Line("return m_failedField;")
	})
	p.Blank()
	p.Linef("bool %s::missingField(const char* name)", n.Name)
	p.Block("{", "}", func() {
		p.Linef("m_status = %s;", statusField)
		p.Line("m_failedField = name;")
		p.Line("return false;")
	})
}

// genLoadType defines load_<T>, which fills item from the attributes and
// children of node.
func genLoadType(p *printer.Printer, n *gen.Type, td *gen.TypeDef) {
	p.Linef("bool %s::%s(%s& item, const %s& node)", n.Name, td.LoadFunc(), td.Name, nodeType)
	p.Block("{", "}", func() {
		for _, f := range td.Items {
			genRead(p, f, "item."+f.Name, "node")
		}
		p.Line("return true;")
	})
}

// genLoadConfig defines loadConfigData, the entry point of the node.
func genLoadConfig(p *printer.Printer, n *gen.Type) {
	p.Linef("bool %s::loadConfigData(const std::string& fname)", n.Name)
	p.Block("{", "}", func() {
		p.Linef("m_status = %s;", statusOK)
		p.Line("m_failedField.clear();")
		p.Blank()
		p.Line("pugi::xml_document doc;")
		p.Block("if (!doc.load_file(fname.c_str())) {", "}", func() {
			p.Linef("m_status = %s;", statusParse)
			p.Line("return false;")
		})
		p.Linef(`%s root = doc.child("%s");`, nodeType, n.Name)
		p.Block("if (!root) {", "}", func() {
			p.Linef("m_status = %s;", statusRoot)
			p.Line("return false;")
		})
		for _, f := range n.Vars {
			genVar(p, f)
		}
		p.Line("return true;")
	})
}

// genVar reads one top-level var from the child of root named after it.
func genVar(p *printer.Printer, f *gen.Field) {
	dst := "this->" + f.Name
	if f.Multi {
		p.Linef("%s.clear();", dst)
		p.Block(`for (`+nodeType+` node : root.children("`+f.Name+`")) {`, "}", func() {
			genAppend(p, f, dst, "node")
		})
		return
	}
	p.Block("{", "}", func() {
		p.Linef(`%s node = root.child("%s");`, nodeType, f.Name)
		p.Block("if (!node) {", "}", func() {
			p.Linef(`return missingField("%s");`, f.Name)
		})
		if f.Ref.IsPrimitive() {
			p.Linef(`%s = node.attribute("%s").%s();`, dst, f.Name, f.Ref.Primitive.Accessor())
			return
		}
		p.Block("if (!"+f.Ref.Compound.LoadFunc()+"("+dst+", node)) {", "}", func() {
			p.Line("return false;")
		})
	})
}

// genRead reads item f of a compound type. Non-repeated primitives are
// attributes of node, everything else is read from child elements.
func genRead(p *printer.Printer, f *gen.Field, dst, node string) {
	switch {
	case f.Multi:
		p.Linef("%s.clear();", dst)
		p.Block(`for (`+nodeType+` itemNode : `+node+`.children("`+f.Name+`")) {`, "}", func() {
			genAppend(p, f, dst, "itemNode")
		})
	case f.Ref.IsPrimitive():
		p.Linef(`%s = %s.attribute("%s").%s();`, dst, node, f.Name, f.Ref.Primitive.Accessor())
	default:
		p.Block("{", "}", func() {
			p.Linef(`%s child = %s.child("%s");`, nodeType, node, f.Name)
			p.Block("if (!child) {", "}", func() {
				p.Linef(`return missingField("%s");`, f.Name)
			})
			p.Block("if (!"+f.Ref.Compound.LoadFunc()+"("+dst+", child)) {", "}", func() {
				p.Line("return false;")
			})
		})
	}
}

// genAppend reads one element of a repeated field from el and appends it
// to dst.
func genAppend(p *printer.Printer, f *gen.Field, dst, el string) {
	if f.Ref.IsPrimitive() {
		p.Linef(`%s item_ = %s.attribute("%s").%s();`, f.Ref.Primitive.CppType(), el, f.Name, f.Ref.Primitive.Accessor())
	} else {
		p.Linef("%s item_;", f.Ref.Compound.Name)
		p.Block("if (!"+f.Ref.Compound.LoadFunc()+"(item_, "+el+")) {", "}", func() {
			p.Line("return false;")
		})
	}
	p.Linef("%s.push_back(item_);", dst)
}
