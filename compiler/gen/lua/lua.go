// Package lua implements the Lua loader emitter.
//
// The generated script depends on the xmlSimple module and defines one
// global function per node:
//
//	local data, err = loadPlayerConfig("player.xml")
//
// On success the function returns a table holding every var of the node.
// On failure it returns nil and one of "parse failure", "missing root: <Node>"
// or "missing field: <name>".
package lua

import (
	"io"
	"strings"

	"github.com/syssam/xmlgen/compiler/gen"
	"github.com/syssam/xmlgen/compiler/gen/internal/printer"
	"github.com/syssam/xmlgen/schema/field"
)

// Emitter renders the Lua loader.
type Emitter struct{}

// New returns the Lua emitter.
func New() *Emitter { return &Emitter{} }

// Name implements gen.Emitter.
func (*Emitter) Name() string { return "lua" }

// Filename implements gen.Emitter.
func (*Emitter) Filename(g *gen.Graph) string { return g.Filename(".lua") }

// Emit implements gen.Emitter.
func (*Emitter) Emit(w io.Writer, g *gen.Graph) error {
	legacy, err := g.FeatureEnabled(gen.FeatureLegacyLuaBool.Name)
	if err != nil {
		return err
	}
	e := &emitter{p: printer.New("\t"), legacyBool: legacy}
	e.p.Line("-- " + g.Header)
	e.p.Line("-- source: " + g.SourceName())
	e.p.Blank()
	e.p.Line(`local xmlParser = require("xmlSimple")`)
	e.p.Blank()
	e.p.Line("local function findChild(xmlNode, name)")
	e.p.In()
	e.p.Block("for _, v in ipairs(xmlNode:children()) do", "end", func() {
		e.p.Block("if v:name() == name then", "end", func() {
			e.p.Line("return v")
		})
	})
	e.p.Line("return nil")
	e.p.Out()
	e.p.Line("end")
	for _, n := range g.Nodes {
		e.p.Blank()
		e.node(n)
	}
	_, err = e.p.WriteTo(w)
	return err
}

type emitter struct {
	p *printer.Printer
	// legacyBool assigns false to non-repeated bools in both branches.
	legacyBool bool
}

func (e *emitter) node(n *gen.Type) {
	p := e.p
	p.Linef("function %s(file)", n.LoaderName())
	p.In()
	if len(n.Types) > 0 {
		names := make([]string, len(n.Types))
		for i, td := range n.Types {
			names[i] = td.LoadFunc()
		}
		p.Line("local " + strings.Join(names, ", "))
		for _, td := range n.Types {
			p.Blank()
			e.loadType(td)
		}
		p.Blank()
	}
	p.Line("local xml = xmlParser:loadFile(file)")
	p.Block("if xml == nil then", "end", func() {
		p.Line(`return nil, "parse failure"`)
	})
	p.Linef(`local xmlNode = findChild(xml, "%s")`, n.Name)
	p.Block("if xmlNode == nil then", "end", func() {
		p.Linef(`return nil, "missing root: %s"`, n.Name)
	})
	p.Blank()
	p.Line("local configData = {}")
	for _, f := range n.Vars {
		e.read(f, "configData."+f.Name, "xmlNode")
	}
	p.Line("return configData")
	p.Out()
	p.Line("end")
}

// loadType defines the loader of a compound type. It returns the filled
// table, or nil and the failure reason.
func (e *emitter) loadType(td *gen.TypeDef) {
	p := e.p
	p.Linef("%s = function(xmlNode)", td.LoadFunc())
	p.In()
	p.Line("local item = {}")
	for _, f := range td.Items {
		if f.Multi || f.Ref.IsCompound() {
			e.read(f, "item."+f.Name, "xmlNode")
			continue
		}
		e.primitive(f.Ref.Primitive, "item."+f.Name, attr("xmlNode", f.Name), e.legacyBool)
	}
	p.Line("return item")
	p.Out()
	p.Line("end")
}

// read fills dst from the children of parent named after f. Repeated
// fields collect every matching child; others require exactly one.
func (e *emitter) read(f *gen.Field, dst, parent string) {
	p := e.p
	if f.Multi {
		p.Linef("%s = {}", dst)
		p.Block("for _, v in ipairs("+parent+":children()) do", "end", func() {
			p.Block(`if v:name() == "`+f.Name+`" then`, "end", func() {
				if f.Ref.IsPrimitive() {
					e.primitive(f.Ref.Primitive, "local item_", attr("v", f.Name), false)
				} else {
					e.compound(f.Ref.Compound, "local item_", "v")
				}
				p.Linef("table.insert(%s, item_)", dst)
			})
		})
		return
	}
	p.Block("do", "end", func() {
		p.Linef(`local node = findChild(%s, "%s")`, parent, f.Name)
		p.Block("if node == nil then", "end", func() {
			p.Linef(`return nil, "missing field: %s"`, f.Name)
		})
		if f.Ref.IsPrimitive() {
			e.primitive(f.Ref.Primitive, dst, attr("node", f.Name), e.legacyBool)
			return
		}
		e.compound(f.Ref.Compound, dst, "node")
	})
}

// primitive assigns the attribute expression src to dst. A dst starting
// with "local" declares a new variable.
func (e *emitter) primitive(t field.Type, dst, src string, legacy bool) {
	p := e.p
	switch t.LuaRead() {
	case field.LuaBool:
		p.Linef("%s = false", dst)
		name := strings.TrimPrefix(dst, "local ")
		set := "true"
		if legacy {
			set = "false"
		}
		p.Block("if "+src+` == "true" then`, "end", func() {
			p.Linef("%s = %s", name, set)
		})
	case field.LuaNumber:
		p.Linef("%s = tonumber(%s)", dst, src)
	default:
		p.Linef("%s = %s", dst, src)
	}
}

// compound loads the element el with the loader of td and assigns the
// result to dst, propagating failures.
func (e *emitter) compound(td *gen.TypeDef, dst, el string) {
	p := e.p
	name := strings.TrimPrefix(dst, "local ")
	if name == dst {
		p.Linef("local value, err = %s(%s)", td.LoadFunc(), el)
		p.Block("if value == nil then", "end", func() {
			p.Line("return nil, err")
		})
		p.Linef("%s = value", dst)
		return
	}
	p.Linef("local %s, err = %s(%s)", name, td.LoadFunc(), el)
	p.Block("if "+name+" == nil then", "end", func() {
		p.Line("return nil, err")
	})
}

// attr returns the xmlSimple attribute lookup of name on el.
func attr(el, name string) string {
	return el + `["@` + name + `"]`
}
