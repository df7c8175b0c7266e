// Package xmltmpl implements the data template emitter.
//
// The template is an XML document with the exact shape the generated loaders
// read: one element per node, one child element per var, and every
// primitive slot rendered as an attribute whose value is the canonical type
// name. Repeated slots are preceded by a <!--multi--> marker.
//
// For the schema
//
//	<Player>
//		<types>
//			<type name="Item">
//				<item name="id" type="uint"/>
//				<item name="tags" type="string" multi="true"/>
//			</type>
//		</types>
//		<vars>
//			<var name="age" type="int"/>
//			<var name="inventory" type="Item"/>
//		</vars>
//	</Player>
//
// the emitter produces
//
//	<?xml version="1.0" encoding="utf-8"?>
//	<Player>
//		<age age="int"/>
//		<inventory id="uint">
//			<!--multi-->
//			<tags tags="string"/>
//		</inventory>
//	</Player>
package xmltmpl

import (
	"bytes"
	"io"
	"slices"

	"github.com/beevik/etree"

	"github.com/syssam/xmlgen"
	"github.com/syssam/xmlgen/compiler/gen"
)

// multiMarker is the comment placed before every repeated slot.
const multiMarker = "multi"

// Emitter renders the XML data template.
type Emitter struct{}

// New returns the template emitter.
func New() *Emitter { return &Emitter{} }

// Name implements gen.Emitter.
func (*Emitter) Name() string { return "xmltmpl" }

// Filename implements gen.Emitter.
func (*Emitter) Filename(g *gen.Graph) string { return g.Filename(".xml") }

// Emit implements gen.Emitter.
func (*Emitter) Emit(w io.Writer, g *gen.Graph) error {
	doc, err := Document(g)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return err
	}
	out := append(bytes.TrimRight(buf.Bytes(), "\n"), '\n')
	_, err = w.Write(out)
	return err
}

// Document builds the indented template document of g.
func Document(g *gen.Graph) (*etree.Document, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)
	for _, n := range g.Nodes {
		root := doc.CreateElement(n.Name)
		for _, v := range n.Vars {
			if v.Multi {
				root.CreateComment(multiMarker)
			}
			el := root.CreateElement(v.Name)
			if v.Ref.IsPrimitive() {
				el.CreateAttr(v.Name, v.Ref.Primitive.String())
				continue
			}
			if err := expand(el, n, v.Ref.Compound, nil); err != nil {
				return nil, err
			}
		}
	}
	doc.IndentTabs()
	return doc, nil
}

// expand writes the items of td into el. path holds the types being
// expanded, and re-entering one of them fails.
func expand(el *etree.Element, n *gen.Type, td *gen.TypeDef, path []string) error {
	if i := slices.Index(path, td.Name); i >= 0 {
		return &xmlgen.CyclicTypeReferenceError{Node: n.Name, Path: append(slices.Clone(path[i:]), td.Name)}
	}
	path = append(path, td.Name)
	for _, it := range td.Items {
		switch {
		case it.Multi:
			el.CreateComment(multiMarker)
			child := el.CreateElement(it.Name)
			if it.Ref.IsPrimitive() {
				child.CreateAttr(it.Name, it.Ref.Primitive.String())
			} else if err := expand(child, n, it.Ref.Compound, path); err != nil {
				return err
			}
		case it.Ref.IsPrimitive():
			el.CreateAttr(it.Name, it.Ref.Primitive.String())
		default:
			if err := expand(el.CreateElement(it.Name), n, it.Ref.Compound, path); err != nil {
				return err
			}
		}
	}
	return nil
}
