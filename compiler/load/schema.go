package load

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/beevik/etree"

	"github.com/syssam/xmlgen"
)

// Schema represents a schema document that was read from an XML source.
type Schema struct {
	// Source is the name of the document, usually its file path.
	Source string  `json:"source,omitempty"`
	Nodes  []*Node `json:"nodes,omitempty"`
}

// Node represents one top-level element of the schema document.
type Node struct {
	Name string `json:"name,omitempty"`
	// HasTypes reports if the <types> section was present, even if empty.
	HasTypes bool    `json:"has_types,omitempty"`
	Types    []*Type `json:"types,omitempty"`
	// HasVars reports if the <vars> section was present, even if empty.
	HasVars bool     `json:"has_vars,omitempty"`
	Vars    []*Field `json:"vars,omitempty"`
}

// Type represents a <type> element: a node-scoped compound type.
type Type struct {
	Name  string   `json:"name,omitempty"`
	Items []*Field `json:"items,omitempty"`
}

// Field represents an <item> or a <var> element.
type Field struct {
	Name string `json:"name,omitempty"`
	// Type is the unresolved type reference, as written in the schema.
	Type    string `json:"type,omitempty"`
	Multi   bool   `json:"multi,omitempty"`
	Comment string `json:"comment,omitempty"`
}

// Schema element and attribute names.
const (
	tagTypes = "types"
	tagType  = "type"
	tagItem  = "item"
	tagVars  = "vars"
	tagVar   = "var"

	attrName  = "name"
	attrType  = "type"
	attrMulti = "multi"
	attrDes   = "des"
)

// Load reads and builds the schema stored in the given file.
func Load(path string) (*Schema, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, xmlgen.NewMalformedSchemaError(path, err)
	}
	return ParseBytes(buf, path)
}

// ParseBytes builds a schema from an in-memory document.
func ParseBytes(buf []byte, source string) (*Schema, error) {
	return Parse(bytes.NewReader(buf), source)
}

// Parse builds a schema from r. Top-level elements become nodes in document
// order. Type references are kept as written; they are resolved when the
// graph is built.
func Parse(r io.Reader, source string) (*Schema, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, xmlgen.NewMalformedSchemaError(source, err)
	}
	if doc.Root() == nil && hasText(doc) {
		return nil, xmlgen.NewMalformedSchemaError(source, errNoRoot)
	}
	s := &Schema{Source: source}
	seen := make(map[string]struct{})
	for _, el := range doc.ChildElements() {
		if _, ok := seen[el.Tag]; ok {
			return nil, xmlgen.NewDuplicateIdentifierError("", "document", el.Tag)
		}
		seen[el.Tag] = struct{}{}
		n, err := newNode(el)
		if err != nil {
			return nil, err
		}
		s.Nodes = append(s.Nodes, n)
	}
	return s, nil
}

var errNoRoot = errors.New("text outside of any element and no root element")

// hasText reports whether the document holds character data outside the
// prolog whitespace.
func hasText(doc *etree.Document) bool {
	for _, tok := range doc.Child {
		if cd, ok := tok.(*etree.CharData); ok && strings.TrimSpace(cd.Data) != "" {
			return true
		}
	}
	return false
}

func newNode(el *etree.Element) (*Node, error) {
	n := &Node{Name: el.Tag}
	if types := el.SelectElement(tagTypes); types != nil {
		n.HasTypes = true
		seen := make(map[string]struct{})
		for _, te := range types.SelectElements(tagType) {
			t := &Type{Name: te.SelectAttrValue(attrName, "")}
			if _, ok := seen[t.Name]; ok {
				return nil, xmlgen.NewDuplicateIdentifierError(n.Name, tagTypes, t.Name)
			}
			seen[t.Name] = struct{}{}
			items, err := fields(n.Name, "type "+t.Name, te.SelectElements(tagItem))
			if err != nil {
				return nil, err
			}
			t.Items = items
			n.Types = append(n.Types, t)
		}
	}
	if vars := el.SelectElement(tagVars); vars != nil {
		n.HasVars = true
		fs, err := fields(n.Name, tagVars, vars.SelectElements(tagVar))
		if err != nil {
			return nil, err
		}
		n.Vars = fs
	}
	return n, nil
}

// fields reads a sibling list of <item> or <var> elements.
func fields(node, scope string, els []*etree.Element) ([]*Field, error) {
	fs := make([]*Field, 0, len(els))
	seen := make(map[string]struct{}, len(els))
	for _, el := range els {
		f := &Field{
			Name:    el.SelectAttrValue(attrName, ""),
			Type:    el.SelectAttrValue(attrType, ""),
			Multi:   parseBool(el.SelectAttrValue(attrMulti, "")),
			Comment: el.SelectAttrValue(attrDes, ""),
		}
		if _, ok := seen[f.Name]; ok {
			return nil, xmlgen.NewDuplicateIdentifierError(node, scope, f.Name)
		}
		seen[f.Name] = struct{}{}
		fs = append(fs, f)
	}
	return fs, nil
}

// parseBool follows the pugixml as_bool rule: the value is true if its first
// character is one of "1tTyY".
func parseBool(s string) bool {
	if s == "" {
		return false
	}
	switch s[0] {
	case '1', 't', 'T', 'y', 'Y':
		return true
	}
	return false
}

// String implements fmt.Stringer for debugging.
func (f *Field) String() string {
	if f.Multi {
		return fmt.Sprintf("%s []%s", f.Name, f.Type)
	}
	return fmt.Sprintf("%s %s", f.Name, f.Type)
}
