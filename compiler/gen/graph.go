package gen

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/syssam/xmlgen"
	"github.com/syssam/xmlgen/compiler/load"
)

// The following types and their exported methods are used by the emitters
// to generate the assets.
type (
	// Graph holds the resolved model of one schema document. It is built
	// once, validated, and never mutated by the emitters.
	Graph struct {
		*Config
		// Source is the schema document name as it was loaded.
		Source string
		// Nodes holds the nodes in document order.
		Nodes []*Type
	}

	// Type represents one node of the schema: a record type with its own
	// compound types and top-level vars.
	Type struct {
		// Name holds the node name.
		Name string
		// HasTypes reports if the node declared a <types> section.
		HasTypes bool
		// Types holds the compound types of the node, in document order.
		Types TypeSet
		// HasVars reports if the node declared a <vars> section.
		HasVars bool
		// Vars holds the top-level fields of the node, in document order.
		Vars []*Field
	}

	// TypeDef is a named compound type scoped to one node.
	TypeDef struct {
		// Name holds the type name.
		Name string
		// Owner is the node declaring the type.
		Owner *Type
		// Items holds the fields of the type, in document order.
		Items []*Field
	}

	// Field is an item of a compound type or a var of a node.
	Field struct {
		// Name is used both as the generated field name and as the
		// element/attribute name read back from data files.
		Name string
		// TypeName is the type reference as written in the schema.
		TypeName string
		// Ref is the resolved type reference.
		Ref TypeRef
		// Multi marks a repeated field, rendered as a sequence.
		Multi bool
		// Comment holds the optional description.
		Comment string
	}
)

// NewGraph validates the schema and resolves every type reference. The
// returned graph is complete: no resolution happens during emission.
func NewGraph(c *Config, s *load.Schema) (*Graph, error) {
	if c == nil {
		return nil, NewConfigError("Config", nil, "config cannot be nil")
	}
	if s == nil {
		return nil, NewConfigError("Schema", nil, "schema cannot be nil")
	}
	g := &Graph{Config: c, Source: s.Source, Nodes: make([]*Type, 0, len(s.Nodes))}
	for _, n := range s.Nodes {
		t, err := newType(n)
		if err != nil {
			return nil, err
		}
		g.Nodes = append(g.Nodes, t)
	}
	for i, t := range g.Nodes {
		if err := t.resolve(g, s.Nodes[i]); err != nil {
			return nil, err
		}
		if err := t.checkCycles(); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// newType creates a node and the shells of its compound types, so that
// items may reference types declared after them.
func newType(n *load.Node) (*Type, error) {
	if err := checkNodeName(n.Name); err != nil {
		return nil, err
	}
	t := &Type{
		Name:     n.Name,
		HasTypes: n.HasTypes,
		HasVars:  n.HasVars,
		Types:    make(TypeSet, 0, len(n.Types)),
		Vars:     make([]*Field, 0, len(n.Vars)),
	}
	for _, lt := range n.Types {
		if err := checkTypeName(n.Name, lt.Name); err != nil {
			return nil, err
		}
		t.Types = append(t.Types, &TypeDef{Name: lt.Name, Owner: t})
	}
	return t, nil
}

// resolve fills the items and vars of t from their loaded definitions.
func (t *Type) resolve(g *Graph, n *load.Node) error {
	for i, lt := range n.Types {
		td := t.Types[i]
		td.Items = make([]*Field, 0, len(lt.Items))
		for _, li := range lt.Items {
			if err := checkItemName(t.Name, t.Types, td.Name, li.Name); err != nil {
				return err
			}
			f, err := t.newField(g, scopeType(td.Name), li)
			if err != nil {
				return err
			}
			td.Items = append(td.Items, f)
		}
	}
	for _, lv := range n.Vars {
		if err := checkVarName(t.Name, t.Types, lv.Name); err != nil {
			return err
		}
		f, err := t.newField(g, scopeVars, lv)
		if err != nil {
			return err
		}
		t.Vars = append(t.Vars, f)
	}
	return nil
}

func (t *Type) newField(g *Graph, scope string, lf *load.Field) (*Field, error) {
	ref, err := Resolve(lf.Type, t.Types)
	if err != nil {
		var ut *xmlgen.UnknownTypeError
		if errors.As(err, &ut) {
			ut.Node, ut.Scope, ut.Field = t.Name, scope, lf.Name
			ut.Hint = g.crossNodeHint(t, lf.Type)
		}
		return nil, err
	}
	return &Field{
		Name:     lf.Name,
		TypeName: lf.Type,
		Ref:      ref,
		Multi:    lf.Multi,
		Comment:  lf.Comment,
	}, nil
}

// crossNodeHint explains an unknown reference that names a type of another
// node, or another node itself.
func (g *Graph) crossNodeHint(from *Type, ref string) string {
	for _, n := range g.Nodes {
		if n == from {
			continue
		}
		if n.Name == ref {
			return fmt.Sprintf("%q is a node; references across nodes are not supported", ref)
		}
		if _, ok := n.Types.Lookup(ref); ok {
			return fmt.Sprintf("declared in node %s; references across nodes are not supported", n.Name)
		}
	}
	return ""
}

// checkCycles fails if a compound type of t reaches itself through its items.
func (t *Type) checkCycles() error {
	const (
		visiting = iota + 1
		done
	)
	state := make(map[*TypeDef]int, len(t.Types))
	var path []string
	var visit func(*TypeDef) error
	visit = func(td *TypeDef) error {
		switch state[td] {
		case done:
			return nil
		case visiting:
			start := 0
			for i, name := range path {
				if name == td.Name {
					start = i
					break
				}
			}
			cycle := append(append([]string(nil), path[start:]...), td.Name)
			return &xmlgen.CyclicTypeReferenceError{Node: t.Name, Path: cycle}
		}
		state[td] = visiting
		path = append(path, td.Name)
		for _, f := range td.Items {
			if f.Ref.IsCompound() {
				if err := visit(f.Ref.Compound); err != nil {
					return err
				}
			}
		}
		path = path[:len(path)-1]
		state[td] = done
		return nil
	}
	for _, td := range t.Types {
		if err := visit(td); err != nil {
			return err
		}
	}
	return nil
}

// Base returns the lower-cased base name of the schema, without extension.
func (g *Graph) Base() string {
	base := filepath.Base(g.Source)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.ToLower(base)
}

// SourceName returns the file name of the schema for output banners.
func (g *Graph) SourceName() string {
	return filepath.Base(g.Source)
}

// Filename returns the name of an output file with the given extension,
// e.g. "genConfig.h" for ".h".
func (g *Graph) Filename(ext string) string {
	return g.Base() + g.suffix() + ext
}

// GoFilename returns the name of the Go loader file.
func (g *Graph) GoFilename() string {
	return g.Base() + strings.ToLower(g.suffix()) + ".go"
}

func (g *Graph) suffix() string {
	if g.Config == nil || g.Suffix == "" {
		return DefaultSuffix
	}
	return g.Suffix
}

// LoaderName returns the name of the Lua loader function of the node.
func (t Type) LoaderName() string {
	return "load" + t.Name + "Config"
}

// LoadFunc returns the name of the load operation of the compound type.
func (td TypeDef) LoadFunc() string {
	return "load_" + td.Name
}

// HasCompound reports if any var of the node is of a compound type.
func (t Type) HasCompound() bool {
	for _, f := range t.Vars {
		if f.Ref.IsCompound() {
			return true
		}
	}
	return false
}
