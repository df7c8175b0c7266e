// Package golang implements the Go loader emitter, enabled with the
// "golang" feature.
//
// The generated file declares one struct per node and one per compound
// type, and reads data files with github.com/beevik/etree:
//
//	var cfg config.Player
//	if err := cfg.Load("player.xml"); err != nil {
//	    var missing *config.MissingFieldError
//	    if errors.As(err, &missing) {
//	        ...
//	    }
//	}
//
// Attribute conversions are lenient: a missing or malformed number reads as
// zero and a bool is true when its first character is one of "1tTyY".
package golang

import (
	"fmt"
	"io"
	"strings"

	"github.com/dave/jennifer/jen"
	"github.com/go-openapi/inflect"

	"github.com/syssam/xmlgen/compiler/gen"
	"github.com/syssam/xmlgen/schema/field"
)

const etreePkg = "github.com/beevik/etree"

// Emitter renders the Go loader.
type Emitter struct{}

// New returns the Go loader emitter.
func New() *Emitter { return &Emitter{} }

// Name implements gen.Emitter.
func (*Emitter) Name() string { return "golang" }

// Filename implements gen.Emitter.
func (*Emitter) Filename(g *gen.Graph) string { return g.GoFilename() }

// Emit implements gen.Emitter.
func (*Emitter) Emit(w io.Writer, g *gen.Graph) error {
	f, err := File(g)
	if err != nil {
		return err
	}
	return f.Render(w)
}

// File builds the jennifer file of the Go loader.
func File(g *gen.Graph) (*jen.File, error) {
	names, err := newNamer(g)
	if err != nil {
		return nil, err
	}
	pkg := g.GoPackage
	if pkg == "" {
		pkg = gen.DefaultGoPackage
	}
	f := jen.NewFile(pkg)
	f.HeaderComment(gen.GoHeader)
	f.ImportName(etreePkg, "etree")
	genErrors(f, pkg)
	for _, n := range g.Nodes {
		for _, td := range n.Types {
			genTypeDef(f, names, n, td)
		}
		genNode(f, names, n)
	}
	genHelpers(f)
	return f, nil
}

// namer maps schema identifiers to exported Go identifiers and rejects
// the schemas whose names collide once camel-cased.
type namer struct {
	types  map[*gen.TypeDef]string
	nodes  map[*gen.Type]string
	fields map[*gen.Field]string
}

// reserved top-level identifiers of the generated file.
var reserved = []string{"ErrParseFailure", "ErrMissingRoot", "MissingFieldError"}

// nodeMethods are declared on every node struct.
var nodeMethods = []string{"Load", "LoadReader"}

func newNamer(g *gen.Graph) (*namer, error) {
	nm := &namer{
		types:  make(map[*gen.TypeDef]string),
		nodes:  make(map[*gen.Type]string),
		fields: make(map[*gen.Field]string),
	}
	top := make(map[string]string)
	for _, r := range reserved {
		top[r] = "generated identifier " + r
	}
	declare := func(goName, what string) error {
		if prev, ok := top[goName]; ok {
			return collision(goName, what, prev)
		}
		top[goName] = what
		return nil
	}
	for _, n := range g.Nodes {
		name := inflect.Camelize(n.Name)
		if err := declare(name, "node "+n.Name); err != nil {
			return nil, err
		}
		nm.nodes[n] = name
		for _, td := range n.Types {
			tn := name + inflect.Camelize(td.Name)
			if err := declare(tn, "type "+td.Name+" of node "+n.Name); err != nil {
				return nil, err
			}
			nm.types[td] = tn
			if err := nm.declareFields(td.Items, "type "+td.Name+" of node "+n.Name, nil); err != nil {
				return nil, err
			}
		}
		if err := nm.declareFields(n.Vars, "node "+n.Name, nodeMethods); err != nil {
			return nil, err
		}
	}
	return nm, nil
}

func (nm *namer) declareFields(fs []*gen.Field, owner string, methods []string) error {
	seen := make(map[string]string, len(fs)+len(methods))
	for _, m := range methods {
		seen[m] = "method " + m
	}
	for _, f := range fs {
		name := inflect.Camelize(f.Name)
		if prev, ok := seen[name]; ok {
			return collision(name, "field "+f.Name+" of "+owner, prev)
		}
		seen[name] = "field " + f.Name
		nm.fields[f] = name
	}
	return nil
}

func collision(goName, what, prev string) error {
	return gen.NewGenerationError("golang", "", fmt.Sprintf("Go name %s of %s collides with %s", goName, what, prev), nil)
}

// typeOf returns the Go type of one element of f.
func (nm *namer) typeOf(f *gen.Field) jen.Code {
	if f.Ref.IsCompound() {
		return jen.Id(nm.types[f.Ref.Compound])
	}
	return jen.Id(f.Ref.Primitive.GoType())
}

// fieldType returns the declared Go type of f.
func (nm *namer) fieldType(f *gen.Field) jen.Code {
	if f.Multi {
		return jen.Index().Add(nm.typeOf(f))
	}
	return nm.typeOf(f)
}

// fieldDecl declares f inside a struct.
func (nm *namer) fieldDecl(f *gen.Field) jen.Code {
	s := jen.Id(nm.fields[f]).Add(nm.fieldType(f))
	if des := strings.Join(strings.Fields(f.Comment), " "); des != "" {
		s.Comment(des)
	}
	return s
}

func genErrors(f *jen.File, pkg string) {
	f.Var().Defs(
		jen.Comment("ErrParseFailure is returned when a data file cannot be read or parsed."),
		jen.Id("ErrParseFailure").Op("=").Qual("errors", "New").Call(jen.Lit(pkg+": parse failure")),
		jen.Comment("ErrMissingRoot is returned when a data file has no element named after the node."),
		jen.Id("ErrMissingRoot").Op("=").Qual("errors", "New").Call(jen.Lit(pkg+": missing root")),
	)
	f.Comment("MissingFieldError is returned when a required element is absent.")
	f.Type().Id("MissingFieldError").Struct(
		jen.Id("Name").String(),
	)
	f.Func().Params(jen.Id("e").Op("*").Id("MissingFieldError")).Id("Error").Params().String().Block(
		jen.Return(jen.Lit(pkg + ": missing field: ").Op("+").Id("e").Dot("Name")),
	)
}

func genTypeDef(f *jen.File, nm *namer, n *gen.Type, td *gen.TypeDef) {
	name := nm.types[td]
	fields := make([]jen.Code, 0, len(td.Items))
	for _, it := range td.Items {
		fields = append(fields, nm.fieldDecl(it))
	}
	f.Commentf("%s is the %s type of node %s.", name, td.Name, n.Name)
	f.Type().Id(name).Struct(fields...)

	body := make([]jen.Code, 0, len(td.Items)+1)
	for _, it := range td.Items {
		body = append(body, nm.readItem(it)...)
	}
	body = append(body, jen.Return(jen.Nil()))
	f.Func().Params(jen.Id("x").Op("*").Id(name)).Id("load").
		Params(jen.Id("el").Op("*").Qual(etreePkg, "Element")).Error().
		Block(body...)
}

// readItem reads item f of a compound type from el. Non-repeated
// primitives are attributes of el, everything else is read from child
// elements.
func (nm *namer) readItem(f *gen.Field) []jen.Code {
	dst := jen.Id("x").Dot(nm.fields[f])
	switch {
	case f.Multi:
		return nm.readMulti(f, dst, "el")
	case f.Ref.IsPrimitive():
		return []jen.Code{dst.Op("=").Add(read(f.Ref.Primitive, jen.Id("el"), f.Name))}
	default:
		return []jen.Code{nm.readChild(f, dst, "el")}
	}
}

// readMulti collects every child of parent named after f.
func (nm *namer) readMulti(f *gen.Field, dst *jen.Statement, parent string) []jen.Code {
	var loop []jen.Code
	if f.Ref.IsPrimitive() {
		loop = []jen.Code{
			dst.Clone().Op("=").Append(dst.Clone(), read(f.Ref.Primitive, jen.Id("child"), f.Name)),
		}
	} else {
		loop = []jen.Code{
			jen.Var().Id("v").Add(nm.typeOf(f)),
			jen.If(jen.Err().Op(":=").Id("v").Dot("load").Call(jen.Id("child")), jen.Err().Op("!=").Nil()).Block(
				jen.Return(jen.Err()),
			),
			dst.Clone().Op("=").Append(dst.Clone(), jen.Id("v")),
		}
	}
	return []jen.Code{
		dst.Clone().Op("=").Nil(),
		jen.For(jen.List(jen.Id("_"), jen.Id("child")).Op(":=").Range().Id(parent).Dot("SelectElements").Call(jen.Lit(f.Name))).Block(loop...),
	}
}

// readChild reads the required child of parent named after f.
func (nm *namer) readChild(f *gen.Field, dst *jen.Statement, parent string) jen.Code {
	stmts := []jen.Code{
		jen.Id("child").Op(":=").Id(parent).Dot("SelectElement").Call(jen.Lit(f.Name)),
		jen.If(jen.Id("child").Op("==").Nil()).Block(
			jen.Return(jen.Op("&").Id("MissingFieldError").Values(jen.Dict{jen.Id("Name"): jen.Lit(f.Name)})),
		),
	}
	if f.Ref.IsPrimitive() {
		stmts = append(stmts, dst.Op("=").Add(read(f.Ref.Primitive, jen.Id("child"), f.Name)))
	} else {
		stmts = append(stmts, jen.If(jen.Err().Op(":=").Add(dst).Dot("load").Call(jen.Id("child")), jen.Err().Op("!=").Nil()).Block(
			jen.Return(jen.Err()),
		))
	}
	return jen.Block(stmts...)
}

func genNode(f *jen.File, nm *namer, n *gen.Type) {
	name := nm.nodes[n]
	fields := make([]jen.Code, 0, len(n.Vars))
	for _, v := range n.Vars {
		fields = append(fields, nm.fieldDecl(v))
	}
	f.Commentf("%s holds the data of the %s node.", name, n.Name)
	f.Type().Id(name).Struct(fields...)

	recv := jen.Id("x").Op("*").Id(name)
	f.Comment("Load reads the data file at path.")
	f.Func().Params(recv.Clone()).Id("Load").Params(jen.Id("path").String()).Error().Block(
		jen.List(jen.Id("f"), jen.Err()).Op(":=").Qual("os", "Open").Call(jen.Id("path")),
		jen.If(jen.Err().Op("!=").Nil()).Block(
			jen.Return(jen.Qual("fmt", "Errorf").Call(jen.Lit("%w: %w"), jen.Id("ErrParseFailure"), jen.Err())),
		),
		jen.Defer().Id("f").Dot("Close").Call(),
		jen.Return(jen.Id("x").Dot("LoadReader").Call(jen.Id("f"))),
	)

	body := []jen.Code{
		jen.Id("doc").Op(":=").Qual(etreePkg, "NewDocument").Call(),
		jen.If(jen.List(jen.Id("_"), jen.Err()).Op(":=").Id("doc").Dot("ReadFrom").Call(jen.Id("r")), jen.Err().Op("!=").Nil()).Block(
			jen.Return(jen.Qual("fmt", "Errorf").Call(jen.Lit("%w: %w"), jen.Id("ErrParseFailure"), jen.Err())),
		),
		jen.Id("root").Op(":=").Id("doc").Dot("SelectElement").Call(jen.Lit(n.Name)),
		jen.If(jen.Id("root").Op("==").Nil()).Block(
			jen.Return(jen.Qual("fmt", "Errorf").Call(jen.Lit("%w: %s"), jen.Id("ErrMissingRoot"), jen.Lit(n.Name))),
		),
	}
	for _, v := range n.Vars {
		dst := jen.Id("x").Dot(nm.fields[v])
		if v.Multi {
			body = append(body, nm.readMulti(v, dst, "root")...)
			continue
		}
		body = append(body, nm.readChild(v, dst, "root"))
	}
	body = append(body, jen.Return(jen.Nil()))
	f.Comment("LoadReader reads a data file from r.")
	f.Func().Params(recv.Clone()).Id("LoadReader").Params(jen.Id("r").Qual("io", "Reader")).Error().Block(body...)
}

// read returns the conversion of attribute name of el to t.
func read(t field.Type, el jen.Code, name string) jen.Code {
	switch {
	case t == field.TypeString:
		return jen.Id("attrString").Call(el, jen.Lit(name))
	case t == field.TypeBool:
		return jen.Id("attrBool").Call(el, jen.Lit(name))
	case t.Float():
		return jen.Id(t.GoType()).Call(jen.Id("attrFloat").Call(el, jen.Lit(name), jen.Lit(t.Bits())))
	case t.Unsigned():
		return jen.Id(t.GoType()).Call(jen.Id("attrUint").Call(el, jen.Lit(name), jen.Lit(t.Bits())))
	default:
		return jen.Id(t.GoType()).Call(jen.Id("attrInt").Call(el, jen.Lit(name), jen.Lit(t.Bits())))
	}
}

// genHelpers declares the attribute conversions used by the loaders.
func genHelpers(f *jen.File) {
	el := func() *jen.Statement { return jen.Id("el").Op("*").Qual(etreePkg, "Element") }
	value := func() *jen.Statement {
		return jen.Qual("strings", "TrimSpace").Call(jen.Id("el").Dot("SelectAttrValue").Call(jen.Id("name"), jen.Lit("")))
	}
	f.Func().Id("attrString").Params(el(), jen.Id("name").String()).String().Block(
		jen.Return(jen.Id("el").Dot("SelectAttrValue").Call(jen.Id("name"), jen.Lit(""))),
	)
	f.Func().Id("attrBool").Params(el(), jen.Id("name").String()).Bool().Block(
		jen.Id("s").Op(":=").Add(value()),
		jen.Return(jen.Id("s").Op("!=").Lit("").Op("&&").Qual("strings", "ContainsRune").Call(jen.Lit("1tTyY"), jen.Rune().Call(jen.Id("s").Index(jen.Lit(0))))),
	)
	parse := []struct {
		name, fn string
		typ      *jen.Statement
		base     bool
	}{
		{"attrInt", "ParseInt", jen.Int64(), true},
		{"attrUint", "ParseUint", jen.Uint64(), true},
		{"attrFloat", "ParseFloat", jen.Float64(), false},
	}
	for _, p := range parse {
		args := []jen.Code{value()}
		if p.base {
			args = append(args, jen.Lit(0))
		}
		args = append(args, jen.Id("bits"))
		f.Func().Id(p.name).Params(el(), jen.Id("name").String(), jen.Id("bits").Int()).Add(p.typ).Block(
			jen.List(jen.Id("v"), jen.Err()).Op(":=").Qual("strconv", p.fn).Call(args...),
			jen.If(jen.Err().Op("!=").Nil()).Block(
				jen.Return(jen.Lit(0)),
			),
			jen.Return(jen.Id("v")),
		)
	}
}
