package golang

import (
	"bytes"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/xmlgen/compiler/gen"
)

// parse parses the generated source and fails the test on syntax errors.
func parse(t *testing.T, src string) *ast.File {
	t.Helper()
	f, err := parser.ParseFile(token.NewFileSet(), "genconfig.go", src, parser.ParseComments)
	require.NoError(t, err)
	return f
}

// structFields returns the "Name Type" pairs of the struct declared as name.
func structFields(t *testing.T, f *ast.File, name string) []string {
	t.Helper()
	for _, decl := range f.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}
		for _, spec := range gd.Specs {
			ts := spec.(*ast.TypeSpec)
			if ts.Name.Name != name {
				continue
			}
			st, ok := ts.Type.(*ast.StructType)
			require.True(t, ok, "%s is not a struct", name)
			var fields []string
			for _, fd := range st.Fields.List {
				for _, n := range fd.Names {
					fields = append(fields, n.Name+" "+types.ExprString(fd.Type))
				}
			}
			return fields
		}
	}
	t.Fatalf("struct %s not found", name)
	return nil
}

// methods returns the receiver.Method names declared in f.
func methods(f *ast.File) []string {
	var names []string
	for _, decl := range f.Decls {
		fd, ok := decl.(*ast.FuncDecl)
		if !ok || fd.Recv == nil {
			continue
		}
		recv := types.ExprString(fd.Recv.List[0].Type)
		names = append(names, strings.TrimPrefix(recv, "*")+"."+fd.Name.Name)
	}
	return names
}

func TestEmitter_Names(t *testing.T) {
	g := newTestGraph(t, `<A/>`)
	var e gen.Emitter = New()
	assert.Equal(t, "golang", e.Name())
	assert.Equal(t, "genconfig.go", e.Filename(g))
}

func TestEmit_Player(t *testing.T) {
	out := emit(t, New(), newTestGraph(t, playerDoc))
	assert.True(t, strings.HasPrefix(out, "// Code generated by xmlgen. DO NOT EDIT.\n\npackage config\n"))

	f := parse(t, out)
	assert.Equal(t, "config", f.Name.Name)
	var imports []string
	for _, imp := range f.Imports {
		imports = append(imports, imp.Path.Value)
	}
	assert.ElementsMatch(t, []string{`"errors"`, `"fmt"`, `"io"`, `"os"`, `"strconv"`, `"strings"`, `"github.com/beevik/etree"`}, imports)

	assert.Equal(t, []string{"Age int", "Inventory PlayerItem"}, structFields(t, f, "Player"))
	assert.Equal(t, []string{"Id uint", "Tags []string"}, structFields(t, f, "PlayerItem"))
	assert.Equal(t, []string{"Host string"}, structFields(t, f, "Server"))
	assert.Equal(t, []string{"Name string"}, structFields(t, f, "MissingFieldError"))
	assert.Equal(t, []string{
		"MissingFieldError.Error",
		"PlayerItem.load",
		"Player.Load",
		"Player.LoadReader",
		"Server.Load",
		"Server.LoadReader",
	}, methods(f))

	for _, s := range []string{
		`ErrParseFailure = errors.New("config: parse failure")`,
		`return "config: missing field: " + e.Name`,
		"func (x *Player) LoadReader(r io.Reader) error {\n",
		"\troot := doc.SelectElement(\"Player\")\n",
		"\t\treturn fmt.Errorf(\"%w: %s\", ErrMissingRoot, \"Player\")\n",
		"\t\tchild := root.SelectElement(\"age\")\n",
		"\t\t\treturn &MissingFieldError{Name: \"age\"}\n",
		"\t\tx.Age = int(attrInt(child, \"age\", 0))\n",
		"\t\tif err := x.Inventory.load(child); err != nil {\n",
		"\tx.Id = uint(attrUint(el, \"id\", 0))\n",
		"\tx.Tags = nil\n",
		"\tfor _, child := range el.SelectElements(\"tags\") {\n",
		"\t\tx.Tags = append(x.Tags, attrString(child, \"tags\"))\n",
		"\t\tx.Host = attrString(child, \"host\")\n",
		"// item id",
		"// bag",
	} {
		assert.Contains(t, out, s)
	}
}

func TestEmit_Conversions(t *testing.T) {
	g := newTestGraph(t, `
<Types>
	<types>
		<type name="R">
			<item name="a" type="int32"/>
			<item name="b" type="int64"/>
			<item name="c" type="uint32"/>
			<item name="d" type="uint64"/>
			<item name="e" type="float"/>
			<item name="f" type="double"/>
			<item name="g" type="bool"/>
		</type>
	</types>
</Types>`)
	out := emit(t, New(), g)
	parse(t, out)
	for _, s := range []string{
		`x.A = int32(attrInt(el, "a", 32))`,
		`x.B = int64(attrInt(el, "b", 64))`,
		`x.C = uint32(attrUint(el, "c", 32))`,
		`x.D = uint64(attrUint(el, "d", 64))`,
		`x.E = float32(attrFloat(el, "e", 32))`,
		`x.F = float64(attrFloat(el, "f", 64))`,
		`x.G = attrBool(el, "g")`,
		`strconv.ParseInt(strings.TrimSpace(el.SelectAttrValue(name, "")), 0, bits)`,
		`strconv.ParseFloat(strings.TrimSpace(el.SelectAttrValue(name, "")), bits)`,
		`strings.ContainsRune("1tTyY", rune(s[0]))`,
	} {
		assert.Contains(t, out, s)
	}
}

func TestEmit_Compound(t *testing.T) {
	g := newTestGraph(t, `
<Bag>
	<types>
		<type name="Slot"><item name="index" type="int"/></type>
		<type name="Item">
			<item name="main" type="Slot"/>
			<item name="spare" type="Slot" multi="true"/>
		</type>
	</types>
	<vars>
		<var name="items" type="Item" multi="true"/>
		<var name="max_hp" type="int"/>
	</vars>
</Bag>`)
	out := emit(t, New(), g)
	f := parse(t, out)
	assert.Equal(t, []string{"Main BagSlot", "Spare []BagSlot"}, structFields(t, f, "BagItem"))
	assert.Equal(t, []string{"Items []BagItem", "MaxHp int"}, structFields(t, f, "Bag"))
	for _, s := range []string{
		"\t\tchild := el.SelectElement(\"main\")\n",
		"\t\tif err := x.Main.load(child); err != nil {\n",
		"\tfor _, child := range el.SelectElements(\"spare\") {\n",
		"\t\tvar v BagSlot\n",
		"\t\tx.Spare = append(x.Spare, v)\n",
		"\tfor _, child := range root.SelectElements(\"items\") {\n",
		"\t\tvar v BagItem\n",
		"\t\tx.Items = append(x.Items, v)\n",
	} {
		assert.Contains(t, out, s)
	}
	assert.NotContains(t, out, `MissingFieldError{Name: "items"}`)
}

func TestEmit_GoPackage(t *testing.T) {
	g := newTestGraph(t, `<A><vars><var name="n" type="int"/></vars></A>`, gen.WithGoPackage("gamedata"))
	out := emit(t, New(), g)
	assert.Equal(t, "gamedata", parse(t, out).Name.Name)
	assert.Contains(t, out, `errors.New("gamedata: parse failure")`)
}

func TestEmit_Collisions(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "vars",
			doc:  `<A><vars><var name="max_hp" type="int"/><var name="maxHp" type="int"/></vars></A>`,
			want: "Go name MaxHp of field maxHp of node A collides with field max_hp",
		},
		{
			name: "items",
			doc:  `<A><types><type name="T"><item name="a_b" type="int"/><item name="aB" type="int"/></type></types></A>`,
			want: "Go name AB of field aB of type T of node A collides with field a_b",
		},
		{
			name: "method",
			doc:  `<A><vars><var name="load" type="int"/></vars></A>`,
			want: "Go name Load of field load of node A collides with method Load",
		},
		{
			name: "types",
			doc:  `<A><types><type name="B"><item name="x" type="int"/></type></types></A><AB/>`,
			want: "Go name AB of node AB collides with type B of node A",
		},
		{
			name: "reserved",
			doc:  `<MissingFieldError/>`,
			want: "Go name MissingFieldError of node MissingFieldError collides with generated identifier MissingFieldError",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := New().Emit(&buf, newTestGraph(t, tt.doc))
			require.Error(t, err)
			assert.True(t, gen.IsGenerationError(err))
			assert.Contains(t, err.Error(), tt.want)
			assert.Zero(t, buf.Len())
		})
	}
}

func TestEmit_Deterministic(t *testing.T) {
	g := newTestGraph(t, playerDoc)
	assert.Equal(t, emit(t, New(), g), emit(t, New(), g))
}
