package xmltmpl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/xmlgen"
	"github.com/syssam/xmlgen/compiler/gen"
	"github.com/syssam/xmlgen/schema/field"
)

func emit(t *testing.T, g *gen.Graph) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, New().Emit(&buf, g))
	return buf.String()
}

func TestEmitter_Names(t *testing.T) {
	g := newTestGraph(t, `<A/>`)
	e := New()
	assert.Equal(t, "xmltmpl", e.Name())
	assert.Equal(t, "genConfig.xml", e.Filename(g))
	var _ gen.Emitter = e
}

func TestEmit_Empty(t *testing.T) {
	out := emit(t, newTestGraph(t, `<?xml version="1.0"?>`))
	assert.Equal(t, "<?xml version=\"1.0\" encoding=\"utf-8\"?>\n", out)
}

func TestEmit_Player(t *testing.T) {
	g := newTestGraph(t, `
<Player>
	<types>
		<type name="Item">
			<item name="id" type="uint" des="item id"/>
			<item name="tags" type="string" multi="true"/>
		</type>
	</types>
	<vars>
		<var name="age" type="Int"/>
		<var name="inventory" type="Item" des="bag"/>
	</vars>
</Player>`)
	want := `<?xml version="1.0" encoding="utf-8"?>
<Player>
	<age age="int"/>
	<inventory id="uint">
		<!--multi-->
		<tags tags="string"/>
	</inventory>
</Player>
`
	assert.Equal(t, want, emit(t, g))
}

func TestEmit_Shapes(t *testing.T) {
	g := newTestGraph(t, `
<Shop>
	<types>
		<type name="Price">
			<item name="amount" type="double"/>
		</type>
		<type name="Good">
			<item name="name" type="string"/>
			<item name="price" type="Price"/>
			<item name="history" type="Price" multi="1"/>
		</type>
	</types>
	<vars>
		<var name="goods" type="Good" multi="true"/>
		<var name="open" type="bool"/>
	</vars>
</Shop>`)
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(emit(t, g)))

	shop := doc.SelectElement("Shop")
	require.NotNil(t, shop)
	goods := shop.SelectElement("goods")
	require.NotNil(t, goods)
	assert.Equal(t, "string", goods.SelectAttrValue("name", ""))
	assert.Equal(t, "double", goods.FindElement("price").SelectAttrValue("amount", ""))
	assert.Equal(t, "double", goods.FindElement("history").SelectAttrValue("amount", ""))
	assert.Equal(t, "bool", shop.SelectElement("open").SelectAttrValue("open", ""))

	// Every repeated slot is preceded by a marker.
	var markers []string
	for _, tok := range shop.Child {
		if c, ok := tok.(*etree.Comment); ok {
			markers = append(markers, c.Data)
		}
	}
	assert.Equal(t, []string{"multi"}, markers)
}

func TestEmit_DocumentOrder(t *testing.T) {
	g := newTestGraph(t, `<B><vars><var name="z" type="int"/><var name="a" type="int"/></vars></B><A/>`)
	out := emit(t, g)
	assert.Less(t, strings.Index(out, "<B>"), strings.Index(out, "<A/>"))
	assert.Less(t, strings.Index(out, "<z "), strings.Index(out, "<a "))
}

func TestEmit_Deterministic(t *testing.T) {
	g := newTestGraph(t, `<A><types><type name="T"><item name="x" type="int"/></type></types><vars><var name="t" type="T" multi="true"/></vars></A>`)
	assert.Equal(t, emit(t, g), emit(t, g))
}

func TestEmit_CycleGuard(t *testing.T) {
	// Graphs built with gen.NewGraph never contain cycles; the walk still
	// refuses to recurse forever on a hand-built one.
	node := &gen.Type{Name: "A"}
	item := &gen.TypeDef{Name: "Item", Owner: node}
	slot := &gen.TypeDef{Name: "Slot", Owner: node}
	item.Items = []*gen.Field{{Name: "slot", Ref: gen.Compound(slot)}}
	slot.Items = []*gen.Field{
		{Name: "n", Ref: gen.Primitive(field.TypeInt)},
		{Name: "item", Ref: gen.Compound(item), Multi: true},
	}
	node.Types = gen.TypeSet{item, slot}
	node.Vars = []*gen.Field{{Name: "root", Ref: gen.Compound(item)}}
	g := &gen.Graph{Config: &gen.Config{}, Source: "gen.xml", Nodes: []*gen.Type{node}}

	err := New().Emit(&bytes.Buffer{}, g)
	require.Error(t, err)
	var ce *xmlgen.CyclicTypeReferenceError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "A", ce.Node)
	assert.Equal(t, []string{"Item", "Slot", "Item"}, ce.Path)
}
