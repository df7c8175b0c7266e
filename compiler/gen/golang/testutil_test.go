package golang

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/syssam/xmlgen/compiler/gen"
	"github.com/syssam/xmlgen/compiler/load"
)

const playerDoc = `<?xml version="1.0" encoding="utf-8"?>
<Player>
	<types>
		<type name="Item">
			<item name="id" type="uint" des="item id"/>
			<item name="tags" type="string" multi="true"/>
		</type>
	</types>
	<vars>
		<var name="age" type="int"/>
		<var name="inventory" type="Item" des="bag"/>
	</vars>
</Player>
<Server>
	<vars>
		<var name="host" type="string"/>
	</vars>
</Server>`

// newTestGraph builds a graph from an in-memory schema document.
func newTestGraph(t *testing.T, doc string, opts ...gen.Option) *gen.Graph {
	t.Helper()
	cfg, err := gen.NewConfig(append([]gen.Option{gen.WithSchema("gen.xml"), gen.WithTarget(t.TempDir())}, opts...)...)
	require.NoError(t, err)
	s, err := load.ParseBytes([]byte(doc), cfg.Schema)
	require.NoError(t, err)
	g, err := gen.NewGraph(cfg, s)
	require.NoError(t, err)
	return g
}

func emit(t *testing.T, e gen.Emitter, g *gen.Graph) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, e.Emit(&buf, g))
	return buf.String()
}
