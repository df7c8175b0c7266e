package xmltmpl

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/syssam/xmlgen/compiler/gen"
	"github.com/syssam/xmlgen/compiler/load"
)

// newTestGraph builds a graph from an in-memory schema document.
func newTestGraph(t *testing.T, doc string) *gen.Graph {
	t.Helper()
	cfg, err := gen.NewConfig(gen.WithSchema("gen.xml"), gen.WithTarget(t.TempDir()))
	require.NoError(t, err)
	s, err := load.ParseBytes([]byte(doc), cfg.Schema)
	require.NoError(t, err)
	g, err := gen.NewGraph(cfg, s)
	require.NoError(t, err)
	return g
}
