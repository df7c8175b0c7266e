package gen_test

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/syssam/xmlgen/compiler/gen"
	"github.com/syssam/xmlgen/compiler/load"
)

// wideSchema returns a document of n nodes, each with a chain of compound
// types and a var per type.
func wideSchema(n, types int) []byte {
	var b strings.Builder
	for i := range n {
		fmt.Fprintf(&b, "<Node%d><types>", i)
		for j := range types {
			fmt.Fprintf(&b, `<type name="T%d"><item name="id" type="int64"/>`, j)
			if j > 0 {
				fmt.Fprintf(&b, `<item name="prev" type="T%d" multi="true"/>`, j-1)
			}
			b.WriteString("</type>")
		}
		b.WriteString("</types><vars>")
		for j := range types {
			fmt.Fprintf(&b, `<var name="v%d" type="T%d"/>`, j, j)
		}
		fmt.Fprintf(&b, "</vars></Node%d>", i)
	}
	return []byte(b.String())
}

func BenchmarkNewGraph(b *testing.B) {
	cfg, err := gen.NewConfig(gen.WithTarget(b.TempDir()))
	require.NoError(b, err)
	s, err := load.ParseBytes(wideSchema(50, 20), cfg.Schema)
	require.NoError(b, err)
	for b.Loop() {
		_, err := gen.NewGraph(cfg, s)
		require.NoError(b, err)
	}
}

func BenchmarkGenerator_Render(b *testing.B) {
	cfg, err := gen.NewConfig(gen.WithTarget(b.TempDir()))
	require.NoError(b, err)
	s, err := load.ParseBytes(wideSchema(50, 20), cfg.Schema)
	require.NoError(b, err)
	g, err := gen.NewGraph(cfg, s)
	require.NoError(b, err)
	emitters := make([]gen.Emitter, 8)
	for i := range emitters {
		ext := fmt.Sprintf(".%d", i)
		emitters[i] = gen.EmitterFunc{
			ID:   "bench" + ext,
			File: func(g *gen.Graph) string { return g.Filename(ext) },
			Fn: func(w io.Writer, g *gen.Graph) error {
				for _, n := range g.Nodes {
					for _, f := range n.Vars {
						if _, err := fmt.Fprintln(w, n.Name, f.Name, f.Ref); err != nil {
							return err
						}
					}
				}
				return nil
			},
		}
	}
	generator := gen.NewGenerator(g).WithEmitters(emitters...)
	for b.Loop() {
		_, err := generator.Render(context.Background())
		require.NoError(b, err)
	}
}
