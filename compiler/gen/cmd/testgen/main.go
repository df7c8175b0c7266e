// testgen is a simple test program to demonstrate the emitters on an
// in-memory schema.
// Run: go run ./compiler/gen/cmd/testgen
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/syssam/xmlgen/compiler"
	"github.com/syssam/xmlgen/compiler/gen"
	"github.com/syssam/xmlgen/compiler/load"
)

func main() {
	// Create a temp directory for output
	outDir, err := os.MkdirTemp("", "xmlgen-test-*")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create temp dir: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Output directory: %s\n", outDir)

	schema := &load.Schema{
		Source: "gen.xml",
		Nodes: []*load.Node{
			{
				Name:     "Player",
				HasTypes: true,
				Types: []*load.Type{
					{
						Name: "Item",
						Items: []*load.Field{
							{Name: "id", Type: "uint", Comment: "item id"},
							{Name: "tags", Type: "string", Multi: true},
						},
					},
				},
				HasVars: true,
				Vars: []*load.Field{
					{Name: "age", Type: "int"},
					{Name: "inventory", Type: "Item", Comment: "bag"},
					{Name: "friends", Type: "uint64", Multi: true},
				},
			},
			{
				Name:    "Server",
				HasVars: true,
				Vars: []*load.Field{
					{Name: "host", Type: "string"},
					{Name: "port", Type: "INT"},
				},
			},
		},
	}

	// Create config with functional options
	config, err := gen.NewConfig(
		gen.WithTarget(outDir),
		gen.WithFeatures(gen.FeatureGoLoader),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create config: %v\n", err)
		os.Exit(1)
	}

	// Create the graph
	graph, err := gen.NewGraph(config, schema)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create graph: %v\n", err)
		os.Exit(1)
	}

	emitters, err := compiler.Emitters(config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to select emitters: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Generating loaders...")
	generator := gen.NewGenerator(graph).WithEmitters(emitters...)
	if err = generator.Generate(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
		os.Exit(1)
	}

	// List generated files
	fmt.Println("\nGenerated files:")
	entries, err := os.ReadDir(outDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to list files: %v\n", err)
	}
	for _, e := range entries {
		if info, err := e.Info(); err == nil {
			fmt.Printf("  %s (%d bytes)\n", e.Name(), info.Size())
		}
	}
	m := generator.Metrics()
	fmt.Printf("Rendered %d files (%d bytes) in %s, written in %s\n", m.FilesGenerated, m.TotalBytes, m.RenderTime, m.WriteTime)

	// Show sample output
	fmt.Println("\n--- Sample: " + graph.Filename(".h") + " ---")
	content, err := os.ReadFile(filepath.Join(outDir, graph.Filename(".h")))
	if err == nil {
		lines := strings.SplitAfter(string(content), "\n")
		if len(lines) > 60 {
			lines = append(lines[:60], "... (truncated)\n")
		}
		fmt.Print(strings.Join(lines, ""))
	}

	fmt.Printf("\nTo inspect generated code: ls -la %s\n", outDir)
	fmt.Println("Done!")
}
