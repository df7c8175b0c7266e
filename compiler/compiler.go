// Package compiler provides the one-call entry point of the xmlgen pipeline:
// config, schema loading, graph building and emission.
//
//	err := compiler.Generate(ctx,
//	    gen.WithSchema("conf/gen.xml"),
//	    gen.WithTarget("out"),
//	    gen.WithFeatures(gen.FeatureGoLoader),
//	)
package compiler

import (
	"context"

	"github.com/syssam/xmlgen/compiler/gen"
	"github.com/syssam/xmlgen/compiler/gen/cpp"
	"github.com/syssam/xmlgen/compiler/gen/golang"
	"github.com/syssam/xmlgen/compiler/gen/lua"
	"github.com/syssam/xmlgen/compiler/gen/xmltmpl"
	"github.com/syssam/xmlgen/compiler/load"
)

// Generate builds a config from opts and runs the full pipeline. No file
// is written unless every emitter succeeds.
func Generate(ctx context.Context, opts ...gen.Option) error {
	cfg, err := gen.NewConfig(opts...)
	if err != nil {
		return err
	}
	return GenerateConfig(ctx, cfg)
}

// GenerateConfig runs the full pipeline for a normalized config.
func GenerateConfig(ctx context.Context, cfg *gen.Config) error {
	g, err := LoadGraph(cfg)
	if err != nil {
		return err
	}
	emitters, err := Emitters(cfg)
	if err != nil {
		return err
	}
	return gen.NewGenerator(g).WithEmitters(emitters...).Generate(ctx)
}

// LoadGraph loads the schema named by cfg and builds the resolved graph.
func LoadGraph(cfg *gen.Config) (*gen.Graph, error) {
	if cfg == nil {
		return nil, gen.NewConfigError("Config", nil, "config cannot be nil")
	}
	s, err := load.Load(cfg.Schema)
	if err != nil {
		return nil, err
	}
	return gen.NewGraph(cfg, s)
}

// Emitters returns the emitters enabled by cfg, in output order: the data
// template, the C++ header and source, the Lua loader, then the feature
// emitters.
func Emitters(cfg *gen.Config) ([]gen.Emitter, error) {
	emitters := []gen.Emitter{
		xmltmpl.New(),
		cpp.Header(),
		cpp.Source(),
		lua.New(),
	}
	enabled, err := cfg.FeatureEnabled(gen.FeatureGoLoader.Name)
	if err != nil {
		return nil, err
	}
	if enabled {
		emitters = append(emitters, golang.New())
	}
	return emitters, nil
}
