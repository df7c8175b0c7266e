package gen

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// File is a rendered output file waiting to be committed.
type File struct {
	// Name is the file name, relative to the target directory.
	Name string
	// Emitter is the name of the emitter that rendered the file.
	Emitter string
	// Content holds the rendered bytes.
	Content []byte
}

// Generator renders a graph with a set of emitters and commits the outputs
// to the target directory. Rendering runs in parallel; the file system is
// only touched after every emitter succeeded.
type Generator struct {
	graph    *Graph
	workers  int
	emitters []Emitter
	writer   *Writer
}

// NewGenerator creates a generator for g. Emitters must be added with
// WithEmitters before calling Generate.
//
// Example:
//
//	err := gen.NewGenerator(graph).
//	    WithEmitters(xmltmpl.New(), cpp.Header(), cpp.Source(), lua.New()).
//	    Generate(ctx)
func NewGenerator(g *Graph) *Generator {
	workers := runtime.GOMAXPROCS(0)
	if g.Config != nil && g.Workers > 0 {
		workers = g.Workers
	}
	return &Generator{
		graph:   g,
		workers: workers,
		writer:  NewWriter(g.target(), g.logger()),
	}
}

// WithEmitters appends emitters to the generator.
func (g *Generator) WithEmitters(emitters ...Emitter) *Generator {
	for _, e := range emitters {
		if e != nil {
			g.emitters = append(g.emitters, e)
		}
	}
	return g
}

// WithWorkers sets the number of parallel workers.
func (g *Generator) WithWorkers(n int) *Generator {
	if n > 0 {
		g.workers = n
	}
	return g
}

// Metrics returns the generation metrics.
func (g *Generator) Metrics() WriterMetrics {
	return g.writer.Metrics()
}

// Render runs every emitter and returns the rendered files in emitter
// order. Nothing is written to disk.
func (g *Generator) Render(ctx context.Context) ([]File, error) {
	if len(g.emitters) == 0 {
		return nil, NewConfigError("Emitters", nil, "no emitters set: call WithEmitters() before Generate()")
	}
	start := time.Now()
	files := make([]File, len(g.emitters))
	errg, ctx := errgroup.WithContext(ctx)
	errg.SetLimit(g.workers)
	for i, e := range g.emitters {
		errg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			name := e.Filename(g.graph)
			if name == "" || filepath.Base(name) != name {
				return NewGenerationError(e.Name(), name, "output must be a plain file name", nil)
			}
			var buf bytes.Buffer
			if err := e.Emit(&buf, g.graph); err != nil {
				return NewGenerationError(e.Name(), name, "", err)
			}
			files[i] = File{Name: name, Emitter: e.Name(), Content: buf.Bytes()}
			return nil
		})
	}
	if err := errg.Wait(); err != nil {
		return nil, err
	}
	seen := make(map[string]string, len(files))
	for _, f := range files {
		if prev, ok := seen[f.Name]; ok {
			return nil, NewGenerationError(f.Emitter, f.Name, "output file already rendered by "+prev, nil)
		}
		seen[f.Name] = f.Emitter
	}
	g.writer.addRenderTime(time.Since(start))
	return files, nil
}

// Generate renders all emitters, commits the files and removes the outputs
// of disabled features. Either every file is written or none is.
func (g *Generator) Generate(ctx context.Context) error {
	files, err := g.Render(ctx)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := g.writer.Commit(files); err != nil {
		return err
	}
	if err := g.cleanup(); err != nil {
		return err
	}
	m := g.writer.Metrics()
	g.graph.logger().Info("generated",
		"source", g.graph.SourceName(),
		"target", g.graph.target(),
		"files", m.FilesGenerated,
		"bytes", m.TotalBytes,
		"render", m.RenderTime,
		"write", m.WriteTime,
	)
	return nil
}

// cleanup runs the cleanup hooks of the features that are not enabled.
func (g *Generator) cleanup() error {
	for _, f := range AllFeatures {
		if f.cleanup == nil {
			continue
		}
		if g.graph.Config != nil && (f.Default || g.graph.hasFeature(f.Name)) {
			continue
		}
		if err := f.cleanup(g.graph); err != nil {
			return NewGenerationError("cleanup", "", "feature "+f.Name, err)
		}
	}
	return nil
}

func (g *Graph) target() string {
	if g.Config == nil || g.Target == "" {
		return "."
	}
	return g.Target
}

func (g *Graph) logger() *slog.Logger {
	if g.Config == nil || g.Logger == nil {
		return slog.Default()
	}
	return g.Logger
}
