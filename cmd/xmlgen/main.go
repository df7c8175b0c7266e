// xmlgen generates XML data templates and C++, Lua and Go loaders from an
// XML schema document.
//
//	xmlgen -f conf/gen.xml -o out
//	xmlgen -config xmlgen.yaml -features golang -watch
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"
	"syscall"

	"github.com/fsnotify/fsnotify"

	"github.com/syssam/xmlgen"
	"github.com/syssam/xmlgen/compiler"
	"github.com/syssam/xmlgen/compiler/gen"
)

// defaultConfigFile is read when -config is not given and the file exists.
const defaultConfigFile = "xmlgen.yaml"

// Exit codes.
const (
	exitOK = iota
	exitFailure
	exitUsage
	exitMalformedSchema
	exitDuplicateIdentifier
	exitInvalidIdentifier
	exitUnknownType
	exitCyclicTypeReference
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command line args and returns the exit code.
func run(ctx context.Context, args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("xmlgen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		schema   = fs.String("f", gen.DefaultSchema, "schema document")
		config   = fs.String("config", "", "YAML configuration file (default "+defaultConfigFile+" if present)")
		target   = fs.String("o", "", "output directory (default: the directory of the schema)")
		features = fs.String("features", "", "comma-separated list of features to enable")
		verbose  = fs.Bool("v", false, "enable debug logging")
		watchf   = fs.Bool("watch", false, "regenerate when the schema changes")
	)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [flags]\n\nFlags:\n", fs.Name())
		fs.PrintDefaults()
		fmt.Fprintf(fs.Output(), "\nFeatures:\n")
		for _, f := range gen.AllFeatures {
			fmt.Fprintf(fs.Output(), "  %-16s %s (%s)\n", f.Name, f.Description, f.Stage)
		}
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		fs.Usage()
		return exitUsage
	}
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := loadConfig(*config, set["config"])
	if err != nil {
		logger.Error("load config", "error", err)
		return exitCode(err)
	}
	opts := []gen.Option{gen.WithLogger(logger)}
	if set["f"] || cfg.Schema == "" {
		opts = append(opts, gen.WithSchema(*schema))
	}
	if set["o"] {
		opts = append(opts, gen.WithTarget(*target))
	}
	if names := splitList(*features); len(names) > 0 {
		opts = append(opts, gen.WithFeatureNames(names...))
	}
	if err := cfg.Apply(opts...); err != nil {
		logger.Error("invalid flags", "error", err)
		return exitCode(err)
	}
	if err := cfg.Normalize(); err != nil {
		logger.Error("invalid config", "error", err)
		return exitCode(err)
	}

	err = compiler.GenerateConfig(ctx, cfg)
	if !*watchf {
		if err != nil {
			logger.Error("generate", "error", err)
		}
		return exitCode(err)
	}
	if err != nil {
		logger.Error("generate", "error", err)
	}
	if err := watch(ctx, cfg, logger); err != nil {
		logger.Error("watch", "error", err)
		return exitFailure
	}
	return exitOK
}

// loadConfig reads the configuration file. A missing default file yields
// an empty configuration.
func loadConfig(path string, explicit bool) (*gen.Config, error) {
	if !explicit {
		if _, err := os.Stat(defaultConfigFile); err != nil {
			return &gen.Config{}, nil
		}
		path = defaultConfigFile
	}
	return gen.LoadConfig(path)
}

// watch regenerates every time the schema file is written, until ctx is
// done. Generation failures are logged and do not stop the watch.
func watch(ctx context.Context, cfg *gen.Config, logger *slog.Logger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	schema := filepath.Clean(cfg.Schema)
	// Editors often replace the file, so the directory is watched.
	if err := w.Add(filepath.Dir(schema)); err != nil {
		return err
	}
	logger.Info("watching", "schema", schema)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != schema || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			logger.Debug("schema changed", "op", ev.Op.String())
			if err := compiler.GenerateConfig(ctx, cfg); err != nil && ctx.Err() == nil {
				logger.Error("generate", "error", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch", "error", err)
		}
	}
}

// exitCode maps an error to the process exit code.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case xmlgen.IsCyclicTypeReference(err):
		return exitCyclicTypeReference
	case xmlgen.IsUnknownType(err):
		return exitUnknownType
	case xmlgen.IsInvalidIdentifier(err):
		return exitInvalidIdentifier
	case xmlgen.IsDuplicateIdentifier(err):
		return exitDuplicateIdentifier
	case xmlgen.IsMalformedSchema(err):
		return exitMalformedSchema
	case gen.IsConfigError(err):
		return exitUsage
	default:
		return exitFailure
	}
}

func splitList(s string) []string {
	var out []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" && !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}
