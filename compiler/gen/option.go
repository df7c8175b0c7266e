package gen

import (
	"errors"
	"go/token"
	"log/slog"
)

// Option configures code generation.
type Option func(*Config) error

// WithSchema sets the path of the schema document.
func WithSchema(path string) Option {
	return func(c *Config) error {
		if path == "" {
			return NewConfigError("Schema", nil, "schema path cannot be empty")
		}
		c.Schema = path
		return nil
	}
}

// WithTarget sets the output directory.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Target", nil, "target directory cannot be empty")
		}
		c.Target = dir
		return nil
	}
}

// WithSuffix sets the suffix appended to the output base name.
func WithSuffix(suffix string) Option {
	return func(c *Config) error {
		if !token.IsIdentifier("x" + suffix) {
			return NewConfigError("Suffix", suffix, "suffix must contain only letters, digits and underscores")
		}
		c.Suffix = suffix
		return nil
	}
}

// WithHeader sets the banner comment of the non-Go outputs.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithCommentEncoding sets the encoding of descriptions rendered as
// C++ comments. Supported: "utf-8", "gbk", "gb18030".
func WithCommentEncoding(name string) Option {
	return func(c *Config) error {
		if _, err := commentEncoder(name); err != nil {
			return err
		}
		c.CommentEncoding = name
		return nil
	}
}

// WithGoPackage sets the package name of the Go loader.
func WithGoPackage(pkg string) Option {
	return func(c *Config) error {
		if err := validGoPackage(pkg); err != nil {
			return err
		}
		c.GoPackage = pkg
		return nil
	}
}

// WithWorkers bounds the number of emitters running concurrently.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n < 0 {
			return NewConfigError("Workers", n, "workers cannot be negative")
		}
		c.Workers = n
		return nil
	}
}

// WithFeatures enables specific features.
func WithFeatures(features ...Feature) Option {
	return func(c *Config) error {
		for _, f := range features {
			if !c.hasFeature(f.Name) {
				c.Features = append(c.Features, f)
			}
		}
		return nil
	}
}

// WithFeatureNames enables features by name.
func WithFeatureNames(names ...string) Option {
	return func(c *Config) error {
		c.FeatureNames = append(c.FeatureNames, names...)
		return c.resolveFeatures()
	}
}

// WithLogger sets the logger used during generation.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) error {
		if l == nil {
			return NewConfigError("Logger", nil, "logger cannot be nil")
		}
		c.Logger = l
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config with the given options and defaults.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	if err := c.Normalize(); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}

func validGoPackage(pkg string) error {
	if !token.IsIdentifier(pkg) || token.Lookup(pkg).IsKeyword() {
		return NewConfigError("GoPackage", pkg, "package name must be a Go identifier")
	}
	return nil
}
