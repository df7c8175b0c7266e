package gen

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

// Defaults applied by Config.Normalize.
const (
	// DefaultSchema is the schema file used when none is given.
	DefaultSchema = "gen.xml"
	// DefaultSuffix is appended to the lower-cased schema base name.
	DefaultSuffix = "Config"
	// DefaultHeader is the banner of the C++, Lua and template outputs.
	DefaultHeader = "Generate by the xml generator compiler. DO NOT EDIT!!!"
	// DefaultGoPackage is the package name of the Go loader.
	DefaultGoPackage = "config"
	// GoHeader is the banner of the Go loader. It follows the Go convention
	// for generated files.
	GoHeader = "Code generated by xmlgen. DO NOT EDIT."
)

// Config holds the global codegen configuration. It can be built with
// options or decoded from a YAML file.
type Config struct {
	// Schema is the path of the input schema document.
	Schema string `yaml:"schema,omitempty"`

	// Target is the output directory. Defaults to the directory of Schema.
	Target string `yaml:"target,omitempty"`

	// Suffix is appended to the lower-cased schema base name to form the
	// output file names, e.g. "gen" + "Config" + ".h".
	Suffix string `yaml:"suffix,omitempty"`

	// Header is the first comment line of each non-Go output.
	Header string `yaml:"header,omitempty"`

	// CommentEncoding is the byte encoding of descriptions rendered as C++
	// comments: "utf-8" (default), "gbk" or "gb18030".
	CommentEncoding string `yaml:"comment_encoding,omitempty"`

	// GoPackage is the package name of the Go loader.
	GoPackage string `yaml:"go_package,omitempty"`

	// Workers bounds the number of emitters running concurrently.
	// Zero means GOMAXPROCS.
	Workers int `yaml:"workers,omitempty"`

	// FeatureNames lists the enabled features by name, as written in the
	// configuration file. Normalize resolves them into Features.
	FeatureNames []string `yaml:"features,omitempty"`

	// Features holds the enabled features.
	Features []Feature `yaml:"-"`

	// Logger receives progress logs. Defaults to slog.Default().
	Logger *slog.Logger `yaml:"-"`
}

// LoadConfig reads a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, NewConfigError("ConfigFile", path, err.Error())
	}
	return ParseConfig(buf)
}

// ParseConfig decodes a YAML configuration. Unknown keys are rejected.
func ParseConfig(buf []byte) (*Config, error) {
	c := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(buf))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, NewConfigError("ConfigFile", nil, err.Error())
	}
	if err := c.resolveFeatures(); err != nil {
		return nil, err
	}
	return c, nil
}

// Normalize fills the unset fields with their defaults and validates the
// configuration.
func (c *Config) Normalize() error {
	if c.Schema == "" {
		c.Schema = DefaultSchema
	}
	if c.Target == "" {
		c.Target = filepath.Dir(c.Schema)
	}
	if c.Suffix == "" {
		c.Suffix = DefaultSuffix
	}
	if c.Header == "" {
		c.Header = DefaultHeader
	}
	if c.CommentEncoding == "" {
		c.CommentEncoding = EncodingUTF8
	}
	if _, err := commentEncoder(c.CommentEncoding); err != nil {
		return err
	}
	if c.GoPackage == "" {
		c.GoPackage = DefaultGoPackage
	}
	if err := validGoPackage(c.GoPackage); err != nil {
		return err
	}
	if c.Workers < 0 {
		return NewConfigError("Workers", c.Workers, "workers cannot be negative")
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c.resolveFeatures()
}

// resolveFeatures merges FeatureNames into Features.
func (c *Config) resolveFeatures() error {
	for _, name := range c.FeatureNames {
		f, ok := FeatureByName(name)
		if !ok {
			return NewConfigError("Features", name, "unknown feature")
		}
		if !c.hasFeature(f.Name) {
			c.Features = append(c.Features, f)
		}
	}
	c.FeatureNames = nil
	for _, f := range c.Features {
		c.FeatureNames = append(c.FeatureNames, f.Name)
	}
	return nil
}

func (c *Config) hasFeature(name string) bool {
	return slices.ContainsFunc(c.Features, func(f Feature) bool { return f.Name == name })
}

// FeatureEnabled reports if the given feature name is enabled.
// It's exported to be used by the emitters.
func (c Config) FeatureEnabled(name string) (bool, error) {
	for _, f := range AllFeatures {
		if name == f.Name {
			return f.Default || c.hasFeature(name), nil
		}
	}
	return false, NewConfigError("Features", name, "unexpected feature name")
}
