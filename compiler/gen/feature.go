package gen

import (
	"bytes"
	"os"
	"path/filepath"
)

var (
	// FeatureGoLoader provides a feature-flag for the Go loader output.
	FeatureGoLoader = Feature{
		Name:        "golang",
		Stage:       Alpha,
		Default:     false,
		Description: "Generates a Go loader (<base>config.go) next to the C++ and Lua loaders",
		cleanup: func(g *Graph) error {
			return removeGenerated(filepath.Join(g.target(), g.GoFilename()))
		},
	}

	// FeatureLegacyLuaBool reproduces the boolean handling of older Lua
	// loaders, where a non-repeated bool attribute equal to "true" is still
	// assigned false. Only enable it for consumers that depend on it.
	FeatureLegacyLuaBool = Feature{
		Name:        "lua/legacybool",
		Stage:       Experimental,
		Default:     false,
		Description: "Lua loaders assign false to non-repeated bools even when the attribute is \"true\"",
	}

	// AllFeatures holds a list of all feature-flags.
	AllFeatures = []Feature{
		FeatureGoLoader,
		FeatureLegacyLuaBool,
	}
)

// FeatureStage describes the stage of the codegen feature.
type FeatureStage int

const (
	_ FeatureStage = iota

	// Experimental features are in development and may change or go away.
	Experimental

	// Alpha features are complete, but their output format may still change.
	Alpha

	// Beta features are documented and not expected to change.
	Beta

	// Stable features have been running for a while.
	Stable
)

// String returns the stage name.
func (s FeatureStage) String() string {
	switch s {
	case Experimental:
		return "experimental"
	case Alpha:
		return "alpha"
	case Beta:
		return "beta"
	case Stable:
		return "stable"
	default:
		return "unknown"
	}
}

// A Feature of the xmlgen codegen.
type Feature struct {
	// Name of the feature.
	Name string

	// Stage of the feature.
	Stage FeatureStage

	// Default values indicates if this feature is enabled by default.
	Default bool

	// A Description of this feature.
	Description string

	// cleanup removes the outputs of this feature when it is disabled,
	// so that a run never leaves artifacts of a previous configuration.
	cleanup func(*Graph) error
}

// FeatureByName returns the feature with the given name.
func FeatureByName(name string) (Feature, bool) {
	for _, f := range AllFeatures {
		if f.Name == name {
			return f, true
		}
	}
	return Feature{}, false
}

// generatedMarker prefixes every file produced by the Go loader emitter.
var generatedMarker = []byte("// Code generated by xmlgen")

// removeGenerated removes path if it exists and was written by xmlgen.
func removeGenerated(path string) error {
	buf, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if !bytes.HasPrefix(buf, generatedMarker) {
		return nil
	}
	return os.Remove(path)
}
