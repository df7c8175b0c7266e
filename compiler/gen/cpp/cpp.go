// Package cpp implements the C++ emitters: the declaration file (Header)
// and the pugixml based loader source (Source).
//
// Generated code structure:
//
//	{target}/
//	├── {base}Config.h      # include guard, status enum, one class per node
//	└── {base}Config.cpp    # loadConfigData plus one load_<Type> per compound type
//
// Every class exposes loadConfigData, which returns false on failure and
// leaves the reason in status() and, for a missing element, failedField().
package cpp

import (
	"strings"

	"github.com/syssam/xmlgen/compiler/gen"
)

// Names shared by the declaration and the loader source.
const (
	statusType  = "XmlGenStatus"
	statusGuard = "_XMLGEN_STATUS_"
	statusOK    = "XMLGEN_OK"
	statusParse = "XMLGEN_PARSE_FAILURE"
	statusRoot  = "XMLGEN_MISSING_ROOT"
	statusField = "XMLGEN_MISSING_FIELD"
	nodeType    = "pugi::xml_node"
)

// guard returns the include guard of the declaration file, derived from
// its stem so that headers with different suffixes do not clash.
func guard(g *gen.Graph) string {
	stem := strings.TrimSuffix(g.Filename(".h"), ".h")
	return "_XMLGEN_" + strings.Map(func(r rune) rune {
		switch {
		case 'a' <= r && r <= 'z':
			return r - 'a' + 'A'
		case 'A' <= r && r <= 'Z', '0' <= r && r <= '9':
			return r
		default:
			return '_'
		}
	}, stem) + "_H_"
}

// baseType returns the C++ type of one element of f.
func baseType(f *gen.Field) string {
	if f.Ref.IsCompound() {
		return f.Ref.Compound.Name
	}
	return f.Ref.Primitive.CppType()
}

// fieldType returns the declared C++ type of f.
func fieldType(f *gen.Field) string {
	if f.Multi {
		return "std::vector<" + baseType(f) + ">"
	}
	return baseType(f)
}

// trailing returns the trailing comment of a declaration, if any.
func trailing(g *gen.Graph, des string) string {
	if des = g.Comment(des); des == "" {
		return ""
	}
	return " // " + des
}

// banner returns the first lines shared by both files.
func banner(g *gen.Graph) []string {
	return []string{
		"// " + g.Header,
		"// source: " + g.SourceName(),
	}
}
