package gen

import (
	"go/token"
	"strings"

	"github.com/syssam/xmlgen"
	"github.com/syssam/xmlgen/schema/field"
)

// Identifier scopes used in error messages.
const (
	scopeNode  = "node"
	scopeTypes = "types"
	scopeVars  = "vars"
)

func scopeType(name string) string { return "type " + name }

// ValidName reports whether name can be used verbatim as an identifier in
// every output: an XML element and attribute name, a C++ identifier, a Lua
// name and a Go identifier.
func ValidName(name string) (reason string, ok bool) {
	switch {
	case name == "":
		return "name cannot be empty", false
	case !isIdent(name):
		return "must start with a letter and contain only letters, digits and underscores", false
	case strings.HasPrefix(strings.ToLower(name), "xml"):
		return "names starting with \"xml\" are reserved in XML", false
	case strings.Contains(name, "__"):
		return "names containing \"__\" are reserved in C++", false
	}
	if _, ok := cppKeywords[name]; ok {
		return "reserved word in C++", false
	}
	if _, ok := luaKeywords[name]; ok {
		return "reserved word in Lua", false
	}
	if token.Lookup(name).IsKeyword() {
		return "reserved word in Go", false
	}
	return "", true
}

func isIdent(s string) bool {
	for i, r := range s {
		switch {
		case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z':
		case i > 0 && ('0' <= r && r <= '9' || r == '_'):
		default:
			return false
		}
	}
	return s != ""
}

// checkNodeName validates the name of a node, which becomes a C++ class,
// a Lua function suffix and a Go type.
func checkNodeName(name string) error {
	if reason, ok := ValidName(name); !ok {
		return &xmlgen.InvalidIdentifierError{Node: name, Scope: scopeNode, Name: name, Reason: reason}
	}
	if has(nodeIdent, name) {
		return &xmlgen.InvalidIdentifierError{Node: name, Scope: scopeNode, Name: name, Reason: "conflicts with a namespace used by the generated code"}
	}
	return nil
}

// checkTypeName validates the name of a compound type of node n. Types are
// nested in the class of their node and share its scope with the generated
// members.
func checkTypeName(n, name string) error {
	if reason, ok := ValidName(name); !ok {
		return &xmlgen.InvalidIdentifierError{Node: n, Scope: scopeTypes, Name: name, Reason: reason}
	}
	var reason string
	switch t, prim := field.Lookup(name); {
	case name == n:
		reason = "a type cannot share the name of its node"
	case prim:
		reason = "shadowed by primitive type " + t.String()
	case isMember(name):
		reason = "conflicts with a generated member"
	case has(nodeIdent, name):
		reason = "conflicts with a namespace used by the generated code"
	case has(localIdent, name):
		reason = "conflicts with a local of the generated loaders"
	default:
		return nil
	}
	return &xmlgen.InvalidIdentifierError{Node: n, Scope: scopeTypes, Name: name, Reason: reason}
}

// checkItemName validates the name of an item of compound type typ. An item
// cannot reuse the name of a type of its node, nor the node name itself.
func checkItemName(n string, types TypeSet, typ, name string) error {
	if reason, ok := ValidName(name); !ok {
		return &xmlgen.InvalidIdentifierError{Node: n, Scope: scopeType(typ), Name: name, Reason: reason}
	}
	if reason := shadows(n, types, name); reason != "" {
		return &xmlgen.InvalidIdentifierError{Node: n, Scope: scopeType(typ), Name: name, Reason: reason}
	}
	return nil
}

// checkVarName validates the name of a top-level var. Vars share the class
// scope with the members the declaration emitter generates.
func checkVarName(n string, types TypeSet, name string) error {
	if reason, ok := ValidName(name); !ok {
		return &xmlgen.InvalidIdentifierError{Node: n, Scope: scopeVars, Name: name, Reason: reason}
	}
	if isMember(name) {
		return &xmlgen.InvalidIdentifierError{Node: n, Scope: scopeVars, Name: name, Reason: "conflicts with a generated member"}
	}
	if reason := shadows(n, types, name); reason != "" {
		return &xmlgen.InvalidIdentifierError{Node: n, Scope: scopeVars, Name: name, Reason: reason}
	}
	return nil
}

// shadows returns why a field called name would hide the class or one of
// the types of node n, or "" if it does not.
func shadows(n string, types TypeSet, name string) string {
	if name == n {
		return "a field cannot share the name of its node"
	}
	if _, ok := types.Lookup(name); ok {
		return "a field cannot share the name of type " + name
	}
	return ""
}

// isMember reports whether name is taken by a generated class member,
// including the per type load functions.
func isMember(name string) bool {
	return has(memberIdent, name) || strings.HasPrefix(name, "load_")
}

func has(set map[string]struct{}, name string) bool {
	_, ok := set[name]
	return ok
}

func names(ids ...string) map[string]struct{} {
	m := make(map[string]struct{})
	for i := range ids {
		m[ids[i]] = struct{}{}
	}
	return m
}

var (
	// members generated in every node class.
	memberIdent = names(
		"loadConfigData",
		"status",
		"failedField",
		"missingField",
		"m_status",
		"m_failedField",
	)

	// locals of the generated load functions, which type names must not shadow.
	localIdent = names(
		"item",
		"item_",
		"itemNode",
		"node",
		"child",
		"root",
		"doc",
		"fname",
	)

	// namespaces referenced by the generated C++ code.
	nodeIdent = names(
		"std",
		"pugi",
	)

	cppKeywords = names(
		"alignas", "alignof", "and", "and_eq", "asm", "auto", "bitand", "bitor",
		"bool", "break", "case", "catch", "char", "char8_t", "char16_t", "char32_t",
		"class", "compl", "concept", "const", "consteval", "constexpr", "constinit",
		"const_cast", "continue", "co_await", "co_return", "co_yield", "decltype",
		"default", "delete", "do", "double", "dynamic_cast", "else", "enum",
		"explicit", "export", "extern", "false", "float", "for", "friend", "goto",
		"if", "inline", "int", "long", "mutable", "namespace", "new", "noexcept",
		"not", "not_eq", "nullptr", "operator", "or", "or_eq", "private",
		"protected", "public", "register", "reinterpret_cast", "requires", "return",
		"short", "signed", "sizeof", "static", "static_assert", "static_cast",
		"struct", "switch", "template", "this", "thread_local", "throw", "true",
		"try", "typedef", "typeid", "typename", "union", "unsigned", "using",
		"virtual", "void", "volatile", "wchar_t", "while", "xor", "xor_eq",
	)

	luaKeywords = names(
		"and", "break", "do", "else", "elseif", "end", "false", "for", "function",
		"goto", "if", "in", "local", "nil", "not", "or", "repeat", "return", "then",
		"true", "until", "while",
	)
)
