package field

import "strings"

// A Type represents a primitive kind of the schema vocabulary.
type Type uint8

// List of primitive types, in vocabulary order. Lookup scans them in this
// order.
const (
	TypeInvalid Type = iota
	TypeInt
	TypeInt32
	TypeInt64
	TypeUint
	TypeUint32
	TypeUint64
	TypeFloat
	TypeDouble
	TypeBool
	TypeString
	endTypes
)

// LuaRead describes how the script loader converts an attribute string.
type LuaRead uint8

// Script conversion kinds.
const (
	// LuaRaw keeps the attribute string as is. uint64 values do not fit a
	// Lua number and stay strings.
	LuaRaw LuaRead = iota + 1
	// LuaNumber converts with tonumber.
	LuaNumber
	// LuaBool compares against the literal "true".
	LuaBool
)

// typeInfo holds the per-kind tables used by the backends.
type typeInfo struct {
	name     string // canonical schema name.
	accessor string // pugixml attribute accessor.
	cpp      string // C++ declaration type.
	lua      LuaRead
	goType   string // Go declaration type.
	bits     int    // Go bit size for strconv; 0 means platform size.
}

var types = [...]typeInfo{
	TypeInvalid: {name: "invalid"},
	TypeInt:     {name: "int", accessor: "as_int", cpp: "int", lua: LuaNumber, goType: "int"},
	TypeInt32:   {name: "int32", accessor: "as_int", cpp: "int32_t", lua: LuaNumber, goType: "int32", bits: 32},
	TypeInt64:   {name: "int64", accessor: "as_llong", cpp: "int64_t", lua: LuaNumber, goType: "int64", bits: 64},
	TypeUint:    {name: "uint", accessor: "as_uint", cpp: "unsigned int", lua: LuaNumber, goType: "uint"},
	TypeUint32:  {name: "uint32", accessor: "as_uint", cpp: "uint32_t", lua: LuaNumber, goType: "uint32", bits: 32},
	TypeUint64:  {name: "uint64", accessor: "as_ullong", cpp: "uint64_t", lua: LuaRaw, goType: "uint64", bits: 64},
	TypeFloat:   {name: "float", accessor: "as_float", cpp: "float", lua: LuaNumber, goType: "float32", bits: 32},
	TypeDouble:  {name: "double", accessor: "as_double", cpp: "double", lua: LuaNumber, goType: "float64", bits: 64},
	TypeBool:    {name: "bool", accessor: "as_bool", cpp: "bool", lua: LuaBool, goType: "bool"},
	TypeString:  {name: "string", accessor: "as_string", cpp: "std::string", lua: LuaRaw, goType: "string"},
}

// Types returns the primitive vocabulary in lookup order.
func Types() []Type {
	ts := make([]Type, 0, endTypes-1)
	for t := TypeInt; t < endTypes; t++ {
		ts = append(ts, t)
	}
	return ts
}

// Lookup returns the primitive type named by s. The match is
// case-insensitive: "INT", "Int" and "int" all yield TypeInt.
func Lookup(s string) (Type, bool) {
	low := strings.ToLower(s)
	for t := TypeInt; t < endTypes; t++ {
		if types[t].name == low {
			return t, true
		}
	}
	return TypeInvalid, false
}

// Valid reports if the given type is a known primitive.
func (t Type) Valid() bool {
	return t > TypeInvalid && t < endTypes
}

// String returns the canonical schema name of the type.
func (t Type) String() string {
	if t < endTypes {
		return types[t].name
	}
	return types[TypeInvalid].name
}

// Accessor returns the pugixml attribute accessor, e.g. "as_llong".
func (t Type) Accessor() string { return t.info().accessor }

// CppType returns the C++ type used in declarations.
func (t Type) CppType() string { return t.info().cpp }

// LuaRead returns the conversion used by the script loader.
func (t Type) LuaRead() LuaRead { return t.info().lua }

// GoType returns the Go type used in generated structs.
func (t Type) GoType() string { return t.info().goType }

// Bits returns the bit size passed to strconv when parsing the type in Go.
func (t Type) Bits() int { return t.info().bits }

// Numeric reports if the type is an integer or floating point type.
func (t Type) Numeric() bool {
	return t.Integer() || t.Float()
}

// Integer reports if the type is a signed or unsigned integer.
func (t Type) Integer() bool {
	return t >= TypeInt && t <= TypeUint64
}

// Unsigned reports if the type is an unsigned integer.
func (t Type) Unsigned() bool {
	return t >= TypeUint && t <= TypeUint64
}

// Float reports if the type is float or double.
func (t Type) Float() bool {
	return t == TypeFloat || t == TypeDouble
}

func (t Type) info() typeInfo {
	if t.Valid() {
		return types[t]
	}
	return types[TypeInvalid]
}
