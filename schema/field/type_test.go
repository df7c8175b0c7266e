package field_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/xmlgen/schema/field"
)

func TestLookup(t *testing.T) {
	t.Run("case insensitive", func(t *testing.T) {
		for _, name := range []string{"INT", "Int", "int", "iNt"} {
			typ, ok := field.Lookup(name)
			require.True(t, ok, name)
			assert.Equal(t, field.TypeInt, typ, name)
		}
	})

	t.Run("all vocabulary names", func(t *testing.T) {
		for _, typ := range field.Types() {
			got, ok := field.Lookup(typ.String())
			require.True(t, ok)
			assert.Equal(t, typ, got)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		for _, name := range []string{"", "Item", "integer", "int8", " int"} {
			typ, ok := field.Lookup(name)
			assert.False(t, ok, name)
			assert.Equal(t, field.TypeInvalid, typ)
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		a, okA := field.Lookup("Double")
		b, okB := field.Lookup("Double")
		assert.Equal(t, okA, okB)
		assert.Equal(t, a, b)
	})
}

func TestTypes(t *testing.T) {
	names := make([]string, 0, 10)
	for _, typ := range field.Types() {
		names = append(names, typ.String())
	}
	assert.Equal(t, []string{"int", "int32", "int64", "uint", "uint32", "uint64", "float", "double", "bool", "string"}, names)
}

func TestTypeTables(t *testing.T) {
	tests := []struct {
		typ      field.Type
		accessor string
		cpp      string
		goType   string
		lua      field.LuaRead
		bits     int
	}{
		{field.TypeInt, "as_int", "int", "int", field.LuaNumber, 0},
		{field.TypeInt32, "as_int", "int32_t", "int32", field.LuaNumber, 32},
		{field.TypeInt64, "as_llong", "int64_t", "int64", field.LuaNumber, 64},
		{field.TypeUint, "as_uint", "unsigned int", "uint", field.LuaNumber, 0},
		{field.TypeUint32, "as_uint", "uint32_t", "uint32", field.LuaNumber, 32},
		{field.TypeUint64, "as_ullong", "uint64_t", "uint64", field.LuaRaw, 64},
		{field.TypeFloat, "as_float", "float", "float32", field.LuaNumber, 32},
		{field.TypeDouble, "as_double", "double", "float64", field.LuaNumber, 64},
		{field.TypeBool, "as_bool", "bool", "bool", field.LuaBool, 0},
		{field.TypeString, "as_string", "std::string", "string", field.LuaRaw, 0},
	}
	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			assert.True(t, tt.typ.Valid())
			assert.Equal(t, tt.accessor, tt.typ.Accessor())
			assert.Equal(t, tt.cpp, tt.typ.CppType())
			assert.Equal(t, tt.goType, tt.typ.GoType())
			assert.Equal(t, tt.lua, tt.typ.LuaRead())
			assert.Equal(t, tt.bits, tt.typ.Bits())
		})
	}
}

func TestTypeClassification(t *testing.T) {
	assert.True(t, field.TypeUint32.Integer())
	assert.True(t, field.TypeUint32.Unsigned())
	assert.False(t, field.TypeInt64.Unsigned())
	assert.True(t, field.TypeDouble.Float())
	assert.True(t, field.TypeFloat.Numeric())
	assert.False(t, field.TypeBool.Numeric())
	assert.False(t, field.TypeString.Numeric())
	assert.False(t, field.TypeInvalid.Valid())
	assert.Equal(t, "invalid", field.Type(200).String())
	assert.Empty(t, field.Type(200).Accessor())
}
