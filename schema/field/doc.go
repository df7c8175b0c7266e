// Package field provides the primitive vocabulary of the xmlgen schema.
//
// A schema field declares its type by name. Names are matched against the
// fixed vocabulary below case-insensitively; anything else is treated as a
// reference to a compound type of the same node.
//
//	int     int32   int64
//	uint    uint32  uint64
//	float   double
//	bool    string
//
// Each kind carries the tokens the backends need, fixed at compile time and
// safe for concurrent use:
//
//	field.TypeInt64.Accessor()  // "as_llong"  (pugixml)
//	field.TypeInt64.CppType()   // "int64_t"
//	field.TypeInt64.GoType()    // "int64"
//	field.TypeUint64.LuaRead()  // field.LuaRaw
package field
