// Package xmlgen generates synchronized configuration loaders from a single
// XML schema.
//
// A schema declares nodes, each with optional compound types and top-level
// vars:
//
//	<Player>
//	    <types>
//	        <type name="Item">
//	            <item name="id" type="uint" des="item id"/>
//	            <item name="tags" type="string" multi="true"/>
//	        </type>
//	    </types>
//	    <vars>
//	        <var name="age" type="int"/>
//	        <var name="inventory" type="Item"/>
//	    </vars>
//	</Player>
//
// From it the generator writes a template document, a C++ declaration file,
// a pugixml based C++ loader, an xmlSimple based Lua loader and, optionally,
// a Go loader.
//
// The pipeline lives in the compiler packages:
//
//	compiler/load       schema document -> load.Schema
//	compiler/gen        load.Schema -> gen.Graph (resolution, validation)
//	compiler/gen/...    one emitter per output artifact
//	compiler            the whole run in one call
//
// This package holds the error taxonomy shared by every stage.
package xmlgen
