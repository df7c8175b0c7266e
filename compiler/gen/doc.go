// Package gen provides the resolved model and the generation engine of xmlgen.
//
// This package turns a loaded schema into a validated Graph and renders it
// with a set of emitters: an XML data template, a C++ declaration file, a
// C++ loader source, a Lua loader and, behind a feature flag, a Go loader.
//
// # Architecture
//
// The code generation pipeline follows this flow:
//
//	Schema document (gen.xml)
//	        ↓
//	   load.Schema (raw nodes, types and vars)
//	        ↓
//	   Graph (names validated, references resolved, cycles rejected)
//	        ↓
//	   Emitters (rendered in parallel into memory)
//	        ↓
//	   Writer (atomic commit into the target directory)
//
// # Key Types
//
//   - Graph: Holds all nodes of one schema document
//   - Type: A node with its compound types and top-level vars
//   - TypeDef: A compound type scoped to one node
//   - Field: An item or var with its resolved TypeRef
//   - Config: Global configuration for code generation
//   - Emitter: Renders one output file from a Graph
//
// # Type Resolution
//
// A type reference resolves to a primitive kind of the schema/field package
// first, matched case-insensitively, and then to a compound type declared in
// the same node, matched exactly. References never cross nodes.
//
// # Error Handling
//
// Schema failures are reported with the error types of the root xmlgen
// package. This package adds:
//
//   - ConfigError: Configuration errors
//   - GenerationError: Rendering and commit errors
//
// Example error handling:
//
//	if err := compiler.Generate(ctx, gen.WithSchema("gen.xml")); err != nil {
//	    var unknown *xmlgen.UnknownTypeError
//	    if errors.As(err, &unknown) {
//	        log.Printf("node %s: unknown type %q", unknown.Node, unknown.Ref)
//	    }
//	}
package gen
