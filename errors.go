package xmlgen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the generation-time failure kinds.
var (
	// ErrMalformedSchema is returned when the schema document cannot be parsed.
	ErrMalformedSchema = errors.New("xmlgen: malformed schema")

	// ErrDuplicateIdentifier is returned when two siblings share a name.
	ErrDuplicateIdentifier = errors.New("xmlgen: duplicate identifier")

	// ErrInvalidIdentifier is returned when a name cannot be used as a
	// generated identifier in every target language.
	ErrInvalidIdentifier = errors.New("xmlgen: invalid identifier")

	// ErrUnknownType is returned when a type reference matches neither a
	// primitive nor a compound type of the same node.
	ErrUnknownType = errors.New("xmlgen: unknown type")

	// ErrCyclicTypeReference is returned when a compound type reaches itself
	// through its items.
	ErrCyclicTypeReference = errors.New("xmlgen: cyclic type reference")
)

// MalformedSchemaError reports a schema document that could not be read.
type MalformedSchemaError struct {
	Source string
	Cause  error
}

// Error returns the error string.
func (e *MalformedSchemaError) Error() string {
	var b strings.Builder
	b.WriteString("xmlgen: malformed schema")
	if e.Source != "" {
		fmt.Fprintf(&b, " %q", e.Source)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying parse error.
func (e *MalformedSchemaError) Unwrap() error { return e.Cause }

// Is reports whether the target matches ErrMalformedSchema.
func (e *MalformedSchemaError) Is(target error) bool {
	return target == ErrMalformedSchema
}

// NewMalformedSchemaError returns a new MalformedSchemaError.
func NewMalformedSchemaError(source string, cause error) *MalformedSchemaError {
	return &MalformedSchemaError{Source: source, Cause: cause}
}

// DuplicateIdentifierError reports two siblings sharing a name.
type DuplicateIdentifierError struct {
	Node  string // Owning node, empty for node-level duplicates.
	Scope string // "node", "types", "vars" or "type <Name>".
	Name  string
}

// Error returns the error string.
func (e *DuplicateIdentifierError) Error() string {
	var b strings.Builder
	b.WriteString("xmlgen: duplicate identifier ")
	fmt.Fprintf(&b, "%q", e.Name)
	if e.Scope != "" {
		b.WriteString(" in ")
		b.WriteString(e.Scope)
	}
	if e.Node != "" {
		b.WriteString(" of node ")
		b.WriteString(e.Node)
	}
	b.WriteString(": identifiers must be unique among siblings")
	return b.String()
}

// Is reports whether the target matches ErrDuplicateIdentifier.
func (e *DuplicateIdentifierError) Is(target error) bool {
	return target == ErrDuplicateIdentifier
}

// NewDuplicateIdentifierError returns a new DuplicateIdentifierError.
func NewDuplicateIdentifierError(node, scope, name string) *DuplicateIdentifierError {
	return &DuplicateIdentifierError{Node: node, Scope: scope, Name: name}
}

// InvalidIdentifierError reports a name that is not a valid generated
// identifier.
type InvalidIdentifierError struct {
	Node   string
	Scope  string
	Name   string
	Reason string
}

// Error returns the error string.
func (e *InvalidIdentifierError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "xmlgen: invalid identifier %q", e.Name)
	if e.Scope != "" {
		b.WriteString(" in ")
		b.WriteString(e.Scope)
	}
	if e.Node != "" && e.Scope != "node" {
		b.WriteString(" of node ")
		b.WriteString(e.Node)
	}
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	return b.String()
}

// Is reports whether the target matches ErrInvalidIdentifier.
func (e *InvalidIdentifierError) Is(target error) bool {
	return target == ErrInvalidIdentifier
}

// UnknownTypeError reports a type reference that resolves to nothing.
type UnknownTypeError struct {
	Ref   string
	Node  string
	Scope string // "vars" or "type <Name>".
	Field string
	// Hint is an optional explanation, e.g. a cross-node reference.
	Hint string
}

// Error returns the error string.
func (e *UnknownTypeError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "xmlgen: unknown type %q", e.Ref)
	if e.Field != "" {
		b.WriteString(" for field ")
		b.WriteString(e.Field)
	}
	if e.Scope != "" {
		b.WriteString(" in ")
		b.WriteString(e.Scope)
	}
	if e.Node != "" {
		b.WriteString(" of node ")
		b.WriteString(e.Node)
	}
	b.WriteString(": not a primitive and not a type declared in the same node")
	if e.Hint != "" {
		b.WriteString(" (")
		b.WriteString(e.Hint)
		b.WriteString(")")
	}
	return b.String()
}

// Is reports whether the target matches ErrUnknownType.
func (e *UnknownTypeError) Is(target error) bool {
	return target == ErrUnknownType
}

// NewUnknownTypeError returns a new UnknownTypeError for the given reference.
func NewUnknownTypeError(ref string) *UnknownTypeError {
	return &UnknownTypeError{Ref: ref}
}

// CyclicTypeReferenceError reports a compound type that contains itself.
type CyclicTypeReferenceError struct {
	Node string
	// Path lists the type names on the recursion path, starting and ending
	// with the repeated type.
	Path []string
}

// Error returns the error string.
func (e *CyclicTypeReferenceError) Error() string {
	var b strings.Builder
	b.WriteString("xmlgen: cyclic type reference")
	if e.Node != "" {
		b.WriteString(" in node ")
		b.WriteString(e.Node)
	}
	if len(e.Path) > 0 {
		b.WriteString(": ")
		b.WriteString(strings.Join(e.Path, " -> "))
	}
	return b.String()
}

// Is reports whether the target matches ErrCyclicTypeReference.
func (e *CyclicTypeReferenceError) Is(target error) bool {
	return target == ErrCyclicTypeReference
}

// IsMalformedSchema reports whether err is a MalformedSchemaError.
func IsMalformedSchema(err error) bool {
	return errors.Is(err, ErrMalformedSchema)
}

// IsDuplicateIdentifier reports whether err is a DuplicateIdentifierError.
func IsDuplicateIdentifier(err error) bool {
	return errors.Is(err, ErrDuplicateIdentifier)
}

// IsInvalidIdentifier reports whether err is an InvalidIdentifierError.
func IsInvalidIdentifier(err error) bool {
	return errors.Is(err, ErrInvalidIdentifier)
}

// IsUnknownType reports whether err is an UnknownTypeError.
func IsUnknownType(err error) bool {
	return errors.Is(err, ErrUnknownType)
}

// IsCyclicTypeReference reports whether err is a CyclicTypeReferenceError.
func IsCyclicTypeReference(err error) bool {
	return errors.Is(err, ErrCyclicTypeReference)
}
