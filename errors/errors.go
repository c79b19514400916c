package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseExtract   Phase = "extract"   // archive entry extraction
	PhaseDecode    Phase = "decode"    // binary XML decoding
	PhaseResolve   Phase = "resolve"   // typed value resolution
	PhaseSerialize Phase = "serialize" // XML text output
	PhaseTable     Phase = "table"     // resource table decoding
)

// Kind categorizes the error
type Kind string

const (
	KindTruncated           Kind = "truncated_buffer"
	KindInvalidChunk        Kind = "invalid_chunk"
	KindStringIndex         Kind = "string_index_out_of_range"
	KindMalformedString     Kind = "malformed_string_length"
	KindUnbalancedNamespace Kind = "unbalanced_namespace"
	KindUnbalancedElement   Kind = "unbalanced_element"
	KindUnsupportedValue    Kind = "unsupported_typed_value"
	KindInvalidData         Kind = "invalid_data"
	KindNotFound            Kind = "not_found"
)

// Error is the structured error type used throughout the module
type Error struct {
	Cause     error
	Phase     Phase
	Kind      Kind
	Detail    string
	Offset    int    // byte offset into the input buffer, -1 when unknown
	ChunkType uint16 // chunk being decoded, 0 when not chunk-scoped
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.ChunkType != 0 {
		fmt.Fprintf(&b, " in chunk 0x%04x", e.ChunkType)
	}
	if e.Offset >= 0 {
		fmt.Fprintf(&b, " at offset 0x%x", e.Offset)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase:  phase,
			Kind:   kind,
			Offset: -1,
		},
	}
}

// Offset sets the byte offset in the input buffer
func (b *Builder) Offset(off int) *Builder {
	b.err.Offset = off
	return b
}

// Chunk sets the chunk type being decoded
func (b *Builder) Chunk(t uint16) *Builder {
	b.err.ChunkType = t
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// Truncated creates a truncated-buffer error: a read of want bytes at the
// given offset with only have bytes remaining.
func Truncated(phase Phase, offset, want, have int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTruncated,
		Offset: offset,
		Detail: fmt.Sprintf("need %d bytes, %d remain", want, have),
	}
}

// InvalidChunk creates an error for a chunk header whose fields are
// internally inconsistent.
func InvalidChunk(phase Phase, offset int, chunkType uint16, detail string) *Error {
	return &Error{
		Phase:     phase,
		Kind:      KindInvalidChunk,
		Offset:    offset,
		ChunkType: chunkType,
		Detail:    detail,
	}
}

// StringIndex creates an out-of-range string pool index error
func StringIndex(phase Phase, index, size int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindStringIndex,
		Offset: -1,
		Detail: fmt.Sprintf("string index %d out of range (pool size %d)", index, size),
	}
}

// MalformedString creates an error for a string entry whose declared length
// exceeds the remaining chunk bytes.
func MalformedString(offset, declared, remain int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindMalformedString,
		Offset: offset,
		Detail: fmt.Sprintf("declared length %d exceeds %d remaining bytes", declared, remain),
	}
}

// UnbalancedNamespace creates an error for a namespace end chunk that does
// not match the most recently opened namespace.
func UnbalancedNamespace(offset int, detail string) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindUnbalancedNamespace,
		Offset: offset,
		Detail: detail,
	}
}

// UnbalancedElement creates an error for an element end chunk that does not
// match the element on top of the stack.
func UnbalancedElement(offset int, detail string) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindUnbalancedElement,
		Offset: offset,
		Detail: detail,
	}
}

// UnsupportedValue creates an error for a typed value tag with no defined
// textual rendering.
func UnsupportedValue(valueType uint8) *Error {
	return &Error{
		Phase:  PhaseResolve,
		Kind:   KindUnsupportedValue,
		Offset: -1,
		Detail: fmt.Sprintf("no rendering for value type 0x%02x", valueType),
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Offset: -1,
		Detail: detail,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Offset: -1,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Offset: -1,
		Detail: detail,
		Cause:  cause,
	}
}
