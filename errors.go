package sfftkrw

import (
	"errors"
	"fmt"
	"strings"

	"github.com/emdb-empiar/sfftkrw/codec"
)

// Kind tags an error with one of the library's error categories. Kinds are
// comparable sentinels, so errors.Is(err, ErrShape) works across wrapping.
type Kind string

func (k Kind) Error() string { return string(k) }

const (
	// ErrType reports a value that does not satisfy a field's declared kind.
	ErrType Kind = "type error"
	// ErrValue reports malformed constructor input, e.g. a colour tuple of
	// the wrong arity.
	ErrValue Kind = "value error"
	// ErrValidation reports structural invariants violated before a write.
	ErrValidation Kind = "validation error"
	// ErrEncoding reports a mode, endianness or length mismatch in a binary
	// buffer.
	ErrEncoding Kind = "encoding error"
	// ErrShape reports inconsistent matrix or volume dimensions.
	ErrShape Kind = "shape error"
	// ErrDuplicateID reports an insert whose id already exists in the list.
	ErrDuplicateID Kind = "duplicate id"
	// ErrKey reports a lookup by an unknown id or field name.
	ErrKey Kind = "key error"
	// ErrUnsupportedVersion reports an unknown schema version or a
	// cross-version operation.
	ErrUnsupportedVersion Kind = "unsupported version"
	// ErrInvalidPath reports an unrecognised file extension.
	ErrInvalidPath Kind = "invalid path"
	// ErrPrimaryDescriptorMismatch reports a segment payload that disagrees
	// with the segmentation's primary descriptor. Issues carrying it also
	// match ErrValidation.
	ErrPrimaryDescriptorMismatch Kind = "primary descriptor mismatch"
)

// Issue codes.
const (
	CodeRequired                  = "required"
	CodeTooShort                  = "too_short"
	CodeInvalidType               = "invalid_type"
	CodeInvalidValue              = "invalid_value"
	CodeDuplicateID               = "duplicate_id"
	CodeReservedID                = "reserved_id"
	CodeDanglingReference         = "dangling_reference"
	CodePrimaryDescriptorMismatch = "primary_descriptor_mismatch"
	CodeEncoding                  = "encoding"
	CodeShape                     = "shape"
	CodeUnsupportedVersion        = "unsupported_version"
	CodeInconsistentCount         = "inconsistent_count"
)

// Error is a single categorised failure outside validation.
type Error struct {
	Kind    Kind
	Path    string // file path or field path, when known
	Message string
	Cause   error
}

func (e *Error) Error() string {
	b := &strings.Builder{}
	b.WriteString(string(e.Kind))
	if e.Path != "" {
		fmt.Fprintf(b, " at %s", e.Path)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		fmt.Fprintf(b, ": %v", e.Cause)
	}
	return b.String()
}

// Is matches the error's Kind.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

func (e *Error) Unwrap() error { return e.Cause }

func newError(k Kind, format string, args ...any) *Error {
	return &Error{Kind: k, Message: fmt.Sprintf(format, args...)}
}

// wrapCodec maps codec failures onto the library's kinds.
func wrapCodec(err error, path string) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, codec.ErrShape):
		return &Error{Kind: ErrShape, Path: path, Cause: err}
	case errors.Is(err, codec.ErrEncoding):
		return &Error{Kind: ErrEncoding, Path: path, Cause: err}
	}
	return err
}

// Issue represents a single validation entry.
type Issue struct {
	Path    string   // JSON Pointer into the segmentation (for example: /segments/0/colour/red).
	Chain   []string // entity names from the root down to the failing field.
	Code    string   // One of the codes listed above.
	Kind    Kind     // ErrValidation unless a more specific kind applies.
	Message string
	Hint    string // Optional: remediation hints.
	Cause   error  // Optional: underlying error.
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	b.WriteString("validation failed: ")
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. required at /segments/0/id
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Is reports true for ErrValidation and for the kind of any issue.
func (iss Issues) Is(target error) bool {
	k, ok := target.(Kind)
	if !ok {
		return false
	}
	if k == ErrValidation && len(iss) > 0 {
		return true
	}
	for _, it := range iss {
		if it.Kind == k {
			return true
		}
	}
	return false
}

// HasCode reports whether any issue carries code.
func (iss Issues) HasCode(code string) bool {
	for _, it := range iss {
		if it.Code == code {
			return true
		}
	}
	return false
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}
