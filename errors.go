package sqlmarkup

import (
	"errors"
	"fmt"
)

// Errors returned by Compiler and Bind methods.
//
// All of them are deterministic: compiling the same input again fails the
// same way. Use errors.Is to check the kind; the returned error carries the
// offending label, placeholder or counts in its message.
var (
	// ErrInvalidLabel is returned when a label name does not match [A-Za-z_][A-Za-z0-9_]*.
	ErrInvalidLabel = errors.New("invalid label name")

	// ErrInvalidBindShape is the parent of all structural bind errors.
	ErrInvalidBindShape = errors.New("invalid bind shape")

	// ErrMixedKeyShape: a bind container mixes integer and string keys.
	ErrMixedKeyShape = fmt.Errorf("%w: mixed integer and string keys", ErrInvalidBindShape)

	// ErrMixedBindShape: a tagged bind group mixes positional and named members.
	ErrMixedBindShape = fmt.Errorf("%w: mixed positional and named members", ErrInvalidBindShape)

	// ErrEmptyInList: an IN-list value has no elements.
	ErrEmptyInList = fmt.Errorf("%w: empty IN-list", ErrInvalidBindShape)

	// ErrMultidimensionalBind: a bind group carrying several named values is nested in another bind.
	ErrMultidimensionalBind = fmt.Errorf("%w: multidimensional bind", ErrInvalidBindShape)

	// ErrInvalidBindValue is returned for values that are neither scalars nor IN-lists.
	ErrInvalidBindValue = errors.New("invalid bind value")

	// ErrMixedPlaceholderStyle: a template uses both ? and :name placeholders.
	ErrMixedPlaceholderStyle = errors.New("mixed positional and named placeholders")

	// ErrBindArityMismatch: the number of ? placeholders differs from the number of bound values.
	ErrBindArityMismatch = errors.New("bind arity mismatch")

	// ErrUnboundPlaceholder: a :name placeholder has no bound value.
	ErrUnboundPlaceholder = errors.New("unbound placeholder")

	// ErrLabelDepth: labels are nested deeper than MaxLabelDepth, usually a label including itself.
	ErrLabelDepth = errors.New("labels nested too deep")
)
