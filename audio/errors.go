// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDstSize    = errors.New("dst size must be multiple of channels")
	ErrUnsupportedFormat = errors.New("unsupported audio format")

	ErrDecode             = errors.New("decode error")
	ErrEncode             = errors.New("encode error")
	ErrDegenerateInput    = errors.New("degenerate input")
	ErrFilterConstruction = errors.New("filter construction failed")
	ErrProcessing         = errors.New("processing error")
	ErrInvalidParameter   = errors.New("invalid parameter")
)

// Kind classifies a component failure.
type Kind int

const (
	KindProcessing Kind = iota
	KindDecode
	KindEncode
	KindDegenerateInput
	KindFilterConstruction
	KindInvalidParameter
)

func (k Kind) String() string {
	switch k {
	case KindDecode:
		return "DECODE_ERROR"
	case KindEncode:
		return "ENCODE_ERROR"
	case KindDegenerateInput:
		return "DEGENERATE_INPUT"
	case KindFilterConstruction:
		return "FILTER_CONSTRUCTION_ERROR"
	case KindInvalidParameter:
		return "INVALID_PARAMETER"
	default:
		return "PROCESSING_ERROR"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindDecode:
		return ErrDecode
	case KindEncode:
		return ErrEncode
	case KindDegenerateInput:
		return ErrDegenerateInput
	case KindFilterConstruction:
		return ErrFilterConstruction
	case KindInvalidParameter:
		return ErrInvalidParameter
	default:
		return ErrProcessing
	}
}

// Error is the failure value every component returns at its boundary.
// Context is a short human-readable description of what was being attempted,
// e.g. "Audio analysis failed".
type Error struct {
	Kind    Kind
	Op      string
	Context string
	Err     error
}

func NewError(kind Kind, op, context string, err error) *Error {
	return &Error{Kind: kind, Op: op, Context: context, Err: err}
}

func (e *Error) Error() string {
	cause := e.Err
	if cause == nil {
		cause = e.Kind.sentinel()
	}

	if e.Op == "" {
		return cause.Error()
	}

	return e.Op + ": " + cause.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel for e's kind, so
// errors.Is(err, ErrDegenerateInput) works without wrapping the sentinel.
func (e *Error) Is(target error) bool {
	return target == e.Kind.sentinel()
}

// KindOf extracts the Kind of err. Errors not produced by this package
// classify as KindProcessing.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	for _, k := range []Kind{KindDecode, KindEncode, KindDegenerateInput, KindFilterConstruction, KindInvalidParameter} {
		if errors.Is(err, k.sentinel()) {
			return k
		}
	}

	return KindProcessing
}

// ContextOf returns the Context of err, or fallback when err carries none.
func ContextOf(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) && e.Context != "" {
		return e.Context
	}

	return fallback
}

// Guard converts a panic raised inside a component into a KindProcessing
// error stored in *errp. It must be deferred directly:
//
//	defer audio.Guard("effects", "Effect processing failed", &err)
func Guard(op, context string, errp *error) {
	if r := recover(); r != nil {
		*errp = recovered(KindProcessing, op, context, r)
	}
}

// GuardKind is Guard for boundaries whose panics belong to a specific kind,
// such as third-party decoders failing on corrupt input.
//
//	defer audio.GuardKind(audio.KindDecode, "load", "Audio decoding failed", &err)
func GuardKind(kind Kind, op, context string, errp *error) {
	if r := recover(); r != nil {
		*errp = recovered(kind, op, context, r)
	}
}

func recovered(kind Kind, op, context string, r any) error {
	return NewError(kind, op, context, fmt.Errorf("%w: %v", kind.sentinel(), r))
}
