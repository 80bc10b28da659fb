package domainerr

import (
	"errors"
	"fmt"
)

// Kind classifies a domain error so the application layer can map it to a
// user-facing response (validation and null-argument map to 400, illegal
// state to 409).
type Kind int

const (
	KindNullArgument Kind = iota + 1
	KindValidation
	KindIllegalState
	KindIllegalOperation
	KindDivideByZero
)

func (k Kind) String() string {
	switch k {
	case KindNullArgument:
		return "null_argument"
	case KindValidation:
		return "validation"
	case KindIllegalState:
		return "illegal_state"
	case KindIllegalOperation:
		return "illegal_operation"
	case KindDivideByZero:
		return "divide_by_zero"
	default:
		return "unknown"
	}
}

// Error is the single error type raised by the domain core. The core never
// wraps infrastructure errors; every Error originates here.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

// NullArgument reports a required reference parameter that was absent.
// The message always names the parameter.
func NullArgument(param string) error {
	return &Error{Kind: KindNullArgument, Msg: fmt.Sprintf("%s cannot be null", param)}
}

// Validation reports a structurally or semantically invalid value.
func Validation(reason string) error {
	return &Error{Kind: KindValidation, Msg: reason}
}

func Validationf(format string, args ...any) error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

// IllegalState reports a transition that is not permitted from the entity's
// current state. The message names the violated invariant.
func IllegalState(reason string) error {
	return &Error{Kind: KindIllegalState, Msg: reason}
}

// IllegalOperation reports an operation whose operands are individually
// valid but cannot be combined, such as arithmetic across currencies.
func IllegalOperation(reason string) error {
	return &Error{Kind: KindIllegalOperation, Msg: reason}
}

func IllegalOperationf(format string, args ...any) error {
	return &Error{Kind: KindIllegalOperation, Msg: fmt.Sprintf(format, args...)}
}

// DivideByZero is raised only by Money division with a zero divisor.
func DivideByZero() error {
	return &Error{Kind: KindDivideByZero, Msg: "cannot divide money by zero"}
}

func is(err error, k Kind) bool {
	var de *Error
	return errors.As(err, &de) && de.Kind == k
}

func IsNullArgument(err error) bool     { return is(err, KindNullArgument) }
func IsValidation(err error) bool       { return is(err, KindValidation) }
func IsIllegalState(err error) bool     { return is(err, KindIllegalState) }
func IsIllegalOperation(err error) bool { return is(err, KindIllegalOperation) }
func IsDivideByZero(err error) bool     { return is(err, KindDivideByZero) }
