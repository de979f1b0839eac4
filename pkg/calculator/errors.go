package calculator

import "errors"

var (
	// ErrInvalidOperand indicates a missing or unparsable operand, or a rune that is not a digit or decimal point.
	ErrInvalidOperand = errors.New("calculator: invalid operand")

	// ErrNoPendingOperator indicates Compute was called with no operation selected.
	ErrNoPendingOperator = errors.New("calculator: no pending operator")

	// ErrDivideByZero indicates a division with a right operand equal to zero.
	// It is the only error surfaced to the user, through the error handler.
	ErrDivideByZero = errors.New("calculator: divide by zero")

	// ErrInvalidOperation indicates an operation identifier outside add, subtract, multiply and divide.
	ErrInvalidOperation = errors.New("calculator: invalid operation")

	// ErrOverflow indicates a computation whose result is not a finite number.
	ErrOverflow = errors.New("calculator: result out of range")

	// ErrInvalidState indicates a snapshot that violates the calculator invariants.
	ErrInvalidState = errors.New("calculator: invalid state")

	// ErrUnsupportedLanguage indicates a locale whose grouping separator collides with the decimal point.
	ErrUnsupportedLanguage = errors.New("calculator: unsupported language")
)
