package calculator

// Operation identifies the pending binary operator.
type Operation string

const (
	None     Operation = ""
	Add      Operation = "add"
	Subtract Operation = "subtract"
	Multiply Operation = "multiply"
	Divide   Operation = "divide"
)

// Valid reports whether o is one of the four arithmetic operations.
func (o Operation) Valid() bool {
	switch o {
	case Add, Subtract, Multiply, Divide:
		return true
	default:
		return false
	}
}

// Symbol returns the display symbol of the operation, or an empty string for None.
func (o Operation) Symbol() string {
	switch o {
	case Add:
		return "+"
	case Subtract:
		return "-"
	case Multiply:
		return "×"
	case Divide:
		return "÷"
	default:
		return ""
	}
}

// ParseOperation converts an identifier such as "add" into an Operation.
func ParseOperation(s string) (Operation, bool) {
	op := Operation(s)
	return op, op.Valid()
}

func (o Operation) apply(prev, cur float64) (float64, error) {
	switch o {
	case Add:
		return prev + cur, nil
	case Subtract:
		return prev - cur, nil
	case Multiply:
		return prev * cur, nil
	case Divide:
		if cur == 0 {
			return 0, ErrDivideByZero
		}
		return prev / cur, nil
	default:
		return 0, ErrNoPendingOperator
	}
}
