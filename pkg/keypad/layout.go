package keypad

// Button describes one key of the on-screen keypad.
type Button struct {
	Label  string
	Action Action
	Class  string
}

// Layout returns the keypad grid, row by row.
func Layout() [][]Button {
	return [][]Button{
		{
			{Label: "AC", Action: Clear, Class: "btn-function"},
			{Label: "⌫", Action: Backspace, Class: "btn-function"},
			{Label: "%", Action: Percentage, Class: "btn-function"},
			{Label: "÷", Action: Divide, Class: "btn-operator"},
		},
		{
			{Label: "7", Action: Digit7, Class: "btn-number"},
			{Label: "8", Action: Digit8, Class: "btn-number"},
			{Label: "9", Action: Digit9, Class: "btn-number"},
			{Label: "×", Action: Multiply, Class: "btn-operator"},
		},
		{
			{Label: "4", Action: Digit4, Class: "btn-number"},
			{Label: "5", Action: Digit5, Class: "btn-number"},
			{Label: "6", Action: Digit6, Class: "btn-number"},
			{Label: "-", Action: Subtract, Class: "btn-operator"},
		},
		{
			{Label: "1", Action: Digit1, Class: "btn-number"},
			{Label: "2", Action: Digit2, Class: "btn-number"},
			{Label: "3", Action: Digit3, Class: "btn-number"},
			{Label: "+", Action: Add, Class: "btn-operator"},
		},
		{
			{Label: "0", Action: Digit0, Class: "btn-number btn-zero"},
			{Label: ".", Action: Decimal, Class: "btn-number"},
			{Label: "=", Action: Equals, Class: "btn-equals"},
		},
	}
}
