package calculator

// Display is the two-row projection of the calculator state.
type Display struct {
	// Previous is the formatted previous operand and operator symbol, or empty.
	Previous string `json:"previous"`
	// Current is the formatted current operand.
	Current string `json:"current"`
}

// Display projects the current state onto the display rows without mutating it.
func (c *Calculator) Display() Display {
	d := Display{Current: c.numfmt.format(c.state.Current)}
	if c.state.Operation != None {
		d.Previous = c.numfmt.format(c.state.Previous) + " " + c.state.Operation.Symbol()
	}
	return d
}
