package models

// Button is a transport-agnostic interactive control bound to an action
type Button struct {
	Label  string
	Action Action
}

// Keyboard is a grid of buttons attached to a message
type Keyboard struct {
	Rows [][]Button
}

// Empty reports whether the keyboard has no buttons
func (k *Keyboard) Empty() bool {
	if k == nil {
		return true
	}
	for _, row := range k.Rows {
		if len(row) > 0 {
			return false
		}
	}
	return true
}
