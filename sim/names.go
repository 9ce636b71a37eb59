package sim

import "fmt"

// Display names for the first few seats; historically the five diners
// of the classic table, extended so bigger rings stay readable.
var names = [...]string{
	"Aristotle",
	"Kant",
	"Spinoza",
	"Marx",
	"Russell",
	"Plato",
	"Confucius",
	"Hypatia",
	"Nietzsche",
	"Wittgenstein",
}

// Name returns the display name for philosopher id. Seats beyond the
// name list fall back to P<id>.
func Name(id int) string {
	if id >= 0 && id < len(names) {
		return names[id]
	}
	return fmt.Sprintf("P%d", id)
}
