package dinex

import "strconv"

// State is the lifecycle phase of one seat at the table.
//
// The only legal transitions are
//
//	Thinking --RequestForks--> Hungry --grant--> Eating --ReleaseForks--> Thinking
//
// and they are driven exclusively by the Table under its lock.
type State int32

const (
	// Thinking is the initial state: the philosopher holds no forks and
	// competes for nothing.
	Thinking State = iota
	// Hungry means RequestForks has been called and the philosopher is
	// blocked (or about to block) until the grant arrives.
	Hungry
	// Eating means the philosopher holds both adjacent forks. Neither
	// neighbor can be Eating at the same time.
	Eating
)

func (s State) String() string {
	switch s {
	case Thinking:
		return "THINKING"
	case Hungry:
		return "HUNGRY"
	case Eating:
		return "EATING"
	default:
		return "State(" + strconv.Itoa(int(s)) + ")"
	}
}
