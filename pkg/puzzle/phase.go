package puzzle

import "fmt"

// Phase is the lifecycle state of a puzzle. It replaces a scatter of
// independent booleans so that illegal combinations (e.g. shuffling a won
// puzzle) are unrepresentable.
type Phase int

const (
	// PhaseIdle is a freshly created or reset puzzle awaiting a shuffle
	PhaseIdle Phase = iota
	// PhaseShuffling means scramble playback is in progress; win
	// evaluation is suppressed
	PhaseShuffling
	// PhaseInteractive means the puzzle accepts gameplay moves
	PhaseInteractive
	// PhaseSolving means the auto-solver is stepping the puzzle
	PhaseSolving
	// PhaseWon is terminal until the next Reset; all rotation is blocked
	PhaseWon
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseShuffling:
		return "shuffling"
	case PhaseInteractive:
		return "interactive"
	case PhaseSolving:
		return "solving"
	case PhaseWon:
		return "won"
	default:
		return "unknown"
	}
}

// phaseTransitions lists the allowed explicit transitions. Reset is always
// allowed and PhaseWon is only ever entered by win evaluation in ApplyMove.
var phaseTransitions = map[Phase][]Phase{
	PhaseIdle:        {PhaseShuffling},
	PhaseShuffling:   {PhaseInteractive},
	PhaseInteractive: {PhaseShuffling, PhaseSolving},
	PhaseSolving:     {PhaseInteractive},
	PhaseWon:         {},
}

func (p Phase) canTransitionTo(next Phase) bool {
	for _, allowed := range phaseTransitions[p] {
		if next == allowed {
			return true
		}
	}
	return false
}

func (p *Puzzle) transition(next Phase) error {
	if !p.phase.canTransitionTo(next) {
		return fmt.Errorf("cannot transition from %s to %s", p.phase, next)
	}
	p.phase = next
	return nil
}
