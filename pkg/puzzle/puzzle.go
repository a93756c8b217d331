package puzzle

import (
	"github.com/ringlock-game/ringlock/pkg/alignment"
	"github.com/ringlock-game/ringlock/pkg/angles"
	"github.com/ringlock-game/ringlock/pkg/puzzle/constants"
)

// Move is the atomic unit of rotation: turn Ring by Delta degrees.
// Both user input and generated sequences (shuffle, solver) reduce to moves.
type Move struct {
	Ring  int     `json:"ring"`
	Delta float64 `json:"delta"`
}

// Reversed returns the move that undoes m.
func (m Move) Reversed() Move {
	return Move{
		Ring:  m.Ring,
		Delta: -m.Delta,
	}
}

// Puzzle is the rotational alignment puzzle: eight concentric rings, each
// with one notch, coupled so that rotating a ring drags its immediate
// neighbors at half speed. Slot 0 of the angle array is the fixed center
// and is never touched.
type Puzzle struct {
	angles    [constants.RingCount + 1]float64
	selected  int
	phase     Phase
	evaluator *alignment.Evaluator
}

// New creates a solved, idle puzzle with the standard win tolerance.
func New() *Puzzle {
	return NewWithEvaluator(alignment.NewEvaluator(constants.WinSpanTolerance))
}

// NewWithEvaluator creates a puzzle that uses the given win evaluator.
func NewWithEvaluator(evaluator *alignment.Evaluator) *Puzzle {
	return &Puzzle{
		evaluator: evaluator,
	}
}

// ApplyMove rotates a ring by delta degrees and drags each immediate
// neighbor by half the delta, same sign. This is the only rotation
// primitive: manual drags, shuffle playback and solver playback all pass
// through here. The call is a silent no-op when the puzzle is won or the
// ring index is out of range. Win evaluation runs after the move unless a
// shuffle is in progress.
func (p *Puzzle) ApplyMove(ring int, delta float64) {
	if p.phase == PhaseWon {
		return
	}
	if ring < constants.InnermostRing || ring > constants.OutermostRing {
		return
	}

	p.angles[ring] = angles.Normalize(p.angles[ring] + delta)
	neighborDelta := delta * constants.PropagationFactor
	if ring > constants.InnermostRing {
		p.angles[ring-1] = angles.Normalize(p.angles[ring-1] + neighborDelta)
	}
	if ring < constants.OutermostRing {
		p.angles[ring+1] = angles.Normalize(p.angles[ring+1] + neighborDelta)
	}

	if p.phase == PhaseShuffling {
		return
	}
	if p.evaluator.Aligned(p.Angles()) {
		p.phase = PhaseWon
	}
}

// SelectRing sets the selected ring. Index 0 clears the selection.
// Out-of-range indices are ignored.
func (p *Puzzle) SelectRing(index int) {
	if index < constants.NoSelection || index > constants.OutermostRing {
		return
	}
	p.selected = index
}

// CycleSelection advances the selection in the order 1, 2, ..., 8, 1.
// An empty selection cycles to ring 1.
func (p *Puzzle) CycleSelection() {
	p.selected = p.selected%constants.RingCount + 1
}

// Reset returns the puzzle to its initial solved, idle state: all angles
// zero, no selection. Always allowed, including from PhaseWon.
func (p *Puzzle) Reset() {
	for i := range p.angles {
		p.angles[i] = 0
	}
	p.selected = constants.NoSelection
	p.phase = PhaseIdle
}

// BeginShuffle moves the puzzle into scramble playback. While shuffling,
// win evaluation is suppressed so a scramble cannot short-circuit by
// accidentally passing through an aligned configuration.
func (p *Puzzle) BeginShuffle() error {
	return p.transition(PhaseShuffling)
}

// FinishShuffle ends scramble playback and opens gameplay.
func (p *Puzzle) FinishShuffle() error {
	return p.transition(PhaseInteractive)
}

// BeginSolve moves the puzzle into solver playback.
func (p *Puzzle) BeginSolve() error {
	return p.transition(PhaseSolving)
}

// FinishSolve returns the puzzle to gameplay after a solver run that did
// not end in a win. If the solver won, the puzzle is already in PhaseWon
// and this is a no-op.
func (p *Puzzle) FinishSolve() error {
	if p.phase == PhaseWon {
		return nil
	}
	return p.transition(PhaseInteractive)
}

// Angle returns the current angle of a single ring, or 0 for an
// out-of-range index.
func (p *Puzzle) Angle(ring int) float64 {
	if ring < constants.InnermostRing || ring > constants.OutermostRing {
		return 0
	}
	return p.angles[ring]
}

// Angles returns a copy of the eight ring angles, innermost first.
func (p *Puzzle) Angles() []float64 {
	out := make([]float64, constants.RingCount)
	copy(out, p.angles[constants.InnermostRing:])
	return out
}

// SelectedRing returns the selected ring index, 0 when nothing is selected.
func (p *Puzzle) SelectedRing() int {
	return p.selected
}

// Phase returns the current lifecycle phase.
func (p *Puzzle) Phase() Phase {
	return p.phase
}

// IsWon reports whether the puzzle is in its terminal won phase.
func (p *Puzzle) IsWon() bool {
	return p.phase == PhaseWon
}
