package solver

import (
	"context"
	"math"
	"sync/atomic"

	"github.com/ringlock-game/ringlock/pkg/alignment"
	"github.com/ringlock-game/ringlock/pkg/angles"
	"github.com/ringlock-game/ringlock/pkg/puzzle"
	"github.com/ringlock-game/ringlock/pkg/puzzle/constants"
)

// Result is the outcome of a solver run.
type Result int

const (
	// ResultSolved means the puzzle reached the win condition
	ResultSolved Result = iota
	// ResultStalled means the iteration cap was exhausted before alignment
	ResultStalled
	// ResultInterrupted means the run was cancelled cooperatively
	ResultInterrupted
)

func (r Result) String() string {
	switch r {
	case ResultSolved:
		return "solved"
	case ResultStalled:
		return "stalled"
	case ResultInterrupted:
		return "interrupted"
	default:
		return "unknown"
	}
}

// SolveDirect computes one restoring move per ring: the shortest rotation
// carrying the ring's current angle onto target. Rings already within
// SolveEpsilon of the target are skipped. The moves are computed against a
// frozen view of the puzzle and not applied; note that applying them
// through ApplyMove propagates to neighbors, so one pass leaves half-speed
// residue on the rings next to each moved ring.
func SolveDirect(p *puzzle.Puzzle, target float64) []puzzle.Move {
	moves := make([]puzzle.Move, 0, constants.RingCount)
	for ring := constants.InnermostRing; ring <= constants.OutermostRing; ring++ {
		delta := angles.ShortestDelta(p.Angle(ring), target)
		if math.Abs(delta) <= constants.SolveEpsilon {
			continue
		}
		moves = append(moves, puzzle.Move{
			Ring:  ring,
			Delta: delta,
		})
	}
	return moves
}

// RunDirect repeatedly computes and applies direct passes until the puzzle
// aligns or maxPasses is exhausted. The propagation residue shrinks
// geometrically from pass to pass, so a few dozen passes suffice from any
// scrambled state; the cap guards the loop all the same.
func RunDirect(p *puzzle.Puzzle, target float64, maxPasses int) Result {
	for i := 0; i < maxPasses; i++ {
		if p.IsWon() {
			return ResultSolved
		}
		moves := SolveDirect(p, target)
		if len(moves) == 0 {
			if p.IsWon() {
				return ResultSolved
			}
			return ResultStalled
		}
		for _, m := range moves {
			p.ApplyMove(m.Ring, m.Delta)
		}
	}
	if p.IsWon() {
		return ResultSolved
	}
	return ResultStalled
}

// IterativeSolver drives a puzzle toward alignment one discrete move at a
// time, always fixing the ring with the largest offset from the target.
// One Step is one committed move, which is what makes a run interruptible
// between steps and lets a caller animate each move however it likes.
type IterativeSolver struct {
	puzzle        *puzzle.Puzzle
	target        float64
	evaluator     *alignment.Evaluator
	maxIterations int
	interrupted   atomic.Bool
}

// NewIterativeSolverOptions contains options for creating a new IterativeSolver.
type NewIterativeSolverOptions struct {
	Puzzle *puzzle.Puzzle
	Target float64
	// Evaluator overrides the win test; defaults to the standard span tolerance
	Evaluator *alignment.Evaluator
	// MaxIterations overrides the step cap; defaults to constants.SolveMaxIterations
	MaxIterations int
}

// NewIterativeSolver creates a new IterativeSolver.
func NewIterativeSolver(opts NewIterativeSolverOptions) *IterativeSolver {
	evaluator := opts.Evaluator
	if evaluator == nil {
		evaluator = alignment.NewEvaluator(constants.WinSpanTolerance)
	}
	maxIterations := opts.MaxIterations
	if maxIterations <= 0 {
		maxIterations = constants.SolveMaxIterations
	}
	return &IterativeSolver{
		puzzle:        opts.Puzzle,
		target:        opts.Target,
		evaluator:     evaluator,
		maxIterations: maxIterations,
	}
}

// Step applies and returns the next solver move, or nil when there is
// nothing left to do: the puzzle is aligned, or every ring is within
// SolveEpsilon of the target.
func (s *IterativeSolver) Step() *puzzle.Move {
	if s.puzzle.IsWon() || s.evaluator.Aligned(s.puzzle.Angles()) {
		return nil
	}

	worstRing := 0
	worstDelta := 0.0
	for ring := constants.InnermostRing; ring <= constants.OutermostRing; ring++ {
		delta := angles.ShortestDelta(s.puzzle.Angle(ring), s.target)
		if math.Abs(delta) > math.Abs(worstDelta) {
			worstRing = ring
			worstDelta = delta
		}
	}
	if math.Abs(worstDelta) <= constants.SolveEpsilon {
		return nil
	}

	move := &puzzle.Move{
		Ring:  worstRing,
		Delta: worstDelta,
	}
	s.puzzle.ApplyMove(move.Ring, move.Delta)
	return move
}

// Interrupt requests a cooperative stop. The running solve finishes its
// current step and reports ResultInterrupted; the puzzle keeps whatever
// partially solved configuration it reached.
func (s *IterativeSolver) Interrupt() {
	s.interrupted.Store(true)
}

// Interrupted reports whether Interrupt has been called.
func (s *IterativeSolver) Interrupted() bool {
	return s.interrupted.Load()
}

// Run steps the solver until the puzzle aligns, the context or Interrupt
// cancels it, or the iteration cap runs out. The cap exists because the
// greedy worst-ring loop has no convergence proof for arbitrary
// propagation-coupled offsets; exhausting it reports ResultStalled rather
// than spinning.
func (s *IterativeSolver) Run(ctx context.Context) Result {
	for i := 0; i < s.maxIterations; i++ {
		select {
		case <-ctx.Done():
			return ResultInterrupted
		default:
		}
		if s.Interrupted() {
			return ResultInterrupted
		}

		move := s.Step()
		if move == nil {
			if s.puzzle.IsWon() || s.evaluator.Aligned(s.puzzle.Angles()) {
				return ResultSolved
			}
			return ResultStalled
		}
	}
	if s.puzzle.IsWon() || s.evaluator.Aligned(s.puzzle.Angles()) {
		return ResultSolved
	}
	return ResultStalled
}
