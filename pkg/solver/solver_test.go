package solver

import (
	"context"
	"testing"

	"github.com/ringlock-game/ringlock/pkg/puzzle"
	"github.com/ringlock-game/ringlock/pkg/shuffle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// adversarialScramble is a fixed scramble whose greedy solve needs 186
// steps, the worst case found by randomized search. It pins the iteration
// cap: if the cap or the greedy rule regresses, this state stops solving.
var adversarialScramble = []puzzle.Move{
	{Ring: 6, Delta: -330}, {Ring: 6, Delta: -330}, {Ring: 1, Delta: -330},
	{Ring: 4, Delta: -270}, {Ring: 2, Delta: 270}, {Ring: 7, Delta: -120},
	{Ring: 3, Delta: -300}, {Ring: 7, Delta: -240}, {Ring: 8, Delta: -240},
	{Ring: 6, Delta: 300}, {Ring: 8, Delta: -240}, {Ring: 3, Delta: 150},
	{Ring: 5, Delta: -180}, {Ring: 7, Delta: -330}, {Ring: 1, Delta: 300},
	{Ring: 1, Delta: -330}, {Ring: 8, Delta: -210}, {Ring: 1, Delta: 240},
	{Ring: 5, Delta: 240}, {Ring: 6, Delta: 270}, {Ring: 7, Delta: -330},
	{Ring: 3, Delta: -270}, {Ring: 6, Delta: -210}, {Ring: 6, Delta: 180},
	{Ring: 3, Delta: 270},
}

func scrambledPuzzle(t *testing.T, moves []puzzle.Move) *puzzle.Puzzle {
	t.Helper()
	p := puzzle.New()
	require.NoError(t, p.BeginShuffle())
	for _, m := range moves {
		p.ApplyMove(m.Ring, m.Delta)
	}
	require.NoError(t, p.FinishShuffle())
	require.False(t, p.IsWon(), "scramble left the puzzle aligned")
	return p
}

func TestSolveDirect(t *testing.T) {
	t.Run("solved puzzle needs no moves", func(t *testing.T) {
		p := puzzle.New()
		assert.Empty(t, SolveDirect(p, 0))
	})

	t.Run("one move per offset ring", func(t *testing.T) {
		p := scrambledPuzzle(t, []puzzle.Move{{Ring: 4, Delta: 120}})
		// rings 3, 4, 5 are now at 60, 120, 60
		moves := SolveDirect(p, 0)
		assert.Equal(t, []puzzle.Move{
			{Ring: 3, Delta: -60},
			{Ring: 4, Delta: -120},
			{Ring: 5, Delta: -60},
		}, moves)
	})

	t.Run("single pass leaves propagation residue", func(t *testing.T) {
		p := scrambledPuzzle(t, []puzzle.Move{{Ring: 8, Delta: 200}})
		// ring 8 at 200, ring 7 at 100
		for _, m := range SolveDirect(p, 0) {
			p.ApplyMove(m.Ring, m.Delta)
		}
		assert.False(t, p.IsWon(), "one pass cannot cancel its own cross-talk")
	})
}

func TestRunDirect_Converges(t *testing.T) {
	p := scrambledPuzzle(t, adversarialScramble)
	result := RunDirect(p, 0, 100)
	assert.Equal(t, ResultSolved, result)
	assert.True(t, p.IsWon())
}

func TestRunDirect_Stalls(t *testing.T) {
	p := scrambledPuzzle(t, adversarialScramble)
	assert.Equal(t, ResultStalled, RunDirect(p, 0, 1))
}

func TestIterativeSolver_Step(t *testing.T) {
	t.Run("fixes the worst ring first", func(t *testing.T) {
		p := scrambledPuzzle(t, []puzzle.Move{{Ring: 2, Delta: 150}})
		// rings 1, 2, 3 at 75, 150, 75
		s := NewIterativeSolver(NewIterativeSolverOptions{
			Puzzle: p,
			Target: 0,
		})
		move := s.Step()
		require.NotNil(t, move)
		assert.Equal(t, 2, move.Ring)
		assert.InDelta(t, -150, move.Delta, 1e-9)
		assert.InDelta(t, 0, p.Angle(2), 1e-9, "step is applied, not just computed")
	})

	t.Run("nil on an aligned puzzle", func(t *testing.T) {
		s := NewIterativeSolver(NewIterativeSolverOptions{
			Puzzle: puzzle.New(),
			Target: 0,
		})
		assert.Nil(t, s.Step())
	})
}

func TestIterativeSolver_Run_SolvesSeededShuffles(t *testing.T) {
	for _, seed := range []int64{1, 42, 1337} {
		p := scrambledPuzzle(t, shuffle.NewGenerator(seed).Generate(25))
		s := NewIterativeSolver(NewIterativeSolverOptions{
			Puzzle:        p,
			Target:        0,
			MaxIterations: 400,
		})
		result := s.Run(context.Background())
		assert.Equal(t, ResultSolved, result, "seed %d", seed)
		assert.True(t, p.IsWon(), "seed %d", seed)
		assert.Nil(t, s.Step(), "seed %d: nothing left after a solve", seed)
	}
}

func TestIterativeSolver_Run_AdversarialRegression(t *testing.T) {
	// must converge within the default cap of 200
	p := scrambledPuzzle(t, adversarialScramble)
	s := NewIterativeSolver(NewIterativeSolverOptions{
		Puzzle: p,
		Target: 0,
	})
	assert.Equal(t, ResultSolved, s.Run(context.Background()))
	assert.True(t, p.IsWon())
}

func TestIterativeSolver_Run_Stalls(t *testing.T) {
	p := scrambledPuzzle(t, adversarialScramble)
	s := NewIterativeSolver(NewIterativeSolverOptions{
		Puzzle:        p,
		Target:        0,
		MaxIterations: 3,
	})
	assert.Equal(t, ResultStalled, s.Run(context.Background()))
	assert.False(t, p.IsWon())
}

func TestIterativeSolver_Run_Interrupted(t *testing.T) {
	t.Run("interrupt flag", func(t *testing.T) {
		p := scrambledPuzzle(t, adversarialScramble)
		s := NewIterativeSolver(NewIterativeSolverOptions{
			Puzzle: p,
			Target: 0,
		})
		before := p.Angles()

		s.Interrupt()
		assert.True(t, s.Interrupted())
		assert.Equal(t, ResultInterrupted, s.Run(context.Background()))
		assert.Equal(t, before, p.Angles(), "no step after an interrupt, no rollback either")
	})

	t.Run("context cancellation", func(t *testing.T) {
		p := scrambledPuzzle(t, adversarialScramble)
		s := NewIterativeSolver(NewIterativeSolverOptions{
			Puzzle: p,
			Target: 0,
		})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.Equal(t, ResultInterrupted, s.Run(ctx))
	})
}
