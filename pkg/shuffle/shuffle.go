package shuffle

import (
	"math/rand"

	"github.com/ringlock-game/ringlock/pkg/puzzle"
	"github.com/ringlock-game/ringlock/pkg/puzzle/constants"
)

// Generator produces scramble move sequences. It is deterministic in its
// seed: two generators built with the same seed emit identical sequences,
// which keeps scrambles reproducible for tests and seeded puzzles.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a Generator seeded with the given value.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Generate produces count scramble moves. Each move targets a uniformly
// random ring and rotates it by a multiple of 30 degrees between 120 and
// 330 inclusive, sign chosen 50/50. Small deltas are excluded on purpose:
// every scramble move has to visibly displace several rings.
func (g *Generator) Generate(count int) []puzzle.Move {
	moves := make([]puzzle.Move, 0, count)
	for i := 0; i < count; i++ {
		ring := constants.InnermostRing + g.rng.Intn(constants.RingCount)
		steps := constants.ShuffleDeltaMinSteps + g.rng.Intn(constants.ShuffleDeltaMaxSteps-constants.ShuffleDeltaMinSteps+1)
		delta := float64(steps) * constants.ShuffleDeltaStep
		if g.rng.Intn(2) == 0 {
			delta = -delta
		}
		moves = append(moves, puzzle.Move{
			Ring:  ring,
			Delta: delta,
		})
	}
	return moves
}

// Reverse returns the sequence that exactly undoes moves: reversed order,
// negated deltas. Playing a scramble and then its reverse through
// Puzzle.ApplyMove restores every ring to its pre-scramble angle.
func Reverse(moves []puzzle.Move) []puzzle.Move {
	reversed := make([]puzzle.Move, 0, len(moves))
	for i := len(moves) - 1; i >= 0; i-- {
		reversed = append(reversed, moves[i].Reversed())
	}
	return reversed
}
