package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/ringlock-game/ringlock/pkg/alignment"
	"github.com/ringlock-game/ringlock/pkg/log"
	"github.com/ringlock-game/ringlock/pkg/messages"
	"github.com/ringlock-game/ringlock/pkg/puzzle"
	"github.com/ringlock-game/ringlock/pkg/puzzle/constants"
	"github.com/ringlock-game/ringlock/pkg/queue"
	"github.com/ringlock-game/ringlock/pkg/shuffle"
	"github.com/ringlock-game/ringlock/pkg/solver"
	"github.com/ringlock-game/ringlock/pkg/state"
	"github.com/ringlock-game/ringlock/pkg/workers"
)

const (
	// DirectSolveMaxPasses bounds the repeated direct passes of a direct solve
	DirectSolveMaxPasses = 100
)

// GameSession owns one puzzle and is its only mutator. A tick loop drains
// client intents, plays back shuffle moves one per tick, steps the
// iterative solver one move per tick, and publishes snapshots. The core
// never sees time or I/O; this loop is the animator driving it.
type GameSession struct {
	id              uuid.UUID
	puzzle          *puzzle.Puzzle
	intentQueue     queue.Queue
	snapshotManager state.SnapshotManager
	broadcastChan   chan<- workers.BroadcastMessage
	tickInterval    time.Duration
	shuffleCount    int

	pendingShuffle []puzzle.Move
	shuffleLength  int
	iterSolver     *solver.IterativeSolver
	solveSteps     int
	wonAnnounced   bool
	dirty          bool
}

// NewGameSessionOptions contains options for creating a new GameSession.
type NewGameSessionOptions struct {
	ID              uuid.UUID
	Puzzle          *puzzle.Puzzle
	IntentQueue     queue.Queue
	SnapshotManager state.SnapshotManager
	BroadcastChan   chan<- workers.BroadcastMessage
	TickInterval    time.Duration
	// ShuffleCount is the default scramble length when a new-game intent
	// does not specify one
	ShuffleCount int
}

func NewGameSession(opts NewGameSessionOptions) *GameSession {
	shuffleCount := opts.ShuffleCount
	if shuffleCount <= 0 {
		shuffleCount = constants.DefaultShuffleCount
	}
	return &GameSession{
		id:              opts.ID,
		puzzle:          opts.Puzzle,
		intentQueue:     opts.IntentQueue,
		snapshotManager: opts.SnapshotManager,
		broadcastChan:   opts.BroadcastChan,
		tickInterval:    opts.TickInterval,
		shuffleCount:    shuffleCount,
	}
}

// ID returns the session ID.
func (gs *GameSession) ID() uuid.UUID {
	return gs.id
}

// Enqueue adds a client intent to the session's queue.
func (gs *GameSession) Enqueue(msg *messages.Message) error {
	return gs.intentQueue.Enqueue(msg)
}

// Snapshot returns the latest published puzzle snapshot.
func (gs *GameSession) Snapshot() (*puzzle.Snapshot, error) {
	return gs.snapshotManager.Get()
}

// Start runs the session loop until ctx is cancelled.
func (gs *GameSession) Start(ctx context.Context) {
	ticker := time.NewTicker(gs.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := gs.tick(); err != nil {
				log.Error("Session %s tick failed: %v", gs.id, err)
			}
		}
	}
}

// tick runs one iteration of the session loop.
func (gs *GameSession) tick() error {
	if err := gs.processIntents(); err != nil {
		return err
	}
	gs.advancePlayback()
	gs.announceWin()
	gs.publishSnapshot()
	return nil
}

// processIntents drains pending client intents and applies them to the puzzle.
func (gs *GameSession) processIntents() error {
	pending, err := gs.intentQueue.ReadAllMessages()
	if err != nil {
		return err
	}
	for _, item := range pending {
		msg, ok := item.(*messages.Message)
		if !ok {
			log.Warn("Session %s ignoring non-message intent %T", gs.id, item)
			continue
		}
		gs.handleIntent(msg)
	}
	return nil
}

func (gs *GameSession) handleIntent(msg *messages.Message) {
	switch msg.Type {
	case messages.MessageTypeClientRotateRing:
		rotate := &messages.ClientRotateRing{}
		if err := json.Unmarshal(msg.Payload, rotate); err != nil {
			log.Error("Failed to unmarshal rotate ring message: %v", err)
			return
		}
		gs.handleRotate(rotate)
	case messages.MessageTypeClientSelectRing:
		selectRing := &messages.ClientSelectRing{}
		if err := json.Unmarshal(msg.Payload, selectRing); err != nil {
			log.Error("Failed to unmarshal select ring message: %v", err)
			return
		}
		gs.puzzle.SelectRing(selectRing.Ring)
		gs.dirty = true
	case messages.MessageTypeClientCycleSelection:
		gs.puzzle.CycleSelection()
		gs.dirty = true
	case messages.MessageTypeClientNewGame:
		newGame := &messages.ClientNewGame{}
		if err := json.Unmarshal(msg.Payload, newGame); err != nil {
			log.Error("Failed to unmarshal new game message: %v", err)
			return
		}
		gs.handleNewGame(newGame)
	case messages.MessageTypeClientSolve:
		solve := &messages.ClientSolve{}
		if err := json.Unmarshal(msg.Payload, solve); err != nil {
			log.Error("Failed to unmarshal solve message: %v", err)
			return
		}
		gs.handleSolve(solve)
	case messages.MessageTypeClientInterruptSolve:
		if gs.iterSolver != nil {
			gs.iterSolver.Interrupt()
		}
	default:
		log.Warn("Session %s ignoring unknown message type %s", gs.id, msg.Type)
	}
}

func (gs *GameSession) handleRotate(rotate *messages.ClientRotateRing) {
	if gs.puzzle.Phase() != puzzle.PhaseInteractive {
		gs.emit(messages.MessageTypeServerError, &messages.ServerError{
			Reason: "puzzle is not accepting moves",
		})
		return
	}
	gs.puzzle.ApplyMove(rotate.Ring, rotate.Delta)
	gs.dirty = true
}

func (gs *GameSession) handleNewGame(newGame *messages.ClientNewGame) {
	gs.puzzle.Reset()
	gs.iterSolver = nil
	gs.wonAnnounced = false

	seed := time.Now().UnixNano()
	if newGame.Seed != nil {
		seed = *newGame.Seed
	}
	count := newGame.Count
	if count <= 0 {
		count = gs.shuffleCount
	}

	if err := gs.puzzle.BeginShuffle(); err != nil {
		// unreachable after a Reset, but surface it rather than hide it
		gs.emit(messages.MessageTypeServerError, &messages.ServerError{Reason: err.Error()})
		return
	}
	gs.pendingShuffle = shuffle.NewGenerator(seed).Generate(count)
	gs.shuffleLength = len(gs.pendingShuffle)
	gs.dirty = true
	gs.emit(messages.MessageTypeServerShuffleStart, &messages.ServerShuffleStart{
		MoveCount: gs.shuffleLength,
	})
}

func (gs *GameSession) handleSolve(solve *messages.ClientSolve) {
	if err := gs.puzzle.BeginSolve(); err != nil {
		gs.emit(messages.MessageTypeServerError, &messages.ServerError{Reason: err.Error()})
		return
	}
	gs.dirty = true

	if solve.Direct {
		// the direct variant restores alignment in one shot; there is
		// nothing to animate or interrupt
		result := solver.RunDirect(gs.puzzle, constants.SolveTargetAngle, DirectSolveMaxPasses)
		gs.finishSolve(result, 0)
		return
	}

	gs.solveSteps = 0
	gs.iterSolver = solver.NewIterativeSolver(solver.NewIterativeSolverOptions{
		Puzzle: gs.puzzle,
		Target: constants.SolveTargetAngle,
	})
}

// advancePlayback applies at most one queued move per tick: the next
// shuffle move while shuffling, or the next solver step while solving.
func (gs *GameSession) advancePlayback() {
	switch gs.puzzle.Phase() {
	case puzzle.PhaseShuffling:
		if len(gs.pendingShuffle) == 0 {
			return
		}
		move := gs.pendingShuffle[0]
		gs.pendingShuffle = gs.pendingShuffle[1:]
		gs.puzzle.ApplyMove(move.Ring, move.Delta)
		gs.dirty = true

		if len(gs.pendingShuffle) == 0 {
			if err := gs.puzzle.FinishShuffle(); err != nil {
				log.Error("Session %s failed to finish shuffle: %v", gs.id, err)
				return
			}
			gs.emit(messages.MessageTypeServerShuffleFinish, &messages.ServerShuffleFinish{
				MoveCount: gs.shuffleLength,
			})
		}
	case puzzle.PhaseSolving, puzzle.PhaseWon:
		if gs.iterSolver == nil {
			return
		}
		if gs.iterSolver.Interrupted() {
			gs.finishSolve(solver.ResultInterrupted, gs.solveSteps)
			return
		}
		move := gs.iterSolver.Step()
		if move == nil {
			result := solver.ResultStalled
			if gs.puzzle.IsWon() {
				result = solver.ResultSolved
			}
			gs.finishSolve(result, gs.solveSteps)
			return
		}
		gs.solveSteps++
		gs.dirty = true
		if gs.solveSteps >= constants.SolveMaxIterations {
			gs.finishSolve(solver.ResultStalled, gs.solveSteps)
		}
	}
}

func (gs *GameSession) finishSolve(result solver.Result, steps int) {
	gs.iterSolver = nil
	if err := gs.puzzle.FinishSolve(); err != nil {
		log.Error("Session %s failed to finish solve: %v", gs.id, err)
	}
	gs.dirty = true
	gs.emit(messages.MessageTypeServerSolveResult, &messages.ServerSolveResult{
		Result: result.String(),
		Steps:  steps,
	})
}

// announceWin emits a win event once per game.
func (gs *GameSession) announceWin() {
	if gs.wonAnnounced || !gs.puzzle.IsWon() {
		return
	}
	gs.wonAnnounced = true
	gs.emit(messages.MessageTypeServerGameWon, &messages.ServerGameWon{
		Span: alignment.Span(gs.puzzle.Angles()),
	})
}

// publishSnapshot stores and broadcasts the puzzle state when it changed
// since the last publish.
func (gs *GameSession) publishSnapshot() {
	if !gs.dirty {
		return
	}
	gs.dirty = false

	snapshot := gs.puzzle.Snapshot()
	if err := gs.snapshotManager.Set(snapshot); err != nil {
		log.Error("Session %s failed to store snapshot: %v", gs.id, err)
	}
	gs.emit(messages.MessageTypeServerPuzzleUpdate, &messages.ServerPuzzleUpdate{
		Snapshot: snapshot,
	})
}

// emit queues a broadcast without ever blocking the session loop.
func (gs *GameSession) emit(msgType string, payload interface{}) {
	select {
	case gs.broadcastChan <- workers.BroadcastMessage{
		SessionID: gs.id,
		Type:      msgType,
		Message:   payload,
	}:
	default:
		log.Warn("Session %s broadcast channel full, dropping %s", gs.id, msgType)
	}
}
