package messages

import (
	"encoding/json"

	"github.com/ringlock-game/ringlock/pkg/puzzle"
)

const (
	// MessageBufferSize represents the maximum size of a message
	MessageBufferSize = 1024
)

// Message types
const (
	MessageTypeClientPing           = "ping"
	MessageTypeClientRotateRing     = "crr"
	MessageTypeClientSelectRing     = "csr"
	MessageTypeClientCycleSelection = "ccs"
	MessageTypeClientNewGame        = "cng"
	MessageTypeClientSolve          = "csv"
	MessageTypeClientInterruptSolve = "cis"

	MessageTypeServerPong          = "pong"
	MessageTypeServerPuzzleUpdate  = "spu"
	MessageTypeServerShuffleStart  = "sss"
	MessageTypeServerShuffleFinish = "ssf"
	MessageTypeServerSolveResult   = "ssr"
	MessageTypeServerGameWon       = "sgw"
	MessageTypeServerError         = "serr"
)

// Message represents a generic message for serialization/deserialization
type Message struct {
	ClientID uint32          `json:"clientID"`
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
}

// ClientRotateRing asks the session to rotate a ring by a delta in degrees.
type ClientRotateRing struct {
	Ring  int     `json:"ring"`
	Delta float64 `json:"delta"`
}

// ClientSelectRing sets the selected ring; 0 clears the selection.
type ClientSelectRing struct {
	Ring int `json:"ring"`
}

// ClientNewGame resets the puzzle and starts a fresh shuffle.
type ClientNewGame struct {
	// Count is the number of shuffle moves; 0 means the default
	Count int `json:"count"`
	// Seed fixes the shuffle sequence when non-nil (seeded puzzles, replays)
	Seed *int64 `json:"seed,omitempty"`
}

// ClientSolve asks the session to auto-solve the current puzzle.
type ClientSolve struct {
	// Direct applies whole restoring passes instead of stepping
	// one worst-ring move per tick
	Direct bool `json:"direct"`
}

// ServerPuzzleUpdate carries the current puzzle state to clients.
type ServerPuzzleUpdate struct {
	Snapshot *puzzle.Snapshot `json:"snapshot"`
}

// ServerShuffleStart announces the beginning of scramble playback.
type ServerShuffleStart struct {
	MoveCount int `json:"moveCount"`
}

// ServerShuffleFinish announces the end of scramble playback.
type ServerShuffleFinish struct {
	MoveCount int `json:"moveCount"`
}

// ServerSolveResult reports how a solve run ended.
type ServerSolveResult struct {
	// Result is one of solved, stalled, interrupted
	Result string `json:"result"`
	// Steps is the number of moves the solver committed
	Steps int `json:"steps"`
}

// ServerGameWon announces that the rings aligned.
type ServerGameWon struct {
	// Span is the final covering arc in degrees
	Span float64 `json:"span"`
}

// ServerError reports a rejected client intent.
type ServerError struct {
	Reason string `json:"reason"`
}
