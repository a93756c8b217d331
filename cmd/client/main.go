package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	apihandlers "github.com/ringlock-game/ringlock/pkg/api/handlers"
	"github.com/ringlock-game/ringlock/pkg/log"
	"github.com/ringlock-game/ringlock/pkg/messages"
	"github.com/ringlock-game/ringlock/pkg/network"
	"nhooyr.io/websocket"
)

// A headless autoplay client: creates a session, scrambles the puzzle,
// asks the server to solve it and logs progress until the rings align.
func main() {
	apiAddr := flag.String("api-addr", "http://localhost:8880", "Base URL of the HTTP API")
	wsAddr := flag.String("ws-addr", "ws://localhost:8881", "Base URL of the WebSocket server")
	shuffleCount := flag.Int("shuffle-count", 25, "Number of shuffle moves")
	seed := flag.Int64("seed", 0, "Shuffle seed (0 means random)")
	direct := flag.Bool("direct", false, "Use the direct solver instead of the step-by-step solver")
	timeout := flag.Duration("timeout", 60*time.Second, "Give up after this long")
	logLevel := flag.String("log-level", "info", "Log level")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}
	log.SetDefaultLogger(log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel))

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := run(ctx, *apiAddr, *wsAddr, *shuffleCount, *seed, *direct); err != nil {
		log.Error("Autoplay failed: %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, apiAddr, wsAddr string, shuffleCount int, seed int64, direct bool) error {
	created, err := createSession(ctx, apiAddr)
	if err != nil {
		return fmt.Errorf("failed to create session: %v", err)
	}
	log.Info("Created session %s", created.ID)

	conn, _, err := websocket.Dial(ctx, fmt.Sprintf("%s/ws/%s", wsAddr, created.ID), nil)
	if err != nil {
		return fmt.Errorf("failed to connect to WebSocket server: %v", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	newGame := &messages.ClientNewGame{Count: shuffleCount}
	if seed != 0 {
		newGame.Seed = &seed
	}
	if err := send(ctx, conn, messages.MessageTypeClientNewGame, newGame); err != nil {
		return err
	}
	log.Info("Requested a %d-move shuffle", shuffleCount)

	for {
		msg, err := network.ReadMessageFromWS(ctx, conn)
		if err != nil {
			return fmt.Errorf("failed to read message: %v", err)
		}

		switch msg.Type {
		case messages.MessageTypeServerPuzzleUpdate:
			update := &messages.ServerPuzzleUpdate{}
			if err := json.Unmarshal(msg.Payload, update); err != nil {
				return fmt.Errorf("failed to unmarshal puzzle update: %v", err)
			}
			log.Debug("Puzzle %s: angles %v", update.Snapshot.Phase, update.Snapshot.Angles)
		case messages.MessageTypeServerShuffleFinish:
			log.Info("Shuffle finished, requesting solve (direct=%t)", direct)
			if err := send(ctx, conn, messages.MessageTypeClientSolve, &messages.ClientSolve{Direct: direct}); err != nil {
				return err
			}
		case messages.MessageTypeServerSolveResult:
			result := &messages.ServerSolveResult{}
			if err := json.Unmarshal(msg.Payload, result); err != nil {
				return fmt.Errorf("failed to unmarshal solve result: %v", err)
			}
			log.Info("Solve finished: %s after %d steps", result.Result, result.Steps)
			if result.Result != "solved" {
				return fmt.Errorf("solver reported %s", result.Result)
			}
		case messages.MessageTypeServerGameWon:
			won := &messages.ServerGameWon{}
			if err := json.Unmarshal(msg.Payload, won); err != nil {
				return fmt.Errorf("failed to unmarshal game won message: %v", err)
			}
			log.Info("Rings aligned, covering span %.2f degrees", won.Span)
			return nil
		case messages.MessageTypeServerError:
			serverErr := &messages.ServerError{}
			if err := json.Unmarshal(msg.Payload, serverErr); err != nil {
				return fmt.Errorf("failed to unmarshal server error: %v", err)
			}
			return fmt.Errorf("server rejected intent: %s", serverErr.Reason)
		}
	}
}

func createSession(ctx context.Context, apiAddr string) (*apihandlers.CreateSessionResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiAddr+"/sessions", nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	created := &apihandlers.CreateSessionResponse{}
	if err := json.NewDecoder(resp.Body).Decode(created); err != nil {
		return nil, err
	}
	return created, nil
}

func send(ctx context.Context, conn *websocket.Conn, msgType string, payload interface{}) error {
	msg, err := messages.NewMessage(0, msgType, payload)
	if err != nil {
		return err
	}
	return network.WriteMessageToWS(ctx, conn, msg)
}
