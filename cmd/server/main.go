package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ringlock-game/ringlock/pkg/api"
	"github.com/ringlock-game/ringlock/pkg/log"
	"github.com/ringlock-game/ringlock/pkg/network"
	"github.com/ringlock-game/ringlock/pkg/puzzle/constants"
	"github.com/ringlock-game/ringlock/pkg/session"
	"github.com/ringlock-game/ringlock/pkg/version"
	"github.com/ringlock-game/ringlock/pkg/workers"
)

func main() {
	apiPort := flag.Int("api-port", 8880, "HTTP API port to listen on")
	wsPort := flag.Int("ws-port", 8881, "WebSocket port to listen on")
	tickInterval := flag.Duration("tick-interval", 50*time.Millisecond, "Session loop tick interval")
	shuffleCount := flag.Int("shuffle-count", constants.DefaultShuffleCount, "Default number of shuffle moves per new game")
	logLevel := flag.String("log-level", "info", "Log level")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Info("Log level set to %s", parsedLogLevel)

	log.Info("Starting ringlock server version %s", version.Get())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	broadcastChan := make(chan workers.BroadcastMessage, 1024)
	sessionManager := session.NewSessionManager(session.NewSessionManagerOptions{
		BroadcastChan: broadcastChan,
		TickInterval:  *tickInterval,
		ShuffleCount:  *shuffleCount,
	})

	subscriberManager := network.NewSubscriberManager()
	broadcastWorker := workers.NewBroadcastMessageWorker(workers.NewBroadcastMessageWorkerOptions{
		SubscriberManager:    subscriberManager,
		BroadcastMessageChan: broadcastChan,
	})
	go broadcastWorker.Start(ctx)

	wsServer := network.NewWSServer(network.NewWSServerOptions{
		Port:              *wsPort,
		SubscriberManager: subscriberManager,
		SessionChecker:    sessionManager.HasSession,
		MessageHandler:    newSubscriberMessageHandler(sessionManager),
	})
	go wsServer.Start(ctx)

	apiServer := api.NewAPIServer(api.NewAPIServerOptions{
		Port:           *apiPort,
		SessionManager: sessionManager,
		SessionContext: ctx,
	})
	go apiServer.Start()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Info("Shutting down")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := apiServer.Stop(shutdownCtx); err != nil {
		log.Error("Failed to stop API server: %v", err)
	}
}
