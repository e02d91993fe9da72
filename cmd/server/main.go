// cmd/server/main.go serves the solver over HTTP and WebSocket.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joedrago/clue/internal/config"
	"github.com/joedrago/clue/internal/game"
	"github.com/joedrago/clue/internal/handlers"
	"github.com/joedrago/clue/internal/middleware"
	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	logger := cfg.Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backends := game.ConnectBackends(ctx, cfg, logger)
	defer backends.Close()

	srv := handlers.NewSolveServer(logger)
	srv.MaxPlayers = cfg.MaxPlayers
	opts := backends.Apply(game.Options{})
	srv.Publisher = opts.Publisher
	srv.Store = opts.Store

	mux := http.NewServeMux()
	mux.Handle("/solve", middleware.LogMiddleware(logger)(handlers.SolveHandler(srv)))
	mux.Handle("/solve/ws", middleware.LogMiddleware(logger)(handlers.SolveWSHandler(srv)))

	httpServer := &http.Server{Addr: cfg.ServerAddr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	logger.Infof("Running on %s", cfg.ServerAddr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalf("server exited: %v", err)
	}
}
