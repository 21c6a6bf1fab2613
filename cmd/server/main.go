/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the order report engine server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Open the SQLite calendar-settings repository
  3. Optionally seed settings from a JSON document
  4. Configure HTTP router
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port      HTTP server port (default: 8080)
  -db        SQLite settings database path (default: settings.db)
             Use ":memory:" for an in-memory database
  -holidays  Optional settings JSON to seed at startup

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close the settings database
  4. Exit

EXAMPLES:
  # Run with file database
  ./server -db="./data/settings.db"

  # Seed this year's calendar at startup
  ./server -holidays=./calendar-2025.json

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - store/sqlite/sqlite.go: Settings repository
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/warp/order-report-engine/api"
	"github.com/warp/order-report-engine/factory"
	"github.com/warp/order-report-engine/store/sqlite"
)

func main() {
	// Flags
	port := flag.Int("port", 8080, "HTTP server port")
	dbPath := flag.String("db", "settings.db", "SQLite settings database path")
	holidaysPath := flag.String("holidays", "", "settings JSON to seed at startup")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	// Settings repository
	settings, err := sqlite.New(*dbPath)
	if err != nil {
		logger.Error("failed to open settings database", slog.Any("error", err))
		os.Exit(1)
	}
	defer settings.Close()

	// Optional startup seed
	if *holidaysPath != "" {
		data, err := os.ReadFile(*holidaysPath)
		if err != nil {
			logger.Error("failed to read holidays file", slog.Any("error", err))
			os.Exit(1)
		}
		entries, err := factory.ParseSettings(data)
		if err != nil {
			logger.Error("failed to parse holidays file", slog.Any("error", err))
			os.Exit(1)
		}
		if err := factory.Seed(context.Background(), settings, entries); err != nil {
			logger.Error("failed to seed holidays", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("seeded calendar settings", slog.Int("entries", len(entries)))
	}

	// Router and server
	handler := api.NewHandler(settings, logger)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("server starting", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("server stopped")
}
