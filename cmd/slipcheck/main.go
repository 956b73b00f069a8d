package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/slipcheck/slipcheck/internal/extraction"
	"github.com/slipcheck/slipcheck/internal/submission"
)

func main() {
	// Load .env if present; flags and real env vars still win
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("Failed to load .env file", "error", err)
	}

	fs := ff.NewFlagSet("slipcheck")
	var (
		port        = fs.IntLong("port", 8080, "HTTP server port")
		dbPath      = fs.StringLong("db", "slipcheck.db", "Database file path")
		extractor   = fs.StringLong("extractor", "remote", "Extractor type: 'remote' or 'gemini'")
		extractURL  = fs.StringLong("extract-url", "http://localhost:5001/upload", "Extraction service endpoint URL")
		geminiKey   = fs.StringLong("gemini-key", "", "Google Gemini API key (or set GEMINI_API_KEY env var)")
		geminiModel = fs.StringLong("gemini-model", "gemini-2.5-pro", "Google Gemini model name")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("SLIPCHECK"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Initialize the log store
	slog.Info("Initializing log store...", "path", *dbPath)
	store, err := submission.NewBoltStore(*dbPath)
	if err != nil {
		slog.Error("Failed to initialize log store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	// Restore the persisted submission log
	log := submission.NewLog(store)
	if err := log.Load(); err != nil {
		slog.Error("Failed to load submission log", "error", err)
		os.Exit(1)
	}
	slog.Info("Submission log loaded", "entries", log.Len())

	// Initialize extractor based on type
	var client extraction.Extractor
	switch *extractor {
	case "remote":
		slog.Info("Initializing remote extractor...", "endpoint", *extractURL)
		client, err = extraction.NewRemote(*extractURL)
		if err != nil {
			slog.Error("Failed to initialize remote extractor", "error", err)
			os.Exit(1)
		}
	case "gemini":
		apiKey := *geminiKey
		if apiKey == "" {
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
		if apiKey == "" {
			slog.Error("Gemini API key is required. Set --gemini-key flag or GEMINI_API_KEY environment variable")
			os.Exit(1)
		}
		slog.Info("Initializing Gemini extractor...", "model", *geminiModel)
		client, err = extraction.NewGemini(apiKey, *geminiModel)
		if err != nil {
			slog.Error("Failed to initialize Gemini", "error", err)
			os.Exit(1)
		}
	default:
		slog.Error("Invalid extractor type", "type", *extractor, "valid", "remote or gemini")
		os.Exit(1)
	}
	defer client.Close()

	// Initialize controller and server
	controller := submission.NewController(client, log)
	server := submission.NewServer(controller, log)

	// Start server in goroutine
	addr := fmt.Sprintf(":%d", *port)
	go func() {
		if err := server.Start(addr); err != nil {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("Server started", "address", fmt.Sprintf("http://localhost%s", addr))

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	slog.Info("Shutting down...")
}
