package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/nikmat04/Gas-Leak-Detection-System/internal/api"
	"github.com/nikmat04/Gas-Leak-Detection-System/internal/config"
	"github.com/nikmat04/Gas-Leak-Detection-System/internal/predict"
	"github.com/nikmat04/Gas-Leak-Detection-System/internal/store"
)

var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "start":
		os.Args = append([]string{os.Args[0]}, os.Args[2:]...)
		cmdStart()
	case "stop":
		os.Args = append([]string{os.Args[0]}, os.Args[2:]...)
		cmdStop()
	case "status":
		os.Args = append([]string{os.Args[0]}, os.Args[2:]...)
		cmdStatus()
	case "run":
		// Foreground mode (also used internally by daemon child)
		os.Args = append([]string{os.Args[0]}, os.Args[2:]...)
		cmdRun()
	case "version":
		fmt.Printf("leakmon %s\n", version)
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	exe := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, `LeakMon — Gas Leak Prediction System (%s)

Usage:
  %s <command> [flags]

Commands:
  start          Start daemon (background)
  stop           Stop daemon
  status         Show daemon status
  run            Run in foreground
  version        Print version

Flags:
  -config PATH      Config file path (default: config.yaml)
  -listen ADDR      Listen address (default: 127.0.0.1:9924)
  -db PATH          SQLite alert database path
  -models DIR       Model artifact directory
  -background PATH  Background image for the web page
  -base-path P      Base URL path for reverse proxy
  -pid-file P       PID file path
  -log-file P       Log file path
  -log-level L      Log level (trace|debug|info|warn|error)

Examples:
  %s run
  %s start -config /etc/leakmon/config.yaml
  %s stop
  %s status
`, version, exe, exe, exe, exe, exe)
}

// buildForwardFlags forwards the fully resolved config to the daemon
// child, so the child runs with exactly the values the startup banner
// reports regardless of which layer they came from.
func buildForwardFlags(cfg *config.Config) []string {
	return []string{
		"-config", cfg.ConfigPath,
		"-listen", cfg.Listen,
		"-db", cfg.DBPath,
		"-models", cfg.ModelsDir,
		"-background", cfg.BackgroundImage,
		"-base-path", cfg.BasePath,
		"-pid-file", cfg.PidFile,
		"-log-file", cfg.LogFile,
		"-log-level", cfg.LogLevel,
	}
}

func setLogLevel(level string) {
	switch strings.ToLower(level) {
	case "trace":
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn", "warning":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// ---------------------------------------------------------------------------
// run: foreground server (also used by daemon child)
// ---------------------------------------------------------------------------

func cmdRun() {
	cfg := config.Load()
	setLogLevel(cfg.LogLevel)

	// Load model artifacts; the process cannot operate without them
	arts, err := predict.LoadArtifacts(cfg.ModelsDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.ModelsDir).Msg("failed to load model artifacts")
	}
	predictor := predict.NewPredictor(arts)
	log.Info().
		Int("detector_trees", len(arts.Detector.Trees)).
		Int("rate_trees", len(arts.RateModel.Trees)).
		Msg("model artifacts loaded")

	// Open alert store
	db, err := store.New(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("failed to open database")
	}
	defer db.Close()

	// Background image is styling only; run without it if missing
	background, err := os.ReadFile(cfg.BackgroundImage)
	if err != nil {
		log.Warn().Err(err).Str("path", cfg.BackgroundImage).Msg("background image not loaded")
		background = nil
	}

	// Create WebSocket hub for live alert pushes
	hub := api.NewHub()
	go hub.Run()

	// Build HTTP router
	router := api.NewRouter(predictor, db, hub, background, cfg.BasePath)

	srv := &http.Server{
		Addr:    cfg.Listen,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), shutdownSignals...)
	defer stop()

	// Start server
	go func() {
		log.Info().Str("listen", cfg.Listen).Str("base_path", cfg.BasePath).Msgf("LeakMon %s listening", version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for signal
	<-ctx.Done()
	log.Info().Msg("shutting down...")

	shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	srv.Shutdown(shutCtx)

	// Clean up PID file
	os.Remove(cfg.PidFile)
	log.Info().Msg("goodbye")
}

// ---------------------------------------------------------------------------
// PID file helpers
// ---------------------------------------------------------------------------

func writePidFile(path string, pid int) error {
	return os.WriteFile(path, []byte(strconv.Itoa(pid)+"\n"), 0644)
}

func readPidFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, fmt.Errorf("invalid PID in %s", path)
	}
	return pid, nil
}
