package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nikmat04/Gas-Leak-Detection-System/internal/config"
)

func TestBuildForwardFlags(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Listen = "0.0.0.0:8080"
	cfg.DBPath = "/srv/x.db"
	cfg.ModelsDir = "/opt/models"
	cfg.BasePath = "/mon"
	cfg.LogLevel = "debug"

	args := buildForwardFlags(cfg)

	// Every resolved value reaches the daemon child, flag-paired
	want := map[string]string{
		"-config":     cfg.ConfigPath,
		"-listen":     "0.0.0.0:8080",
		"-db":         "/srv/x.db",
		"-models":     "/opt/models",
		"-background": cfg.BackgroundImage,
		"-base-path":  "/mon",
		"-pid-file":   cfg.PidFile,
		"-log-file":   cfg.LogFile,
		"-log-level":  "debug",
	}
	got := map[string]string{}
	for i := 0; i+1 < len(args); i += 2 {
		got[args[i]] = args[i+1]
	}
	assert.Equal(t, want, got)
}
