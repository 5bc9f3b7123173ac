package config

import (
	"flag"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Listen          string `yaml:"listen"`
	DBPath          string `yaml:"database"`
	ModelsDir       string `yaml:"models_dir"`
	BackgroundImage string `yaml:"background_image"`
	BasePath        string `yaml:"base_path"`
	PidFile         string `yaml:"pid_file"`
	LogFile         string `yaml:"log_file"`
	LogLevel        string `yaml:"log_level"`

	// Parsed from command line (not YAML)
	ConfigPath string `yaml:"-"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Listen:          "127.0.0.1:9924",
		DBPath:          "leak_alerts.db",
		ModelsDir:       "models",
		BackgroundImage: "image.jpeg",
		BasePath:        "/",
		PidFile:         "leakmon.pid",
		LogFile:         "leakmon.log",
		LogLevel:        "info",
		ConfigPath:      "config.yaml",
	}
}

// Load reads configuration with priority: defaults < config.yaml < env vars < flags.
// It expects os.Args to already have the subcommand stripped (if any).
func Load() *Config {
	cfg := DefaultConfig()

	// 1) Pre-scan for -config flag before parsing (so we know which file to read)
	configPath := cfg.ConfigPath
	for i, arg := range os.Args[1:] {
		if arg == "-config" || arg == "--config" {
			if i+2 < len(os.Args) {
				configPath = os.Args[i+2]
			}
		} else if strings.HasPrefix(arg, "-config=") || strings.HasPrefix(arg, "--config=") {
			configPath = strings.SplitN(arg, "=", 2)[1]
		}
	}

	// 2) Load YAML config file
	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			log.Warn().Err(err).Str("path", configPath).Msg("failed to parse config file")
		} else {
			log.Debug().Str("path", configPath).Msg("loaded config file")
		}
	}
	cfg.ConfigPath = configPath

	// 3) Environment variables override YAML
	if v := os.Getenv("LEAKMON_LISTEN"); v != "" {
		cfg.Listen = v
	}
	if v := os.Getenv("LEAKMON_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("LEAKMON_MODELS_DIR"); v != "" {
		cfg.ModelsDir = v
	}
	if v := os.Getenv("LEAKMON_BASE_PATH"); v != "" {
		cfg.BasePath = v
	}

	// 4) Flags override everything
	flag.StringVar(&cfg.ConfigPath, "config", cfg.ConfigPath, "Path to config.yaml")
	flag.StringVar(&cfg.Listen, "listen", cfg.Listen, "HTTP listen address (host:port)")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite alert database path")
	flag.StringVar(&cfg.ModelsDir, "models", cfg.ModelsDir, "Directory holding the model artifacts")
	flag.StringVar(&cfg.BackgroundImage, "background", cfg.BackgroundImage, "Background image for the web page")
	flag.StringVar(&cfg.BasePath, "base-path", cfg.BasePath, "Base URL path for reverse proxy")
	flag.StringVar(&cfg.PidFile, "pid-file", cfg.PidFile, "PID file path")
	flag.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Log file path")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (trace|debug|info|warn|error)")
	flag.Parse()

	// Normalize base_path
	cfg.BasePath = NormalizeBasePath(cfg.BasePath)

	return cfg
}

// NormalizeBasePath ensures the base path starts with "/" and has no trailing "/".
// Returns "/" for empty or root paths.
func NormalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" || p == "/" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	p = strings.TrimRight(p, "/")
	return p
}
