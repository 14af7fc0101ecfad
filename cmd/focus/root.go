package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"focus/internal/config"
	"focus/internal/slogutil"
	"focus/internal/version"
)

var (
	rootFlag     string
	logLevelFlag string
)

var rootCmd = &cobra.Command{
	Use:   "focus",
	Short: "focus - file-context compactor for AI coding assistants",
	Long: `focus keeps at most one source file fully loaded at a time and replaces
every other tracked file with a deterministic structural summary of its
public surface, cutting the repeated-context cost of coding sessions.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("focus version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", "",
		"Project root (default: current working directory)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "",
		"Log level: debug, info, warn, error (default from config)")
}

// projectRoot resolves the effective project root.
// Precedence: --root flag > FOCUS_PROJECTROOT env > working directory.
func projectRoot() (string, error) {
	if rootFlag != "" {
		return rootFlag, nil
	}
	if env := os.Getenv("FOCUS_PROJECTROOT"); env != "" {
		return env, nil
	}
	return os.Getwd()
}

// loadConfig loads the project config with the CLI log level applied.
func loadConfig() (*config.Config, error) {
	root, err := projectRoot()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(root)
	if err != nil {
		return nil, err
	}
	if logLevelFlag != "" {
		cfg.Logging.Level = logLevelFlag
	}
	return cfg, nil
}

// buildLogger creates a logger per config, writing to the configured file
// or the given fallback stream. The returned closer is non-nil when a log
// file was opened.
func buildLogger(cfg *config.Config, fallback io.Writer) (*slog.Logger, io.Closer, error) {
	level := slogutil.LevelFromString(cfg.Logging.Level)

	if cfg.Logging.File != "" {
		return slogutil.NewFileLoggerWithRotation(cfg.Logging.File, level, cfg.Logging.MaxSize, cfg.Logging.MaxBackups)
	}
	return slogutil.NewLogger(fallback, level), nil, nil
}
