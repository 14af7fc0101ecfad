package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"focus/internal/config"
	"focus/internal/version"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show effective configuration for this project",
	Long: `Show the configuration focus would run with in this project: project
root, tracking limits, logging, and metrics store location. Context state
itself lives inside a running MCP server; use the contextStatus tool to
inspect it.`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Printf("focus %s\n\n", version.Version)
	fmt.Printf("Project root:      %s\n", cfg.ProjectRoot)
	fmt.Printf("Max tracked files: %d\n", cfg.MaxTrackedFiles)
	fmt.Printf("Max doc lines:     %d\n", cfg.MaxDocLines)

	logTarget := cfg.Logging.File
	if logTarget == "" {
		logTarget = "stderr"
	}
	fmt.Printf("Logging:           %s (%s)\n", logTarget, cfg.Logging.Level)

	if cfg.Metrics.Enabled {
		dbPath := filepath.Join(config.ConfigDir(cfg.ProjectRoot), "focus.db")
		if _, err := os.Stat(dbPath); err == nil {
			fmt.Printf("Metrics store:     %s\n", dbPath)
		} else {
			fmt.Printf("Metrics store:     %s (not yet created)\n", dbPath)
		}
	} else {
		fmt.Println("Metrics store:     disabled")
	}

	configPath := filepath.Join(config.ConfigDir(cfg.ProjectRoot), "config.toml")
	if _, err := os.Stat(configPath); err == nil {
		fmt.Printf("Config file:       %s\n", configPath)
	} else {
		fmt.Println("Config file:       defaults (run 'focus init' to create one)")
	}
	return nil
}
