package main

import (
	"os"

	"github.com/spf13/cobra"

	"focus/internal/cache"
	"focus/internal/controller"
	"focus/internal/extract"
	"focus/internal/mcp"
	"focus/internal/storage"
	"focus/internal/version"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for coding-assistant integration",
	Long: `Start the Model Context Protocol (MCP) server.

The server communicates over stdio using JSON-RPC 2.0 and exposes the
file-context tools:
  - readFile:      load a file in full and make it active
  - peekFile:      summarize a file without switching the active file
  - editFile:      replace exactly one occurrence of a string
  - writeFile:     create or overwrite a file
  - forgetFile:    drop a file from tracking
  - contextStatus: report context contents and savings
  - contextMetrics: aggregated operation metrics

This command is typically invoked by MCP clients, not directly by users.
Logs go to stderr or the configured log file; stdout carries the protocol.`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// stdout carries the protocol; logs must go elsewhere.
	logger, closer, err := buildLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	ctx := cache.NewContext(cache.Config{MaxTrackedFiles: cfg.MaxTrackedFiles})
	extractor := extract.NewExtractor(extract.Options{MaxDocLines: cfg.MaxDocLines})
	ctrl := controller.New(ctx, extractor, cfg.ProjectRoot, logger)

	var db *storage.DB
	if cfg.Metrics.Enabled {
		db, err = storage.Open(cfg.ProjectRoot, logger)
		if err != nil {
			logger.Warn("metrics store unavailable, continuing without it", "error", err)
		} else {
			defer db.Close()
		}
	}

	server := mcp.NewServer(version.Version, ctrl, db, logger)
	if err := server.Start(); err != nil {
		logger.Error("MCP server error", "error", err.Error())
		return err
	}
	return nil
}
