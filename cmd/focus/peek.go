package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"focus/internal/extract"
	"focus/internal/lang"
	"focus/internal/output"
	"focus/internal/paths"
)

var peekFormat string

var peekCmd = &cobra.Command{
	Use:   "peek <file>",
	Short: "Print the structural summary of a source file",
	Long: `Extract and print the deterministic public-surface summary of a file,
exactly as the MCP peekFile tool would show it. Useful for checking what a
tracked file collapses to.

Formats: text (default) renders the language-idiomatic summary; json and
yaml emit the underlying summary model.`,
	Args: cobra.ExactArgs(1),
	RunE: runPeek,
}

func init() {
	rootCmd.AddCommand(peekCmd)
	peekCmd.Flags().StringVar(&peekFormat, "format", "text", "Output format: text, json, yaml")
}

func runPeek(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	abs := paths.Resolve(args[0], cfg.ProjectRoot)
	rel := paths.Display(abs, cfg.ProjectRoot)

	language, ok := lang.FromPath(abs)
	if !ok {
		return fmt.Errorf("unsupported file type: %s", rel)
	}

	source, err := os.ReadFile(abs)
	if err != nil {
		return err
	}

	extractor := extract.NewExtractor(extract.Options{MaxDocLines: cfg.MaxDocLines})

	switch peekFormat {
	case "text":
		text, err := extractor.Text(context.Background(), source, language, abs)
		if err != nil {
			return err
		}
		fmt.Printf("=== %s [SUMMARY] ===\n%s", rel, text)
		return nil

	case "json", "yaml":
		model, err := extractor.Extract(context.Background(), source, language, abs)
		if err != nil {
			return err
		}
		var data []byte
		if peekFormat == "json" {
			data, err = output.EncodeJSONIndented(model, "  ")
		} else {
			data, err = output.EncodeYAML(model)
		}
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil

	default:
		return fmt.Errorf("unknown format: %s", peekFormat)
	}
}
