package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"focus/internal/output"
	"focus/internal/slogutil"
	"focus/internal/storage"
)

var (
	metricsSince  time.Duration
	metricsLimit  int
	metricsFormat string
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Show aggregated operation metrics for this project",
	RunE:  runMetrics,
}

func init() {
	rootCmd.AddCommand(metricsCmd)
	metricsCmd.Flags().DurationVar(&metricsSince, "since", 24*time.Hour, "Look-back window")
	metricsCmd.Flags().IntVar(&metricsLimit, "limit", 20, "Recent operations to list")
	metricsCmd.Flags().StringVar(&metricsFormat, "format", "text", "Output format: text, json")
}

func runMetrics(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := storage.Open(cfg.ProjectRoot, slogutil.NewDiscardLogger())
	if err != nil {
		return err
	}
	defer db.Close()

	since := time.Now().Add(-metricsSince)
	aggregates, err := db.Aggregates(since)
	if err != nil {
		return err
	}
	recent, err := db.RecentOperations(metricsLimit)
	if err != nil {
		return err
	}

	if metricsFormat == "json" {
		data, err := output.EncodeJSONIndented(map[string]interface{}{
			"since":      since,
			"operations": aggregates,
			"recent":     recent,
		}, "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	if len(aggregates) == 0 {
		fmt.Printf("No operations recorded in the last %s.\n", metricsSince)
		return nil
	}

	fmt.Printf("Operations since %s:\n\n", since.Format(time.RFC3339))
	fmt.Printf("  %-10s %8s %8s %10s %10s %8s\n", "OP", "COUNT", "FAILED", "AVG MS", "SAVED%", "")
	for _, agg := range aggregates {
		fmt.Printf("  %-10s %8d %8d %10.1f %9.1f%%\n",
			agg.Operation, agg.Count, agg.Failures, agg.AvgMs, agg.SavingsPct)
	}

	if len(recent) > 0 {
		fmt.Printf("\nRecent operations:\n")
		for _, rec := range recent {
			marker := ""
			if rec.Failed {
				marker = " FAILED " + rec.ErrorCode
			}
			fmt.Printf("  %s %-6s %s%s\n",
				rec.RecordedAt.Format("15:04:05"), rec.Operation, rec.Path, marker)
		}
	}
	return nil
}
