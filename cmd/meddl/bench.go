package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/go-meddl/internal/bench"
	"github.com/example/go-meddl/internal/dialect"
)

func newBenchCmd() *cobra.Command {
	var (
		text      string
		runs      int
		format    string
		maxMeanUS int
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark translation latency",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			if strings.TrimSpace(text) == "" {
				return fmt.Errorf("--text is required for bench")
			}
			if runs < 1 {
				return fmt.Errorf("--runs must be at least 1")
			}
			if format != "table" && format != "json" {
				return fmt.Errorf("--format must be 'table' or 'json'")
			}

			svc, err := dialect.NewService(cfg)
			if err != nil {
				return err
			}

			results, err := runBench(cmd.Context(), svc, text, runs)
			if err != nil {
				return err
			}
			stats := bench.ComputeStats(bench.Durations(results, true))

			writeBench(results, stats, format, cmd.OutOrStdout())

			threshold := time.Duration(maxMeanUS) * time.Microsecond
			return bench.CheckMeanThreshold(stats.Mean, threshold)
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Sentence to translate for each run (required)")
	cmd.Flags().IntVar(&runs, "runs", 100, "Number of translation runs")
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table|json")
	cmd.Flags().IntVar(&maxMeanUS, "max-mean-us", 0, "Exit non-zero if mean warm latency exceeds this many µs (0 = disabled)")

	return cmd
}

func runBench(ctx context.Context, svc *dialect.Service, text string, runs int) ([]bench.RunResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	results := make([]bench.RunResult, 0, runs)

	for i := range runs {
		start := time.Now()
		out, err := svc.Translate(ctx, text, 0)
		if err != nil {
			return nil, fmt.Errorf("run %d failed: %w", i+1, err)
		}
		results = append(results, bench.RunResult{
			Index:    i,
			Cold:     i == 0,
			Duration: time.Since(start),
			Words:    len(strings.Fields(out)),
		})
	}

	return results, nil
}

func writeBench(results []bench.RunResult, stats bench.Stats, format string, w io.Writer) {
	switch format {
	case "json":
		bench.FormatJSON(results, stats, w)
	default:
		bench.FormatTable(results, stats, w)
	}
}
