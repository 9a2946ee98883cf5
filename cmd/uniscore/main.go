package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const (
	appName = "UniScore"
	version = "v1.2.0"
)

func main() {
	setupLogging()

	rootCmd := &cobra.Command{
		Use:     "uniscore",
		Short:   "Deterministic, explainable university scoring",
		Version: version,
		Long: `UniScore scores universities and colleges on six weighted pillars,
producing a 0-100 composite, a tier grade, a per-pillar breakdown and a
traceable rationale. Scores for institutions outside the verified
database are heuristic estimates, clearly flagged with wide error
margins; nothing here is a claim of factual accuracy.`,
	}

	rankCmd := &cobra.Command{
		Use:   "rank <institution>",
		Short: "Score a single institution",
		Long: `Scores one institution and prints the full report. The argument is
either the institution name (use --country) or a "Name, Country" pair.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runRank,
	}
	rankCmd.Flags().String("country", "", "Country of the institution")
	rankCmd.Flags().Bool("json", false, "Emit the raw JSON result")

	explainCmd := &cobra.Command{
		Use:   "explain <institution>",
		Short: "Explain one pillar of an institution's score",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runExplain,
	}
	explainCmd.Flags().String("country", "", "Country of the institution")
	explainCmd.Flags().Int("pillar", 0, "Pillar index (0-5)")

	tiersCmd := &cobra.Command{
		Use:   "tiers",
		Short: "Print the tier table",
		RunE:  runTiers,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the scoring HTTP API",
		Long:  "Starts the JSON API with /v1/rank, /health and /metrics endpoints",
		RunE:  runServe,
	}

	for _, cmd := range []*cobra.Command{rankCmd, explainCmd, tiersCmd, serveCmd} {
		cmd.Flags().String("config", "", "Path to configuration file")
		rootCmd.AddCommand(cmd)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setupLogging picks the console writer on a TTY and JSON otherwise, so
// piped output stays machine-readable.
func setupLogging() {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if term.IsTerminal(int(os.Stderr.Fd())) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}
