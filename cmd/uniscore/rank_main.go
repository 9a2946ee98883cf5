package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/uniscore/uniscore/internal/classify"
	"github.com/uniscore/uniscore/internal/config"
	"github.com/uniscore/uniscore/internal/country"
	"github.com/uniscore/uniscore/internal/engine"
	"github.com/uniscore/uniscore/internal/scoring"
	"github.com/uniscore/uniscore/internal/verified"
)

// buildEngine assembles an engine from the configured table paths,
// falling back to compiled-in defaults for anything unset.
func buildEngine(ctx context.Context, flags *pflag.FlagSet) (*engine.Engine, config.App, error) {
	cfgPath, _ := flags.GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, config.App{}, err
	}

	opts := engine.Options{}

	if cfg.Data.PostgresDSN != "" {
		src, err := verified.OpenSQLSource(ctx, cfg.Data.PostgresDSN)
		if err != nil {
			return nil, config.App{}, err
		}
		opts.Records = src
	} else if cfg.Data.VerifiedPath != "" {
		opts.Records = verified.YAMLSource{Path: cfg.Data.VerifiedPath}
	}

	if cfg.Data.CountryPath != "" {
		table, err := country.LoadTable(cfg.Data.CountryPath)
		if err != nil {
			return nil, config.App{}, err
		}
		opts.Countries = table
	}

	if cfg.Data.PatternPath != "" {
		rules, err := classify.LoadRules(cfg.Data.PatternPath)
		if err != nil {
			return nil, config.App{}, err
		}
		opts.Rules = rules
	}

	eng, err := engine.New(ctx, opts)
	if err != nil {
		return nil, config.App{}, err
	}
	return eng, cfg, nil
}

// parseQuery splits a CLI query into (name, country). A trailing
// ", Country" segment wins over the --country flag.
func parseQuery(args []string, flagCountry string) (string, string) {
	raw := strings.Join(args, " ")
	if idx := strings.LastIndex(raw, ","); idx >= 0 {
		name := strings.TrimSpace(raw[:idx])
		countryName := strings.TrimSpace(raw[idx+1:])
		if name != "" && countryName != "" {
			return name, countryName
		}
	}
	return strings.TrimSpace(raw), flagCountry
}

func runRank(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	eng, _, err := buildEngine(ctx, cmd.Flags())
	if err != nil {
		return err
	}

	flagCountry, _ := cmd.Flags().GetString("country")
	name, countryName := parseQuery(args, flagCountry)

	result, err := eng.Rank(ctx, name, countryName)
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	printReport(result)
	return nil
}

func runExplain(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	eng, _, err := buildEngine(ctx, cmd.Flags())
	if err != nil {
		return err
	}

	flagCountry, _ := cmd.Flags().GetString("country")
	name, countryName := parseQuery(args, flagCountry)

	result, err := eng.Rank(ctx, name, countryName)
	if err != nil {
		return err
	}

	index, _ := cmd.Flags().GetInt("pillar")
	entry, err := engine.ExplainPillar(result, index)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %.1f/%.0f (±%.1f, %s)\n", entry.Name, entry.Adjusted, entry.Max, entry.ErrorMargin, entry.Source)
	for _, factor := range entry.Factors {
		fmt.Printf("  - %s\n", factor)
	}
	fmt.Println(entry.Sentence)
	return nil
}

func runTiers(_ *cobra.Command, _ []string) error {
	fmt.Println("Tier   Range      Description")
	for _, r := range scoring.TierRanges() {
		fmt.Printf("%-6s %3.0f-%-5.0f %s\n", r.Tier, r.Low, r.High, r.Tier.Description())
	}
	return nil
}

func printReport(result *engine.ScoringResult) {
	fmt.Printf("Institution: %s\n", result.Institution)
	fmt.Printf("Country:     %s\n", result.Country)
	fmt.Printf("Type:        %s (%s scope)\n", result.Type.Label(), result.Scope)
	if result.Estimated {
		fmt.Printf("Data:        estimated (quality %.2f)\n", result.DataQuality)
	} else {
		fmt.Printf("Data:        verified\n")
	}
	fmt.Println()

	fmt.Printf("%-32s %9s %6s\n", "Pillar", "Score", "Max")
	for _, ps := range result.Breakdown {
		fmt.Printf("%-32s %4.1f±%-4.1f %4.0f\n", ps.Name, ps.Value, ps.ErrorMargin, ps.Max)
	}
	fmt.Println()

	fmt.Printf("Composite: %.1f / 100 (±%.1f)\n", result.Composite, result.Confidence)
	fmt.Printf("Tier:      %s (%s)\n", result.Tier, result.TierDescription)

	if len(result.Strengths) > 0 {
		fmt.Printf("Strengths: %s\n", strings.Join(result.Strengths, ", "))
	}
	if len(result.Improvements) > 0 {
		fmt.Printf("Improve:   %s\n", strings.Join(result.Improvements, ", "))
	}
	for _, flag := range result.Flags {
		fmt.Printf("Flag:      %s\n", flag)
	}
}
