package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/okian/riskradar/internal/adapters/dataset"
	"github.com/okian/riskradar/internal/domain/model"
	"github.com/okian/riskradar/internal/domain/normalize"
	"github.com/okian/riskradar/internal/domain/scoring"
	"github.com/okian/riskradar/internal/domain/weights"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "radarctl",
		Short: "Score city infrastructure risk from an indicator CSV",
		Long: `radarctl runs the Risk Radar scoring engine once against a CSV of
city infrastructure indicators and prints the ranked assessment.`,
	}

	rootCmd.AddCommand(scoreCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// scoreCmd loads a dataset, applies one weight scenario, and prints the
// ranked composite scores.
func scoreCmd() *cobra.Command {
	var (
		datasetPath string
		weightFlags []string
		format      string
		dropRows    bool
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Rank cities by composite infrastructure risk",
		Long: `Score every city in the dataset under one weight scenario.

Examples:
  # Equal pillar weights
  radarctl score --dataset data/city_infrastructure.csv

  # Emphasize transport and water, slider-style units
  radarctl score --dataset data/city_infrastructure.csv \
    --weight transport=40 --weight water=30 --weight utilities=10 \
    --weight healthcare=10 --weight economic=5 --weight preparedness=5 \
    --weight population=0

  # JSON lines instead of a table
  radarctl score --dataset data/city_infrastructure.csv --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			loader := dataset.New(rowPolicy(dropRows))
			res, err := loader.LoadFile(ctx, datasetPath)
			if err != nil {
				return fmt.Errorf("load dataset: %w", err)
			}
			for _, d := range res.Dropped {
				fmt.Fprintf(os.Stderr, "dropped line %d (%s): %s\n", d.Line, d.City, d.Reason)
			}

			norm := normalize.New()
			cfg, err := scenarioWeights(weightFlags, norm.Pillars())
			if err != nil {
				return err
			}

			scorer := scoring.New()
			scored, err := scoreAll(res.Records, norm, scorer, cfg)
			if err != nil {
				return err
			}

			switch format {
			case "table":
				printTable(scored)
			case "json":
				return printJSON(scored)
			default:
				return fmt.Errorf("unknown format %q; use table or json", format)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&datasetPath, "dataset", "", "path to the indicator CSV (required)")
	cmd.Flags().StringArrayVar(&weightFlags, "weight", nil, "pillar weight as name=value; repeat per pillar, omit for equal weights")
	cmd.Flags().StringVar(&format, "format", "table", "output format: table or json")
	cmd.Flags().BoolVar(&dropRows, "drop-bad-rows", false, "drop and report bad rows instead of aborting the load")
	_ = cmd.MarkFlagRequired("dataset")

	return cmd
}

func rowPolicy(drop bool) dataset.Option {
	if drop {
		return dataset.WithRowPolicy(dataset.PolicyDrop)
	}
	return dataset.WithRowPolicy(dataset.PolicyReject)
}

// scenarioWeights parses repeated name=value flags into a validated
// configuration; no flags means equal weights.
func scenarioWeights(flags []string, pillars []model.Pillar) (weights.Configuration, error) {
	if len(flags) == 0 {
		return weights.Equal(pillars), nil
	}
	requested := make(map[model.Pillar]float64, len(flags))
	for _, f := range flags {
		name, value, ok := strings.Cut(f, "=")
		if !ok {
			return nil, fmt.Errorf("malformed --weight %q; expected name=value", f)
		}
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed --weight %q: %w", f, err)
		}
		requested[model.Pillar(strings.TrimSpace(name))] = v
	}
	cfg, err := weights.Normalize(requested, pillars)
	if err != nil {
		return nil, fmt.Errorf("invalid weights: %w", err)
	}
	return cfg, nil
}

func scoreAll(records []model.IndicatorRecord, norm *normalize.Normalizer, scorer *scoring.Scorer, cfg weights.Configuration) ([]model.CompositeScoreRecord, error) {
	out := make([]model.CompositeScoreRecord, 0, len(records))
	for _, rec := range records {
		gaps, err := norm.Vector(rec)
		if err != nil {
			return nil, fmt.Errorf("normalize %s: %w", rec.ID, err)
		}
		composite, breakdown, err := scorer.Score(gaps, cfg)
		if err != nil {
			return nil, fmt.Errorf("score %s: %w", rec.ID, err)
		}
		out = append(out, model.CompositeScoreRecord{
			ID:        rec.ID,
			City:      rec.City,
			Country:   rec.Country,
			Composite: composite,
			Level:     scorer.Classify(composite),
			Breakdown: breakdown,
		})
	}

	// Rank by composite descending, ties broken on id.
	sort.Slice(out, func(i, j int) bool {
		if out[i].Composite != out[j].Composite {
			return out[i].Composite > out[j].Composite
		}
		return out[i].ID < out[j].ID
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out, nil
}

func printTable(records []model.CompositeScoreRecord) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tCITY\tCOUNTRY\tCOMPOSITE\tLEVEL")
	for _, r := range records {
		fmt.Fprintf(w, "%d\t%s\t%s\t%.4f\t%s\n", r.Rank, r.City, r.Country, r.Composite, r.Level)
	}
	_ = w.Flush()
}

func printJSON(records []model.CompositeScoreRecord) error {
	enc := json.NewEncoder(os.Stdout)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode record: %w", err)
		}
	}
	return nil
}
