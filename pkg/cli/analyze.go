package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/josoor-lab/sectorlens/pkg/cli/config"
	"github.com/josoor-lab/sectorlens/pkg/domain/model"
	"github.com/josoor-lab/sectorlens/pkg/domain/types"
	"github.com/josoor-lab/sectorlens/pkg/repository/memory"
	"github.com/josoor-lab/sectorlens/pkg/usecase"
)

func cmdAnalyze() *cli.Command {
	var datasetPath string
	var year int64
	var asJSON bool
	var classifierCfg config.Classifier

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "dataset",
			Aliases:     []string{"d"},
			Usage:       "Dataset JSON file",
			Required:    true,
			Sources:     cli.EnvVars("SECTORLENS_DATASET"),
			Destination: &datasetPath,
		},
		&cli.IntFlag{
			Name:        "year",
			Aliases:     []string{"y"},
			Usage:       "Reporting year to analyze",
			Required:    true,
			Sources:     cli.EnvVars("SECTORLENS_YEAR"),
			Destination: &year,
		},
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "Emit the full snapshot as JSON instead of a summary",
			Destination: &asJSON,
		},
	}
	flags = append(flags, classifierCfg.Flags()...)

	return &cli.Command{
		Name:    "analyze",
		Aliases: []string{"a"},
		Usage:   "Run the analytics pipeline over a dataset file",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			// #nosec G304 - path is expected to be provided by CLI argument
			data, err := os.ReadFile(datasetPath)
			if err != nil {
				return goerr.Wrap(err, "failed to read dataset file", goerr.V("path", datasetPath))
			}

			var ds model.Dataset
			if err := json.Unmarshal(data, &ds); err != nil {
				return goerr.Wrap(err, "failed to parse dataset file", goerr.V("path", datasetPath))
			}

			classifier, err := classifierCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure classifier")
			}

			uc := usecase.New(memory.New(), usecase.WithClassifier(classifier))
			if err := uc.Dataset.Ingest(ctx, &ds); err != nil {
				return goerr.Wrap(err, "failed to ingest dataset")
			}

			snapshot, err := uc.Analytics.Snapshot(ctx, int(year))
			if err != nil {
				return goerr.Wrap(err, "failed to compute snapshot")
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(snapshot)
			}

			printSnapshot(snapshot)
			return nil
		},
	}
}

func printSnapshot(s *model.AnalyticsSnapshot) {
	title := color.New(color.Bold, color.Underline)
	section := color.New(color.Bold)

	title.Printf("Sector analytics for %d\n\n", s.Year)

	section.Println("Health")
	fmt.Printf("  Overall: %s\n", percentSprint(s.Health.Overall))
	fmt.Printf("  Sector:  %s (%d green / %d amber / %d red of %d)\n",
		percentSprint(s.Health.Sector.Percentage),
		s.Health.Sector.Green, s.Health.Sector.Amber, s.Health.Sector.Red, s.Health.Sector.Total)
	fmt.Printf("  Entity:  %s (%d green / %d amber / %d red of %d)\n",
		percentSprint(s.Health.Entity.Percentage),
		s.Health.Entity.Green, s.Health.Entity.Amber, s.Health.Entity.Red, s.Health.Entity.Total)
	for _, a := range s.Health.Indicators {
		fmt.Printf("  %s %s\n", color.RedString("!"), a.Message)
	}
	fmt.Println()

	section.Println("Integration matrix")
	fmt.Printf("  Connections: %d (%d strong, %d weak), health %s\n",
		s.Matrix.Summary.TotalConnections,
		s.Matrix.Summary.StrongConnections,
		s.Matrix.Summary.WeakConnections,
		percentSprint(s.Matrix.Summary.Health))
	for archetype, n := range s.Matrix.Summary.Risks {
		if n > 0 {
			fmt.Printf("  %s: %d\n", archetype, n)
		}
	}
	fmt.Println()

	section.Println("Policy tools")
	counts := map[types.PolicyCategory]int{
		types.CategoryEnforce:   s.PolicyCounts.Enforce,
		types.CategoryIncentive: s.PolicyCounts.Incentive,
		types.CategoryLicense:   s.PolicyCounts.License,
		types.CategoryServices:  s.PolicyCounts.Services,
		types.CategoryRegulate:  s.PolicyCounts.Regulate,
		types.CategoryAwareness: s.PolicyCounts.Awareness,
	}
	for _, category := range types.AllPolicyCategories() {
		fmt.Printf("  %-10s %3d  %s\n", category, counts[category], bandSprint(s.CategoryRisk[category]))
	}
	fmt.Printf("  %-10s %3d\n", "total", s.PolicyCounts.Total)
	fmt.Println()

	section.Printf("Jeopardy alerts (%d)\n", len(s.Alerts))
	for _, alert := range s.Alerts {
		fmt.Printf("  %s %s: %s\n", color.RedString("*"), alert.ObjectiveL1, alert.RootCause)
		fmt.Printf("    %s\n", alert.Recommendation)
	}
}

func percentSprint(pct int) string {
	switch {
	case pct >= 75:
		return color.GreenString("%d%%", pct)
	case pct >= 50:
		return color.YellowString("%d%%", pct)
	default:
		return color.RedString("%d%%", pct)
	}
}

func bandSprint(band types.Band) string {
	switch band {
	case types.BandGreen:
		return color.GreenString(string(band))
	case types.BandAmber:
		return color.YellowString(string(band))
	case types.BandRed:
		return color.RedString(string(band))
	default:
		return color.HiBlackString("none")
	}
}
