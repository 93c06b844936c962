package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/policyposse/legisnet/internal/config"
	"github.com/policyposse/legisnet/internal/dataset"
	"github.com/policyposse/legisnet/internal/render"
	"github.com/policyposse/legisnet/internal/storage"
	"github.com/policyposse/legisnet/internal/subgraph"
	"github.com/policyposse/legisnet/internal/view"
)

var (
	vizOutput   string
	vizFormat   string
	vizMin      int
	vizPolicy   string
	vizStrategy string
	vizState    string
	vizNode     string
	vizQuery    string
)

func init() {
	vizCmd.Flags().StringVarP(&vizOutput, "output", "o", "", "Output file path (default: stdout)")
	vizCmd.Flags().StringVar(&vizFormat, "format", "svg", "Output format: svg or html")
	vizCmd.Flags().IntVar(&vizMin, "min", 0, "Minimum pair collaboration count (1-20, default from config)")
	vizCmd.Flags().StringVar(&vizPolicy, "policy", "all", "Policy id to filter by, or \"all\"")
	vizCmd.Flags().StringVar(&vizStrategy, "strategy", "", "Sampling strategy: random or weighted")
	vizCmd.Flags().StringVar(&vizState, "state", "", "Focus a state (two-letter code)")
	vizCmd.Flags().StringVar(&vizNode, "node", "", "Focus a legislator by id")
	vizCmd.Flags().StringVar(&vizQuery, "search", "", "Dim legislators whose name does not match")
	rootCmd.AddCommand(vizCmd)
}

var vizCmd = &cobra.Command{
	Use:   "viz",
	Short: "Render a filtered network view to SVG or HTML",
	Long: `Render a filtered collaboration network view from the latest snapshot.

The view follows the interactive navigation model: the overview groups
legislators on a state ring, --state moves that state's members to an
inner circle, and --node centers one legislator and shows its detail
panel.

Examples:
  # Overview at the default threshold
  legisnet viz > network.svg

  # Strong California collaborations as a standalone page
  legisnet viz --min 15 --state CA --format html --output ca.html

  # Focus one legislator within a policy area
  legisnet viz --policy 12 --node W000817 --output w000817.svg`,
	RunE: runViz,
}

func runViz(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	if vizFormat != "svg" && vizFormat != "html" {
		return fmt.Errorf("invalid format %q: must be svg or html", vizFormat)
	}

	strategyName := vizStrategy
	if strategyName == "" {
		strategyName = cfg.SamplingStrategy
	}
	strategy, err := subgraph.ParseStrategy(strategyName)
	if err != nil {
		return err
	}

	min := vizMin
	if min == 0 {
		min = cfg.MinCollaborations
	}

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening snapshot store: %w", err)
	}
	defer db.Close()

	raw, err := db.LatestSnapshot()
	if err != nil {
		exitWithError(ExitNoData, "no snapshot loaded; run legisnet load first")
	}
	ds, err := dataset.Parse(raw)
	if err != nil {
		exitWithError(ExitDataError, "parsing stored snapshot: %v", err)
	}

	sg := subgraph.Filter(ds, subgraph.Options{
		MinCollaborations: subgraph.ClampThreshold(min),
		PolicyID:          vizPolicy,
		Strategy:          strategy,
	})

	st := view.Overview()
	if vizNode != "" {
		leg, ok := ds.Legislator(vizNode)
		if !ok {
			return fmt.Errorf("unknown legislator id %q", vizNode)
		}
		st = view.NodeFocus(leg.ID, leg.State)
	} else if vizState != "" {
		st = view.StateFocus(vizState)
	}

	rv := render.Compose(ds, sg, st, vizQuery)

	var out bytes.Buffer
	if vizFormat == "html" {
		page, err := render.HTML(rv)
		if err != nil {
			return fmt.Errorf("rendering html: %w", err)
		}
		out.WriteString(page)
	} else {
		if err := render.SVG(&out, rv); err != nil {
			return fmt.Errorf("rendering svg: %w", err)
		}
	}

	if vizOutput == "" {
		fmt.Print(out.String())
		return nil
	}
	if err := os.WriteFile(vizOutput, out.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	if humanOutput {
		outputHuman("Visualization written to %s\n", vizOutput)
		return nil
	}
	return outputJSON(StatusResponse{Status: "written", Path: vizOutput})
}
