package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/policyposse/legisnet/internal/config"
	"github.com/policyposse/legisnet/internal/dataset"
	"github.com/policyposse/legisnet/internal/storage"
)

func init() {
	rootCmd.AddCommand(loadCmd)
}

var loadCmd = &cobra.Command{
	Use:   "load <network-data.json>",
	Short: "Validate a dataset file and store it as the newest snapshot",
	Long: `Validate a prepared network-data JSON document and store it as the
newest snapshot in the snapshot database.

The document must carry the legislators, bills, and collaborations keys;
policies and metadata are derived when absent.

Examples:
  # Load a prepared dataset
  legisnet load network_data.json

  # Load into a specific database
  LEGISNET_DB=/var/lib/legisnet/net.db legisnet load network_data.json`,
	Args: cobra.ExactArgs(1),
	RunE: runLoad,
}

// LoadResponse reports what was stored.
type LoadResponse struct {
	Status         string `json:"status"`
	Legislators    int    `json:"legislators"`
	Bills          int    `json:"bills"`
	Collaborations int    `json:"collaborations"`
	Policies       int    `json:"policies"`
	CongressStart  int    `json:"congress_start"`
	CongressEnd    int    `json:"congress_end"`
	DBPath         string `json:"db_path"`
}

func runLoad(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading dataset file: %w", err)
	}

	ds, err := dataset.Parse(data)
	if err != nil {
		var shapeErr *dataset.ShapeError
		if errors.As(err, &shapeErr) {
			exitWithError(ExitDataError, "invalid dataset: %v", shapeErr)
		}
		exitWithError(ExitDataError, "parsing dataset: %v", err)
	}

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening snapshot store: %w", err)
	}
	defer db.Close()

	cr := ds.Metadata.CongressRange
	if err := db.SaveSnapshot(data, cr.Start, cr.End); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}

	resp := LoadResponse{
		Status:         "loaded",
		Legislators:    len(ds.Legislators),
		Bills:          len(ds.Bills),
		Collaborations: len(ds.Collaborations),
		Policies:       len(ds.Policies),
		CongressStart:  cr.Start,
		CongressEnd:    cr.End,
		DBPath:         cfg.DBPath,
	}
	if humanOutput {
		outputHuman("Loaded snapshot into %s: %d legislators, %d bills, %d collaborations, %d policies (congress %d-%d)\n",
			resp.DBPath, resp.Legislators, resp.Bills, resp.Collaborations, resp.Policies, resp.CongressStart, resp.CongressEnd)
		return nil
	}
	return outputJSON(resp)
}
