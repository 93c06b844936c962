package main

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/policyposse/legisnet/internal/config"
	"github.com/policyposse/legisnet/internal/dataset"
	"github.com/policyposse/legisnet/internal/storage"
)

func init() {
	rootCmd.AddCommand(infoCmd)
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show snapshot store and dataset summary",
	RunE:  runInfo,
}

// InfoResponse summarizes the store and the latest dataset.
type InfoResponse struct {
	DBPath         string                 `json:"db_path"`
	Snapshots      []storage.SnapshotInfo `json:"snapshots"`
	Legislators    int                    `json:"legislators,omitempty"`
	Bills          int                    `json:"bills,omitempty"`
	Collaborations int                    `json:"collaborations,omitempty"`
	Policies       int                    `json:"policies,omitempty"`
}

func runInfo(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening snapshot store: %w", err)
	}
	defer db.Close()

	infos, err := db.Info()
	if err != nil {
		return fmt.Errorf("listing snapshots: %w", err)
	}

	resp := InfoResponse{DBPath: cfg.DBPath, Snapshots: infos}
	if raw, err := db.LatestSnapshot(); err == nil {
		if ds, err := dataset.Parse(raw); err == nil {
			resp.Legislators = len(ds.Legislators)
			resp.Bills = len(ds.Bills)
			resp.Collaborations = len(ds.Collaborations)
			resp.Policies = len(ds.Policies)
		}
	}

	if humanOutput {
		outputHuman("Store: %s (%d snapshots)\n", resp.DBPath, len(resp.Snapshots))
		if resp.Legislators > 0 {
			outputHuman("Latest: %d legislators, %d bills, %d collaborations, %d policies\n",
				resp.Legislators, resp.Bills, resp.Collaborations, resp.Policies)
		}
		return nil
	}
	return outputJSON(resp)
}
