package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/portalsync/internal/core/ports/driving"
)

var syncTest bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Synchronise Project Portal records into the connection",
	Long: `Fetches projects, milestones, risks and issues from the Project Portal
database, transforms each row into an external item and pushes it to the
connection. Failures are isolated per item; the run continues.`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&syncTest, "test", false,
		"push built-in sample items instead of reading the database")
	rootCmd.AddCommand(syncCmd)
}

const maxFailedIDsShown = 10

func runSync(cmd *cobra.Command, _ []string) error {
	if syncOrchestrator == nil {
		return errors.New("sync orchestrator not configured")
	}
	ctx := context.Background()

	var (
		report *driving.SyncReport
		err    error
	)
	if syncTest {
		cmd.Println("Pushing sample items...")
		report, err = syncOrchestrator.SyncSamples(ctx)
	} else {
		cmd.Println("Synchronising Project Portal records...")
		report, err = syncOrchestrator.SyncAll(ctx)
	}
	if err != nil {
		return fmt.Errorf("sync: %w", err)
	}

	cmd.Printf("Run %s: %d succeeded, %d failed\n", report.RunID, report.Success, report.Failed)
	if len(report.FailedIDs) > 0 {
		cmd.Println("Failed items:")
		shown := report.FailedIDs
		if len(shown) > maxFailedIDsShown {
			shown = shown[:maxFailedIDsShown]
		}
		for _, id := range shown {
			cmd.Printf("  - %s\n", id)
		}
		if extra := len(report.FailedIDs) - len(shown); extra > 0 {
			cmd.Printf("  ... and %d more\n", extra)
		}
	}
	return nil
}
