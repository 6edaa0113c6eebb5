package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/portalsync/internal/core/ports/driving"
	"github.com/custodia-labs/portalsync/internal/logger"
)

var (
	// Version is set by goreleaser ldflags.
	version = "dev"

	// Verbose enables debug logging.
	verbose bool

	// Services holds injected service implementations for CLI commands.
	provisioner      driving.Provisioner
	schemaRegistrar  driving.SchemaRegistrar
	syncOrchestrator driving.SyncOrchestrator
)

// Services holds the service implementations for CLI commands.
type Services struct {
	Provisioner driving.Provisioner
	Registrar   driving.SchemaRegistrar
	Sync        driving.SyncOrchestrator
}

// SetServices injects service implementations for CLI commands.
func SetServices(s *Services) {
	if s == nil {
		return
	}
	provisioner = s.Provisioner
	schemaRegistrar = s.Registrar
	syncOrchestrator = s.Sync
}

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "portalsync",
	Short: "Index Project Portal records into Microsoft Search and Copilot",
	Long: `Portalsync provisions a Microsoft Graph external connection and keeps it
filled with Project Portal records (projects, milestones, risks, issues).

Each pipeline stage is a separate command: create the connection once,
register its schema once, then run sync on a schedule.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string for the CLI.
func SetVersion(v string) {
	version = v
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose debug output")

	// Use PersistentPreRunE to set verbose mode before any command executes
	rootCmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		return nil
	}
}
