package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/portalsync/internal/core/domain"
	"github.com/custodia-labs/portalsync/internal/core/ports/driving"
)

var (
	schemaForce        bool
	schemaMaxWait      time.Duration
	schemaPollInterval time.Duration
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Manage the connection schema",
}

var schemaRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Register the property schema and wait for the build",
	Long: `Submits the Project Portal property schema and polls the asynchronous
build operation until it completes, fails, or the wait budget elapses.

Schema builds routinely take 5-15 minutes. A timeout does not mean
failure: re-check later with "schema status".`,
	RunE: runSchemaRegister,
}

var schemaStatusCmd = &cobra.Command{
	Use:   "status [operation-ref]",
	Short: "Check a schema build operation, or list all operations",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSchemaStatus,
}

func init() {
	schemaRegisterCmd.Flags().BoolVar(&schemaForce, "force", false,
		"register even if a schema is already present")
	schemaRegisterCmd.Flags().DurationVar(&schemaMaxWait, "max-wait", 0,
		"overall wait budget for the build (default from config)")
	schemaRegisterCmd.Flags().DurationVar(&schemaPollInterval, "poll-interval", 0,
		"delay between status checks (default from config)")

	schemaCmd.AddCommand(schemaRegisterCmd)
	schemaCmd.AddCommand(schemaStatusCmd)
	rootCmd.AddCommand(schemaCmd)
}

// waitDefaults are injected from config by main.
var (
	defaultMaxWait      time.Duration
	defaultPollInterval time.Duration
)

// SetSchemaWaitDefaults sets the configured wait budget and poll interval.
func SetSchemaWaitDefaults(maxWait, pollInterval time.Duration) {
	defaultMaxWait = maxWait
	defaultPollInterval = pollInterval
}

func runSchemaRegister(cmd *cobra.Command, _ []string) error {
	if schemaRegistrar == nil {
		return errors.New("schema registrar not configured")
	}
	ctx := context.Background()

	// An existing schema is only replaced when asked to.
	existing, err := schemaRegistrar.CurrentSchema(ctx)
	switch {
	case err == nil:
		if !schemaForce {
			cmd.Printf("A schema with %d properties is already registered. Re-run with --force to update it.\n",
				len(existing.Properties))
			return nil
		}
		cmd.Printf("Updating existing schema (%d properties).\n", len(existing.Properties))
	case errors.Is(err, domain.ErrSchemaNotFound):
		// First registration.
	default:
		return fmt.Errorf("check existing schema: %w", err)
	}

	op, err := schemaRegistrar.Register(ctx)
	if err != nil {
		return fmt.Errorf("register schema: %w", err)
	}
	cmd.Printf("Schema submitted. Operation: %s\n", op.Ref)

	maxWait := schemaMaxWait
	if maxWait == 0 {
		maxWait = defaultMaxWait
	}
	pollInterval := schemaPollInterval
	if pollInterval == 0 {
		pollInterval = defaultPollInterval
	}

	cmd.Printf("Waiting up to %s for the schema build...\n", maxWait)
	outcome, err := schemaRegistrar.WaitForCompletion(ctx, op.Ref, maxWait, pollInterval)

	switch outcome {
	case driving.WaitCompleted:
		cmd.Println("Schema build completed. Next step: run \"portalsync sync\".")
		return nil
	case driving.WaitFailed:
		return fmt.Errorf("schema build failed: %w", err)
	case driving.WaitTimedOut:
		if err != nil && !errors.Is(err, domain.ErrSchemaBuildTimedOut) {
			return fmt.Errorf("schema wait aborted: %w", err)
		}
		cmd.Printf("Wait budget exhausted; the build may still finish. Check later with:\n")
		cmd.Printf("  portalsync schema status %s\n", op.Ref)
		return nil
	default:
		return err
	}
}

func runSchemaStatus(cmd *cobra.Command, args []string) error {
	if schemaRegistrar == nil {
		return errors.New("schema registrar not configured")
	}

	// Without a reference, list everything the connection has recorded.
	if len(args) == 0 {
		ops, err := schemaRegistrar.Operations(context.Background())
		if err != nil {
			return fmt.Errorf("list operations: %w", err)
		}
		if len(ops) == 0 {
			cmd.Println("No operations found.")
			return nil
		}
		for _, op := range ops {
			line := fmt.Sprintf("%s  %s", op.Ref, op.Status)
			if op.ErrorMessage != "" {
				line += "  " + op.ErrorMessage
			}
			cmd.Println(line)
		}
		return nil
	}

	op, err := schemaRegistrar.OperationStatus(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("operation status: %w", err)
	}

	cmd.Printf("Operation: %s\n", op.Ref)
	cmd.Printf("Status:    %s\n", op.Status)
	if op.ErrorMessage != "" {
		cmd.Printf("Error:     %s\n", op.ErrorMessage)
	}
	return nil
}
