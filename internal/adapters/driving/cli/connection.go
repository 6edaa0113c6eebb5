package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var connectionCmd = &cobra.Command{
	Use:   "connection",
	Short: "Manage the external connection",
}

var connectionCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create the external connection",
	Long: `Creates the configured external connection in the tenant.

Creation is a one-off administrative step. Re-running it against an
existing connection fails with the host's error.`,
	RunE: runConnectionCreate,
}

var connectionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all external connections in the tenant",
	RunE:  runConnectionList,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show connection, schema and item status",
	RunE:  runStatus,
}

func init() {
	connectionCmd.AddCommand(connectionCreateCmd)
	connectionCmd.AddCommand(connectionListCmd)
	rootCmd.AddCommand(connectionCmd)
	rootCmd.AddCommand(statusCmd)
}

func runConnectionCreate(cmd *cobra.Command, _ []string) error {
	if provisioner == nil {
		return errors.New("provisioner not configured")
	}

	conn, err := provisioner.CreateConnection(context.Background())
	if err != nil {
		return fmt.Errorf("create connection: %w", err)
	}

	cmd.Printf("Connection created.\n")
	cmd.Printf("  ID:    %s\n", conn.ID)
	cmd.Printf("  Name:  %s\n", conn.Name)
	cmd.Printf("  State: %s\n", conn.State)
	return nil
}

func runConnectionList(cmd *cobra.Command, _ []string) error {
	if provisioner == nil {
		return errors.New("provisioner not configured")
	}

	conns, err := provisioner.ListConnections(context.Background())
	if err != nil {
		return fmt.Errorf("list connections: %w", err)
	}

	if len(conns) == 0 {
		cmd.Println("No external connections found.")
		return nil
	}

	for _, c := range conns {
		cmd.Printf("%s\t%s\t%s\n", c.ID, c.Name, c.State)
	}
	return nil
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if provisioner == nil {
		return errors.New("provisioner not configured")
	}

	status, err := provisioner.Status(context.Background())
	if err != nil {
		return fmt.Errorf("status: %w", err)
	}

	cmd.Printf("Connection: %s (%s)\n", status.Connection.ID, status.Connection.State)

	if status.Schema == nil {
		cmd.Println("Schema:     not registered")
	} else {
		cmd.Printf("Schema:     %d properties\n", len(status.Schema.Properties))
	}

	if status.ItemCountKnown {
		cmd.Printf("Items:      %d\n", status.ItemCount)
	} else {
		cmd.Println("Items:      unknown (listing failed)")
	}
	return nil
}
