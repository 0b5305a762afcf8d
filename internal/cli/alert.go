package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aquawatch/aquawatch/pkg/client"
)

func newAlertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alert",
		Short: "Manage alerts",
	}

	cmd.AddCommand(newAlertListCmd())
	cmd.AddCommand(newAlertGetCmd())
	cmd.AddCommand(newAlertAcknowledgeCmd())
	cmd.AddCommand(newAlertResolveCmd())

	return cmd
}

func newAlertListCmd() *cobra.Command {
	var severity, status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List alerts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			alerts, err := apiClient.Alerts().List(ctx, &client.AlertListOptions{
				Status:   status,
				Severity: severity,
			})
			if err != nil {
				return fmt.Errorf("failed to list alerts: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(alerts)
			}

			t := NewTable("ID", "TYPE", "SEVERITY", "STATUS", "LOCATION", "TITLE")
			for _, a := range alerts {
				t.AddRow(
					a.ID,
					a.Type,
					formatSeverity(a.Severity),
					formatStatus(a.Status),
					truncate(a.Location, 24),
					truncate(a.Title, 40),
				)
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&severity, "severity", "", "filter by severity")
	cmd.Flags().StringVar(&status, "status", "", "filter by status")

	return cmd
}

func newAlertGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get alert details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			a, err := apiClient.Alerts().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get alert: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(a)
			}

			fmt.Printf("ID:          %s\n", a.ID)
			fmt.Printf("Type:        %s\n", a.Type)
			fmt.Printf("Severity:    %s\n", formatSeverity(a.Severity))
			fmt.Printf("Status:      %s\n", formatStatus(a.Status))
			fmt.Printf("Title:       %s\n", a.Title)
			fmt.Printf("Description: %s\n", a.Description)
			fmt.Printf("Location:    %s\n", a.Location)
			fmt.Printf("Triggered:   %s\n", a.TriggeredAt.Format("2006-01-02 15:04:05"))
			if a.ResolvedAt != nil {
				fmt.Printf("Resolved:    %s by %s\n", a.ResolvedAt.Format("2006-01-02 15:04:05"), a.ResolvedBy)
			}
			return nil
		},
	}
}

func newAlertAcknowledgeCmd() *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:   "acknowledge <id>",
		Short: "Acknowledge an alert",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if _, err := apiClient.Alerts().Acknowledge(ctx, args[0], user); err != nil {
				return fmt.Errorf("failed to acknowledge alert: %w", err)
			}

			fmt.Printf("Alert %s acknowledged\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "cli", "acknowledging user")

	return cmd
}

func newAlertResolveCmd() *cobra.Command {
	var user, notes string

	cmd := &cobra.Command{
		Use:   "resolve <id>",
		Short: "Resolve an alert",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if _, err := apiClient.Alerts().Resolve(ctx, args[0], user, notes); err != nil {
				return fmt.Errorf("failed to resolve alert: %w", err)
			}

			fmt.Printf("Alert %s resolved\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "cli", "resolving user")
	cmd.Flags().StringVar(&notes, "notes", "", "resolution notes")

	return cmd
}
