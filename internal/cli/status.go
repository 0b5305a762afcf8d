package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show server health and system overview",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			health, err := apiClient.Dashboard().Health(ctx)
			if err != nil {
				return fmt.Errorf("server unreachable: %w", err)
			}

			overview, err := apiClient.Dashboard().Overview(ctx)
			if err != nil {
				return fmt.Errorf("failed to get overview: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(map[string]interface{}{
					"health":   health,
					"overview": overview,
				})
			}

			fmt.Printf("Server:          %s\n", formatStatus(health.Status))
			for name, state := range health.Checks {
				fmt.Printf("  %-14s %s\n", name+":", state)
			}
			fmt.Println()
			fmt.Printf("Overall status:  %s\n", formatStatus(overview.OverallStatus))
			fmt.Printf("Sensors:         %d total, %d online, %d offline\n",
				overview.Sensors.TotalSensors, overview.Sensors.OnlineSensors, overview.Sensors.OfflineSensors)
			fmt.Printf("Alerts:          %d total, %d active, %d critical\n",
				overview.Alerts.TotalAlerts, overview.Alerts.ActiveAlerts, overview.Alerts.CriticalAlerts)
			fmt.Printf("Symptom reports: %d total, %d pending\n",
				overview.Symptoms.TotalReports, overview.Symptoms.PendingReports)
			return nil
		},
	}
}
