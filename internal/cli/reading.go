package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aquawatch/aquawatch/pkg/client"
)

func newReadingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reading",
		Short: "Inspect sensor readings",
	}

	cmd.AddCommand(newReadingLatestCmd())
	cmd.AddCommand(newReadingRecentCmd())
	cmd.AddCommand(newReadingCriticalCmd())

	return cmd
}

func newReadingLatestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "latest",
		Short: "Show the most recent reading",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := apiClient.Readings().Latest(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get latest reading: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(r)
			}

			fmt.Printf("Sensor:    %s\n", r.SensorID)
			fmt.Printf("Location:  %s\n", r.Location)
			fmt.Printf("Time:      %s\n", r.Timestamp.Format("2006-01-02 15:04:05"))
			fmt.Printf("Quality:   %s\n", formatStatus(r.QualityStatus))
			fmt.Printf("pH:        %s\n", formatValue(r.Ph))
			fmt.Printf("Turbidity: %s\n", formatValue(r.Turbidity))
			fmt.Printf("Temp:      %s\n", formatValue(r.Temperature))
			return nil
		},
	}
}

func newReadingRecentCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List the most recent readings",
		RunE: func(cmd *cobra.Command, args []string) error {
			readings, err := apiClient.Readings().Recent(context.Background(), limit)
			if err != nil {
				return fmt.Errorf("failed to list readings: %w", err)
			}
			return renderReadings(readings)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "number of readings")

	return cmd
}

func newReadingCriticalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "critical",
		Short: "List readings breaching a critical threshold",
		RunE: func(cmd *cobra.Command, args []string) error {
			readings, err := apiClient.Readings().Critical(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list critical readings: %w", err)
			}
			return renderReadings(readings)
		},
	}
}

func renderReadings(readings []client.Reading) error {
	if getOutputFormat() != "table" {
		return printOutput(readings)
	}

	t := NewTable("TIME", "SENSOR", "LOCATION", "PH", "TURBIDITY", "QUALITY")
	for _, r := range readings {
		t.AddRow(
			r.Timestamp.Format("01-02 15:04:05"),
			r.SensorID,
			truncate(r.Location, 24),
			formatValue(r.Ph),
			formatValue(r.Turbidity),
			formatStatus(r.QualityStatus),
		)
	}
	t.Render()
	return nil
}

func formatValue(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}
