package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

func newAvailabilityCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "availability",
		Short: "Show slot availability for a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			if date == "" {
				return fmt.Errorf("--date is required")
			}

			var result []SlotAvailability
			path := "/api/v1/battle-requests/availability?date=" + url.QueryEscape(date)
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			if cfg.Output != "json" {
				fmt.Printf("Availability for %s:\n", date)
			}
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date to check, YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}
