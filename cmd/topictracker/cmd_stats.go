package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// statsCmd prints ledger totals and activity counts without starting
// the interactive UI.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print point totals and activity counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		tracker, closeFn, err := openTracker(logger)
		if err != nil {
			return err
		}
		defer closeFn()

		stats := tracker.Ledger().Stats()
		fmt.Printf("Balance:       %d\n", stats.CurrentBalance)
		fmt.Printf("Total earned:  %d\n", stats.TotalEarned)
		fmt.Printf("Total spent:   %d\n", stats.TotalSpent)
		fmt.Printf("Searches:      %d\n", stats.SearchCount)
		fmt.Printf("Goals:         %d\n", len(tracker.Goals().All()))
		fmt.Printf("Check-ins:     %d\n", tracker.Goals().CheckCount())
		fmt.Printf("User topics:   %d\n", len(tracker.Topics().UserTopics()))
		fmt.Printf("Items owned:   %d\n", len(tracker.Purchases().All()))
		return nil
	},
}
