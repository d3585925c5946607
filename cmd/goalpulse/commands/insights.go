package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var insightsRefresh bool

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Show the AI insights, from cache when fresh",
	Run: func(cmd *cobra.Command, args []string) {
		res := eng.Insights(cmd.Context(), insightsRefresh)

		if res.Degraded {
			fmt.Println("(insights service unavailable, showing last known data)")
		}
		fmt.Printf("Source: %s", res.Source)
		if !res.FetchedAt.IsZero() {
			fmt.Printf(" (fetched %s)", res.FetchedAt.Format("2006-01-02 15:04"))
		}
		fmt.Println()

		p := res.Payload
		fmt.Printf("\n%s\n", p.WeeklySummary)
		for _, insight := range p.Insights {
			fmt.Printf("\n* %s\n  %s\n", insight.Title, insight.Description)
		}
		if len(p.Tips) > 0 {
			fmt.Println("\nTips:")
			for _, tip := range p.Tips {
				fmt.Printf("  - %s\n", tip)
			}
		}
		if p.Focus != nil {
			fmt.Printf("\nFocus on %q: %s\n", p.Focus.GoalTitle, p.Focus.Reason)
		}
		if p.Motivation != "" {
			fmt.Printf("\n%s\n", p.Motivation)
		}
	},
}

func init() {
	insightsCmd.Flags().BoolVar(&insightsRefresh, "refresh", false, "bypass the cache and call the insights service")
}
