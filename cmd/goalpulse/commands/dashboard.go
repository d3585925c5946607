package commands

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Print the analytics dashboard to the terminal",
	Run: func(cmd *cobra.Command, args []string) {
		dash := eng.Dashboard(cmd.Context())

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Goal", "Category", "Done", "Total", "Progress"})
		for _, gp := range dash.Goals {
			t.AppendRow(table.Row{gp.Goal.Title, gp.Goal.Category, gp.Completed, gp.Total, fmt.Sprintf("%d%%", gp.Percent)})
		}
		t.Render()

		s := dash.Summary
		fmt.Printf("\nOverall progress: %d%%   Weekly change: %+d%%   Streak: %d days", s.OverallProgress, s.WeeklyChange, s.StreakDays)
		if s.LastActiveDay != "" {
			fmt.Printf(" (last active %s)", s.LastActiveDay)
		}
		fmt.Println()

		if dash.Focus != nil {
			fmt.Printf("\nFocus: %s [%s]\n  %s\n", dash.Focus.Goal.Title, dash.Focus.Urgency, dash.Focus.Reason)
		}

		if len(dash.TimeShares) > 0 {
			fmt.Println("\nThis week's time:")
			for _, share := range dash.TimeShares {
				fmt.Printf("  %-24s %4dm  %5.1f%%\n", share.Title, share.Minutes, share.Percent)
			}
		}
	},
}
