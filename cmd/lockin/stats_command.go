package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"lockin/internal/client"
)

func newStatsCommand(ctx *commandContext) *cobra.Command {
	var days int
	var sessions int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show study statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(cl *client.Client) error {
				stats, err := cl.Stats(cmd.Context(), days)
				if err != nil {
					return err
				}
				recent, err := cl.Sessions(cmd.Context(), sessions)
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, map[string]any{"stats": stats, "sessions": recent})
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Last %d days\n", stats.Days)
				fmt.Fprintf(out, "  Total:        %d min (%.1f h)\n", stats.TotalMinutes, stats.TotalHours)
				fmt.Fprintf(out, "  Sessions:     %d (avg %.1f min)\n", stats.SessionCount, stats.AvgSessionMinutes)
				fmt.Fprintf(out, "  Daily avg:    %.1f min\n", stats.DailyAverage)
				fmt.Fprintf(out, "  Today:        %d min\n", stats.TodayMinutes)

				if len(recent) == 0 {
					return nil
				}
				rows := make([][]string, 0, len(recent))
				for _, session := range recent {
					rows = append(rows, []string{
						session.StartTime,
						session.SessionType,
						strconv.Itoa(session.DurationMinutes),
					})
				}
				fmt.Fprintln(out)
				fmt.Fprintln(out, renderTable(
					[]string{"Started", "Type", "Minutes"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight},
				))
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&days, "days", 30, "Lookback window in days")
	cmd.Flags().IntVar(&sessions, "sessions", 10, "Number of recent sessions to list")
	return cmd
}
