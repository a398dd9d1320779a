package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lockin/internal/client"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show daemon status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(cl *client.Client) error {
				status, err := cl.Status(cmd.Context())
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, status)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Daemon:    running (pid %d)\n", status.PID)
				fmt.Fprintf(out, "Database:  %s\n", status.DatabasePath)
				fmt.Fprintf(out, "Provider:  %s\n", status.Provider)
				fmt.Fprintf(out, "Timer:     %s", status.Timer.State)
				if status.Timer.State != "idle" {
					fmt.Fprintf(out, " %s", status.Timer.Display)
					if status.Timer.SessionType != "" {
						fmt.Fprintf(out, " (%s)", status.Timer.SessionType)
					}
				}
				fmt.Fprintln(out)
				fmt.Fprintf(out, "Alarms:    %d\n", status.AlarmCount)
				fmt.Fprintf(out, "Today:     %d / %d min\n", status.TodayMinutes, status.GoalMinutes)
				return nil
			})
		},
	}
}

func newChatCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "chat <message>",
		Short: "Ask the configured AI provider a question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			message := ""
			for i, arg := range args {
				if i > 0 {
					message += " "
				}
				message += arg
			}
			return ctx.withClient(func(cl *client.Client) error {
				resp, err := cl.Chat(cmd.Context(), message)
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, resp)
				}
				fmt.Fprintln(cmd.OutOrStdout(), resp.Reply)
				return nil
			})
		},
	}
}
