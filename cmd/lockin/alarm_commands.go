package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"lockin/internal/api"
	"lockin/internal/client"
)

func newAlarmCommand(ctx *commandContext) *cobra.Command {
	alarmCmd := &cobra.Command{
		Use:   "alarm",
		Short: "Manage alarms",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listAlarms(ctx, cmd)
		},
	}

	var label string
	addCmd := &cobra.Command{
		Use:   "add <HH:MM>",
		Short: "Add an alarm",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(cl *client.Client) error {
				created, err := cl.AddAlarm(cmd.Context(), api.AlarmCreateRequest{Time: args[0], Label: label})
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, created)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added alarm %d at %s\n", created.ID, created.Time)
				return nil
			})
		},
	}
	addCmd.Flags().StringVarP(&label, "label", "l", "", "Alarm label")

	removeCmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove an alarm",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid alarm id %q", args[0])
			}
			return ctx.withClient(func(cl *client.Client) error {
				if err := cl.RemoveAlarm(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed alarm %d\n", id)
				return nil
			})
		},
	}

	toggleCmd := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Enable or disable an alarm",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid alarm id %q", args[0])
			}
			return ctx.withClient(func(cl *client.Client) error {
				updated, err := cl.ToggleAlarm(cmd.Context(), id)
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, updated)
				}
				state := "off"
				if updated.Active {
					state = "on"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Alarm %d is now %s\n", updated.ID, state)
				return nil
			})
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List alarms",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listAlarms(ctx, cmd)
		},
	}

	alarmCmd.AddCommand(addCmd, removeCmd, toggleCmd, listCmd)
	return alarmCmd
}

func listAlarms(ctx *commandContext, cmd *cobra.Command) error {
	return ctx.withClient(func(cl *client.Client) error {
		alarms, err := cl.Alarms(cmd.Context())
		if err != nil {
			return err
		}
		if ctx.jsonOutput() {
			return writeJSON(cmd, alarms)
		}
		if len(alarms) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No alarms set.")
			return nil
		}
		rows := make([][]string, 0, len(alarms))
		for _, alarm := range alarms {
			rows = append(rows, []string{
				strconv.FormatInt(alarm.ID, 10),
				alarm.Time,
				alarm.Label,
				yesNo(alarm.Active),
			})
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderTable(
			[]string{"ID", "Time", "Label", "Active"},
			rows,
			[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
		))
		return nil
	})
}
