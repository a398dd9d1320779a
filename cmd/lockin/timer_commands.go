package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"lockin/internal/api"
	"lockin/internal/client"
)

func newTimerCommand(ctx *commandContext) *cobra.Command {
	timerCmd := &cobra.Command{
		Use:   "timer",
		Short: "Control the countdown timer",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTimerCommand(ctx, cmd, func(cl *client.Client) (api.TimerState, error) {
				return cl.Timer(cmd.Context())
			})
		},
	}

	var minutes int
	var sessionType string
	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Start a countdown with an explicit duration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if minutes <= 0 {
				return fmt.Errorf("--minutes must be positive")
			}
			return runTimerCommand(ctx, cmd, func(cl *client.Client) (api.TimerState, error) {
				return cl.TimerStart(cmd.Context(), api.TimerStartRequest{
					Seconds:     minutes * 60,
					SessionType: sessionType,
				})
			})
		},
	}
	startCmd.Flags().IntVarP(&minutes, "minutes", "m", 25, "Countdown duration in minutes")
	startCmd.Flags().StringVarP(&sessionType, "type", "t", "", "Session type label")

	presetCmd := &cobra.Command{
		Use:   "preset <name>",
		Short: "Start a countdown from a named preset",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return listPresets(ctx, cmd)
			}
			return runTimerCommand(ctx, cmd, func(cl *client.Client) (api.TimerState, error) {
				return cl.TimerStart(cmd.Context(), api.TimerStartRequest{Preset: args[0]})
			})
		},
	}

	pauseCmd := &cobra.Command{
		Use:   "pause",
		Short: "Pause the running countdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTimerCommand(ctx, cmd, func(cl *client.Client) (api.TimerState, error) {
				return cl.TimerPause(cmd.Context())
			})
		},
	}

	resumeCmd := &cobra.Command{
		Use:   "resume",
		Short: "Resume a paused countdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTimerCommand(ctx, cmd, func(cl *client.Client) (api.TimerState, error) {
				return cl.TimerResume(cmd.Context())
			})
		},
	}

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Abandon the countdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTimerCommand(ctx, cmd, func(cl *client.Client) (api.TimerState, error) {
				return cl.TimerReset(cmd.Context())
			})
		},
	}

	timerCmd.AddCommand(startCmd, presetCmd, pauseCmd, resumeCmd, resetCmd)
	return timerCmd
}

func runTimerCommand(ctx *commandContext, cmd *cobra.Command, fn func(*client.Client) (api.TimerState, error)) error {
	return ctx.withClient(func(cl *client.Client) error {
		state, err := fn(cl)
		if err != nil {
			return err
		}
		if ctx.jsonOutput() {
			return writeJSON(cmd, state)
		}
		printTimerState(cmd, state)
		return nil
	})
}

func printTimerState(cmd *cobra.Command, state api.TimerState) {
	out := cmd.OutOrStdout()
	if state.Completed {
		fmt.Fprintln(out, "Session complete.")
	}
	fmt.Fprintf(out, "%s  %s", state.Display, state.State)
	if state.SessionType != "" {
		fmt.Fprintf(out, "  (%s)", state.SessionType)
	}
	if state.TotalSeconds > 0 {
		fmt.Fprintf(out, "  %d%%", int(state.Progress*100))
	}
	fmt.Fprintln(out)
}

func listPresets(ctx *commandContext, cmd *cobra.Command) error {
	return ctx.withClient(func(cl *client.Client) error {
		presets, err := cl.Presets(cmd.Context())
		if err != nil {
			return err
		}
		if ctx.jsonOutput() {
			return writeJSON(cmd, presets)
		}
		rows := make([][]string, 0, len(presets))
		for _, preset := range presets {
			rows = append(rows, []string{preset.Name, preset.Label, strconv.Itoa(preset.Seconds / 60)})
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderTable(
			[]string{"Name", "Label", "Minutes"},
			rows,
			[]columnAlignment{alignLeft, alignLeft, alignRight},
		))
		return nil
	})
}
