package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lockin/internal/client"
)

func newSettingsCommand(ctx *commandContext) *cobra.Command {
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "View or change stored application settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showSettings(ctx, cmd)
		},
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show stored settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showSettings(ctx, cmd)
		},
	}

	var provider string
	var deepseekKey string
	var ollamaEndpoint string
	var ollamaModel string
	var dailyGoal int
	var theme string
	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Overwrite stored settings",
		Long: `Overwrite the stored settings record. The current record is fetched,
the supplied flags applied, and the result written back wholesale.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(cl *client.Client) error {
				current, err := cl.Settings(cmd.Context())
				if err != nil {
					return err
				}
				next := current
				if cmd.Flags().Changed("provider") {
					next.AIProvider = provider
				}
				if cmd.Flags().Changed("deepseek-key") {
					next.DeepSeekAPIKey = deepseekKey
				}
				if cmd.Flags().Changed("ollama-endpoint") {
					next.OllamaEndpoint = ollamaEndpoint
				}
				if cmd.Flags().Changed("ollama-model") {
					next.OllamaModel = ollamaModel
				}
				if cmd.Flags().Changed("daily-goal") {
					next.DailyGoalMinutes = dailyGoal
				}
				if cmd.Flags().Changed("theme") {
					next.Theme = theme
				}

				saved, err := cl.SaveSettings(cmd.Context(), next)
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, saved)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Settings saved.")
				return nil
			})
		},
	}
	setCmd.Flags().StringVar(&provider, "provider", "", "AI provider (disabled, deepseek, ollama)")
	setCmd.Flags().StringVar(&deepseekKey, "deepseek-key", "", "DeepSeek API key")
	setCmd.Flags().StringVar(&ollamaEndpoint, "ollama-endpoint", "", "Ollama endpoint URL")
	setCmd.Flags().StringVar(&ollamaModel, "ollama-model", "", "Ollama model name")
	setCmd.Flags().IntVar(&dailyGoal, "daily-goal", 0, "Daily study goal in minutes")
	setCmd.Flags().StringVar(&theme, "theme", "", "Dashboard theme")

	settingsCmd.AddCommand(showCmd, setCmd)
	return settingsCmd
}

func showSettings(ctx *commandContext, cmd *cobra.Command) error {
	return ctx.withClient(func(cl *client.Client) error {
		settings, err := cl.Settings(cmd.Context())
		if err != nil {
			return err
		}
		if ctx.jsonOutput() {
			return writeJSON(cmd, settings)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Provider:        %s\n", orNone(settings.AIProvider))
		fmt.Fprintf(out, "DeepSeek key:    %s\n", maskSecret(settings.DeepSeekAPIKey))
		fmt.Fprintf(out, "Ollama endpoint: %s\n", orNone(settings.OllamaEndpoint))
		fmt.Fprintf(out, "Ollama model:    %s\n", orNone(settings.OllamaModel))
		fmt.Fprintf(out, "Daily goal:      %d min\n", settings.DailyGoalMinutes)
		fmt.Fprintf(out, "Theme:           %s\n", orNone(settings.Theme))
		return nil
	})
}

func orNone(value string) string {
	if value == "" {
		return "(not set)"
	}
	return value
}

func maskSecret(value string) string {
	if value == "" {
		return "(not set)"
	}
	if len(value) <= 4 {
		return "****"
	}
	return "****" + value[len(value)-4:]
}
