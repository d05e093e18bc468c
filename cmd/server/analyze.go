package main

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"

	"dreamscribe/internal/service"
)

// newAnalyzeMoodCmd прогоняет текст через анализатор настроения без запуска сервера.
func newAnalyzeMoodCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze-mood <text>",
		Short: "Detect the emotional tone of a text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := bootstrap("dreamscribe-cli")
			if err != nil {
				return err
			}
			defer logger.Sync()

			client, err := newAIClient(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			mood := service.NewMoodAnalyzer(client, logger).AnalyzeMood(cmd.Context(), strings.Join(args, " "))

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(mood)
		},
	}
}
