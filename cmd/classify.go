package cmd

import (
	"fmt"

	"pitstop/internal/clix"
	"pitstop/pkg/categorizer"

	"github.com/spf13/cobra"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <message...>",
	Short: "Show which categories a message matches",
	Long: `Runs the keyword classifier against a message using the configured keyword
tables. Needs no credentials and makes no network calls.`,
	Args:        cobra.MinimumNArgs(1),
	Annotations: map[string]string{offlineAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := GetConfigFromContext(cmd.Context())
		if err != nil {
			return err
		}

		table, err := categorizer.QueryTable(cfg.Categories)
		if err != nil {
			return fmt.Errorf("invalid category configuration: %w", err)
		}

		cats, err := categorizer.NewKeywordCategorizer(table).Categorize(cmd.Context(), clix.JoinArgs(args))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), formatCategories(cats))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}
