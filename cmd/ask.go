package cmd

import (
	"fmt"
	"strings"

	"pitstop/internal/clix"
	"pitstop/internal/services"
	"pitstop/pkg/categorizer"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	askShowContext bool
	askDryRun      bool
)

var askCmd = &cobra.Command{
	Use:   "ask <message...>",
	Short: "Answer one customer message from the command line",
	Long: `Runs the same pipeline as POST /chat for a single message: fetches the catalog,
classifies the message, assembles context and asks the completion provider.
With --dry-run the completion provider is not called.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		message := clix.JoinArgs(args)
		if message == "" {
			return fmt.Errorf("message must not be empty")
		}

		var out services.ChatOutcome
		if askDryRun {
			out = appInstance.ChatService.Prepare(cmd.Context(), message)
		} else {
			out = appInstance.ChatService.Respond(cmd.Context(), message)
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%s %s\n", color.CyanString("Categories:"), formatCategories(out.Categories))
		if askShowContext || askDryRun {
			fmt.Fprintln(w, color.CyanString("Context:"))
			fmt.Fprintln(w, out.Context)
		}
		if askDryRun {
			return nil
		}

		if out.Fallback {
			fmt.Fprintf(w, "%s %v\n", color.YellowString("Fallback reply:"), out.Err)
		}
		fmt.Fprintln(w, out.Reply)
		return nil
	},
}

func formatCategories(cats []categorizer.Category) string {
	if len(cats) == 0 {
		return string(categorizer.CategoryGeneral)
	}
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

func init() {
	rootCmd.AddCommand(askCmd)

	askCmd.Flags().BoolVar(&askShowContext, "show-context", false, "Print the assembled catalog context")
	askCmd.Flags().BoolVar(&askDryRun, "dry-run", false, "Classify and assemble context without calling the completion provider")
}
