package cmd

import (
	"fmt"

	"pitstop/internal/services"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check Shopify connectivity and the completion provider",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		appInstance, err := GetAppFromContext(ctx)
		if err != nil {
			return fmt.Errorf("failed to get app instance: %w", err)
		}
		cfg := appInstance.Config

		failed := false

		fmt.Printf("Checking Shopify store %s (API %s)... ", cfg.Shopify.StoreURL, cfg.Shopify.APIVersion)
		if err := appInstance.Shopify.Ping(ctx); err != nil {
			fmt.Println(color.RedString("FAILED"))
			fmt.Printf("  %v\n", err)
			failed = true
		} else {
			fmt.Println(color.GreenString("OK"))
		}

		cs := appInstance.CompletionService
		fmt.Printf("Completion provider %s (model %s)... ", cs.Name(), cs.ModelName())
		switch cs.Status() {
		case services.ProviderStatusActive:
			fmt.Println(color.GreenString(cs.Status().String()))
		default:
			fmt.Println(color.RedString(cs.Status().String()))
			failed = true
		}

		fmt.Printf("Categorization: %s\n", cfg.Categorization.Type)

		if failed {
			return fmt.Errorf("one or more checks failed")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
