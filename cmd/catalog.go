package cmd

import (
	"fmt"
	"os"

	"pitstop/internal/app"
	"pitstop/internal/clix"
	"pitstop/internal/export"
	"pitstop/internal/models"
	"pitstop/pkg/categorizer"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the products or policies fetched from Shopify",
	Long: `Fetches the store catalog the same way the chatbot does and prints it as a
table. --category narrows products to what that category's context section
would list. --policies lists store policies instead. --export writes an .xlsx
workbook.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		showPolicies, _ := cmd.Flags().GetBool("policies")
		limit := clix.ParseLimit(cmd.Flags(), 0)
		exportPath, _ := cmd.Flags().GetString("export")

		if showPolicies {
			policies, err := appInstance.Shopify.ListPolicies(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list policies: %w", err)
			}
			if exportPath != "" {
				if err := export.PoliciesXLSX(exportPath, policies); err != nil {
					return fmt.Errorf("failed to export policies: %w", err)
				}
				fmt.Printf("Exported %d policies to %s\n", len(policies), exportPath)
				return nil
			}
			renderPolicies(policies, limit)
			return nil
		}

		products, err := appInstance.Shopify.ListProducts(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list products: %w", err)
		}
		products, err = filterByCategories(cmd, appInstance, products)
		if err != nil {
			return err
		}
		if exportPath != "" {
			if err := export.ProductsXLSX(exportPath, products); err != nil {
				return fmt.Errorf("failed to export products: %w", err)
			}
			fmt.Printf("Exported %d products to %s\n", len(products), exportPath)
			return nil
		}
		renderProducts(products, limit)
		return nil
	},
}

func filterByCategories(cmd *cobra.Command, a *app.App, products []models.Product) ([]models.Product, error) {
	names, err := clix.ParseList(cmd.Flags(), "category")
	if err != nil || len(names) == 0 {
		return products, err
	}

	var out []models.Product
	seen := map[string]bool{}
	for _, name := range names {
		cat, err := categorizer.ParseCategory(name)
		if err != nil {
			return nil, err
		}
		for _, p := range a.Assembler.ProductsFor(cat, products) {
			if !seen[p.String()] {
				seen[p.String()] = true
				out = append(out, p)
			}
		}
	}
	return out, nil
}

func renderProducts(products []models.Product, limit int) {
	if len(products) == 0 {
		fmt.Println("No products found.")
		return
	}
	if limit > 0 && len(products) > limit {
		products = products[:limit]
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"#", "Title", "Price"})
	table.SetBorder(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for i, p := range products {
		price := p.Price
		if price == "" {
			price = models.PriceUnavailable
		}
		table.Append([]string{fmt.Sprint(i + 1), p.Title, price})
	}
	table.Render()
}

func renderPolicies(policies []models.Policy, limit int) {
	if len(policies) == 0 {
		fmt.Println("No policies found.")
		return
	}
	if limit > 0 && len(policies) > limit {
		policies = policies[:limit]
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Policy", "Text"})
	table.SetBorder(false)
	table.SetAutoWrapText(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, p := range policies {
		table.Append([]string{p.Label, truncate(p.Value, 120)})
	}
	table.Render()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func init() {
	rootCmd.AddCommand(catalogCmd)

	catalogCmd.Flags().Bool("policies", false, "List store policies instead of products")
	catalogCmd.Flags().String("category", "", "Comma-separated categories to filter products by (e.g. helmets,shirts)")
	catalogCmd.Flags().Int("limit", 0, "Maximum rows to print (0 = all)")
	catalogCmd.Flags().String("export", "", "Write the listing to an .xlsx workbook instead of printing it")
}
