package export

import (
	"fmt"

	"pitstop/internal/models"

	"github.com/xuri/excelize/v2"
)

const (
	productsSheet = "Productos"
	policiesSheet = "Políticas"
)

// ProductsXLSX writes products to a single-sheet workbook at path.
func ProductsXLSX(path string, products []models.Product) error {
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		price := p.Price
		if price == "" {
			price = models.PriceUnavailable
		}
		rows = append(rows, []string{p.Title, price})
	}
	return writeSheet(path, productsSheet, []string{"Título", "Precio"}, rows)
}

// PoliciesXLSX writes policies to a single-sheet workbook at path.
func PoliciesXLSX(path string, policies []models.Policy) error {
	rows := make([][]string, 0, len(policies))
	for _, p := range policies {
		rows = append(rows, []string{p.Label, p.Value})
	}
	return writeSheet(path, policiesSheet, []string{"Política", "Texto"}, rows)
}

func writeSheet(path, sheet string, header []string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for i, row := range append([][]string{header}, rows...) {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
