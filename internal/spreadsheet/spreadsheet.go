// Package spreadsheet lê e escreve as planilhas xlsx do estoque: importação de itens,
// modelo de importação e exportação do histórico de vendas.
package spreadsheet

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"goestoque/internal/domain"
	apperror "goestoque/internal/errors"
)

const (
	TemplateSheet     = "Template"
	SalesHistorySheet = "Sales History"
)

// Colunas da planilha de importação, na ordem do modelo.
var importColumns = []string{"name", "sku", "category", "productUrl", "purchasePriceSGD", "sellingPriceSGD", "variations"}

var importWidths = []float64{30, 15, 20, 40, 15, 15, 50}

var salesColumns = []string{"Date", "Product", "SKU", "Variation", "Quantity", "Price (SGD)", "Total (SGD)", "Price (IDR)", "Total (IDR)", "Notes"}

var salesWidths = []float64{12, 30, 15, 20, 10, 12, 12, 15, 15, 30}

// ReadInventoryImport lê a primeira aba. A linha 1 é o cabeçalho (sem diferenciar maiúsculas);
// as linhas de dados são numeradas a partir de 2 e linhas em branco são ignoradas.
func ReadInventoryImport(r io.Reader) ([]domain.ImportRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperror.NewValidationError(fmt.Sprintf("Arquivo xlsx inválido: %v", err))
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperror.NewValidationError("A planilha não possui abas.")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperror.NewValidationError(fmt.Sprintf("Falha ao ler a aba %s: %v", sheets[0], err))
	}
	if len(rows) == 0 {
		return []domain.ImportRow{}, nil
	}

	cols := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := cols["name"]; !ok {
		return nil, apperror.NewValidationError("Cabeçalho da planilha sem a coluna 'name'.")
	}

	cell := func(row []string, name string) domain.Cell {
		i, ok := cols[strings.ToLower(name)]
		if !ok || i >= len(row) {
			return ""
		}
		return domain.Cell(row[i])
	}

	out := make([]domain.ImportRow, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		out = append(out, domain.ImportRow{
			Row:              i + 2,
			Name:             cell(row, "name"),
			SKU:              cell(row, "sku"),
			Category:         cell(row, "category"),
			ProductURL:       cell(row, "productUrl"),
			PurchasePriceSGD: cell(row, "purchasePriceSGD"),
			SellingPriceSGD:  cell(row, "sellingPriceSGD"),
			Variations:       cell(row, "variations"),
		})
	}
	return out, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// WriteImportTemplate escreve o modelo de importação com uma linha de exemplo.
func WriteImportTemplate(w io.Writer) error {
	example := []interface{}{
		"Example Product",
		"SKU-001",
		"Electronics",
		"https://example.com/product",
		20.00,
		39.99,
		`[{"color":"Black","size":"Standard","quantity":30},{"color":"White","size":"Standard","quantity":20}]`,
	}
	return writeSheet(w, TemplateSheet, importColumns, importWidths, [][]interface{}{example})
}

// WriteSalesHistory escreve a exportação do histórico de vendas.
func WriteSalesHistory(w io.Writer, rows []domain.SaleExportRow) error {
	data := make([][]interface{}, len(rows))
	for i, r := range rows {
		data[i] = []interface{}{
			r.Date, r.Product, r.SKU, r.Variation, r.Quantity,
			r.PriceSGD, r.TotalSGD, r.PriceIDR, r.TotalIDR, r.Notes,
		}
	}
	return writeSheet(w, SalesHistorySheet, salesColumns, salesWidths, data)
}

func writeSheet(w io.Writer, sheet string, header []string, widths []float64, rows [][]interface{}) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("falha ao nomear a aba: %w", err)
	}

	headerRow := make([]interface{}, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return fmt.Errorf("falha ao escrever o cabeçalho: %w", err)
	}

	for i, row := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cellName, &row); err != nil {
			return fmt.Errorf("falha ao escrever a linha %d: %w", i+2, err)
		}
	}

	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return fmt.Errorf("falha ao ajustar a largura da coluna %s: %w", col, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("falha ao gerar o xlsx: %w", err)
	}
	return nil
}
