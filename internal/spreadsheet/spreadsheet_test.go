package spreadsheet_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"goestoque/internal/domain"
	apperror "goestoque/internal/errors"
	"goestoque/internal/spreadsheet"
)

// TestTemplateRoundTrip: o modelo gerado é lido de volta como uma linha de importação válida.
func TestTemplateRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, spreadsheet.WriteImportTemplate(&buf))

	rows, err := spreadsheet.ReadInventoryImport(&buf)

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].Row)
	assert.Equal(t, "Example Product", rows[0].Name.String())
	assert.Equal(t, "SKU-001", rows[0].SKU.String())
	assert.Equal(t, "20", rows[0].PurchasePriceSGD.String())
	assert.Equal(t, "39.99", rows[0].SellingPriceSGD.String())
	assert.True(t, strings.HasPrefix(rows[0].Variations.String(), `[{"color":"Black"`))
}

func TestReadInventoryImport_HeadersAndBlankRows(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"SKU", "Name", "PurchasePriceSGD", "sellingpricesgd", "Category"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"A-1", "Alpha", 1.5, 3, "Misc"}))
	require.NoError(t, f.SetSheetRow(sheet, "A4", &[]interface{}{"B-1", "Beta", 2, 4, "Misc"}))
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	rows, err := spreadsheet.ReadInventoryImport(&buf)

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 2, rows[0].Row)
	assert.Equal(t, "Alpha", rows[0].Name.String())
	assert.Equal(t, "1.5", rows[0].PurchasePriceSGD.String())
	assert.Equal(t, 4, rows[1].Row)
	assert.Equal(t, "Beta", rows[1].Name.String())
	assert.Equal(t, "", rows[1].Variations.String())
}

func TestReadInventoryImport_Invalid(t *testing.T) {
	_, err := spreadsheet.ReadInventoryImport(strings.NewReader("not a zip"))
	assert.IsType(t, &apperror.ValidationError{}, err)

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow(f.GetSheetName(0), "A1", &[]interface{}{"sku"}))
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	_, err = spreadsheet.ReadInventoryImport(&buf)
	assert.IsType(t, &apperror.ValidationError{}, err)
}

func TestWriteSalesHistory(t *testing.T) {
	var buf bytes.Buffer
	rows := []domain.SaleExportRow{{
		Date: "Mar 16, 2024", Product: "Wireless Mouse", SKU: "WM-001", Variation: "Black / Standard",
		Quantity: 5, PriceSGD: 39.99, TotalSGD: 199.95, PriceIDR: 470471, TotalIDR: 2352355, Notes: "walk-in",
	}}
	require.NoError(t, spreadsheet.WriteSalesHistory(&buf, rows))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{spreadsheet.SalesHistorySheet}, f.GetSheetList())
	got, err := f.GetRows(spreadsheet.SalesHistorySheet)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Price (SGD)", got[0][5])
	assert.Equal(t, []string{"Mar 16, 2024", "Wireless Mouse", "WM-001", "Black / Standard", "5", "39.99", "199.95", "470471", "2352355", "walk-in"}, got[1])

	width, err := f.GetColWidth(spreadsheet.SalesHistorySheet, "B")
	require.NoError(t, err)
	assert.Equal(t, float64(30), width)
}
