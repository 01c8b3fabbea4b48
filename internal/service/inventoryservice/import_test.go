package inventoryservice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goestoque/internal/domain"
	apperror "goestoque/internal/errors"
)

func row(n int, name, purchase, selling, variations string) domain.ImportRow {
	return domain.ImportRow{
		Row:              n,
		Name:             domain.Cell(name),
		SKU:              domain.Cell("SKU-" + name),
		Category:         "Apparel",
		PurchasePriceSGD: domain.Cell(purchase),
		SellingPriceSGD:  domain.Cell(selling),
		Variations:       domain.Cell(variations),
	}
}

// TestBulkCreate_PartialSuccess: linhas válidas são criadas, as inválidas viram erros por linha.
func TestBulkCreate_PartialSuccess(t *testing.T) {
	f := newFixture()
	rows := []domain.ImportRow{
		row(2, "Tee", "20", "39.99", `[{"color":"Red","size":"M","quantity":3},{"color":"Blue","size":"L","quantity":"2"}]`),
		row(3, "Cap", "abc", "10", ``),
		row(4, "", "1", "2", ``),
		row(5, "Sock", "1", "2", `[{"color":"White","size":"S","quantity":-1}]`),
		row(6, "Scarf", "5", "9", `[{"color":"Grey","size":"","quantity":1}]`),
	}

	result, err := f.svc.BulkCreate(rows, rate)

	require.NoError(t, err)
	require.Len(t, result.Created, 1)
	tee := result.Created[0]
	assert.Equal(t, 5, tee.Quantity)
	assert.Equal(t, float64(235294), tee.PurchasePriceIDR)

	require.Len(t, result.Errors, 4)
	assert.Equal(t, []int{3, 4, 5, 6}, []int{result.Errors[0].Row, result.Errors[1].Row, result.Errors[2].Row, result.Errors[3].Row})
	assert.Equal(t, "purchasePriceSGD", result.Errors[0].Field)
	assert.Equal(t, "name", result.Errors[1].Field)
	assert.Equal(t, "variations[0].quantity", result.Errors[2].Field)
	assert.Contains(t, result.Errors[3].Msg, "Size")
	assert.Empty(t, result.FallbackRows)
	assert.Equal(t, 1, f.repo.Len())
}

// TestBulkCreate_FallbackToEmptyVariations: variações ilegíveis não rejeitam a linha.
func TestBulkCreate_FallbackToEmptyVariations(t *testing.T) {
	f := newFixture()
	rows := []domain.ImportRow{
		row(2, "Mug", "3", "8", `not json`),
		row(3, "Pen", "1", "2", `{"color":"Red"}`),
	}

	result, err := f.svc.BulkCreate(rows, rate)

	require.NoError(t, err)
	require.Len(t, result.Created, 2)
	assert.Empty(t, result.Errors)
	assert.Equal(t, []int{2, 3}, result.FallbackRows)
	for _, it := range result.Created {
		assert.Empty(t, it.Variations)
		assert.Equal(t, 0, it.Quantity)
	}
}

func TestBulkCreate_NonNumericQuantityCountsAsZero(t *testing.T) {
	f := newFixture()
	rows := []domain.ImportRow{row(0, "Bag", "10", "20", `[{"color":"Black","size":"One","quantity":"lots"}]`)}

	result, err := f.svc.BulkCreate(rows, rate)

	require.NoError(t, err)
	require.Len(t, result.Created, 1)
	assert.Equal(t, 0, result.Created[0].Variations[0].Quantity)
	assert.Equal(t, 0, result.Created[0].Quantity)
}

func TestBulkCreate_RowNumbersDefaultToPosition(t *testing.T) {
	f := newFixture()
	rows := []domain.ImportRow{
		row(0, "Ok", "1", "2", ``),
		row(0, "Bad", "", "2", ``),
	}

	result, err := f.svc.BulkCreate(rows, rate)

	require.NoError(t, err)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 2, result.Errors[0].Row)
}

func TestBulkCreate_InvalidRateAbortsCall(t *testing.T) {
	f := newFixture()

	_, err := f.svc.BulkCreate([]domain.ImportRow{row(2, "Ok", "1", "2", ``)}, domain.CurrencyRate{})

	assert.IsType(t, &apperror.ValidationError{}, err)
	assert.Equal(t, 0, f.repo.Len())
}
