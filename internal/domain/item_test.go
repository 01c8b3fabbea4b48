package domain_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goestoque/internal/domain"
	apperror "goestoque/internal/errors"
)

func newMouse() domain.Item {
	return domain.SeedItems(time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC))[0]
}

// TestApplySale_Success cobre a venda simples: 5 unidades da variação Black.
func TestApplySale_Success(t *testing.T) {
	item := newMouse()

	err := item.ApplySale("1-1", 5)

	require.NoError(t, err)
	v, ok := item.FindVariation("1-1")
	require.True(t, ok)
	assert.Equal(t, 25, v.Quantity)
	assert.Equal(t, 45, item.Quantity)
	assert.Equal(t, item.TotalQuantity(), item.Quantity)
}

// TestApplySale_InsufficientStock garante que nada muda quando falta estoque.
func TestApplySale_InsufficientStock(t *testing.T) {
	item := newMouse()
	before := item.Clone()

	err := item.ApplySale("1-2", 25)

	var stockErr *apperror.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, 25, stockErr.Requested)
	assert.Equal(t, 20, stockErr.Available)
	assert.Equal(t, before, item)
}

func TestApplySale_InvalidQuantityAndUnknownVariation(t *testing.T) {
	item := newMouse()

	err := item.ApplySale("1-1", 0)
	assert.IsType(t, &apperror.ValidationError{}, err)

	err = item.ApplySale("nope", 1)
	assert.IsType(t, &apperror.NotFoundError{}, err)
	assert.Equal(t, 50, item.Quantity)
}

// TestAddRemoveVariation_KeepsQuantityConsistent verifica que a soma das variações
// acompanha cada operação, inclusive pares cor/tamanho repetidos (não mesclados).
func TestAddRemoveVariation_KeepsQuantityConsistent(t *testing.T) {
	item := newMouse()

	v, err := item.AddVariation("1-3", "Black", "Standard", 4)
	require.NoError(t, err)
	assert.Equal(t, "Black / Standard", v.Label())
	assert.Len(t, item.Variations, 3)
	assert.Equal(t, 54, item.Quantity)

	removed, err := item.RemoveVariation("1-1")
	require.NoError(t, err)
	assert.Equal(t, 30, removed.Quantity)
	assert.Equal(t, 24, item.Quantity)
	assert.Equal(t, item.TotalQuantity(), item.Quantity)

	_, err = item.RemoveVariation("1-1")
	assert.IsType(t, &apperror.NotFoundError{}, err)
}

func TestAddVariation_Validation(t *testing.T) {
	item := newMouse()

	_, err := item.AddVariation("x", "", "M", 1)
	assert.IsType(t, &apperror.ValidationError{}, err)

	_, err = item.AddVariation("x", "Red", "M", 0)
	assert.IsType(t, &apperror.ValidationError{}, err)

	_, err = item.AddVariation("1-1", "Red", "M", 1)
	assert.IsType(t, &apperror.ConflictError{}, err)

	assert.Len(t, item.Variations, 2)
}

func TestClone_DoesNotShareVariations(t *testing.T) {
	item := newMouse()
	c := item.Clone()

	c.Variations[0].Quantity = 0

	assert.Equal(t, 30, item.Variations[0].Quantity)
}

func TestNormalize_RecomputesQuantity(t *testing.T) {
	item := domain.Item{ID: "x", Quantity: 999}

	item.Normalize()

	assert.Equal(t, 0, item.Quantity)
	assert.NotNil(t, item.Variations)
}

func TestCell_UnmarshalJSON(t *testing.T) {
	var row domain.ImportRow
	body := `{"name":"Tee","purchasePriceSGD":12.5,"sellingPriceSGD":"20","variations":[{"color":"Red","size":"M","quantity":3}],"sku":null}`

	require.NoError(t, json.Unmarshal([]byte(body), &row))

	assert.Equal(t, "Tee", row.Name.String())
	assert.Equal(t, "12.5", row.PurchasePriceSGD.String())
	assert.Equal(t, "20", row.SellingPriceSGD.String())
	assert.Equal(t, `[{"color":"Red","size":"M","quantity":3}]`, row.Variations.String())
	assert.Equal(t, "", row.SKU.String())
}
