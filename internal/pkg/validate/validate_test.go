package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goestoque/internal/domain"
	apperror "goestoque/internal/errors"
	"goestoque/internal/pkg/validate"
)

func TestStruct_ValidDraft(t *testing.T) {
	draft := domain.ItemDraft{
		Name: "Tee", SKU: "T-1", Category: "Apparel",
		ProductURL:    "https://example.com/tee",
		PurchasePrice: 10, SellingPrice: 20,
		Variations: []domain.VariationInput{{Color: "Red", Size: "M", Quantity: 0}},
	}

	assert.NoError(t, validate.Struct(draft))
}

func TestStruct_InvalidDraft(t *testing.T) {
	draft := domain.ItemDraft{
		SKU: "T-1", Category: "Apparel",
		ProductURL:    "not a url",
		PurchasePrice: -1,
		Variations:    []domain.VariationInput{{Color: "Red", Quantity: -2}},
	}

	err := validate.Struct(draft)

	require.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	assert.Contains(t, err.Error(), "Name é obrigatório")
	assert.Contains(t, err.Error(), "ProductURL deve ser uma URL válida")
	assert.Contains(t, err.Error(), "PurchasePrice deve ser maior ou igual a 0")
	assert.Contains(t, err.Error(), "Variations[0].Size é obrigatório")
	assert.Contains(t, err.Error(), "Variations[0].Quantity")
}

func TestStruct_EmptySaleBatch(t *testing.T) {
	err := validate.Struct(domain.SaleBatch{SaleDate: "2024-03-16"})

	assert.IsType(t, &apperror.ValidationError{}, err)
}
