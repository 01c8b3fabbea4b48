package statsservice_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"goestoque/internal/domain"
	"goestoque/internal/service/statsservice"
)

// TestCompute_SeedCatalog: o mouse inicial (50 unidades) gera os sete totais esperados.
func TestCompute_SeedCatalog(t *testing.T) {
	stats := statsservice.Compute(domain.SeedItems(time.Now()))

	assert.Equal(t, domain.InventoryStats{
		TotalItems:          50,
		TotalValue:          1000,
		TotalValueIDR:       11700000,
		PotentialRevenue:    1999.5,
		PotentialRevenueIDR: 23400000,
		PotentialProfit:     999.5,
		PotentialProfitIDR:  11700000,
	}, stats)
}

func TestCompute_Empty(t *testing.T) {
	assert.Equal(t, domain.InventoryStats{}, statsservice.Compute(nil))
}

// TestCompute_OrderIndependent: permutar os itens não muda nenhum total.
func TestCompute_OrderIndependent(t *testing.T) {
	items := []domain.Item{
		{ID: "a", PurchasePrice: 0.1, SellingPrice: 0.3, Variations: []domain.Variation{{ID: "a1", Quantity: 3}}},
		{ID: "b", PurchasePrice: 0.2, SellingPrice: 0.7, Variations: []domain.Variation{{ID: "b1", Quantity: 7}}},
		{ID: "c", PurchasePrice: 19.99, SellingPrice: 24.95, Variations: []domain.Variation{{ID: "c1", Quantity: 11}}},
	}
	reversed := []domain.Item{items[2], items[1], items[0]}
	shuffled := []domain.Item{items[1], items[2], items[0]}

	base := statsservice.Compute(items)

	assert.Equal(t, base, statsservice.Compute(reversed))
	assert.Equal(t, base, statsservice.Compute(shuffled))
	assert.Equal(t, 21, base.TotalItems)
	assert.InDelta(t, 221.59, base.TotalValue, 1e-9)
}

// TestCompute_UsesVariationSum: a quantidade gravada no item é ignorada a favor da soma das variações.
func TestCompute_UsesVariationSum(t *testing.T) {
	items := []domain.Item{{ID: "x", PurchasePrice: 2, SellingPrice: 3, Quantity: 999,
		Variations: []domain.Variation{{ID: "x1", Quantity: 4}}}}

	stats := statsservice.Compute(items)

	assert.Equal(t, 4, stats.TotalItems)
	assert.Equal(t, float64(8), stats.TotalValue)
	assert.Equal(t, float64(4), stats.PotentialProfit)
}
