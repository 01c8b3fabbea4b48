package statsservice

import (
	"github.com/shopspring/decimal"

	"goestoque/internal/domain"
)

// Compute agrega o estoque inteiro numa única passada.
// As somas usam aritmética decimal, então o resultado não depende da ordem dos itens.
//
//	totalItems       = Σ quantity
//	totalValue       = Σ purchasePrice × quantity
//	potentialRevenue = Σ sellingPrice × quantity
//	potentialProfit  = potentialRevenue − totalValue
func Compute(items []domain.Item) domain.InventoryStats {
	var value, valueIDR, revenue, revenueIDR decimal.Decimal
	units := 0

	for _, item := range items {
		n := item.TotalQuantity()
		units += n
		qty := decimal.NewFromInt(int64(n))
		value = value.Add(decimal.NewFromFloat(item.PurchasePrice).Mul(qty))
		valueIDR = valueIDR.Add(decimal.NewFromFloat(item.PurchasePriceIDR).Mul(qty))
		revenue = revenue.Add(decimal.NewFromFloat(item.SellingPrice).Mul(qty))
		revenueIDR = revenueIDR.Add(decimal.NewFromFloat(item.SellingPriceIDR).Mul(qty))
	}

	return domain.InventoryStats{
		TotalItems:          units,
		TotalValue:          value.InexactFloat64(),
		TotalValueIDR:       valueIDR.InexactFloat64(),
		PotentialRevenue:    revenue.InexactFloat64(),
		PotentialRevenueIDR: revenueIDR.InexactFloat64(),
		PotentialProfit:     revenue.Sub(value).InexactFloat64(),
		PotentialProfitIDR:  revenueIDR.Sub(valueIDR).InexactFloat64(),
	}
}
