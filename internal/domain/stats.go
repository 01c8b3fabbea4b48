package domain

// InventoryStats agrega o estoque inteiro. Recalculado a cada leitura, nunca armazenado.
type InventoryStats struct {
	TotalItems          int     `json:"totalItems"`
	TotalValue          float64 `json:"totalValue"`
	TotalValueIDR       float64 `json:"totalValueIDR"`
	PotentialRevenue    float64 `json:"potentialRevenue"`
	PotentialRevenueIDR float64 `json:"potentialRevenueIDR"`
	PotentialProfit     float64 `json:"potentialProfit"`
	PotentialProfitIDR  float64 `json:"potentialProfitIDR"`
}
