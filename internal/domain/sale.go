package domain

// SaleDateLayout é o formato de data (dia de calendário) das vendas.
const SaleDateLayout = "2006-01-02"

// Sale é o registro imutável de uma venda. Os preços são congelados no momento da venda.
// ItemID e VariationID são referências fracas: o item pode ter sido excluído depois.
type Sale struct {
	ID           string  `json:"id"`
	ItemID       string  `json:"itemId"`
	VariationID  string  `json:"variationId"`
	Quantity     int     `json:"quantity"`
	SalePrice    float64 `json:"salePrice"` // SGD
	SalePriceIDR float64 `json:"salePriceIDR"`
	SaleDate     string  `json:"saleDate"`
	Notes        string  `json:"notes,omitempty"`
}

// TotalSGD é o valor total da venda em SGD.
func (s Sale) TotalSGD() float64 { return s.SalePrice * float64(s.Quantity) }

// TotalIDR é o valor total da venda em IDR.
func (s Sale) TotalIDR() float64 { return s.SalePriceIDR * float64(s.Quantity) }

// SaleRequest é um pedido de venda dentro de um lote.
// Os preços já vêm convertidos pelo chamador e são gravados sem recálculo.
type SaleRequest struct {
	ItemID       string  `json:"itemId" validate:"required"`
	VariationID  string  `json:"variationId" validate:"required"`
	Quantity     int     `json:"quantity"`
	SalePrice    float64 `json:"salePrice"`
	SalePriceIDR float64 `json:"salePriceIDR"`
	Notes        string  `json:"notes,omitempty"`
}

// SaleBatch agrupa pedidos que compartilham a mesma data nominal.
type SaleBatch struct {
	SaleDate string        `json:"saleDate" validate:"required"`
	Requests []SaleRequest `json:"sales" validate:"required,min=1,dive"`
}

// SaleView é uma venda acompanhada da consulta (tolerante) ao item e à variação.
type SaleView struct {
	Sale
	Found          bool   `json:"found"`
	ItemName       string `json:"itemName,omitempty"`
	SKU            string `json:"sku,omitempty"`
	VariationLabel string `json:"variationLabel,omitempty"`
}

// DailySales resume as vendas de um dia.
type DailySales struct {
	Date     string     `json:"date"`
	TotalSGD float64    `json:"totalSGD"`
	TotalIDR float64    `json:"totalIDR"`
	Sales    []SaleView `json:"sales"`
}

// SaleExportRow é uma linha da exportação do histórico de vendas.
type SaleExportRow struct {
	Date      string
	Product   string
	SKU       string
	Variation string
	Quantity  int
	PriceSGD  float64
	TotalSGD  float64
	PriceIDR  float64
	TotalIDR  float64
	Notes     string
}
