package domain

import (
	"fmt"
	"strings"
	"time"

	apperror "goestoque/internal/errors"
)

// Item representa um produto do estoque (a Entidade).
// Quantity é derivada: sempre igual à soma das quantidades das variações.
type Item struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	SKU              string      `json:"sku"` // Stock Keeping Unit
	Category         string      `json:"category"`
	ProductURL       string      `json:"productUrl"`
	PurchasePrice    float64     `json:"purchasePrice"` // SGD
	PurchasePriceIDR float64     `json:"purchasePriceIDR"`
	SellingPrice     float64     `json:"sellingPrice"` // SGD
	SellingPriceIDR  float64     `json:"sellingPriceIDR"`
	Quantity         int         `json:"quantity"`
	Variations       []Variation `json:"variations"`
	CreatedAt        time.Time   `json:"createdAt"`
	LastUpdated      time.Time   `json:"lastUpdated"`
}

// Variation é uma combinação cor × tamanho de um Item, com estoque próprio.
type Variation struct {
	ID       string `json:"id"`
	Color    string `json:"color"`
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

// Label devolve a descrição "cor / tamanho" usada em relatórios.
func (v Variation) Label() string {
	return fmt.Sprintf("%s / %s", v.Color, v.Size)
}

// --- Razão de Variações (Variation Ledger) ---

// Clone devolve uma cópia profunda do item (as variações não são compartilhadas).
func (i Item) Clone() Item {
	c := i
	c.Variations = make([]Variation, len(i.Variations))
	copy(c.Variations, i.Variations)
	return c
}

// TotalQuantity soma as quantidades de todas as variações.
func (i Item) TotalQuantity() int {
	total := 0
	for _, v := range i.Variations {
		total += v.Quantity
	}
	return total
}

// Normalize recalcula Quantity a partir das variações e garante uma lista não nula.
func (i *Item) Normalize() {
	if i.Variations == nil {
		i.Variations = []Variation{}
	}
	i.Quantity = i.TotalQuantity()
}

// FindVariation procura uma variação pelo ID.
func (i Item) FindVariation(variationID string) (Variation, bool) {
	if idx := i.variationIndex(variationID); idx >= 0 {
		return i.Variations[idx], true
	}
	return Variation{}, false
}

func (i Item) variationIndex(variationID string) int {
	for idx, v := range i.Variations {
		if v.ID == variationID {
			return idx
		}
	}
	return -1
}

// AddVariation acrescenta uma nova variação com o ID fornecido.
// Pares cor/tamanho repetidos NÃO são mesclados: cada chamada cria uma entrada distinta.
func (i *Item) AddVariation(id, color, size string, quantity int) (Variation, error) {
	if strings.TrimSpace(color) == "" || strings.TrimSpace(size) == "" {
		return Variation{}, apperror.NewValidationError("Cor e tamanho da variação são obrigatórios.")
	}
	if quantity <= 0 {
		return Variation{}, apperror.NewValidationError("A quantidade da variação deve ser positiva.")
	}
	if strings.TrimSpace(id) == "" {
		return Variation{}, apperror.NewValidationError("O ID da variação não pode ser vazio.")
	}
	if i.variationIndex(id) >= 0 {
		return Variation{}, apperror.NewConflictError(fmt.Sprintf("Variação com ID %s já existe no item %s.", id, i.ID))
	}

	v := Variation{ID: id, Color: color, Size: size, Quantity: quantity}
	i.Variations = append(i.Variations, v)
	i.Quantity += quantity
	return v, nil
}

// RemoveVariation remove a variação e desconta sua quantidade do total do item.
func (i *Item) RemoveVariation(variationID string) (Variation, error) {
	idx := i.variationIndex(variationID)
	if idx < 0 {
		return Variation{}, apperror.NewNotFoundError(fmt.Sprintf("Variação %s não existe no item %s.", variationID, i.ID))
	}

	removed := i.Variations[idx]
	i.Variations = append(i.Variations[:idx:idx], i.Variations[idx+1:]...)
	i.Quantity -= removed.Quantity
	return removed, nil
}

// ApplySale baixa soldQty unidades da variação. Nunca deixa estoque negativo.
func (i *Item) ApplySale(variationID string, soldQty int) error {
	if soldQty <= 0 {
		return apperror.NewValidationError("A quantidade vendida deve ser positiva.")
	}
	idx := i.variationIndex(variationID)
	if idx < 0 {
		return apperror.NewNotFoundError(fmt.Sprintf("Variação %s não existe no item %s.", variationID, i.ID))
	}
	available := i.Variations[idx].Quantity
	if soldQty > available {
		return apperror.NewInsufficientStockError(i.ID, variationID, soldQty, available)
	}

	i.Variations[idx].Quantity -= soldQty
	i.Quantity -= soldQty
	return nil
}

// --- Rascunhos (entrada do colaborador de UI) ---

// Currency identifica a moeda em que um preço foi digitado.
type Currency string

const (
	CurrencySGD Currency = "SGD"
	CurrencyIDR Currency = "IDR"
)

// VariationInput é uma variação enviada num rascunho. ID vazio = variação nova.
type VariationInput struct {
	ID       string `json:"id,omitempty"`
	Color    string `json:"color" validate:"required"`
	Size     string `json:"size" validate:"required"`
	Quantity int    `json:"quantity" validate:"gte=0"`
}

// ItemDraft carrega todos os campos editáveis de um Item (sem ID e datas).
// PriceCurrency indica qual lado dos pares de preço foi digitado; o outro é derivado.
type ItemDraft struct {
	Name             string           `json:"name" validate:"required"`
	SKU              string           `json:"sku" validate:"required"`
	Category         string           `json:"category" validate:"required"`
	ProductURL       string           `json:"productUrl" validate:"omitempty,url"`
	PriceCurrency    Currency         `json:"priceCurrency,omitempty" validate:"omitempty,oneof=SGD IDR"`
	PurchasePrice    float64          `json:"purchasePrice" validate:"gte=0"`
	PurchasePriceIDR float64          `json:"purchasePriceIDR" validate:"gte=0"`
	SellingPrice     float64          `json:"sellingPrice" validate:"gte=0"`
	SellingPriceIDR  float64          `json:"sellingPriceIDR" validate:"gte=0"`
	Variations       []VariationInput `json:"variations" validate:"dive"`
}

// PricePair é um preço expresso nas duas moedas.
type PricePair struct {
	SGD float64 `json:"sgd"`
	IDR float64 `json:"idr"`
}
