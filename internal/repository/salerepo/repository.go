package salerepo

import (
	"fmt"

	"goestoque/internal/domain"
	"goestoque/internal/errors"
)

// SaleRepository é o livro de vendas em memória: só aceita acréscimos.
type SaleRepository struct {
	sales []domain.Sale
	ids   map[string]struct{}
}

// NewSaleRepository cria o livro já populado com sales.
func NewSaleRepository(sales []domain.Sale) *SaleRepository {
	r := &SaleRepository{}
	r.Reset(sales)
	return r
}

// Reset substitui todo o conteúdo.
func (r *SaleRepository) Reset(sales []domain.Sale) {
	r.sales = make([]domain.Sale, len(sales))
	copy(r.sales, sales)
	r.ids = make(map[string]struct{}, len(sales))
	for _, s := range sales {
		r.ids[s.ID] = struct{}{}
	}
}

// Append acrescenta vendas ao final. Se algum ID já existir, nada é gravado.
func (r *SaleRepository) Append(sales ...domain.Sale) error {
	seen := make(map[string]struct{}, len(sales))
	for _, s := range sales {
		_, inLedger := r.ids[s.ID]
		_, inBatch := seen[s.ID]
		if inLedger || inBatch {
			return errors.NewConflictError(fmt.Sprintf("Venda com ID %s já existe.", s.ID))
		}
		seen[s.ID] = struct{}{}
	}

	for _, s := range sales {
		r.ids[s.ID] = struct{}{}
		r.sales = append(r.sales, s)
	}
	return nil
}

// Exists informa se o ID de venda já foi usado.
func (r *SaleRepository) Exists(id string) bool {
	_, ok := r.ids[id]
	return ok
}

// FindAll devolve uma cópia de todas as vendas, na ordem de registro.
func (r *SaleRepository) FindAll() []domain.Sale {
	out := make([]domain.Sale, len(r.sales))
	copy(out, r.sales)
	return out
}
