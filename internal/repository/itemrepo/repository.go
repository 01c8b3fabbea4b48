package itemrepo

import (
	"fmt"

	"goestoque/internal/domain"
	"goestoque/internal/errors"
)

// ItemRepository guarda os itens em memória, na ordem de inserção, com índice por ID.
// Entradas e saídas são cópias profundas: quem chama nunca altera o estado por referência.
// Não é seguro para uso concorrente; a sessão serializa o acesso.
type ItemRepository struct {
	items []domain.Item
	index map[string]int // id → posição em items
}

// NewItemRepository cria o repositório já populado com items.
func NewItemRepository(items []domain.Item) *ItemRepository {
	r := &ItemRepository{}
	r.Reset(items)
	return r
}

// Reset substitui todo o conteúdo.
func (r *ItemRepository) Reset(items []domain.Item) {
	r.items = make([]domain.Item, 0, len(items))
	r.index = make(map[string]int, len(items))
	for _, it := range items {
		r.index[it.ID] = len(r.items)
		r.items = append(r.items, it.Clone())
	}
}

// Insert acrescenta um item novo. ID repetido → ConflictError.
func (r *ItemRepository) Insert(item domain.Item) error {
	if _, exists := r.index[item.ID]; exists {
		return errors.NewConflictError(fmt.Sprintf("Item com ID %s já existe.", item.ID))
	}
	r.index[item.ID] = len(r.items)
	r.items = append(r.items, item.Clone())
	return nil
}

// FindByID devolve uma cópia do item.
func (r *ItemRepository) FindByID(id string) (domain.Item, error) {
	pos, ok := r.index[id]
	if !ok {
		return domain.Item{}, errors.NewNotFoundError(fmt.Sprintf("Item com ID %s não encontrado.", id))
	}
	return r.items[pos].Clone(), nil
}

// Exists informa se o ID está em uso.
func (r *ItemRepository) Exists(id string) bool {
	_, ok := r.index[id]
	return ok
}

// FindAll devolve cópias de todos os itens, na ordem de inserção.
func (r *ItemRepository) FindAll() []domain.Item {
	out := make([]domain.Item, len(r.items))
	for i, it := range r.items {
		out[i] = it.Clone()
	}
	return out
}

// Replace substitui um item existente mantendo sua posição.
func (r *ItemRepository) Replace(item domain.Item) error {
	pos, ok := r.index[item.ID]
	if !ok {
		return errors.NewNotFoundError(fmt.Sprintf("Item com ID %s não encontrado.", item.ID))
	}
	r.items[pos] = item.Clone()
	return nil
}

// Delete remove o item e reindexa as posições seguintes.
func (r *ItemRepository) Delete(id string) error {
	pos, ok := r.index[id]
	if !ok {
		return errors.NewNotFoundError(fmt.Sprintf("Item com ID %s não encontrado.", id))
	}
	r.items = append(r.items[:pos], r.items[pos+1:]...)
	delete(r.index, id)
	for i := pos; i < len(r.items); i++ {
		r.index[r.items[i].ID] = i
	}
	return nil
}

// Len devolve o número de itens.
func (r *ItemRepository) Len() int {
	return len(r.items)
}
