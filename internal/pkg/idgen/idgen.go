package idgen

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Generator fornece identificadores novos para itens, variações e vendas.
type Generator interface {
	NewID() string
}

// UUID gera identificadores UUID v4 (padrão em produção).
type UUID struct{}

func (UUID) NewID() string { return uuid.New().String() }

// Sequence gera identificadores determinísticos "<prefix>1", "<prefix>2", ...
// Usado em testes.
type Sequence struct {
	mu     sync.Mutex
	Prefix string
	n      int
}

// NewSequence cria um gerador sequencial com o prefixo informado.
func NewSequence(prefix string) *Sequence {
	return &Sequence{Prefix: prefix}
}

func (s *Sequence) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("%s%d", s.Prefix, s.n)
}
