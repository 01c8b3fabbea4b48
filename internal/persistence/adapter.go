// Package persistence grava e carrega o estado do estoque como três blobs JSON
// (itens, vendas, taxa de câmbio) num storage.KeyValueStore.
package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"goestoque/internal/currency"
	"goestoque/internal/domain"
	apperror "goestoque/internal/errors"
	"goestoque/internal/storage"
)

// Chaves dos blobs no armazenamento.
const (
	KeyItems = "inventoryItems"
	KeySales = "inventorySales"
	KeyRate  = "currencyRate"
)

// State é o conteúdo completo carregado do armazenamento.
type State struct {
	Items []domain.Item
	Sales []domain.Sale
	Rate  domain.CurrencyRate
}

// Adapter faz a ponte entre o estado em memória e o KeyValueStore.
type Adapter struct {
	store       storage.KeyValueStore
	timeout     time.Duration
	seedCatalog bool
	defaultRate domain.CurrencyRate
	now         func() time.Time
}

// Option configura o Adapter.
type Option func(*Adapter)

// WithTimeout limita cada chamada ao armazenamento.
func WithTimeout(d time.Duration) Option { return func(a *Adapter) { a.timeout = d } }

// WithSeedCatalog liga/desliga o catálogo inicial quando não há itens gravados.
func WithSeedCatalog(enabled bool) Option { return func(a *Adapter) { a.seedCatalog = enabled } }

// WithDefaultRate troca a taxa usada quando não há taxa gravada.
func WithDefaultRate(rate domain.CurrencyRate) Option {
	return func(a *Adapter) { a.defaultRate = rate }
}

// WithClock injeta o relógio usado no catálogo inicial.
func WithClock(now func() time.Time) Option { return func(a *Adapter) { a.now = now } }

// NewAdapter cria o adaptador com catálogo inicial e taxa padrão.
func NewAdapter(store storage.KeyValueStore, opts ...Option) *Adapter {
	a := &Adapter{
		store:       store,
		seedCatalog: true,
		defaultRate: domain.DefaultCurrencyRate(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Load lê os três blobs. Chave ausente → valor padrão; blob ilegível → PersistenceError.
// Os itens carregados têm a quantidade recalculada a partir das variações.
func (a *Adapter) Load(ctx context.Context) (State, error) {
	state := State{Sales: []domain.Sale{}, Rate: a.defaultRate}

	found, err := a.read(ctx, KeyItems, &state.Items)
	if err != nil {
		return State{}, err
	}
	if !found {
		state.Items = []domain.Item{}
		if a.seedCatalog {
			state.Items = domain.SeedItems(a.now().UTC())
		}
	}
	if state.Items == nil {
		state.Items = []domain.Item{}
	}
	seen := make(map[string]struct{}, len(state.Items))
	for i := range state.Items {
		if _, dup := seen[state.Items[i].ID]; dup {
			return State{}, apperror.NewPersistenceError(KeyItems, fmt.Errorf("ID de item repetido: %s", state.Items[i].ID))
		}
		seen[state.Items[i].ID] = struct{}{}
		state.Items[i].Normalize()
	}

	if _, err := a.read(ctx, KeySales, &state.Sales); err != nil {
		return State{}, err
	}
	if state.Sales == nil {
		state.Sales = []domain.Sale{}
	}
	seenSales := make(map[string]struct{}, len(state.Sales))
	for _, sale := range state.Sales {
		if _, dup := seenSales[sale.ID]; dup {
			return State{}, apperror.NewPersistenceError(KeySales, fmt.Errorf("ID de venda repetido: %s", sale.ID))
		}
		seenSales[sale.ID] = struct{}{}
	}

	var rate domain.CurrencyRate
	found, err = a.read(ctx, KeyRate, &rate)
	if err != nil {
		return State{}, err
	}
	if found {
		if err := currency.ValidateRate(rate.IDRToSGD); err != nil {
			return State{}, apperror.NewPersistenceError(KeyRate, err)
		}
		state.Rate = rate
	}

	return state, nil
}

// SaveItems grava a coleção de itens.
func (a *Adapter) SaveItems(ctx context.Context, items []domain.Item) error {
	return a.write(ctx, KeyItems, items)
}

// SaveSales grava o livro de vendas.
func (a *Adapter) SaveSales(ctx context.Context, sales []domain.Sale) error {
	return a.write(ctx, KeySales, sales)
}

// SaveRate grava a taxa de câmbio.
func (a *Adapter) SaveRate(ctx context.Context, rate domain.CurrencyRate) error {
	return a.write(ctx, KeyRate, rate)
}

// Clear remove itens e vendas e grava as coleções vazias no lugar, para que o
// próximo Load não confunda o estado limpo com a primeira execução (catálogo inicial).
// A taxa de câmbio é mantida.
func (a *Adapter) Clear(ctx context.Context) error {
	for _, key := range []string{KeyItems, KeySales} {
		if err := a.remove(ctx, key); err != nil {
			return err
		}
	}
	if err := a.SaveItems(ctx, []domain.Item{}); err != nil {
		return err
	}
	return a.SaveSales(ctx, []domain.Sale{})
}

func (a *Adapter) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, a.timeout)
}

// read decodifica a chave em dst. found=false quando a chave não existe.
func (a *Adapter) read(ctx context.Context, key string, dst interface{}) (bool, error) {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	raw, err := a.store.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, apperror.NewPersistenceError(key, err)
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, apperror.NewPersistenceError(key, fmt.Errorf("blob corrompido: %w", err))
	}
	return true, nil
}

func (a *Adapter) write(ctx context.Context, key string, value interface{}) error {
	body, err := json.Marshal(value)
	if err != nil {
		return apperror.NewPersistenceError(key, err)
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.store.Set(ctx, key, string(body)); err != nil {
		return apperror.NewPersistenceError(key, err)
	}
	return nil
}

func (a *Adapter) remove(ctx context.Context, key string) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.store.Delete(ctx, key); err != nil {
		return apperror.NewPersistenceError(key, err)
	}
	return nil
}
