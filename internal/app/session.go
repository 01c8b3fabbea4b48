// Package app contém a Sessão: o contêiner de estado (itens, vendas, taxa) com
// ciclo de vida explícito. Carrega do armazenamento na partida e grava após cada mutação.
package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"goestoque/internal/currency"
	"goestoque/internal/domain"
	apperror "goestoque/internal/errors"
	"goestoque/internal/persistence"
	"goestoque/internal/pkg/idgen"
	"goestoque/internal/pkg/logger"
	"goestoque/internal/pkg/metrics"
	"goestoque/internal/repository/itemrepo"
	"goestoque/internal/repository/salerepo"
	"goestoque/internal/service/inventoryservice"
	"goestoque/internal/service/salesservice"
	"goestoque/internal/service/statsservice"
)

// Store é o que a Sessão espera da camada de persistência.
type Store interface {
	Load(ctx context.Context) (persistence.State, error)
	SaveItems(ctx context.Context, items []domain.Item) error
	SaveSales(ctx context.Context, sales []domain.Sale) error
	SaveRate(ctx context.Context, rate domain.CurrencyRate) error
	Clear(ctx context.Context) error
}

// Session serializa todas as operações com um único mutex (um só ator lógico).
// Quando a gravação falha, a mutação em memória permanece e o resultado volta
// acompanhado de um PersistenceError.
type Session struct {
	mu sync.Mutex

	store   Store
	logger  logger.Logger
	metrics *metrics.Metrics

	items *itemrepo.ItemRepository
	sales *salerepo.SaleRepository
	rate  domain.CurrencyRate

	inventory *inventoryservice.Service
	ledger    *salesservice.Service
}

// Option configura a Sessão.
type Option func(*options)

type options struct {
	ids     idgen.Generator
	now     func() time.Time
	metrics *metrics.Metrics
}

// WithIDGenerator troca o gerador de IDs (padrão: UUID).
func WithIDGenerator(g idgen.Generator) Option { return func(o *options) { o.ids = g } }

// WithClock troca o relógio (padrão: time.Now).
func WithClock(now func() time.Time) Option { return func(o *options) { o.now = now } }

// WithMetrics liga as métricas de negócio.
func WithMetrics(m *metrics.Metrics) Option { return func(o *options) { o.metrics = m } }

// NewSession cria uma sessão vazia. Chame Load antes de usar.
func NewSession(store Store, log logger.Logger, opts ...Option) *Session {
	o := options{ids: idgen.UUID{}, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Session{
		store:   store,
		logger:  log,
		metrics: o.metrics,
		items:   itemrepo.NewItemRepository(nil),
		sales:   salerepo.NewSaleRepository(nil),
		rate:    domain.DefaultCurrencyRate(),
	}
	s.inventory = inventoryservice.NewService(s.items, log,
		inventoryservice.WithIDGenerator(o.ids),
		inventoryservice.WithClock(o.now),
		inventoryservice.WithMetrics(o.metrics),
	)
	s.ledger = salesservice.NewService(s.items, s.sales, log,
		salesservice.WithIDGenerator(o.ids),
		salesservice.WithClock(o.now),
		salesservice.WithMetrics(o.metrics),
	)
	return s
}

// Load substitui o estado em memória pelo conteúdo do armazenamento.
func (s *Session) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.store.Load(ctx)
	if err != nil {
		s.persistFailed(err)
		return err
	}

	s.items.Reset(state.Items)
	s.sales.Reset(state.Sales)
	s.rate = state.Rate

	s.logger.Info("Estado do estoque carregado.", map[string]interface{}{
		"items":      len(state.Items),
		"sales":      len(state.Sales),
		"idr_to_sgd": state.Rate.IDRToSGD,
	})
	return nil
}

// --- Itens ---

// Items lista todos os itens.
func (s *Session) Items() []domain.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inventory.List()
}

// Item devolve um item pelo ID.
func (s *Session) Item(id string) (domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inventory.Get(id)
}

// CreateItem cria um item a partir do rascunho, usando a taxa atual.
func (s *Session) CreateItem(ctx context.Context, draft domain.ItemDraft) (domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.inventory.Create(draft, s.rate)
	if err != nil {
		return domain.Item{}, err
	}
	return item, s.saveItems(ctx)
}

// UpdateItem substitui os campos editáveis de um item.
func (s *Session) UpdateItem(ctx context.Context, id string, draft domain.ItemDraft) (domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.inventory.Update(id, draft, s.rate)
	if err != nil {
		return domain.Item{}, err
	}
	return item, s.saveItems(ctx)
}

// DeleteItem remove um item. As vendas dele continuam no livro.
func (s *Session) DeleteItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.inventory.Delete(id); err != nil {
		return err
	}
	return s.saveItems(ctx)
}

// AddVariation acrescenta uma variação a um item.
func (s *Session) AddVariation(ctx context.Context, itemID string, input domain.VariationInput) (domain.Item, domain.Variation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, v, err := s.inventory.AddVariation(itemID, input)
	if err != nil {
		return domain.Item{}, domain.Variation{}, err
	}
	return item, v, s.saveItems(ctx)
}

// RemoveVariation remove uma variação de um item.
func (s *Session) RemoveVariation(ctx context.Context, itemID, variationID string) (domain.Item, domain.Variation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, v, err := s.inventory.RemoveVariation(itemID, variationID)
	if err != nil {
		return domain.Item{}, domain.Variation{}, err
	}
	return item, v, s.saveItems(ctx)
}

// BulkImport cria itens a partir de linhas externas (sucesso parcial).
func (s *Session) BulkImport(ctx context.Context, rows []domain.ImportRow) (domain.BulkImportResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.inventory.BulkCreate(rows, s.rate)
	if err != nil {
		return result, err
	}
	if len(result.Created) == 0 {
		return result, nil
	}
	return result, s.saveItems(ctx)
}

// --- Vendas ---

// RecordSales registra um lote de vendas (tudo ou nada) e grava itens e vendas.
func (s *Session) RecordSales(ctx context.Context, batch domain.SaleBatch) ([]domain.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sales, err := s.ledger.RecordSales(batch)
	if err != nil {
		return nil, err
	}
	// As duas chaves são gravadas mesmo que a primeira falhe.
	itemsErr := s.saveItems(ctx)
	salesErr := s.saveSales(ctx)
	if itemsErr != nil {
		return sales, itemsErr
	}
	return sales, salesErr
}

// Sales devolve o livro de vendas bruto.
func (s *Session) Sales() []domain.Sale {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sales.FindAll()
}

// SaleHistory devolve as vendas com a consulta tolerante ao item.
func (s *Session) SaleHistory() []domain.SaleView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.History()
}

// DailySales agrupa as vendas por dia, da data mais recente para a mais antiga.
func (s *Session) DailySales() []domain.DailySales {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.DailySummaries()
}

// SalesExport devolve as linhas da planilha de histórico.
func (s *Session) SalesExport() []domain.SaleExportRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.ExportRows()
}

// --- Câmbio ---

// Rate devolve a taxa de câmbio atual.
func (s *Session) Rate() domain.CurrencyRate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rate
}

// SetRate troca a taxa de câmbio. Os preços já gravados NÃO são recalculados.
func (s *Session) SetRate(ctx context.Context, rate domain.CurrencyRate) (domain.CurrencyRate, error) {
	if err := currency.ValidateRate(rate.IDRToSGD); err != nil {
		return domain.CurrencyRate{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.rate
	s.rate = rate
	s.logger.Info("Taxa de câmbio alterada.", map[string]interface{}{
		"previous": previous.IDRToSGD,
		"current":  rate.IDRToSGD,
	})
	return rate, s.save(ctx, persistence.KeyRate, func(ctx context.Context) error {
		return s.store.SaveRate(ctx, s.rate)
	})
}

// Convert converte amount da moeda from para a outra com a taxa atual.
func (s *Session) Convert(amount float64, from domain.Currency) (domain.PricePair, error) {
	s.mu.Lock()
	rate := s.rate
	s.mu.Unlock()

	conv, err := currency.NewConverter(rate)
	if err != nil {
		return domain.PricePair{}, err
	}
	return conv.Convert(amount, from)
}

// --- Estatísticas e manutenção ---

// Stats recalcula as estatísticas do estoque.
func (s *Session) Stats() domain.InventoryStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return statsservice.Compute(s.items.FindAll())
}

// ClearData esvazia itens e vendas e remove as chaves gravadas. A taxa é mantida.
func (s *Session) ClearData(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items.Reset(nil)
	s.sales.Reset(nil)
	s.logger.Info("Dados de itens e vendas apagados.", nil)
	return s.save(ctx, persistence.KeyItems, s.store.Clear)
}

// --- Gravação ---

func (s *Session) saveItems(ctx context.Context) error {
	return s.save(ctx, persistence.KeyItems, func(ctx context.Context) error {
		return s.store.SaveItems(ctx, s.items.FindAll())
	})
}

func (s *Session) saveSales(ctx context.Context) error {
	return s.save(ctx, persistence.KeySales, func(ctx context.Context) error {
		return s.store.SaveSales(ctx, s.sales.FindAll())
	})
}

// save executa fn e garante que qualquer falha saia como PersistenceError.
func (s *Session) save(ctx context.Context, key string, fn func(context.Context) error) error {
	err := fn(ctx)
	if err == nil {
		return nil
	}
	if !apperror.IsPersistence(err) {
		err = apperror.NewPersistenceError(key, err)
	}
	s.persistFailed(err)
	return err
}

func (s *Session) persistFailed(err error) {
	key := "unknown"
	var pe *apperror.PersistenceError
	if errors.As(err, &pe) {
		key = pe.Key
	}
	s.metrics.RecordPersistenceFailure(key)
	s.logger.Error("Falha de persistência; o estado em memória foi mantido.", err)
}
