package salesservice

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"goestoque/internal/domain"
	apperror "goestoque/internal/errors"
	"goestoque/internal/pkg/idgen"
	"goestoque/internal/pkg/logger"
	"goestoque/internal/pkg/metrics"
	"goestoque/internal/pkg/validate"
)

// maxIDAttempts limita as tentativas de gerar um ID de venda livre.
const maxIDAttempts = 5

// ItemRepository é a parte do repositório de itens usada pelo livro de vendas.
type ItemRepository interface {
	FindByID(id string) (domain.Item, error)
	Replace(item domain.Item) error
}

// SaleRepository define o contrato do livro de vendas (somente acréscimo).
type SaleRepository interface {
	Append(sales ...domain.Sale) error
	Exists(id string) bool
	FindAll() []domain.Sale
}

// Service registra vendas e monta as visões do histórico.
type Service struct {
	items   ItemRepository
	sales   SaleRepository
	logger  logger.Logger
	ids     idgen.Generator
	now     func() time.Time
	metrics *metrics.Metrics
}

// Option configura o Service.
type Option func(*Service)

// WithIDGenerator troca o gerador de IDs (padrão: UUID).
func WithIDGenerator(g idgen.Generator) Option { return func(s *Service) { s.ids = g } }

// WithClock troca o relógio (padrão: time.Now).
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

// WithMetrics liga as métricas de negócio.
func WithMetrics(m *metrics.Metrics) Option { return func(s *Service) { s.metrics = m } }

// NewService cria e retorna uma nova instância do Serviço de Vendas.
func NewService(items ItemRepository, sales SaleRepository, logger logger.Logger, opts ...Option) *Service {
	s := &Service{items: items, sales: sales, logger: logger, ids: idgen.UUID{}, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RecordSales registra um lote de vendas de forma atômica: ou todas as vendas são
// aplicadas, ou nada muda. Cada pedido é conferido contra o saldo que sobra depois
// dos pedidos anteriores do mesmo lote.
func (s *Service) RecordSales(batch domain.SaleBatch) ([]domain.Sale, error) {
	s.logger.Debug("Iniciando registro de lote de vendas.", map[string]interface{}{
		"sale_date": batch.SaleDate,
		"requests":  len(batch.Requests),
	})

	sales, touched, err := s.prepare(batch)
	if err != nil {
		s.reject(err)
		return nil, err
	}

	now := s.now().UTC()
	for _, item := range touched {
		item.LastUpdated = now
		if err := s.items.Replace(*item); err != nil {
			s.logger.Error("Falha ao gravar baixa de estoque no repositório.", err)
			return nil, apperror.NewInternalError("Falha ao aplicar baixa de estoque.", err)
		}
	}
	if err := s.sales.Append(sales...); err != nil {
		s.logger.Error("Falha ao acrescentar vendas ao livro.", err)
		return nil, apperror.NewInternalError("Falha ao registrar vendas.", err)
	}

	units := 0
	for _, sale := range sales {
		units += sale.Quantity
		s.metrics.RecordSale(sale.Quantity)
	}
	s.logger.Info("Lote de vendas registrado com sucesso.", map[string]interface{}{
		"sale_date": batch.SaleDate,
		"sales":     len(sales),
		"units":     units,
	})
	return sales, nil
}

// prepare valida o lote inteiro sobre cópias dos itens e monta as vendas.
// Nada é gravado aqui; touched traz as cópias já baixadas, na ordem do primeiro uso.
func (s *Service) prepare(batch domain.SaleBatch) ([]domain.Sale, []*domain.Item, error) {
	if err := validate.Struct(batch); err != nil {
		return nil, nil, err
	}
	if _, err := time.Parse(domain.SaleDateLayout, batch.SaleDate); err != nil {
		return nil, nil, apperror.NewValidationError(fmt.Sprintf("Data de venda inválida: %q (use AAAA-MM-DD).", batch.SaleDate))
	}

	working := make(map[string]*domain.Item)
	var touched []*domain.Item

	for i, req := range batch.Requests {
		if req.Quantity <= 0 {
			return nil, nil, apperror.NewValidationError(fmt.Sprintf("venda #%d: a quantidade deve ser positiva.", i+1))
		}
		if invalidPrice(req.SalePrice) || invalidPrice(req.SalePriceIDR) {
			return nil, nil, apperror.NewValidationError(fmt.Sprintf("venda #%d: os preços não podem ser negativos.", i+1))
		}

		item, ok := working[req.ItemID]
		if !ok {
			found, err := s.items.FindByID(req.ItemID)
			if err != nil {
				return nil, nil, apperror.NewNotFoundError(fmt.Sprintf("venda #%d: item %s não encontrado.", i+1, req.ItemID))
			}
			item = &found
			working[req.ItemID] = item
			touched = append(touched, item)
		}

		if err := item.ApplySale(req.VariationID, req.Quantity); err != nil {
			var stockErr *apperror.InsufficientStockError
			if errors.As(err, &stockErr) {
				stockErr.Index = i
				return nil, nil, stockErr
			}
			var notFound *apperror.NotFoundError
			if errors.As(err, &notFound) {
				return nil, nil, apperror.NewNotFoundError(fmt.Sprintf("venda #%d: variação %s não existe no item %s.", i+1, req.VariationID, req.ItemID))
			}
			return nil, nil, err
		}
	}

	ids, err := s.newSaleIDs(len(batch.Requests))
	if err != nil {
		return nil, nil, err
	}

	sales := make([]domain.Sale, len(batch.Requests))
	for i, req := range batch.Requests {
		sales[i] = domain.Sale{
			ID:           ids[i],
			ItemID:       req.ItemID,
			VariationID:  req.VariationID,
			Quantity:     req.Quantity,
			SalePrice:    req.SalePrice,
			SalePriceIDR: req.SalePriceIDR,
			SaleDate:     batch.SaleDate,
			Notes:        req.Notes,
		}
	}
	return sales, touched, nil
}

// newSaleIDs gera n IDs inéditos no livro e entre si.
func (s *Service) newSaleIDs(n int) ([]string, error) {
	ids := make([]string, 0, n)
	used := make(map[string]struct{}, n)
	for len(ids) < n {
		var id string
		for attempt := 0; ; attempt++ {
			if attempt == maxIDAttempts {
				return nil, apperror.NewConflictError("Não foi possível gerar um ID de venda inédito.")
			}
			id = s.ids.NewID()
			if _, dup := used[id]; !dup && !s.sales.Exists(id) {
				break
			}
		}
		used[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}

func invalidPrice(v float64) bool {
	return v < 0 || math.IsNaN(v) || math.IsInf(v, 0)
}

func (s *Service) reject(err error) {
	_, category, _ := apperror.MapToHTTPStatus(err)
	s.metrics.RecordSaleBatchRejected(category)
	s.logger.Warn("Lote de vendas rejeitado; nenhum estoque foi alterado.", map[string]interface{}{
		"reason": category,
		"error":  err.Error(),
	})
}

// History devolve todas as vendas com a consulta tolerante ao item e à variação.
// Vendas de itens excluídos aparecem com Found=false.
func (s *Service) History() []domain.SaleView {
	sales := s.sales.FindAll()
	cache := make(map[string]*domain.Item)
	views := make([]domain.SaleView, len(sales))
	for i, sale := range sales {
		views[i] = s.lookup(sale, cache)
	}
	return views
}

func (s *Service) lookup(sale domain.Sale, cache map[string]*domain.Item) domain.SaleView {
	view := domain.SaleView{Sale: sale}

	item, seen := cache[sale.ItemID]
	if !seen {
		if found, err := s.items.FindByID(sale.ItemID); err == nil {
			item = &found
		}
		cache[sale.ItemID] = item
	}
	if item == nil {
		return view
	}

	view.ItemName = item.Name
	view.SKU = item.SKU
	if v, ok := item.FindVariation(sale.VariationID); ok {
		view.Found = true
		view.VariationLabel = v.Label()
	}
	return view
}

// DailySummaries agrupa as vendas por data, da mais recente para a mais antiga,
// com os totais do dia nas duas moedas.
func (s *Service) DailySummaries() []domain.DailySales {
	byDate := make(map[string]*domain.DailySales)
	totalsSGD := make(map[string]decimal.Decimal)
	totalsIDR := make(map[string]decimal.Decimal)
	var dates []string

	for _, view := range s.History() {
		day, ok := byDate[view.SaleDate]
		if !ok {
			day = &domain.DailySales{Date: view.SaleDate, Sales: []domain.SaleView{}}
			byDate[view.SaleDate] = day
			dates = append(dates, view.SaleDate)
		}
		day.Sales = append(day.Sales, view)

		qty := decimal.NewFromInt(int64(view.Quantity))
		totalsSGD[view.SaleDate] = totalsSGD[view.SaleDate].Add(decimal.NewFromFloat(view.SalePrice).Mul(qty))
		totalsIDR[view.SaleDate] = totalsIDR[view.SaleDate].Add(decimal.NewFromFloat(view.SalePriceIDR).Mul(qty))
	}

	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	out := make([]domain.DailySales, 0, len(dates))
	for _, date := range dates {
		day := byDate[date]
		day.TotalSGD = totalsSGD[date].InexactFloat64()
		day.TotalIDR = totalsIDR[date].InexactFloat64()
		out = append(out, *day)
	}
	return out
}

// exportDateLayout é o formato de data da planilha de histórico (ex.: "Mar 16, 2024").
const exportDateLayout = "Jan 2, 2006"

// ExportRows monta as linhas da exportação do histórico, na ordem de registro.
func (s *Service) ExportRows() []domain.SaleExportRow {
	views := s.History()
	rows := make([]domain.SaleExportRow, len(views))
	for i, v := range views {
		date := v.SaleDate
		if t, err := time.Parse(domain.SaleDateLayout, v.SaleDate); err == nil {
			date = t.Format(exportDateLayout)
		}
		rows[i] = domain.SaleExportRow{
			Date:      date,
			Product:   v.ItemName,
			SKU:       v.SKU,
			Variation: v.VariationLabel,
			Quantity:  v.Quantity,
			PriceSGD:  v.SalePrice,
			TotalSGD:  v.TotalSGD(),
			PriceIDR:  v.SalePriceIDR,
			TotalIDR:  v.TotalIDR(),
			Notes:     v.Notes,
		}
	}
	return rows
}
