package inventoryservice

import (
	"fmt"
	"time"

	"goestoque/internal/currency"
	"goestoque/internal/domain"
	apperror "goestoque/internal/errors"
	"goestoque/internal/pkg/idgen"
	"goestoque/internal/pkg/logger"
	"goestoque/internal/pkg/metrics"
	"goestoque/internal/pkg/validate"
)

// ItemRepository define o contrato que o Serviço de Inventário espera da camada de repositório.
type ItemRepository interface {
	Insert(item domain.Item) error
	FindByID(id string) (domain.Item, error)
	FindAll() []domain.Item
	Replace(item domain.Item) error
	Delete(id string) error
}

// Service aplica as regras de cadastro de itens e variações.
type Service struct {
	repo    ItemRepository
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

// NewService cria e retorna uma nova instância do Serviço de Inventário.
func NewService(repo ItemRepository, logger logger.Logger, opts ...Option) *Service {
	s := &Service{repo: repo, logger: logger, ids: idgen.UUID{}, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create valida o rascunho, deriva os preços na outra moeda e grava um item novo.
func (s *Service) Create(draft domain.ItemDraft, rate domain.CurrencyRate) (domain.Item, error) {
	return s.create(draft, rate, "form")
}

func (s *Service) create(draft domain.ItemDraft, rate domain.CurrencyRate, source string) (domain.Item, error) {
	s.logger.Debug("Iniciando criação de item no serviço.", map[string]interface{}{
		"sku":    draft.SKU,
		"source": source,
	})

	now := s.now().UTC()
	item := domain.Item{ID: s.ids.NewID(), CreatedAt: now}
	if err := s.applyDraft(&item, draft, rate); err != nil {
		s.logger.Warn("Rascunho de item rejeitado.", map[string]interface{}{"sku": draft.SKU, "error": err.Error()})
		return domain.Item{}, err
	}
	item.LastUpdated = now

	if err := s.repo.Insert(item); err != nil {
		s.logger.Error("Falha ao inserir item no repositório.", err)
		return domain.Item{}, err
	}

	s.metrics.RecordItemCreated(source)
	s.logger.Info("Item criado com sucesso.", map[string]interface{}{
		"item_id":  item.ID,
		"sku":      item.SKU,
		"quantity": item.Quantity,
	})
	return item, nil
}

// Update substitui os campos editáveis de um item existente. ID e createdAt são preservados.
func (s *Service) Update(id string, draft domain.ItemDraft, rate domain.CurrencyRate) (domain.Item, error) {
	s.logger.Debug("Iniciando atualização de item no serviço.", map[string]interface{}{"item_id": id})

	item, err := s.repo.FindByID(id)
	if err != nil {
		s.logger.Warn("Item não encontrado para atualização.", map[string]interface{}{"item_id": id})
		return domain.Item{}, err
	}

	if err := s.applyDraft(&item, draft, rate); err != nil {
		s.logger.Warn("Rascunho de item rejeitado.", map[string]interface{}{"item_id": id, "error": err.Error()})
		return domain.Item{}, err
	}
	item.LastUpdated = s.now().UTC()

	if err := s.repo.Replace(item); err != nil {
		s.logger.Error("Falha ao substituir item no repositório.", err)
		return domain.Item{}, err
	}

	s.logger.Info("Item atualizado com sucesso.", map[string]interface{}{
		"item_id":  item.ID,
		"quantity": item.Quantity,
	})
	return item, nil
}

// applyDraft copia os campos do rascunho para item, derivando os preços e as variações.
// Em caso de erro, item não é alterado.
func (s *Service) applyDraft(item *domain.Item, draft domain.ItemDraft, rate domain.CurrencyRate) error {
	if err := validate.Struct(draft); err != nil {
		return err
	}
	conv, err := currency.NewConverter(rate)
	if err != nil {
		return err
	}

	var purchase, selling domain.PricePair
	switch draft.PriceCurrency {
	case domain.CurrencyIDR:
		purchase = conv.PairFromIDR(draft.PurchasePriceIDR)
		selling = conv.PairFromIDR(draft.SellingPriceIDR)
	default:
		purchase = conv.PairFromSGD(draft.PurchasePrice)
		selling = conv.PairFromSGD(draft.SellingPrice)
	}

	variations, err := s.buildVariations(draft.Variations)
	if err != nil {
		return err
	}

	item.Name = draft.Name
	item.SKU = draft.SKU
	item.Category = draft.Category
	item.ProductURL = draft.ProductURL
	item.PurchasePrice, item.PurchasePriceIDR = purchase.SGD, purchase.IDR
	item.SellingPrice, item.SellingPriceIDR = selling.SGD, selling.IDR
	item.Variations = variations
	item.Normalize()
	return nil
}

// buildVariations mantém IDs informados e gera IDs para variações novas.
func (s *Service) buildVariations(inputs []domain.VariationInput) ([]domain.Variation, error) {
	out := make([]domain.Variation, 0, len(inputs))
	seen := make(map[string]struct{}, len(inputs))
	for _, in := range inputs {
		id := in.ID
		if id == "" {
			id = s.ids.NewID()
		}
		if _, dup := seen[id]; dup {
			return nil, apperror.NewValidationError(fmt.Sprintf("ID de variação repetido no rascunho: %s.", id))
		}
		seen[id] = struct{}{}
		out = append(out, domain.Variation{ID: id, Color: in.Color, Size: in.Size, Quantity: in.Quantity})
	}
	return out, nil
}

// Delete remove o item. As vendas já registradas continuam no livro.
func (s *Service) Delete(id string) error {
	s.logger.Debug("Iniciando remoção de item no serviço.", map[string]interface{}{"item_id": id})

	if err := s.repo.Delete(id); err != nil {
		s.logger.Warn("Item não encontrado para remoção.", map[string]interface{}{"item_id": id})
		return err
	}

	s.logger.Info("Item removido com sucesso.", map[string]interface{}{"item_id": id})
	return nil
}

// AddVariation acrescenta uma variação a um item gravado.
func (s *Service) AddVariation(itemID string, input domain.VariationInput) (domain.Item, domain.Variation, error) {
	s.logger.Debug("Iniciando inclusão de variação.", map[string]interface{}{
		"item_id": itemID,
		"color":   input.Color,
		"size":    input.Size,
	})

	item, err := s.repo.FindByID(itemID)
	if err != nil {
		return domain.Item{}, domain.Variation{}, err
	}

	id := input.ID
	if id == "" {
		id = s.ids.NewID()
	}
	v, err := item.AddVariation(id, input.Color, input.Size, input.Quantity)
	if err != nil {
		s.logger.Warn("Variação rejeitada.", map[string]interface{}{"item_id": itemID, "error": err.Error()})
		return domain.Item{}, domain.Variation{}, err
	}
	item.LastUpdated = s.now().UTC()

	if err := s.repo.Replace(item); err != nil {
		s.logger.Error("Falha ao gravar variação no repositório.", err)
		return domain.Item{}, domain.Variation{}, err
	}

	s.logger.Info("Variação incluída com sucesso.", map[string]interface{}{
		"item_id":      itemID,
		"variation_id": v.ID,
		"quantity":     item.Quantity,
	})
	return item, v, nil
}

// RemoveVariation remove uma variação de um item gravado.
func (s *Service) RemoveVariation(itemID, variationID string) (domain.Item, domain.Variation, error) {
	s.logger.Debug("Iniciando remoção de variação.", map[string]interface{}{
		"item_id":      itemID,
		"variation_id": variationID,
	})

	item, err := s.repo.FindByID(itemID)
	if err != nil {
		return domain.Item{}, domain.Variation{}, err
	}

	v, err := item.RemoveVariation(variationID)
	if err != nil {
		s.logger.Warn("Variação não encontrada para remoção.", map[string]interface{}{
			"item_id":      itemID,
			"variation_id": variationID,
		})
		return domain.Item{}, domain.Variation{}, err
	}
	item.LastUpdated = s.now().UTC()

	if err := s.repo.Replace(item); err != nil {
		s.logger.Error("Falha ao gravar remoção de variação no repositório.", err)
		return domain.Item{}, domain.Variation{}, err
	}

	s.logger.Info("Variação removida com sucesso.", map[string]interface{}{
		"item_id":      itemID,
		"variation_id": variationID,
		"quantity":     item.Quantity,
	})
	return item, v, nil
}

// Get devolve um item pelo ID.
func (s *Service) Get(id string) (domain.Item, error) {
	return s.repo.FindByID(id)
}

// List devolve todos os itens na ordem de cadastro.
func (s *Service) List() []domain.Item {
	return s.repo.FindAll()
}
