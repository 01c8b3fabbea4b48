package currency

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"goestoque/internal/api/response"
	"goestoque/internal/domain"
	apperror "goestoque/internal/errors"
	"goestoque/internal/pkg/logger"
)

// CurrencyService define o contrato que o Handler espera da Sessão.
type CurrencyService interface {
	Rate() domain.CurrencyRate
	SetRate(ctx context.Context, rate domain.CurrencyRate) (domain.CurrencyRate, error)
	Convert(amount float64, from domain.Currency) (domain.PricePair, error)
}

// Handler agrupa os handlers de câmbio.
type Handler struct {
	Service CurrencyService
	Logger  logger.Logger
	resp    response.Responder
}

// NewHandler cria uma nova instância do Handler.
func NewHandler(svc CurrencyService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log, resp: response.New(log)}
}

// GetRateHandler lida com GET /v1/currency.
func (h *Handler) GetRateHandler(w http.ResponseWriter, r *http.Request) {
	h.resp.Respond(w, r, h.Service.Rate(), nil, http.StatusOK)
}

// SetRateHandler lida com PUT /v1/currency. Os preços gravados não são recalculados.
func (h *Handler) SetRateHandler(w http.ResponseWriter, r *http.Request) {
	var rate domain.CurrencyRate
	if err := response.Decode(r, &rate); err != nil {
		h.resp.Respond(w, r, nil, err, http.StatusOK)
		return
	}

	updated, err := h.Service.SetRate(r.Context(), rate)
	h.resp.Mutation(w, r, updated, err, http.StatusOK)
}

// ConvertHandler lida com GET /v1/currency/convert?amount=20&from=SGD.
func (h *Handler) ConvertHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	amount, err := strconv.ParseFloat(q.Get("amount"), 64)
	if err != nil {
		h.resp.Respond(w, r, nil, apperror.NewValidationError(fmt.Sprintf("Parâmetro 'amount' inválido: %q.", q.Get("amount"))), http.StatusOK)
		return
	}
	from := domain.CurrencySGD
	if v := strings.TrimSpace(q.Get("from")); v != "" {
		from = domain.Currency(strings.ToUpper(v))
	}

	pair, err := h.Service.Convert(amount, from)
	h.resp.Respond(w, r, pair, err, http.StatusOK)
}
