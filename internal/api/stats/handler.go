package stats

import (
	"context"
	"net/http"

	"goestoque/internal/api/response"
	"goestoque/internal/domain"
	"goestoque/internal/pkg/logger"
)

// StatsService define o contrato que o Handler espera da Sessão.
type StatsService interface {
	Stats() domain.InventoryStats
	ClearData(ctx context.Context) error
}

// Handler agrupa os handlers de estatísticas e manutenção dos dados.
type Handler struct {
	Service StatsService
	Logger  logger.Logger
	resp    response.Responder
}

// NewHandler cria uma nova instância do Handler.
func NewHandler(svc StatsService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log, resp: response.New(log)}
}

// StatsHandler lida com GET /v1/stats.
func (h *Handler) StatsHandler(w http.ResponseWriter, r *http.Request) {
	h.resp.Respond(w, r, h.Service.Stats(), nil, http.StatusOK)
}

// ClearDataHandler lida com DELETE /v1/data: apaga itens e vendas, mantém a taxa.
func (h *Handler) ClearDataHandler(w http.ResponseWriter, r *http.Request) {
	err := h.Service.ClearData(r.Context())
	h.resp.Mutation(w, r, nil, err, http.StatusNoContent)
}
