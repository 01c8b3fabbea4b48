package sale

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"goestoque/internal/api/response"
	"goestoque/internal/domain"
	apperror "goestoque/internal/errors"
	"goestoque/internal/pkg/logger"
	"goestoque/internal/spreadsheet"
)

// SaleService define o contrato que o Handler espera da Sessão.
type SaleService interface {
	RecordSales(ctx context.Context, batch domain.SaleBatch) ([]domain.Sale, error)
	SaleHistory() []domain.SaleView
	DailySales() []domain.DailySales
	SalesExport() []domain.SaleExportRow
}

// Handler agrupa os handlers do livro de vendas.
type Handler struct {
	Service SaleService
	Logger  logger.Logger
	Now     func() time.Time
	resp    response.Responder
}

// NewHandler cria uma nova instância do Handler.
func NewHandler(svc SaleService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log, Now: time.Now, resp: response.New(log)}
}

// ListSalesHandler lida com GET /v1/sales.
func (h *Handler) ListSalesHandler(w http.ResponseWriter, r *http.Request) {
	h.resp.Respond(w, r, h.Service.SaleHistory(), nil, http.StatusOK)
}

// RecordSalesHandler lida com POST /v1/sales (um lote com data comum).
func (h *Handler) RecordSalesHandler(w http.ResponseWriter, r *http.Request) {
	var batch domain.SaleBatch
	if err := response.Decode(r, &batch); err != nil {
		h.resp.Respond(w, r, nil, err, http.StatusCreated)
		return
	}

	sales, err := h.Service.RecordSales(r.Context(), batch)
	h.resp.Mutation(w, r, sales, err, http.StatusCreated)
}

// DailySalesHandler lida com GET /v1/sales/daily.
func (h *Handler) DailySalesHandler(w http.ResponseWriter, r *http.Request) {
	h.resp.Respond(w, r, h.Service.DailySales(), nil, http.StatusOK)
}

// ExportHandler lida com GET /v1/sales/export (planilha xlsx).
func (h *Handler) ExportHandler(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := spreadsheet.WriteSalesHistory(&buf, h.Service.SalesExport()); err != nil {
		h.resp.Respond(w, r, nil, apperror.NewInternalError("Falha ao gerar a exportação de vendas.", err), http.StatusOK)
		return
	}
	filename := fmt.Sprintf("sales-history-%s.xlsx", h.Now().Format(domain.SaleDateLayout))
	response.XLSX(w, filename, buf.Bytes())
}
