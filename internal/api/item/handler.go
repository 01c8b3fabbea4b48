package item

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"goestoque/internal/api/response"
	"goestoque/internal/domain"
	apperror "goestoque/internal/errors"
	"goestoque/internal/pkg/logger"
	"goestoque/internal/spreadsheet"
)

// maxUploadBytes limita o tamanho da planilha enviada.
const maxUploadBytes = 10 << 20

// ItemService define o contrato que o Handler espera da Sessão.
type ItemService interface {
	Items() []domain.Item
	Item(id string) (domain.Item, error)
	CreateItem(ctx context.Context, draft domain.ItemDraft) (domain.Item, error)
	UpdateItem(ctx context.Context, id string, draft domain.ItemDraft) (domain.Item, error)
	DeleteItem(ctx context.Context, id string) error
	AddVariation(ctx context.Context, itemID string, input domain.VariationInput) (domain.Item, domain.Variation, error)
	RemoveVariation(ctx context.Context, itemID, variationID string) (domain.Item, domain.Variation, error)
	BulkImport(ctx context.Context, rows []domain.ImportRow) (domain.BulkImportResult, error)
}

// Handler agrupa todos os métodos de Handler de itens.
type Handler struct {
	Service ItemService
	Logger  logger.Logger
	resp    response.Responder
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc ItemService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log, resp: response.New(log)}
}

// VariationResponse é a resposta das operações de variação.
type VariationResponse struct {
	Item      domain.Item      `json:"item"`
	Variation domain.Variation `json:"variation"`
}

// ListItemsHandler lida com GET /v1/items.
func (h *Handler) ListItemsHandler(w http.ResponseWriter, r *http.Request) {
	h.resp.Respond(w, r, h.Service.Items(), nil, http.StatusOK)
}

// GetItemHandler lida com GET /v1/items/{id}.
func (h *Handler) GetItemHandler(w http.ResponseWriter, r *http.Request) {
	it, err := h.Service.Item(r.PathValue("id"))
	if err != nil {
		h.resp.Respond(w, r, nil, err, http.StatusOK)
		return
	}
	h.resp.Respond(w, r, it, nil, http.StatusOK)
}

// CreateItemHandler lida com POST /v1/items.
func (h *Handler) CreateItemHandler(w http.ResponseWriter, r *http.Request) {
	var draft domain.ItemDraft
	if err := response.Decode(r, &draft); err != nil {
		h.resp.Respond(w, r, nil, err, http.StatusCreated)
		return
	}

	it, err := h.Service.CreateItem(r.Context(), draft)
	h.resp.Mutation(w, r, it, err, http.StatusCreated)
}

// UpdateItemHandler lida com PUT /v1/items/{id}.
func (h *Handler) UpdateItemHandler(w http.ResponseWriter, r *http.Request) {
	var draft domain.ItemDraft
	if err := response.Decode(r, &draft); err != nil {
		h.resp.Respond(w, r, nil, err, http.StatusOK)
		return
	}

	it, err := h.Service.UpdateItem(r.Context(), r.PathValue("id"), draft)
	h.resp.Mutation(w, r, it, err, http.StatusOK)
}

// DeleteItemHandler lida com DELETE /v1/items/{id}.
func (h *Handler) DeleteItemHandler(w http.ResponseWriter, r *http.Request) {
	err := h.Service.DeleteItem(r.Context(), r.PathValue("id"))
	h.resp.Mutation(w, r, nil, err, http.StatusNoContent)
}

// AddVariationHandler lida com POST /v1/items/{id}/variations.
func (h *Handler) AddVariationHandler(w http.ResponseWriter, r *http.Request) {
	var input domain.VariationInput
	if err := response.Decode(r, &input); err != nil {
		h.resp.Respond(w, r, nil, err, http.StatusCreated)
		return
	}

	it, v, err := h.Service.AddVariation(r.Context(), r.PathValue("id"), input)
	h.resp.Mutation(w, r, VariationResponse{Item: it, Variation: v}, err, http.StatusCreated)
}

// RemoveVariationHandler lida com DELETE /v1/items/{id}/variations/{variationId}.
func (h *Handler) RemoveVariationHandler(w http.ResponseWriter, r *http.Request) {
	it, v, err := h.Service.RemoveVariation(r.Context(), r.PathValue("id"), r.PathValue("variationId"))
	h.resp.Mutation(w, r, VariationResponse{Item: it, Variation: v}, err, http.StatusOK)
}

// BulkCreateHandler lida com POST /v1/items/bulk (linhas em JSON).
func (h *Handler) BulkCreateHandler(w http.ResponseWriter, r *http.Request) {
	var rows []domain.ImportRow
	if err := response.Decode(r, &rows); err != nil {
		h.resp.Respond(w, r, nil, err, http.StatusOK)
		return
	}
	h.bulkImport(w, r, rows)
}

// ImportSpreadsheetHandler lida com POST /v1/items/import (upload xlsx, campo "file").
func (h *Handler) ImportSpreadsheetHandler(w http.ResponseWriter, r *http.Request) {
	body, err := readUpload(w, r)
	if err != nil {
		h.resp.Respond(w, r, nil, err, http.StatusOK)
		return
	}

	rows, err := spreadsheet.ReadInventoryImport(bytes.NewReader(body))
	if err != nil {
		h.resp.Respond(w, r, nil, err, http.StatusOK)
		return
	}
	h.bulkImport(w, r, rows)
}

func (h *Handler) bulkImport(w http.ResponseWriter, r *http.Request, rows []domain.ImportRow) {
	result, err := h.Service.BulkImport(r.Context(), rows)
	h.resp.Mutation(w, r, result, err, http.StatusOK)
}

// readUpload aceita multipart (campo "file") ou o xlsx cru no corpo.
func readUpload(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	err := r.ParseMultipartForm(maxUploadBytes)
	switch {
	case err == nil:
		file, _, err := r.FormFile("file")
		if err != nil {
			return nil, apperror.NewValidationError("Campo 'file' ausente no formulário.")
		}
		defer file.Close()
		return io.ReadAll(file)
	case !errors.Is(err, http.ErrNotMultipart):
		// o corpo já foi consumido em parte; não dá para lê-lo como xlsx cru
		return nil, apperror.NewValidationError(fmt.Sprintf("Formulário multipart inválido: %v", err))
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, apperror.NewValidationError(fmt.Sprintf("Falha ao ler o arquivo enviado: %v", err))
	}
	if len(body) == 0 {
		return nil, apperror.NewValidationError("Nenhum arquivo enviado.")
	}
	return body, nil
}

// TemplateHandler lida com GET /v1/items/import/template.
func (h *Handler) TemplateHandler(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := spreadsheet.WriteImportTemplate(&buf); err != nil {
		h.resp.Respond(w, r, nil, apperror.NewInternalError("Falha ao gerar o modelo de importação.", err), http.StatusOK)
		return
	}
	response.XLSX(w, "inventory-import-template.xlsx", buf.Bytes())
}
