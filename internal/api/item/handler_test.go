package item_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"goestoque/internal/api/item"
	"goestoque/internal/domain"
	"goestoque/internal/pkg/logger"
	"goestoque/internal/spreadsheet"
)

// MockItemService é um mock de item.ItemService; só a importação é usada aqui.
type MockItemService struct {
	mock.Mock
	item.ItemService
}

func (m *MockItemService) BulkImport(ctx context.Context, rows []domain.ImportRow) (domain.BulkImportResult, error) {
	args := m.Called(ctx, rows)
	return args.Get(0).(domain.BulkImportResult), args.Error(1)
}

func templateBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, spreadsheet.WriteImportTemplate(&buf))
	return buf.Bytes()
}

func newHandler(svc *MockItemService) *item.Handler {
	return item.NewHandler(svc, logger.New(io.Discard, "debug"))
}

func expectOneRow(svc *MockItemService) {
	svc.On("BulkImport", mock.Anything, mock.MatchedBy(func(rows []domain.ImportRow) bool {
		return len(rows) == 1 && rows[0].Name.String() == "Example Product"
	})).Return(domain.BulkImportResult{Created: []domain.Item{{ID: "x"}}}, nil)
}

func TestImportSpreadsheet_RawBody(t *testing.T) {
	svc := new(MockItemService)
	expectOneRow(svc)

	req := httptest.NewRequest(http.MethodPost, "/v1/items/import", bytes.NewReader(templateBytes(t)))
	req.Header.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	rec := httptest.NewRecorder()
	newHandler(svc).ImportSpreadsheetHandler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestImportSpreadsheet_Multipart(t *testing.T) {
	svc := new(MockItemService)
	expectOneRow(svc)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "estoque.xlsx")
	require.NoError(t, err)
	_, err = part.Write(templateBytes(t))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/items/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	newHandler(svc).ImportSpreadsheetHandler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

// TestImportSpreadsheet_BrokenMultipart: um formulário multipart truncado é rejeitado
// como formulário inválido, sem tentar ler o restante do corpo como planilha.
func TestImportSpreadsheet_BrokenMultipart(t *testing.T) {
	svc := new(MockItemService)

	truncated := "--limite\r\n" +
		"Content-Disposition: form-data; name=\"file\"; filename=\"estoque.xlsx\"\r\n" +
		"Content-Type: application/octet-stream\r\n\r\n" +
		"PK\x03\x04 conteúdo cortado"
	req := httptest.NewRequest(http.MethodPost, "/v1/items/import", strings.NewReader(truncated))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=limite")
	rec := httptest.NewRecorder()
	newHandler(svc).ImportSpreadsheetHandler(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp domain.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "VALIDATION_ERROR", resp.Category)
	assert.Contains(t, resp.Message, "multipart")
	svc.AssertNotCalled(t, "BulkImport", mock.Anything, mock.Anything)
}

func TestImportSpreadsheet_EmptyBody(t *testing.T) {
	svc := new(MockItemService)

	req := httptest.NewRequest(http.MethodPost, "/v1/items/import", nil)
	rec := httptest.NewRecorder()
	newHandler(svc).ImportSpreadsheetHandler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "BulkImport", mock.Anything, mock.Anything)
}
