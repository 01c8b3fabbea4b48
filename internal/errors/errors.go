package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError é a interface central para todos os erros customizados do GoEstoque.
// Ela permite que o código externo (Handler) acesse a Categoria e a Mensagem do erro.
type AppError interface {
	Error() string    // Implementa a interface error padrão do Go
	Category() string // Categoria do erro (e.g., "VALIDATION_ERROR", "NOT_FOUND")
	HTTPStatus() int  // Código HTTP sugerido para o Handler
	Unwrap() error    // Permite encapsular erros subjacentes (original error)
}

// --- Tipos de Erro Específicos (Erros de Domínio) ---

// ValidationError representa falhas de validação de dados de entrada.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string    { return fmt.Sprintf("Erro de Validação: %s", e.Msg) }
func (e *ValidationError) Category() string { return "VALIDATION_ERROR" }
func (e *ValidationError) HTTPStatus() int  { return http.StatusBadRequest } // 400
func (e *ValidationError) Unwrap() error    { return nil }                   // Não encapsula erro subjacente

// NewValidationError cria um novo erro de validação.
func NewValidationError(msg string) AppError {
	return &ValidationError{Msg: msg}
}

// NotFoundError representa a ausência de um recurso solicitado.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string    { return fmt.Sprintf("Recurso não encontrado: %s", e.Msg) }
func (e *NotFoundError) Category() string { return "NOT_FOUND" }
func (e *NotFoundError) HTTPStatus() int  { return http.StatusNotFound } // 404
func (e *NotFoundError) Unwrap() error    { return nil }

// NewNotFoundError cria um novo erro de recurso não encontrado.
func NewNotFoundError(msg string) AppError {
	return &NotFoundError{Msg: msg}
}

// ConflictError representa um conflito de identidade (e.g., ID duplicado).
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string    { return fmt.Sprintf("Conflito de estado: %s", e.Msg) }
func (e *ConflictError) Category() string { return "CONFLICT" }
func (e *ConflictError) HTTPStatus() int  { return http.StatusConflict } // 409
func (e *ConflictError) Unwrap() error    { return nil }

// NewConflictError cria um novo erro de conflito.
func NewConflictError(msg string) AppError {
	return &ConflictError{Msg: msg}
}

// InsufficientStockError indica que uma venda pede mais unidades do que a variação possui.
// Index é a posição da requisição dentro do lote (-1 quando não se aplica).
type InsufficientStockError struct {
	ItemID      string
	VariationID string
	Requested   int
	Available   int
	Index       int
}

func (e *InsufficientStockError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("Estoque insuficiente: venda #%d pede %d unidade(s) da variação %s do item %s, disponível %d",
			e.Index+1, e.Requested, e.VariationID, e.ItemID, e.Available)
	}
	return fmt.Sprintf("Estoque insuficiente: pedido %d unidade(s) da variação %s do item %s, disponível %d",
		e.Requested, e.VariationID, e.ItemID, e.Available)
}
func (e *InsufficientStockError) Category() string { return "INSUFFICIENT_STOCK" }
func (e *InsufficientStockError) HTTPStatus() int  { return http.StatusConflict } // 409
func (e *InsufficientStockError) Unwrap() error    { return nil }

// NewInsufficientStockError cria um erro de estoque insuficiente fora de um lote.
func NewInsufficientStockError(itemID, variationID string, requested, available int) *InsufficientStockError {
	return &InsufficientStockError{ItemID: itemID, VariationID: variationID, Requested: requested, Available: available, Index: -1}
}

// ImportRowError descreve uma linha inválida de uma importação em lote.
// Ela é coletada por linha e não interrompe as demais.
type ImportRowError struct {
	Row   int    `json:"row"`
	Field string `json:"field,omitempty"`
	Msg   string `json:"message"`
}

func (e *ImportRowError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("Linha %d inválida (%s): %s", e.Row, e.Field, e.Msg)
	}
	return fmt.Sprintf("Linha %d inválida: %s", e.Row, e.Msg)
}
func (e *ImportRowError) Category() string { return "IMPORT_ROW_ERROR" }
func (e *ImportRowError) HTTPStatus() int  { return http.StatusUnprocessableEntity } // 422
func (e *ImportRowError) Unwrap() error    { return nil }

// NewImportRowError cria um erro de linha de importação.
func NewImportRowError(row int, field, msg string) *ImportRowError {
	return &ImportRowError{Row: row, Field: field, Msg: msg}
}

// --- Tipos de Erro de Infraestrutura (Encapsulamento) ---

// PersistenceError indica que a gravação (ou leitura) no armazenamento durável falhou.
// A mutação em memória já aplicada NÃO é desfeita.
type PersistenceError struct {
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("Falha de persistência (%s): %v", e.Key, e.Err)
}
func (e *PersistenceError) Category() string { return "PERSISTENCE_FAILURE" }
func (e *PersistenceError) HTTPStatus() int  { return http.StatusInternalServerError } // 500
func (e *PersistenceError) Unwrap() error    { return e.Err }

// NewPersistenceError cria um erro de persistência para a chave informada.
func NewPersistenceError(key string, err error) AppError {
	return &PersistenceError{Key: key, Err: err}
}

// InternalError representa falhas inesperadas no servidor, serviço ou repositório.
type InternalError struct {
	Msg string
	Err error // Erro original subjacente (e.g., erro do driver SQL)
}

func (e *InternalError) Error() string    { return fmt.Sprintf("Erro Interno: %s", e.Msg) }
func (e *InternalError) Category() string { return "INTERNAL_ERROR" }
func (e *InternalError) HTTPStatus() int  { return http.StatusInternalServerError } // 500
func (e *InternalError) Unwrap() error    { return e.Err }

// NewInternalError cria um erro de servidor (para falhas de lógica ou código não esperado).
func NewInternalError(msg string, err error) AppError {
	return &InternalError{Msg: msg, Err: err}
}

// NewDBError é um atalho para criar um InternalError específico de falhas no DB.
func NewDBError(msg string, err error) AppError {
	return NewInternalError(fmt.Sprintf("%s (DB): %s", msg, err.Error()), err)
}

// IsPersistence informa se err (ou algum erro encadeado) é um PersistenceError.
func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}

// --- Helper para o Handler (Tradução Final) ---

// MapToHTTPStatus recebe um erro e o traduz para o código HTTP e corpo de resposta.
func MapToHTTPStatus(err error) (int, string, string) {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr.HTTPStatus(), appErr.Category(), appErr.Error()
	}

	// Erro não tipado (e.g., erro simples de pacote Go que não implementa AppError)
	return http.StatusInternalServerError, "UNKNOWN_ERROR", "Ocorreu um erro inesperado."
}
