package response

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"goestoque/internal/domain"
	apperror "goestoque/internal/errors"
	"goestoque/internal/pkg/logger"
)

// PersistenceWarningHeader sinaliza que a operação foi aplicada em memória,
// mas a gravação no armazenamento falhou.
const PersistenceWarningHeader = "X-Persistence-Warning"

// maxBodyBytes limita o corpo JSON das requisições.
const maxBodyBytes = 1 << 20

// Responder padroniza as respostas JSON e de erro de todos os handlers.
type Responder struct {
	Logger logger.Logger
}

// New cria um Responder.
func New(log logger.Logger) Responder {
	return Responder{Logger: log}
}

// Respond processa erros de serviço e envia respostas padronizadas ao cliente.
func (h Responder) Respond(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	if err == nil {
		h.Logger.Debug("Requisição concluída com sucesso", map[string]interface{}{
			"method": r.Method,
			"path":   r.URL.Path,
			"status": successStatus,
		})
		if data == nil {
			w.WriteHeader(successStatus)
			return
		}
		h.JSON(w, successStatus, data)
		return
	}

	// TRATAMENTO DE ERROS
	status, category, message := apperror.MapToHTTPStatus(err)

	if status >= 500 {
		h.Logger.Error(fmt.Sprintf("Erro de Servidor: %s", category), err)
	} else {
		h.Logger.Debug(fmt.Sprintf("Requisição rejeitada com status %d. Categoria: %s", status, category), map[string]interface{}{"path": r.URL.Path})
	}

	h.JSON(w, status, domain.ErrorResponse{Code: status, Category: category, Message: message})
}

// Mutation responde uma operação que altera o estado. Uma falha de persistência
// não desfaz a mutação: a resposta é de sucesso, com o cabeçalho de aviso.
func (h Responder) Mutation(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	if err != nil && apperror.IsPersistence(err) {
		h.Logger.Warn("Operação aplicada, mas não gravada.", map[string]interface{}{
			"path":  r.URL.Path,
			"error": err.Error(),
		})
		w.Header().Set(PersistenceWarningHeader, err.Error())
		err = nil
	}
	h.Respond(w, r, data, err, successStatus)
}

// JSON escreve data como JSON com o status informado.
func (h Responder) JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("Falha ao codificar JSON de resposta", err)
	}
}

// XLSX envia uma planilha como anexo.
func XLSX(w http.ResponseWriter, filename string, body []byte) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// Decode lê o corpo JSON da requisição em dst. Falhas viram ValidationError.
func Decode(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return apperror.NewValidationError("Payload inválido. Verifique o formato JSON.")
	}
	return nil
}
