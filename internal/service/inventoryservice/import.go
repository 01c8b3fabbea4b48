package inventoryservice

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"goestoque/internal/currency"
	"goestoque/internal/domain"
	apperror "goestoque/internal/errors"
)

// importVariation é uma variação dentro da coluna "variations" (texto JSON).
type importVariation struct {
	Color    domain.Cell `json:"color"`
	Size     domain.Cell `json:"size"`
	Quantity domain.Cell `json:"quantity"`
}

// BulkCreate cria um item por linha. Uma linha inválida gera um ImportRowError
// e não impede as demais. Só a taxa inválida aborta a chamada inteira.
func (s *Service) BulkCreate(rows []domain.ImportRow, rate domain.CurrencyRate) (domain.BulkImportResult, error) {
	s.logger.Debug("Iniciando importação em lote.", map[string]interface{}{"rows": len(rows)})

	result := domain.BulkImportResult{
		Created:      []domain.Item{},
		Errors:       []*apperror.ImportRowError{},
		FallbackRows: []int{},
	}
	if err := currency.ValidateRate(rate.IDRToSGD); err != nil {
		return result, err
	}

	for i, row := range rows {
		rowNum := row.Row
		if rowNum == 0 {
			rowNum = i + 1
		}

		draft, fellBack, rowErr := parseImportRow(rowNum, row)
		if rowErr != nil {
			s.metrics.RecordImportRow("error")
			result.Errors = append(result.Errors, rowErr)
			continue
		}

		item, err := s.create(draft, rate, "bulk")
		if err != nil {
			s.metrics.RecordImportRow("error")
			result.Errors = append(result.Errors, toRowError(rowNum, err))
			continue
		}

		if fellBack {
			s.metrics.RecordImportRow("fallback")
			result.FallbackRows = append(result.FallbackRows, rowNum)
		}
		s.metrics.RecordImportRow("created")
		result.Created = append(result.Created, item)
	}

	if len(result.Errors) > 0 {
		s.logger.Warn("Importação em lote concluída com linhas rejeitadas.", map[string]interface{}{
			"created": len(result.Created),
			"errors":  len(result.Errors),
		})
	}
	s.logger.Info("Importação em lote concluída.", map[string]interface{}{
		"created":  len(result.Created),
		"errors":   len(result.Errors),
		"fallback": len(result.FallbackRows),
	})
	return result, nil
}

// parseImportRow converte uma linha externa num rascunho com preços em SGD.
// fellBack indica que a coluna de variações era ilegível e virou lista vazia.
func parseImportRow(rowNum int, row domain.ImportRow) (domain.ItemDraft, bool, *apperror.ImportRowError) {
	draft := domain.ItemDraft{
		Name:          row.Name.String(),
		SKU:           row.SKU.String(),
		Category:      row.Category.String(),
		ProductURL:    row.ProductURL.String(),
		PriceCurrency: domain.CurrencySGD,
	}
	required := []struct{ field, value string }{
		{"name", draft.Name},
		{"sku", draft.SKU},
		{"category", draft.Category},
	}
	for _, r := range required {
		if r.value == "" {
			return domain.ItemDraft{}, false, apperror.NewImportRowError(rowNum, r.field, "campo obrigatório vazio")
		}
	}

	var err *apperror.ImportRowError
	if draft.PurchasePrice, err = parsePrice(rowNum, "purchasePriceSGD", row.PurchasePriceSGD); err != nil {
		return domain.ItemDraft{}, false, err
	}
	if draft.SellingPrice, err = parsePrice(rowNum, "sellingPriceSGD", row.SellingPriceSGD); err != nil {
		return domain.ItemDraft{}, false, err
	}

	variations, fellBack, err := parseVariations(rowNum, row.Variations.String())
	if err != nil {
		return domain.ItemDraft{}, false, err
	}
	draft.Variations = variations
	return draft, fellBack, nil
}

func parsePrice(rowNum int, field string, cell domain.Cell) (float64, *apperror.ImportRowError) {
	text := cell.String()
	if text == "" {
		return 0, apperror.NewImportRowError(rowNum, field, "preço obrigatório")
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, apperror.NewImportRowError(rowNum, field, fmt.Sprintf("preço inválido: %q", text))
	}
	if v < 0 {
		return 0, apperror.NewImportRowError(rowNum, field, "preço não pode ser negativo")
	}
	return v, nil
}

// parseVariations lê o texto JSON da coluna de variações. Texto vazio = nenhuma variação.
func parseVariations(rowNum int, text string) ([]domain.VariationInput, bool, *apperror.ImportRowError) {
	if text == "" {
		return []domain.VariationInput{}, false, nil
	}

	var raw []importVariation
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return fallbackToEmptyVariations(), true, nil
	}

	out := make([]domain.VariationInput, 0, len(raw))
	for i, v := range raw {
		qty, err := parseVariationQuantity(v.Quantity.String())
		if err != nil {
			return nil, false, apperror.NewImportRowError(rowNum, fmt.Sprintf("variations[%d].quantity", i), err.Error())
		}
		out = append(out, domain.VariationInput{Color: v.Color.String(), Size: v.Size.String(), Quantity: qty})
	}
	return out, false, nil
}

// fallbackToEmptyVariations é o ramo tolerante da importação: a linha é criada sem variações
// (quantidade 0) quando a coluna não é um array JSON legível. A linha é reportada em FallbackRows.
func fallbackToEmptyVariations() []domain.VariationInput {
	return []domain.VariationInput{}
}

// parseVariationQuantity: texto não numérico conta como 0; negativo ou fracionário é erro.
func parseVariationQuantity(text string) (int, error) {
	if text == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) {
		return 0, nil
	}
	if v < 0 {
		return 0, errors.New("quantidade não pode ser negativa")
	}
	if math.IsInf(v, 0) || v != math.Trunc(v) || v > math.MaxInt32 {
		return 0, fmt.Errorf("quantidade deve ser um número inteiro: %s", text)
	}
	return int(v), nil
}

// toRowError converte uma falha de Create na linha correspondente.
func toRowError(rowNum int, err error) *apperror.ImportRowError {
	var rowErr *apperror.ImportRowError
	if errors.As(err, &rowErr) {
		return rowErr
	}
	var validationErr *apperror.ValidationError
	if errors.As(err, &validationErr) {
		return apperror.NewImportRowError(rowNum, "", validationErr.Msg)
	}
	return apperror.NewImportRowError(rowNum, "", strings.TrimSpace(err.Error()))
}
