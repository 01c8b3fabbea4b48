package domain

import (
	"bytes"
	"encoding/json"
	"strings"

	apperror "goestoque/internal/errors"
)

// Cell é o texto bruto de uma célula da planilha de importação.
// Em JSON aceita string, número ou array (guardado como texto).
type Cell string

// UnmarshalJSON aceita qualquer valor JSON; strings são desembrulhadas, o resto vira texto.
func (c *Cell) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*c = ""
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*c = Cell(s)
		return nil
	}
	*c = Cell(trimmed)
	return nil
}

// String devolve o conteúdo sem espaços nas pontas.
func (c Cell) String() string { return strings.TrimSpace(string(c)) }

// ImportRow é uma linha externa (planilha ou JSON) ainda não validada.
// Row é o número da linha na origem, usado nos relatórios de erro.
type ImportRow struct {
	Row              int  `json:"row,omitempty"`
	Name             Cell `json:"name"`
	SKU              Cell `json:"sku"`
	Category         Cell `json:"category"`
	ProductURL       Cell `json:"productUrl"`
	PurchasePriceSGD Cell `json:"purchasePriceSGD"`
	SellingPriceSGD  Cell `json:"sellingPriceSGD"`
	Variations       Cell `json:"variations"`
}

// BulkImportResult é o resultado de uma importação em lote com sucesso parcial.
type BulkImportResult struct {
	Created      []Item                     `json:"created"`
	Errors       []*apperror.ImportRowError `json:"errors"`
	FallbackRows []int                      `json:"fallbackRows"` // linhas cujas variações ilegíveis viraram lista vazia
}
