// Package currency converte valores entre SGD e IDR a partir da taxa IDR→SGD.
//
// Os arredondamentos seguem a regra "metade para longe do zero":
// IDR sem casas decimais, SGD com duas casas.
package currency

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"goestoque/internal/domain"
	apperror "goestoque/internal/errors"
)

const (
	sgdPlaces = 2
	idrPlaces = 0
)

// Converter converte valores usando uma taxa já validada.
type Converter struct {
	rate decimal.Decimal
}

// NewConverter valida a taxa (finita e positiva) e devolve um Converter.
func NewConverter(rate domain.CurrencyRate) (Converter, error) {
	if err := ValidateRate(rate.IDRToSGD); err != nil {
		return Converter{}, err
	}
	return Converter{rate: decimal.NewFromFloat(rate.IDRToSGD)}, nil
}

// ValidateRate rejeita taxas zero, negativas, NaN ou infinitas.
func ValidateRate(rate float64) error {
	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate <= 0 {
		return apperror.NewValidationError(fmt.Sprintf("Taxa de câmbio inválida: %v. A taxa deve ser um número positivo.", rate))
	}
	return nil
}

// ToIDR converte um valor em SGD para IDR, arredondado para inteiro.
func (c Converter) ToIDR(amountSGD float64) float64 {
	v, _ := decimal.NewFromFloat(amountSGD).Div(c.rate).Round(idrPlaces).Float64()
	return v
}

// ToSGD converte um valor em IDR para SGD, arredondado para 2 casas.
func (c Converter) ToSGD(amountIDR float64) float64 {
	v, _ := decimal.NewFromFloat(amountIDR).Mul(c.rate).Round(sgdPlaces).Float64()
	return v
}

// PairFromSGD monta o par de preços com SGD autoritativo.
func (c Converter) PairFromSGD(amountSGD float64) domain.PricePair {
	return domain.PricePair{SGD: amountSGD, IDR: c.ToIDR(amountSGD)}
}

// PairFromIDR monta o par de preços com IDR autoritativo.
func (c Converter) PairFromIDR(amountIDR float64) domain.PricePair {
	return domain.PricePair{SGD: c.ToSGD(amountIDR), IDR: amountIDR}
}

// Convert converte amount a partir da moeda informada para a outra.
func (c Converter) Convert(amount float64, from domain.Currency) (domain.PricePair, error) {
	switch from {
	case domain.CurrencySGD:
		return c.PairFromSGD(amount), nil
	case domain.CurrencyIDR:
		return c.PairFromIDR(amount), nil
	default:
		return domain.PricePair{}, apperror.NewValidationError(fmt.Sprintf("Moeda desconhecida: %q (use SGD ou IDR).", from))
	}
}

// SGDToIDR converte SGD para IDR com a taxa informada.
func SGDToIDR(amountSGD float64, rate domain.CurrencyRate) (float64, error) {
	c, err := NewConverter(rate)
	if err != nil {
		return 0, err
	}
	return c.ToIDR(amountSGD), nil
}

// IDRToSGD converte IDR para SGD com a taxa informada.
func IDRToSGD(amountIDR float64, rate domain.CurrencyRate) (float64, error) {
	c, err := NewConverter(rate)
	if err != nil {
		return 0, err
	}
	return c.ToSGD(amountIDR), nil
}
