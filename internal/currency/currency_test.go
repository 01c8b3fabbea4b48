package currency_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goestoque/internal/currency"
	"goestoque/internal/domain"
	apperror "goestoque/internal/errors"
)

// TestSGDToIDR_DefaultRate: 20.00 SGD na taxa padrão = 235294 IDR.
func TestSGDToIDR_DefaultRate(t *testing.T) {
	idr, err := currency.SGDToIDR(20.00, domain.DefaultCurrencyRate())

	require.NoError(t, err)
	assert.Equal(t, float64(235294), idr)
}

func TestIDRToSGD_DefaultRate(t *testing.T) {
	sgd, err := currency.IDRToSGD(234000, domain.DefaultCurrencyRate())

	require.NoError(t, err)
	assert.Equal(t, 19.89, sgd)
}

func TestConverter_Rounding(t *testing.T) {
	c, err := currency.NewConverter(domain.CurrencyRate{IDRToSGD: 0.5})
	require.NoError(t, err)

	// 1.25 / 0.5 = 2.5 → 3 (metade para longe do zero)
	assert.Equal(t, float64(3), c.ToIDR(1.25))
	// 0.01 * 0.5 = 0.005 → 0.01
	assert.Equal(t, 0.01, c.ToSGD(0.01))
	assert.Equal(t, float64(0), c.ToIDR(0))
}

// TestConverter_RoundTrip garante que ida e volta ficam a no máximo 0.01 SGD do original.
func TestConverter_RoundTrip(t *testing.T) {
	c, err := currency.NewConverter(domain.DefaultCurrencyRate())
	require.NoError(t, err)

	for _, sgd := range []float64{0, 0.01, 1, 9.99, 20, 39.99, 123.45, 1000} {
		back := c.ToSGD(c.ToIDR(sgd))
		assert.LessOrEqual(t, math.Abs(back-sgd), 0.01+1e-9, "sgd=%v back=%v", sgd, back)
	}
}

func TestConverter_Pairs(t *testing.T) {
	c, err := currency.NewConverter(domain.DefaultCurrencyRate())
	require.NoError(t, err)

	assert.Equal(t, domain.PricePair{SGD: 20, IDR: 235294}, c.PairFromSGD(20))
	assert.Equal(t, domain.PricePair{SGD: 19.89, IDR: 234000}, c.PairFromIDR(234000))

	p, err := c.Convert(234000, domain.CurrencyIDR)
	require.NoError(t, err)
	assert.Equal(t, 19.89, p.SGD)

	_, err = c.Convert(1, domain.Currency("USD"))
	assert.IsType(t, &apperror.ValidationError{}, err)
}

func TestNewConverter_InvalidRate(t *testing.T) {
	for _, rate := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := currency.NewConverter(domain.CurrencyRate{IDRToSGD: rate})
		assert.IsType(t, &apperror.ValidationError{}, err, "rate=%v", rate)
	}

	_, err := currency.SGDToIDR(1, domain.CurrencyRate{})
	assert.Error(t, err)
}
