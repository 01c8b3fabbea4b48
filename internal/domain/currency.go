package domain

// DefaultIDRToSGD é a taxa usada quando nenhuma foi gravada (1 IDR = 0.000085 SGD).
const DefaultIDRToSGD = 0.000085

// CurrencyRate guarda quantos SGD vale 1 IDR: sgd = idr * IDRToSGD.
type CurrencyRate struct {
	IDRToSGD float64 `json:"idrToSgd" validate:"gt=0"`
}

// DefaultCurrencyRate devolve a taxa padrão.
func DefaultCurrencyRate() CurrencyRate {
	return CurrencyRate{IDRToSGD: DefaultIDRToSGD}
}
