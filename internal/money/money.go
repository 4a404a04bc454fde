// internal/money/money.go
package money

import "github.com/shopspring/decimal"

// Todo valor monetário do sistema é um decimal.Decimal com 2 casas; nunca
// float64. Este pacote concentra as comparações com tolerância e os helpers
// de soma usados pelo ledger.

// Epsilon é a tolerância de arredondamento para comparações de quitação
// (0,01 unidade da moeda).
var Epsilon = decimal.NewFromFloat(0.01)

// Zero é o valor monetário zero.
var Zero = decimal.Zero

// Round2 arredonda para 2 casas decimais (meio para cima).
func Round2(v decimal.Decimal) decimal.Decimal {
	return v.Round(2)
}

// Igual compara dois valores dentro do Epsilon.
func Igual(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(Epsilon)
}

// Atingiu informa se pago cobre total dentro do Epsilon (pago >= total - ε).
func Atingiu(total, pago decimal.Decimal) bool {
	return pago.GreaterThanOrEqual(total.Sub(Epsilon))
}

// Soma acumula uma lista de valores.
func Soma(valores ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range valores {
		total = total.Add(v)
	}
	return total
}

// ClampZero trunca valores negativos em zero. Usado no estorno para nunca
// deixar valor_pago negativo, mesmo sob estorno duplicado.
func ClampZero(v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	return v
}

// DeveParse converte string em decimal; zero se inválida. Uso restrito a
// testes e fixtures.
func DeveParse(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
