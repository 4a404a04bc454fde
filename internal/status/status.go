// internal/status/status.go
package status

import (
	"github.com/shopspring/decimal"

	"github.com/grupozeta/api-financeiro/internal/money"
)

// Status de contas e parcelas. Pendente/Parcial/Pago saem do Resolve;
// Vencido só nasce da varredura de vencimento e Cancelado só de cancelamento
// explícito — ambos prevalecem sobre o Resolve até voltarem a território
// Pendente.
type Status string

const (
	Pendente  Status = "Pendente"
	Parcial   Status = "Parcial"
	Pago      Status = "Pago"
	Vencido   Status = "Vencido"
	Cancelado Status = "Cancelado"
)

// Resolve deriva o status a partir de (total, pago). Função pura, sem
// conhecimento de datas.
func Resolve(total, pago decimal.Decimal) Status {
	if money.Atingiu(total, pago) {
		return Pago
	}
	if pago.GreaterThan(decimal.Zero) {
		return Parcial
	}
	return Pendente
}

// Rank ordena Pendente < Parcial < Pago para verificação de monotonicidade.
func Rank(s Status) int {
	switch s {
	case Parcial:
		return 1
	case Pago:
		return 2
	default:
		return 0
	}
}
