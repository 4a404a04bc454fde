// internal/parcela/generator.go
package parcela

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/grupozeta/api-financeiro/internal/apperr"
	"github.com/grupozeta/api-financeiro/internal/status"
)

// Gerar divide o valor total em n parcelas com vencimentos posicionais.
//
// Algoritmo: base = piso(total/n, 2 casas); o resto do arredondamento vai
// inteiro para a ÚLTIMA parcela. Assim a soma das parcelas bate exatamente
// com o total, sem depender de distribuição de centavos — mexer nesse
// desempate descola os totais da conta dos somatórios do dashboard.
func Gerar(total decimal.Decimal, n int, vencimentos []time.Time, contaID, orgID uint) ([]Parcela, error) {
	if n < 1 {
		return nil, apperr.Validacao("quantidade de parcelas deve ser pelo menos 1")
	}
	if len(vencimentos) != n {
		return nil, apperr.Validacao("quantidade de vencimentos (%d) difere da quantidade de parcelas (%d)", len(vencimentos), n)
	}
	if !total.IsPositive() {
		return nil, apperr.Validacao("valor total deve ser positivo")
	}

	qtd := decimal.NewFromInt(int64(n))
	base := total.Div(qtd).RoundFloor(2)
	resto := total.Sub(base.Mul(qtd))

	parcelas := make([]Parcela, 0, n)
	for i := 0; i < n; i++ {
		valor := base
		if i == n-1 {
			valor = base.Add(resto)
		}
		parcelas = append(parcelas, Parcela{
			ContaID:        contaID,
			OrganizacaoID:  orgID,
			Numero:         i + 1,
			TotalParcelas:  n,
			Valor:          valor,
			ValorPago:      decimal.Zero,
			DataVencimento: DataUTC(vencimentos[i]),
			Status:         status.Pendente,
		})
	}
	return parcelas, nil
}

// DataUTC descarta o horário: vencimento é data pura, tratada como meia-noite UTC.
func DataUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
