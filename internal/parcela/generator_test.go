package parcela

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grupozeta/api-financeiro/internal/apperr"
	"github.com/grupozeta/api-financeiro/internal/money"
	"github.com/grupozeta/api-financeiro/internal/status"
)

func vencimentos(n int) []time.Time {
	base := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	out := make([]time.Time, n)
	for i := range out {
		out[i] = base.AddDate(0, i, 0)
	}
	return out
}

// Conservação da soma: para qualquer total e N em [1,12], a soma das parcelas
// é exatamente o total, com o resto do arredondamento na última.
func TestGerar_ConservaSoma(t *testing.T) {
	totais := []string{"100.00", "99.99", "0.01", "1000.00", "333.33", "77.77", "12345.67"}
	for _, total := range totais {
		for n := 1; n <= 12; n++ {
			parcelas, err := Gerar(money.DeveParse(total), n, vencimentos(n), 1, 1)
			require.NoError(t, err, "total=%s n=%d", total, n)
			require.Len(t, parcelas, n)

			soma := money.Zero
			for _, p := range parcelas {
				soma = soma.Add(p.Valor)
			}
			assert.True(t, soma.Equal(money.DeveParse(total)), "total=%s n=%d soma=%s", total, n, soma)
		}
	}
}

func TestGerar_RestoNaUltima(t *testing.T) {
	parcelas, err := Gerar(money.DeveParse("100.00"), 3, vencimentos(3), 1, 1)
	require.NoError(t, err)

	assert.Equal(t, "33.33", parcelas[0].Valor.StringFixed(2))
	assert.Equal(t, "33.33", parcelas[1].Valor.StringFixed(2))
	assert.Equal(t, "33.34", parcelas[2].Valor.StringFixed(2))
}

func TestGerar_NumeracaoEVencimentosPosicionais(t *testing.T) {
	datas := vencimentos(4)
	parcelas, err := Gerar(money.DeveParse("400.00"), 4, datas, 7, 2)
	require.NoError(t, err)

	for i, p := range parcelas {
		assert.Equal(t, i+1, p.Numero)
		assert.Equal(t, 4, p.TotalParcelas)
		assert.Equal(t, datas[i], p.DataVencimento)
		assert.Equal(t, uint(7), p.ContaID)
		assert.Equal(t, uint(2), p.OrganizacaoID)
		assert.Equal(t, status.Pendente, p.Status)
		assert.True(t, p.ValorPago.IsZero())
	}
}

func TestGerar_Validacoes(t *testing.T) {
	_, err := Gerar(money.DeveParse("100.00"), 0, nil, 1, 1)
	assert.True(t, apperr.IsValidacao(err))

	// Divergência entre quantidade e vencimentos é erro, nunca truncamento.
	_, err = Gerar(money.DeveParse("100.00"), 3, vencimentos(2), 1, 1)
	assert.True(t, apperr.IsValidacao(err))

	_, err = Gerar(money.DeveParse("-5.00"), 2, vencimentos(2), 1, 1)
	assert.True(t, apperr.IsValidacao(err))
}

func TestDataUTC_DescartaHorario(t *testing.T) {
	f := time.Date(2026, 3, 15, 23, 45, 12, 0, time.FixedZone("X", -3*3600))
	d := DataUTC(f)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), d)
}
