package parcela_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grupozeta/api-financeiro/internal/conta"
	"github.com/grupozeta/api-financeiro/internal/database/testdb"
	"github.com/grupozeta/api-financeiro/internal/money"
	"github.com/grupozeta/api-financeiro/internal/parcela"
	"github.com/grupozeta/api-financeiro/internal/status"
)

func novaConta(t *testing.T, repo *conta.Repository, orgID uint) *conta.Conta {
	t.Helper()
	c := &conta.Conta{OrganizacaoID: orgID, Tipo: conta.TipoPagar, Status: status.Pendente}
	require.NoError(t, repo.Criar(c))
	return c
}

func TestAtualizarVencidas(t *testing.T) {
	db := testdb.Abrir(t)
	repo := parcela.NewRepository(db)
	c := novaConta(t, conta.NewRepository(db), 1)

	agora := time.Date(2026, 8, 30, 15, 30, 0, 0, time.UTC)
	ontem := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	hoje := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	amanha := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	parcelas := []parcela.Parcela{
		{ContaID: c.ID, OrganizacaoID: 1, Numero: 1, TotalParcelas: 4, Valor: money.DeveParse("10.00"), DataVencimento: ontem, Status: status.Pendente},
		{ContaID: c.ID, OrganizacaoID: 1, Numero: 2, TotalParcelas: 4, Valor: money.DeveParse("10.00"), DataVencimento: hoje, Status: status.Pendente},
		{ContaID: c.ID, OrganizacaoID: 1, Numero: 3, TotalParcelas: 4, Valor: money.DeveParse("10.00"), DataVencimento: amanha, Status: status.Pendente},
		{ContaID: c.ID, OrganizacaoID: 1, Numero: 4, TotalParcelas: 4, Valor: money.DeveParse("10.00"), DataVencimento: ontem, Status: status.Pago},
	}
	require.NoError(t, repo.CriarEmLote(parcelas))

	n, err := repo.AtualizarVencidas(agora)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	depois, err := repo.ListarPorConta(c.ID)
	require.NoError(t, err)
	assert.Equal(t, status.Vencido, depois[0].Status)
	// Parcela que vence hoje nunca é vencida.
	assert.Equal(t, status.Pendente, depois[1].Status)
	assert.Equal(t, status.Pendente, depois[2].Status)
	// Parcela paga está fora do alcance da varredura.
	assert.Equal(t, status.Pago, depois[3].Status)

	// Idempotência: a segunda execução não encontra nada.
	n, err = repo.AtualizarVencidas(agora)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestRenumerar(t *testing.T) {
	db := testdb.Abrir(t)
	repo := parcela.NewRepository(db)
	c := novaConta(t, conta.NewRepository(db), 1)

	venc := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	parcelas := []parcela.Parcela{
		{ContaID: c.ID, OrganizacaoID: 1, Numero: 1, TotalParcelas: 3, Valor: money.DeveParse("10.00"), DataVencimento: venc, Status: status.Pendente},
		{ContaID: c.ID, OrganizacaoID: 1, Numero: 2, TotalParcelas: 3, Valor: money.DeveParse("10.00"), DataVencimento: venc, Status: status.Pendente},
		{ContaID: c.ID, OrganizacaoID: 1, Numero: 3, TotalParcelas: 3, Valor: money.DeveParse("10.00"), DataVencimento: venc, Status: status.Pendente},
	}
	require.NoError(t, repo.CriarEmLote(parcelas))
	require.NoError(t, repo.ExcluirPorID(parcelas[1].ID))

	renumeradas, err := repo.Renumerar(c.ID)
	require.NoError(t, err)
	require.Len(t, renumeradas, 2)
	for i, p := range renumeradas {
		assert.Equal(t, i+1, p.Numero)
		assert.Equal(t, 2, p.TotalParcelas)
	}
}
