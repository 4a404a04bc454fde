package pagamento_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grupozeta/api-financeiro/internal/apperr"
	"github.com/grupozeta/api-financeiro/internal/cache"
	"github.com/grupozeta/api-financeiro/internal/conta"
	"github.com/grupozeta/api-financeiro/internal/database/testdb"
	"github.com/grupozeta/api-financeiro/internal/money"
	"github.com/grupozeta/api-financeiro/internal/pagamento"
	"github.com/grupozeta/api-financeiro/internal/status"
)

type ambiente struct {
	contaSvc     *conta.Service
	contaRepo    *conta.Repository
	pagamentoSvc *pagamento.Service
}

func novoAmbiente(t *testing.T) *ambiente {
	t.Helper()
	db := testdb.Abrir(t)
	c := cache.NewMemoria()
	return &ambiente{
		contaSvc:     conta.NewService(db, c),
		contaRepo:    conta.NewRepository(db),
		pagamentoSvc: pagamento.NewService(db, c),
	}
}

func (a *ambiente) novaConta(t *testing.T, tipo conta.Tipo, total string, n int) *conta.Conta {
	t.Helper()
	base := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)
	datas := make([]time.Time, n)
	for i := range datas {
		datas[i] = base.AddDate(0, i, 0)
	}
	c := &conta.Conta{OrganizacaoID: 1, Tipo: tipo}
	criada, err := a.contaSvc.Criar(context.Background(), c, money.DeveParse(total), n, datas)
	require.NoError(t, err)
	return criada
}

func baixa(tipo conta.Tipo, parcelaID uint, valor string) pagamento.Baixa {
	return pagamento.NovaBaixa(pagamento.Alvo{Tipo: tipo, ParcelaID: parcelaID}, money.DeveParse(valor))
}

func hoje() time.Time { return time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC) }

/* ============================ Validador ============================ */

func TestCriar_ValidaForma(t *testing.T) {
	a := novoAmbiente(t)
	c := a.novaConta(t, conta.TipoPagar, "100.00", 1)

	// Nenhum alvo.
	quebrada := pagamento.Baixa{Valor: money.DeveParse("100.00")}
	_, err := a.pagamentoSvc.Criar(context.Background(), 1, money.DeveParse("100.00"), hoje(), "pix", "", "", []pagamento.Baixa{quebrada})
	assert.True(t, apperr.IsValidacao(err))

	// Ambos os alvos.
	id := c.Parcelas[0].ID
	dupla := pagamento.Baixa{Valor: money.DeveParse("100.00"), ParcelaPagarID: &id, ParcelaReceberID: &id}
	_, err = a.pagamentoSvc.Criar(context.Background(), 1, money.DeveParse("100.00"), hoje(), "pix", "", "", []pagamento.Baixa{dupla})
	assert.True(t, apperr.IsValidacao(err))
}

func TestCriar_ValidaSoma(t *testing.T) {
	a := novoAmbiente(t)
	c := a.novaConta(t, conta.TipoPagar, "100.00", 2)

	baixas := []pagamento.Baixa{
		baixa(conta.TipoPagar, c.Parcelas[0].ID, "50.00"),
		baixa(conta.TipoPagar, c.Parcelas[1].ID, "40.00"),
	}
	_, err := a.pagamentoSvc.Criar(context.Background(), 1, money.DeveParse("100.00"), hoje(), "pix", "", "", baixas)
	assert.True(t, apperr.IsValidacao(err))
}

func TestCriar_ValidaExistenciaEPosse(t *testing.T) {
	a := novoAmbiente(t)
	c := a.novaConta(t, conta.TipoPagar, "100.00", 2)
	ctx := context.Background()

	// Parcela inexistente.
	baixas := []pagamento.Baixa{
		baixa(conta.TipoPagar, c.Parcelas[0].ID, "50.00"),
		baixa(conta.TipoPagar, 9999, "50.00"),
	}
	_, err := a.pagamentoSvc.Criar(ctx, 1, money.DeveParse("100.00"), hoje(), "pix", "", "", baixas)
	assert.True(t, apperr.IsNaoEncontrado(err))

	// Organização errada.
	baixas = []pagamento.Baixa{baixa(conta.TipoPagar, c.Parcelas[0].ID, "50.00")}
	_, err = a.pagamentoSvc.Criar(ctx, 2, money.DeveParse("50.00"), hoje(), "pix", "", "", baixas)
	assert.True(t, apperr.IsNaoEncontrado(err))

	// Lado declarado errado (parcela de conta a pagar, baixa do lado receber).
	baixas = []pagamento.Baixa{baixa(conta.TipoReceber, c.Parcelas[0].ID, "50.00")}
	_, err = a.pagamentoSvc.Criar(ctx, 1, money.DeveParse("50.00"), hoje(), "pix", "", "", baixas)
	assert.True(t, apperr.IsNaoEncontrado(err))
}

/* ========================== Orquestrador ========================== */

// Cenário fim-a-fim: 300,00 em 3 parcelas, pagamento integral da primeira,
// pagamento múltiplo das duas últimas, exclusão do pagamento múltiplo.
func TestFluxoCompleto(t *testing.T) {
	a := novoAmbiente(t)
	ctx := context.Background()
	c := a.novaConta(t, conta.TipoReceber, "300.00", 3)
	require.Equal(t, "100.00", c.Parcelas[0].Valor.StringFixed(2))

	// Paga a parcela 1 por inteiro.
	_, err := a.pagamentoSvc.Rapido(ctx, 1, c.Parcelas[0].ID, money.DeveParse("100.00"), hoje(), "pix")
	require.NoError(t, err)

	meio, err := a.contaRepo.BuscarPorID(c.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, status.Parcial, meio.Status)
	assert.Equal(t, "100.00", meio.ValorPago.StringFixed(2))

	// Um pagamento de 200,00 com duas baixas quita as parcelas 2 e 3.
	baixas := []pagamento.Baixa{
		baixa(conta.TipoReceber, c.Parcelas[1].ID, "100.00"),
		baixa(conta.TipoReceber, c.Parcelas[2].ID, "100.00"),
	}
	multi, err := a.pagamentoSvc.Criar(ctx, 1, money.DeveParse("200.00"), hoje(), "transferencia", "NF-123", "", baixas)
	require.NoError(t, err)

	cheia, err := a.contaRepo.BuscarPorID(c.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, status.Pago, cheia.Status)
	assert.Equal(t, "300.00", cheia.ValorPago.StringFixed(2))

	// Excluir o pagamento múltiplo estorna as duas baixas.
	require.NoError(t, a.pagamentoSvc.Excluir(ctx, multi.ID, 1))

	revertida, err := a.contaRepo.BuscarPorID(c.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, status.Parcial, revertida.Status)
	assert.Equal(t, "100.00", revertida.ValorPago.StringFixed(2))
	assert.Equal(t, status.Pendente, revertida.Parcelas[1].Status)
	assert.True(t, revertida.Parcelas[1].ValorPago.IsZero())
}

// Falha no meio da transação: nada do pagamento pode sobrar. A baixa
// negativa passa pelo validador (a soma bate) e estoura a CHECK do banco,
// que vira o erro genérico de dados inválidos.
func TestCriar_RollbackTotal(t *testing.T) {
	a := novoAmbiente(t)
	ctx := context.Background()
	c := a.novaConta(t, conta.TipoPagar, "100.00", 2)

	baixas := []pagamento.Baixa{
		baixa(conta.TipoPagar, c.Parcelas[0].ID, "150.00"),
		baixa(conta.TipoPagar, c.Parcelas[1].ID, "-50.00"),
	}
	_, err := a.pagamentoSvc.Criar(ctx, 1, money.DeveParse("100.00"), hoje(), "pix", "", "", baixas)
	require.Error(t, err)
	assert.True(t, apperr.IsRegraDeNegocio(err))
	assert.EqualError(t, err, "dados de pagamento inválidos")

	// Nenhum pagamento, nenhuma baixa, nenhum saldo alterado.
	var nPagamentos, nBaixas int64
	require.NoError(t, a.contaRepo.DB.Model(&pagamento.Pagamento{}).Count(&nPagamentos).Error)
	require.NoError(t, a.contaRepo.DB.Model(&pagamento.Baixa{}).Count(&nBaixas).Error)
	assert.Zero(t, nPagamentos)
	assert.Zero(t, nBaixas)

	intacta, err := a.contaRepo.BuscarPorID(c.ID, 1)
	require.NoError(t, err)
	assert.True(t, intacta.ValorPago.IsZero())
	assert.Equal(t, status.Pendente, intacta.Status)
	for _, p := range intacta.Parcelas {
		assert.True(t, p.ValorPago.IsZero())
		assert.Equal(t, status.Pendente, p.Status)
	}
}

func TestExcluir_NaoEncontrado(t *testing.T) {
	a := novoAmbiente(t)
	ctx := context.Background()

	err := a.pagamentoSvc.Excluir(ctx, 9999, 1)
	assert.True(t, apperr.IsNaoEncontrado(err))

	// Pagamento de outra organização é invisível.
	c := a.novaConta(t, conta.TipoPagar, "100.00", 1)
	p, err := a.pagamentoSvc.Rapido(ctx, 1, c.Parcelas[0].ID, money.DeveParse("100.00"), hoje(), "pix")
	require.NoError(t, err)
	err = a.pagamentoSvc.Excluir(ctx, p.ID, 2)
	assert.True(t, apperr.IsNaoEncontrado(err))
}

func TestRapido_MontaBaixaUnica(t *testing.T) {
	a := novoAmbiente(t)
	c := a.novaConta(t, conta.TipoReceber, "80.00", 1)

	p, err := a.pagamentoSvc.Rapido(context.Background(), 1, c.Parcelas[0].ID, money.DeveParse("80.00"), hoje(), "dinheiro")
	require.NoError(t, err)
	require.Len(t, p.Baixas, 1)

	alvo, err := p.Baixas[0].Alvo()
	require.NoError(t, err)
	assert.Equal(t, conta.TipoReceber, alvo.Tipo)
	assert.Equal(t, c.Parcelas[0].ID, alvo.ParcelaID)
}
