// internal/conta/service.go
package conta

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/grupozeta/api-financeiro/internal/apperr"
	"github.com/grupozeta/api-financeiro/internal/cache"
	"github.com/grupozeta/api-financeiro/internal/parcela"
	"github.com/grupozeta/api-financeiro/internal/status"
)

// Service cobre a criação de contas e o ciclo de vida das parcelas
// (exclusão, edição de valor, recálculo). Toda mutação estrutural termina em
// Recomputar: o total denormalizado nunca é confiado após mudança estrutural,
// sempre re-derivado das parcelas dentro da mesma transação.
type Service struct {
	DB    *gorm.DB
	Cache cache.Cache
}

func NewService(db *gorm.DB, c cache.Cache) *Service {
	return &Service{DB: db, Cache: c}
}

// Criar registra o cabeçalho e gera as parcelas em uma transação única.
// O valor total da conta é re-somado das parcelas criadas.
func (s *Service) Criar(ctx context.Context, c *Conta, valorTotal decimal.Decimal, qtdParcelas int, vencimentos []time.Time) (*Conta, error) {
	parcelas, err := parcela.Gerar(valorTotal, qtdParcelas, vencimentos, 0, c.OrganizacaoID)
	if err != nil {
		return nil, err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(c).Error; err != nil {
			return err
		}
		for i := range parcelas {
			parcelas[i].ContaID = c.ID
		}
		if err := parcela.NewRepository(tx).CriarEmLote(parcelas); err != nil {
			return err
		}
		atualizada, err := Recomputar(tx, c.ID)
		if err != nil {
			return err
		}
		*c = *atualizada
		return nil
	})
	if err != nil {
		return nil, apperr.Armazenamento(err)
	}
	c.Parcelas = parcelas

	s.invalidar(ctx, c.OrganizacaoID)
	return c, nil
}

// ExcluirParcela remove uma parcela Pendente e sem baixas, renumera as
// sobreviventes em 1..M e recomputa os agregados da conta.
//
// Conta com uma única parcela não aceita a exclusão: exclui-se a conta.
func (s *Service) ExcluirParcela(ctx context.Context, contaID, parcelaID, orgID uint) (*Conta, error) {
	var resultado *Conta
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		repo := parcela.NewRepository(tx)

		var p parcela.Parcela
		err := tx.Where("conta_id = ? AND organizacao_id = ?", contaID, orgID).First(&p, parcelaID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NaoEncontrado("parcela")
		}
		if err != nil {
			return err
		}

		irmas, err := repo.ListarPorConta(contaID)
		if err != nil {
			return err
		}
		if len(irmas) <= 1 {
			return apperr.RegraDeNegocio("conta precisa de pelo menos uma parcela; exclua a conta inteira")
		}
		if p.Status != status.Pendente {
			return apperr.RegraDeNegocio("apenas parcela Pendente pode ser excluída")
		}
		temBaixas, err := repo.TemBaixas(p.ID)
		if err != nil {
			return err
		}
		if temBaixas {
			return apperr.RegraDeNegocio("parcela com baixas não pode ser excluída")
		}

		if err := repo.ExcluirPorID(p.ID); err != nil {
			return err
		}
		if _, err := repo.Renumerar(contaID); err != nil {
			return err
		}
		resultado, err = Recomputar(tx, contaID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.invalidar(ctx, orgID)
	return s.recarregar(resultado.ID, orgID)
}

// AtualizarValorParcela altera o valor de uma parcela Pendente e sem baixas
// e re-deriva o total da conta da soma das irmãs.
func (s *Service) AtualizarValorParcela(ctx context.Context, contaID, parcelaID, orgID uint, novoValor decimal.Decimal) (*Conta, error) {
	if !novoValor.IsPositive() {
		return nil, apperr.Validacao("valor da parcela deve ser positivo")
	}

	var resultado *Conta
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		repo := parcela.NewRepository(tx)

		var p parcela.Parcela
		err := tx.Where("conta_id = ? AND organizacao_id = ?", contaID, orgID).First(&p, parcelaID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NaoEncontrado("parcela")
		}
		if err != nil {
			return err
		}
		if p.Status != status.Pendente {
			return apperr.RegraDeNegocio("apenas parcela Pendente pode ter o valor alterado")
		}
		temBaixas, err := repo.TemBaixas(p.ID)
		if err != nil {
			return err
		}
		if temBaixas {
			return apperr.RegraDeNegocio("parcela com baixas não pode ter o valor alterado")
		}

		p.Valor = novoValor
		if err := repo.Atualizar(&p); err != nil {
			return err
		}
		resultado, err = Recomputar(tx, contaID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.invalidar(ctx, orgID)
	return s.recarregar(resultado.ID, orgID)
}

// Recalcular apaga e regenera todas as parcelas quando o valor total da
// conta muda depois da criação, preservando a quantidade e o cronograma de
// vencimentos existentes. Proibido se qualquer parcela já tiver quitação.
func (s *Service) Recalcular(ctx context.Context, contaID, orgID uint, novoValor decimal.Decimal) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		repo := parcela.NewRepository(tx)

		c := Conta{}
		err := tx.Where("organizacao_id = ?", orgID).First(&c, contaID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NaoEncontrado("conta")
		}
		if err != nil {
			return err
		}

		existentes, err := repo.ListarPorConta(contaID)
		if err != nil {
			return err
		}
		for _, p := range existentes {
			if p.ValorPago.GreaterThan(decimal.Zero) {
				return apperr.RegraDeNegocio("conta com parcelas já quitadas não pode ser recalculada")
			}
		}
		temBaixas, err := repo.TemBaixasNaConta(contaID)
		if err != nil {
			return err
		}
		if temBaixas {
			return apperr.RegraDeNegocio("conta com parcelas já quitadas não pode ser recalculada")
		}

		vencimentos := make([]time.Time, 0, len(existentes))
		for _, p := range existentes {
			vencimentos = append(vencimentos, p.DataVencimento)
		}
		novas, err := parcela.Gerar(novoValor, len(existentes), vencimentos, contaID, orgID)
		if err != nil {
			return err
		}
		if err := repo.ExcluirPorConta(contaID); err != nil {
			return err
		}
		if err := repo.CriarEmLote(novas); err != nil {
			return err
		}
		_, err = Recomputar(tx, contaID)
		return err
	})
	if err != nil {
		return err
	}

	s.invalidar(ctx, orgID)
	return nil
}

// Cancelar marca a conta como Cancelada. Único caminho que grava esse status.
func (s *Service) Cancelar(ctx context.Context, contaID, orgID uint) (*Conta, error) {
	repo := NewRepository(s.DB)
	c, err := repo.BuscarPorID(contaID, orgID)
	if err != nil {
		return nil, err
	}
	c.Status = status.Cancelado
	if err := repo.Atualizar(c); err != nil {
		return nil, apperr.Armazenamento(err)
	}
	s.invalidar(ctx, orgID)
	return c, nil
}

// Excluir apaga a conta e suas parcelas (cascata).
func (s *Service) Excluir(ctx context.Context, contaID, orgID uint) error {
	repo := NewRepository(s.DB)
	c, err := repo.BuscarPorID(contaID, orgID)
	if err != nil {
		return err
	}
	if err := repo.Excluir(c.ID); err != nil {
		return apperr.Armazenamento(err)
	}
	s.invalidar(ctx, orgID)
	return nil
}

func (s *Service) invalidar(ctx context.Context, orgID uint) {
	s.Cache.Delete(ctx, cache.ChaveDashboard(orgID))
	s.Cache.DeleteByPrefix(ctx, cache.PrefixoContas(orgID))
}

func (s *Service) recarregar(id, orgID uint) (*Conta, error) {
	return NewRepository(s.DB).BuscarPorID(id, orgID)
}
