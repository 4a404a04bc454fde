// internal/pagamento/service.go
package pagamento

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/grupozeta/api-financeiro/internal/apperr"
	"github.com/grupozeta/api-financeiro/internal/cache"
	"github.com/grupozeta/api-financeiro/internal/conta"
	"github.com/grupozeta/api-financeiro/internal/saldo"
)

// Service orquestra a unidade atômica de trabalho de pagamentos: registro +
// baixas + aplicação no ledger, tudo em uma transação. Qualquer falha no
// meio desfaz o pagamento inteiro; nunca sobra baixa parcialmente aplicada.
type Service struct {
	DB    *gorm.DB
	Cache cache.Cache
}

func NewService(db *gorm.DB, c cache.Cache) *Service {
	return &Service{DB: db, Cache: c}
}

// Criar valida as baixas, abre uma transação única (pagamento, baixas,
// aplicação de cada baixa no saldo) e, fora dela, invalida o cache do
// dashboard da organização (melhor esforço).
//
// Violações de constraint do banco viram o erro genérico "dados de pagamento
// inválidos"; falhas do validador mantêm a mensagem específica.
func (s *Service) Criar(ctx context.Context, orgID uint, valor decimal.Decimal, data time.Time, metodo, referencia, observacoes string, baixas []Baixa) (*Pagamento, error) {
	if err := ValidarBaixas(s.DB, orgID, valor, baixas); err != nil {
		return nil, err
	}

	p := Pagamento{
		OrganizacaoID: orgID,
		Valor:         valor,
		DataPagamento: data,
		Metodo:        metodo,
		Referencia:    referencia,
		Observacoes:   observacoes,
		Baixas:        baixas,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&p).Error; err != nil {
			return err
		}
		for _, b := range p.Baixas {
			alvo, err := b.Alvo()
			if err != nil {
				return err
			}
			if err := saldo.Aplicar(tx, alvo.ParcelaID, b.Valor); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if apperr.IsValidacao(err) || apperr.IsNaoEncontrado(err) || apperr.IsRegraDeNegocio(err) {
			return nil, err
		}
		log.Printf("pagamento: falha na transação de criação: %v", err)
		return nil, apperr.RegraDeNegocio("dados de pagamento inválidos")
	}

	s.Cache.Delete(ctx, cache.ChaveDashboard(orgID))
	s.Cache.DeleteByPrefix(ctx, cache.PrefixoContas(orgID))
	return &p, nil
}

// Excluir estorna cada baixa no ledger e remove o pagamento (baixas em
// cascata), tudo em uma transação; depois invalida o cache do dashboard e
// as listagens da organização, dos dois lados.
func (s *Service) Excluir(ctx context.Context, pagamentoID, orgID uint) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var p Pagamento
		err := tx.Where("organizacao_id = ?", orgID).Preload("Baixas").First(&p, pagamentoID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NaoEncontrado("pagamento")
		}
		if err != nil {
			return err
		}
		for _, b := range p.Baixas {
			alvo, err := b.Alvo()
			if err != nil {
				return err
			}
			if err := saldo.Estornar(tx, alvo.ParcelaID, b.Valor); err != nil {
				return err
			}
		}
		return tx.Select("Baixas").Delete(&p).Error
	})
	if err != nil {
		if apperr.IsNaoEncontrado(err) || apperr.IsValidacao(err) {
			return err
		}
		return apperr.Armazenamento(err)
	}

	s.Cache.Delete(ctx, cache.ChaveDashboard(orgID))
	s.Cache.DeleteByPrefix(ctx, cache.PrefixoContas(orgID))
	return nil
}

// Rapido monta um pagamento de baixa única a partir de uma parcela. Não é um
// algoritmo próprio: só conveniência sobre Criar.
func (s *Service) Rapido(ctx context.Context, orgID, parcelaID uint, valor decimal.Decimal, data time.Time, metodo string) (*Pagamento, error) {
	tipo, err := s.tipoDaParcela(parcelaID, orgID)
	if err != nil {
		return nil, err
	}
	b := NovaBaixa(Alvo{Tipo: tipo, ParcelaID: parcelaID}, valor)
	return s.Criar(ctx, orgID, valor, data, metodo, "", "", []Baixa{b})
}

func (s *Service) tipoDaParcela(parcelaID, orgID uint) (conta.Tipo, error) {
	var tipo conta.Tipo
	err := s.DB.Table("parcelas").
		Select("contas.tipo").
		Joins("JOIN contas ON contas.id = parcelas.conta_id").
		Where("parcelas.id = ? AND parcelas.organizacao_id = ?", parcelaID, orgID).
		Scan(&tipo).Error
	if err != nil {
		return "", apperr.Armazenamento(err)
	}
	if tipo == "" {
		return "", apperr.NaoEncontrado("parcela")
	}
	return tipo, nil
}
