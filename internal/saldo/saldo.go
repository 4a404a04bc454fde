// internal/saldo/saldo.go
//
// Ledger de saldos: aplica e estorna baixas sobre uma parcela e recomputa os
// agregados da conta-mãe. Nenhum outro caminho de código escreve valor_pago
// ou status de parcela/conta diretamente.
package saldo

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/grupozeta/api-financeiro/internal/apperr"
	"github.com/grupozeta/api-financeiro/internal/conta"
	"github.com/grupozeta/api-financeiro/internal/money"
	"github.com/grupozeta/api-financeiro/internal/parcela"
	"github.com/grupozeta/api-financeiro/internal/status"
)

// Aplicar soma delta ao valor_pago da parcela, resolve o novo status e
// recomputa a conta-mãe a partir de TODAS as parcelas irmãs. Deve rodar
// dentro da mesma transação das demais escritas do caso de uso.
func Aplicar(tx *gorm.DB, parcelaID uint, delta decimal.Decimal) error {
	var p parcela.Parcela
	if err := tx.First(&p, parcelaID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NaoEncontrado("parcela")
		}
		return err
	}

	p.ValorPago = p.ValorPago.Add(delta)
	p.Status = status.Resolve(p.Valor, p.ValorPago)
	if err := tx.Save(&p).Error; err != nil {
		return err
	}

	_, err := conta.Recomputar(tx, p.ContaID)
	return err
}

// Estornar subtrai delta do valor_pago da parcela. O resultado é truncado em
// zero (estorno duplicado nunca deixa a parcela negativa) e valor_pago zero
// força Pendente em vez de confiar na comparação com tolerância. Parcela
// inexistente é tolerada em silêncio: ela pode já ter sido excluída.
func Estornar(tx *gorm.DB, parcelaID uint, delta decimal.Decimal) error {
	var p parcela.Parcela
	if err := tx.First(&p, parcelaID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	p.ValorPago = money.ClampZero(p.ValorPago.Sub(delta))
	if p.ValorPago.IsZero() {
		p.Status = status.Pendente
	} else {
		p.Status = status.Resolve(p.Valor, p.ValorPago)
	}
	if err := tx.Save(&p).Error; err != nil {
		return err
	}

	_, err := conta.Recomputar(tx, p.ContaID)
	return err
}
