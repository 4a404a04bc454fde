// internal/pagamento/validator.go
package pagamento

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/grupozeta/api-financeiro/internal/apperr"
	"github.com/grupozeta/api-financeiro/internal/conta"
	"github.com/grupozeta/api-financeiro/internal/money"
)

// ValidarBaixas roda as três checagens estruturais ANTES de qualquer escrita:
//
//  1. forma: cada baixa referencia exatamente uma parcela (XOR);
//  2. soma: Σ baixas == valor do pagamento, dentro da tolerância;
//  3. existência/posse: toda parcela referenciada existe, pertence à
//     organização e está do lado (pagar/receber) declarado — a contagem de
//     encontradas precisa bater com a de pedidas, para um subconjunto não
//     passar em silêncio.
//
// Cada checagem devolve um tipo de erro distinto.
func ValidarBaixas(db *gorm.DB, orgID uint, valorPagamento decimal.Decimal, baixas []Baixa) error {
	if len(baixas) == 0 {
		return apperr.Validacao("pagamento precisa de pelo menos uma baixa")
	}

	alvos := make([]Alvo, 0, len(baixas))
	soma := money.Zero
	for _, b := range baixas {
		alvo, err := b.Alvo()
		if err != nil {
			return err
		}
		alvos = append(alvos, alvo)
		soma = soma.Add(b.Valor)
	}

	if !money.Igual(soma, valorPagamento) {
		return apperr.Validacao("soma das baixas (%s) difere do valor do pagamento (%s)", soma.StringFixed(2), valorPagamento.StringFixed(2))
	}

	ids := make([]uint, 0, len(alvos))
	for _, a := range alvos {
		ids = append(ids, a.ParcelaID)
	}

	type linha struct {
		ID   uint
		Tipo conta.Tipo
	}
	var encontradas []linha
	err := db.Table("parcelas").
		Select("parcelas.id, contas.tipo").
		Joins("JOIN contas ON contas.id = parcelas.conta_id").
		Where("parcelas.id IN ? AND parcelas.organizacao_id = ?", ids, orgID).
		Scan(&encontradas).Error
	if err != nil {
		return apperr.Armazenamento(err)
	}

	tipoPorID := make(map[uint]conta.Tipo, len(encontradas))
	for _, l := range encontradas {
		tipoPorID[l.ID] = l.Tipo
	}
	for _, a := range alvos {
		tipo, ok := tipoPorID[a.ParcelaID]
		if !ok || tipo != a.Tipo {
			return apperr.NaoEncontrado("parcela")
		}
	}
	return nil
}
