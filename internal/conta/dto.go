// internal/conta/dto.go
package conta

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/grupozeta/api-financeiro/internal/apperr"
)

// CriarContaDTO é o corpo de POST /contas.
type CriarContaDTO struct {
	Tipo          string          `json:"tipo"` // "pagar" ou "receber"
	ContraparteID uint            `json:"contraparteId"`
	CategoriaID   uint            `json:"categoriaId"`
	Observacoes   string          `json:"observacoes"`
	ValorTotal    decimal.Decimal `json:"valorTotal"`
	QtdParcelas   int             `json:"qtdParcelas"`
	Vencimentos   []string        `json:"vencimentos"` // "2006-01-02", posicionais
}

// ValorDTO é o corpo das rotas que recebem um único valor monetário.
type ValorDTO struct {
	Valor decimal.Decimal `json:"valor"`
}

// ParseTipo valida a polaridade vinda da API.
func ParseTipo(s string) (Tipo, error) {
	switch Tipo(s) {
	case TipoPagar, TipoReceber:
		return Tipo(s), nil
	default:
		return "", apperr.Validacao("tipo deve ser 'pagar' ou 'receber'")
	}
}

// ParseVencimentos converte as datas posicionais do DTO.
func ParseVencimentos(brutos []string) ([]time.Time, error) {
	datas := make([]time.Time, 0, len(brutos))
	for _, s := range brutos {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			t, err = time.Parse(time.RFC3339, s)
			if err != nil {
				return nil, apperr.Validacao("data de vencimento inválida: %q", s)
			}
		}
		datas = append(datas, t)
	}
	return datas, nil
}
