// internal/pagamento/dto.go
package pagamento

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/grupozeta/api-financeiro/internal/apperr"
	"github.com/grupozeta/api-financeiro/internal/conta"
)

// BaixaDTO é uma alocação vinda da API: parcela destino, lado e valor.
type BaixaDTO struct {
	ParcelaID uint            `json:"parcelaId"`
	Tipo      string          `json:"tipo"` // "pagar" ou "receber"
	Valor     decimal.Decimal `json:"valor"`
}

// CriarPagamentoDTO é o corpo de POST /pagamentos.
type CriarPagamentoDTO struct {
	Valor         decimal.Decimal `json:"valor"`
	DataPagamento string          `json:"dataPagamento"` // "2006-01-02"
	Metodo        string          `json:"metodo"`
	Referencia    string          `json:"referencia"`
	Observacoes   string          `json:"observacoes"`
	Baixas        []BaixaDTO      `json:"baixas"`
}

// PagamentoRapidoDTO é o corpo de POST /parcelas/{id}/pagamento-rapido.
type PagamentoRapidoDTO struct {
	Valor         decimal.Decimal `json:"valor"`
	DataPagamento string          `json:"dataPagamento"`
	Metodo        string          `json:"metodo"`
}

// ParseData aceita data pura ou RFC3339.
func ParseData(s string) (time.Time, error) {
	if s == "" {
		return time.Now().UTC(), nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, apperr.Validacao("data de pagamento inválida: %q", s)
}

// MontarBaixas converte os DTOs em baixas com o vínculo XOR correto.
func MontarBaixas(dtos []BaixaDTO) ([]Baixa, error) {
	baixas := make([]Baixa, 0, len(dtos))
	for _, d := range dtos {
		tipo, err := conta.ParseTipo(d.Tipo)
		if err != nil {
			return nil, err
		}
		baixas = append(baixas, NovaBaixa(Alvo{Tipo: tipo, ParcelaID: d.ParcelaID}, d.Valor))
	}
	return baixas, nil
}
