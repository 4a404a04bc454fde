// internal/pagamento/model.go
package pagamento

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/grupozeta/api-financeiro/internal/apperr"
	"github.com/grupozeta/api-financeiro/internal/conta"
)

// Pagamento é um evento de movimentação de dinheiro, composto por 1..N
// baixas. Pagamento e baixas nascem e morrem juntos: a exclusão estorna cada
// baixa antes de remover o registro.
type Pagamento struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	OrganizacaoID uint            `gorm:"not null;index" json:"organizacaoId"`
	Valor         decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"valor"`
	DataPagamento time.Time       `gorm:"not null" json:"dataPagamento"`
	Metodo        string          `gorm:"size:50" json:"metodo"`
	Referencia    string          `gorm:"size:255" json:"referencia"`
	Observacoes   string          `gorm:"size:500" json:"observacoes"`
	Baixas        []Baixa         `gorm:"foreignKey:PagamentoID;constraint:OnDelete:CASCADE" json:"baixas,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// Baixa aplica parte do valor de um pagamento a exatamente uma parcela.
// O vínculo é polimórfico: parcela_pagar_id XOR parcela_receber_id,
// nunca ambos, nunca nenhum.
type Baixa struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	PagamentoID      uint            `gorm:"not null;index" json:"pagamentoId"`
	Valor            decimal.Decimal `gorm:"type:numeric(14,2);not null;check:valor > 0" json:"valor"`
	ParcelaPagarID   *uint           `gorm:"index" json:"parcelaPagarId,omitempty"`
	ParcelaReceberID *uint           `gorm:"index" json:"parcelaReceberId,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// Alvo é a variante etiquetada do vínculo polimórfico da baixa; o invariante
// XOR vira erro estrutural em vez de checagem espalhada.
type Alvo struct {
	Tipo      conta.Tipo
	ParcelaID uint
}

// Alvo extrai a parcela destino da baixa; falha se o XOR estiver violado.
func (b *Baixa) Alvo() (Alvo, error) {
	switch {
	case b.ParcelaPagarID != nil && b.ParcelaReceberID == nil:
		return Alvo{Tipo: conta.TipoPagar, ParcelaID: *b.ParcelaPagarID}, nil
	case b.ParcelaReceberID != nil && b.ParcelaPagarID == nil:
		return Alvo{Tipo: conta.TipoReceber, ParcelaID: *b.ParcelaReceberID}, nil
	default:
		return Alvo{}, apperr.Validacao("baixa deve referenciar exatamente uma parcela (pagar ou receber)")
	}
}

// NovaBaixa monta uma baixa a partir da variante etiquetada.
func NovaBaixa(alvo Alvo, valor decimal.Decimal) Baixa {
	b := Baixa{Valor: valor}
	id := alvo.ParcelaID
	if alvo.Tipo == conta.TipoPagar {
		b.ParcelaPagarID = &id
	} else {
		b.ParcelaReceberID = &id
	}
	return b
}

// Migrate cria as tabelas no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Pagamento{}, &Baixa{})
}
