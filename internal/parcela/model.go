// internal/parcela/model.go
package parcela

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/grupozeta/api-financeiro/internal/status"
)

// Parcela representa uma fração do valor de uma conta, com vencimento e
// quitação próprios.
//
// Invariantes (valem após qualquer mutação concluída):
//   - numero forma sequência densa 1..total_parcelas dentro da conta;
//   - soma dos valores das parcelas == valor_total da conta (exato);
//   - 0 <= valor_pago <= valor + 0,01.
type Parcela struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	ContaID       uint            `gorm:"not null;index" json:"contaId"`
	OrganizacaoID uint            `gorm:"not null;index" json:"organizacaoId"`
	Numero        int             `gorm:"not null" json:"numero"`
	TotalParcelas int             `gorm:"not null" json:"totalParcelas"`
	Valor         decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"valor"`
	ValorPago     decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"valorPago"`
	DataVencimento time.Time      `gorm:"not null;index" json:"dataVencimento"`
	Status        status.Status   `gorm:"size:20;not null;default:'Pendente';index" json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Parcela{})
}
