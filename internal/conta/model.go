// internal/conta/model.go
package conta

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/grupozeta/api-financeiro/internal/parcela"
	"github.com/grupozeta/api-financeiro/internal/status"
)

// Tipo distingue a polaridade da conta: dinheiro a sair ou a entrar.
type Tipo string

const (
	TipoPagar   Tipo = "pagar"
	TipoReceber Tipo = "receber"
)

// Conta é o cabeçalho de uma conta a pagar ou a receber. Possui de 1 a N
// parcelas; valor_total e valor_pago são denormalizados e sempre
// re-derivados do conjunto de parcelas após qualquer mutação estrutural
// (nunca ajustados incrementalmente).
type Conta struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	OrganizacaoID uint            `gorm:"not null;index" json:"organizacaoId"`
	Tipo          Tipo            `gorm:"size:10;not null;index" json:"tipo"`
	ContraparteID uint            `gorm:"index" json:"contraparteId"` // fornecedor (pagar) ou cliente (receber)
	CategoriaID   uint            `gorm:"index" json:"categoriaId"`
	Observacoes   string          `gorm:"size:500" json:"observacoes"`
	ValorTotal    decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"valorTotal"`
	ValorPago     decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"valorPago"`
	Status        status.Status   `gorm:"size:20;not null;default:'Pendente';index" json:"status"`
	Parcelas      []parcela.Parcela `gorm:"foreignKey:ContaID;constraint:OnDelete:CASCADE" json:"parcelas,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Conta{})
}
