// internal/conta/repository.go
package conta

import (
	"errors"

	"gorm.io/gorm"

	"github.com/grupozeta/api-financeiro/internal/apperr"
	"github.com/grupozeta/api-financeiro/internal/money"
	"github.com/grupozeta/api-financeiro/internal/parcela"
	"github.com/grupozeta/api-financeiro/internal/status"
)

// Repository encapsula o acesso a dados de Contas.
type Repository struct {
	DB *gorm.DB
}

// NewRepository instancia um novo repositório.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// WithDB retorna uma cópia do repo usando um *gorm.DB específico (ex.: tx).
func (r *Repository) WithDB(db *gorm.DB) *Repository {
	if db == nil {
		db = r.DB
	}
	return &Repository{DB: db}
}

// Criar persiste o cabeçalho da conta.
func (r *Repository) Criar(c *Conta) error {
	return r.DB.Create(c).Error
}

// BuscarPorID busca a conta com suas parcelas, restrita à organização.
func (r *Repository) BuscarPorID(id, orgID uint) (*Conta, error) {
	var c Conta
	err := r.DB.
		Where("organizacao_id = ?", orgID).
		Preload("Parcelas", func(db *gorm.DB) *gorm.DB { return db.Order("numero ASC") }).
		First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NaoEncontrado("conta")
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Listar busca as contas da organização, opcionalmente filtradas por tipo.
func (r *Repository) Listar(orgID uint, tipo Tipo) ([]Conta, error) {
	q := r.DB.Where("organizacao_id = ?", orgID)
	if tipo != "" {
		q = q.Where("tipo = ?", tipo)
	}
	var contas []Conta
	err := q.
		Preload("Parcelas", func(db *gorm.DB) *gorm.DB { return db.Order("numero ASC") }).
		Order("id ASC").
		Find(&contas).Error
	return contas, err
}

// Atualizar persiste todos os campos de uma conta existente.
func (r *Repository) Atualizar(c *Conta) error {
	return r.DB.Save(c).Error
}

// Excluir apaga a conta; as parcelas caem em cascata.
func (r *Repository) Excluir(id uint) error {
	return r.DB.Select("Parcelas").Delete(&Conta{ID: id}).Error
}

/* ==================== Recomputação auto-corretiva ==================== */

// Recomputar re-deriva valor_total, valor_pago e status da conta a partir do
// conjunto COMPLETO de parcelas, dentro da transação corrente. Nunca ajusta
// os agregados incrementalmente: leitura total, recomputação total.
//
// Conta já Vencida ou Cancelada não tem o status sobrescrito por este
// caminho; os valores agregados são atualizados mesmo assim.
func Recomputar(tx *gorm.DB, contaID uint) (*Conta, error) {
	var c Conta
	if err := tx.First(&c, contaID).Error; err != nil {
		return nil, err
	}
	parcelas, err := parcela.NewRepository(tx).ListarPorConta(contaID)
	if err != nil {
		return nil, err
	}

	total := money.Zero
	pago := money.Zero
	todasPagas := len(parcelas) > 0
	algumaPaga := false
	for _, p := range parcelas {
		total = total.Add(p.Valor)
		pago = pago.Add(p.ValorPago)
		if p.Status != status.Pago {
			todasPagas = false
		}
		if p.Status == status.Pago || p.Status == status.Parcial {
			algumaPaga = true
		}
	}

	c.ValorTotal = total
	c.ValorPago = pago
	if c.Status != status.Vencido && c.Status != status.Cancelado {
		switch {
		case todasPagas:
			c.Status = status.Pago
		case algumaPaga:
			c.Status = status.Parcial
		default:
			c.Status = status.Pendente
		}
	}
	if err := tx.Save(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}
