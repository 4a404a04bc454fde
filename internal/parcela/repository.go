// internal/parcela/repository.go
package parcela

import (
	"time"

	"gorm.io/gorm"

	"github.com/grupozeta/api-financeiro/internal/status"
)

// Repository encapsula o acesso a dados de Parcelas.
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

/* ========================= CRUD básico de parcelas ========================= */

// CriarEmLote cria múltiplas parcelas de uma vez (ignora se vazio).
func (r *Repository) CriarEmLote(parcelas []Parcela) error {
	if len(parcelas) == 0 {
		return nil
	}
	return r.DB.Create(&parcelas).Error
}

// BuscarPorID busca uma única parcela pelo seu ID, restrita à organização.
func (r *Repository) BuscarPorID(id, orgID uint) (*Parcela, error) {
	var p Parcela
	if err := r.DB.Where("organizacao_id = ?", orgID).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// ListarPorConta busca todas as parcelas de uma conta, em ordem de número.
func (r *Repository) ListarPorConta(contaID uint) ([]Parcela, error) {
	var parcelas []Parcela
	err := r.DB.
		Where("conta_id = ?", contaID).
		Order("numero ASC").
		Find(&parcelas).Error
	return parcelas, err
}

// Atualizar persiste todos os campos de uma parcela existente.
func (r *Repository) Atualizar(p *Parcela) error {
	return r.DB.Save(p).Error
}

// ExcluirPorID apaga a parcela.
func (r *Repository) ExcluirPorID(id uint) error {
	return r.DB.Delete(&Parcela{}, id).Error
}

// ExcluirPorConta apaga todas as parcelas de uma conta.
func (r *Repository) ExcluirPorConta(contaID uint) error {
	return r.DB.Where("conta_id = ?", contaID).Delete(&Parcela{}).Error
}

/* ===================== Renumeração e verificações ===================== */

// Renumerar compacta os números das parcelas restantes da conta em 1..M e
// grava total_parcelas = M em todas. Deve rodar dentro da transação que
// removeu a parcela.
func (r *Repository) Renumerar(contaID uint) ([]Parcela, error) {
	parcelas, err := r.ListarPorConta(contaID)
	if err != nil {
		return nil, err
	}
	total := len(parcelas)
	for i := range parcelas {
		parcelas[i].Numero = i + 1
		parcelas[i].TotalParcelas = total
		if err := r.DB.Model(&Parcela{}).
			Where("id = ?", parcelas[i].ID).
			Updates(map[string]interface{}{"numero": i + 1, "total_parcelas": total}).Error; err != nil {
			return nil, err
		}
	}
	return parcelas, nil
}

// TemBaixas informa se alguma baixa de pagamento referencia a parcela.
func (r *Repository) TemBaixas(id uint) (bool, error) {
	var n int64
	err := r.DB.Table("baixas").
		Where("parcela_pagar_id = ? OR parcela_receber_id = ?", id, id).
		Count(&n).Error
	return n > 0, err
}

// TemBaixasNaConta informa se alguma parcela da conta já recebeu baixa.
func (r *Repository) TemBaixasNaConta(contaID uint) (bool, error) {
	var n int64
	err := r.DB.Table("baixas").
		Joins("JOIN parcelas ON parcelas.id = baixas.parcela_pagar_id OR parcelas.id = baixas.parcela_receber_id").
		Where("parcelas.conta_id = ?", contaID).
		Count(&n).Error
	return n > 0, err
}

/* ======================= Varredura de vencimento ======================= */

// AtualizarVencidas marca como Vencido toda parcela Pendente com vencimento
// anterior a hoje (meia-noite UTC). Parcela que vence hoje não é vencida.
// Idempotente: a segunda execução encontra zero linhas.
func (r *Repository) AtualizarVencidas(agora time.Time) (int64, error) {
	hoje := DataUTC(agora)
	res := r.DB.Model(&Parcela{}).
		Where("status = ? AND data_vencimento < ?", status.Pendente, hoje).
		Update("status", status.Vencido)
	return res.RowsAffected, res.Error
}
