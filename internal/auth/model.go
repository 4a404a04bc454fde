// internal/auth/model.go
package auth

import (
	"time"

	"gorm.io/gorm"
)

// Usuario é o membro de uma organização que acessa o sistema.
type Usuario struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	OrganizacaoID uint      `gorm:"not null;index" json:"organizacaoId"`
	Nome          string    `gorm:"size:120;not null" json:"nome"`
	Email         string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Senha         string    `gorm:"size:255;not null" json:"-"`
	Admin         bool      `gorm:"not null;default:false" json:"admin"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Usuario{})
}
