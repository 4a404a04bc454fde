// internal/database/database.go
package database

import (
	"fmt"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/grupozeta/api-financeiro/internal/auth"
	"github.com/grupozeta/api-financeiro/internal/conta"
	"github.com/grupozeta/api-financeiro/internal/pagamento"
	"github.com/grupozeta/api-financeiro/internal/parcela"
)

// Conectar abre a conexão postgres a partir das variáveis de ambiente
// (DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME, DB_SSL_MODE_DISABLE).
func Conectar() (*gorm.DB, error) {
	sslMode := ""
	if os.Getenv("DB_SSL_MODE_DISABLE") == "true" {
		sslMode = " sslmode=disable"
	}
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s%s",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		sslMode,
	)
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
}

// Migrar roda o AutoMigrate de todos os modelos.
func Migrar(db *gorm.DB) error {
	for _, m := range []func(*gorm.DB) error{
		auth.Migrate,
		conta.Migrate,
		parcela.Migrate,
		pagamento.Migrate,
	} {
		if err := m(db); err != nil {
			return err
		}
	}
	return nil
}
