// internal/database/testdb/testdb.go
//
// Banco sqlite em memória para testes de pacote. Cada chamada abre um banco
// isolado, já migrado, que morre com o teste.
package testdb

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/grupozeta/api-financeiro/internal/database"
)

var seq atomic.Int64

// Abrir devolve um *gorm.DB sqlite em memória com o esquema completo.
func Abrir(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", seq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("abrindo sqlite em memória: %v", err)
	}
	if err := database.Migrar(db); err != nil {
		t.Fatalf("migrando esquema de teste: %v", err)
	}
	return db
}
