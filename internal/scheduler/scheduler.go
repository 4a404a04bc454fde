// internal/scheduler/scheduler.go
package scheduler

import (
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/grupozeta/api-financeiro/internal/parcela"
)

// Start dispara a varredura de vencimento em segundo plano, no intervalo
// dado. A varredura é idempotente e segura de rodar concorrente com
// pagamentos: só alcança parcelas Pendentes, e corrida com um pagamento é
// resolvida pelo isolamento da transação.
func Start(db *gorm.DB, intervalo time.Duration) {
	go func() {
		log.Printf("scheduler: varredura de vencidas a cada %s", intervalo)
		repo := parcela.NewRepository(db)

		executar := func() {
			n, err := repo.AtualizarVencidas(time.Now())
			if err != nil {
				log.Printf("scheduler: erro na varredura de vencidas: %v", err)
				return
			}
			if n > 0 {
				log.Printf("scheduler: %d parcela(s) marcadas como vencidas", n)
			}
		}

		executar()
		ticker := time.NewTicker(intervalo)
		defer ticker.Stop()
		for range ticker.C {
			executar()
		}
	}()
}
