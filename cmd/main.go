package main

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/grupozeta/api-financeiro/internal/auth"
	"github.com/grupozeta/api-financeiro/internal/cache"
	"github.com/grupozeta/api-financeiro/internal/conta"
	"github.com/grupozeta/api-financeiro/internal/dashboard"
	"github.com/grupozeta/api-financeiro/internal/database"
	"github.com/grupozeta/api-financeiro/internal/pagamento"
	"github.com/grupozeta/api-financeiro/internal/scheduler"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Aviso: .env não encontrado, usando variáveis de ambiente")
	}

	db, err := database.Conectar()
	if err != nil {
		log.Fatal("Erro ao conectar no banco:", err)
	}
	if err := database.Migrar(db); err != nil {
		log.Fatal("Erro no AutoMigrate:", err)
	}

	// Cache: Redis quando configurado, memória caso contrário.
	var c cache.Cache
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		c = cache.NewRedis(addr, os.Getenv("REDIS_PASSWORD"))
		log.Println("Cache: redis em", addr)
	} else {
		c = cache.NewMemoria()
		log.Println("Cache: memória de processo")
	}

	// Serviços
	contaRepo := conta.NewRepository(db)
	contaSvc := conta.NewService(db, c)
	pagamentoSvc := pagamento.NewService(db, c)
	dashboardSvc := dashboard.NewService(db, c, duracaoEnv("CACHE_TTL_SECONDS", 300)*time.Second)

	// Handlers
	contaHandler := conta.NewHandler(contaSvc, contaRepo, c)
	pagamentoHandler := pagamento.NewHandler(pagamentoSvc)
	dashboardHandler := dashboard.NewHandler(dashboardSvc)

	// Varredura de parcelas vencidas
	scheduler.Start(db, duracaoEnv("SWEEP_INTERVAL_SECONDS", 3600)*time.Second)

	// Router
	r := mux.NewRouter()

	// Rotas públicas
	r.HandleFunc("/registrar", auth.RegistrarHandler(db)).Methods("POST")
	r.HandleFunc("/login", auth.LoginHandler(db)).Methods("POST")

	// Rotas autenticadas
	api := r.NewRoute().Subrouter()
	api.Use(auth.Middleware)

	// Contas
	api.HandleFunc("/contas", contaHandler.Criar).Methods("POST")
	api.HandleFunc("/contas", contaHandler.Listar).Methods("GET")
	api.HandleFunc("/contas/{id}", contaHandler.Buscar).Methods("GET")
	api.HandleFunc("/contas/{id}", contaHandler.Excluir).Methods("DELETE")
	api.HandleFunc("/contas/{id}/cancelar", contaHandler.Cancelar).Methods("PATCH")
	api.HandleFunc("/contas/{id}/valor", contaHandler.Recalcular).Methods("PUT")

	// Ciclo de vida de parcelas
	api.HandleFunc("/contas/{id}/parcelas/{pid}", contaHandler.ExcluirParcela).Methods("DELETE")
	api.HandleFunc("/contas/{id}/parcelas/{pid}/valor", contaHandler.AtualizarValorParcela).Methods("PUT")

	// Pagamentos
	api.HandleFunc("/pagamentos", pagamentoHandler.Criar).Methods("POST")
	api.HandleFunc("/pagamentos/{id}", pagamentoHandler.Excluir).Methods("DELETE")
	api.HandleFunc("/parcelas/{id}/pagamento-rapido", pagamentoHandler.Rapido).Methods("POST")

	// Dashboard
	api.HandleFunc("/dashboard/resumo", dashboardHandler.Resumo).Methods("GET")

	porta := os.Getenv("PORT")
	if porta == "" {
		porta = "8080"
	}
	handler := cors.AllowAll().Handler(r)
	log.Println("Servidor rodando em http://localhost:" + porta)
	log.Fatal(http.ListenAndServe(":"+porta, handler))
}

func duracaoEnv(chave string, padrao int) time.Duration {
	if v := os.Getenv(chave); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n)
		}
	}
	return time.Duration(padrao)
}
