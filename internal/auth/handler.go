// internal/auth/handler.go
package auth

import (
	"encoding/json"
	"net/http"

	"gorm.io/gorm"

	"github.com/grupozeta/api-financeiro/internal/utils"
)

// RegistrarHandler cria um usuário vinculado a uma organização.
func RegistrarHandler(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Nome          string `json:"nome"`
			Email         string `json:"email"`
			Senha         string `json:"senha"`
			OrganizacaoID uint   `json:"organizacaoId"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "JSON mal formado", http.StatusBadRequest)
			return
		}
		if req.Email == "" || req.Senha == "" || req.OrganizacaoID == 0 {
			http.Error(w, "email, senha e organizacaoId são obrigatórios", http.StatusBadRequest)
			return
		}

		hash, err := utils.HashSenha(req.Senha)
		if err != nil {
			http.Error(w, "Erro ao processar senha", http.StatusInternalServerError)
			return
		}
		u := Usuario{
			Nome:          req.Nome,
			Email:         req.Email,
			Senha:         hash,
			OrganizacaoID: req.OrganizacaoID,
		}
		if err := db.Create(&u).Error; err != nil {
			http.Error(w, "Erro ao criar usuário", http.StatusUnprocessableEntity)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(u)
	}
}

// LoginHandler autentica por email/senha e devolve o JWT.
func LoginHandler(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email string `json:"email"`
			Senha string `json:"senha"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "JSON mal formado", http.StatusBadRequest)
			return
		}

		var u Usuario
		if err := db.Where("email = ?", req.Email).First(&u).Error; err != nil {
			http.Error(w, "Credenciais inválidas", http.StatusUnauthorized)
			return
		}
		if !utils.CheckSenha(u.Senha, req.Senha) {
			http.Error(w, "Credenciais inválidas", http.StatusUnauthorized)
			return
		}

		token, err := GerarToken(u.ID, u.OrganizacaoID, u.Admin)
		if err != nil {
			http.Error(w, "Erro ao gerar token", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"token": token})
	}
}
