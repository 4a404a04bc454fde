// internal/dashboard/handler.go
package dashboard

import (
	"encoding/json"
	"net/http"

	"github.com/grupozeta/api-financeiro/internal/auth"
)

// Handler gerencia a rota do dashboard.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// Resumo trata GET /dashboard/resumo.
func (h *Handler) Resumo(w http.ResponseWriter, r *http.Request) {
	orgID := auth.OrganizacaoDoContexto(r.Context())
	resumo, err := h.Svc.Resumo(r.Context(), orgID)
	if err != nil {
		http.Error(w, "Erro ao montar resumo", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resumo)
}
