// internal/pagamento/handler.go
package pagamento

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/grupozeta/api-financeiro/internal/apperr"
	"github.com/grupozeta/api-financeiro/internal/auth"
)

// Handler gerencia as rotas de pagamentos.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func responderErro(w http.ResponseWriter, err error) {
	switch {
	case apperr.IsValidacao(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case apperr.IsNaoEncontrado(err):
		http.Error(w, err.Error(), http.StatusNotFound)
	case apperr.IsRegraDeNegocio(err):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		http.Error(w, "Erro interno", http.StatusInternalServerError)
	}
}

// Criar trata POST /pagamentos.
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var dto CriarPagamentoDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	data, err := ParseData(dto.DataPagamento)
	if err != nil {
		responderErro(w, err)
		return
	}
	baixas, err := MontarBaixas(dto.Baixas)
	if err != nil {
		responderErro(w, err)
		return
	}

	orgID := auth.OrganizacaoDoContexto(r.Context())
	p, err := h.Svc.Criar(r.Context(), orgID, dto.Valor, data, dto.Metodo, dto.Referencia, dto.Observacoes, baixas)
	if err != nil {
		responderErro(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(p)
}

// Excluir trata DELETE /pagamentos/{id}: estorna todas as baixas e remove o
// registro.
func (h *Handler) Excluir(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de pagamento inválido", http.StatusBadRequest)
		return
	}
	orgID := auth.OrganizacaoDoContexto(r.Context())
	if err := h.Svc.Excluir(r.Context(), uint(id), orgID); err != nil {
		responderErro(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Rapido trata POST /parcelas/{id}/pagamento-rapido.
func (h *Handler) Rapido(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de parcela inválido", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()
	var dto PagamentoRapidoDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	data, err := ParseData(dto.DataPagamento)
	if err != nil {
		responderErro(w, err)
		return
	}

	orgID := auth.OrganizacaoDoContexto(r.Context())
	p, err := h.Svc.Rapido(r.Context(), orgID, uint(id), dto.Valor, data, dto.Metodo)
	if err != nil {
		responderErro(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(p)
}
