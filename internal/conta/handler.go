// internal/conta/handler.go
package conta

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/grupozeta/api-financeiro/internal/apperr"
	"github.com/grupozeta/api-financeiro/internal/auth"
	"github.com/grupozeta/api-financeiro/internal/cache"
)

// Handler gerencia as rotas de contas e do ciclo de vida de parcelas.
type Handler struct {
	Svc   *Service
	Repo  *Repository
	Cache cache.Cache
}

func NewHandler(svc *Service, repo *Repository, c cache.Cache) *Handler {
	return &Handler{Svc: svc, Repo: repo, Cache: c}
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

func responderJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// Criar trata POST /contas.
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var dto CriarContaDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	tipo, err := ParseTipo(dto.Tipo)
	if err != nil {
		responderErro(w, err)
		return
	}
	vencimentos, err := ParseVencimentos(dto.Vencimentos)
	if err != nil {
		responderErro(w, err)
		return
	}

	c := &Conta{
		OrganizacaoID: auth.OrganizacaoDoContexto(r.Context()),
		Tipo:          tipo,
		ContraparteID: dto.ContraparteID,
		CategoriaID:   dto.CategoriaID,
		Observacoes:   dto.Observacoes,
	}
	criada, err := h.Svc.Criar(r.Context(), c, dto.ValorTotal, dto.QtdParcelas, vencimentos)
	if err != nil {
		responderErro(w, err)
		return
	}
	responderJSON(w, http.StatusCreated, criada)
}

// Listar trata GET /contas?tipo=. A resposta é cacheada por organização+tipo
// e invalidada por prefixo em qualquer mutação.
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	orgID := auth.OrganizacaoDoContexto(r.Context())
	tipo := r.URL.Query().Get("tipo")

	chave := cache.ChaveContas(orgID, tipo)
	if bruto, ok := h.Cache.Get(r.Context(), chave); ok {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(bruto))
		return
	}

	contas, err := h.Repo.Listar(orgID, Tipo(tipo))
	if err != nil {
		responderErro(w, err)
		return
	}
	corpo, err := json.Marshal(contas)
	if err != nil {
		responderErro(w, err)
		return
	}
	h.Cache.Set(r.Context(), chave, string(corpo), 5*time.Minute)
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(corpo)
}

// Buscar trata GET /contas/{id}.
func (h *Handler) Buscar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de conta inválido", http.StatusBadRequest)
		return
	}
	c, err := h.Repo.BuscarPorID(uint(id), auth.OrganizacaoDoContexto(r.Context()))
	if err != nil {
		responderErro(w, err)
		return
	}
	responderJSON(w, http.StatusOK, c)
}

// Excluir trata DELETE /contas/{id}.
func (h *Handler) Excluir(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de conta inválido", http.StatusBadRequest)
		return
	}
	if err := h.Svc.Excluir(r.Context(), uint(id), auth.OrganizacaoDoContexto(r.Context())); err != nil {
		responderErro(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Cancelar trata PATCH /contas/{id}/cancelar.
func (h *Handler) Cancelar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de conta inválido", http.StatusBadRequest)
		return
	}
	c, err := h.Svc.Cancelar(r.Context(), uint(id), auth.OrganizacaoDoContexto(r.Context()))
	if err != nil {
		responderErro(w, err)
		return
	}
	responderJSON(w, http.StatusOK, c)
}

// Recalcular trata PUT /contas/{id}/valor: muda o valor total e regenera as
// parcelas mantendo o cronograma.
func (h *Handler) Recalcular(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de conta inválido", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()
	var dto ValorDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	orgID := auth.OrganizacaoDoContexto(r.Context())
	if err := h.Svc.Recalcular(r.Context(), uint(id), orgID, dto.Valor); err != nil {
		responderErro(w, err)
		return
	}
	c, err := h.Repo.BuscarPorID(uint(id), orgID)
	if err != nil {
		responderErro(w, err)
		return
	}
	responderJSON(w, http.StatusOK, c)
}

// ExcluirParcela trata DELETE /contas/{id}/parcelas/{pid}.
func (h *Handler) ExcluirParcela(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err1 := strconv.Atoi(vars["id"])
	pid, err2 := strconv.Atoi(vars["pid"])
	if err1 != nil || err2 != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	c, err := h.Svc.ExcluirParcela(r.Context(), uint(id), uint(pid), auth.OrganizacaoDoContexto(r.Context()))
	if err != nil {
		responderErro(w, err)
		return
	}
	responderJSON(w, http.StatusOK, c)
}

// AtualizarValorParcela trata PUT /contas/{id}/parcelas/{pid}/valor.
func (h *Handler) AtualizarValorParcela(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err1 := strconv.Atoi(vars["id"])
	pid, err2 := strconv.Atoi(vars["pid"])
	if err1 != nil || err2 != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()
	var dto ValorDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	c, err := h.Svc.AtualizarValorParcela(r.Context(), uint(id), uint(pid), auth.OrganizacaoDoContexto(r.Context()), dto.Valor)
	if err != nil {
		responderErro(w, err)
		return
	}
	responderJSON(w, http.StatusOK, c)
}
