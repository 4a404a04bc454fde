// internal/auth/middleware.go
package auth

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const (
	CtxUserID        ctxKey = "usuarioID"
	CtxOrganizacaoID ctxKey = "organizacaoID"
	CtxAdmin         ctxKey = "admin"
)

// Middleware valida o Bearer token e injeta usuário/organização no contexto.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		h := r.Header.Get("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			http.Error(w, "Token ausente", http.StatusUnauthorized)
			return
		}
		raw := strings.TrimPrefix(h, "Bearer ")
		claims, err := ValidarToken(raw)
		if err != nil {
			http.Error(w, "Token inválido", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), CtxUserID, claims.UserID)
		ctx = context.WithValue(ctx, CtxOrganizacaoID, claims.OrganizacaoID)
		ctx = context.WithValue(ctx, CtxAdmin, claims.Admin)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OrganizacaoDoContexto extrai a organização autenticada do contexto.
func OrganizacaoDoContexto(ctx context.Context) uint {
	v, _ := ctx.Value(CtxOrganizacaoID).(uint)
	return v
}
