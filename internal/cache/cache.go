// internal/cache/cache.go
package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Cache é o canal lateral chave-valor usado pelo dashboard e pelas listagens.
// Nunca é fonte de verdade: todo mutador invalida as chaves afetadas e o
// leitor recomputa no miss. A interface é injetada para que a implementação
// redis possa ser trocada sem tocar o núcleo.
type Cache interface {
	Get(ctx context.Context, chave string) (string, bool)
	Set(ctx context.Context, chave, valor string, ttl time.Duration)
	Delete(ctx context.Context, chave string)
	DeleteByPrefix(ctx context.Context, prefixo string)
}

/* ========================= Implementação em memória ========================= */

type entrada struct {
	valor  string
	expira time.Time
}

// Memoria é um Cache em memória de processo, com expiração por TTL.
// Usado em desenvolvimento e testes; em produção o padrão é Redis.
type Memoria struct {
	mu    sync.RWMutex
	itens map[string]entrada
}

func NewMemoria() *Memoria {
	return &Memoria{itens: make(map[string]entrada)}
}

func (m *Memoria) Get(_ context.Context, chave string) (string, bool) {
	m.mu.RLock()
	e, ok := m.itens[chave]
	m.mu.RUnlock()
	if !ok || time.Now().After(e.expira) {
		return "", false
	}
	return e.valor, true
}

func (m *Memoria) Set(_ context.Context, chave, valor string, ttl time.Duration) {
	m.mu.Lock()
	m.itens[chave] = entrada{valor: valor, expira: time.Now().Add(ttl)}
	m.mu.Unlock()
}

func (m *Memoria) Delete(_ context.Context, chave string) {
	m.mu.Lock()
	delete(m.itens, chave)
	m.mu.Unlock()
}

func (m *Memoria) DeleteByPrefix(_ context.Context, prefixo string) {
	m.mu.Lock()
	for k := range m.itens {
		if strings.HasPrefix(k, prefixo) {
			delete(m.itens, k)
		}
	}
	m.mu.Unlock()
}
