package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore guarda sessões em memória com expiração preguiçosa.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memEntry
}

type memEntry struct {
	sessao Sessao
	expira time.Time
}

// NewMemoryStore cria o armazenamento em memória.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memEntry)}
}

// Save grava a sessão com o prazo informado.
func (m *MemoryStore) Save(ctx context.Context, id string, s Sessao, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[id] = memEntry{sessao: s, expira: time.Now().Add(ttl)}

	for k, entry := range m.entries {
		if time.Now().After(entry.expira) {
			delete(m.entries, k)
		}
	}
	return nil
}

// Get devolve a sessão quando existe e não venceu.
func (m *MemoryStore) Get(ctx context.Context, id string) (Sessao, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[id]
	if !ok {
		return Sessao{}, ErrNaoEncontrada
	}
	if time.Now().After(entry.expira) {
		delete(m.entries, id)
		return Sessao{}, ErrNaoEncontrada
	}
	return entry.sessao, nil
}

// Delete descarta a sessão.
func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	return nil
}
