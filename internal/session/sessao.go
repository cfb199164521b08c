// Package session guarda a identidade decodificada e o token bruto entre
// requisições. O armazenamento durável é opcional: memória para uma única
// instância ou Redis quando o painel roda replicado.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/repositoriorpg/painel/internal/auth"
)

// ErrNaoEncontrada indica sessão ausente ou vencida no armazenamento.
var ErrNaoEncontrada = errors.New("sessão não encontrada")

// Sessao é o estado autenticado de um visitante.
type Sessao struct {
	Token   string       `json:"token"`
	Jogador auth.Jogador `json:"jogador"`
	Manter  bool         `json:"manter"`
}

// Store persiste sessões indexadas pelo id do cookie.
type Store interface {
	Save(ctx context.Context, id string, s Sessao, ttl time.Duration) error
	Get(ctx context.Context, id string) (Sessao, error)
	Delete(ctx context.Context, id string) error
}
