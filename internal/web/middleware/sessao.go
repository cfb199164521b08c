package middleware

import (
	"context"
	"net/http"

	"github.com/repositoriorpg/painel/internal/session"
)

type contextKey string

const contextKeySessao contextKey = "sessao"

// Sessao restaura a sessão do cookie e a injeta no contexto. Requisições
// sem sessão válida seguem normalmente, como visitantes.
func Sessao(manager *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if s := manager.Carregar(w, r); s != nil {
				ctx := context.WithValue(r.Context(), contextKeySessao, s)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SessaoAtual recupera a sessão do contexto, ou nil para visitantes.
func SessaoAtual(ctx context.Context) *session.Sessao {
	s, _ := ctx.Value(contextKeySessao).(*session.Sessao)
	return s
}

// RequireLogin redireciona visitantes para a tela de login.
func RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if SessaoAtual(r.Context()) == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin protege a subárvore administrativa: quem não é ADMIN volta
// para a página inicial antes de qualquer busca de dados acontecer.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := SessaoAtual(r.Context())
		if s == nil || !s.Jogador.Admin() {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
