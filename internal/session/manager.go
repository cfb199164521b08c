package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/repositoriorpg/painel/internal/auth"
)

const cookieNome = "rpg_sessao"

// ttlNavegador limita sessões sem "manter conectado": o cookie morre com o
// navegador, mas a cópia no store precisa de um prazo próprio.
const ttlNavegador = 12 * time.Hour

// Manager emite e restaura sessões via cookie.
type Manager struct {
	store  Store
	ttl    time.Duration
	secure bool
}

// NewManager cria o gerenciador. ttl vale para sessões com "manter
// conectado"; secure marca o cookie para HTTPS.
func NewManager(store Store, ttl time.Duration, secure bool) *Manager {
	return &Manager{store: store, ttl: ttl, secure: secure}
}

// Abrir decodifica o token, grava a sessão e emite o cookie. Quando manter
// é falso o cookie expira com o navegador.
func (m *Manager) Abrir(w http.ResponseWriter, r *http.Request, token string, manter bool) error {
	jogador, err := auth.DecodeToken(token)
	if err != nil {
		return err
	}

	id := uuid.NewString()
	ttl := ttlNavegador
	if manter {
		ttl = m.ttl
	}

	s := Sessao{Token: token, Jogador: jogador, Manter: manter}
	if err := m.store.Save(r.Context(), id, s, ttl); err != nil {
		return err
	}

	cookie := &http.Cookie{
		Name:     cookieNome,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
	if manter {
		cookie.MaxAge = int(ttl / time.Second)
	}
	http.SetCookie(w, cookie)
	return nil
}

// Carregar restaura a sessão do cookie da requisição. Qualquer falha de
// decodificação do token persistido purga a cópia durável e degrada em
// silêncio para deslogado: restaurar nunca devolve erro ao chamador.
func (m *Manager) Carregar(w http.ResponseWriter, r *http.Request) *Sessao {
	cookie, err := r.Cookie(cookieNome)
	if err != nil || cookie.Value == "" {
		return nil
	}

	s, err := m.store.Get(r.Context(), cookie.Value)
	if err != nil {
		if !errors.Is(err, ErrNaoEncontrada) {
			log.Warn().Err(err).Msg("falha ao restaurar sessão")
		}
		m.limparCookie(w)
		return nil
	}

	jogador, err := auth.DecodeToken(s.Token)
	if err != nil {
		// Token corrompido ou vencido: purga e segue deslogado.
		_ = m.store.Delete(r.Context(), cookie.Value)
		m.limparCookie(w)
		return nil
	}

	s.Jogador = jogador
	return &s
}

// Encerrar apaga a sessão e expira o cookie.
func (m *Manager) Encerrar(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(cookieNome); err == nil && cookie.Value != "" {
		if err := m.store.Delete(r.Context(), cookie.Value); err != nil {
			log.Warn().Err(err).Msg("falha ao apagar sessão")
		}
	}
	m.limparCookie(w)
}

func (m *Manager) limparCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieNome,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
