package web

import (
	"net/http"
	"net/url"
	"strings"
)

const cookieFlash = "rpg_flash"

// flash é uma notificação de uso único exibida após um redirect, o
// equivalente dos toasts da interface.
type flash struct {
	Tipo     string // "sucesso" ou "erro"
	Mensagem string
}

func definirFlash(w http.ResponseWriter, tipo, mensagem string) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieFlash,
		Value:    url.QueryEscape(tipo + "|" + mensagem),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func consumirFlash(w http.ResponseWriter, r *http.Request) *flash {
	cookie, err := r.Cookie(cookieFlash)
	if err != nil || cookie.Value == "" {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     cookieFlash,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	valor, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return nil
	}
	tipo, mensagem, ok := strings.Cut(valor, "|")
	if !ok || mensagem == "" {
		return nil
	}
	return &flash{Tipo: tipo, Mensagem: mensagem}
}
