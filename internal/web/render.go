package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/repositoriorpg/painel/internal/auth"
	webmiddleware "github.com/repositoriorpg/painel/internal/web/middleware"
)

//go:embed templates/*.html
var templatesFS embed.FS

// pagina é o dado comum passado ao layout; Dados carrega o conteúdo
// específico de cada tela.
type pagina struct {
	Titulo  string
	Jogador *auth.Jogador
	Flash   *flash
	Erro    string
	Dados   any
}

type renderizador struct {
	paginas map[string]*template.Template
}

var funcoesTemplate = template.FuncMap{
	"dataHora": func(t time.Time) string {
		return t.Local().Format("02/01/2006 15:04")
	},
	"data": func(t time.Time) string {
		return t.Format("02/01/2006")
	},
}

func novoRenderizador() (*renderizador, error) {
	nomes, err := fs.Glob(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("templates: %w", err)
	}

	paginas := make(map[string]*template.Template)
	for _, nome := range nomes {
		base := path.Base(nome)
		if base == "layout.html" {
			continue
		}
		t, err := template.New("layout.html").Funcs(funcoesTemplate).
			ParseFS(templatesFS, "templates/layout.html", nome)
		if err != nil {
			return nil, fmt.Errorf("template %s: %w", base, err)
		}
		paginas[base] = t
	}
	return &renderizador{paginas: paginas}, nil
}

func (rz *renderizador) pagina(w http.ResponseWriter, status int, nome string, dados *pagina) {
	t, ok := rz.paginas[nome]
	if !ok {
		log.Error().Str("template", nome).Msg("template desconhecido")
		http.Error(w, "erro interno", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := t.Execute(w, dados); err != nil {
		log.Error().Err(err).Str("template", nome).Msg("falha ao renderizar")
	}
}

// novaPagina monta o dado comum da tela, consumindo o flash pendente.
func (h *Handler) novaPagina(w http.ResponseWriter, r *http.Request, titulo string) *pagina {
	p := &pagina{Titulo: titulo, Flash: consumirFlash(w, r)}
	if s := webmiddleware.SessaoAtual(r.Context()); s != nil {
		jogador := s.Jogador
		p.Jogador = &jogador
	}
	return p
}

// erroPagina renderiza a tela genérica de erro com a mensagem dada.
func (h *Handler) erroPagina(w http.ResponseWriter, r *http.Request, status int, mensagem string) {
	p := h.novaPagina(w, r, "Erro")
	p.Erro = mensagem
	h.render.pagina(w, status, "erro.html", p)
}
