// Package web serve as telas HTML do painel. Cada tela carrega seus dados
// da API no início da requisição e toda mutação redireciona para uma nova
// busca completa, de modo que as listas sempre refletem o estado do
// servidor.
package web

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/repositoriorpg/painel/internal/api"
	"github.com/repositoriorpg/painel/internal/config"
	"github.com/repositoriorpg/painel/internal/session"
	webmiddleware "github.com/repositoriorpg/painel/internal/web/middleware"
)

// Handler orquestra as telas do painel.
type Handler struct {
	api     *api.Client
	sessoes *session.Manager
	render  *renderizador
}

// NewRouter devolve o roteador configurado com todas as telas.
func NewRouter(cfg *config.Config, apiClient *api.Client, sessoes *session.Manager) (http.Handler, error) {
	render, err := novoRenderizador()
	if err != nil {
		return nil, err
	}

	h := &Handler{api: apiClient, sessoes: sessoes, render: render}

	publicLimiter := webmiddleware.NewRateLimiter(cfg.RateLimitPublic.RequestsPerSecond, cfg.RateLimitPublic.Burst)
	authLimiter := webmiddleware.NewRateLimiter(cfg.RateLimitAuth.RequestsPerSecond, cfg.RateLimitAuth.Burst)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	// Sessão antes do log para a identidade aparecer na linha de log.
	r.Use(webmiddleware.Sessao(sessoes))
	r.Use(webmiddleware.Logging)
	r.Use(webmiddleware.Recover)

	r.Group(func(public chi.Router) {
		public.Use(webmiddleware.IPRateLimit(publicLimiter))

		public.Get("/", h.ListaPersonagens)
		public.Get("/personagem/{personagemId}", h.FichaPersonagem)
		public.Get("/campanhas", h.ListaCampanhas)
		public.Get("/campanhas/{id}", h.FichaCampanha)
		public.Get("/sistemas", h.ListaSistemas)

		public.Get("/login", h.FormLogin)
		public.Post("/login", h.Login)
		public.Get("/cadastro", h.FormCadastro)
		public.Post("/cadastro", h.Cadastro)
	})

	r.Group(func(logado chi.Router) {
		logado.Use(webmiddleware.RequireLogin)
		logado.Use(webmiddleware.UserRateLimit(authLimiter))

		logado.Get("/personagens/meus", h.MeusPersonagens)
		logado.Get("/personagem/criar", h.FormCriarPersonagem)
		logado.Post("/personagem/criar", h.CriarPersonagem)
		logado.Get("/personagem/{personagemId}/editar", h.FormEditarPersonagem)
		logado.Post("/personagem/{personagemId}/editar", h.EditarPersonagem)
		logado.Post("/personagem/{personagemId}/excluir", h.ExcluirPersonagem)
		logado.Post("/sair", h.Sair)
	})

	r.Group(func(admin chi.Router) {
		admin.Use(webmiddleware.RequireAdmin)
		admin.Use(webmiddleware.UserRateLimit(authLimiter))

		admin.Get("/admin", h.Dashboard)
		admin.Get("/admin/usuarios", h.ListaUsuarios)
		admin.Get("/admin/usuarios/{id}/editar", h.FormEditarUsuario)
		admin.Post("/admin/usuarios/{id}/editar", h.EditarUsuario)
		admin.Get("/admin/usuarios/{id}/logs", h.AtividadesUsuario)

		admin.Get("/campanhas/criar", h.FormCampanha)
		admin.Post("/campanhas/criar", h.SalvarCampanha)
		admin.Get("/campanhas/{id}/editar", h.FormCampanha)
		admin.Post("/campanhas/{id}/editar", h.SalvarCampanha)
		admin.Post("/campanhas/{id}/excluir", h.ExcluirCampanha)
		admin.Get("/campanhas/{id}/elenco", h.Elenco)
		admin.Post("/campanhas/{id}/elenco/adicionar", h.AdicionarAoElenco)
		admin.Post("/campanhas/{id}/elenco/remover/{personagemId}", h.RemoverDoElenco)

		admin.Get("/sistemas/criar", h.FormSistema)
		admin.Post("/sistemas/criar", h.SalvarSistema)
		admin.Get("/sistemas/{id}/editar", h.FormSistema)
		admin.Post("/sistemas/{id}/editar", h.SalvarSistema)
		admin.Post("/sistemas/{id}/excluir", h.ExcluirSistema)
	})

	return r, nil
}

// idDaRota lê um parâmetro numérico da rota.
func idDaRota(r *http.Request, nome string) (int, error) {
	return strconv.Atoi(chi.URLParam(r, nome))
}

// tokenDaSessao devolve o token da sessão atual, ou vazio para visitantes.
func tokenDaSessao(r *http.Request) string {
	if s := webmiddleware.SessaoAtual(r.Context()); s != nil {
		return s.Token
	}
	return ""
}

// sistemasParaForm carrega os sistemas do select dos formulários. Em caso
// de falha devolve um aviso para a tela em vez de um select vazio mudo.
func (h *Handler) sistemasParaForm(r *http.Request) ([]api.Sistema, string) {
	sistemas, err := h.api.ListarSistemas(r.Context(), tokenDaSessao(r))
	if err != nil {
		return nil, "Falha ao carregar a lista de sistemas."
	}
	return sistemas, ""
}
