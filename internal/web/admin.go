package web

import (
	"net/http"
	"strings"

	"github.com/repositoriorpg/painel/internal/api"
	"github.com/repositoriorpg/painel/internal/auth"
)

type dashboardDados struct {
	Stats  api.DashboardStats
	Barras []barraDados
}

// barraDados alimenta o gráfico de barras renderizado no servidor; Largura
// é o percentual relativo ao maior total.
type barraDados struct {
	Nome    string
	Total   int
	Largura int
}

type formUsuarioDados struct {
	ID          int
	NomeUsuario string
	TipoUsuario string
	Tipos       []string
}

type atividadesDados struct {
	UsuarioID  int
	Atividades []api.Atividade
}

// Dashboard exibe os agregados do repositório e as últimas atividades.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.api.Dashboard(r.Context(), tokenDaSessao(r))
	if err != nil {
		h.erroPagina(w, r, http.StatusBadGateway, "Falha ao carregar o dashboard.")
		return
	}

	p := h.novaPagina(w, r, "Dashboard")
	p.Dados = dashboardDados{
		Stats: stats,
		Barras: barras([]barraDados{
			{Nome: "Usuários", Total: stats.TotalUsuarios},
			{Nome: "Personagens", Total: stats.TotalPersonagens},
			{Nome: "Campanhas", Total: stats.TotalCampanhas},
			{Nome: "Sistemas", Total: stats.TotalSistemas},
		}),
	}
	h.render.pagina(w, http.StatusOK, "dashboard.html", p)
}

func barras(itens []barraDados) []barraDados {
	maior := 0
	for _, b := range itens {
		if b.Total > maior {
			maior = b.Total
		}
	}
	if maior == 0 {
		return itens
	}
	for i := range itens {
		itens[i].Largura = itens[i].Total * 100 / maior
	}
	return itens
}

// ListaUsuarios exibe todas as contas para o administrador.
func (h *Handler) ListaUsuarios(w http.ResponseWriter, r *http.Request) {
	p := h.novaPagina(w, r, "Usuários")

	usuarios, err := h.api.ListarUsuarios(r.Context(), tokenDaSessao(r))
	if err != nil {
		p.Erro = "Falha ao buscar usuários."
		usuarios = nil
	}

	p.Dados = usuarios
	h.render.pagina(w, http.StatusOK, "usuarios.html", p)
}

// FormEditarUsuario carrega a conta e pré-preenche o formulário.
func (h *Handler) FormEditarUsuario(w http.ResponseWriter, r *http.Request) {
	id, err := idDaRota(r, "id")
	if err != nil {
		h.erroPagina(w, r, http.StatusNotFound, "Usuário não encontrado.")
		return
	}

	usuario, err := h.api.BuscarUsuario(r.Context(), tokenDaSessao(r), id)
	if err != nil {
		h.erroPagina(w, r, http.StatusBadGateway, "Falha ao carregar o usuário.")
		return
	}

	p := h.novaPagina(w, r, "Editar Usuário")
	p.Dados = formUsuarioDados{
		ID:          usuario.ID,
		NomeUsuario: usuario.NomeUsuario,
		TipoUsuario: usuario.TipoUsuario,
		Tipos:       []string{auth.TipoJogador, auth.TipoAdmin},
	}
	h.render.pagina(w, http.StatusOK, "usuario_form.html", p)
}

// EditarUsuario sobrescreve nome e papel da conta.
func (h *Handler) EditarUsuario(w http.ResponseWriter, r *http.Request) {
	id, err := idDaRota(r, "id")
	if err != nil {
		h.erroPagina(w, r, http.StatusNotFound, "Usuário não encontrado.")
		return
	}

	if err := r.ParseForm(); err != nil {
		h.erroPagina(w, r, http.StatusBadRequest, "Formulário inválido.")
		return
	}

	form := formUsuarioDados{
		ID:          id,
		NomeUsuario: strings.TrimSpace(r.PostFormValue("nome_usuario")),
		TipoUsuario: r.PostFormValue("tipo_usuario"),
		Tipos:       []string{auth.TipoJogador, auth.TipoAdmin},
	}

	erroLocal := ""
	switch {
	case form.NomeUsuario == "":
		erroLocal = "O nome de usuário é obrigatório."
	case form.TipoUsuario != auth.TipoJogador && form.TipoUsuario != auth.TipoAdmin:
		erroLocal = "Tipo de usuário inválido."
	}

	if erroLocal == "" {
		input := api.UsuarioInput{NomeUsuario: form.NomeUsuario, TipoUsuario: form.TipoUsuario}
		if err := h.api.AtualizarUsuario(r.Context(), tokenDaSessao(r), id, input); err != nil {
			erroLocal = api.MensagemDeErro(err)
		} else {
			definirFlash(w, "sucesso", "Usuário atualizado com sucesso!")
			http.Redirect(w, r, "/admin/usuarios", http.StatusSeeOther)
			return
		}
	}

	p := h.novaPagina(w, r, "Editar Usuário")
	p.Erro = erroLocal
	p.Dados = form
	h.render.pagina(w, http.StatusOK, "usuario_form.html", p)
}

// AtividadesUsuario exibe o log somente-leitura de um usuário.
func (h *Handler) AtividadesUsuario(w http.ResponseWriter, r *http.Request) {
	id, err := idDaRota(r, "id")
	if err != nil {
		h.erroPagina(w, r, http.StatusNotFound, "Usuário não encontrado.")
		return
	}

	atividades, err := h.api.ListarAtividades(r.Context(), tokenDaSessao(r), id)
	p := h.novaPagina(w, r, "Log de Atividades")
	if err != nil {
		p.Erro = "Falha ao buscar o log de atividades."
		atividades = nil
	}

	p.Dados = atividadesDados{UsuarioID: id, Atividades: atividades}
	h.render.pagina(w, http.StatusOK, "atividades.html", p)
}
