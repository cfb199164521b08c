package web

import (
	"net/http"
	"strings"

	"github.com/repositoriorpg/painel/internal/api"
)

type listaSistemasDados struct {
	Sistemas []api.Sistema
	Busca    string
}

type formSistemaDados struct {
	Editando bool
	ID       int
	Nome     string
}

// ListaSistemas exibe os sistemas de jogo com filtro por nome.
func (h *Handler) ListaSistemas(w http.ResponseWriter, r *http.Request) {
	p := h.novaPagina(w, r, "Sistemas de RPG")

	sistemas, err := h.api.ListarSistemas(r.Context(), "")
	if err != nil {
		p.Erro = "Falha ao buscar sistemas."
		sistemas = nil
	}

	busca := r.URL.Query().Get("busca")
	p.Dados = listaSistemasDados{
		Sistemas: filtraPorNome(sistemas, func(s api.Sistema) string { return s.Nome }, busca),
		Busca:    busca,
	}
	h.render.pagina(w, http.StatusOK, "sistemas.html", p)
}

// FormSistema apresenta o formulário de sistema. A API não expõe busca por
// id, então a edição localiza o sistema dentro da lista completa.
func (h *Handler) FormSistema(w http.ResponseWriter, r *http.Request) {
	form := formSistemaDados{}
	titulo := "Adicionar Novo Sistema"

	if strings.Contains(r.URL.Path, "/editar") {
		id, err := idDaRota(r, "id")
		if err != nil {
			h.erroPagina(w, r, http.StatusNotFound, "Sistema não encontrado.")
			return
		}
		sistemas, err := h.api.ListarSistemas(r.Context(), tokenDaSessao(r))
		if err != nil {
			h.erroPagina(w, r, http.StatusBadGateway, "Falha ao carregar dados do sistema.")
			return
		}
		for _, s := range sistemas {
			if s.ID == id {
				form.Editando = true
				form.ID = s.ID
				form.Nome = s.Nome
				break
			}
		}
		if !form.Editando {
			h.erroPagina(w, r, http.StatusNotFound, "Sistema não encontrado.")
			return
		}
		titulo = "Editar Sistema"
	}

	p := h.novaPagina(w, r, titulo)
	p.Dados = form
	h.render.pagina(w, http.StatusOK, "sistema_form.html", p)
}

// SalvarSistema cria ou renomeia o sistema conforme a rota.
func (h *Handler) SalvarSistema(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.erroPagina(w, r, http.StatusBadRequest, "Formulário inválido.")
		return
	}

	form := formSistemaDados{Nome: strings.TrimSpace(r.PostFormValue("nome"))}
	editando := strings.Contains(r.URL.Path, "/editar")
	titulo := "Adicionar Novo Sistema"

	var id int
	if editando {
		var err error
		if id, err = idDaRota(r, "id"); err != nil {
			h.erroPagina(w, r, http.StatusNotFound, "Sistema não encontrado.")
			return
		}
		form.Editando = true
		form.ID = id
		titulo = "Editar Sistema"
	}

	erroLocal := ""
	if form.Nome == "" {
		erroLocal = "O nome do sistema é obrigatório."
	}

	if erroLocal == "" {
		input := api.SistemaInput{Nome: form.Nome}
		token := tokenDaSessao(r)

		var err error
		if editando {
			err = h.api.AtualizarSistema(r.Context(), token, id, input)
		} else {
			err = h.api.CriarSistema(r.Context(), token, input)
		}

		if err == nil {
			if editando {
				definirFlash(w, "sucesso", "Sistema atualizado com sucesso!")
			} else {
				definirFlash(w, "sucesso", "Sistema criado com sucesso!")
			}
			http.Redirect(w, r, "/sistemas", http.StatusSeeOther)
			return
		}
		erroLocal = api.MensagemDeErro(err)
	}

	p := h.novaPagina(w, r, titulo)
	p.Erro = erroLocal
	p.Dados = form
	h.render.pagina(w, http.StatusOK, "sistema_form.html", p)
}

// ExcluirSistema remove o sistema e volta para a lista.
func (h *Handler) ExcluirSistema(w http.ResponseWriter, r *http.Request) {
	id, err := idDaRota(r, "id")
	if err != nil {
		h.erroPagina(w, r, http.StatusNotFound, "Sistema não encontrado.")
		return
	}

	if err := h.api.ExcluirSistema(r.Context(), tokenDaSessao(r), id); err != nil {
		definirFlash(w, "erro", "Falha ao excluir o sistema.")
	} else {
		definirFlash(w, "sucesso", "Sistema excluído com sucesso!")
	}
	http.Redirect(w, r, "/sistemas", http.StatusSeeOther)
}
