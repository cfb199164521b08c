package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/repositoriorpg/painel/internal/api"
	webmiddleware "github.com/repositoriorpg/painel/internal/web/middleware"
)

type listaCampanhasDados struct {
	Campanhas []api.Campanha
	Busca     string
}

type formCampanhaDados struct {
	Editando     bool
	ID           int
	Nome         string
	Descricao    string
	MestreDoJogo string
	DataInicio   string
	SistemaID    int
	Sistemas     []api.Sistema
}

type elencoDados struct {
	Campanha    api.Campanha
	Disponiveis []api.Personagem
}

// ListaCampanhas exibe todas as campanhas com filtro por nome.
func (h *Handler) ListaCampanhas(w http.ResponseWriter, r *http.Request) {
	p := h.novaPagina(w, r, "Campanhas")

	campanhas, err := h.api.ListarCampanhas(r.Context(), "")
	if err != nil {
		p.Erro = "Falha ao buscar campanhas."
		campanhas = nil
	}

	busca := r.URL.Query().Get("busca")
	p.Dados = listaCampanhasDados{
		Campanhas: filtraPorNome(campanhas, func(c api.Campanha) string { return c.Nome }, busca),
		Busca:     busca,
	}
	h.render.pagina(w, http.StatusOK, "campanhas.html", p)
}

// FichaCampanha exibe a campanha com seu elenco. Detalhes exigem login.
func (h *Handler) FichaCampanha(w http.ResponseWriter, r *http.Request) {
	sessao := webmiddleware.SessaoAtual(r.Context())
	if sessao == nil {
		h.erroPagina(w, r, http.StatusUnauthorized, "Você precisa estar logado para ver os detalhes de uma campanha.")
		return
	}

	id, err := idDaRota(r, "id")
	if err != nil {
		h.erroPagina(w, r, http.StatusNotFound, "Campanha não encontrada.")
		return
	}

	campanha, err := h.api.BuscarCampanha(r.Context(), sessao.Token, id)
	if err != nil {
		var apiErr *api.APIError
		if errors.As(err, &apiErr) {
			h.erroPagina(w, r, apiErr.Status, "Campanha não encontrada.")
			return
		}
		h.erroPagina(w, r, http.StatusBadGateway, api.MensagemDeErro(err))
		return
	}

	p := h.novaPagina(w, r, campanha.Nome)
	p.Dados = campanha
	h.render.pagina(w, http.StatusOK, "campanha_ficha.html", p)
}

// FormCampanha apresenta o formulário de campanha, pré-preenchido ao
// editar.
func (h *Handler) FormCampanha(w http.ResponseWriter, r *http.Request) {
	token := tokenDaSessao(r)
	sistemas, aviso := h.sistemasParaForm(r)

	form := formCampanhaDados{Sistemas: sistemas}
	titulo := "Adicionar Nova Campanha"

	if strings.Contains(r.URL.Path, "/editar") {
		id, err := idDaRota(r, "id")
		if err != nil {
			h.erroPagina(w, r, http.StatusNotFound, "Campanha não encontrada.")
			return
		}
		campanha, err := h.api.BuscarCampanha(r.Context(), token, id)
		if err != nil {
			h.erroPagina(w, r, http.StatusBadGateway, "Falha ao carregar dados da campanha.")
			return
		}
		form.Editando = true
		form.ID = campanha.ID
		form.Nome = campanha.Nome
		form.Descricao = campanha.Descricao
		form.MestreDoJogo = campanha.MestreDoJogo
		form.SistemaID = campanha.SistemaID
		if campanha.DataInicio != nil {
			form.DataInicio = campanha.DataInicio.Format("2006-01-02")
		}
		titulo = "Editar Campanha"
	}

	p := h.novaPagina(w, r, titulo)
	p.Erro = aviso
	p.Dados = form
	h.render.pagina(w, http.StatusOK, "campanha_form.html", p)
}

// SalvarCampanha cria ou atualiza a campanha conforme a rota.
func (h *Handler) SalvarCampanha(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.erroPagina(w, r, http.StatusBadRequest, "Formulário inválido.")
		return
	}

	form := formCampanhaDados{
		Nome:         strings.TrimSpace(r.PostFormValue("nome")),
		Descricao:    r.PostFormValue("descricao"),
		MestreDoJogo: strings.TrimSpace(r.PostFormValue("mestre_do_jogo")),
		DataInicio:   r.PostFormValue("data_inicio"),
	}
	form.SistemaID, _ = strconv.Atoi(r.PostFormValue("sistema_id"))

	editando := strings.Contains(r.URL.Path, "/editar")
	var id int
	if editando {
		var err error
		if id, err = idDaRota(r, "id"); err != nil {
			h.erroPagina(w, r, http.StatusNotFound, "Campanha não encontrada.")
			return
		}
		form.Editando = true
		form.ID = id
	}

	erroLocal := ""
	switch {
	case form.Nome == "":
		erroLocal = "O nome da campanha é obrigatório."
	case form.SistemaID == 0:
		erroLocal = "Selecione um sistema."
	}

	var dataInicio *time.Time
	if erroLocal == "" && form.DataInicio != "" {
		t, err := time.Parse("2006-01-02", form.DataInicio)
		if err != nil {
			erroLocal = "Data de início inválida."
		} else {
			dataInicio = &t
		}
	}

	if erroLocal == "" {
		input := api.CampanhaInput{
			Nome:         form.Nome,
			Descricao:    form.Descricao,
			MestreDoJogo: form.MestreDoJogo,
			DataInicio:   dataInicio,
			SistemaID:    form.SistemaID,
		}

		token := tokenDaSessao(r)
		var err error
		if editando {
			err = h.api.AtualizarCampanha(r.Context(), token, id, input)
		} else {
			_, err = h.api.CriarCampanha(r.Context(), token, input)
		}

		if err == nil {
			if editando {
				definirFlash(w, "sucesso", "Campanha atualizada com sucesso!")
			} else {
				definirFlash(w, "sucesso", "Campanha criada com sucesso!")
			}
			http.Redirect(w, r, "/campanhas", http.StatusSeeOther)
			return
		}
		erroLocal = api.MensagemDeErro(err)
	}

	var aviso string
	form.Sistemas, aviso = h.sistemasParaForm(r)
	if erroLocal == "" {
		erroLocal = aviso
	}
	titulo := "Adicionar Nova Campanha"
	if editando {
		titulo = "Editar Campanha"
	}
	p := h.novaPagina(w, r, titulo)
	p.Erro = erroLocal
	p.Dados = form
	h.render.pagina(w, http.StatusOK, "campanha_form.html", p)
}

// ExcluirCampanha remove a campanha e volta para a lista, que refaz a
// busca completa.
func (h *Handler) ExcluirCampanha(w http.ResponseWriter, r *http.Request) {
	id, err := idDaRota(r, "id")
	if err != nil {
		h.erroPagina(w, r, http.StatusNotFound, "Campanha não encontrada.")
		return
	}

	if err := h.api.ExcluirCampanha(r.Context(), tokenDaSessao(r), id); err != nil {
		definirFlash(w, "erro", "Falha ao excluir a campanha.")
	} else {
		definirFlash(w, "sucesso", "Campanha excluída com sucesso!")
	}
	http.Redirect(w, r, "/campanhas", http.StatusSeeOther)
}

// Elenco gerencia o vínculo campanha-personagens: a coluna de disponíveis
// é sempre o complemento do elenco atual.
func (h *Handler) Elenco(w http.ResponseWriter, r *http.Request) {
	id, err := idDaRota(r, "id")
	if err != nil {
		h.erroPagina(w, r, http.StatusNotFound, "Campanha não encontrada.")
		return
	}

	token := tokenDaSessao(r)
	campanha, err := h.api.BuscarCampanha(r.Context(), token, id)
	if err != nil {
		h.erroPagina(w, r, http.StatusBadGateway, "Falha ao carregar dados da campanha.")
		return
	}

	todos, err := h.api.ListarPersonagens(r.Context(), token)
	if err != nil {
		h.erroPagina(w, r, http.StatusBadGateway, "Falha ao carregar personagens.")
		return
	}

	p := h.novaPagina(w, r, "Gerenciar Personagens")
	p.Dados = elencoDados{
		Campanha:    campanha,
		Disponiveis: personagensDisponiveis(todos, campanha.Personagens),
	}
	h.render.pagina(w, http.StatusOK, "elenco.html", p)
}

// AdicionarAoElenco vincula um personagem e refaz a tela inteira.
func (h *Handler) AdicionarAoElenco(w http.ResponseWriter, r *http.Request) {
	id, err := idDaRota(r, "id")
	if err != nil {
		h.erroPagina(w, r, http.StatusNotFound, "Campanha não encontrada.")
		return
	}

	personagemID, err := strconv.Atoi(r.PostFormValue("personagem_id"))
	if err != nil {
		definirFlash(w, "erro", "Personagem inválido.")
		http.Redirect(w, r, fmt.Sprintf("/campanhas/%d/elenco", id), http.StatusSeeOther)
		return
	}

	if err := h.api.VincularPersonagem(r.Context(), tokenDaSessao(r), id, personagemID); err != nil {
		definirFlash(w, "erro", "Falha ao adicionar personagem.")
	} else {
		definirFlash(w, "sucesso", "Personagem adicionado!")
	}
	http.Redirect(w, r, fmt.Sprintf("/campanhas/%d/elenco", id), http.StatusSeeOther)
}

// RemoverDoElenco desvincula um personagem e refaz a tela inteira.
func (h *Handler) RemoverDoElenco(w http.ResponseWriter, r *http.Request) {
	id, err := idDaRota(r, "id")
	if err != nil {
		h.erroPagina(w, r, http.StatusNotFound, "Campanha não encontrada.")
		return
	}

	personagemID, err := idDaRota(r, "personagemId")
	if err != nil {
		definirFlash(w, "erro", "Personagem inválido.")
		http.Redirect(w, r, fmt.Sprintf("/campanhas/%d/elenco", id), http.StatusSeeOther)
		return
	}

	if err := h.api.DesvincularPersonagem(r.Context(), tokenDaSessao(r), id, personagemID); err != nil {
		definirFlash(w, "erro", "Falha ao remover personagem.")
	} else {
		definirFlash(w, "sucesso", "Personagem removido!")
	}
	http.Redirect(w, r, fmt.Sprintf("/campanhas/%d/elenco", id), http.StatusSeeOther)
}

// personagensDisponiveis calcula, por diferença de conjuntos sobre os ids,
// quais personagens ainda não fazem parte do elenco.
func personagensDisponiveis(todos []api.Personagem, elenco []api.PersonagemVinculo) []api.Personagem {
	noElenco := make(map[int]struct{}, len(elenco))
	for _, v := range elenco {
		noElenco[v.Personagem.ID] = struct{}{}
	}

	disponiveis := make([]api.Personagem, 0, len(todos))
	for _, p := range todos {
		if _, ok := noElenco[p.ID]; !ok {
			disponiveis = append(disponiveis, p)
		}
	}
	return disponiveis
}
