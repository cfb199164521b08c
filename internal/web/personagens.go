package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/repositoriorpg/painel/internal/api"
	webmiddleware "github.com/repositoriorpg/painel/internal/web/middleware"
)

type listaPersonagensDados struct {
	Personagens []api.Personagem
	Busca       string
	Meus        bool
}

type fichaPersonagemDados struct {
	Personagem  api.Personagem
	NomeSistema string
	Atributos   string
	PodeEditar  bool
}

type formPersonagemDados struct {
	Editando      bool
	ID            int
	Nome          string
	Raca          string
	Descricao     string
	SistemaID     int
	AtributosJSON string
	Sistemas      []api.Sistema
}

// ListaPersonagens é a tela inicial: todos os personagens, com filtro por
// nome recalculado a cada busca.
func (h *Handler) ListaPersonagens(w http.ResponseWriter, r *http.Request) {
	p := h.novaPagina(w, r, "Personagens em Destaque")

	personagens, err := h.api.ListarPersonagens(r.Context(), "")
	if err != nil {
		p.Erro = "Falha ao buscar personagens."
		personagens = nil
	}

	busca := r.URL.Query().Get("busca")
	p.Dados = listaPersonagensDados{
		Personagens: filtraPorNome(personagens, func(pg api.Personagem) string { return pg.Nome }, busca),
		Busca:       busca,
	}
	h.render.pagina(w, http.StatusOK, "personagens.html", p)
}

// MeusPersonagens restringe a lista aos personagens do jogador logado.
func (h *Handler) MeusPersonagens(w http.ResponseWriter, r *http.Request) {
	sessao := webmiddleware.SessaoAtual(r.Context())
	p := h.novaPagina(w, r, "Meus Personagens")

	personagens, err := h.api.ListarPersonagens(r.Context(), sessao.Token)
	if err != nil {
		p.Erro = "Falha ao buscar personagens."
		personagens = nil
	}

	meus := make([]api.Personagem, 0, len(personagens))
	for _, pg := range personagens {
		if pg.UsuarioID == sessao.Jogador.UsuarioID {
			meus = append(meus, pg)
		}
	}

	busca := r.URL.Query().Get("busca")
	p.Dados = listaPersonagensDados{
		Personagens: filtraPorNome(meus, func(pg api.Personagem) string { return pg.Nome }, busca),
		Busca:       busca,
		Meus:        true,
	}
	h.render.pagina(w, http.StatusOK, "personagens.html", p)
}

// FichaPersonagem exibe a ficha, resolvendo o nome do sistema a partir da
// lista de sistemas, já que a ficha carrega apenas a chave estrangeira.
func (h *Handler) FichaPersonagem(w http.ResponseWriter, r *http.Request) {
	id, err := idDaRota(r, "personagemId")
	if err != nil {
		h.erroPagina(w, r, http.StatusNotFound, "Personagem não encontrado.")
		return
	}

	personagem, err := h.api.BuscarPersonagem(r.Context(), "", id)
	if err != nil {
		var apiErr *api.APIError
		if errors.As(err, &apiErr) {
			h.erroPagina(w, r, apiErr.Status, "Personagem não encontrado.")
			return
		}
		h.erroPagina(w, r, http.StatusBadGateway, api.MensagemDeErro(err))
		return
	}

	sistemas, err := h.api.ListarSistemas(r.Context(), "")
	if err != nil {
		h.erroPagina(w, r, http.StatusBadGateway, "Não foi possível carregar os sistemas.")
		return
	}

	nomeSistema := "Sistema não identificado"
	for _, s := range sistemas {
		if s.ID == personagem.SistemaID {
			nomeSistema = s.Nome
			break
		}
	}

	dados := fichaPersonagemDados{
		Personagem:  personagem,
		NomeSistema: nomeSistema,
		Atributos:   atributosLegiveis(personagem.Atributos),
	}
	if sessao := webmiddleware.SessaoAtual(r.Context()); sessao != nil {
		dados.PodeEditar = sessao.Jogador.UsuarioID == personagem.UsuarioID
	}

	p := h.novaPagina(w, r, personagem.Nome)
	p.Dados = dados
	h.render.pagina(w, http.StatusOK, "personagem_ficha.html", p)
}

// FormCriarPersonagem apresenta o formulário em branco.
func (h *Handler) FormCriarPersonagem(w http.ResponseWriter, r *http.Request) {
	sistemas, aviso := h.sistemasParaForm(r)

	p := h.novaPagina(w, r, "Adicionar um Novo Personagem")
	p.Erro = aviso
	p.Dados = formPersonagemDados{Sistemas: sistemas}
	h.render.pagina(w, http.StatusOK, "personagem_form.html", p)
}

// CriarPersonagem valida e envia o novo personagem para a API.
func (h *Handler) CriarPersonagem(w http.ResponseWriter, r *http.Request) {
	form, erroLocal := h.lerFormPersonagem(r)

	if erroLocal == "" {
		input, erro := form.input()
		if erro != "" {
			erroLocal = erro
		} else {
			criado, err := h.api.CriarPersonagem(r.Context(), tokenDaSessao(r), input)
			if err != nil {
				erroLocal = api.MensagemDeErro(err)
			} else {
				definirFlash(w, "sucesso", "Personagem criado com sucesso!")
				http.Redirect(w, r, fmt.Sprintf("/personagem/%d", criado.ID), http.StatusSeeOther)
				return
			}
		}
	}

	var aviso string
	form.Sistemas, aviso = h.sistemasParaForm(r)
	if erroLocal == "" {
		erroLocal = aviso
	}
	p := h.novaPagina(w, r, "Adicionar um Novo Personagem")
	p.Erro = erroLocal
	p.Dados = form
	h.render.pagina(w, http.StatusOK, "personagem_form.html", p)
}

// FormEditarPersonagem carrega a ficha existente e pré-preenche o
// formulário, com os atributos serializados de volta para texto.
func (h *Handler) FormEditarPersonagem(w http.ResponseWriter, r *http.Request) {
	id, err := idDaRota(r, "personagemId")
	if err != nil {
		h.erroPagina(w, r, http.StatusNotFound, "Personagem não encontrado.")
		return
	}

	token := tokenDaSessao(r)
	personagem, err := h.api.BuscarPersonagem(r.Context(), token, id)
	if err != nil {
		h.erroPagina(w, r, http.StatusBadGateway, "Falha ao carregar dados do personagem.")
		return
	}

	sistemas, aviso := h.sistemasParaForm(r)

	p := h.novaPagina(w, r, "Editar Personagem")
	p.Erro = aviso
	p.Dados = formPersonagemDados{
		Editando:      true,
		ID:            personagem.ID,
		Nome:          personagem.Nome,
		Raca:          personagem.Raca,
		Descricao:     personagem.Descricao,
		SistemaID:     personagem.SistemaID,
		AtributosJSON: atributosLegiveis(personagem.Atributos),
		Sistemas:      sistemas,
	}
	h.render.pagina(w, http.StatusOK, "personagem_form.html", p)
}

// EditarPersonagem valida e sobrescreve a ficha na API.
func (h *Handler) EditarPersonagem(w http.ResponseWriter, r *http.Request) {
	id, err := idDaRota(r, "personagemId")
	if err != nil {
		h.erroPagina(w, r, http.StatusNotFound, "Personagem não encontrado.")
		return
	}

	form, erroLocal := h.lerFormPersonagem(r)
	form.Editando = true
	form.ID = id

	if erroLocal == "" {
		input, erro := form.input()
		if erro != "" {
			erroLocal = erro
		} else if err := h.api.AtualizarPersonagem(r.Context(), tokenDaSessao(r), id, input); err != nil {
			erroLocal = api.MensagemDeErro(err)
		} else {
			definirFlash(w, "sucesso", "Personagem atualizado com sucesso!")
			http.Redirect(w, r, fmt.Sprintf("/personagem/%d", id), http.StatusSeeOther)
			return
		}
	}

	var aviso string
	form.Sistemas, aviso = h.sistemasParaForm(r)
	if erroLocal == "" {
		erroLocal = aviso
	}
	p := h.novaPagina(w, r, "Editar Personagem")
	p.Erro = erroLocal
	p.Dados = form
	h.render.pagina(w, http.StatusOK, "personagem_form.html", p)
}

// ExcluirPersonagem remove a ficha e volta para a lista.
func (h *Handler) ExcluirPersonagem(w http.ResponseWriter, r *http.Request) {
	id, err := idDaRota(r, "personagemId")
	if err != nil {
		h.erroPagina(w, r, http.StatusNotFound, "Personagem não encontrado.")
		return
	}

	if err := h.api.ExcluirPersonagem(r.Context(), tokenDaSessao(r), id); err != nil {
		definirFlash(w, "erro", "Falha ao excluir o personagem.")
		http.Redirect(w, r, fmt.Sprintf("/personagem/%d", id), http.StatusSeeOther)
		return
	}

	definirFlash(w, "sucesso", "Personagem excluído com sucesso!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) lerFormPersonagem(r *http.Request) (formPersonagemDados, string) {
	if err := r.ParseForm(); err != nil {
		return formPersonagemDados{}, "Formulário inválido."
	}

	form := formPersonagemDados{
		Nome:          strings.TrimSpace(r.PostFormValue("nome")),
		Raca:          strings.TrimSpace(r.PostFormValue("raca")),
		Descricao:     r.PostFormValue("descricao"),
		AtributosJSON: r.PostFormValue("atributos"),
	}
	form.SistemaID, _ = strconv.Atoi(r.PostFormValue("sistema_id"))

	if form.Nome == "" {
		return form, "O nome do personagem é obrigatório."
	}
	return form, ""
}

// input converte o formulário no corpo da API, coagindo sistema_id para
// número e validando o JSON livre de atributos antes de qualquer chamada
// de rede.
func (f formPersonagemDados) input() (api.PersonagemInput, string) {
	input := api.PersonagemInput{
		Nome:      f.Nome,
		Raca:      f.Raca,
		Descricao: f.Descricao,
		SistemaID: f.SistemaID,
	}

	if input.SistemaID == 0 {
		return input, "Selecione um sistema."
	}

	texto := strings.TrimSpace(f.AtributosJSON)
	if texto != "" {
		if !json.Valid([]byte(texto)) {
			return input, "O texto inserido no campo 'Atributos' não é um JSON válido."
		}
		input.Atributos = json.RawMessage(texto)
	}
	return input, ""
}

// atributosLegiveis devolve o bloco opaco de atributos como JSON indentado
// para exibição e edição em texto livre.
func atributosLegiveis(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}
