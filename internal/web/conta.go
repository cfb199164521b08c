package web

import (
	"net/http"
	"strings"

	"github.com/repositoriorpg/painel/internal/api"
	"github.com/repositoriorpg/painel/internal/auth"
	webmiddleware "github.com/repositoriorpg/painel/internal/web/middleware"
)

type formLoginDados struct {
	NomeUsuario string
	Manter      bool
}

type formCadastroDados struct {
	NomeUsuario string
}

// FormLogin apresenta a tela de acesso. Quem já está logado volta para a
// página inicial.
func (h *Handler) FormLogin(w http.ResponseWriter, r *http.Request) {
	if webmiddleware.SessaoAtual(r.Context()) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	p := h.novaPagina(w, r, "Acesso do Jogador")
	p.Dados = formLoginDados{}
	h.render.pagina(w, http.StatusOK, "login.html", p)
}

// Login autentica na API, decodifica o token e abre a sessão. "Manter
// conectado" decide se o cookie sobrevive ao navegador.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.erroPagina(w, r, http.StatusBadRequest, "Formulário inválido.")
		return
	}

	form := formLoginDados{
		NomeUsuario: strings.TrimSpace(r.PostFormValue("nome_usuario")),
		Manter:      r.PostFormValue("manter") != "",
	}

	cred := api.Credenciais{NomeUsuario: form.NomeUsuario, Senha: r.PostFormValue("senha")}
	token, err := h.api.Login(r.Context(), cred)
	if err == nil {
		err = h.sessoes.Abrir(w, r, token, form.Manter)
	}
	if err != nil {
		p := h.novaPagina(w, r, "Acesso do Jogador")
		p.Erro = "Erro: Nome de usuário ou senha incorretos."
		p.Dados = form
		h.render.pagina(w, http.StatusUnauthorized, "login.html", p)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Sair encerra a sessão e volta para o login.
func (h *Handler) Sair(w http.ResponseWriter, r *http.Request) {
	h.sessoes.Encerrar(w, r)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// FormCadastro apresenta a tela de criação de conta.
func (h *Handler) FormCadastro(w http.ResponseWriter, r *http.Request) {
	p := h.novaPagina(w, r, "Criar Nova Conta")
	p.Dados = formCadastroDados{}
	h.render.pagina(w, http.StatusOK, "cadastro.html", p)
}

// Cadastro registra a conta como JOGADOR após conferir a confirmação de
// senha localmente, sem chamar a API quando as senhas divergem.
func (h *Handler) Cadastro(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.erroPagina(w, r, http.StatusBadRequest, "Formulário inválido.")
		return
	}

	form := formCadastroDados{NomeUsuario: strings.TrimSpace(r.PostFormValue("nome_usuario"))}
	senha := r.PostFormValue("senha")
	confirmar := r.PostFormValue("confirmar_senha")

	erroLocal := ""
	switch {
	case form.NomeUsuario == "" || senha == "":
		erroLocal = "Preencha nome de usuário e senha."
	case senha != confirmar:
		erroLocal = "As senhas não coincidem."
	}

	if erroLocal == "" {
		input := api.CadastroInput{
			NomeUsuario: form.NomeUsuario,
			Senha:       senha,
			TipoUsuario: auth.TipoJogador,
		}
		if err := h.api.RegistrarUsuario(r.Context(), input); err != nil {
			erroLocal = api.MensagemDeErro(err)
		} else {
			definirFlash(w, "sucesso", "Usuário registrado com sucesso! Você já pode fazer o login.")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
	}

	p := h.novaPagina(w, r, "Criar Nova Conta")
	p.Erro = erroLocal
	p.Dados = form
	h.render.pagina(w, http.StatusOK, "cadastro.html", p)
}
