package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDoEnviaBearerEContentType(t *testing.T) {
	var recebido *http.Request
	var corpo []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recebido = r.Clone(context.Background())
		corpo, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"id":1}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := c.CriarSistema(context.Background(), "token-abc", SistemaInput{Nome: "D&D"}); err != nil {
		t.Fatalf("CriarSistema: %v", err)
	}

	if got := recebido.Header.Get("Authorization"); got != "Bearer token-abc" {
		t.Errorf("Authorization = %q", got)
	}
	if got := recebido.Header.Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q", got)
	}

	var payload SistemaInput
	if err := json.Unmarshal(corpo, &payload); err != nil {
		t.Fatalf("corpo inválido: %v", err)
	}
	if payload.Nome != "D&D" {
		t.Errorf("nome = %q", payload.Nome)
	}
}

func TestDoSemTokenNaoEnviaAuthorization(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c, _ := New(srv.URL, 0)
	if _, err := c.ListarPersonagens(context.Background(), ""); err != nil {
		t.Fatalf("ListarPersonagens: %v", err)
	}
	if auth != "" {
		t.Errorf("Authorization = %q, esperado vazio", auth)
	}
}

func TestErroComEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"erro":"nome obrigatório"}`))
	}))
	defer srv.Close()

	c, _ := New(srv.URL, 0)
	_, err := c.CriarPersonagem(context.Background(), "t", PersonagemInput{})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, esperado *APIError", err)
	}
	if apiErr.Status != http.StatusBadRequest {
		t.Errorf("Status = %d", apiErr.Status)
	}
	if apiErr.Mensagem != "nome obrigatório" {
		t.Errorf("Mensagem = %q", apiErr.Mensagem)
	}
}

func TestErroSemEnvelopeDegradaParaGenerico(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`<html>pane</html>`))
	}))
	defer srv.Close()

	c, _ := New(srv.URL, 0)
	_, err := c.ListarCampanhas(context.Background(), "")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, esperado *APIError", err)
	}
	if apiErr.Mensagem != "Falha na requisição (status 500)." {
		t.Errorf("Mensagem = %q", apiErr.Mensagem)
	}
}

func TestListaNaoArrayViraVazia(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"mensagem":"nada aqui"}`))
	}))
	defer srv.Close()

	c, _ := New(srv.URL, 0)
	personagens, err := c.ListarPersonagens(context.Background(), "")
	if err != nil {
		t.Fatalf("ListarPersonagens: %v", err)
	}
	if len(personagens) != 0 {
		t.Errorf("esperada lista vazia, veio %d itens", len(personagens))
	}
}

func TestLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/login" {
			t.Errorf("%s %s inesperado", r.Method, r.URL.Path)
		}
		var cred Credenciais
		if err := json.NewDecoder(r.Body).Decode(&cred); err != nil {
			t.Errorf("corpo inválido: %v", err)
		}
		if cred.NomeUsuario != "aragorn" {
			t.Errorf("nome_usuario = %q", cred.NomeUsuario)
		}
		w.Write([]byte(`{"token":"jwt-aqui"}`))
	}))
	defer srv.Close()

	c, _ := New(srv.URL, 0)
	token, err := c.Login(context.Background(), Credenciais{NomeUsuario: "aragorn", Senha: "x"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token != "jwt-aqui" {
		t.Errorf("token = %q", token)
	}
}

func TestVincularPersonagem(t *testing.T) {
	var caminho, metodo string
	var corpo map[string]int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caminho = r.URL.Path
		metodo = r.Method
		json.NewDecoder(r.Body).Decode(&corpo)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c, _ := New(srv.URL, 0)
	if err := c.VincularPersonagem(context.Background(), "t", 3, 9); err != nil {
		t.Fatalf("VincularPersonagem: %v", err)
	}
	if metodo != http.MethodPost || caminho != "/campanhas/3/personagens" {
		t.Errorf("%s %s inesperado", metodo, caminho)
	}
	if corpo["personagem_id"] != 9 {
		t.Errorf("personagem_id = %d", corpo["personagem_id"])
	}
}

func TestDesvincularPersonagem(t *testing.T) {
	var caminho, metodo string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caminho = r.URL.Path
		metodo = r.Method
	}))
	defer srv.Close()

	c, _ := New(srv.URL, 0)
	if err := c.DesvincularPersonagem(context.Background(), "t", 3, 9); err != nil {
		t.Fatalf("DesvincularPersonagem: %v", err)
	}
	if metodo != http.MethodDelete || caminho != "/campanhas/3/personagens/9" {
		t.Errorf("%s %s inesperado", metodo, caminho)
	}
}

func TestNewExigeURL(t *testing.T) {
	if _, err := New("  ", 0); err == nil {
		t.Error("New com url vazia deveria falhar")
	}
}
