package api

import (
	"context"
	"fmt"
	"net/http"
)

// Login autentica as credenciais e devolve o token emitido pela API.
func (c *Client) Login(ctx context.Context, cred Credenciais) (string, error) {
	data, err := c.do(ctx, http.MethodPost, "/login", "", cred)
	if err != nil {
		return "", err
	}
	payload, err := decodeItem[struct {
		Token string `json:"token"`
	}](data)
	if err != nil {
		return "", err
	}
	return payload.Token, nil
}

// RegistrarUsuario cria uma conta nova (sempre enviada pelo cadastro como
// JOGADOR; a promoção a ADMIN é feita pelo painel administrativo).
func (c *Client) RegistrarUsuario(ctx context.Context, input CadastroInput) error {
	_, err := c.do(ctx, http.MethodPost, "/usuarios", "", input)
	return err
}

// ListarUsuarios devolve todas as contas cadastradas.
func (c *Client) ListarUsuarios(ctx context.Context, token string) ([]Usuario, error) {
	data, err := c.do(ctx, http.MethodGet, "/usuarios", token, nil)
	if err != nil {
		return nil, err
	}
	return listaDefensiva[Usuario](data), nil
}

// BuscarUsuario devolve uma conta pelo id.
func (c *Client) BuscarUsuario(ctx context.Context, token string, id int) (Usuario, error) {
	data, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/usuarios/%d", id), token, nil)
	if err != nil {
		return Usuario{}, err
	}
	return decodeItem[Usuario](data)
}

// AtualizarUsuario sobrescreve nome e papel de uma conta.
func (c *Client) AtualizarUsuario(ctx context.Context, token string, id int, input UsuarioInput) error {
	_, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/usuarios/%d", id), token, input)
	return err
}

// ListarAtividades devolve o log de atividades de um usuário.
func (c *Client) ListarAtividades(ctx context.Context, token string, id int) ([]Atividade, error) {
	data, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/usuarios/%d/logs", id), token, nil)
	if err != nil {
		return nil, err
	}
	return listaDefensiva[Atividade](data), nil
}

// Dashboard devolve os agregados do painel administrativo.
func (c *Client) Dashboard(ctx context.Context, token string) (DashboardStats, error) {
	data, err := c.do(ctx, http.MethodGet, "/dashboard", token, nil)
	if err != nil {
		return DashboardStats{}, err
	}
	return decodeItem[DashboardStats](data)
}
