package api

import (
	"context"
	"fmt"
	"net/http"
)

// ListarSistemas busca todos os sistemas de jogo cadastrados.
func (c *Client) ListarSistemas(ctx context.Context, token string) ([]Sistema, error) {
	data, err := c.do(ctx, http.MethodGet, "/sistemas", token, nil)
	if err != nil {
		return nil, err
	}
	return listaDefensiva[Sistema](data), nil
}

// CriarSistema registra um novo sistema.
func (c *Client) CriarSistema(ctx context.Context, token string, input SistemaInput) error {
	_, err := c.do(ctx, http.MethodPost, "/sistemas", token, input)
	return err
}

// AtualizarSistema renomeia um sistema existente.
func (c *Client) AtualizarSistema(ctx context.Context, token string, id int, input SistemaInput) error {
	_, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/sistemas/%d", id), token, input)
	return err
}

// ExcluirSistema remove o sistema.
func (c *Client) ExcluirSistema(ctx context.Context, token string, id int) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/sistemas/%d", id), token, nil)
	return err
}
