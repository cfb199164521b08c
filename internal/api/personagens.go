package api

import (
	"context"
	"fmt"
	"net/http"
)

// ListarPersonagens busca a coleção completa de personagens.
func (c *Client) ListarPersonagens(ctx context.Context, token string) ([]Personagem, error) {
	data, err := c.do(ctx, http.MethodGet, "/personagens", token, nil)
	if err != nil {
		return nil, err
	}
	return listaDefensiva[Personagem](data), nil
}

// BuscarPersonagem devolve a ficha de um personagem pelo id.
func (c *Client) BuscarPersonagem(ctx context.Context, token string, id int) (Personagem, error) {
	data, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/personagens/%d", id), token, nil)
	if err != nil {
		return Personagem{}, err
	}
	return decodeItem[Personagem](data)
}

// CriarPersonagem registra um novo personagem e devolve a cópia criada.
func (c *Client) CriarPersonagem(ctx context.Context, token string, input PersonagemInput) (Personagem, error) {
	data, err := c.do(ctx, http.MethodPost, "/personagens", token, input)
	if err != nil {
		return Personagem{}, err
	}
	return decodeItem[Personagem](data)
}

// AtualizarPersonagem sobrescreve a ficha existente.
func (c *Client) AtualizarPersonagem(ctx context.Context, token string, id int, input PersonagemInput) error {
	_, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/personagens/%d", id), token, input)
	return err
}

// ExcluirPersonagem remove o personagem.
func (c *Client) ExcluirPersonagem(ctx context.Context, token string, id int) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/personagens/%d", id), token, nil)
	return err
}
