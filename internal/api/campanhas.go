package api

import (
	"context"
	"fmt"
	"net/http"
)

// ListarCampanhas busca a coleção completa de campanhas.
func (c *Client) ListarCampanhas(ctx context.Context, token string) ([]Campanha, error) {
	data, err := c.do(ctx, http.MethodGet, "/campanhas", token, nil)
	if err != nil {
		return nil, err
	}
	return listaDefensiva[Campanha](data), nil
}

// BuscarCampanha devolve uma campanha com seu elenco.
func (c *Client) BuscarCampanha(ctx context.Context, token string, id int) (Campanha, error) {
	data, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/campanhas/%d", id), token, nil)
	if err != nil {
		return Campanha{}, err
	}
	return decodeItem[Campanha](data)
}

// CriarCampanha registra uma nova campanha.
func (c *Client) CriarCampanha(ctx context.Context, token string, input CampanhaInput) (Campanha, error) {
	data, err := c.do(ctx, http.MethodPost, "/campanhas", token, input)
	if err != nil {
		return Campanha{}, err
	}
	return decodeItem[Campanha](data)
}

// AtualizarCampanha sobrescreve a campanha existente.
func (c *Client) AtualizarCampanha(ctx context.Context, token string, id int, input CampanhaInput) error {
	_, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/campanhas/%d", id), token, input)
	return err
}

// ExcluirCampanha remove a campanha.
func (c *Client) ExcluirCampanha(ctx context.Context, token string, id int) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/campanhas/%d", id), token, nil)
	return err
}

// VincularPersonagem adiciona um personagem ao elenco da campanha.
func (c *Client) VincularPersonagem(ctx context.Context, token string, campanhaID, personagemID int) error {
	body := map[string]int{"personagem_id": personagemID}
	_, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/campanhas/%d/personagens", campanhaID), token, body)
	return err
}

// DesvincularPersonagem remove um personagem do elenco da campanha.
func (c *Client) DesvincularPersonagem(ctx context.Context, token string, campanhaID, personagemID int) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/campanhas/%d/personagens/%d", campanhaID, personagemID), token, nil)
	return err
}
