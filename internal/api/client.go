// Package api implementa o cliente HTTP do backend REST do Repositório de
// RPG. Todas as telas do painel falam com a API exclusivamente através
// deste cliente.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 15 * time.Second

// Client encapsula chamadas à API do repositório.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// New cria o cliente apontando para a URL base configurada.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("api: url base obrigatória")
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}, nil
}

// APIError carrega o status HTTP e a mensagem de erro devolvida pela API.
type APIError struct {
	Status   int
	Mensagem string
}

func (e *APIError) Error() string {
	if strings.TrimSpace(e.Mensagem) == "" {
		return fmt.Sprintf("api: status %d", e.Status)
	}
	return e.Mensagem
}

// MensagemDeErro extrai a mensagem apresentável de um erro do cliente.
// Falhas de transporte degradam para uma mensagem genérica.
func MensagemDeErro(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	return "Não foi possível falar com o servidor."
}

// do executa uma requisição e devolve o corpo bruto em caso de sucesso.
// Em status >= 400 tenta decodificar o envelope { "erro": "..." } da API;
// corpo ausente ou fora desse formato vira mensagem genérica.
func (c *Client) do(ctx context.Context, method, path, token string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("api: serializando corpo: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("api: lendo resposta: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, decodeErro(resp.StatusCode, data)
	}
	return data, nil
}

func decodeErro(status int, data []byte) *APIError {
	var payload struct {
		Erro string `json:"erro"`
	}
	if err := json.Unmarshal(data, &payload); err == nil && strings.TrimSpace(payload.Erro) != "" {
		return &APIError{Status: status, Mensagem: payload.Erro}
	}
	return &APIError{Status: status, Mensagem: fmt.Sprintf("Falha na requisição (status %d).", status)}
}

// listaDefensiva decodifica uma coleção tolerando payloads que não sejam
// um array JSON: nesses casos devolve lista vazia em vez de falhar.
func listaDefensiva[T any](data []byte) []T {
	var itens []T
	if err := json.Unmarshal(data, &itens); err != nil {
		return []T{}
	}
	if itens == nil {
		return []T{}
	}
	return itens
}

func decodeItem[T any](data []byte) (T, error) {
	var item T
	if err := json.Unmarshal(data, &item); err != nil {
		return item, fmt.Errorf("api: resposta inválida: %w", err)
	}
	return item, nil
}
