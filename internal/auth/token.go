// Package auth decodifica o token de acesso emitido pelo backend.
//
// O painel não conhece o segredo de assinatura: as claims são lidas sem
// verificação e servem apenas para esconder controles e direcionar a
// navegação. Toda autorização real é reavaliada pela API a cada mutação,
// que recebe o token bruto no cabeçalho Authorization.
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Papéis conhecidos do repositório.
const (
	TipoAdmin   = "ADMIN"
	TipoJogador = "JOGADOR"
)

var (
	// ErrTokenInvalido indica token ilegível ou sem as claims esperadas.
	ErrTokenInvalido = errors.New("token inválido")
	// ErrTokenExpirado indica token com prazo vencido.
	ErrTokenExpirado = errors.New("token expirado")
)

// Jogador é a identidade decodificada do token.
type Jogador struct {
	UsuarioID   int    `json:"usuarioId"`
	NomeUsuario string `json:"nome_usuario"`
	TipoUsuario string `json:"tipo_usuario"`
}

// Admin informa se a identidade tem papel de administrador.
func (j Jogador) Admin() bool {
	return j.TipoUsuario == TipoAdmin
}

type claims struct {
	UsuarioID   int    `json:"usuarioId"`
	NomeUsuario string `json:"nome_usuario"`
	TipoUsuario string `json:"tipo_usuario"`
	jwt.RegisteredClaims
}

// DecodeToken extrai a identidade das claims do token, sem validar a
// assinatura. Tokens malformados, sem as claims esperadas ou vencidos
// resultam em erro, nunca em pânico.
func DecodeToken(tokenString string) (Jogador, error) {
	if strings.TrimSpace(tokenString) == "" {
		return Jogador{}, ErrTokenInvalido
	}

	parser := jwt.NewParser()
	var c claims
	if _, _, err := parser.ParseUnverified(tokenString, &c); err != nil {
		return Jogador{}, ErrTokenInvalido
	}

	if c.UsuarioID == 0 || strings.TrimSpace(c.NomeUsuario) == "" {
		return Jogador{}, ErrTokenInvalido
	}
	if c.ExpiresAt != nil && c.ExpiresAt.Before(time.Now()) {
		return Jogador{}, ErrTokenExpirado
	}

	return Jogador{
		UsuarioID:   c.UsuarioID,
		NomeUsuario: c.NomeUsuario,
		TipoUsuario: c.TipoUsuario,
	}, nil
}
