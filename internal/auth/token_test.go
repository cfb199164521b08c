package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func tokenDeTeste(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("segredo-de-teste"))
	if err != nil {
		t.Fatalf("assinando token: %v", err)
	}
	return signed
}

func TestDecodeToken(t *testing.T) {
	signed := tokenDeTeste(t, jwt.MapClaims{
		"usuarioId":    7,
		"nome_usuario": "aragorn",
		"tipo_usuario": "JOGADOR",
	})

	jogador, err := DecodeToken(signed)
	if err != nil {
		t.Fatalf("DecodeToken: %v", err)
	}
	if jogador.UsuarioID != 7 {
		t.Errorf("UsuarioID = %d, esperado 7", jogador.UsuarioID)
	}
	if jogador.NomeUsuario != "aragorn" {
		t.Errorf("NomeUsuario = %q, esperado aragorn", jogador.NomeUsuario)
	}
	if jogador.Admin() {
		t.Error("JOGADOR não deveria ser admin")
	}
}

func TestDecodeTokenAdmin(t *testing.T) {
	signed := tokenDeTeste(t, jwt.MapClaims{
		"usuarioId":    1,
		"nome_usuario": "mestre",
		"tipo_usuario": "ADMIN",
	})

	jogador, err := DecodeToken(signed)
	if err != nil {
		t.Fatalf("DecodeToken: %v", err)
	}
	if !jogador.Admin() {
		t.Error("ADMIN deveria ser admin")
	}
}

func TestDecodeTokenInvalido(t *testing.T) {
	casos := []struct {
		nome  string
		token string
	}{
		{"vazio", ""},
		{"lixo", "nao-e-um-jwt"},
		{"truncado", "eyJhbGciOiJIUzI1NiJ9"},
	}

	for _, c := range casos {
		t.Run(c.nome, func(t *testing.T) {
			if _, err := DecodeToken(c.token); !errors.Is(err, ErrTokenInvalido) {
				t.Errorf("DecodeToken(%q) err = %v, esperado ErrTokenInvalido", c.token, err)
			}
		})
	}
}

func TestDecodeTokenSemClaims(t *testing.T) {
	signed := tokenDeTeste(t, jwt.MapClaims{"sub": "qualquer"})

	if _, err := DecodeToken(signed); !errors.Is(err, ErrTokenInvalido) {
		t.Errorf("token sem claims esperadas: err = %v, esperado ErrTokenInvalido", err)
	}
}

func TestDecodeTokenExpirado(t *testing.T) {
	signed := tokenDeTeste(t, jwt.MapClaims{
		"usuarioId":    7,
		"nome_usuario": "aragorn",
		"tipo_usuario": "JOGADOR",
		"exp":          time.Now().Add(-time.Hour).Unix(),
	})

	if _, err := DecodeToken(signed); !errors.Is(err, ErrTokenExpirado) {
		t.Errorf("token vencido: err = %v, esperado ErrTokenExpirado", err)
	}
}
