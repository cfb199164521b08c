package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("API_URL", "http://localhost:3000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Port = %d", cfg.Port)
	}
	if cfg.APITimeout != 15*time.Second {
		t.Errorf("APITimeout = %s", cfg.APITimeout)
	}
	if cfg.SessionTTL != 30*24*time.Hour {
		t.Errorf("SessionTTL = %s", cfg.SessionTTL)
	}
	if cfg.RedisURL != "" {
		t.Errorf("RedisURL = %q", cfg.RedisURL)
	}
	if cfg.CookieSecure {
		t.Error("CookieSecure deveria ser falso por padrão")
	}
}

func TestLoadExigeAPIURL(t *testing.T) {
	t.Setenv("API_URL", "   ")

	if _, err := Load(); err == nil {
		t.Error("Load sem API_URL deveria falhar")
	}
}

func TestLoadSobrescreveDuracoes(t *testing.T) {
	t.Setenv("API_URL", "http://localhost:3000")
	t.Setenv("API_TIMEOUT", "5s")
	t.Setenv("SESSION_TTL", "48h")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APITimeout != 5*time.Second {
		t.Errorf("APITimeout = %s", cfg.APITimeout)
	}
	if cfg.SessionTTL != 48*time.Hour {
		t.Errorf("SessionTTL = %s", cfg.SessionTTL)
	}
}

func TestLoadPortaInvalida(t *testing.T) {
	t.Setenv("API_URL", "http://localhost:3000")
	t.Setenv("PORT", "zero")

	if _, err := Load(); err == nil {
		t.Error("Load com PORT inválida deveria falhar")
	}
}
