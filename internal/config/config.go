package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config centraliza a configuração carregada do ambiente.
type Config struct {
	Port            int
	APIURL          string
	APITimeout      time.Duration
	RedisURL        string
	SessionTTL      time.Duration
	CookieSecure    bool
	RateLimitPublic RateLimitConfig
	RateLimitAuth   RateLimitConfig
}

// RateLimitConfig representa limites simples para throttling.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// Load carrega variáveis de ambiente e aplica defaults seguros.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil || port <= 0 {
		return nil, errors.New("PORT inválida")
	}
	cfg.Port = port

	cfg.APIURL = strings.TrimSpace(getEnv("API_URL", ""))
	if cfg.APIURL == "" {
		return nil, errors.New("API_URL obrigatória")
	}

	apiTimeout, err := parseDurationEnv("API_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.APITimeout = apiTimeout

	// Vazio seleciona o armazenamento de sessões em memória.
	cfg.RedisURL = strings.TrimSpace(getEnv("REDIS_URL", ""))

	sessionTTL, err := parseDurationEnv("SESSION_TTL", 30*24*time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.SessionTTL = sessionTTL

	cfg.CookieSecure = strings.EqualFold(getEnv("COOKIE_SECURE", "false"), "true")

	cfg.RateLimitPublic = RateLimitConfig{RequestsPerSecond: 10, Burst: 20}
	cfg.RateLimitAuth = RateLimitConfig{RequestsPerSecond: 10, Burst: 40}

	return cfg, nil
}

func getEnv(key, def string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return def
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	val := getEnv(key, "")
	if val == "" {
		return def, nil
	}
	dur, err := time.ParseDuration(val)
	if err != nil {
		return 0, errors.New(key + " inválido")
	}
	return dur, nil
}
