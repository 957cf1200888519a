package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

type Config struct {
	APIBaseURL string        // базовый URL бекенда VozLink
	APITimeout time.Duration // бюджет одного запроса
	StateDir   string        // где лежат токен и профиль
	AudioDir   string        // локальный кеш аудио
	HTTPAddr   string        // debug-сервер (/healthz, /metrics)
	LogLevel   string
	Env        string // dev|prod
	SentryDSN  string
}

func Load() (*Config, error) {
	timeout, err := parseDuration(os.Getenv("API_TIMEOUT"), 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("API_TIMEOUT: %w", err)
	}

	stateDir := os.Getenv("VOZLINK_STATE_DIR")
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("VOZLINK_STATE_DIR не задан и домашняя директория недоступна: %w", err)
		}
		stateDir = filepath.Join(home, ".vozlink")
	}

	cfg := &Config{
		APIBaseURL: mustEnv("VOZLINK_API_URL"),
		APITimeout: timeout,
		StateDir:   stateDir,
		AudioDir:   getenv("AUDIO_DIR", filepath.Join(stateDir, "audio")),
		HTTPAddr:   getenv("HTTP_ADDR", ":8080"),
		LogLevel:   getenv("LOG_LEVEL", "info"),
		Env:        getenv("ENV", "dev"),
		SentryDSN:  os.Getenv("SENTRY_DSN"),
	}
	return cfg, nil
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("required env " + k + " is empty")
	}
	return v
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func parseDuration(s string, def time.Duration) (time.Duration, error) {
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("bad duration %q: %w", s, err)
	}
	return d, nil
}
