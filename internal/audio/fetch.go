// Package audio — выборка серверной озвучки сообщений в локальный кеш.
// Плеер и фолбэк «прочитать текст без звука» — забота вызывающего.
package audio

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/vozlink/vozlink-client/internal/api"
	"github.com/vozlink/vozlink-client/internal/services"
)

type Fetcher struct {
	c   *api.Client
	dir string
}

func NewFetcher(c *api.Client, dir string) *Fetcher {
	return &Fetcher{c: c, dir: dir}
}

// Fetch скачивает озвучку сообщения и возвращает путь к файлу.
// Уже скачанный файл не перекачиваем.
func (f *Fetcher) Fetch(ctx context.Context, messageID int64) (string, error) {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return "", fmt.Errorf("audio dir: %w", err)
	}

	path := filepath.Join(f.dir, fmt.Sprintf("message_%d.mp3", messageID))
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	data, _, err := f.c.DoRaw(ctx, http.MethodGet, services.AudioPath(messageID))
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write audio: %w", err)
	}
	return path, nil
}
