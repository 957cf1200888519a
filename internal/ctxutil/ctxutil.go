package ctxutil

import (
	"context"
	"time"
)

// приватный ключ, чтобы исключить коллизии
type key int

const keyRequestID key = iota

// WithRequestID /RequestID — сквозной X-Request-ID вызова
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, keyRequestID, id)
}

func RequestID(ctx context.Context) (string, bool) {
	v := ctx.Value(keyRequestID)
	if v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Таймауты: общий бюджет одного вызова к бекенду.
// Пока константа; при желании позже сделаем из ENV/конфига.
var (
	DefaultAPITimeout = 10 * time.Second
)

// WithTimeout — удобная обёртка над context.WithTimeout.
func WithTimeout(parent context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		// на всякий случай: если d<=0 — без таймаута
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, d)
}
