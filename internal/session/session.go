package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vozlink/vozlink-client/internal/models"
)

var (
	// ErrNotAuthenticated — нет сохранённого токена.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrSessionExpired — токен есть, но exp в прошлом.
	ErrSessionExpired = errors.New("session expired")
)

type State string

const (
	Anonymous     State = "anonymous"
	Authenticated State = "authenticated"
	Expired       State = "expired"
)

// Два легаси-имени файла токена: старые сборки писали auth_token.
// Читаем по порядку, первый найденный выигрывает; чистим оба.
var tokenKeys = []string{"token", "auth_token"}

const userKey = "user.json"

// Session — явное состояние авторизации вместо глобальных синглтонов.
// Токен и профиль лежат файлами в stateDir; доступ под мьютексом,
// чтобы параллельные запросы не рвали Clear/Set.
type Session struct {
	mu    sync.Mutex
	dir   string
	token string
	user  *models.User
}

func Open(dir string) (*Session, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("state dir: %w", err)
	}
	s := &Session{dir: dir}
	s.load()
	return s, nil
}

// load восстанавливает токен и профиль с диска; отсутствие файлов — не ошибка.
func (s *Session) load() {
	for _, k := range tokenKeys {
		b, err := os.ReadFile(filepath.Join(s.dir, k))
		if err == nil {
			s.token = strings.TrimSpace(string(b))
			break
		}
	}
	if b, err := os.ReadFile(filepath.Join(s.dir, userKey)); err == nil {
		var u models.User
		if json.Unmarshal(b, &u) == nil {
			s.user = &u
		}
	}
}

func (s *Session) Token() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return "", ErrNotAuthenticated
	}
	if expired(s.token, time.Now()) {
		return "", ErrSessionExpired
	}
	return s.token, nil
}

// TokenRaw — токен без проверки срока (для logout на бекенде).
func (s *Session) TokenRaw() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *Session) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.token == "":
		return Anonymous
	case expired(s.token, time.Now()):
		return Expired
	default:
		return Authenticated
	}
}

// Set сохраняет токен и профиль после логина.
func (s *Session) Set(token string, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.WriteFile(filepath.Join(s.dir, tokenKeys[0]), []byte(token), 0o600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	if user != nil {
		b, err := json.Marshal(user)
		if err != nil {
			return fmt.Errorf("marshal user: %w", err)
		}
		if err := os.WriteFile(filepath.Join(s.dir, userKey), b, 0o600); err != nil {
			return fmt.Errorf("write user: %w", err)
		}
	}
	s.token = token
	s.user = user
	return nil
}

// UpdateUser обновляет только сохранённый профиль (после GET /auth/profile).
func (s *Session) UpdateUser(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, userKey), b, 0o600); err != nil {
		return fmt.Errorf("write user: %w", err)
	}
	s.user = user
	return nil
}

// Clear сносит оба ключа токена и профиль. Идемпотентен: параллельные 401
// приводят ровно к одному teardown, остальные вызовы — no-op.
func (s *Session) Clear() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" && s.user == nil {
		return false
	}
	for _, k := range tokenKeys {
		_ = os.Remove(filepath.Join(s.dir, k))
	}
	_ = os.Remove(filepath.Join(s.dir, userKey))
	s.token = ""
	s.user = nil
	return true
}

// expired смотрит exp в JWT без проверки подписи: авторитет — сервер,
// клиенту нужна только ранняя диагностика протухшей сессии.
func expired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(token, claims)
	if err != nil {
		// не-JWT токен считаем живым, решит сервер
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
