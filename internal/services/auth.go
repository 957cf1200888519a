package services

import (
	"context"
	"net/http"

	"github.com/vozlink/vozlink-client/internal/api"
	"github.com/vozlink/vozlink-client/internal/models"
	"github.com/vozlink/vozlink-client/internal/session"
)

type AuthService struct {
	c    *api.Client
	sess *session.Session
}

func NewAuth(c *api.Client, sess *session.Session) *AuthService {
	return &AuthService{c: c, sess: sess}
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	RoleID   int64  `json:"role_id"`
}

// Login сохраняет токен и профиль в сессию при успехе.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	raw, err := s.c.Do(ctx, http.MethodPost, "/auth/login", nil, map[string]string{
		"email": email, "password": password,
	})
	if err != nil {
		return nil, err
	}
	lr, err := decodeOne[loginResponse](raw)
	if err != nil {
		return nil, err
	}
	if err := s.sess.Set(lr.Token, lr.User); err != nil {
		return nil, &api.Error{Kind: api.KindRequest, Message: err.Error()}
	}
	return lr.User, nil
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	raw, err := s.c.Do(ctx, http.MethodPost, "/auth/register", nil, req)
	if err != nil {
		return nil, err
	}
	return decodeOne[models.User](raw)
}

// Profile обновляет кешированный профиль в сессии.
func (s *AuthService) Profile(ctx context.Context) (*models.User, error) {
	raw, err := s.c.Do(ctx, http.MethodGet, "/auth/profile", nil, nil)
	if err != nil {
		return nil, err
	}
	u, err := decodeOne[models.User](raw)
	if err != nil {
		return nil, err
	}
	_ = s.sess.UpdateUser(u)
	return u, nil
}

// Logout — best effort на бекенде, локальная сессия чистится в любом случае.
func (s *AuthService) Logout(ctx context.Context) error {
	_, err := s.c.Do(ctx, http.MethodPost, "/auth/logout", nil, nil)
	s.sess.Clear()
	if err != nil && api.KindOf(err) != api.KindUnauthorized {
		return err
	}
	return nil
}
