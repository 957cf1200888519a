package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/vozlink/vozlink-client/internal/api"
	"github.com/vozlink/vozlink-client/internal/models"
)

// RoleService — статический справочник ролей.
type RoleService struct {
	c *api.Client
}

func NewRoles(c *api.Client) *RoleService { return &RoleService{c: c} }

func (s *RoleService) List(ctx context.Context) ([]models.Role, error) {
	raw, err := s.c.Do(ctx, http.MethodGet, "/roles", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Role](raw)
}

func (s *RoleService) Get(ctx context.Context, id int64) (*models.Role, error) {
	raw, err := s.c.Do(ctx, http.MethodGet, fmt.Sprintf("/roles/%d", id), nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeOne[models.Role](raw)
}
