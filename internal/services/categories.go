package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/vozlink/vozlink-client/internal/api"
	"github.com/vozlink/vozlink-client/internal/models"
)

type CategoryService struct {
	c *api.Client
}

func NewCategories(c *api.Client) *CategoryService { return &CategoryService{c: c} }

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	raw, err := s.c.Do(ctx, http.MethodGet, "/categories", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Category](raw)
}

func (s *CategoryService) Get(ctx context.Context, id int64) (*models.Category, error) {
	raw, err := s.c.Do(ctx, http.MethodGet, fmt.Sprintf("/categories/%d", id), nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeOne[models.Category](raw)
}

func (s *CategoryService) Create(ctx context.Context, cat models.Category) (*models.Category, error) {
	raw, err := s.c.Do(ctx, http.MethodPost, "/categories", nil, cat)
	if err != nil {
		return nil, err
	}
	return decodeOne[models.Category](raw)
}

func (s *CategoryService) Update(ctx context.Context, id int64, cat models.Category) (*models.Category, error) {
	raw, err := s.c.Do(ctx, http.MethodPut, fmt.Sprintf("/categories/%d", id), nil, cat)
	if err != nil {
		return nil, err
	}
	return decodeOne[models.Category](raw)
}

func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	_, err := s.c.Do(ctx, http.MethodDelete, fmt.Sprintf("/categories/%d", id), nil, nil)
	return err
}
