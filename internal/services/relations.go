package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/vozlink/vozlink-client/internal/api"
	"github.com/vozlink/vozlink-client/internal/models"
)

type RelationService struct {
	c *api.Client
}

func NewRelations(c *api.Client) *RelationService { return &RelationService{c: c} }

// List — все связи (админский обзор).
func (s *RelationService) List(ctx context.Context) ([]models.Relation, error) {
	raw, err := s.c.Do(ctx, http.MethodGet, "/relations", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Relation](raw)
}

func (s *RelationService) Get(ctx context.Context, id int64) (*models.Relation, error) {
	raw, err := s.c.Do(ctx, http.MethodGet, fmt.Sprintf("/relations/%d", id), nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeOne[models.Relation](raw)
}

// MyChildren — дети текущего наставника.
func (s *RelationService) MyChildren(ctx context.Context) ([]models.PersonRef, error) {
	raw, err := s.c.Do(ctx, http.MethodGet, "/relations/my-children", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.PersonRef](raw)
}

// MyTutors — наставники текущего ребёнка.
func (s *RelationService) MyTutors(ctx context.Context) ([]models.PersonRef, error) {
	raw, err := s.c.Do(ctx, http.MethodGet, "/relations/my-tutors", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.PersonRef](raw)
}

// Link привязывает ребёнка по email к текущему наставнику.
func (s *RelationService) Link(ctx context.Context, childEmail string) (*models.Relation, error) {
	raw, err := s.c.Do(ctx, http.MethodPost, "/relations/link", nil, map[string]string{
		"child_email": childEmail,
	})
	if err != nil {
		return nil, err
	}
	return decodeOne[models.Relation](raw)
}

// Unlink разрывает связь; сервер каскадно снимает назначения ребёнка,
// так что вызывающий обязан перезагрузить локальные списки.
func (s *RelationService) Unlink(ctx context.Context, childID int64) error {
	_, err := s.c.Do(ctx, http.MethodPost, "/relations/unlink", nil, map[string]int64{
		"child_id": childID,
	})
	return err
}

func (s *RelationService) Delete(ctx context.Context, id int64) error {
	_, err := s.c.Do(ctx, http.MethodDelete, fmt.Sprintf("/relations/%d", id), nil, nil)
	return err
}

func (s *RelationService) ChildStats(ctx context.Context, childID int64) (*models.ChildStats, error) {
	raw, err := s.c.Do(ctx, http.MethodGet, fmt.Sprintf("/relations/child/%d/stats", childID), nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeOne[models.ChildStats](raw)
}
