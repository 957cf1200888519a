package services

import (
	"context"
	"net/http"

	"github.com/vozlink/vozlink-client/internal/api"
	"github.com/vozlink/vozlink-client/internal/models"
)

type DashboardService struct {
	c *api.Client
}

func NewDashboard(c *api.Client) *DashboardService { return &DashboardService{c: c} }

func (s *DashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	raw, err := s.c.Do(ctx, http.MethodGet, "/dashboard/stats", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeOne[models.DashboardStats](raw)
}

func (s *DashboardService) Activity(ctx context.Context) ([]models.ActivityEntry, error) {
	raw, err := s.c.Do(ctx, http.MethodGet, "/dashboard/activity", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.ActivityEntry](raw)
}
