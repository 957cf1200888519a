package services_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/vozlink/vozlink-client/internal/services"
	"github.com/vozlink/vozlink-client/internal/testutil/testapi"
)

func TestDashboard(t *testing.T) {
	h := testapi.Start(t)
	svc := services.NewDashboard(h.Client)

	t.Run("stats", func(t *testing.T) {
		h.OK(http.MethodGet, "/dashboard/stats", map[string]any{
			"total_users": 12, "total_messages": 80, "total_categories": 5,
			"total_relations": 7, "total_assigned": 34,
		})

		s, err := svc.Stats(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if s.TotalUsers != 12 || s.TotalAssigned != 34 {
			t.Fatalf("ожидали сводку дашборда, получили %+v", s)
		}
	})

	t.Run("activity", func(t *testing.T) {
		h.OK(http.MethodGet, "/dashboard/activity", []map[string]any{
			{"id": 1, "user_id": 3, "user_name": "Мария", "action": "assign", "created_at": "2026-08-01T10:00:00Z"},
		})

		list, err := svc.Activity(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if len(list) != 1 || list[0].Action != "assign" || list[0].UserName != "Мария" {
			t.Fatalf("ожидали ленту активности, получили %+v", list)
		}
	})

	t.Run("activity_empty", func(t *testing.T) {
		h.OK(http.MethodGet, "/dashboard/activity", nil)

		list, err := svc.Activity(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if list == nil {
			t.Fatal("пустая лента — это пустой список, не nil")
		}
	})
}
