package services_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/vozlink/vozlink-client/internal/models"
	"github.com/vozlink/vozlink-client/internal/services"
	"github.com/vozlink/vozlink-client/internal/testutil/testapi"
)

func TestCreateThenList(t *testing.T) {
	h := testapi.Start(t)
	svc := services.NewMessages(h.Client)

	created := map[string]any{"id": 42, "text": "Hola", "category_id": 2, "is_active": true}
	h.OK(http.MethodPost, "/messages", created)
	h.OK(http.MethodGet, "/messages", []map[string]any{created})

	m, err := svc.Create(context.Background(), models.CreateMessage{Text: "Hola", CategoryID: 2})
	if err != nil {
		t.Fatal(err)
	}
	if m.ID != 42 || m.Text != "Hola" || m.CategoryID != 2 {
		t.Fatalf("сервер должен вернуть созданное сообщение, получили %+v", m)
	}

	list, err := svc.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, x := range list {
		if x.ID == m.ID {
			found = true
		}
	}
	if !found {
		t.Fatalf("созданное сообщение %d должно быть в списке", m.ID)
	}
}

func TestListEmptyData(t *testing.T) {
	t.Run("data_null", func(t *testing.T) {
		h := testapi.Start(t)
		h.OK(http.MethodGet, "/messages", nil)

		list, err := services.NewMessages(h.Client).List(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if list == nil {
			t.Fatal("список должен быть пустым, но не nil")
		}
		if len(list) != 0 {
			t.Fatalf("ожидали пустой список, получили %d элементов", len(list))
		}
	})

	t.Run("data_absent", func(t *testing.T) {
		h := testapi.Start(t)
		h.Raw(http.MethodGet, "/categories", http.StatusOK, `{"success":true,"message":""}`)

		list, err := services.NewCategories(h.Client).List(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if list == nil {
			t.Fatal("отсутствующее поле data — это пустой список, не nil")
		}
	})
}

func TestMessageFilters(t *testing.T) {
	t.Run("my", func(t *testing.T) {
		h := testapi.Start(t)
		h.OK(http.MethodGet, "/messages/my", []map[string]any{
			{"id": 1, "text": "Hola", "category_id": 2},
		})

		list, err := services.NewMessages(h.Client).MyMessages(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if len(list) != 1 || list[0].ID != 1 {
			t.Fatalf("ожидали одно своё сообщение, получили %+v", list)
		}
	})

	t.Run("by_category", func(t *testing.T) {
		h := testapi.Start(t)
		h.Func(http.MethodGet, "/messages", func(r *http.Request) (int, any) {
			if r.URL.Query().Get("category_id") != "2" {
				return http.StatusBadRequest, nil
			}
			return http.StatusOK, []map[string]any{{"id": 5, "text": "Hola", "category_id": 2}}
		})

		list, err := services.NewMessages(h.Client).ByCategory(context.Background(), 2)
		if err != nil {
			t.Fatal(err)
		}
		if len(list) != 1 || list[0].CategoryID != 2 {
			t.Fatalf("фильтр по категории должен уйти query-параметром, получили %+v", list)
		}
	})
}

func TestUpdateMessage(t *testing.T) {
	h := testapi.Start(t)
	h.OK(http.MethodPut, "/messages/5", map[string]any{
		"id": 5, "text": "Adiós", "category_id": 2, "is_active": false,
	})

	m, err := services.NewMessages(h.Client).Update(context.Background(), 5, models.UpdateMessage{
		Text:     ptr("Adiós"),
		IsActive: ptr(false),
	})
	if err != nil {
		t.Fatal(err)
	}
	if m.Text != "Adiós" || m.IsActive {
		t.Fatalf("ожидали обновлённое сообщение из ответа, получили %+v", m)
	}
	if h.Calls(http.MethodPut, "/messages/5") != 1 {
		t.Fatal("ожидали ровно один PUT")
	}
}

func ptr[T any](v T) *T { return &v }

func TestBackendMessagePrecedence(t *testing.T) {
	h := testapi.Start(t)
	h.Fail(http.MethodPost, "/messages", http.StatusOK, "Categoría inválida")

	_, err := services.NewMessages(h.Client).Create(context.Background(), models.CreateMessage{Text: "x", CategoryID: 999})
	if err == nil {
		t.Fatal("ожидали ошибку")
	}
	if err.Error() != "Categoría inválida" {
		t.Fatalf("сообщение ошибки должно равняться message бекенда, получили %q", err.Error())
	}
}
