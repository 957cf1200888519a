package services_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/vozlink/vozlink-client/internal/services"
	"github.com/vozlink/vozlink-client/internal/testutil/testapi"
)

func TestListForChild400MeansEmpty(t *testing.T) {
	h := testapi.Start(t)
	// бекенд отвечает 400 на ребёнка без назначений — для клиента это пустой список
	h.Fail(http.MethodGet, "/child-messages/child/9", http.StatusBadRequest, "no assignments")

	list, err := services.NewChildMessages(h.Client).ListForChild(context.Background(), 9)
	if err != nil {
		t.Fatalf("400 на списке назначений не должен быть ошибкой: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Fatalf("ожидали пустой не-nil список, получили %#v", list)
	}
}

func TestListForChildOther4xxStillFails(t *testing.T) {
	h := testapi.Start(t)
	h.Fail(http.MethodGet, "/child-messages/child/9", http.StatusNotFound, "child not found")

	_, err := services.NewChildMessages(h.Client).ListForChild(context.Background(), 9)
	if err == nil {
		t.Fatal("особый случай только для 400, остальные статусы — ошибки")
	}
	if err.Error() != "child not found" {
		t.Fatalf("ожидали сообщение бекенда, получили %q", err.Error())
	}
}

func TestAssignManyPartial(t *testing.T) {
	h := testapi.Start(t)

	// сообщение 5 назначается, 6 — отвергается сервером
	h.Func(http.MethodPost, "/child-messages", func(r *http.Request) (int, any) {
		var body struct {
			ChildID   int64 `json:"child_id"`
			MessageID int64 `json:"message_id"`
		}
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &body)
		if body.MessageID == 6 {
			return http.StatusConflict, nil
		}
		return http.StatusOK, map[string]any{
			"id": 100 + body.MessageID, "child_id": body.ChildID, "message_id": body.MessageID,
		}
	})

	svc := services.NewChildMessages(h.Client)
	ok, failed := svc.AssignMany(context.Background(), 1, []int64{5, 6, 7})

	if len(ok) != 2 {
		t.Fatalf("ожидали 2 успешных назначения, получили %d", len(ok))
	}
	if len(failed) != 1 || failed[0].MessageID != 6 {
		t.Fatalf("ожидали один отказ по сообщению 6, получили %+v", failed)
	}
	if h.Calls(http.MethodPost, "/child-messages") != 3 {
		t.Fatalf("должно быть по одному вызову на сообщение, получили %d", h.Calls(http.MethodPost, "/child-messages"))
	}
}
