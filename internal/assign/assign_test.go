package assign_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/vozlink/vozlink-client/internal/assign"
	"github.com/vozlink/vozlink-client/internal/models"
	"github.com/vozlink/vozlink-client/internal/services"
	"github.com/vozlink/vozlink-client/internal/store"
	"github.com/vozlink/vozlink-client/internal/testutil/testapi"
)

func newWorkflow(h *testapi.Handle) (*assign.Workflow, *store.RelationStore) {
	rel := services.NewRelations(h.Client)
	cm := services.NewChildMessages(h.Client)
	st := store.NewRelationStore(rel, cm, nil, nil)
	return assign.NewWorkflow(st, cm, nil), st
}

func TestIsAssigned(t *testing.T) {
	list := []models.ChildMessage{{ID: 1, ChildID: 1, MessageID: 5}}
	if !assign.IsAssigned(list, 1, 5) {
		t.Fatal("пара (1,5) есть в списке")
	}
	if assign.IsAssigned(list, 1, 6) || assign.IsAssigned(list, 2, 5) {
		t.Fatal("других пар в списке нет")
	}
}

func TestAssignGuard(t *testing.T) {
	t.Run("not_loaded", func(t *testing.T) {
		h := testapi.Start(t)
		wf, _ := newWorkflow(h)

		if _, err := wf.CanAssign(1, 5); !errors.Is(err, assign.ErrNotLoaded) {
			t.Fatalf("без загруженного списка ожидали ErrNotLoaded, получили %v", err)
		}
	})

	t.Run("already_assigned_no_network_call", func(t *testing.T) {
		h := testapi.Start(t)
		h.OK(http.MethodGet, "/child-messages/child/1", []map[string]any{
			{"id": 10, "child_id": 1, "message_id": 5},
		})
		wf, st := newWorkflow(h)
		if err := st.LoadChildMessages(context.Background(), 1); err != nil {
			t.Fatal(err)
		}

		err := wf.Assign(context.Background(), 1, 5)
		if !errors.Is(err, assign.ErrAlreadyAssigned) {
			t.Fatalf("ожидали ErrAlreadyAssigned, получили %v", err)
		}
		if h.Calls(http.MethodPost, "/child-messages") != 0 {
			t.Fatal("для уже назначенной пары сетевого вызова быть не должно")
		}
	})

	t.Run("fresh_pair_assigns_and_reloads", func(t *testing.T) {
		h := testapi.Start(t)
		h.OK(http.MethodGet, "/child-messages/child/1", []map[string]any{
			{"id": 10, "child_id": 1, "message_id": 5},
		})
		wf, st := newWorkflow(h)
		if err := st.LoadChildMessages(context.Background(), 1); err != nil {
			t.Fatal(err)
		}

		h.OK(http.MethodPost, "/child-messages", map[string]any{"id": 11, "child_id": 1, "message_id": 6})
		h.OK(http.MethodGet, "/child-messages/child/1", []map[string]any{
			{"id": 10, "child_id": 1, "message_id": 5},
			{"id": 11, "child_id": 1, "message_id": 6},
		})

		if err := wf.Assign(context.Background(), 1, 6); err != nil {
			t.Fatal(err)
		}
		if h.Calls(http.MethodPost, "/child-messages") != 1 {
			t.Fatal("ожидали ровно один вызов назначения")
		}
		list, _ := st.ChildMessages(1)
		if len(list) != 2 {
			t.Fatalf("после назначения список перечитан, ожидали 2 записи, получили %d", len(list))
		}
	})
}

// Отказ по одному ребёнку не прерывает загрузку остальных.
func TestLoadForChildrenPartialFailure(t *testing.T) {
	h := testapi.Start(t)
	h.OK(http.MethodGet, "/child-messages/child/1", []map[string]any{
		{"id": 1, "child_id": 1, "message_id": 5},
	})
	h.Raw(http.MethodGet, "/child-messages/child/2", http.StatusInternalServerError, "boom")
	h.OK(http.MethodGet, "/child-messages/child/3", []map[string]any{
		{"id": 3, "child_id": 3, "message_id": 7},
		{"id": 4, "child_id": 3, "message_id": 8},
	})

	wf, st := newWorkflow(h)
	res := wf.LoadForChildren(context.Background(), []int64{1, 2, 3})

	if len(res.Succeeded) != 3 {
		t.Fatalf("ожидали 3 назначения от детей 1 и 3, получили %d", len(res.Succeeded))
	}
	if len(res.Failed) != 1 || res.Failed[0].ChildID != 2 {
		t.Fatalf("ожидали явный отказ по ребёнку 2, получили %+v", res.Failed)
	}
	// успешные списки легли в стор
	if list, ok := st.ChildMessages(3); !ok || len(list) != 2 {
		t.Fatalf("назначения ребёнка 3 должны попасть в стор, получили %+v", list)
	}
	if _, ok := st.ChildMessages(2); ok {
		t.Fatal("по упавшему ребёнку в сторе ничего быть не должно")
	}
}
