package store_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/vozlink/vozlink-client/internal/services"
	"github.com/vozlink/vozlink-client/internal/store"
	"github.com/vozlink/vozlink-client/internal/testutil/testapi"
)

func newStore(h *testapi.Handle) *store.RelationStore {
	rel := services.NewRelations(h.Client)
	cm := services.NewChildMessages(h.Client)
	return store.NewRelationStore(rel, cm, nil, nil)
}

func TestLoadChildren(t *testing.T) {
	h := testapi.Start(t)
	h.OK(http.MethodGet, "/relations/my-children", []map[string]any{
		{"id": 7, "name": "Лукас", "email": "lucas@example.com"},
		{"id": 8, "name": "София", "email": "sofia@example.com"},
	})

	st := newStore(h)
	if err := st.LoadChildren(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := len(st.Children()); got != 2 {
		t.Fatalf("ожидали 2 детей, получили %d", got)
	}
	if st.LoadingState().Children {
		t.Fatal("флаг загрузки должен сброситься")
	}
	if st.LastErr() != "" {
		t.Fatalf("ошибки быть не должно, получили %q", st.LastErr())
	}
}

func TestLoadFailureRecordsError(t *testing.T) {
	h := testapi.Start(t)
	h.Fail(http.MethodGet, "/relations/my-children", http.StatusOK, "Acceso denegado")

	st := newStore(h)
	if err := st.LoadChildren(context.Background()); err == nil {
		t.Fatal("ожидали ошибку загрузки")
	}
	if st.LastErr() != "Acceso denegado" {
		t.Fatalf("слот ошибки должен хранить сообщение бекенда, получили %q", st.LastErr())
	}
	if st.LoadingState().Children {
		t.Fatal("флаг загрузки должен сброситься и при ошибке")
	}
}

// Сценарий unlink: после подтверждения сервером список детей перечитывается
// целиком, локальных патчей нет.
func TestUnlinkChildReloads(t *testing.T) {
	h := testapi.Start(t)
	h.OK(http.MethodGet, "/relations/my-children", []map[string]any{
		{"id": 7, "name": "Лукас", "email": "lucas@example.com"},
		{"id": 8, "name": "София", "email": "sofia@example.com"},
	})

	st := newStore(h)
	if err := st.LoadChildren(context.Background()); err != nil {
		t.Fatal(err)
	}

	// сервер подтверждает unlink и с этого момента отдаёт список без ребёнка 7
	h.OK(http.MethodPost, "/relations/unlink", nil)
	h.OK(http.MethodGet, "/relations/my-children", []map[string]any{
		{"id": 8, "name": "София", "email": "sofia@example.com"},
	})

	if err := st.UnlinkChild(context.Background(), 7); err != nil {
		t.Fatal(err)
	}

	for _, c := range st.Children() {
		if c.ID == 7 {
			t.Fatal("ребёнок 7 должен исчезнуть из локального списка")
		}
	}
	if got := h.Calls(http.MethodGet, "/relations/my-children"); got != 2 {
		t.Fatalf("после мутации список перечитывается с сервера, ожидали 2 вызова, получили %d", got)
	}
	// кеш назначений отвязанного ребёнка сброшен
	if _, loaded := st.ChildMessages(7); loaded {
		t.Fatal("назначения отвязанного ребёнка должны быть выброшены из кеша")
	}
}

func TestAssignMessageReloads(t *testing.T) {
	h := testapi.Start(t)
	h.OK(http.MethodPost, "/child-messages", map[string]any{"id": 1, "child_id": 3, "message_id": 5})
	h.OK(http.MethodGet, "/child-messages/child/3", []map[string]any{
		{"id": 1, "child_id": 3, "message_id": 5},
	})

	st := newStore(h)
	if err := st.AssignMessage(context.Background(), 3, 5); err != nil {
		t.Fatal(err)
	}

	list, loaded := st.ChildMessages(3)
	if !loaded || len(list) != 1 || list[0].MessageID != 5 {
		t.Fatalf("после назначения список должен быть перечитан, получили %+v", list)
	}
	if h.Calls(http.MethodGet, "/child-messages/child/3") != 1 {
		t.Fatal("мутация обязана перечитать список назначений")
	}
}

func TestMutationNotAppliedOnFailure(t *testing.T) {
	h := testapi.Start(t)
	h.OK(http.MethodGet, "/relations/my-children", []map[string]any{
		{"id": 7, "name": "Лукас", "email": "lucas@example.com"},
	})
	h.Fail(http.MethodPost, "/relations/unlink", http.StatusOK, "No autorizado")

	st := newStore(h)
	if err := st.LoadChildren(context.Background()); err != nil {
		t.Fatal(err)
	}

	if err := st.UnlinkChild(context.Background(), 7); err == nil {
		t.Fatal("ожидали ошибку unlink")
	}
	// локальный список не тронут: мутация не применяется без подтверждения
	if got := len(st.Children()); got != 1 {
		t.Fatalf("список не должен меняться при отказе, получили %d детей", got)
	}
	if got := h.Calls(http.MethodGet, "/relations/my-children"); got != 1 {
		t.Fatalf("перезагрузки после неудачной мутации быть не должно, вызовов: %d", got)
	}
}
