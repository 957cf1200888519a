// Package testapi — фейковый бекенд для тестов SDK: httptest-сервер со
// скриптованными ответами-конвертами и счётчиком вызовов по маршрутам.
package testapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/vozlink/vozlink-client/internal/api"
	"github.com/vozlink/vozlink-client/internal/session"
)

type route struct {
	status int
	body   []byte
	fn     func(r *http.Request) (int, any) // динамический ответ, если задан
}

type Handle struct {
	T       *testing.T
	Srv     *httptest.Server
	Client  *api.Client
	Session *session.Session
	Dir     string

	mu     sync.Mutex
	routes map[string]route
	calls  map[string]int
}

// Start поднимает фейковый бекенд и клиент с уже сохранённым токеном.
func Start(t *testing.T) *Handle {
	t.Helper()
	return start(t, "test-token", api.NopNotifier{})
}

// StartWith — вариант с кастомным токеном и нотификатором.
func StartWith(t *testing.T, token string, notifier api.Notifier) *Handle {
	t.Helper()
	return start(t, token, notifier)
}

func start(t *testing.T, token string, notifier api.Notifier) *Handle {
	dir := t.TempDir()
	sess, err := session.Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	if token != "" {
		if err := sess.Set(token, nil); err != nil {
			t.Fatal(err)
		}
	}

	h := &Handle{
		T:       t,
		Session: sess,
		Dir:     dir,
		routes:  make(map[string]route),
		calls:   make(map[string]int),
	}
	h.Srv = httptest.NewServer(http.HandlerFunc(h.serve))
	t.Cleanup(h.Srv.Close)

	h.Client = api.New(api.Config{
		BaseURL:  h.Srv.URL,
		Session:  sess,
		Notifier: notifier,
	})
	return h
}

func (h *Handle) serve(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path
	h.mu.Lock()
	h.calls[key]++
	rt, ok := h.routes[key]
	h.mu.Unlock()
	if !ok {
		http.NotFound(w, r)
		return
	}
	if rt.fn != nil {
		status, data := rt.fn(r)
		env := map[string]any{"success": status < 300, "data": data, "message": ""}
		b, _ := json.Marshal(env)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write(b)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rt.status)
	_, _ = w.Write(rt.body)
}

// OK скриптует успешный конверт для маршрута.
func (h *Handle) OK(method, path string, data any) {
	h.respond(method, path, http.StatusOK, map[string]any{
		"success": true, "data": data, "message": "",
	})
}

// Fail скриптует конверт с success=false и сообщением бекенда.
func (h *Handle) Fail(method, path string, status int, message string) {
	h.respond(method, path, status, map[string]any{
		"success": false, "message": message,
	})
}

// Func скриптует ответ, зависящий от запроса (для составных операций).
func (h *Handle) Func(method, path string, fn func(r *http.Request) (int, any)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.routes[method+" "+path] = route{fn: fn}
}

// Raw скриптует произвольное тело.
func (h *Handle) Raw(method, path string, status int, body string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.routes[method+" "+path] = route{status: status, body: []byte(body)}
}

func (h *Handle) respond(method, path string, status int, env map[string]any) {
	b, err := json.Marshal(env)
	if err != nil {
		h.T.Fatal(err)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.routes[method+" "+path] = route{status: status, body: b}
}

// Calls — сколько раз дернули маршрут.
func (h *Handle) Calls(method, path string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.calls[method+" "+path]
}
