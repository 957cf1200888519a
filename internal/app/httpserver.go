package app

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/vozlink/vozlink-client/internal/metrics"
)

type HTTPServer struct {
	srv *http.Server
}

// StartHTTP поднимает debug-сервер агента: /healthz проверяет доступность
// бекенда через probe, /metrics отдаёт prometheus.
func StartHTTP(ctx context.Context, addr string, probe func(ctx context.Context) error) *HTTPServer {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), 800*time.Millisecond)
		defer cancel()
		if err := probe(ctx); err != nil {
			http.Error(w, "backend not ok: "+err.Error(), http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		_ = srv.ListenAndServe() // закрываем аккуратно при Shutdown
	}()

	go func() {
		<-ctx.Done()
		shCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(shCtx)
	}()

	return &HTTPServer{srv: srv}
}
