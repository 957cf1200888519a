package observability

import (
	"time"

	"github.com/getsentry/sentry-go"
)

func InitSentry(dsn, env, release string) (func(), error) {
	if dsn == "" {
		return func() {}, nil
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: env,
		Release:     release,
	}); err != nil {
		return func() {}, err
	}
	return func() { sentry.Flush(2 * time.Second) }, nil
}

func CaptureErr(err error) {
	if err != nil {
		sentry.CaptureException(err)
	}
}

// BreadcrumbAPI — хлебная крошка про вызов бекенда, чтобы в событии
// был виден последний запрос перед ошибкой.
func BreadcrumbAPI(method, path string, status int) {
	sentry.AddBreadcrumb(&sentry.Breadcrumb{
		Category: "api",
		Message:  method + " " + path,
		Data:     map[string]interface{}{"status": status},
		Level:    sentry.LevelInfo,
	})
}
