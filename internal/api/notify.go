package api

import (
	"go.uber.org/zap"

	"github.com/vozlink/vozlink-client/internal/metrics"
)

// Notice — системное уведомление пользователю (аналог тоста в мобильном клиенте).
type Notice string

const (
	NoticeSessionExpired   Notice = "session_expired"
	NoticePermissionDenied Notice = "permission_denied"
	NoticeServerError      Notice = "server_error"
	NoticeConnectionError  Notice = "connection_error"
	NoticeLoadFailed       Notice = "load_failed"
)

type Notifier interface {
	Notify(n Notice, msg string)
}

// LogNotifier — дефолтная реализация: warn в лог + счётчик в метриках.
// UI поверх SDK может подменить на свою.
type LogNotifier struct {
	Log *zap.Logger
}

func (l *LogNotifier) Notify(n Notice, msg string) {
	metrics.Notices.WithLabelValues(string(n)).Inc()
	if l.Log != nil {
		l.Log.Warn("notice", zap.String("kind", string(n)), zap.String("msg", msg))
	}
}

// NopNotifier — для тестов и однострочных команд.
type NopNotifier struct{}

func (NopNotifier) Notify(Notice, string) {}
