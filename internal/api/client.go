package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vozlink/vozlink-client/internal/ctxutil"
	"github.com/vozlink/vozlink-client/internal/metrics"
	"github.com/vozlink/vozlink-client/internal/observability"
	"github.com/vozlink/vozlink-client/internal/session"
)

// единый конверт всех ответов бекенда
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

const fallbackMsg = "Не удалось выполнить запрос"

// Config — зависимости клиента; сессия и нотификатор обязательны по смыслу,
// но нулевые значения не роняют (Notifier=nil значит молча).
type Config struct {
	BaseURL  string
	Timeout  time.Duration
	Session  *session.Session
	Notifier Notifier
	Log      *zap.Logger
}

// Client — авторизованный HTTP-клиент к бекенду VozLink.
// Добавляет bearer-токен из сессии, классифицирует отказы и
// отдаёт наружу только *api.Error.
type Client struct {
	base    string
	http    *http.Client
	sess    *session.Session
	notify  Notifier
	log     *zap.Logger
	timeout time.Duration
}

func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = ctxutil.DefaultAPITimeout
	}
	notify := cfg.Notifier
	if notify == nil {
		notify = NopNotifier{}
	}
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		base:    strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		sess:    cfg.Session,
		notify:  notify,
		log:     log,
		timeout: timeout,
	}
}

// Do выполняет один вызов и возвращает поле data конверта.
// body != nil сериализуется в JSON.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	raw, _, err := c.roundTripRaw(ctx, method, path, query, body, "application/json")
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &Error{Kind: KindDecode, Status: http.StatusOK, Message: fallbackMsg}
	}
	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = fallbackMsg
		}
		return nil, &Error{Kind: KindRequest, Status: http.StatusOK, Message: msg}
	}
	return env.Data, nil
}

// DoRaw — бинарная выборка (аудио): те же авторизация и классификация,
// но тело отдаётся как есть вместе с Content-Type.
func (c *Client) DoRaw(ctx context.Context, method, path string) ([]byte, string, error) {
	return c.roundTripRaw(ctx, method, path, nil, nil, "")
}

func (c *Client) roundTripRaw(ctx context.Context, method, path string, query url.Values, body any, accept string) ([]byte, string, error) {
	ctx, cancel := ctxutil.WithTimeout(ctx, c.timeout)
	defer cancel()

	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, "", &Error{Kind: KindRequest, Message: fmt.Sprintf("bad request body: %v", err)}
		}
		rd = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return nil, "", &Error{Kind: KindRequest, Message: err.Error()}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	// токен читается из сессии на каждый запрос; протухший тоже отправляем,
	// авторитет по сроку жизни — сервер (он ответит 401)
	if tok := c.sess.TokenRaw(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	reqID, ok := ctxutil.RequestID(ctx)
	if !ok {
		reqID = uuid.NewString()
	}
	req.Header.Set("X-Request-ID", reqID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.ObserveAPI(method, "network", time.Since(start))
		metrics.APIErrors.WithLabelValues(string(KindNetwork)).Inc()
		c.log.Warn("request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		observability.CaptureErr(err)
		c.notify.Notify(NoticeConnectionError, "Нет соединения с сервером")
		return nil, "", &Error{Kind: KindNetwork, Message: "Нет соединения с сервером"}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, _ := io.ReadAll(resp.Body)
	observability.BreadcrumbAPI(method, path, resp.StatusCode)

	if resp.StatusCode/100 == 2 {
		metrics.ObserveAPI(method, "ok", time.Since(start))
		return raw, resp.Header.Get("Content-Type"), nil
	}

	metrics.ObserveAPI(method, "error", time.Since(start))
	apiErr := c.classify(resp.StatusCode, raw)
	metrics.APIErrors.WithLabelValues(string(apiErr.Kind)).Inc()
	c.log.Warn("request rejected",
		zap.String("method", method), zap.String("path", path),
		zap.Int("status", resp.StatusCode), zap.String("kind", string(apiErr.Kind)))
	return nil, "", apiErr
}

// classify — побочные эффекты по статусам из контракта клиента:
// 401 сносит сессию и уведомляет, 403/5xx только уведомляют,
// остальные статусы уходят наверх без глобального уведомления —
// сообщение для пользователя соберёт вызывающий сервис.
func (c *Client) classify(status int, body []byte) *Error {
	msg := backendMessage(body)

	switch {
	case status == http.StatusUnauthorized:
		if c.sess.Clear() {
			c.notify.Notify(NoticeSessionExpired, "Сессия истекла, войдите заново")
		}
		return &Error{Kind: KindUnauthorized, Status: status, Message: "Сессия истекла, войдите заново"}
	case status == http.StatusForbidden:
		c.notify.Notify(NoticePermissionDenied, "Недостаточно прав")
		return &Error{Kind: KindForbidden, Status: status, Message: "Недостаточно прав"}
	case status >= 500:
		c.notify.Notify(NoticeServerError, "Ошибка сервера, попробуйте позже")
		observability.CaptureErr(fmt.Errorf("backend %d: %s", status, msg))
		return &Error{Kind: KindServer, Status: status, Message: "Ошибка сервера, попробуйте позже"}
	default:
		if msg == "" {
			msg = fallbackMsg
		}
		return &Error{Kind: KindRequest, Status: status, Message: msg}
	}
}

// backendMessage достаёт message из конверта, если тело им было.
func backendMessage(body []byte) string {
	var env envelope
	if json.Unmarshal(body, &env) == nil {
		return env.Message
	}
	return ""
}
