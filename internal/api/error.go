package api

import "errors"

// Kind — категория отказа вызова (вместо угадывания по вложенным полям ответа).
type Kind string

const (
	KindUnauthorized Kind = "unauthorized" // 401, сессия снесена
	KindForbidden    Kind = "forbidden"    // 403
	KindServer       Kind = "server"       // 5xx
	KindNetwork      Kind = "network"      // ответа не было
	KindRequest      Kind = "request"      // прочие не-2xx и success=false
	KindDecode       Kind = "decode"       // битый JSON в теле
)

// Error — единственный тип ошибки, который отдают клиент и сервисы.
// Message всегда пригоден для показа пользователю.
type Error struct {
	Kind    Kind
	Status  int // HTTP-статус, 0 если ответа не было
	Message string
}

func (e *Error) Error() string { return e.Message }

// KindOf возвращает категорию ошибки или "" для чужих ошибок.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return ""
}

// StatusOf возвращает HTTP-статус ошибки или 0.
func StatusOf(err error) int {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Status
	}
	return 0
}
