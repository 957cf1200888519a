// Package services — типизированные обёртки над REST-ресурсами бекенда.
// Правила для всех методов: ровно один HTTP-вызов на единицу работы,
// списки всегда не-nil, ошибки только *api.Error, ретраев нет.
package services

import (
	"encoding/json"

	"github.com/vozlink/vozlink-client/internal/api"
)

func decodeOne[T any](raw json.RawMessage) (*T, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, &api.Error{Kind: api.KindDecode, Message: "Некорректный ответ сервера"}
	}
	return &v, nil
}

// decodeList: отсутствующее или null поле data — это пустой список, не ошибка.
func decodeList[T any](raw json.RawMessage) ([]T, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return []T{}, nil
	}
	var vs []T
	if err := json.Unmarshal(raw, &vs); err != nil {
		return nil, &api.Error{Kind: api.KindDecode, Message: "Некорректный ответ сервера"}
	}
	if vs == nil {
		vs = []T{}
	}
	return vs, nil
}
