package models

import "time"

// PersonRef — краткая карточка участника связи (как отдаёт бекенд).
type PersonRef struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Relation — связь наставник↔ребёнок. Удаление связи на сервере
// каскадно снимает назначения сообщений этого ребёнка, поэтому после
// unlink локальные списки надо перезагружать.
type Relation struct {
	ID        int64     `json:"id"`
	Tutor     PersonRef `json:"tutor"`
	Child     PersonRef `json:"child"`
	CreatedAt time.Time `json:"created_at"`
}

// ChildMessage — назначение сообщения ребёнку. Инвариант уникальности
// пары (child_id, message_id) держит сервер; клиент лишь не предлагает
// назначить повторно.
type ChildMessage struct {
	ID         int64     `json:"id"`
	ChildID    int64     `json:"child_id"`
	MessageID  int64     `json:"message_id"`
	IsFavorite bool      `json:"is_favorite"`
	AssignedAt time.Time `json:"assigned_at"`
	AssignedBy *int64    `json:"assigned_by,omitempty"`
	Message    *Message  `json:"message,omitempty"`
}
