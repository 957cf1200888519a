package models

type RoleName string

const (
	Tutor RoleName = "tutor"
	Child RoleName = "child"
	Admin RoleName = "admin"
)

type User struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	RoleID   int64    `json:"role_id"`
	RoleName RoleName `json:"role_name"`
}

type Role struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}
