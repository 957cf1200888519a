package models

import "time"

// ChildStats — GET /relations/child/:id/stats
type ChildStats struct {
	ChildID          int64  `json:"child_id"`
	ChildName        string `json:"child_name,omitempty"`
	TotalMessages    int    `json:"total_messages"`
	FavoriteMessages int    `json:"favorite_messages"`
	CategoriesUsed   int    `json:"categories_used"`
}

// DashboardStats — GET /dashboard/stats
type DashboardStats struct {
	TotalUsers      int `json:"total_users"`
	TotalMessages   int `json:"total_messages"`
	TotalCategories int `json:"total_categories"`
	TotalRelations  int `json:"total_relations"`
	TotalAssigned   int `json:"total_assigned"`
}

// ActivityEntry — GET /dashboard/activity
type ActivityEntry struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	UserName  string    `json:"user_name,omitempty"`
	Action    string    `json:"action"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
