package update

import "time"

// Update represents a client-visible progress update on a project
type Update struct {
	ID        int64     `json:"id"`
	ProjectID int64     `json:"project_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body,omitempty"`
	Photos    []Photo   `json:"photos,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// Photo is an image attached to an update. The binary lives in object
// storage; only the URL is tracked here.
type Photo struct {
	ID       string `json:"id"`
	UpdateID int64  `json:"update_id"`
	URL      string `json:"url"`
	Caption  string `json:"caption,omitempty"`
}
