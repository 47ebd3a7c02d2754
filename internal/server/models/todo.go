package models

import "time"

// Todo is a task record. FilePath holds the internal storage key of the
// attached file, not the externally visible URL; the REST layer renders the
// key as a public URL when serializing.
type Todo struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	FilePath    *string   `json:"file_path"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
