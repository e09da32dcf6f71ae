// Package documents stores named context documents and resolves them into the
// context block that precedes an agent prompt.
package documents

import (
	"time"

	"github.com/google/uuid"
)

// Document is a named block of reference text. Only active documents take
// part in resolution. Names are not unique.
type Document struct {
	ID           uuid.UUID `json:"id"`
	Owner        string    `json:"owner"`
	Name         string    `json:"name"`
	Text         string    `json:"text"`
	Active       bool      `json:"active"`
	UserSelected bool      `json:"user_selected"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateCommand contains the data required to create a document.
// Active defaults to true when omitted.
type CreateCommand struct {
	Owner        string `json:"owner"`
	Name         string `json:"name"`
	Text         string `json:"text"`
	Active       *bool  `json:"active,omitempty"`
	UserSelected bool   `json:"user_selected"`
}

// UpdateCommand replaces the editable fields of a document.
type UpdateCommand struct {
	Name         string `json:"name"`
	Text         string `json:"text"`
	UserSelected bool   `json:"user_selected"`
}

// ActiveCommand toggles whether a document participates in resolution.
type ActiveCommand struct {
	Active bool `json:"active"`
}
