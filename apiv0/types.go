package apiv0

import (
	"time"

	"github.com/google/uuid"
)

// Document is a stored document.
type Document struct {
	ID        uuid.UUID `json:"id"`
	Date      time.Time `json:"date"`
	PathParam string    `json:"pathParam"`
	Body      string    `json:"body"`
	Version   Version   `json:"version"`
	Metadata  Metadata  `json:"metadata"`
}

// Metadata describes a document's owner and tags. Each tag is a
// name followed by its values.
type Metadata struct {
	Owner string     `json:"owner,omitempty"`
	Tags  [][]string `json:"tags"`
}

// Version identifies one revision of a document.
type Version struct {
	Date   time.Time `json:"date"`
	Number uint      `json:"number"`
}

// NewDocument is the payload for UpdateContent.
type NewDocument struct {
	Content string `json:"content" validate:"required"`
}

// User is a v0 user record.
type User struct {
	Name    string `json:"name" validate:"required"`
	Surname string `json:"surname" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
}
