package models

import (
	"time"

	"github.com/google/uuid"
)

// Lead is an alert subscription captured on the site
type Lead struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Email     string    `db:"email" json:"email" validate:"required,email,max=254"`
	Source    string    `db:"source" json:"source" validate:"required,max=64"`
	Sport     string    `db:"sport" json:"sport,omitempty" validate:"max=64"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
