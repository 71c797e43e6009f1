package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents a platform principal (reader or author).
type User struct {
	ID        uuid.UUID
	Name      string
	Email     string
	CreatedAt time.Time
}
