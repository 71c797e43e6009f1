// Package domain defines the catalog read models consumed by access link grants
// and the secure-view endpoint. Catalog writes belong to the external worker
// service; this module only reads.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Book represents a published digital book.
type Book struct {
	ID        uuid.UUID
	Title     string
	FileType  string
	FileKey   string
	AuthorID  uuid.UUID
	CreatedAt time.Time

	// AuthorName is resolved from the author's user record on joined reads.
	AuthorName string
}
