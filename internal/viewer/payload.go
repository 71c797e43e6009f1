// Package viewer implements the protected reading session used by viewer
// frontends. It models the session as an explicit state machine, fetches the
// secure-view payload from the gateway, and owns the scoped countermeasure
// layer that is armed while a book is on screen.
package viewer

import (
	"bytes"
	"encoding/json"

	apperrors "github.com/afrireads/bookgate/internal/errors"
)

// ErrMissingBook indicates a secure-view response without book data in
// either accepted shape.
var ErrMissingBook = apperrors.New("Book data not found in response")

// BookInfo carries the resolved book attributes the viewer renders.
type BookInfo struct {
	ID         string
	Title      string
	FileType   string
	AuthorName string
}

// ViewPayload is the normalized secure-view result.
type ViewPayload struct {
	Book      BookInfo
	SecureURL string
}

type wireUser struct {
	Name string `json:"name"`
}

type wireAuthor struct {
	User wireUser `json:"user"`
}

type wireBook struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	FileType string     `json:"fileType"`
	Author   wireAuthor `json:"author"`
}

type wireView struct {
	Book      *wireBook `json:"book"`
	SecureURL string    `json:"secureUrl"`
}

// ParseViewPayload normalizes a secure-view response body. The body may be
// wrapped in a {"data": {...}} envelope or sent flat; both shapes are
// accepted. A body without a book object yields ErrMissingBook.
func ParseViewPayload(raw []byte) (*ViewPayload, error) {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, apperrors.Wrap(err, "failed to parse secure view response")
	}

	body := raw
	if len(envelope.Data) > 0 && !bytes.Equal(envelope.Data, []byte("null")) {
		body = envelope.Data
	}

	var view wireView
	if err := json.Unmarshal(body, &view); err != nil {
		return nil, apperrors.Wrap(err, "failed to parse secure view response")
	}
	if view.Book == nil {
		return nil, ErrMissingBook
	}

	return &ViewPayload{
		Book: BookInfo{
			ID:         view.Book.ID,
			Title:      view.Book.Title,
			FileType:   view.Book.FileType,
			AuthorName: view.Book.Author.User.Name,
		},
		SecureURL: view.SecureURL,
	}, nil
}
