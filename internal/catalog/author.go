package catalog

import "github.com/google/uuid"

// Author is a named author. Books hold a shared *Author, so one author can
// back any number of books.
type Author struct {
	id   string
	name string
}

// NewAuthor creates an author with a fresh identifier. Any name is accepted.
func NewAuthor(name string) *Author {
	return &Author{id: uuid.New().String(), name: name}
}

// RestoreAuthor rebuilds an author loaded from storage.
func RestoreAuthor(id, name string) *Author {
	return &Author{id: id, name: name}
}

func (a *Author) ID() string {
	return a.id
}

// Name returns the display name.
func (a *Author) Name() string {
	return a.name
}
