package catalog

import (
	"errors"

	"github.com/google/uuid"
)

// ErrMissingAuthor is returned when a book is constructed without an author.
var ErrMissingAuthor = errors.New("book requires an author")

// Book is a titled work with exactly one author.
type Book struct {
	id     string
	title  string
	author *Author
}

// NewBook creates a book with a fresh identifier.
func NewBook(title string, author *Author) (*Book, error) {
	return RestoreBook(uuid.New().String(), title, author)
}

// RestoreBook rebuilds a book loaded from storage.
func RestoreBook(id, title string, author *Author) (*Book, error) {
	if author == nil {
		return nil, ErrMissingAuthor
	}
	return &Book{id: id, title: title, author: author}, nil
}

func (b *Book) ID() string {
	return b.id
}

func (b *Book) Title() string {
	return b.title
}

func (b *Book) Author() *Author {
	return b.author
}

// Describe renders the book as "<title> par <author name>".
func (b *Book) Describe() string {
	return b.title + " par " + b.author.Name()
}

func (b *Book) String() string {
	return b.Describe()
}
