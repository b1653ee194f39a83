package catalog

import (
	"context"
	"errors"
)

//go:generate mockgen -source=ports.go -destination=mock_repository_test.go -package=catalog

// ErrAuthorNotFound is returned when an author id is unknown.
var ErrAuthorNotFound = errors.New("author not found")

// Entry is a book at its position in the stored catalog. Positions grow with
// every append and define display order.
type Entry struct {
	Position int64
	Book     *Book
}

// ListQuery selects entries after a position. Limit <= 0 means no limit.
type ListQuery struct {
	AfterPosition int64
	Limit         int
}

// Repository defines the contract for catalog storage.
type Repository interface {
	SaveAuthor(ctx context.Context, author *Author) error
	GetAuthor(ctx context.Context, id string) (*Author, error)
	AppendBook(ctx context.Context, book *Book) (int64, error)
	ListBooks(ctx context.Context, q ListQuery) ([]Entry, error)
}
