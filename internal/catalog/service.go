package catalog

import (
	"context"
	"fmt"
)

// Page is one slice of the stored catalog. NextCursor is empty on the last page.
type Page struct {
	Entries    []Entry
	NextCursor string
}

// Service provides catalog business logic over a Repository.
type Service struct {
	repo Repository
}

// NewService creates a new catalog service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// RegisterAuthor creates and stores a new author.
func (s *Service) RegisterAuthor(ctx context.Context, name string) (*Author, error) {
	a := NewAuthor(name)
	if err := s.repo.SaveAuthor(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Author returns a stored author by id.
func (s *Service) Author(ctx context.Context, id string) (*Author, error) {
	return s.repo.GetAuthor(ctx, id)
}

// AddBook creates a book for an existing author and appends it to the catalog.
func (s *Service) AddBook(ctx context.Context, title, authorID string) (Entry, error) {
	a, err := s.repo.GetAuthor(ctx, authorID)
	if err != nil {
		return Entry{}, err
	}
	b, err := NewBook(title, a)
	if err != nil {
		return Entry{}, err
	}
	pos, err := s.repo.AppendBook(ctx, b)
	if err != nil {
		return Entry{}, err
	}
	return Entry{Position: pos, Book: b}, nil
}

// ListBooks returns up to limit entries following cursor.
func (s *Service) ListBooks(ctx context.Context, cursor string, limit int) (Page, error) {
	c, err := DecodeCursor(cursor)
	if err != nil {
		return Page{}, err
	}

	// fetch one extra row to learn whether another page exists
	q := ListQuery{AfterPosition: c.After}
	if limit > 0 {
		q.Limit = limit + 1
	}
	entries, err := s.repo.ListBooks(ctx, q)
	if err != nil {
		return Page{}, err
	}

	page := Page{Entries: entries}
	if limit > 0 && len(entries) > limit {
		page.Entries = entries[:limit]
		page.NextCursor = EncodeCursor(CursorData{After: entries[limit-1].Position})
	}
	return page, nil
}

// Catalog loads every stored book, in insertion order, into a Catalog.
func (s *Service) Catalog(ctx context.Context) (*Catalog, error) {
	entries, err := s.repo.ListBooks(ctx, ListQuery{})
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	c := New()
	for _, e := range entries {
		c.Add(e.Book)
	}
	return c, nil
}
