package catalog

import (
	"context"
	"fmt"
	"sync"
)

// MemoryRepo keeps the catalog in process memory.
type MemoryRepo struct {
	mu      sync.RWMutex
	authors map[string]*Author
	entries []Entry
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{authors: make(map[string]*Author)}
}

func (r *MemoryRepo) SaveAuthor(ctx context.Context, a *Author) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.authors[a.ID()] = a
	return nil
}

func (r *MemoryRepo) GetAuthor(ctx context.Context, id string) (*Author, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.authors[id]
	if !ok {
		return nil, ErrAuthorNotFound
	}
	return a, nil
}

func (r *MemoryRepo) AppendBook(ctx context.Context, b *Book) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.authors[b.Author().ID()]; !ok {
		return 0, fmt.Errorf("append book %s: %w", b.ID(), ErrAuthorNotFound)
	}
	pos := int64(len(r.entries)) + 1
	r.entries = append(r.entries, Entry{Position: pos, Book: b})
	return pos, nil
}

func (r *MemoryRepo) ListBooks(ctx context.Context, q ListQuery) ([]Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// positions are 1-based and dense
	start := max(int(q.AfterPosition), 0)
	if start > len(r.entries) {
		return nil, nil
	}
	out := r.entries[start:]
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return append([]Entry(nil), out...), nil
}
