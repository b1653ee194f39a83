package catalog

import (
	"io"
	"iter"
	"slices"
	"strings"
)

// Catalog is an ordered collection of books. Insertion order is display
// order; entries are never reordered or deduplicated.
//
// A Catalog is not safe for concurrent mutation.
type Catalog struct {
	entries []*Book
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{}
}

// Add appends book to the end of the catalog. It panics if book is nil.
func (c *Catalog) Add(book *Book) {
	if book == nil {
		panic("catalog: Add called with nil book")
	}
	c.entries = append(c.entries, book)
}

func (c *Catalog) Len() int {
	return len(c.entries)
}

// Books returns a copy of the entries in insertion order.
func (c *Catalog) Books() []*Book {
	return slices.Clone(c.entries)
}

// ListAll yields the description of every entry in insertion order. The
// sequence can be ranged over any number of times.
func (c *Catalog) ListAll() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, b := range c.entries {
			if !yield(b.Describe()) {
				return
			}
		}
	}
}

// Descriptions collects ListAll into a slice.
func (c *Catalog) Descriptions() []string {
	return slices.Collect(c.ListAll())
}

// Render joins all descriptions with newlines. An empty catalog renders as "".
func (c *Catalog) Render() string {
	return strings.Join(c.Descriptions(), "\n")
}

// WriteTo writes one line per entry, each terminated by a newline.
func (c *Catalog) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for line := range c.ListAll() {
		n, err := io.WriteString(w, line+"\n")
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
