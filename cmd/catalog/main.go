// Command catalog prints a one-book catalog to standard output.
package main

import (
	"io"
	"log"
	"os"

	"bookcatalog/internal/catalog"
)

func main() {
	if err := run(os.Stdout); err != nil {
		log.Fatalf("catalog: %v", err)
	}
}

func run(w io.Writer) error {
	author := catalog.NewAuthor("Victor Hugo")
	book, err := catalog.NewBook("Les Misérables", author)
	if err != nil {
		return err
	}

	c := catalog.New()
	c.Add(book)

	_, err = c.WriteTo(w)
	return err
}
