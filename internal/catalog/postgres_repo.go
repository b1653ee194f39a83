package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	tableAuthors = "catalog_authors"
	tableBooks   = "catalog_books"

	pgForeignKeyViolation = "23503"
)

var dialect = goqu.Dialect("postgres")

type PostgresRepo struct {
	db *pgxpool.Pool
}

func NewPostgresRepo(db *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) SaveAuthor(ctx context.Context, a *Author) error {
	query, args, err := buildUpsertAuthorQuery(a)
	if err != nil {
		return fmt.Errorf("build upsert author: %w", err)
	}
	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert author: %w", err)
	}
	return nil
}

func (r *PostgresRepo) GetAuthor(ctx context.Context, id string) (*Author, error) {
	query, args, err := dialect.From(tableAuthors).
		Select("id", "name").
		Where(goqu.C("id").Eq(id)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build get author: %w", err)
	}

	var authorID, name string
	if err := r.db.QueryRow(ctx, query, args...).Scan(&authorID, &name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAuthorNotFound
		}
		return nil, err
	}
	return RestoreAuthor(authorID, name), nil
}

func (r *PostgresRepo) AppendBook(ctx context.Context, b *Book) (int64, error) {
	query, args, err := buildAppendBookQuery(b)
	if err != nil {
		return 0, fmt.Errorf("build append book: %w", err)
	}

	var pos int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&pos); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return 0, fmt.Errorf("append book %s: %w", b.ID(), ErrAuthorNotFound)
		}
		return 0, fmt.Errorf("append book: %w", err)
	}
	return pos, nil
}

func (r *PostgresRepo) ListBooks(ctx context.Context, q ListQuery) ([]Entry, error) {
	query, args, err := buildListBooksQuery(q)
	if err != nil {
		return nil, fmt.Errorf("build list books: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// one handle per author within a page
	authors := make(map[string]*Author)
	var out []Entry
	for rows.Next() {
		var (
			pos                         int64
			bookID, title, authorID, nm string
		)
		if err := rows.Scan(&pos, &bookID, &title, &authorID, &nm); err != nil {
			return nil, err
		}
		a, ok := authors[authorID]
		if !ok {
			a = RestoreAuthor(authorID, nm)
			authors[authorID] = a
		}
		b, err := RestoreBook(bookID, title, a)
		if err != nil {
			return nil, err
		}
		out = append(out, Entry{Position: pos, Book: b})
	}
	return out, rows.Err()
}

func buildUpsertAuthorQuery(a *Author) (string, []any, error) {
	return dialect.Insert(tableAuthors).
		Rows(goqu.Record{"id": a.ID(), "name": a.Name()}).
		OnConflict(goqu.DoUpdate("id", goqu.Record{"name": goqu.L("EXCLUDED.name")})).
		Prepared(true).
		ToSQL()
}

func buildAppendBookQuery(b *Book) (string, []any, error) {
	return dialect.Insert(tableBooks).
		Rows(goqu.Record{"id": b.ID(), "title": b.Title(), "author_id": b.Author().ID()}).
		Returning("position").
		Prepared(true).
		ToSQL()
}

func buildListBooksQuery(q ListQuery) (string, []any, error) {
	ds := dialect.From(goqu.T(tableBooks).As("b")).
		InnerJoin(goqu.T(tableAuthors).As("a"), goqu.On(goqu.I("a.id").Eq(goqu.I("b.author_id")))).
		Select("b.position", "b.id", "b.title", "a.id", "a.name").
		Where(goqu.I("b.position").Gt(q.AfterPosition)).
		Order(goqu.I("b.position").Asc())
	if q.Limit > 0 {
		ds = ds.Limit(uint(q.Limit))
	}
	return ds.Prepared(true).ToSQL()
}
