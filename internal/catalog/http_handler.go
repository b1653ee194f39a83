package catalog

import (
	"bookcatalog/internal/httpx"
	"bytes"
	"errors"
	"log"
	"net/http"
	"strconv"
)

type HTTPHandler struct {
	svc *Service
}

func NewHTTPHandler(svc *Service) *HTTPHandler {
	return &HTTPHandler{svc: svc}
}

// Register mounts the catalog routes on mux.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/authors", h.CreateAuthor)
	mux.HandleFunc("GET /v1/authors/{id}", h.GetAuthor)
	mux.HandleFunc("POST /v1/books", h.AddBook)
	mux.HandleFunc("GET /v1/books", h.ListBooks)
	mux.HandleFunc("GET /v1/catalog", h.Render)
}

type authorResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type bookResponse struct {
	ID          string         `json:"id"`
	Position    int64          `json:"position"`
	Title       string         `json:"title"`
	Author      authorResponse `json:"author"`
	Description string         `json:"description"`
}

func toAuthorResponse(a *Author) authorResponse {
	return authorResponse{ID: a.ID(), Name: a.Name()}
}

func toBookResponse(e Entry) bookResponse {
	return bookResponse{
		ID:          e.Book.ID(),
		Position:    e.Position,
		Title:       e.Book.Title(),
		Author:      toAuthorResponse(e.Book.Author()),
		Description: e.Book.Describe(),
	}
}

type createAuthorRequest struct {
	Name string `json:"name"`
}

type addBookRequest struct {
	Title    string `json:"title"`
	AuthorID string `json:"author_id"`
}

// CreateAuthor handles POST /v1/authors
func (h *HTTPHandler) CreateAuthor(w http.ResponseWriter, r *http.Request) {
	var req createAuthorRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid JSON body", nil)
		return
	}

	a, err := h.svc.RegisterAuthor(r.Context(), req.Name)
	if err != nil {
		h.internalError(w, r, "register author", err)
		return
	}
	httpx.JSONCreated(w, r, toAuthorResponse(a))
}

// GetAuthor handles GET /v1/authors/{id}
func (h *HTTPHandler) GetAuthor(w http.ResponseWriter, r *http.Request) {
	a, err := h.svc.Author(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, ErrAuthorNotFound) {
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Author not found", nil)
			return
		}
		h.internalError(w, r, "get author", err)
		return
	}
	httpx.JSONSuccess(w, r, toAuthorResponse(a), nil)
}

// AddBook handles POST /v1/books
func (h *HTTPHandler) AddBook(w http.ResponseWriter, r *http.Request) {
	var req addBookRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid JSON body", nil)
		return
	}
	if req.AuthorID == "" {
		httpx.JSONError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid input", []httpx.ErrorDetail{
			{Field: "author_id", Message: "author_id is required"},
		})
		return
	}

	e, err := h.svc.AddBook(r.Context(), req.Title, req.AuthorID)
	if err != nil {
		if errors.Is(err, ErrAuthorNotFound) {
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Author not found", nil)
			return
		}
		h.internalError(w, r, "add book", err)
		return
	}
	httpx.JSONCreated(w, r, toBookResponse(e))
}

// ListBooks handles GET /v1/books
func (h *HTTPHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	pageSize, _ := strconv.Atoi(query.Get("page_size"))
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	page, err := h.svc.ListBooks(r.Context(), query.Get("cursor"), pageSize)
	if err != nil {
		if errors.Is(err, ErrInvalidCursor) {
			httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid cursor", nil)
			return
		}
		h.internalError(w, r, "list books", err)
		return
	}

	books := make([]bookResponse, 0, len(page.Entries))
	for _, e := range page.Entries {
		books = append(books, toBookResponse(e))
	}
	meta := map[string]any{"page_size": pageSize}
	if page.NextCursor != "" {
		meta["next_cursor"] = page.NextCursor
	}
	httpx.JSONSuccess(w, r, books, meta)
}

// Render handles GET /v1/catalog with the plain text listing.
func (h *HTTPHandler) Render(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Catalog(r.Context())
	if err != nil {
		h.internalError(w, r, "render catalog", err)
		return
	}

	var buf bytes.Buffer
	_, _ = c.WriteTo(&buf)
	httpx.Text(w, http.StatusOK, buf.String())
}

func (h *HTTPHandler) internalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	log.Printf("catalog error op=%q request_id=%s error=%v", op, httpx.RequestIDFrom(r), err)
	httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
}
