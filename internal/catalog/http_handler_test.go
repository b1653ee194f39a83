package catalog

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookcatalog/internal/testutil"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPHandler_GetAuthor(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	handler := NewHTTPHandler(NewService(mockRepo))

	t.Run("success", func(t *testing.T) {
		mockRepo.EXPECT().GetAuthor(gomock.Any(), "author-1").Return(RestoreAuthor("author-1", "Victor Hugo"), nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/v1/authors/author-1", nil)
		r.SetPathValue("id", "author-1")

		handler.GetAuthor(w, r)

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, "Victor Hugo", resp.Data()["name"])
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo.EXPECT().GetAuthor(gomock.Any(), "missing").Return(nil, ErrAuthorNotFound)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/v1/authors/missing", nil)
		r.SetPathValue("id", "missing")

		handler.GetAuthor(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("error", func(t *testing.T) {
		mockRepo.EXPECT().GetAuthor(gomock.Any(), "author-1").Return(nil, errors.New("db error"))

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/v1/authors/author-1", nil)
		r.SetPathValue("id", "author-1")

		handler.GetAuthor(w, r)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestHTTPHandler_AddBook(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	handler := NewHTTPHandler(NewService(mockRepo))

	t.Run("bad json", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.AddBook(w, testutil.NewRequest(http.MethodPost, "/v1/books", `{"title":`))

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusBadRequest, resp.Code)
		assert.Equal(t, "BAD_REQUEST", resp.ErrorCode())
	})

	t.Run("missing author id", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.AddBook(w, testutil.NewRequest(http.MethodPost, "/v1/books", map[string]string{"title": "Orphan"}))

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
		assert.Equal(t, "VALIDATION_ERROR", resp.ErrorCode())
	})

	t.Run("unknown author", func(t *testing.T) {
		mockRepo.EXPECT().GetAuthor(gomock.Any(), "missing").Return(nil, ErrAuthorNotFound)

		w := httptest.NewRecorder()
		handler.AddBook(w, testutil.NewRequest(http.MethodPost, "/v1/books", map[string]string{"title": "X", "author_id": "missing"}))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("store error", func(t *testing.T) {
		mockRepo.EXPECT().GetAuthor(gomock.Any(), "author-1").Return(RestoreAuthor("author-1", "Victor Hugo"), nil)
		mockRepo.EXPECT().AppendBook(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("db error"))

		w := httptest.NewRecorder()
		handler.AddBook(w, testutil.NewRequest(http.MethodPost, "/v1/books", map[string]string{"title": "X", "author_id": "author-1"}))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestHTTPHandler_ListBooks(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	handler := NewHTTPHandler(NewService(mockRepo))

	t.Run("invalid cursor", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ListBooks(w, httptest.NewRequest(http.MethodGet, "/v1/books?cursor=%25%25", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("page size is clamped", func(t *testing.T) {
		mockRepo.EXPECT().ListBooks(gomock.Any(), ListQuery{Limit: 21}).Return(nil, nil)

		w := httptest.NewRecorder()
		handler.ListBooks(w, httptest.NewRequest(http.MethodGet, "/v1/books?page_size=1000", nil))

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, []any{}, resp.Body["data"])
	})

	t.Run("error", func(t *testing.T) {
		mockRepo.EXPECT().ListBooks(gomock.Any(), gomock.Any()).Return(nil, errors.New("db error"))

		w := httptest.NewRecorder()
		handler.ListBooks(w, httptest.NewRequest(http.MethodGet, "/v1/books", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestHTTPHandler_Routes(t *testing.T) {
	mux := http.NewServeMux()
	NewHTTPHandler(NewService(NewMemoryRepo())).Register(mux)

	serve := func(r *http.Request) testutil.RecordResponse {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, r)
		return testutil.RecordHTTPResponse(w)
	}

	empty := serve(httptest.NewRequest(http.MethodGet, "/v1/catalog", nil))
	assert.Equal(t, http.StatusOK, empty.Code)
	assert.Equal(t, "", empty.Raw)

	created := serve(testutil.NewRequest(http.MethodPost, "/v1/authors", map[string]string{"name": "Victor Hugo"}))
	require.Equal(t, http.StatusCreated, created.Code)
	authorID, _ := created.Data()["id"].(string)
	require.NotEmpty(t, authorID)

	fetched := serve(httptest.NewRequest(http.MethodGet, "/v1/authors/"+authorID, nil))
	assert.Equal(t, "Victor Hugo", fetched.Data()["name"])

	for _, title := range []string{"Les Misérables", "Notre-Dame de Paris", "Les Contemplations"} {
		resp := serve(testutil.NewRequest(http.MethodPost, "/v1/books", map[string]string{"title": title, "author_id": authorID}))
		require.Equal(t, http.StatusCreated, resp.Code)
		assert.Equal(t, title+" par Victor Hugo", resp.Data()["description"])
	}

	first := serve(httptest.NewRequest(http.MethodGet, "/v1/books?page_size=2", nil))
	require.Equal(t, http.StatusOK, first.Code)
	assert.Len(t, first.Body["data"], 2)
	meta, _ := first.Body["meta"].(map[string]any)
	cursor, _ := meta["next_cursor"].(string)
	require.NotEmpty(t, cursor)

	second := serve(httptest.NewRequest(http.MethodGet, "/v1/books?page_size=2&cursor="+cursor, nil))
	require.Equal(t, http.StatusOK, second.Code)
	assert.Len(t, second.Body["data"], 1)

	rendered := serve(httptest.NewRequest(http.MethodGet, "/v1/catalog", nil))
	assert.Equal(t, "Les Misérables par Victor Hugo\nNotre-Dame de Paris par Victor Hugo\nLes Contemplations par Victor Hugo\n", rendered.Raw)
	assert.Equal(t, "text/plain; charset=utf-8", rendered.Header.Get("Content-Type"))
}
