package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/librarylite/internal/entities"
)

func newBooksAPI(store BookStore) *gin.Engine {
	controller := NewBooksController(store)

	router := gin.New()
	router.GET("/books/", controller.ListBooks)
	router.POST("/books/", controller.CreateBook)
	router.GET("/books/:id", controller.GetBook)
	router.PUT("/books/:id", controller.UpdateBook)
	router.DELETE("/books/:id", controller.DeleteBook)
	return router
}

func decodeDetail(t *testing.T, body []byte) string {
	t.Helper()
	var response DetailResponse
	require.NoError(t, json.Unmarshal(body, &response))
	return response.Detail
}

func TestBooksController_ListBooks(t *testing.T) {
	t.Run("returns empty array when no books", func(t *testing.T) {
		router := newBooksAPI(newFakeBookStore())

		w := doRequest(router, http.MethodGet, "/books/", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("returns every book", func(t *testing.T) {
		router := newBooksAPI(newFakeBookStore(
			entities.BookFields{Title: "Dune", Author: "Frank Herbert", Year: intPtr(1965)},
			entities.BookFields{Title: "Emma", Author: "Jane Austen"},
		))

		w := doRequest(router, http.MethodGet, "/books/", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[
			{"id": 1, "title": "Dune", "author": "Frank Herbert", "year": 1965, "description": null},
			{"id": 2, "title": "Emma", "author": "Jane Austen", "year": null, "description": null}
		]`, w.Body.String())
	})

	t.Run("returns 500 on store failure", func(t *testing.T) {
		store := newFakeBookStore()
		store.err = errStoreDown
		router := newBooksAPI(store)

		w := doRequest(router, http.MethodGet, "/books/", "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "internal server error", decodeDetail(t, w.Body.Bytes()))
		assert.NotContains(t, w.Body.String(), "store down")
	})
}

func TestBooksController_GetBook(t *testing.T) {
	store := newFakeBookStore(entities.BookFields{Title: "Dune", Author: "Frank Herbert"})
	router := newBooksAPI(store)

	t.Run("returns the book", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/books/1", "")

		assert.Equal(t, http.StatusOK, w.Code)
		var book entities.Book
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &book))
		assert.Equal(t, uint(1), book.ID)
		assert.Equal(t, "Dune", book.Title)
	})

	t.Run("returns 404 for unknown id", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/books/99", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Book not found", decodeDetail(t, w.Body.Bytes()))
	})

	t.Run("returns 404 for unknown id beyond 32 bits", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/books/4294967296", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Book not found", decodeDetail(t, w.Body.Bytes()))
	})

	t.Run("returns 422 for non-integer id", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/books/abc", "")

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "invalid id", decodeDetail(t, w.Body.Bytes()))
	})
}

func TestBooksController_CreateBook(t *testing.T) {
	t.Run("creates a book and returns it with an id", func(t *testing.T) {
		store := newFakeBookStore()
		router := newBooksAPI(store)

		w := doRequest(router, http.MethodPost, "/books/",
			`{"title": "Dune", "author": "Frank Herbert", "year": 1965, "description": "Spice"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		var book entities.Book
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &book))
		assert.Equal(t, uint(1), book.ID)
		assert.Equal(t, "Dune", book.Title)
		require.NotNil(t, book.Year)
		assert.Equal(t, 1965, *book.Year)
		require.NotNil(t, book.Description)
		assert.Equal(t, "Spice", *book.Description)

		assert.Len(t, store.books, 1)
	})

	t.Run("coerces a numeric string year", func(t *testing.T) {
		store := newFakeBookStore()
		router := newBooksAPI(store)

		w := doRequest(router, http.MethodPost, "/books/", `{"title": "Dune", "author": "Frank Herbert", "year": " 1999"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, store.books[1].Year)
		assert.Equal(t, 1999, *store.books[1].Year)
		assert.Contains(t, w.Body.String(), `"year":1999`)
	})

	t.Run("null year stays unknown", func(t *testing.T) {
		store := newFakeBookStore()
		router := newBooksAPI(store)

		w := doRequest(router, http.MethodPost, "/books/", `{"title": "Dune", "author": "Frank Herbert", "year": null}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Nil(t, store.books[1].Year)
	})

	t.Run("accepts empty title and author", func(t *testing.T) {
		router := newBooksAPI(newFakeBookStore())

		w := doRequest(router, http.MethodPost, "/books/", `{"title": "", "author": ""}`)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	tests := []struct {
		name string
		body string
	}{
		{"missing title", `{"author": "Frank Herbert"}`},
		{"missing author", `{"title": "Dune"}`},
		{"null title", `{"title": null, "author": "Frank Herbert"}`},
		{"non-numeric year", `{"title": "Dune", "author": "Frank Herbert", "year": "soon"}`},
		{"year is a boolean", `{"title": "Dune", "author": "Frank Herbert", "year": true}`},
		{"malformed json", `{"title": "Dune",`},
		{"empty body", ``},
	}
	for _, tt := range tests {
		t.Run("returns 422 for "+tt.name, func(t *testing.T) {
			store := newFakeBookStore()
			router := newBooksAPI(store)

			w := doRequest(router, http.MethodPost, "/books/", tt.body)

			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
			assert.NotEmpty(t, decodeDetail(t, w.Body.Bytes()))
			assert.Empty(t, store.books)
		})
	}
}

func TestBooksController_UpdateBook(t *testing.T) {
	t.Run("overwrites every field", func(t *testing.T) {
		store := newFakeBookStore(entities.BookFields{
			Title: "Dune", Author: "Frank Herbert", Year: intPtr(1965), Description: strPtr("Spice"),
		})
		router := newBooksAPI(store)

		w := doRequest(router, http.MethodPut, "/books/1", `{"title": "Dune Messiah", "author": "Frank Herbert"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		book := store.books[1]
		assert.Equal(t, "Dune Messiah", book.Title)
		assert.Nil(t, book.Year)
		assert.Nil(t, book.Description)
	})

	t.Run("returns 404 for unknown id", func(t *testing.T) {
		router := newBooksAPI(newFakeBookStore())

		w := doRequest(router, http.MethodPut, "/books/7", `{"title": "X", "author": "Y"}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Book not found", decodeDetail(t, w.Body.Bytes()))
	})

	t.Run("returns 422 for schema mismatch", func(t *testing.T) {
		store := newFakeBookStore(entities.BookFields{Title: "Dune", Author: "Frank Herbert"})
		router := newBooksAPI(store)

		w := doRequest(router, http.MethodPut, "/books/1", `{"title": "Dune"}`)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "Dune", store.books[1].Title)
	})

	t.Run("returns 422 for non-integer id", func(t *testing.T) {
		router := newBooksAPI(newFakeBookStore())

		w := doRequest(router, http.MethodPut, "/books/-3", `{"title": "X", "author": "Y"}`)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestBooksController_DeleteBook(t *testing.T) {
	t.Run("deletes and confirms", func(t *testing.T) {
		store := newFakeBookStore(entities.BookFields{Title: "Dune", Author: "Frank Herbert"})
		router := newBooksAPI(store)

		w := doRequest(router, http.MethodDelete, "/books/1", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"detail": "Book deleted"}`, w.Body.String())
		assert.Empty(t, store.books)
	})

	t.Run("returns 404 for unknown id", func(t *testing.T) {
		router := newBooksAPI(newFakeBookStore())

		w := doRequest(router, http.MethodDelete, "/books/1", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Book not found", decodeDetail(t, w.Body.Bytes()))
	})
}

func TestBooksAPI_WithDatabase(t *testing.T) {
	t.Run("PUT changing the title is reflected by GET and nothing else changes", func(t *testing.T) {
		_, repo := setupTestDB(t)
		router := newBooksAPI(repo)

		w := doRequest(router, http.MethodPost, "/books/",
			`{"title": "Dune", "author": "Frank Herbert", "year": 1965, "description": "Spice"}`)
		require.Equal(t, http.StatusOK, w.Code)
		var created entities.Book
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

		path := fmt.Sprintf("/books/%d", created.ID)
		w = doRequest(router, http.MethodPut, path,
			`{"title": "Dune (Deluxe)", "author": "Frank Herbert", "year": 1965, "description": "Spice"}`)
		require.Equal(t, http.StatusOK, w.Code)

		w = doRequest(router, http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, w.Code)
		var fetched entities.Book
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))

		expected := created
		expected.Title = "Dune (Deluxe)"
		assert.Equal(t, expected, fetched)
	})

	t.Run("deleted book is gone", func(t *testing.T) {
		_, repo := setupTestDB(t)
		router := newBooksAPI(repo)

		w := doRequest(router, http.MethodPost, "/books/", `{"title": "Emma", "author": "Jane Austen"}`)
		require.Equal(t, http.StatusOK, w.Code)
		var created entities.Book
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

		path := fmt.Sprintf("/books/%d", created.ID)
		assert.Equal(t, http.StatusOK, doRequest(router, http.MethodDelete, path, "").Code)
		assert.Equal(t, http.StatusNotFound, doRequest(router, http.MethodGet, path, "").Code)
		assert.Equal(t, http.StatusNotFound, doRequest(router, http.MethodDelete, path, "").Code)
	})
}
