package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/librarylite/internal/entities"
)

// BookPayload is the JSON body accepted by create and update. Title and
// author must be present; their content is not checked.
type BookPayload struct {
	Title       *string `json:"title" binding:"required"`
	Author      *string `json:"author" binding:"required"`
	Year        *Year   `json:"year"`
	Description *string `json:"description"`
}

// Year is a publication year. Numeric strings such as "1999" are accepted
// alongside JSON numbers.
type Year int

func (y *Year) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*y = Year(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("year must be an integer, got %s", data)
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("year must be an integer, got %q", s)
	}
	*y = Year(n)
	return nil
}

// Fields converts the payload into repository input.
func (p BookPayload) Fields() entities.BookFields {
	fields := entities.BookFields{
		Description: p.Description,
	}
	if p.Year != nil {
		year := int(*p.Year)
		fields.Year = &year
	}
	if p.Title != nil {
		fields.Title = *p.Title
	}
	if p.Author != nil {
		fields.Author = *p.Author
	}
	return fields
}

// BooksController serves the JSON API under /books.
type BooksController struct {
	store BookStore
}

func NewBooksController(store BookStore) *BooksController {
	return &BooksController{
		store: store,
	}
}

// ListBooks returns every book.
// GET /books/
func (controller *BooksController) ListBooks(c *gin.Context) {
	books, err := controller.store.List(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}
	c.JSON(http.StatusOK, books)
}

// GetBook returns one book.
// GET /books/:id
func (controller *BooksController) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := controller.store.GetByID(c.Request.Context(), id)
	if err != nil {
		controller.respondStoreError(c, err, "get book")
		return
	}
	c.JSON(http.StatusOK, book)
}

// CreateBook stores a new book and returns it with its id.
// POST /books/
func (controller *BooksController) CreateBook(c *gin.Context) {
	var payload BookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondUnprocessable(c, "invalid book payload: "+err.Error())
		return
	}

	book, err := controller.store.Create(c.Request.Context(), payload.Fields())
	if err != nil {
		respondInternalError(c, err, "create book")
		return
	}
	c.JSON(http.StatusOK, book)
}

// UpdateBook replaces every field of an existing book.
// PUT /books/:id
func (controller *BooksController) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var payload BookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondUnprocessable(c, "invalid book payload: "+err.Error())
		return
	}

	book, err := controller.store.Update(c.Request.Context(), id, payload.Fields())
	if err != nil {
		controller.respondStoreError(c, err, "update book")
		return
	}
	c.JSON(http.StatusOK, book)
}

// DeleteBook removes a book permanently.
// DELETE /books/:id
func (controller *BooksController) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := controller.store.Delete(c.Request.Context(), id); err != nil {
		controller.respondStoreError(c, err, "delete book")
		return
	}
	c.JSON(http.StatusOK, DetailResponse{Detail: "Book deleted"})
}

func (controller *BooksController) respondStoreError(c *gin.Context, err error, operation string) {
	if errors.Is(err, entities.ErrBookNotFound) {
		respondNotFound(c, "Book")
		return
	}
	respondInternalError(c, err, operation)
}
