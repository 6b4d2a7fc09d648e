package http

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/mrlokans/librarylite/internal/entities"
	"github.com/mrlokans/librarylite/internal/forms"
	"github.com/mrlokans/librarylite/internal/logging"
	"github.com/mrlokans/librarylite/internal/middleware"
)

const booksPagePath = "/books/page"

// Flash messages shown on the listing page after a successful mutation.
const (
	FlashBookAdded   = "Book added"
	FlashBookUpdated = "Book updated"
	FlashBookDeleted = "Book deleted"
)

// bookFormView is the data passed to the "book_form" template.
type bookFormView struct {
	Heading   string
	Action    string
	Submit    string
	BookID    uint
	Form      forms.BookForm
	Errors    []string
	CSRFField template.HTML
}

// BookFormsController serves the server-rendered HTML pages.
type BookFormsController struct {
	store   BookStore
	flasher Flasher
}

// NewBookFormsController creates the HTML controller. flasher may be nil, in
// which case no messages are shown after redirects.
func NewBookFormsController(store BookStore, flasher Flasher) *BookFormsController {
	return &BookFormsController{
		store:   store,
		flasher: flasher,
	}
}

// HomePage renders the landing page.
// GET /
func (controller *BookFormsController) HomePage(c *gin.Context) {
	count, err := controller.store.Count(c.Request.Context())
	if err != nil {
		logging.FromContext(c.Request.Context()).Warn().Err(err).Msg("Failed to count books for home page")
	}

	c.HTML(http.StatusOK, "index", gin.H{
		"BookCount": count,
	})
}

// BooksPage lists every book, newest first.
// GET /books/page
func (controller *BookFormsController) BooksPage(c *gin.Context) {
	books, err := controller.store.ListNewestFirst(c.Request.Context())
	if err != nil {
		controller.renderError(c, err, "list books")
		return
	}

	c.HTML(http.StatusOK, "books_page", gin.H{
		"Books":     books,
		"Flash":     controller.popFlash(c),
		"CSRFField": middleware.CSRFField(c),
	})
}

// NewBookPage renders an empty creation form.
// GET /books/new
func (controller *BookFormsController) NewBookPage(c *gin.Context) {
	controller.renderForm(c, newBookView(forms.BookForm{}, nil))
}

// CreateBook validates the submitted form and stores the book.
// POST /books/new
func (controller *BookFormsController) CreateBook(c *gin.Context) {
	form, ok := controller.bindForm(c)
	if !ok {
		return
	}

	fields, errs := form.Validate()
	if len(errs) > 0 {
		controller.renderForm(c, newBookView(form.Normalized(), errs))
		return
	}

	if _, err := controller.store.Create(c.Request.Context(), fields); err != nil {
		controller.renderError(c, err, "create book")
		return
	}

	controller.flash(c, FlashBookAdded)
	c.Redirect(http.StatusSeeOther, booksPagePath)
}

// EditBookPage renders the edit form pre-filled from the stored book.
// GET /books/:id/edit
func (controller *BookFormsController) EditBookPage(c *gin.Context) {
	book, ok := controller.loadBook(c)
	if !ok {
		return
	}

	controller.renderForm(c, editBookView(book.ID, forms.FromBook(book), nil))
}

// UpdateBook validates the submitted form and overwrites the stored book.
// The same rules as creation apply.
// POST /books/:id/edit
func (controller *BookFormsController) UpdateBook(c *gin.Context) {
	book, ok := controller.loadBook(c)
	if !ok {
		return
	}

	form, ok := controller.bindForm(c)
	if !ok {
		return
	}

	fields, errs := form.Validate()
	if len(errs) > 0 {
		controller.renderForm(c, editBookView(book.ID, form.Normalized(), errs))
		return
	}

	if _, err := controller.store.Update(c.Request.Context(), book.ID, fields); err != nil {
		if errors.Is(err, entities.ErrBookNotFound) {
			controller.renderNotFound(c)
			return
		}
		controller.renderError(c, err, "update book")
		return
	}

	controller.flash(c, FlashBookUpdated)
	c.Redirect(http.StatusFound, booksPagePath)
}

// DeleteBook removes the book and returns to the listing.
// POST /books/:id/delete
func (controller *BookFormsController) DeleteBook(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		controller.renderNotFound(c)
		return
	}

	if err := controller.store.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, entities.ErrBookNotFound) {
			controller.renderNotFound(c)
			return
		}
		controller.renderError(c, err, "delete book")
		return
	}

	controller.flash(c, FlashBookDeleted)
	c.Redirect(http.StatusSeeOther, booksPagePath)
}

func newBookView(form forms.BookForm, errs []string) bookFormView {
	return bookFormView{
		Heading: "Add a book",
		Action:  "/books/new",
		Submit:  "Add book",
		Form:    form,
		Errors:  errs,
	}
}

func editBookView(id uint, form forms.BookForm, errs []string) bookFormView {
	return bookFormView{
		Heading: "Edit book",
		Action:  fmt.Sprintf("/books/%d/edit", id),
		Submit:  "Save changes",
		BookID:  id,
		Form:    form,
		Errors:  errs,
	}
}

// loadBook resolves the :id parameter, rendering the not-found page when
// the id is malformed or unknown.
func (controller *BookFormsController) loadBook(c *gin.Context) (*entities.Book, bool) {
	id, ok := parseID(c, "id")
	if !ok {
		controller.renderNotFound(c)
		return nil, false
	}

	book, err := controller.store.GetByID(c.Request.Context(), id)
	if errors.Is(err, entities.ErrBookNotFound) {
		controller.renderNotFound(c)
		return nil, false
	}
	if err != nil {
		controller.renderError(c, err, "get book")
		return nil, false
	}
	return book, true
}

func (controller *BookFormsController) bindForm(c *gin.Context) (forms.BookForm, bool) {
	var form forms.BookForm
	if err := c.ShouldBindWith(&form, binding.Form); err != nil {
		c.String(http.StatusBadRequest, "Invalid form submission")
		return form, false
	}
	return form, true
}

// renderForm redisplays the form with status 200, including after
// validation errors.
func (controller *BookFormsController) renderForm(c *gin.Context, view bookFormView) {
	view.CSRFField = middleware.CSRFField(c)
	c.HTML(http.StatusOK, "book_form", view)
}

func (controller *BookFormsController) renderNotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "not_found", gin.H{
		"Message": "Book not found",
	})
}

func (controller *BookFormsController) renderError(c *gin.Context, err error, operation string) {
	logging.FromContext(c.Request.Context()).Error().Err(err).Str("operation", operation).Msg("Internal error")
	c.HTML(http.StatusInternalServerError, "error", gin.H{
		"Message": "Something went wrong. Please try again.",
	})
}

func (controller *BookFormsController) flash(c *gin.Context, message string) {
	if controller.flasher != nil {
		controller.flasher.Flash(c.Request.Context(), message)
	}
}

func (controller *BookFormsController) popFlash(c *gin.Context) string {
	if controller.flasher == nil {
		return ""
	}
	return controller.flasher.PopFlash(c.Request.Context())
}
