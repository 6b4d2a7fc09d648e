// Package forms validates untrusted HTML form input before it reaches the
// repository.
package forms

import (
	"strconv"
	"strings"

	"github.com/mrlokans/librarylite/internal/entities"
)

// Validation messages shown above the book form.
const (
	ErrRequiredFields = "Title and author are required"
	ErrYearNotInteger = "Year must be an integer"
)

// BookForm is the raw book form as submitted by the browser.
type BookForm struct {
	Title       string `form:"title"`
	Author      string `form:"author"`
	Year        string `form:"year"`
	Description string `form:"description"`
}

// FromBook pre-fills a form with the values of an existing book.
func FromBook(b *entities.Book) BookForm {
	form := BookForm{Title: b.Title, Author: b.Author}
	if b.Year != nil {
		form.Year = strconv.Itoa(*b.Year)
	}
	if b.Description != nil {
		form.Description = *b.Description
	}
	return form
}

// Normalized returns the form with surrounding whitespace removed.
func (f BookForm) Normalized() BookForm {
	return BookForm{
		Title:       strings.TrimSpace(f.Title),
		Author:      strings.TrimSpace(f.Author),
		Year:        strings.TrimSpace(f.Year),
		Description: strings.TrimSpace(f.Description),
	}
}

// Validate converts the form into book fields. Every check runs, so the
// returned slice may hold more than one message; the fields are only
// meaningful when it is empty.
func (f BookForm) Validate() (entities.BookFields, []string) {
	n := f.Normalized()
	var errs []string

	if n.Title == "" || n.Author == "" {
		errs = append(errs, ErrRequiredFields)
	}

	fields := entities.BookFields{
		Title:  n.Title,
		Author: n.Author,
	}

	if n.Year != "" {
		year, err := strconv.Atoi(n.Year)
		if err != nil {
			errs = append(errs, ErrYearNotInteger)
		} else {
			fields.Year = &year
		}
	}

	if n.Description != "" {
		description := n.Description
		fields.Description = &description
	}

	return fields, errs
}
