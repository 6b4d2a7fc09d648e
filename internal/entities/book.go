package entities

import "errors"

// ErrBookNotFound is returned when no book matches the requested id.
var ErrBookNotFound = errors.New("book not found")

// Book is the only persisted entity. Title and author are checked for
// emptiness by the form layer; the table itself accepts any string.
type Book struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string  `gorm:"not null" json:"title"`
	Author      string  `gorm:"not null" json:"author"`
	Year        *int    `json:"year"`
	Description *string `json:"description"`
}

func (Book) TableName() string {
	return "books"
}

// BookFields holds the mutable part of a book, as accepted by create and
// update.
type BookFields struct {
	Title       string
	Author      string
	Year        *int
	Description *string
}

// Apply overwrites every mutable field of b, including nil year and
// description.
func (f BookFields) Apply(b *Book) {
	b.Title = f.Title
	b.Author = f.Author
	b.Year = f.Year
	b.Description = f.Description
}

// Fields returns the mutable part of b.
func (b Book) Fields() BookFields {
	return BookFields{
		Title:       b.Title,
		Author:      b.Author,
		Year:        b.Year,
		Description: b.Description,
	}
}
