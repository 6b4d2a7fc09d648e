package http

import (
	"context"

	"github.com/mrlokans/librarylite/internal/entities"
)

// BookReader provides read access to books.
type BookReader interface {
	List(ctx context.Context) ([]entities.Book, error)
	ListNewestFirst(ctx context.Context) ([]entities.Book, error)
	GetByID(ctx context.Context, id uint) (*entities.Book, error)
	Count(ctx context.Context) (int64, error)
}

// BookWriter provides the mutating book operations. Update and Delete return
// entities.ErrBookNotFound for unknown ids.
type BookWriter interface {
	Create(ctx context.Context, fields entities.BookFields) (*entities.Book, error)
	Update(ctx context.Context, id uint, fields entities.BookFields) (*entities.Book, error)
	Delete(ctx context.Context, id uint) error
}

// BookStore combines read and write access for the book controllers.
type BookStore interface {
	BookReader
	BookWriter
}

// Flasher stores one-shot messages shown after a redirect.
type Flasher interface {
	Flash(ctx context.Context, message string)
	PopFlash(ctx context.Context) string
}
