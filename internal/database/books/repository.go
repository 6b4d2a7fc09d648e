// Package books provides database operations for the books table.
//
// # Interface Implementation
//
//	var _ http.BookStore = (*Repository)(nil)
//
// # Usage
//
//	repo := books.NewRepository(db)
//	book, err := repo.GetByID(ctx, 123)
package books

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/librarylite/internal/entities"
)

// SessionProvider hands out store handles scoped to a request context.
// *database.Database implements it.
type SessionProvider interface {
	Session(ctx context.Context) *gorm.DB
}

// Repository handles all book database operations.
type Repository struct {
	sessions SessionProvider
}

// NewRepository creates a new books repository.
func NewRepository(sessions SessionProvider) *Repository {
	return &Repository{sessions: sessions}
}

// List returns every book in store order.
func (r *Repository) List(ctx context.Context) ([]entities.Book, error) {
	books := []entities.Book{}
	if err := r.sessions.Session(ctx).Find(&books).Error; err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return books, nil
}

// ListNewestFirst returns every book, most recently created first.
func (r *Repository) ListNewestFirst(ctx context.Context) ([]entities.Book, error) {
	books := []entities.Book{}
	if err := r.sessions.Session(ctx).Order("id DESC").Find(&books).Error; err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return books, nil
}

// GetByID returns entities.ErrBookNotFound when no book has the given id.
func (r *Repository) GetByID(ctx context.Context, id uint) (*entities.Book, error) {
	return r.getByID(r.sessions.Session(ctx), id)
}

func (r *Repository) getByID(db *gorm.DB, id uint) (*entities.Book, error) {
	var book entities.Book
	err := db.First(&book, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, entities.ErrBookNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get book %d: %w", id, err)
	}
	return &book, nil
}

// Create inserts a new book. The store assigns the id.
func (r *Repository) Create(ctx context.Context, fields entities.BookFields) (*entities.Book, error) {
	book := &entities.Book{}
	fields.Apply(book)

	if err := r.sessions.Session(ctx).Create(book).Error; err != nil {
		return nil, fmt.Errorf("failed to create book: %w", err)
	}
	return book, nil
}

// Update overwrites title, author, year and description of an existing book,
// nil values included.
func (r *Repository) Update(ctx context.Context, id uint, fields entities.BookFields) (*entities.Book, error) {
	db := r.sessions.Session(ctx)

	book, err := r.getByID(db, id)
	if err != nil {
		return nil, err
	}

	fields.Apply(book)

	// Save writes every column, so nil year/description become NULL
	if err := db.Save(book).Error; err != nil {
		return nil, fmt.Errorf("failed to update book %d: %w", id, err)
	}
	return book, nil
}

// Delete permanently removes a book.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	db := r.sessions.Session(ctx)

	book, err := r.getByID(db, id)
	if err != nil {
		return err
	}

	if err := db.Delete(book).Error; err != nil {
		return fmt.Errorf("failed to delete book %d: %w", id, err)
	}
	return nil
}

// Count returns the number of stored books.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.sessions.Session(ctx).Model(&entities.Book{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count books: %w", err)
	}
	return count, nil
}
