package books

import (
	"context"

	"github.com/mrlokans/librarylite/internal/entities"
)

func intPtr(v int) *int { return &v }
func strPtr(v string) *string { return &v }

// SeedData returns example books used to pre-populate an empty library.
func SeedData() []entities.BookFields {
	return []entities.BookFields{
		{
			Title:       "The Go Programming Language",
			Author:      "Alan A. A. Donovan",
			Year:        intPtr(2015),
			Description: strPtr("A thorough introduction to Go and its standard library."),
		},
		{
			Title:  "Concurrency in Go",
			Author: "Katherine Cox-Buday",
			Year:   intPtr(2017),
		},
		{
			Title:  "The Pragmatic Programmer",
			Author: "Andrew Hunt",
			Year:   intPtr(1999),
		},
		{
			Title:  "Designing Data-Intensive Applications",
			Author: "Martin Kleppmann",
			Year:   intPtr(2017),
		},
	}
}

// Seed inserts books when the table is empty and returns how many were
// created. A non-empty table is left untouched.
func (r *Repository) Seed(ctx context.Context, books []entities.BookFields) (int, error) {
	count, err := r.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	created := 0
	for _, fields := range books {
		if _, err := r.Create(ctx, fields); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
