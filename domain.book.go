package main

import (
	"context"
	"time"
)

// Book represents a book entity. The ID is assigned by
// the persistence gateway at creation time.
type Book struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Review represents a reader review attached to a book.
type Review struct {
	ID           int64     `json:"id"`
	BookID       int64     `json:"bookId"`
	ReviewerName string    `json:"reviewerName"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// BookWithReviews is the payload served when fetching a single book.
type BookWithReviews struct {
	Book
	Reviews []Review `json:"reviews"`
}

// BookStorage defines the persistence gateway operations on book entities.
// GetAll returns books ordered by ascending id (insertion order).
type BookStorage interface {
	Add(ctx context.Context, book Book) (Book, error)
	GetOne(ctx context.Context, id int64) (Book, error)
	GetAll(ctx context.Context) ([]Book, error)
	Update(ctx context.Context, id int64, book Book) (Book, error)
	Delete(ctx context.Context, id int64) error
}

// ReviewStorage defines the persistence gateway operations on review entities.
// Add fails with ErrBookNotFound when the target book does not exist.
// GetByBook returns an empty slice when the book has no reviews.
type ReviewStorage interface {
	Add(ctx context.Context, review Review) (Review, error)
	GetOne(ctx context.Context, id int64) (Review, error)
	GetAll(ctx context.Context) ([]Review, error)
	GetByBook(ctx context.Context, bookID int64) ([]Review, error)
	Update(ctx context.Context, id int64, review Review) (Review, error)
	Delete(ctx context.Context, id int64) error
}
