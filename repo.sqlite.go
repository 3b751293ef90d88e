package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// sqliteTimeLayout is the storage format of timestamps. It sorts
// lexicographically and round-trips through the TEXT columns.
const sqliteTimeLayout = time.RFC3339Nano

type sqliteBookStorage struct {
	logger *zap.Logger
	db     *sql.DB
}

type sqliteReviewStorage struct {
	logger *zap.Logger
	db     *sql.DB
}

// GetSQLiteDB opens the database file, enforces foreign keys and
// applies the schema. It provides a ready to use pooled handle.
func GetSQLiteDB(config *Config) (*sql.DB, error) {
	busyTimeout := config.SQLite.BusyTimeout
	if busyTimeout <= 0 {
		busyTimeout = 5 * time.Second
	}
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(%d)",
		config.SQLite.FilePath, busyTimeout.Milliseconds())
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open the database: %v", err)
	}
	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("test connection failed: %v", err)
	}
	if err = MigrateSQLiteSchema(db); err != nil {
		return nil, fmt.Errorf("failed to set up schema: %v", err)
	}
	return db, nil
}

// MigrateSQLiteSchema creates the books and reviews tables when missing.
// Reviews cascade on book deletion so a listing never references a gone book.
func MigrateSQLiteSchema(db *sql.DB) error {
	_, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS books (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		author TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS reviews (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		book_id INTEGER NOT NULL REFERENCES books (id) ON DELETE CASCADE,
		reviewer_name TEXT NOT NULL,
		rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
		comment TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_reviews_book_id ON reviews (book_id);`)
	return err
}

// NewSQLiteBookStorage provides an instance of sqlite-based book storage.
func NewSQLiteBookStorage(logger *zap.Logger, db *sql.DB) BookStorage {
	return &sqliteBookStorage{
		logger: logger,
		db:     db,
	}
}

// NewSQLiteReviewStorage provides an instance of sqlite-based review storage.
func NewSQLiteReviewStorage(logger *zap.Logger, db *sql.DB) ReviewStorage {
	return &sqliteReviewStorage{
		logger: logger,
		db:     db,
	}
}

// Add inserts a new book record and returns it with its assigned id.
func (s *sqliteBookStorage) Add(ctx context.Context, book Book) (Book, error) {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO books (title, author, description, created_at) VALUES (?, ?, ?, ?)`,
		book.Title, book.Author, book.Description, book.CreatedAt.Format(sqliteTimeLayout))
	if err != nil {
		return book, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return book, err
	}
	book.ID = id
	return book, nil
}

// GetOne retrieves a book record based on its ID.
func (s *sqliteBookStorage) GetOne(ctx context.Context, id int64) (Book, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, author, description, created_at FROM books WHERE id = ?`, id)
	book, err := scanBook(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Book{}, ErrBookNotFound
	}
	return book, err
}

// GetAll retrieves all books ordered by ascending id.
func (s *sqliteBookStorage) GetAll(ctx context.Context) ([]Book, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, author, description, created_at FROM books ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := []Book{}
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	return books, rows.Err()
}

// Update replaces the mutable fields of an existing book record.
func (s *sqliteBookStorage) Update(ctx context.Context, id int64, book Book) (Book, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE books SET title = ?, author = ?, description = ? WHERE id = ?`,
		book.Title, book.Author, book.Description, id)
	if err != nil {
		return book, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return book, err
	}
	if n == 0 {
		return book, ErrBookNotFound
	}
	return s.GetOne(ctx, id)
}

// Delete removes a book record based on its ID. Its reviews go with it.
func (s *sqliteBookStorage) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrBookNotFound
	}
	return nil
}

// Add inserts a new review record after checking the target book exists.
func (s *sqliteReviewStorage) Add(ctx context.Context, review Review) (Review, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return review, err
	}
	defer tx.Rollback()

	var exists int
	if err = tx.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM books WHERE id = ?`, review.BookID).Scan(&exists); err != nil {
		return review, err
	}
	if exists == 0 {
		return review, ErrBookNotFound
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO reviews (book_id, reviewer_name, rating, comment, created_at) VALUES (?, ?, ?, ?, ?)`,
		review.BookID, review.ReviewerName, review.Rating, review.Comment, review.CreatedAt.Format(sqliteTimeLayout))
	if err != nil {
		return review, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return review, err
	}
	if err = tx.Commit(); err != nil {
		return review, err
	}
	review.ID = id
	return review, nil
}

// GetOne retrieves a review record based on its ID.
func (s *sqliteReviewStorage) GetOne(ctx context.Context, id int64) (Review, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, book_id, reviewer_name, rating, comment, created_at FROM reviews WHERE id = ?`, id)
	review, err := scanReview(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Review{}, ErrReviewNotFound
	}
	return review, err
}

// GetAll retrieves all reviews ordered by ascending id.
func (s *sqliteReviewStorage) GetAll(ctx context.Context) ([]Review, error) {
	return s.queryReviews(ctx,
		`SELECT id, book_id, reviewer_name, rating, comment, created_at FROM reviews ORDER BY id ASC`)
}

// GetByBook retrieves all reviews of a given book ordered by ascending id.
// A book without reviews yields an empty list, not an error.
func (s *sqliteReviewStorage) GetByBook(ctx context.Context, bookID int64) ([]Review, error) {
	return s.queryReviews(ctx,
		`SELECT id, book_id, reviewer_name, rating, comment, created_at FROM reviews WHERE book_id = ? ORDER BY id ASC`, bookID)
}

// Update replaces the mutable fields of an existing review record.
func (s *sqliteReviewStorage) Update(ctx context.Context, id int64, review Review) (Review, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE reviews SET reviewer_name = ?, rating = ?, comment = ? WHERE id = ?`,
		review.ReviewerName, review.Rating, review.Comment, id)
	if err != nil {
		return review, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return review, err
	}
	if n == 0 {
		return review, ErrReviewNotFound
	}
	return s.GetOne(ctx, id)
}

// Delete removes a review record based on its ID.
func (s *sqliteReviewStorage) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrReviewNotFound
	}
	return nil
}

func (s *sqliteReviewStorage) queryReviews(ctx context.Context, query string, args ...interface{}) ([]Review, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []Review{}
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	return reviews, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBook(row rowScanner) (Book, error) {
	var book Book
	var createdAt string
	if err := row.Scan(&book.ID, &book.Title, &book.Author, &book.Description, &createdAt); err != nil {
		return book, err
	}
	t, err := time.Parse(sqliteTimeLayout, createdAt)
	if err != nil {
		return book, fmt.Errorf("malformed created_at column: %v", err)
	}
	book.CreatedAt = t
	return book, nil
}

func scanReview(row rowScanner) (Review, error) {
	var review Review
	var createdAt string
	if err := row.Scan(&review.ID, &review.BookID, &review.ReviewerName, &review.Rating, &review.Comment, &createdAt); err != nil {
		return review, err
	}
	t, err := time.Parse(sqliteTimeLayout, createdAt)
	if err != nil {
		return review, fmt.Errorf("malformed created_at column: %v", err)
	}
	review.CreatedAt = t
	return review, nil
}
