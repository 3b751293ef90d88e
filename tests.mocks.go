package main

import (
	"context"
	"time"
)

// This file contains mocks definitions needed to perform unit tests.

type MockBookStorage struct {
	AddFunc    func(ctx context.Context, book Book) (Book, error)
	GetOneFunc func(ctx context.Context, id int64) (Book, error)
	GetAllFunc func(ctx context.Context) ([]Book, error)
	UpdateFunc func(ctx context.Context, id int64, book Book) (Book, error)
	DeleteFunc func(ctx context.Context, id int64) error
}

// Add mocks the behavior of book creation by the persistence gateway.
func (m *MockBookStorage) Add(ctx context.Context, book Book) (Book, error) {
	return m.AddFunc(ctx, book)
}

// GetOne mocks the behavior of retrieving a book by the persistence gateway.
func (m *MockBookStorage) GetOne(ctx context.Context, id int64) (Book, error) {
	return m.GetOneFunc(ctx, id)
}

// GetAll mocks the behavior of retrieving all books by the persistence gateway.
func (m *MockBookStorage) GetAll(ctx context.Context) ([]Book, error) {
	return m.GetAllFunc(ctx)
}

// Update mocks the behavior of updating a book by the persistence gateway.
func (m *MockBookStorage) Update(ctx context.Context, id int64, book Book) (Book, error) {
	return m.UpdateFunc(ctx, id, book)
}

// Delete mocks the behavior of deleting a book by the persistence gateway.
func (m *MockBookStorage) Delete(ctx context.Context, id int64) error {
	return m.DeleteFunc(ctx, id)
}

type MockReviewStorage struct {
	AddFunc       func(ctx context.Context, review Review) (Review, error)
	GetOneFunc    func(ctx context.Context, id int64) (Review, error)
	GetAllFunc    func(ctx context.Context) ([]Review, error)
	GetByBookFunc func(ctx context.Context, bookID int64) ([]Review, error)
	UpdateFunc    func(ctx context.Context, id int64, review Review) (Review, error)
	DeleteFunc    func(ctx context.Context, id int64) error
}

func (m *MockReviewStorage) Add(ctx context.Context, review Review) (Review, error) {
	return m.AddFunc(ctx, review)
}

func (m *MockReviewStorage) GetOne(ctx context.Context, id int64) (Review, error) {
	return m.GetOneFunc(ctx, id)
}

func (m *MockReviewStorage) GetAll(ctx context.Context) ([]Review, error) {
	return m.GetAllFunc(ctx)
}

func (m *MockReviewStorage) GetByBook(ctx context.Context, bookID int64) ([]Review, error) {
	return m.GetByBookFunc(ctx, bookID)
}

func (m *MockReviewStorage) Update(ctx context.Context, id int64, review Review) (Review, error) {
	return m.UpdateFunc(ctx, id, review)
}

func (m *MockReviewStorage) Delete(ctx context.Context, id int64) error {
	return m.DeleteFunc(ctx, id)
}

// MockCacher implements a fake cache backend.
type MockCacher struct {
	GetFunc    func(ctx context.Context, key string) ([]byte, error)
	SetFunc    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
}

func (m *MockCacher) Get(ctx context.Context, key string) ([]byte, error) {
	return m.GetFunc(ctx, key)
}

func (m *MockCacher) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return m.SetFunc(ctx, key, value, ttl)
}

func (m *MockCacher) Delete(ctx context.Context, key string) error {
	return m.DeleteFunc(ctx, key)
}

// MockListingCache implements a fake books listing coordinator.
type MockListingCache struct {
	FetchAllBooksFunc func(ctx context.Context) ([]Book, CacheSource, error)
	Invalidations     int
}

func (m *MockListingCache) FetchAllBooks(ctx context.Context) ([]Book, CacheSource, error) {
	return m.FetchAllBooksFunc(ctx)
}

func (m *MockListingCache) InvalidateBooksListing(_ context.Context) {
	m.Invalidations++
}

// MockQueuer implements a fake audit events queue.
type MockQueuer struct {
	PushFunc func(ctx context.Context, qid string, event AuditEvent) error
	PopFunc  func(ctx context.Context, qids ...string) (string, AuditEvent, error)
}

func (m *MockQueuer) Push(ctx context.Context, qid string, event AuditEvent) error {
	return m.PushFunc(ctx, qid, event)
}

func (m *MockQueuer) Pop(ctx context.Context, qids ...string) (string, AuditEvent, error) {
	return m.PopFunc(ctx, qids...)
}

// MockAuditStorage implements a fake audit trail store.
type MockAuditStorage struct {
	RecordFunc func(ctx context.Context, event AuditEvent) error
	ListFunc   func(ctx context.Context) ([]AuditEvent, error)
}

func (m *MockAuditStorage) Record(ctx context.Context, event AuditEvent) error {
	return m.RecordFunc(ctx, event)
}

func (m *MockAuditStorage) List(ctx context.Context) ([]AuditEvent, error) {
	return m.ListFunc(ctx)
}

// MockClocker implements a fake Clocker.
type MockClocker struct {
	MockNow time.Time
}

// NewMockClocker returns a mocked instance with fixed time.
func NewMockClocker() *MockClocker {
	return &MockClocker{time.Date(2023, 0o7, 0o2, 0o0, 0o0, 0o0, 0o00000000, time.UTC)}
}

// Now returns an already defined time to be used as mock. This
// equals to `Sun, 02 Jul 2023 00:00:00 UTC` in time.RFC1123 format.
// equals to `2023-07-02 00:00:00 +0000 UTC` in String format.
func (mck *MockClocker) Now() time.Time {
	return mck.MockNow
}

// MockUIDHandler implements a fake UIDHandler.
type MockUIDHandler struct {
	MockedUID string
}

// NewMockUIDHandler returns a mocked instance with predictable id.
func NewMockUIDHandler(id string) *MockUIDHandler {
	return &MockUIDHandler{MockedUID: id}
}

// Generate constructs a predictable id to be used as mock.
func (muid *MockUIDHandler) Generate(prefix string) string {
	return prefix + ":" + muid.MockedUID
}
