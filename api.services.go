package main

import (
	"context"

	"go.uber.org/zap"
)

// BookServiceProvider sits between the request handlers and the
// persistence gateway. Writes reach the database first; listing
// invalidation and audit publishing happen after, as side effects.
type BookServiceProvider interface {
	Add(ctx context.Context, book Book) (Book, error)
	GetOne(ctx context.Context, id int64) (Book, error)
	GetAll(ctx context.Context) ([]Book, CacheSource, error)
	Update(ctx context.Context, id int64, book Book) (Book, error)
	Delete(ctx context.Context, id int64) error
}

type ReviewServiceProvider interface {
	Add(ctx context.Context, review Review) (Review, error)
	GetOne(ctx context.Context, id int64) (Review, error)
	GetAll(ctx context.Context) ([]Review, error)
	GetByBook(ctx context.Context, bookID int64) ([]Review, error)
	Update(ctx context.Context, id int64, review Review) (Review, error)
	Delete(ctx context.Context, id int64) error
}

type BookService struct {
	logger  *zap.Logger
	clock   Clocker
	storage BookStorage
	listing ListingCacheProvider
	queue   Queuer
}

func NewBookService(logger *zap.Logger, clock Clocker, storage BookStorage, listing ListingCacheProvider, queue Queuer) BookServiceProvider {
	return &BookService{
		logger:  logger,
		clock:   clock,
		storage: storage,
		listing: listing,
		queue:   queue,
	}
}

func (bs *BookService) Add(ctx context.Context, book Book) (Book, error) {
	book.CreatedAt = bs.clock.Now().UTC()
	created, err := bs.storage.Add(ctx, book)
	if err != nil {
		return created, err
	}
	bs.listing.InvalidateBooksListing(ctx)
	bs.audit(ctx, CreateOp, BookEntity, created.ID)
	return created, nil
}

func (bs *BookService) GetOne(ctx context.Context, id int64) (Book, error) {
	return bs.storage.GetOne(ctx, id)
}

func (bs *BookService) GetAll(ctx context.Context) ([]Book, CacheSource, error) {
	return bs.listing.FetchAllBooks(ctx)
}

func (bs *BookService) Update(ctx context.Context, id int64, book Book) (Book, error) {
	updated, err := bs.storage.Update(ctx, id, book)
	if err != nil {
		return updated, err
	}
	bs.listing.InvalidateBooksListing(ctx)
	bs.audit(ctx, UpdateOp, BookEntity, id)
	return updated, nil
}

func (bs *BookService) Delete(ctx context.Context, id int64) error {
	if err := bs.storage.Delete(ctx, id); err != nil {
		return err
	}
	bs.listing.InvalidateBooksListing(ctx)
	bs.audit(ctx, DeleteOp, BookEntity, id)
	return nil
}

func (bs *BookService) audit(ctx context.Context, op, entity string, id int64) {
	event := NewAuditEvent(op, entity, id, bs.clock.Now().UTC())
	if err := bs.queue.Push(ctx, AuditQueue, event); err != nil {
		bs.logger.Error("service: failed to push audit event to queue", zap.String("qid", AuditQueue), zap.Error(err))
	}
}

type ReviewService struct {
	logger  *zap.Logger
	clock   Clocker
	storage ReviewStorage
	books   BookStorage
	listing ListingCacheProvider
	queue   Queuer
}

func NewReviewService(logger *zap.Logger, clock Clocker, storage ReviewStorage, books BookStorage, listing ListingCacheProvider, queue Queuer) ReviewServiceProvider {
	return &ReviewService{
		logger:  logger,
		clock:   clock,
		storage: storage,
		books:   books,
		listing: listing,
		queue:   queue,
	}
}

func (rs *ReviewService) Add(ctx context.Context, review Review) (Review, error) {
	review.CreatedAt = rs.clock.Now().UTC()
	created, err := rs.storage.Add(ctx, review)
	if err != nil {
		return created, err
	}
	rs.listing.InvalidateBooksListing(ctx)
	rs.audit(ctx, CreateOp, ReviewEntity, created.ID)
	return created, nil
}

func (rs *ReviewService) GetOne(ctx context.Context, id int64) (Review, error) {
	return rs.storage.GetOne(ctx, id)
}

func (rs *ReviewService) GetAll(ctx context.Context) ([]Review, error) {
	return rs.storage.GetAll(ctx)
}

// GetByBook lists the reviews of an existing book. An existing book
// without reviews gives back an empty list.
func (rs *ReviewService) GetByBook(ctx context.Context, bookID int64) ([]Review, error) {
	if _, err := rs.books.GetOne(ctx, bookID); err != nil {
		return nil, err
	}
	return rs.storage.GetByBook(ctx, bookID)
}

func (rs *ReviewService) Update(ctx context.Context, id int64, review Review) (Review, error) {
	updated, err := rs.storage.Update(ctx, id, review)
	if err != nil {
		return updated, err
	}
	rs.listing.InvalidateBooksListing(ctx)
	rs.audit(ctx, UpdateOp, ReviewEntity, id)
	return updated, nil
}

func (rs *ReviewService) Delete(ctx context.Context, id int64) error {
	if err := rs.storage.Delete(ctx, id); err != nil {
		return err
	}
	rs.listing.InvalidateBooksListing(ctx)
	rs.audit(ctx, DeleteOp, ReviewEntity, id)
	return nil
}

func (rs *ReviewService) audit(ctx context.Context, op, entity string, id int64) {
	event := NewAuditEvent(op, entity, id, rs.clock.Now().UTC())
	if err := rs.queue.Push(ctx, AuditQueue, event); err != nil {
		rs.logger.Error("service: failed to push audit event to queue", zap.String("qid", AuditQueue), zap.Error(err))
	}
}
