package main

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// BooksListingKey is the single cache key covering the unfiltered,
// unpaginated books listing.
const BooksListingKey = "books:all"

// CacheSource reports which path served a books listing read.
type CacheSource int

const (
	SourceHit CacheSource = iota
	SourceMiss
	SourceCacheDown
)

func (s CacheSource) String() string {
	switch s {
	case SourceHit:
		return "hit"
	case SourceMiss:
		return "miss"
	case SourceCacheDown:
		return "cache_down"
	default:
		return "unknown"
	}
}

var _ ListingCacheProvider = (*ListingCache)(nil) // ensure ListingCache implements ListingCacheProvider.

// ListingCacheProvider is the coordinator contract between the read path
// and the cache backend. FetchAllBooks only fails when the persistence
// gateway fails; cache trouble degrades to a database read. Invalidate
// never fails: a leftover stale entry dies on its own within the ttl.
type ListingCacheProvider interface {
	FetchAllBooks(ctx context.Context) ([]Book, CacheSource, error)
	InvalidateBooksListing(ctx context.Context)
}

// ListingCache coordinates the cache-aside read path for the books
// listing. It holds no mutable state of its own so a single instance is
// shared by all concurrent request handlers.
type ListingCache struct {
	logger  *zap.Logger
	cache   Cacher
	storage BookStorage
	clock   Clocker
	ttl     time.Duration
	key     string
}

// NewListingCache provides a ready to use books listing coordinator.
func NewListingCache(logger *zap.Logger, config *CacheConfig, clock Clocker, cache Cacher, storage BookStorage) *ListingCache {
	key := BooksListingKey
	if config.KeyNamespace != "" {
		key = config.KeyNamespace + ":" + BooksListingKey
	}
	return &ListingCache{
		logger:  logger,
		cache:   cache,
		storage: storage,
		clock:   clock,
		ttl:     config.TTL,
		key:     key,
	}
}

// Key returns the derived cache key of the books listing.
func (lc *ListingCache) Key() string {
	return lc.key
}

// FetchAllBooks serves the listing cache-first. A decodable cached value
// is returned as-is without touching the database. An absent key falls
// through to the database and repopulates the entry. Any cache failure,
// including a malformed payload, is logged and degrades to a plain
// database read; only a database failure reaches the caller.
func (lc *ListingCache) FetchAllBooks(ctx context.Context) ([]Book, CacheSource, error) {
	source := SourceMiss
	payload, err := lc.cache.Get(ctx, lc.key)
	switch {
	case err == nil:
		books, derr := DecodeBookList(payload)
		if derr == nil {
			return books, SourceHit, nil
		}
		lc.logger.Warn("listing cache: dropping undecodable entry", zap.String("cache.key", lc.key), zap.Error(derr))
		source = SourceCacheDown
	case errors.Is(err, ErrCacheMiss):
		source = SourceMiss
	default:
		lc.logger.Warn("listing cache: backend unavailable on get", zap.String("cache.key", lc.key), zap.Error(err))
		source = SourceCacheDown
	}

	books, err := lc.storage.GetAll(ctx)
	if err != nil {
		return nil, source, err
	}

	lc.repopulate(ctx, books)
	return books, source, nil
}

// InvalidateBooksListing drops the cached listing after a successful
// write. It must be called only once the write is durable: invalidation
// is a post-write side effect, never a pre-condition. A failed delete is
// tolerable since the entry expires within the ttl anyway.
func (lc *ListingCache) InvalidateBooksListing(ctx context.Context) {
	if err := lc.cache.Delete(ctx, lc.key); err != nil {
		lc.logger.Warn("listing cache: failed to invalidate", zap.String("cache.key", lc.key), zap.Error(err))
	}
}

// repopulate writes the freshly read listing back to the cache on a best
// effort basis. A failed cache write must never fail the read request.
func (lc *ListingCache) repopulate(ctx context.Context, books []Book) {
	data, err := EncodeBookList(books, lc.clock.Now().UTC())
	if err != nil {
		lc.logger.Error("listing cache: failed to encode listing", zap.String("cache.key", lc.key), zap.Error(err))
		return
	}
	if err := lc.cache.Set(ctx, lc.key, data, lc.ttl); err != nil {
		lc.logger.Warn("listing cache: failed to repopulate", zap.String("cache.key", lc.key), zap.Error(err))
	}
}
