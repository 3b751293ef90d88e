package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testBooks() []Book {
	now := NewMockClocker().Now()
	return []Book{
		{ID: 1, Title: "The Go Programming Language", Author: "Donovan & Kernighan", CreatedAt: now},
		{ID: 2, Title: "Designing Data-Intensive Applications", Author: "Martin Kleppmann", CreatedAt: now},
	}
}

// TestFetchAllBooks_Miss ensures an absent cache entry falls through to
// the database and repopulates the cache with the configured ttl.
func TestFetchAllBooks_Miss(t *testing.T) {
	books := testBooks()
	var setKey string
	var setValue []byte
	var setTTL time.Duration

	mockCache := &MockCacher{
		GetFunc: func(ctx context.Context, key string) ([]byte, error) {
			return nil, ErrCacheMiss
		},
		SetFunc: func(ctx context.Context, key string, value []byte, ttl time.Duration) error {
			setKey, setValue, setTTL = key, value, ttl
			return nil
		},
	}
	mockRepo := &MockBookStorage{
		GetAllFunc: func(ctx context.Context) ([]Book, error) {
			return books, nil
		},
	}

	lc := NewListingCache(zap.NewNop(), &CacheConfig{TTL: 300 * time.Second}, NewMockClocker(), mockCache, mockRepo)
	got, source, err := lc.FetchAllBooks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SourceMiss, source)
	assert.Equal(t, books, got)

	// the entry must have been written back under the listing key.
	assert.Equal(t, "books:all", setKey)
	assert.Equal(t, 300*time.Second, setTTL)
	cached, err := DecodeBookList(setValue)
	require.NoError(t, err)
	assert.Equal(t, books, cached)
}

// TestFetchAllBooks_Hit ensures a decodable cache entry is served
// without any call to the database.
func TestFetchAllBooks_Hit(t *testing.T) {
	books := testBooks()
	payload, err := EncodeBookList(books, NewMockClocker().Now())
	require.NoError(t, err)

	mockCache := &MockCacher{
		GetFunc: func(ctx context.Context, key string) ([]byte, error) {
			return payload, nil
		},
		SetFunc: func(ctx context.Context, key string, value []byte, ttl time.Duration) error {
			t.Fatal("unexpected cache set on a hit")
			return nil
		},
	}
	mockRepo := &MockBookStorage{
		GetAllFunc: func(ctx context.Context) ([]Book, error) {
			t.Fatal("unexpected database read on a hit")
			return nil, nil
		},
	}

	lc := NewListingCache(zap.NewNop(), &CacheConfig{TTL: 300 * time.Second}, NewMockClocker(), mockCache, mockRepo)
	got, source, err := lc.FetchAllBooks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SourceHit, source)
	assert.Equal(t, books, got)
}

// TestFetchAllBooks_CacheDown ensures a failing cache backend degrades
// to a plain database read without surfacing any error.
func TestFetchAllBooks_CacheDown(t *testing.T) {
	books := testBooks()
	var setCalls int

	mockCache := &MockCacher{
		GetFunc: func(ctx context.Context, key string) ([]byte, error) {
			return nil, errors.New("connection refused")
		},
		SetFunc: func(ctx context.Context, key string, value []byte, ttl time.Duration) error {
			setCalls++
			return errors.New("connection refused")
		},
	}
	mockRepo := &MockBookStorage{
		GetAllFunc: func(ctx context.Context) ([]Book, error) {
			return books, nil
		},
	}

	lc := NewListingCache(zap.NewNop(), &CacheConfig{TTL: 300 * time.Second}, NewMockClocker(), mockCache, mockRepo)
	got, source, err := lc.FetchAllBooks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SourceCacheDown, source)
	assert.Equal(t, books, got)
	// repopulation is still attempted and its failure swallowed.
	assert.Equal(t, 1, setCalls)
}

// TestFetchAllBooks_UndecodableEntry ensures a malformed cache entry is
// treated like an unavailable cache, not served to the caller.
func TestFetchAllBooks_UndecodableEntry(t *testing.T) {
	books := testBooks()
	mockCache := &MockCacher{
		GetFunc: func(ctx context.Context, key string) ([]byte, error) {
			return []byte("not a listing payload"), nil
		},
		SetFunc: func(ctx context.Context, key string, value []byte, ttl time.Duration) error {
			return nil
		},
	}
	mockRepo := &MockBookStorage{
		GetAllFunc: func(ctx context.Context) ([]Book, error) {
			return books, nil
		},
	}

	lc := NewListingCache(zap.NewNop(), &CacheConfig{TTL: 300 * time.Second}, NewMockClocker(), mockCache, mockRepo)
	got, source, err := lc.FetchAllBooks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SourceCacheDown, source)
	assert.Equal(t, books, got)
}

// TestFetchAllBooks_StorageFailure ensures a database failure reaches
// the caller while cache trouble never does.
func TestFetchAllBooks_StorageFailure(t *testing.T) {
	storageErr := errors.New("database is locked")
	mockCache := &MockCacher{
		GetFunc: func(ctx context.Context, key string) ([]byte, error) {
			return nil, ErrCacheMiss
		},
		SetFunc: func(ctx context.Context, key string, value []byte, ttl time.Duration) error {
			t.Fatal("unexpected cache set after a database failure")
			return nil
		},
	}
	mockRepo := &MockBookStorage{
		GetAllFunc: func(ctx context.Context) ([]Book, error) {
			return nil, storageErr
		},
	}

	lc := NewListingCache(zap.NewNop(), &CacheConfig{TTL: 300 * time.Second}, NewMockClocker(), mockCache, mockRepo)
	got, source, err := lc.FetchAllBooks(context.Background())
	assert.Equal(t, storageErr, err)
	assert.Equal(t, SourceMiss, source)
	assert.Nil(t, got)
}

// TestInvalidateBooksListing ensures invalidation drops the listing key
// and stays silent when the cache backend is unavailable.
func TestInvalidateBooksListing(t *testing.T) {
	t.Run("deletes the listing key", func(t *testing.T) {
		var deletedKey string
		mockCache := &MockCacher{
			DeleteFunc: func(ctx context.Context, key string) error {
				deletedKey = key
				return nil
			},
		}
		lc := NewListingCache(zap.NewNop(), &CacheConfig{TTL: 300 * time.Second}, NewMockClocker(), mockCache, &MockBookStorage{})
		lc.InvalidateBooksListing(context.Background())
		assert.Equal(t, "books:all", deletedKey)
	})

	t.Run("swallows backend failure", func(t *testing.T) {
		mockCache := &MockCacher{
			DeleteFunc: func(ctx context.Context, key string) error {
				return errors.New("connection refused")
			},
		}
		lc := NewListingCache(zap.NewNop(), &CacheConfig{TTL: 300 * time.Second}, NewMockClocker(), mockCache, &MockBookStorage{})
		lc.InvalidateBooksListing(context.Background())
	})
}

// TestListingCacheKey ensures the namespace prefixes the listing key.
func TestListingCacheKey(t *testing.T) {
	testCases := []struct {
		name      string
		namespace string
		expected  string
	}{
		{"without namespace", "", "books:all"},
		{"with namespace", "prod", "prod:books:all"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			lc := NewListingCache(zap.NewNop(), &CacheConfig{TTL: 300 * time.Second, KeyNamespace: tc.namespace}, NewMockClocker(), &MockCacher{}, &MockBookStorage{})
			assert.Equal(t, tc.expected, lc.Key())
		})
	}
}

// TestCacheSourceString ensures each source renders its wire label.
func TestCacheSourceString(t *testing.T) {
	assert.Equal(t, "hit", SourceHit.String())
	assert.Equal(t, "miss", SourceMiss.String())
	assert.Equal(t, "cache_down", SourceCacheDown.String())
	assert.Equal(t, "unknown", CacheSource(42).String())
}
