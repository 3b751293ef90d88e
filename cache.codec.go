package main

import (
	"encoding/json"
	"fmt"
	"time"
)

// bookListSchemaVersion tags the cached listing payload. Bump it when the
// Book wire shape changes so stale entries written by older builds decode
// as errors and get rewritten from the database.
const bookListSchemaVersion = 1

// bookListPayload is the envelope persisted in the cache backend.
type bookListPayload struct {
	Version  int       `json:"v"`
	CachedAt time.Time `json:"cachedAt"`
	Books    []Book    `json:"books"`
}

// EncodeBookList serializes a books listing into its cache entry form.
func EncodeBookList(books []Book, cachedAt time.Time) ([]byte, error) {
	if books == nil {
		books = []Book{}
	}
	return json.Marshal(bookListPayload{
		Version:  bookListSchemaVersion,
		CachedAt: cachedAt,
		Books:    books,
	})
}

// DecodeBookList deserializes a cache entry back into a books listing.
func DecodeBookList(data []byte) ([]Book, error) {
	var payload bookListPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("malformed books listing entry: %v", err)
	}
	if payload.Version != bookListSchemaVersion {
		return nil, fmt.Errorf("unsupported books listing schema version: %d", payload.Version)
	}
	if payload.Books == nil {
		payload.Books = []Book{}
	}
	return payload.Books, nil
}
