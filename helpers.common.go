package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
)

var (
	ErrBookNotFound   = errors.New("book not found")
	ErrReviewNotFound = errors.New("review not found")
)

type (
	ContextKey        string
	missingFieldError string
)

const (
	RequestIDPrefix         string     = "r"
	RequestIDContextKey     ContextKey = "request.id"
	RequestNumberContextKey ContextKey = "request.number"
)

func (m missingFieldError) Error() string {
	return string(m) + " is required"
}

// GetValueFromContext returns the value of a given key in the context
// if this key is not available, it returns an empty string.
func GetValueFromContext(ctx context.Context, contextKey ContextKey) string {
	if val := ctx.Value(contextKey); val != nil {
		return val.(string)
	}
	return ""
}

// GetRequestNumberFromContext returns the request number set in
// the context. if not previously set then it returns 0.
func GetRequestNumberFromContext(ctx context.Context) uint64 {
	if val := ctx.Value(RequestNumberContextKey); val != nil {
		return val.(uint64)
	}
	return 0
}

// ParseEntityID converts a path parameter into a database entity id.
func ParseEntityID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid entity id: %q", raw)
	}
	return id, nil
}

// DecodeBookRequestBody is a helper function to read the content of a book creation or update request.
func DecodeBookRequestBody(r *http.Request, book *Book) error {
	if r.Body == nil {
		return errors.New("invalid book request body")
	}
	return json.NewDecoder(r.Body).Decode(book)
}

// ValidateBookRequestBody is a helper function to check if the content of a book creation or update request is valid.
func ValidateBookRequestBody(book *Book) error {
	if len(strings.TrimSpace(book.Title)) == 0 {
		return missingFieldError("title")
	}

	if len(strings.TrimSpace(book.Author)) == 0 {
		return missingFieldError("author")
	}

	return nil
}

// DecodeReviewRequestBody is a helper function to read the content of a review creation or update request.
func DecodeReviewRequestBody(r *http.Request, review *Review) error {
	if r.Body == nil {
		return errors.New("invalid review request body")
	}
	return json.NewDecoder(r.Body).Decode(review)
}

// ValidateReviewRequestBody is a helper function to check if the content of a review creation or update request is valid.
func ValidateReviewRequestBody(review *Review) error {
	if len(strings.TrimSpace(review.ReviewerName)) == 0 {
		return missingFieldError("reviewerName")
	}

	if review.BookID <= 0 {
		return missingFieldError("bookId")
	}

	if review.Rating < 1 || review.Rating > 5 {
		return errors.New("rating must be between 1 and 5")
	}

	return nil
}

// GetRequestSourceIP helps find the source IP of the caller.
func GetRequestSourceIP(r *http.Request) string {
	// Get IP from the X-REAL-IP header
	ip := r.Header.Get("X-REAL-IP")
	netIP := net.ParseIP(ip)
	if netIP != nil {
		return ip
	}

	// Get IP from X-FORWARDED-FOR header
	ips := r.Header.Get("X-FORWARDED-FOR")
	splitIps := strings.Split(ips, ",")
	for _, ip := range splitIps {
		netIP = net.ParseIP(ip)
		if netIP != nil {
			return ip
		}
	}

	// Get IP from RemoteAddr
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return ""
	}
	netIP = net.ParseIP(ip)
	if netIP != nil {
		return ip
	}
	return ""
}

// IsAppRunningInDocker checks the existence of the .dockerenv
// file at the root directory and returns a boolean result. This
// helps know if the App is running in a docker container or not.
func IsAppRunningInDocker() bool {
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true
	}
	return false
}
