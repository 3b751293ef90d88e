package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestReviewAPI(repo *MockReviewStorage, books *MockBookStorage) *APIHandler {
	queue := &MockQueuer{
		PushFunc: func(ctx context.Context, qid string, event AuditEvent) error {
			return nil
		},
	}
	rs := NewReviewService(zap.NewNop(), NewMockClocker(), repo, books, &MockListingCache{}, queue)
	return NewAPIHandler(zap.NewNop(), &Config{}, &Statistics{started: NewMockClocker().Now()}, NewMockClocker(), NewMockUIDHandler("abc"), nil, rs)
}

// TestCreateReviewHandler ensures api handler can create a review.
func TestCreateReviewHandler(t *testing.T) {
	mockRepo := &MockReviewStorage{
		AddFunc: func(ctx context.Context, review Review) (Review, error) {
			review.ID = 3
			return review, nil
		},
	}
	api := newTestReviewAPI(mockRepo, &MockBookStorage{})

	t.Run("should pass: valid payload", func(t *testing.T) {
		payload := []byte(`{"bookId":1, "reviewerName":"Jerome Amon", "rating":5, "comment":"great read"}`)
		req := httptest.NewRequest(http.MethodPost, "/v1/reviews", bytes.NewBuffer(payload))
		w := httptest.NewRecorder()
		api.CreateReview(w, req, httprouter.Params{})
		res := w.Result()
		defer res.Body.Close()
		data, err := io.ReadAll(res.Body)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusCreated, res.StatusCode)
		expected := `{"requestid":"", "status":201, "message":"Review created successfully.",
		"data":{"id":3, "bookId":1, "reviewerName":"Jerome Amon", "rating":5, "comment":"great read", "createdAt":"2023-07-02T00:00:00Z"}}`
		assert.JSONEq(t, expected, string(data))
	})

	t.Run("should fail: missing book", func(t *testing.T) {
		missingRepo := &MockReviewStorage{
			AddFunc: func(ctx context.Context, review Review) (Review, error) {
				return review, ErrBookNotFound
			},
		}
		missingAPI := newTestReviewAPI(missingRepo, &MockBookStorage{})

		payload := []byte(`{"bookId":99, "reviewerName":"Jerome Amon", "rating":5}`)
		req := httptest.NewRequest(http.MethodPost, "/v1/reviews", bytes.NewBuffer(payload))
		w := httptest.NewRecorder()
		missingAPI.CreateReview(w, req, httprouter.Params{})
		res := w.Result()
		defer res.Body.Close()
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
		data, err := io.ReadAll(res.Body)
		assert.NoError(t, err)
		expected := `{"requestid":"", "status":404, "message":"book does not exist",
		"data":{"id":0, "bookId":99, "reviewerName":"Jerome Amon", "rating":5, "createdAt":"2023-07-02T00:00:00Z"}}`
		assert.JSONEq(t, expected, string(data))
	})

	t.Run("should fail: invalid fields in payload", func(t *testing.T) {
		testCases := []struct {
			name     string
			payload  []byte
			expected string
		}{
			{
				name:     "missing reviewer name",
				payload:  []byte(`{"bookId":1, "rating":5}`),
				expected: `{"requestid":"", "status":400, "message":"failed to create the review", "data":"reviewerName is required"}`,
			},
			{
				name:     "missing book id",
				payload:  []byte(`{"reviewerName":"Jerome Amon", "rating":5}`),
				expected: `{"requestid":"", "status":400, "message":"failed to create the review", "data":"bookId is required"}`,
			},
			{
				name:     "rating too low",
				payload:  []byte(`{"bookId":1, "reviewerName":"Jerome Amon", "rating":0}`),
				expected: `{"requestid":"", "status":400, "message":"failed to create the review", "data":"rating must be between 1 and 5"}`,
			},
			{
				name:     "rating too high",
				payload:  []byte(`{"bookId":1, "reviewerName":"Jerome Amon", "rating":6}`),
				expected: `{"requestid":"", "status":400, "message":"failed to create the review", "data":"rating must be between 1 and 5"}`,
			},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				req := httptest.NewRequest(http.MethodPost, "/v1/reviews", bytes.NewBuffer(tc.payload))
				w := httptest.NewRecorder()
				api.CreateReview(w, req, httprouter.Params{})
				res := w.Result()
				defer res.Body.Close()
				assert.Equal(t, http.StatusBadRequest, res.StatusCode)
				data, err := io.ReadAll(res.Body)
				assert.NoError(t, err)
				assert.JSONEq(t, tc.expected, string(data))
			})
		}
	})
}

// TestGetReviewsByBookHandler covers existing and missing book cases.
func TestGetReviewsByBookHandler(t *testing.T) {
	t.Run("existing book", func(t *testing.T) {
		mockBooks := &MockBookStorage{
			GetOneFunc: func(ctx context.Context, id int64) (Book, error) {
				return Book{ID: id}, nil
			},
		}
		mockRepo := &MockReviewStorage{
			GetByBookFunc: func(ctx context.Context, bookID int64) ([]Review, error) {
				return []Review{{ID: 1, BookID: bookID, ReviewerName: "Jerome Amon", Rating: 4, CreatedAt: NewMockClocker().Now()}}, nil
			},
		}
		api := newTestReviewAPI(mockRepo, mockBooks)

		req := httptest.NewRequest(http.MethodGet, "/v1/books/1/reviews", nil)
		w := httptest.NewRecorder()
		api.GetReviewsByBook(w, req, httprouter.Params{{Key: "id", Value: "1"}})
		res := w.Result()
		defer res.Body.Close()
		assert.Equal(t, http.StatusOK, res.StatusCode)
		data, err := io.ReadAll(res.Body)
		assert.NoError(t, err)
		expected := `{"requestid":"", "status":200, "message":"Book reviews fetched successfully.", "total":1,
		"data":[{"id":1, "bookId":1, "reviewerName":"Jerome Amon", "rating":4, "createdAt":"2023-07-02T00:00:00Z"}]}`
		assert.JSONEq(t, expected, string(data))
	})

	t.Run("missing book", func(t *testing.T) {
		mockBooks := &MockBookStorage{
			GetOneFunc: func(ctx context.Context, id int64) (Book, error) {
				return Book{}, ErrBookNotFound
			},
		}
		api := newTestReviewAPI(&MockReviewStorage{}, mockBooks)

		req := httptest.NewRequest(http.MethodGet, "/v1/books/99/reviews", nil)
		w := httptest.NewRecorder()
		api.GetReviewsByBook(w, req, httprouter.Params{{Key: "id", Value: "99"}})
		res := w.Result()
		defer res.Body.Close()
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
		data, err := io.ReadAll(res.Body)
		assert.NoError(t, err)
		expected := `{"requestid":"", "status":404, "message":"book does not exist", "data":{}}`
		assert.JSONEq(t, expected, string(data))
	})
}

// TestDeleteOneReview ensures deleting a missing review returns not found.
func TestDeleteOneReview_MissingReview(t *testing.T) {
	mockRepo := &MockReviewStorage{
		DeleteFunc: func(ctx context.Context, id int64) error {
			return ErrReviewNotFound
		},
	}
	api := newTestReviewAPI(mockRepo, &MockBookStorage{})

	req := httptest.NewRequest(http.MethodDelete, "/v1/reviews/99", nil)
	w := httptest.NewRecorder()
	api.DeleteOneReview(w, req, httprouter.Params{{Key: "id", Value: "99"}})
	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	data, err := io.ReadAll(res.Body)
	assert.NoError(t, err)
	expected := `{"requestid":"", "status":404, "message":"review does not exist", "data":{}}`
	assert.JSONEq(t, expected, string(data))
}
