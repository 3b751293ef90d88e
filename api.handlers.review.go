package main

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// CreateReview godoc
//
//	@Summary	Create a review for an existing book.
//	@Tags		reviews
//	@Accept		json
//	@Produce	json
//	@Success	201	{object}	APIResponse
//	@Router		/v1/reviews [post]
func (api *APIHandler) CreateReview(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	review := Review{}
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	err := DecodeReviewRequestBody(r, &review)
	if err != nil {
		api.logger.Error("failed to create review", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusBadRequest, "failed to create the review", review)
		if err = WriteErrorResponse(w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	err = ValidateReviewRequestBody(&review)
	if err != nil {
		api.logger.Error("failed to create review", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusBadRequest, "failed to create the review", err.Error())
		if err = WriteErrorResponse(w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	review, err = api.reviewService.Add(r.Context(), review)
	if errors.Is(err, ErrBookNotFound) {
		api.logger.Error("book does not exist", zap.Int64("book.id", review.BookID), zap.String("request.id", requestID))
		errResp := NewAPIError(requestID, http.StatusNotFound, "book does not exist", review)
		if err = WriteErrorResponse(w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	if err != nil {
		api.logger.Error("failed to create review", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusInternalServerError, "failed to create the review", review)
		if err = WriteErrorResponse(w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	resp := GenericResponse(requestID, http.StatusCreated, "Review created successfully.", nil, review)
	if err = WriteResponse(w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// GetAllReviews godoc
//
//	@Summary	Fetch all reviews.
//	@Tags		reviews
//	@Produce	json
//	@Success	200	{object}	APIResponse
//	@Router		/v1/reviews [get]
func (api *APIHandler) GetAllReviews(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	reviews, err := api.reviewService.GetAll(r.Context())
	if err != nil {
		api.logger.Error("failed to get all reviews", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusInternalServerError, "failed to get all reviews", reviews)
		if err = WriteErrorResponse(w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	api.logger.Info("success to get all reviews", zap.String("request.id", requestID))
	total := len(reviews)
	resp := GenericResponse(requestID, http.StatusOK, "All reviews fetched successfully.", &total, reviews)
	if err = WriteResponse(w, resp); err != nil {
		api.logger.Error("failed to send response", zap.Error(err))
	}
}

// GetOneReview godoc
//
//	@Summary	Fetch one review.
//	@Tags		reviews
//	@Produce	json
//	@Success	200	{object}	APIResponse
//	@Router		/v1/reviews/{id} [get]
func (api *APIHandler) GetOneReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	id, err := ParseEntityID(ps.ByName("id"))
	if err != nil {
		api.logger.Error("review id provided is not valid", zap.String("review.id", ps.ByName("id")), zap.String("request.id", requestID))
		errResp := NewAPIError(requestID, http.StatusBadRequest, "review id provided is not valid", EmptyData)
		if err = WriteErrorResponse(w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	review, err := api.reviewService.GetOne(r.Context(), id)
	if errors.Is(err, ErrReviewNotFound) {
		api.logger.Error("review does not exist", zap.Int64("review.id", id), zap.String("request.id", requestID))
		errResp := NewAPIError(requestID, http.StatusNotFound, "review does not exist", review)
		if err = WriteErrorResponse(w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	if err != nil {
		api.logger.Error("failed to get review", zap.Int64("review.id", id), zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusInternalServerError, "failed to get the review", review)
		if err = WriteErrorResponse(w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	api.logger.Info("success to get review", zap.Int64("review.id", id), zap.String("request.id", requestID))
	resp := GenericResponse(requestID, http.StatusOK, "Review fetched successfully.", nil, review)
	if err = WriteResponse(w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// GetReviewsByBook godoc
//
//	@Summary	Fetch the reviews of one book.
//	@Tags		reviews
//	@Produce	json
//	@Success	200	{object}	APIResponse
//	@Router		/v1/books/{id}/reviews [get]
func (api *APIHandler) GetReviewsByBook(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	bookID, err := ParseEntityID(ps.ByName("id"))
	if err != nil {
		api.logger.Error("book id provided is not valid", zap.String("book.id", ps.ByName("id")), zap.String("request.id", requestID))
		errResp := NewAPIError(requestID, http.StatusBadRequest, "book id provided is not valid", EmptyData)
		if err = WriteErrorResponse(w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	reviews, err := api.reviewService.GetByBook(r.Context(), bookID)
	if errors.Is(err, ErrBookNotFound) {
		api.logger.Error("book does not exist", zap.Int64("book.id", bookID), zap.String("request.id", requestID))
		errResp := NewAPIError(requestID, http.StatusNotFound, "book does not exist", EmptyData)
		if err = WriteErrorResponse(w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	if err != nil {
		api.logger.Error("failed to get book reviews", zap.Int64("book.id", bookID), zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusInternalServerError, "failed to get the book reviews", reviews)
		if err = WriteErrorResponse(w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	api.logger.Info("success to get book reviews", zap.Int64("book.id", bookID), zap.String("request.id", requestID))
	total := len(reviews)
	resp := GenericResponse(requestID, http.StatusOK, "Book reviews fetched successfully.", &total, reviews)
	if err = WriteResponse(w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// UpdateReview godoc
//
//	@Summary	Update an existing review.
//	@Tags		reviews
//	@Accept		json
//	@Produce	json
//	@Success	200	{object}	APIResponse
//	@Router		/v1/reviews/{id} [put]
func (api *APIHandler) UpdateReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var review Review
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	id, err := ParseEntityID(ps.ByName("id"))
	if err != nil {
		api.logger.Error("review id provided is not valid", zap.String("review.id", ps.ByName("id")), zap.String("request.id", requestID))
		errResp := NewAPIError(requestID, http.StatusBadRequest, "review id provided is not valid", EmptyData)
		if err = WriteErrorResponse(w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	err = DecodeReviewRequestBody(r, &review)
	if err != nil {
		api.logger.Error("failed to update review", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusBadRequest, "failed to update the review", review)
		if err = WriteErrorResponse(w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	err = ValidateReviewRequestBody(&review)
	if err != nil {
		api.logger.Error("failed to update review", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusBadRequest, "failed to update the review", err.Error())
		if err = WriteErrorResponse(w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	review, err = api.reviewService.Update(r.Context(), id, review)
	if errors.Is(err, ErrReviewNotFound) {
		api.logger.Error("review does not exist", zap.Int64("review.id", id), zap.String("request.id", requestID))
		errResp := NewAPIError(requestID, http.StatusNotFound, "review does not exist", review)
		if err = WriteErrorResponse(w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	if err != nil {
		api.logger.Error("failed to update review", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusInternalServerError, "failed to update the review", review)
		if err = WriteErrorResponse(w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	api.logger.Info("success to update review", zap.Int64("review.id", id), zap.String("request.id", requestID))
	resp := GenericResponse(requestID, http.StatusOK, "Review updated successfully.", nil, review)
	if err = WriteResponse(w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// DeleteOneReview godoc
//
//	@Summary	Delete a review.
//	@Tags		reviews
//	@Produce	json
//	@Success	200	{object}	APIResponse
//	@Router		/v1/reviews/{id} [delete]
func (api *APIHandler) DeleteOneReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	id, err := ParseEntityID(ps.ByName("id"))
	if err != nil {
		api.logger.Error("review id provided is not valid", zap.String("review.id", ps.ByName("id")), zap.String("request.id", requestID))
		errResp := NewAPIError(requestID, http.StatusBadRequest, "review id provided is not valid", EmptyData)
		if err = WriteErrorResponse(w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	err = api.reviewService.Delete(r.Context(), id)
	if errors.Is(err, ErrReviewNotFound) {
		api.logger.Error("review does not exist", zap.Int64("review.id", id), zap.String("request.id", requestID))
		errResp := NewAPIError(requestID, http.StatusNotFound, "review does not exist", EmptyData)
		if err = WriteErrorResponse(w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	if err != nil {
		api.logger.Error("failed to delete review", zap.Int64("review.id", id), zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusInternalServerError, "failed to delete the review", EmptyData)
		if err = WriteErrorResponse(w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	api.logger.Info("success to delete review", zap.Int64("review.id", id), zap.String("request.id", requestID))
	resp := GenericResponse(requestID, http.StatusOK, "Review deleted successfully.", nil, EmptyData)
	if err = WriteResponse(w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}
