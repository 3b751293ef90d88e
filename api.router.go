package main

import (
	_ "github.com/jaylom/bookreview-api/docs"
	"github.com/julienschmidt/httprouter"
	httpswagger "github.com/swaggo/http-swagger/v2"
)

// SetupRoutes injects book, review and ops related endpoints if required.
func (api *APIHandler) SetupRoutes(router *httprouter.Router, m *MiddlewareMap) *httprouter.Router {
	router.RedirectTrailingSlash = true
	router.NotFound = api.NotFound()
	api.SetupBookRoutes(router, m)
	api.SetupReviewRoutes(router, m)
	if api.config.OpsEndpointsEnable {
		api.SetupOpsRoutes(router, m)
	}
	router.GET("/swagger/", m.public(api.OpsHandlerWrapper(httpswagger.WrapHandler)))
	return router
}

// SetupBookRoutes injects book related api endpoints.
func (api *APIHandler) SetupBookRoutes(router *httprouter.Router, m *MiddlewareMap) *httprouter.Router {
	router.GET("/", m.public(api.Index))
	router.GET("/status", m.public(api.Status))
	router.POST("/v1/books", m.public(api.CreateBook))
	router.GET("/v1/books", m.public(api.GetAllBooks))
	router.GET("/v1/books/:id", m.public(api.GetOneBook))
	router.PUT("/v1/books/:id", m.public(api.UpdateBook))
	router.DELETE("/v1/books/:id", m.public(api.DeleteOneBook))
	return router
}

// SetupReviewRoutes injects review related api endpoints.
func (api *APIHandler) SetupReviewRoutes(router *httprouter.Router, m *MiddlewareMap) *httprouter.Router {
	router.GET("/v1/books/:id/reviews", m.public(api.GetReviewsByBook))
	router.POST("/v1/reviews", m.public(api.CreateReview))
	router.GET("/v1/reviews", m.public(api.GetAllReviews))
	router.GET("/v1/reviews/:id", m.public(api.GetOneReview))
	router.PUT("/v1/reviews/:id", m.public(api.UpdateReview))
	router.DELETE("/v1/reviews/:id", m.public(api.DeleteOneReview))
	return router
}
