package api

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"

	apiContext "billingform/internal/api/context"
	"billingform/internal/api/handlers"
	"billingform/internal/api/middleware"
	"billingform/internal/pkg/errors"
)

type Dependencies struct {
	AuthHandler     *handlers.AuthHandler
	FormHandler     *handlers.FormHandler
	IssuanceHandler *handlers.IssuanceHandler
	HealthHandler   *handlers.HealthHandler
	MetricsHandler  *handlers.MetricsHandler
	AuthMiddleware  *middleware.AuthMiddleware
	RateLimiter     *middleware.RateLimiter
}

func NewRouter(deps *Dependencies) *httprouter.Router {
	router := httprouter.New()

	router.GET("/health", wrap(deps.HealthHandler.Check))
	router.GET("/metrics", wrap(deps.MetricsHandler.Export))

	router.POST("/api/v1/auth/token", wrap(deps.AuthHandler.Token))

	authMid := deps.AuthMiddleware

	// Forms
	router.POST("/api/v1/forms/:action",
		chain(deps.FormHandler.Create, authMid.Handle, deps.RateLimiter.Handle))
	router.GET("/api/v1/forms/:action/url",
		chain(deps.FormHandler.URL, authMid.Handle))

	router.POST("/api/v1/tokens/verify",
		chain(deps.FormHandler.Verify, authMid.Handle))

	// Issuance log
	router.GET("/api/v1/issuances",
		chain(deps.IssuanceHandler.List, authMid.Handle))
	router.GET("/api/v1/issuances/summary",
		chain(deps.IssuanceHandler.Summary, authMid.Handle))

	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		errors.WriteError(w, http.StatusNotFound, errors.ErrCodeNotFound, "Route not found", nil)
	})

	return router
}

// Helper function to chain middlewares
func chain(handler http.HandlerFunc, middlewares ...func(http.HandlerFunc) http.HandlerFunc) httprouter.Handle {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return wrap(handler)
}

// Convert http.HandlerFunc to httprouter.Handle
func wrap(handler http.HandlerFunc) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		ctx := context.WithValue(r.Context(), apiContext.Params, ps)
		handler(w, r.WithContext(ctx))
	}
}
