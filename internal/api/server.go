package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/futig/idea-validator/internal/api/docs"
	evaluationapi "github.com/futig/idea-validator/internal/api/evaluation"
	"github.com/futig/idea-validator/internal/api/middleware"
	"github.com/futig/idea-validator/internal/api/web"
	"github.com/futig/idea-validator/internal/entity"
	"github.com/futig/idea-validator/internal/pkg/response"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

const apiPrefix = "/api/"

// SetupRouter creates and configures the HTTP router. requestTimeout should
// exceed the evaluation timeout so the use case reports the failure first.
func SetupRouter(
	webHandler *web.Handler,
	evaluationHandler *evaluationapi.Handler,
	requestTimeout time.Duration,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, apiPrefix) {
			response.Error(w, http.StatusInternalServerError, entity.KindInternal.String(), entity.MsgInternalError)
			return
		}
		webHandler.InternalError(w, r)
	}))
	r.Use(chimiddleware.Timeout(requestTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, map[string]string{"status": "healthy"})
	})

	docs.RegisterRoutes(r)

	web.RegisterRoutes(r, webHandler)
	evaluationapi.RegisterRoutes(r, evaluationHandler)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, apiPrefix) {
			response.Error(w, http.StatusNotFound, "not_found", "resource not found")
			return
		}
		webHandler.NotFound(w, r)
	})

	return r
}
