package docs

import (
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

const (
	specURL = "/docs/swagger.yaml"

	// specPath is relative to the working directory, as in the Docker image
	specPath = "docs/swagger.yaml"
)

// uiHandler serves Swagger UI pointed at the YAML document
func uiHandler() http.HandlerFunc {
	return httpSwagger.Handler(
		httpSwagger.URL(specURL),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	)
}

func specHandler(w http.ResponseWriter, r *http.Request) {
	if _, err := os.Stat(specPath); err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	http.ServeFile(w, r, specPath)
}

// RegisterRoutes registers the API documentation routes
func RegisterRoutes(r chi.Router) {
	r.Get("/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/docs/index.html", http.StatusFound)
	})
	r.Get("/docs/*", uiHandler())
	r.Get(specURL, specHandler)
}
