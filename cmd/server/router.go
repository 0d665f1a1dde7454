package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/swaggo/swag"

	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/api"
	_ "github.com/mdhasanshuvo/property-listing-backend-wixford/internal/api/docs" // registers the OpenAPI document
	apiMiddleware "github.com/mdhasanshuvo/property-listing-backend-wixford/internal/api/middleware"
	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/api/shared"
	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/domain"
)

const docsIndexPath = "/api-docs/index.html"

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Registered first so mounted subrouters inherit them.
	r.NotFound(routeNotFound)
	r.MethodNotAllowed(routeNotFound)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(apiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: app.config.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", apiMiddleware.TraceHeader},
		ExposedHeaders: []string{apiMiddleware.TraceHeader},
		MaxAge:         300,
	}))

	authHandler := api.NewAuthHandler(app.accountService)
	listingHandler := api.NewListingHandler(app.listingService)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		if app.config.Server.LazyConnect {
			r.Use(apiMiddleware.EnsureConnected(app.backend.connector))
		}

		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		r.Route("/properties", func(r chi.Router) {
			// Public reads; a valid token is attached but not required.
			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.OptionalAuthenticate)
				r.Get("/", listingHandler.List)
				r.Get("/{id}", listingHandler.Get)
			})

			// Admin moderation. The static segment wins over /{id}.
			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.Authenticate)
				r.Use(apiMiddleware.RequireRole(domain.RoleAdmin))
				r.Delete("/admin/{id}", listingHandler.AdminDelete)
			})

			// Agent-owned mutations.
			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.Authenticate)
				r.Use(apiMiddleware.RequireRole(domain.RoleAgent))
				r.Post("/", listingHandler.Create)
				r.Put("/{id}", listingHandler.Update)
				r.Delete("/{id}", listingHandler.Delete)
			})
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, api.HealthResponse{Status: "OK"})
	})

	r.Get("/ready", app.ready)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, docsIndexPath, http.StatusFound)
	})
	r.Get("/swagger.json", app.serveOpenAPIDocument)
	r.Get("/api-docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, docsIndexPath, http.StatusFound)
	})
	r.Get("/api-docs/*", httpSwagger.Handler(httpSwagger.URL("/swagger.json")))

	return r
}

// ready reports whether the persistence backend answers a ping. A Mongo
// backend that has not connected yet reports unavailable.
func (app *application) ready(w http.ResponseWriter, r *http.Request) {
	if err := app.backend.ping(r.Context()); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusServiceUnavailable, "Service unavailable", err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, api.HealthResponse{Status: "OK"})
}

func (app *application) serveOpenAPIDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Internal server error", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(doc))
}

func routeNotFound(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithError(w, r, http.StatusNotFound, "Route not found")
}
