package httpapi

import (
	"net/http"
	"time"

	"github.com/bazarly/ads-service/internal/platform/metrics"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the HTTP routes. Listing reads are public with
// optional viewer identity; every mutation requires a valid token.
func NewRouter(h *Handler, jwtSecret string, mm *metrics.MetricsManager) *chi.Mux {
	mux := chi.NewRouter()

	mux.Use(chimiddleware.RequestID)
	mux.Use(chimiddleware.RealIP)
	mux.Use(chimiddleware.Recoverer)
	mux.Use(chimiddleware.Timeout(30 * time.Second))
	if mm != nil {
		mux.Use(latencyMiddleware(mm))
	}

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	mux.Group(func(r chi.Router) {
		r.Use(jwtAuth(jwtSecret, false))

		r.Get("/api/ads", h.HandleListAds)
		r.Get("/api/ads/{uniqueCode}", h.HandleGetAd)
	})

	mux.Group(func(r chi.Router) {
		r.Use(jwtAuth(jwtSecret, true))

		r.Post("/api/ads", h.HandleCreateAd)
		r.Delete("/api/ads/{id}", h.HandleDeleteAd)
		r.Post("/api/ads/{id}/feature", h.HandleFeatureAd)
		r.Post("/api/ads/{id}/media", h.HandleUploadMedia)

		r.Post("/api/favorites", h.HandleAddFavorite)
		r.Delete("/api/favorites", h.HandleRemoveFavorite)
		r.Get("/api/favorites", h.HandleGetFavorites)
	})

	return mux
}

func latencyMiddleware(mm *metrics.MetricsManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = r.URL.Path
			}
			mm.APILatency.WithLabelValues(route).Observe(time.Since(start).Seconds())

			switch status := ww.Status(); {
			case status >= 500:
				mm.APIErrorsTotal.WithLabelValues(route, "server").Inc()
			case status >= 400:
				mm.APIErrorsTotal.WithLabelValues(route, "client").Inc()
			}
		})
	}
}
