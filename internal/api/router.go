package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/nikmat04/Gas-Leak-Detection-System/internal/predict"
	"github.com/nikmat04/Gas-Leak-Detection-System/internal/store"
	"github.com/nikmat04/Gas-Leak-Detection-System/web"
)

// NewRouter creates the HTTP router with all API routes.
func NewRouter(predictor *predict.Predictor, db *store.Store, hub *Hub, background []byte, basePath string) http.Handler {
	mux := http.NewServeMux()

	pa := &predictAPI{predictor: predictor, store: db, hub: hub}
	aa := &alertsAPI{store: db}
	sa := &statusAPI{store: db, predictor: predictor}

	// Prediction
	mux.HandleFunc("POST /api/v1/predict", pa.predict)

	// Alert history
	mux.HandleFunc("GET /api/v1/alerts", aa.list)
	mux.HandleFunc("DELETE /api/v1/alerts", aa.clear)

	// FAQ
	mux.HandleFunc("GET /api/v1/faq", handleFAQ)

	// Status
	mux.HandleFunc("GET /api/v1/status", sa.status)

	// WebSocket
	mux.HandleFunc("GET /api/v1/ws", hub.HandleWS)

	// Static files (embedded) — inject base_path and background image
	mux.Handle("/", web.StaticHandler(basePath, background))

	var handler http.Handler = mux

	// If base_path is set, strip the prefix so internal routing works unchanged
	if basePath != "/" && basePath != "" {
		inner := handler
		handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Strip base path prefix from the URL
			if strings.HasPrefix(r.URL.Path, basePath) {
				r.URL.Path = strings.TrimPrefix(r.URL.Path, basePath)
				if r.URL.Path == "" {
					r.URL.Path = "/"
				}
				r.URL.RawPath = strings.TrimPrefix(r.URL.RawPath, basePath)
			}
			inner.ServeHTTP(w, r)
		})
	}

	return withMiddleware(handler)
}

func withMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Recovery
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("panic", err).Str("path", r.URL.Path).Msg("http handler panic")
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()

		// CORS for local development
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)

		log.Debug().Str("method", r.Method).Str("path", r.URL.Path).Dur("elapsed", time.Since(start)).Msg("http")
	})
}
