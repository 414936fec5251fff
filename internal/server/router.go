package server

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"invoiceapp/internal/auth"
	"invoiceapp/internal/handlers"
	"invoiceapp/internal/httpx"
	"invoiceapp/internal/services"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(db *gorm.DB) http.Handler {
	mux := http.NewServeMux()

	// --- Health endpoints ---
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "healthy", "message": "Invoice API is running"})
	})
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Auth endpoints
	authHandler := handlers.NewAuthHandler(db)
	authHandler.Register(mux)

	// Invoice endpoints
	ih := handlers.NewInvoiceHandler(services.NewInvoiceService(db))
	mux.Handle("GET /api/invoices", protect(ih.List))
	mux.Handle("POST /api/invoices", protect(ih.Create))
	mux.Handle("GET /api/invoices/{id}", protect(ih.Get))
	mux.Handle("PUT /api/invoices/{id}", protect(ih.Update))
	mux.Handle("DELETE /api/invoices/{id}", protect(ih.Delete))

	// Report endpoints
	rh := handlers.NewReportHandler(services.NewReportService(db))
	mux.Handle("GET /api/reports", protect(rh.List))
	mux.Handle("POST /api/reports/generate", protect(rh.Generate))
	mux.Handle("GET /api/reports/dashboard", protect(rh.Dashboard))
	mux.Handle("DELETE /api/reports/{id}", protect(rh.Delete))

	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSONError(w, http.StatusNotFound, "Endpoint not found")
	})

	return withRecover(withLogging(mux))
}

// protect chains token parsing and the auth requirement for API routes.
func protect(h http.HandlerFunc) http.Handler {
	return auth.Middleware(auth.RequireAuth(h))
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", sw.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().Any("panic", rec).Str("path", r.URL.Path).Msg("handler panic")
				httpx.JSONError(w, http.StatusInternalServerError, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
