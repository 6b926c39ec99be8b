package server

import (
	"context"
	"net/http"

	"gorm.io/gorm"

	"github.com/diewo77/go-jobtrack/auth"
	"github.com/diewo77/go-jobtrack/httpx"
	"github.com/diewo77/go-jobtrack/internal/handlers"
	"github.com/diewo77/go-jobtrack/internal/models"
	"github.com/diewo77/go-jobtrack/internal/services"
)

// New constructs the root http.Handler with all routes and middlewares
// applied.
func New(db *gorm.DB) http.Handler {
	mux := http.NewServeMux()

	// A session naming a deleted user must not pass the gate.
	auth.SetUserVerifier(func(_ context.Context, uid uint) bool {
		var count int64
		if err := db.Model(&models.User{}).Where("id = ?", uid).Limit(1).Count(&count).Error; err != nil {
			return false
		}
		return count > 0
	})

	// Health endpoints
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSONError(w, http.StatusServiceUnavailable, "degraded", nil)
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Public routes
	ah := handlers.NewAuthHandler(db)
	mux.HandleFunc("GET /login", ah.Login)
	mux.HandleFunc("POST /login", ah.Login)
	mux.HandleFunc("GET /register", ah.Register)
	mux.HandleFunc("POST /register", ah.Register)
	mux.HandleFunc("GET /logout", ah.Logout)

	// Protected routes
	dh := handlers.NewDashboardHandler(db)
	ch := handlers.NewCompanyHandler(db)
	jh := handlers.NewJobHandler(db)
	aph := handlers.NewApplicationHandler(db)
	anh := handlers.NewAnalyticsHandler(services.NewAnalyticsService(db))

	protected := func(h http.HandlerFunc) http.Handler {
		return auth.RequireAuth(h)
	}

	mux.Handle("GET /{$}", protected(dh.Index))

	mux.Handle("GET /company", protected(ch.List))
	mux.Handle("POST /company", protected(ch.Create))

	mux.Handle("GET /job", protected(jh.List))
	mux.Handle("POST /job", protected(jh.Create))
	mux.Handle("GET /delete-job/{job_id}", protected(jh.Delete))
	mux.Handle("GET /edit-job/{job_id}", protected(jh.Edit))
	mux.Handle("POST /edit-job/{job_id}", protected(jh.Update))
	mux.Handle("GET /apply/{job_id}", protected(jh.Apply))

	mux.Handle("POST /update-status/{application_id}", protected(aph.UpdateStatus))

	mux.Handle("GET /analytics", protected(anh.Page))

	// Static files
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	return auth.Middleware(withLogging(mux))
}
