package main

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/trrlb/user-directory/internal/auth"
	"github.com/trrlb/user-directory/internal/directory"
	"github.com/trrlb/user-directory/internal/handlers"
	"github.com/trrlb/user-directory/internal/httpx"
)

// App is the main application handler that sets up all routes.
type App struct {
	mux *http.ServeMux
	db  *gorm.DB
}

// NewApp creates the application with all routes configured.
func NewApp(db *gorm.DB) *App {
	app := &App{mux: http.NewServeMux(), db: db}
	app.setupRoutes()
	return app
}

// ServeHTTP implements http.Handler. The auth middleware runs globally so
// any handler can read the session user from the context.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	auth.Middleware(a.mux).ServeHTTP(w, r)
}

func (a *App) setupRoutes() {
	svc := directory.NewService(a.db)
	uh := handlers.NewUserHandler(svc)
	ah := handlers.NewAuthHandler(a.db)

	// Public routes
	a.mux.HandleFunc("POST /login", ah.Login)
	a.mux.HandleFunc("POST /logout", ah.Logout)
	a.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	// Directory routes, session required
	a.mux.Handle("GET /users", a.requireAuth(http.HandlerFunc(uh.List)))
	a.mux.Handle("GET /users/trash", a.requireAuth(http.HandlerFunc(uh.Trash)))
	a.mux.Handle("GET /users/{id}", a.requireAuth(http.HandlerFunc(uh.Show)))
	a.mux.Handle("POST /users", a.requireAuth(http.HandlerFunc(uh.Create)))
	a.mux.Handle("PUT /users/{id}", a.requireAuth(http.HandlerFunc(uh.Update)))
	a.mux.Handle("DELETE /users/{id}", a.requireAuth(http.HandlerFunc(uh.Delete)))
	a.mux.Handle("POST /users/{id}/restore", a.requireAuth(http.HandlerFunc(uh.Restore)))
}

func (a *App) requireAuth(next http.Handler) http.Handler {
	return auth.RequireAuth(next)
}
