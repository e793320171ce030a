// Package httpapi is the HTTP adapter over the kanban services.
package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	log "github.com/sirupsen/logrus"

	"github.com/alexanderramin/kanban/internal/imagestore"
	"github.com/alexanderramin/kanban/internal/service"
)

// Handlers holds the services the routes dispatch to.
type Handlers struct {
	Boards  service.BoardService
	Columns service.ColumnService
	Tasks   service.TaskService
	Users   service.UserService
	Images  imagestore.Store

	// Health, when set, backs /healthz with a dependency check.
	Health func(ctx context.Context) error

	Logger log.FieldLogger
}

// NewRouter builds the chi router with CORS, request logging and the
// identity middleware applied to every route.
func NewRouter(h *Handlers, allowedOrigins []string) http.Handler {
	if h.Logger == nil {
		h.Logger = log.StandardLogger()
	}
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(h.Logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", UserHeader},
		MaxAge:         300,
	}))
	r.Use(identity)

	r.Get("/healthz", h.healthz)

	r.Route("/api", func(r chi.Router) {
		r.Route("/boards", func(r chi.Router) {
			r.Get("/", h.listBoards)
			r.Post("/", h.createBoard)
			r.Get("/{id}", h.getBoard)
			r.Put("/{id}", h.updateBoard)
			r.Delete("/{id}", h.deleteBoard)
		})
		r.Route("/columns", func(r chi.Router) {
			r.Post("/", h.createColumn)
			r.Put("/{id}", h.updateColumn)
			r.Delete("/{id}", h.deleteColumn)
		})
		r.Route("/tasks", func(r chi.Router) {
			r.Post("/", h.createTask)
			r.Put("/{id}", h.updateTask)
			r.Post("/{id}/move", h.moveTask)
			r.Delete("/{id}", h.deleteTask)
		})
		r.Get("/images/{ref}", h.getImage)
		r.Route("/users", func(r chi.Router) {
			r.Get("/", h.listUsers)
			r.Post("/", h.createUser)
			r.Delete("/{id}", h.deleteUser)
		})
	})

	return r
}

func (h *Handlers) healthz(w http.ResponseWriter, r *http.Request) {
	if h.Health != nil {
		if err := h.Health(r.Context()); err != nil {
			h.Logger.WithError(err).Warn("health check failed")
			respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	respondError(w, r, h.Logger, err)
}
