package http

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/taskana/taskana/infrastructure/config"
	"github.com/taskana/taskana/infrastructure/http/handler"
	"github.com/taskana/taskana/infrastructure/http/middleware"
	"github.com/taskana/taskana/infrastructure/http/response"
	"github.com/taskana/taskana/infrastructure/service/logger"
)

type Handlers struct {
	Auth    *handler.AuthHandler
	User    *handler.UserHandler
	Project *handler.ProjectHandler
	Task    *handler.TaskHandler
	Ticket  *handler.TicketHandler
}

type Server struct {
	httpServer *http.Server
	router     http.Handler
}

// NewServer assembles the router with the guard chain each route needs:
// Authenticate runs on everything, Require* guards layer on top per route.
func NewServer(cfg *config.Config, log logger.Logger, auth *middleware.AuthMiddleware, h Handlers) *Server {
	r := mux.NewRouter()

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		response.NotFound(w, "Not Found")
	})

	r.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		response.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// Auth routes carry no guards; the refresh cookie is their credential.
	r.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost)
	r.HandleFunc("/auth/register", h.Auth.Register).Methods(http.MethodPost)
	r.HandleFunc("/auth/refresh", h.Auth.Refresh).Methods(http.MethodGet)
	r.HandleFunc("/auth/logout", h.Auth.Logout).Methods(http.MethodGet)

	r.HandleFunc("/users", auth.RequireLoggedIn(auth.RequireAdmin(h.User.Create))).Methods(http.MethodPost)
	r.HandleFunc("/users", auth.RequireLoggedIn(h.User.List)).Methods(http.MethodGet)
	r.HandleFunc("/users/{empNumber}", auth.RequireLoggedIn(h.User.Get)).Methods(http.MethodGet)
	r.HandleFunc("/users/{empNumber}", auth.RequireLoggedIn(auth.RequireSelfOrAdmin("empNumber", h.User.Update))).Methods(http.MethodPatch)
	r.HandleFunc("/users/{empNumber}", auth.RequireLoggedIn(auth.RequireSelfOrAdmin("empNumber", h.User.Delete))).Methods(http.MethodDelete)

	r.HandleFunc("/projects", auth.RequireLoggedIn(auth.RequireAdmin(h.Project.Create))).Methods(http.MethodPost)
	r.HandleFunc("/projects", auth.RequireLoggedIn(h.Project.List)).Methods(http.MethodGet)
	r.HandleFunc("/projects/{id}", auth.RequireLoggedIn(h.Project.Get)).Methods(http.MethodGet)
	r.HandleFunc("/projects/{id}", auth.RequireLoggedIn(auth.RequireAdmin(h.Project.Update))).Methods(http.MethodPatch)
	r.HandleFunc("/projects/{id}", auth.RequireLoggedIn(auth.RequireAdmin(h.Project.Delete))).Methods(http.MethodDelete)

	r.HandleFunc("/tasks", auth.RequireLoggedIn(h.Task.Create)).Methods(http.MethodPost)
	r.HandleFunc("/tasks/detail/{id}", auth.RequireLoggedIn(h.Task.Get)).Methods(http.MethodGet)
	r.HandleFunc("/tasks/{empNumber}", auth.RequireLoggedIn(auth.RequireSelfOrAdmin("empNumber", h.Task.ListForUser))).Methods(http.MethodGet)
	r.HandleFunc("/tasks/{id}", auth.RequireLoggedIn(h.Task.Update)).Methods(http.MethodPatch)
	r.HandleFunc("/tasks/{id}", auth.RequireLoggedIn(h.Task.Delete)).Methods(http.MethodDelete)

	r.HandleFunc("/tickets", auth.RequireLoggedIn(auth.RequireAdmin(h.Ticket.Create))).Methods(http.MethodPost)
	r.HandleFunc("/tickets", auth.RequireLoggedIn(h.Ticket.List)).Methods(http.MethodGet)
	r.HandleFunc("/tickets/assigned/{empNumber}", auth.RequireLoggedIn(auth.RequireSelfOrAdmin("empNumber", h.Ticket.ListAssigned))).Methods(http.MethodGet)
	r.HandleFunc("/tickets/{id}", auth.RequireLoggedIn(h.Ticket.Get)).Methods(http.MethodGet)
	r.HandleFunc("/tickets/{id}", auth.RequireLoggedIn(h.Ticket.Update)).Methods(http.MethodPatch)
	r.HandleFunc("/tickets/{id}", auth.RequireLoggedIn(h.Ticket.Delete)).Methods(http.MethodDelete)

	var chain http.Handler = r
	chain = auth.Authenticate(chain)
	chain = middleware.RequestLoggingMiddleware(log)(chain)
	chain = middleware.CORSMiddleware(chain, cfg.CORSAllowedOrigins)
	chain = middleware.CorrelationIDMiddleware(chain)
	chain = middleware.RecoveryMiddleware(log)(chain)

	return &Server{
		router: chain,
		httpServer: &http.Server{
			Addr:         cfg.ListenAddr(),
			Handler:      chain,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
	}
}

// Handler exposes the full middleware chain for httptest servers.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
