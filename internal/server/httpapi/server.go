// Package httpapi exposes the account operations over a JSON/HTTP API. It is
// a thin boundary layer: every request is decoded, handed to the services,
// and the resulting error kind is mapped onto a status code.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/avmarques/accounts/internal/logging"
	"github.com/avmarques/accounts/internal/server/models"
	"github.com/avmarques/accounts/internal/server/services"
)

// UserDirectory is the account-management surface consumed by the handlers.
// *services.UserService satisfies it.
type UserDirectory interface {
	Create(ctx context.Context, params services.CreateUserParams) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, id string, params services.UpdateUserParams) (*models.User, error)
	Delete(ctx context.Context, id string) error
}

// Authenticator is the login surface consumed by the handlers.
// *services.IdentityService satisfies it.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, error)
}

type HTTPServer struct {
	address   string
	logger    logging.Logger
	users     UserDirectory
	identity  Authenticator
	jwtSecret []byte
}

func NewHTTPServer(a string, l logging.Logger, us UserDirectory, is Authenticator, secretKey string) *HTTPServer {
	return &HTTPServer{
		address:   a,
		logger:    l.With("module", "http_server"),
		users:     us,
		identity:  is,
		jwtSecret: []byte(secretKey),
	}
}

// Routes assembles the router. Account creation and login are public; the
// remaining account operations require a bearer token.
func (s *HTTPServer) Routes() http.Handler {
	r := chi.NewRouter()

	r.Route("/api", func(r chi.Router) {
		r.Post("/users", s.handleCreateUser)
		r.Post("/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(s.authn)
			r.Get("/users", s.handleListUsers)
			r.Get("/users/{id}", s.handleGetUser)
			r.Patch("/users/{id}", s.handleUpdateUser)
			r.Delete("/users/{id}", s.handleDeleteUser)
		})
	})

	return r
}

func (s *HTTPServer) Run(ctx context.Context) error {

	srv := &http.Server{Addr: s.address, Handler: s.Routes()}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
