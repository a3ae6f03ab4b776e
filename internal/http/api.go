package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-environments/internal/apikeys"
	"github.com/goliatone/go-environments/internal/environments"
	"github.com/goliatone/go-environments/internal/session"
)

// SessionResolver extracts the authenticated session from a request. Implementations
// typically read auth middleware output or trusted headers.
type SessionResolver func(r *http.Request) (session.Session, error)

// API registers the environment management endpoints.
type API struct {
	basePath     string
	environments environments.Service
	keys         apikeys.Service
	sessions     SessionResolver
}

// Option mutates the API configuration.
type Option func(*API)

// NewAPI constructs an API instance.
func NewAPI(opts ...Option) *API {
	api := &API{
		basePath: "/environments",
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// WithBasePath overrides the base API path (defaults to "/environments").
func WithBasePath(path string) Option {
	return func(api *API) {
		if api == nil {
			return
		}
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

// WithEnvironmentService wires the environment service.
func WithEnvironmentService(service environments.Service) Option {
	return func(api *API) {
		if api != nil {
			api.environments = service
		}
	}
}

// WithApiKeyService wires the API key service.
func WithApiKeyService(service apikeys.Service) Option {
	return func(api *API) {
		if api != nil {
			api.keys = service
		}
	}
}

// WithSessionResolver wires the session resolver used by every endpoint.
func WithSessionResolver(resolver SessionResolver) Option {
	return func(api *API) {
		if api != nil {
			api.sessions = resolver
		}
	}
}

// Register attaches the environment endpoints to the provided mux.
func (api *API) Register(mux *http.ServeMux) error {
	if mux == nil {
		return fmt.Errorf("http: mux is required")
	}
	if api == nil {
		return fmt.Errorf("http: api is nil")
	}

	api.registerEnvironmentRoutes(mux, joinPath(api.basePath, ""))

	return nil
}

func (api *API) resolveSession(r *http.Request) (session.Session, error) {
	if api == nil {
		return session.Session{}, session.ErrSessionRequired
	}
	if api.sessions != nil {
		sess, err := api.sessions(r)
		if err != nil {
			return session.Session{}, err
		}
		if !sess.Valid() {
			return session.Session{}, session.ErrSessionRequired
		}
		return sess, nil
	}
	if r == nil {
		return session.Session{}, session.ErrSessionRequired
	}
	return session.FromContext(r.Context())
}
