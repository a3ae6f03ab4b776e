package goenvironments

import (
	"context"
	"fmt"
	"net/http"

	"github.com/goliatone/go-environments/internal/apikeys"
	"github.com/goliatone/go-environments/internal/commands"
	apikeyscmd "github.com/goliatone/go-environments/internal/commands/apikeys"
	envcmd "github.com/goliatone/go-environments/internal/commands/environments"
	"github.com/goliatone/go-environments/internal/environments"
	envhttp "github.com/goliatone/go-environments/internal/http"
	"github.com/goliatone/go-environments/internal/logging"
	"github.com/goliatone/go-environments/internal/session"
	"github.com/goliatone/go-environments/pkg/interfaces"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// EnvironmentService exports the environment service contract for consumers of the package.
type EnvironmentService = environments.Service

// ApiKeyService exports the API key service contract.
type ApiKeyService = apikeys.Service

// Environment exports the environment record.
type Environment = environments.Environment

// WidgetSettings exports the embedded widget settings.
type WidgetSettings = environments.WidgetSettings

// ApiKey exports the API key record.
type ApiKey = apikeys.ApiKey

// Session exports the request session carried through context.
type Session = session.Session

// CreateEnvironmentInput exports the environment creation input.
type CreateEnvironmentInput = environments.CreateEnvironmentInput

// UpdateEnvironmentInput exports the partial update input.
type UpdateEnvironmentInput = environments.UpdateEnvironmentInput

// DeleteEnvironmentInput exports the delete input.
type DeleteEnvironmentInput = environments.DeleteEnvironmentInput

// UpdateWidgetSettingsInput exports the widget settings input.
type UpdateWidgetSettingsInput = environments.UpdateWidgetSettingsInput

// CreateEnvironmentCommand exports the create command message.
type CreateEnvironmentCommand = envcmd.CreateEnvironmentCommand

// UpdateEnvironmentCommand exports the update command message.
type UpdateEnvironmentCommand = envcmd.UpdateEnvironmentCommand

// DeleteEnvironmentCommand exports the delete command message.
type DeleteEnvironmentCommand = envcmd.DeleteEnvironmentCommand

// UpdateWidgetSettingsCommand exports the widget settings command message.
type UpdateWidgetSettingsCommand = envcmd.UpdateWidgetSettingsCommand

// RegenerateApiKeysCommand exports the key rotation command message.
type RegenerateApiKeysCommand = apikeyscmd.RegenerateApiKeysCommand

// SessionResolver exports the HTTP session resolver contract.
type SessionResolver = envhttp.SessionResolver

// CommandHandlers groups the write-side command handlers built by the module.
type CommandHandlers struct {
	CreateEnvironment    *envcmd.CreateEnvironmentHandler
	UpdateEnvironment    *envcmd.UpdateEnvironmentHandler
	DeleteEnvironment    *envcmd.DeleteEnvironmentHandler
	UpdateWidgetSettings *envcmd.UpdateWidgetSettingsHandler
	RegenerateApiKeys    *apikeyscmd.RegenerateApiKeysHandler
}

// Module is the top level runtime façade: it wires repositories, services,
// command handlers, and the HTTP API from a single set of options.
type Module struct {
	db              *bun.DB
	provider        interfaces.LoggerProvider
	cacheService    cache.CacheService
	cacheSerializer cache.KeySerializer
	envRepo         environments.EnvironmentRepository
	keyRepo         apikeys.ApiKeyRepository
	keyGenerator    apikeys.Generator
	sessions        SessionResolver
	basePath        string

	environments environments.Service
	keys         apikeys.Service
	handlers     CommandHandlers
}

// ModuleOption configures the module.
type ModuleOption func(*Module)

// WithDB wires a bun database; repositories become database backed.
func WithDB(db *bun.DB) ModuleOption {
	return func(m *Module) {
		if m != nil {
			m.db = db
		}
	}
}

// WithLoggerProvider wires the logging provider used across the module.
func WithLoggerProvider(provider interfaces.LoggerProvider) ModuleOption {
	return func(m *Module) {
		if m != nil {
			m.provider = provider
		}
	}
}

// WithEnvironmentRepository overrides the environment repository.
func WithEnvironmentRepository(repo environments.EnvironmentRepository) ModuleOption {
	return func(m *Module) {
		if m != nil {
			m.envRepo = repo
		}
	}
}

// WithApiKeyRepository overrides the API key repository.
func WithApiKeyRepository(repo apikeys.ApiKeyRepository) ModuleOption {
	return func(m *Module) {
		if m != nil {
			m.keyRepo = repo
		}
	}
}

// WithKeyGenerator overrides API key material generation.
func WithKeyGenerator(generator apikeys.Generator) ModuleOption {
	return func(m *Module) {
		if m != nil {
			m.keyGenerator = generator
		}
	}
}

// WithSessionResolver wires the HTTP session resolver.
func WithSessionResolver(resolver SessionResolver) ModuleOption {
	return func(m *Module) {
		if m != nil {
			m.sessions = resolver
		}
	}
}

// WithRepositoryCache wraps database repositories with the provided cache.
func WithRepositoryCache(service cache.CacheService, serializer cache.KeySerializer) ModuleOption {
	return func(m *Module) {
		if m != nil {
			m.cacheService = service
			m.cacheSerializer = serializer
		}
	}
}

// WithHTTPBasePath overrides the HTTP mount point (defaults to "/environments").
func WithHTTPBasePath(path string) ModuleOption {
	return func(m *Module) {
		if m != nil {
			m.basePath = path
		}
	}
}

// New constructs the module. Repositories default to in-memory implementations
// unless a database or explicit repository is provided.
func New(opts ...ModuleOption) (*Module, error) {
	m := &Module{}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}

	if m.envRepo == nil {
		if m.db != nil {
			m.envRepo = environments.NewBunEnvironmentRepositoryWithCache(m.db, m.cacheService, m.cacheSerializer)
		} else {
			m.envRepo = environments.NewMemoryRepository()
		}
	}
	if m.keyRepo == nil {
		if m.db != nil {
			m.keyRepo = apikeys.NewBunApiKeyRepositoryWithCache(m.db, m.cacheService, m.cacheSerializer)
		} else {
			m.keyRepo = apikeys.NewMemoryRepository()
		}
	}

	keyOpts := []apikeys.ServiceOption{
		apikeys.WithLogger(logging.APIKeysLogger(m.provider)),
	}
	if m.keyGenerator != nil {
		keyOpts = append(keyOpts, apikeys.WithGenerator(m.keyGenerator))
	}
	m.keys = apikeys.NewService(m.keyRepo, keyOpts...)

	m.environments = environments.NewService(
		m.envRepo,
		environments.WithLogger(logging.EnvironmentsLogger(m.provider)),
		environments.WithKeyIssuer(func(ctx context.Context, organizationID, environmentID, userID uuid.UUID) error {
			_, err := m.keys.Issue(ctx, organizationID, environmentID, userID)
			return err
		}),
	)

	envLogger := commands.CommandLogger(m.provider, "environments")
	keyLogger := commands.CommandLogger(m.provider, "apikeys")
	m.handlers = CommandHandlers{
		CreateEnvironment:    envcmd.NewCreateEnvironmentHandler(m.environments, envLogger),
		UpdateEnvironment:    envcmd.NewUpdateEnvironmentHandler(m.environments, envLogger),
		DeleteEnvironment:    envcmd.NewDeleteEnvironmentHandler(m.environments, envLogger),
		UpdateWidgetSettings: envcmd.NewUpdateWidgetSettingsHandler(m.environments, envLogger),
		RegenerateApiKeys:    apikeyscmd.NewRegenerateApiKeysHandler(m.keys, keyLogger),
	}

	return m, nil
}

// Environments returns the configured environment service.
func (m *Module) Environments() EnvironmentService {
	if m == nil {
		return nil
	}
	return m.environments
}

// ApiKeys returns the configured API key service.
func (m *Module) ApiKeys() ApiKeyService {
	if m == nil {
		return nil
	}
	return m.keys
}

// Commands returns the module's command handlers.
func (m *Module) Commands() CommandHandlers {
	if m == nil {
		return CommandHandlers{}
	}
	return m.handlers
}

// RegisterRoutes attaches the HTTP API to the provided mux.
func (m *Module) RegisterRoutes(mux *http.ServeMux) error {
	if m == nil {
		return fmt.Errorf("environments: module is nil")
	}
	opts := []envhttp.Option{
		envhttp.WithEnvironmentService(m.environments),
		envhttp.WithApiKeyService(m.keys),
		envhttp.WithSessionResolver(m.sessions),
	}
	if m.basePath != "" {
		opts = append(opts, envhttp.WithBasePath(m.basePath))
	}
	if err := envhttp.NewAPI(opts...).Register(mux); err != nil {
		return err
	}
	logging.HTTPLogger(m.provider).Debug("routes registered", "base_path", m.basePath)
	return nil
}
