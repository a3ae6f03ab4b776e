// Package http provides optional HTTP adapters for environment management.
//
// Routes mount under /environments by default:
//   - Environments: /environments, /environments/me, /environments/{id}
//   - API keys: /environments/api-keys, /environments/api-keys/regenerate
//   - Widget settings: /environments/widget/settings
//
// Every endpoint is session scoped: the resolver supplies the acting user and
// organization, and records outside that organization are never visible. Host
// applications register the handlers on their own mux.
package http
