package goenvironments

import (
	"context"

	"github.com/goliatone/go-environments/internal/apikeys"
	"github.com/goliatone/go-environments/internal/environments"
	"github.com/uptrace/bun"
)

// RegisterModels registers the module's bun models on the database so
// relations resolve before any query runs.
func RegisterModels(db *bun.DB) {
	if db == nil {
		return
	}
	db.RegisterModel(
		(*environments.Environment)(nil),
		(*apikeys.ApiKey)(nil),
	)
}

// EnsureSchema creates the module's tables when they do not exist yet.
// Production deployments normally manage schema through migrations; this
// keeps embedded and development setups self-contained.
func EnsureSchema(ctx context.Context, db *bun.DB) error {
	if db == nil {
		return nil
	}
	RegisterModels(db)

	if _, err := db.NewCreateTable().
		Model((*environments.Environment)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return err
	}

	if _, err := db.NewCreateTable().
		Model((*apikeys.ApiKey)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return err
	}

	return nil
}
