package apikeys_test

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-environments/internal/apikeys"
	"github.com/goliatone/go-environments/pkg/testsupport"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

func TestBunApiKeyRepositoryLifecycle(t *testing.T) {
	ctx := context.Background()

	sqlDB, err := testsupport.NewNamedSQLiteMemoryDB("apikeys_repo")
	if err != nil {
		t.Fatalf("new sqlite db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	bunDB := bun.NewDB(sqlDB, sqlitedialect.New())
	bunDB.SetMaxOpenConns(1)

	if _, err := bunDB.NewCreateTable().Model((*apikeys.ApiKey)(nil)).IfNotExists().Exec(ctx); err != nil {
		t.Fatalf("create api_keys table: %v", err)
	}

	repo := apikeys.NewBunApiKeyRepository(bunDB)
	now := time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC)
	org := uuid.New()
	env := uuid.New()

	for i, material := range []string{"key-a", "key-b"} {
		record := &apikeys.ApiKey{
			ID:             uuid.New(),
			Key:            material,
			EnvironmentID:  env,
			OrganizationID: org,
			UserID:         uuid.New(),
			CreatedAt:      now.Add(time.Duration(i) * time.Minute),
			UpdatedAt:      now,
		}
		if _, err := repo.Create(ctx, record); err != nil {
			t.Fatalf("create key %s: %v", material, err)
		}
	}

	list, err := repo.ListByEnvironment(ctx, org, env)
	if err != nil {
		t.Fatalf("list keys: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 keys, got %d", len(list))
	}

	foreign, err := repo.ListByEnvironment(ctx, uuid.New(), env)
	if err != nil {
		t.Fatalf("list foreign keys: %v", err)
	}
	if len(foreign) != 0 {
		t.Fatalf("expected foreign organization to see no keys")
	}

	if err := repo.DeleteByEnvironment(ctx, org, env); err != nil {
		t.Fatalf("delete keys: %v", err)
	}
	remaining, err := repo.ListByEnvironment(ctx, org, env)
	if err != nil {
		t.Fatalf("list keys: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("expected all keys removed, got %d", len(remaining))
	}
}
