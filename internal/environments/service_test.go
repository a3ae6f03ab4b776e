package environments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestServiceCreateEnvironment(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	id := uuid.MustParse("00000000-0000-0000-0000-00000000a001")
	org := uuid.MustParse("00000000-0000-0000-0000-0000000000f1")
	user := uuid.New()

	svc := NewService(repo,
		WithIDGenerator(func() uuid.UUID { return id }),
		WithNow(func() time.Time { return now }),
	)

	env, err := svc.CreateEnvironment(ctx, CreateEnvironmentInput{
		OrganizationID: org,
		UserID:         user,
		Name:           "Production",
	})
	if err != nil {
		t.Fatalf("create environment: %v", err)
	}
	if env.ID != id {
		t.Fatalf("expected id %s, got %s", id, env.ID)
	}
	if env.Name != "Production" {
		t.Fatalf("expected name Production, got %s", env.Name)
	}
	if env.Identifier != "production" {
		t.Fatalf("expected identifier production, got %s", env.Identifier)
	}
	if env.OrganizationID != org {
		t.Fatalf("expected organization %s, got %s", org, env.OrganizationID)
	}
	if !env.CreatedAt.Equal(now) || !env.UpdatedAt.Equal(now) {
		t.Fatalf("unexpected timestamps")
	}
}

func TestServiceCreateEnvironmentRequiresNameAndOrganization(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository())

	if _, err := svc.CreateEnvironment(ctx, CreateEnvironmentInput{OrganizationID: uuid.New()}); !errors.Is(err, ErrEnvironmentNameRequired) {
		t.Fatalf("expected name required, got %v", err)
	}
	if _, err := svc.CreateEnvironment(ctx, CreateEnvironmentInput{Name: "Dev"}); !errors.Is(err, ErrEnvironmentOrganizationRequired) {
		t.Fatalf("expected organization required, got %v", err)
	}
}

func TestServiceCreateEnvironmentIssuesInitialKey(t *testing.T) {
	ctx := context.Background()
	org := uuid.New()
	user := uuid.New()

	var issuedOrg, issuedEnv, issuedUser uuid.UUID
	svc := NewService(NewMemoryRepository(), WithKeyIssuer(func(_ context.Context, organizationID, environmentID, userID uuid.UUID) error {
		issuedOrg, issuedEnv, issuedUser = organizationID, environmentID, userID
		return nil
	}))

	env, err := svc.CreateEnvironment(ctx, CreateEnvironmentInput{OrganizationID: org, UserID: user, Name: "Dev"})
	if err != nil {
		t.Fatalf("create environment: %v", err)
	}
	if issuedOrg != org || issuedEnv != env.ID || issuedUser != user {
		t.Fatalf("expected key issued for created environment, got %s/%s/%s", issuedOrg, issuedEnv, issuedUser)
	}
}

func TestServiceCreateEnvironmentChecksParent(t *testing.T) {
	ctx := context.Background()
	org := uuid.New()
	svc := NewService(NewMemoryRepository())

	parent, err := svc.CreateEnvironment(ctx, CreateEnvironmentInput{OrganizationID: org, Name: "Production"})
	if err != nil {
		t.Fatalf("create parent: %v", err)
	}

	child, err := svc.CreateEnvironment(ctx, CreateEnvironmentInput{
		OrganizationID: org,
		Name:           "Staging",
		ParentID:       &parent.ID,
	})
	if err != nil {
		t.Fatalf("create child: %v", err)
	}
	if child.ParentID == nil || *child.ParentID != parent.ID {
		t.Fatalf("expected parent reference")
	}

	missing := uuid.New()
	if _, err := svc.CreateEnvironment(ctx, CreateEnvironmentInput{
		OrganizationID: org,
		Name:           "Orphan",
		ParentID:       &missing,
	}); !errors.Is(err, ErrParentEnvironmentNotFound) {
		t.Fatalf("expected parent not found, got %v", err)
	}
}

func TestServiceUpdateEnvironmentAppliesIndependentFieldChecks(t *testing.T) {
	ctx := context.Background()
	org := uuid.New()
	svc := NewService(NewMemoryRepository())

	env, err := svc.CreateEnvironment(ctx, CreateEnvironmentInput{OrganizationID: org, Name: "Production"})
	if err != nil {
		t.Fatalf("create environment: %v", err)
	}

	// An empty name must not suppress the identifier update, and the empty
	// value itself is never written.
	updated, err := svc.UpdateEnvironment(ctx, UpdateEnvironmentInput{
		ID:             env.ID,
		OrganizationID: org,
		Name:           stringPtr(""),
		Identifier:     stringPtr("prod-v2"),
	})
	if err != nil {
		t.Fatalf("update environment: %v", err)
	}
	if updated.Name != "Production" {
		t.Fatalf("expected name unchanged, got %s", updated.Name)
	}
	if updated.Identifier != "prod-v2" {
		t.Fatalf("expected identifier prod-v2, got %s", updated.Identifier)
	}
}

func TestServiceUpdateEnvironmentSkipsEmptyFields(t *testing.T) {
	ctx := context.Background()
	org := uuid.New()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	clock := now
	svc := NewService(NewMemoryRepository(), WithNow(func() time.Time { return clock }))

	env, err := svc.CreateEnvironment(ctx, CreateEnvironmentInput{OrganizationID: org, Name: "Development"})
	if err != nil {
		t.Fatalf("create environment: %v", err)
	}

	clock = now.Add(time.Hour)
	unchanged, err := svc.UpdateEnvironment(ctx, UpdateEnvironmentInput{
		ID:             env.ID,
		OrganizationID: org,
		Name:           stringPtr("   "),
		Identifier:     stringPtr(""),
	})
	if err != nil {
		t.Fatalf("update environment: %v", err)
	}
	if unchanged.Name != "Development" || unchanged.Identifier != "development" {
		t.Fatalf("expected record untouched, got %s/%s", unchanged.Name, unchanged.Identifier)
	}
	if !unchanged.UpdatedAt.Equal(now) {
		t.Fatalf("expected updated_at untouched when nothing persisted")
	}
}

func TestServiceUpdateEnvironmentScopedByOrganization(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository())

	env, err := svc.CreateEnvironment(ctx, CreateEnvironmentInput{OrganizationID: uuid.New(), Name: "Production"})
	if err != nil {
		t.Fatalf("create environment: %v", err)
	}

	otherOrg := uuid.New()
	if _, err := svc.UpdateEnvironment(ctx, UpdateEnvironmentInput{
		ID:             env.ID,
		OrganizationID: otherOrg,
		Name:           stringPtr("Hijacked"),
	}); !errors.Is(err, ErrEnvironmentNotFound) {
		t.Fatalf("expected not found for foreign organization, got %v", err)
	}
}

func TestServiceUpdateEnvironmentRejectsSelfParent(t *testing.T) {
	ctx := context.Background()
	org := uuid.New()
	svc := NewService(NewMemoryRepository())

	env, err := svc.CreateEnvironment(ctx, CreateEnvironmentInput{OrganizationID: org, Name: "Production"})
	if err != nil {
		t.Fatalf("create environment: %v", err)
	}

	if _, err := svc.UpdateEnvironment(ctx, UpdateEnvironmentInput{
		ID:             env.ID,
		OrganizationID: org,
		ParentID:       &env.ID,
	}); !errors.Is(err, ErrParentEnvironmentInvalid) {
		t.Fatalf("expected self-parent rejection, got %v", err)
	}
}

func TestServiceDeleteEnvironment(t *testing.T) {
	ctx := context.Background()
	org := uuid.New()
	svc := NewService(NewMemoryRepository())

	env, err := svc.CreateEnvironment(ctx, CreateEnvironmentInput{OrganizationID: org, Name: "QA"})
	if err != nil {
		t.Fatalf("create environment: %v", err)
	}
	if err := svc.DeleteEnvironment(ctx, DeleteEnvironmentInput{ID: env.ID, OrganizationID: org}); err != nil {
		t.Fatalf("delete environment: %v", err)
	}
	if _, err := svc.GetEnvironment(ctx, org, env.ID); !errors.Is(err, ErrEnvironmentNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestServiceDeleteEnvironmentScopedByOrganization(t *testing.T) {
	ctx := context.Background()
	org := uuid.New()
	svc := NewService(NewMemoryRepository())

	env, err := svc.CreateEnvironment(ctx, CreateEnvironmentInput{OrganizationID: org, Name: "QA"})
	if err != nil {
		t.Fatalf("create environment: %v", err)
	}
	if err := svc.DeleteEnvironment(ctx, DeleteEnvironmentInput{ID: env.ID, OrganizationID: uuid.New()}); !errors.Is(err, ErrEnvironmentNotFound) {
		t.Fatalf("expected not found for foreign organization, got %v", err)
	}
	if _, err := svc.GetEnvironment(ctx, org, env.ID); err != nil {
		t.Fatalf("expected environment to survive foreign delete: %v", err)
	}
}

func TestServiceListEnvironmentsByOrganization(t *testing.T) {
	ctx := context.Background()
	org := uuid.New()
	other := uuid.New()
	svc := NewService(NewMemoryRepository())

	created, err := svc.CreateEnvironment(ctx, CreateEnvironmentInput{OrganizationID: org, Name: "Production"})
	if err != nil {
		t.Fatalf("create environment: %v", err)
	}
	if _, err := svc.CreateEnvironment(ctx, CreateEnvironmentInput{OrganizationID: other, Name: "Elsewhere"}); err != nil {
		t.Fatalf("create foreign environment: %v", err)
	}

	list, err := svc.ListEnvironments(ctx, org)
	if err != nil {
		t.Fatalf("list environments: %v", err)
	}
	if len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("expected organization listing to contain created record only")
	}
}

func TestServiceUpdateWidgetSettingsRoundTrips(t *testing.T) {
	ctx := context.Background()
	org := uuid.New()
	svc := NewService(NewMemoryRepository())

	env, err := svc.CreateEnvironment(ctx, CreateEnvironmentInput{OrganizationID: org, Name: "Production"})
	if err != nil {
		t.Fatalf("create environment: %v", err)
	}
	if env.Widget.NotificationCenterEncryption {
		t.Fatalf("expected encryption disabled by default")
	}

	updated, err := svc.UpdateWidgetSettings(ctx, UpdateWidgetSettingsInput{
		ID:                           env.ID,
		OrganizationID:               org,
		NotificationCenterEncryption: true,
	})
	if err != nil {
		t.Fatalf("update widget settings: %v", err)
	}
	if !updated.Widget.NotificationCenterEncryption {
		t.Fatalf("expected encryption enabled")
	}

	fetched, err := svc.GetEnvironment(ctx, org, env.ID)
	if err != nil {
		t.Fatalf("get environment: %v", err)
	}
	if !fetched.Widget.NotificationCenterEncryption {
		t.Fatalf("expected encryption flag to persist")
	}
}

func TestServiceGetEnvironmentByIdentifier(t *testing.T) {
	ctx := context.Background()
	org := uuid.New()
	svc := NewService(NewMemoryRepository())

	env, err := svc.CreateEnvironment(ctx, CreateEnvironmentInput{OrganizationID: org, Name: "My Staging"})
	if err != nil {
		t.Fatalf("create environment: %v", err)
	}

	fetched, err := svc.GetEnvironmentByIdentifier(ctx, org, "my-staging")
	if err != nil {
		t.Fatalf("get by identifier: %v", err)
	}
	if fetched.ID != env.ID {
		t.Fatalf("expected %s, got %s", env.ID, fetched.ID)
	}
}

func stringPtr(value string) *string {
	return &value
}
