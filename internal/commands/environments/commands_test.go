package envcmd

import (
	"context"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-environments/internal/environments"
	"github.com/goliatone/go-environments/internal/logging"
	"github.com/google/uuid"
)

type trackingEnvironmentService struct {
	environments.Service
	createCalls int
	updateCalls int
	deleteCalls int
	widgetCalls int
	lastUpdate  environments.UpdateEnvironmentInput
}

func (t *trackingEnvironmentService) CreateEnvironment(ctx context.Context, input environments.CreateEnvironmentInput) (*environments.Environment, error) {
	t.createCalls++
	return t.Service.CreateEnvironment(ctx, input)
}

func (t *trackingEnvironmentService) UpdateEnvironment(ctx context.Context, input environments.UpdateEnvironmentInput) (*environments.Environment, error) {
	t.updateCalls++
	t.lastUpdate = input
	return t.Service.UpdateEnvironment(ctx, input)
}

func (t *trackingEnvironmentService) DeleteEnvironment(ctx context.Context, input environments.DeleteEnvironmentInput) error {
	t.deleteCalls++
	return t.Service.DeleteEnvironment(ctx, input)
}

func (t *trackingEnvironmentService) UpdateWidgetSettings(ctx context.Context, input environments.UpdateWidgetSettingsInput) (*environments.Environment, error) {
	t.widgetCalls++
	return t.Service.UpdateWidgetSettings(ctx, input)
}

func newTrackingService() *trackingEnvironmentService {
	return &trackingEnvironmentService{
		Service: environments.NewService(environments.NewMemoryRepository()),
	}
}

func TestCreateEnvironmentHandlerExecutes(t *testing.T) {
	ctx := context.Background()
	tracking := newTrackingService()
	handler := NewCreateEnvironmentHandler(tracking, logging.NoOp())

	err := handler.Execute(ctx, CreateEnvironmentCommand{
		OrganizationID: uuid.New(),
		UserID:         uuid.New(),
		Name:           "Production",
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if tracking.createCalls != 1 {
		t.Fatalf("expected 1 create call, got %d", tracking.createCalls)
	}
}

func TestCreateEnvironmentCommandValidation(t *testing.T) {
	handler := NewCreateEnvironmentHandler(newTrackingService(), logging.NoOp())

	err := handler.Execute(context.Background(), CreateEnvironmentCommand{Name: "Production"})
	if err == nil {
		t.Fatal("expected validation error for missing organization")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}

	err = handler.Execute(context.Background(), CreateEnvironmentCommand{OrganizationID: uuid.New()})
	if err == nil {
		t.Fatal("expected validation error for missing name")
	}
}

func TestUpdateEnvironmentHandlerForwardsFields(t *testing.T) {
	ctx := context.Background()
	tracking := newTrackingService()

	created, err := tracking.Service.CreateEnvironment(ctx, environments.CreateEnvironmentInput{
		OrganizationID: uuid.MustParse("00000000-0000-0000-0000-0000000000a1"),
		Name:           "Production",
	})
	if err != nil {
		t.Fatalf("seed environment: %v", err)
	}

	handler := NewUpdateEnvironmentHandler(tracking, logging.NoOp())
	identifier := "prod-v2"
	if err := handler.Execute(ctx, UpdateEnvironmentCommand{
		EnvironmentID:  created.ID,
		OrganizationID: created.OrganizationID,
		Identifier:     &identifier,
	}); err != nil {
		t.Fatalf("execute: %v", err)
	}

	if tracking.updateCalls != 1 {
		t.Fatalf("expected 1 update call, got %d", tracking.updateCalls)
	}
	if tracking.lastUpdate.Identifier == nil || *tracking.lastUpdate.Identifier != identifier {
		t.Fatalf("expected identifier forwarded")
	}

	fetched, err := tracking.Service.GetEnvironment(ctx, created.OrganizationID, created.ID)
	if err != nil {
		t.Fatalf("get environment: %v", err)
	}
	if fetched.Identifier != "prod-v2" {
		t.Fatalf("expected identifier prod-v2, got %s", fetched.Identifier)
	}
}

func TestDeleteEnvironmentHandlerExecutes(t *testing.T) {
	ctx := context.Background()
	tracking := newTrackingService()

	created, err := tracking.Service.CreateEnvironment(ctx, environments.CreateEnvironmentInput{
		OrganizationID: uuid.New(),
		Name:           "QA",
	})
	if err != nil {
		t.Fatalf("seed environment: %v", err)
	}

	handler := NewDeleteEnvironmentHandler(tracking, logging.NoOp())
	if err := handler.Execute(ctx, DeleteEnvironmentCommand{
		EnvironmentID:  created.ID,
		OrganizationID: created.OrganizationID,
	}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if tracking.deleteCalls != 1 {
		t.Fatalf("expected 1 delete call, got %d", tracking.deleteCalls)
	}
}

func TestUpdateWidgetSettingsHandlerExecutes(t *testing.T) {
	ctx := context.Background()
	tracking := newTrackingService()

	created, err := tracking.Service.CreateEnvironment(ctx, environments.CreateEnvironmentInput{
		OrganizationID: uuid.New(),
		Name:           "Production",
	})
	if err != nil {
		t.Fatalf("seed environment: %v", err)
	}

	handler := NewUpdateWidgetSettingsHandler(tracking, logging.NoOp())
	if err := handler.Execute(ctx, UpdateWidgetSettingsCommand{
		EnvironmentID:                created.ID,
		OrganizationID:               created.OrganizationID,
		NotificationCenterEncryption: true,
	}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if tracking.widgetCalls != 1 {
		t.Fatalf("expected 1 widget call, got %d", tracking.widgetCalls)
	}

	fetched, err := tracking.Service.GetEnvironment(ctx, created.OrganizationID, created.ID)
	if err != nil {
		t.Fatalf("get environment: %v", err)
	}
	if !fetched.Widget.NotificationCenterEncryption {
		t.Fatalf("expected encryption flag persisted")
	}
}
