package session

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestFromContextReturnsStoredSession(t *testing.T) {
	want := Session{
		UserID:         uuid.New(),
		OrganizationID: uuid.New(),
		EnvironmentID:  uuid.New(),
	}

	ctx := WithSession(context.Background(), want)
	got, err := FromContext(ctx)
	if err != nil {
		t.Fatalf("from context: %v", err)
	}
	if got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestFromContextRequiresSession(t *testing.T) {
	if _, err := FromContext(context.Background()); !errors.Is(err, ErrSessionRequired) {
		t.Fatalf("expected ErrSessionRequired, got %v", err)
	}
	if _, err := FromContext(nil); !errors.Is(err, ErrSessionRequired) {
		t.Fatalf("expected ErrSessionRequired for nil context, got %v", err)
	}
}

func TestFromContextRejectsIncompleteSession(t *testing.T) {
	ctx := WithSession(context.Background(), Session{UserID: uuid.New()})
	if _, err := FromContext(ctx); !errors.Is(err, ErrSessionRequired) {
		t.Fatalf("expected ErrSessionRequired for missing organization, got %v", err)
	}
}
