package auth

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestManagerIssueAndValidate(t *testing.T) {
	manager := NewManager(time.Hour, nil)

	session, err := manager.Issue(context.Background(), "frontend")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if session.Token == "" {
		t.Fatalf("expected token: %+v", session)
	}

	got, err := manager.Validate(context.Background(), session.Token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if got.Subject != "frontend" {
		t.Fatalf("unexpected subject %q", got.Subject)
	}
}

func TestManagerIssueValidation(t *testing.T) {
	if _, err := NewManager(time.Hour, nil).Issue(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty subject")
	}
}

func TestManagerValidateFailures(t *testing.T) {
	store := NewMemorySessionStore()
	manager := NewManager(time.Minute, store)
	now := time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)
	manager.now = func() time.Time { return now }

	if _, err := manager.Validate(context.Background(), ""); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected session not found got %v", err)
	}

	session, err := manager.Issue(context.Background(), "frontend")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	now = now.Add(time.Minute)
	if _, err := manager.Validate(context.Background(), session.Token); !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("expected expired got %v", err)
	}
	if store.Len() != 0 {
		t.Fatal("expected expired session to be removed")
	}

	session, err = manager.Issue(context.Background(), "frontend")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	manager.Revoke(context.Background(), session.Token)
	if _, err := manager.Validate(context.Background(), session.Token); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected session not found after revoke got %v", err)
	}
}

func TestPasswordGate(t *testing.T) {
	gate, err := NewPasswordGate("hunter2")
	if err != nil {
		t.Fatalf("new gate: %v", err)
	}
	if err := gate.Check("hunter2"); err != nil {
		t.Fatalf("expected match got %v", err)
	}
	if err := gate.Check("hunter3"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected invalid password got %v", err)
	}

	empty, err := NewPasswordGate("")
	if err != nil {
		t.Fatalf("new gate: %v", err)
	}
	if err := empty.Check(""); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected empty gate to reject got %v", err)
	}
}
