package services

import (
	"context"
	"testing"
	"time"

	"github.com/hfletcher/jobsite/internal/domain/user"
	"github.com/hfletcher/jobsite/internal/testutil"
)

func TestUserRegister(t *testing.T) {
	repo := testutil.NewMockUserRepository()
	svc := NewUserService(repo, testLogger())

	u, err := svc.Register(context.Background(), " Dan@Example.com ", "dan", "hunter2hunter2", nil)
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if u.Email != "dan@example.com" {
		t.Errorf("Email = %q, want normalized lowercase", u.Email)
	}
	if u.PlanType != user.PlanTypeTrial {
		t.Errorf("PlanType = %q, want trial", u.PlanType)
	}
	if u.TrialStart == nil {
		t.Fatal("TrialStart not set on registration")
	}
	if time.Since(*u.TrialStart) > time.Minute {
		t.Errorf("TrialStart = %v, want roughly now", u.TrialStart)
	}
	if u.PasswordHash == "hunter2hunter2" || u.PasswordHash == "" {
		t.Error("password stored unhashed")
	}
	if u.SubscriptionActive {
		t.Error("new account has SubscriptionActive set")
	}
}

func TestUserRegisterDuplicateEmail(t *testing.T) {
	repo := testutil.NewMockUserRepository()
	svc := NewUserService(repo, testLogger())

	if _, err := svc.Register(context.Background(), "dan@example.com", "dan", "hunter2hunter2", nil); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if _, err := svc.Register(context.Background(), "DAN@example.com", "dan2", "hunter2hunter2", nil); err == nil {
		t.Error("Register() accepted duplicate email")
	}
}

func TestUserAuthenticate(t *testing.T) {
	repo := testutil.NewMockUserRepository()
	svc := NewUserService(repo, testLogger())
	svc.Register(context.Background(), "dan@example.com", "dan", "hunter2hunter2", nil)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  bool
	}{
		{name: "valid credentials", email: "dan@example.com", password: "hunter2hunter2"},
		{name: "case insensitive email", email: "Dan@Example.COM", password: "hunter2hunter2"},
		{name: "wrong password", email: "dan@example.com", password: "wrong", wantErr: true},
		{name: "unknown email", email: "nobody@example.com", password: "hunter2hunter2", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Authenticate(context.Background(), tt.email, tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("Authenticate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestUserEntitlement(t *testing.T) {
	repo := testutil.NewMockUserRepository()
	svc := NewUserService(repo, testLogger())

	u, err := svc.Register(context.Background(), "dan@example.com", "dan", "hunter2hunter2", nil)
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	ent, err := svc.Entitlement(context.Background(), u.ID, time.Now())
	if err != nil {
		t.Fatalf("Entitlement() error = %v", err)
	}
	if !ent.TrialActive || !ent.CanAccessApp {
		t.Errorf("fresh account entitlement = %+v, want active trial", ent)
	}

	// Past the window with no subscription, access is gone.
	ent, err = svc.Entitlement(context.Background(), u.ID, time.Now().Add(15*24*time.Hour))
	if err != nil {
		t.Fatalf("Entitlement() error = %v", err)
	}
	if ent.CanAccessApp {
		t.Errorf("expired trial entitlement = %+v, want no access", ent)
	}

	if _, err := svc.Entitlement(context.Background(), 404, time.Now()); err == nil {
		t.Error("Entitlement() expected error for unknown user")
	}
}
