package services

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/hfletcher/jobsite/internal/domain/client"
	"github.com/hfletcher/jobsite/internal/domain/portal"
	"github.com/hfletcher/jobsite/internal/domain/project"
	"github.com/hfletcher/jobsite/internal/domain/update"
	"github.com/hfletcher/jobsite/internal/testutil"
)

type portalFixture struct {
	svc      *PortalService
	users    *testutil.MockPortalRepository
	clients  *testutil.MockClientRepository
	projects *testutil.MockProjectRepository
	updates  *testutil.MockUpdateRepository
}

func newPortalFixture() *portalFixture {
	f := &portalFixture{
		users:    testutil.NewMockPortalRepository(),
		clients:  testutil.NewMockClientRepository(),
		projects: testutil.NewMockProjectRepository(),
		updates:  testutil.NewMockUpdateRepository(),
	}
	f.svc = NewPortalService(f.users, f.clients, f.projects, f.updates, testLogger())
	return f
}

func (f *portalFixture) seedClient(userID int64) *client.Client {
	c := &client.Client{UserID: userID, Name: "Meyer"}
	f.clients.Create(context.Background(), c)
	return c
}

func (f *portalFixture) seedLogin(clientID int64, email, password string) *portal.PortalUser {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	p := &portal.PortalUser{ClientID: clientID, Email: email, PasswordHash: string(hash)}
	f.users.Create(context.Background(), p)
	return p
}

func TestPortalInvite(t *testing.T) {
	f := newPortalFixture()
	c := f.seedClient(1)

	p, err := f.svc.Invite(context.Background(), 1, c.ID, " Meyer@Example.com ", "Kim Meyer", "hunter2hunter2")
	if err != nil {
		t.Fatalf("Invite() error = %v", err)
	}
	if p.Email != "meyer@example.com" {
		t.Errorf("Email = %q, want normalized lowercase", p.Email)
	}
	if p.ClientID != c.ID {
		t.Errorf("ClientID = %d, want %d", p.ClientID, c.ID)
	}
	if p.PasswordHash == "hunter2hunter2" || p.PasswordHash == "" {
		t.Error("password stored unhashed")
	}
}

func TestPortalInviteValidation(t *testing.T) {
	f := newPortalFixture()
	c := f.seedClient(1)
	f.seedLogin(c.ID, "taken@example.com", "hunter2hunter2")

	tests := []struct {
		name     string
		userID   int64
		clientID int64
		email    string
		password string
	}{
		{name: "foreign client", userID: 2, clientID: c.ID, email: "new@example.com", password: "hunter2hunter2"},
		{name: "empty email", userID: 1, clientID: c.ID, email: "  ", password: "hunter2hunter2"},
		{name: "short password", userID: 1, clientID: c.ID, email: "new@example.com", password: "short"},
		{name: "duplicate email", userID: 1, clientID: c.ID, email: "taken@example.com", password: "hunter2hunter2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.svc.Invite(context.Background(), tt.userID, tt.clientID, tt.email, "", tt.password); err == nil {
				t.Error("Invite() expected error, got nil")
			}
		})
	}
}

func TestPortalAuthenticate(t *testing.T) {
	f := newPortalFixture()
	c := f.seedClient(1)
	f.seedLogin(c.ID, "meyer@example.com", "hunter2hunter2")

	p, err := f.svc.Authenticate(context.Background(), "Meyer@Example.com", "hunter2hunter2")
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if p.LastLoginAt == nil {
		t.Error("LastLoginAt not recorded")
	}

	if _, err := f.svc.Authenticate(context.Background(), "meyer@example.com", "wrong"); err == nil {
		t.Error("Authenticate() accepted wrong password")
	}
	if _, err := f.svc.Authenticate(context.Background(), "nobody@example.com", "hunter2hunter2"); err == nil {
		t.Error("Authenticate() accepted unknown email")
	}
}

func TestPortalAuthenticateSurvivesLoginStampFailure(t *testing.T) {
	f := newPortalFixture()
	c := f.seedClient(1)
	f.seedLogin(c.ID, "meyer@example.com", "hunter2hunter2")
	f.users.LoginError = context.DeadlineExceeded

	if _, err := f.svc.Authenticate(context.Background(), "meyer@example.com", "hunter2hunter2"); err != nil {
		t.Errorf("Authenticate() error = %v, login stamp is best effort", err)
	}
}

func TestPortalListUpdatesScoping(t *testing.T) {
	f := newPortalFixture()
	mine := &project.Project{UserID: 1, ClientID: 10, Name: "Deck Build"}
	f.projects.Create(context.Background(), mine)
	other := &project.Project{UserID: 1, ClientID: 20, Name: "Garage"}
	f.projects.Create(context.Background(), other)

	f.updates.Create(context.Background(), &update.Update{ProjectID: mine.ID, Title: "Framing done"})
	f.updates.Create(context.Background(), &update.Update{ProjectID: other.ID, Title: "Slab poured"})

	updates, total, err := f.svc.ListUpdates(context.Background(), 10, mine.ID, 20, 0)
	if err != nil {
		t.Fatalf("ListUpdates() error = %v", err)
	}
	if total != 1 || len(updates) != 1 || updates[0].Title != "Framing done" {
		t.Errorf("ListUpdates() = %+v, total %d", updates, total)
	}

	// A portal token for client 10 can never read client 20's project.
	if _, _, err := f.svc.ListUpdates(context.Background(), 10, other.ID, 20, 0); err == nil {
		t.Error("ListUpdates() leaked another client's project")
	}
}

func TestPortalRevoke(t *testing.T) {
	f := newPortalFixture()
	c := f.seedClient(1)
	p := f.seedLogin(c.ID, "meyer@example.com", "hunter2hunter2")

	if err := f.svc.Revoke(context.Background(), 2, c.ID, p.ID); err == nil {
		t.Error("Revoke() allowed foreign contractor")
	}

	if err := f.svc.Revoke(context.Background(), 1, c.ID, p.ID); err != nil {
		t.Fatalf("Revoke() error = %v", err)
	}
	if _, err := f.svc.Authenticate(context.Background(), "meyer@example.com", "hunter2hunter2"); err == nil {
		t.Error("revoked login still authenticates")
	}
}

func TestPortalListLogins(t *testing.T) {
	f := newPortalFixture()
	c := f.seedClient(1)
	f.seedLogin(c.ID, "one@example.com", "hunter2hunter2")
	f.seedLogin(c.ID, "two@example.com", "hunter2hunter2")
	f.seedLogin(99, "other@example.com", "hunter2hunter2")

	logins, err := f.svc.ListLogins(context.Background(), 1, c.ID)
	if err != nil {
		t.Fatalf("ListLogins() error = %v", err)
	}
	if len(logins) != 2 {
		t.Errorf("ListLogins() = %d logins, want 2", len(logins))
	}
}
