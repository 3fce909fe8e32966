package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/hfletcher/jobsite/internal/domain/client"
	"github.com/hfletcher/jobsite/internal/domain/portal"
	"github.com/hfletcher/jobsite/internal/domain/project"
	"github.com/hfletcher/jobsite/internal/domain/updaterequest"
	"github.com/hfletcher/jobsite/internal/domain/user"
	"github.com/hfletcher/jobsite/internal/testutil"
)

// seedTenant creates a contractor with a client, a project and a
// portal user, returning what request tests need
func seedTenant(t *testing.T, db *sql.DB, email string) (userID, projectID, portalUserID int64) {
	ctx := context.Background()

	u := &user.User{Email: email, PasswordHash: "hashed", PlanType: user.PlanTypeTrial}
	if err := NewUserRepository(db).Create(ctx, u); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	c := &client.Client{UserID: u.ID, Name: "Meyer"}
	clientID, err := NewClientRepository(db).Create(ctx, c)
	if err != nil {
		t.Fatalf("failed to seed client: %v", err)
	}

	p := &project.Project{UserID: u.ID, ClientID: clientID, Name: "Deck Build", Status: project.StatusActive}
	projectID, err = NewProjectRepository(db).Create(ctx, p)
	if err != nil {
		t.Fatalf("failed to seed project: %v", err)
	}

	pu := &portal.PortalUser{ClientID: clientID, Email: "portal-" + email, PasswordHash: "hashed"}
	portalUserID, err = NewPortalUserRepository(db).Create(ctx, pu)
	if err != nil {
		t.Fatalf("failed to seed portal user: %v", err)
	}

	return u.ID, projectID, portalUserID
}

func TestUpdateRequestRepository_CreateAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)

	_, projectID, portalUserID := seedTenant(t, db, "dan@example.com")
	repo := NewUpdateRequestRepository(db)
	ctx := context.Background()

	req := &updaterequest.Request{
		ProjectID:    projectID,
		PortalUserID: portalUserID,
		Question:     "Any news on the railing?",
	}
	id, err := repo.Create(ctx, req)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Status != updaterequest.StatusPending {
		t.Errorf("Status = %q, want pending", got.Status)
	}
	if got.Question != "Any news on the railing?" {
		t.Errorf("Question = %q", got.Question)
	}

	if _, err := repo.GetByID(ctx, 999); err == nil {
		t.Error("GetByID() expected error for unknown request")
	}
}

func TestUpdateRequestRepository_Update(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)

	_, projectID, portalUserID := seedTenant(t, db, "dan@example.com")
	repo := NewUpdateRequestRepository(db)
	ctx := context.Background()

	req := &updaterequest.Request{ProjectID: projectID, PortalUserID: portalUserID, Question: "Any news?"}
	id, _ := repo.Create(ctx, req)

	req.Status = updaterequest.StatusReviewed
	req.Reply = "Railing goes up Thursday."
	if err := repo.Update(ctx, req); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, _ := repo.GetByID(ctx, id)
	if got.Status != updaterequest.StatusReviewed || got.Reply != "Railing goes up Thursday." {
		t.Errorf("after update = %+v", got)
	}
}

func TestUpdateRequestRepository_ListForUser(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)

	userID, projectID, portalUserID := seedTenant(t, db, "dan@example.com")
	otherUserID, otherProjectID, otherPortalUserID := seedTenant(t, db, "sam@example.com")

	repo := NewUpdateRequestRepository(db)
	ctx := context.Background()

	first := &updaterequest.Request{ProjectID: projectID, PortalUserID: portalUserID, Question: "First"}
	repo.Create(ctx, first)
	second := &updaterequest.Request{ProjectID: projectID, PortalUserID: portalUserID, Question: "Second"}
	repo.Create(ctx, second)
	second.Status = updaterequest.StatusCompleted
	repo.Update(ctx, second)
	repo.Create(ctx, &updaterequest.Request{ProjectID: otherProjectID, PortalUserID: otherPortalUserID, Question: "Foreign"})

	all, total, err := repo.ListForUser(ctx, userID, "", 20, 0)
	if err != nil {
		t.Fatalf("ListForUser() error = %v", err)
	}
	if total != 2 || len(all) != 2 {
		t.Errorf("ListForUser() = %d items, total %d, want 2", len(all), total)
	}

	pending, total, err := repo.ListForUser(ctx, userID, updaterequest.StatusPending, 20, 0)
	if err != nil {
		t.Fatalf("ListForUser(pending) error = %v", err)
	}
	if total != 1 || len(pending) != 1 || pending[0].Question != "First" {
		t.Errorf("ListForUser(pending) = %+v, total %d", pending, total)
	}

	count, err := repo.CountPendingForUser(ctx, userID)
	if err != nil {
		t.Fatalf("CountPendingForUser() error = %v", err)
	}
	if count != 1 {
		t.Errorf("CountPendingForUser() = %d, want 1", count)
	}

	// The other tenant sees only its own request.
	foreign, total, err := repo.ListForUser(ctx, otherUserID, "", 20, 0)
	if err != nil {
		t.Fatalf("ListForUser() error = %v", err)
	}
	if total != 1 || len(foreign) != 1 || foreign[0].Question != "Foreign" {
		t.Errorf("foreign tenant sees %+v", foreign)
	}
}

func TestUpdateRequestRepository_ListByPortalUser(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)

	_, projectID, portalUserID := seedTenant(t, db, "dan@example.com")
	repo := NewUpdateRequestRepository(db)
	ctx := context.Background()

	repo.Create(ctx, &updaterequest.Request{ProjectID: projectID, PortalUserID: portalUserID, Question: "Mine"})

	got, err := repo.ListByPortalUser(ctx, portalUserID)
	if err != nil {
		t.Fatalf("ListByPortalUser() error = %v", err)
	}
	if len(got) != 1 || got[0].Question != "Mine" {
		t.Errorf("ListByPortalUser() = %+v", got)
	}

	empty, err := repo.ListByPortalUser(ctx, 999)
	if err != nil {
		t.Fatalf("ListByPortalUser() error = %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("ListByPortalUser(999) = %+v, want empty", empty)
	}
}
