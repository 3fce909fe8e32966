package services

import (
	"context"
	"testing"

	"github.com/hfletcher/jobsite/internal/domain/project"
	"github.com/hfletcher/jobsite/internal/domain/updaterequest"
	"github.com/hfletcher/jobsite/internal/testutil"
)

type requestFixture struct {
	svc      updaterequest.Service
	repo     *testutil.MockUpdateRequestRepository
	projects *testutil.MockProjectRepository
}

func newRequestFixture() *requestFixture {
	f := &requestFixture{
		repo:     testutil.NewMockUpdateRequestRepository(),
		projects: testutil.NewMockProjectRepository(),
	}
	f.svc = NewUpdateRequestService(f.repo, f.projects, testLogger())
	return f
}

// seedProject creates a project owned by contractor 1 for client 10
func (f *requestFixture) seedProject() *project.Project {
	p := &project.Project{UserID: 1, ClientID: 10, Name: "Deck Build", Status: project.StatusActive}
	f.projects.Create(context.Background(), p)
	f.repo.ProjectOwner[p.ID] = p.UserID
	return p
}

func TestUpdateRequestCreate(t *testing.T) {
	f := newRequestFixture()
	p := f.seedProject()

	id, err := f.svc.Create(context.Background(), 5, 10, p.ID, "  When will the railing go up?  ")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	req := f.repo.Requests[id]
	if req == nil {
		t.Fatal("request not stored")
	}
	if req.Status != updaterequest.StatusPending {
		t.Errorf("Status = %q, want pending", req.Status)
	}
	if req.Question != "When will the railing go up?" {
		t.Errorf("Question = %q, want trimmed", req.Question)
	}
	if req.PortalUserID != 5 {
		t.Errorf("PortalUserID = %d, want 5", req.PortalUserID)
	}
}

func TestUpdateRequestCreateValidation(t *testing.T) {
	f := newRequestFixture()
	p := f.seedProject()

	tests := []struct {
		name      string
		clientID  int64
		projectID int64
		question  string
	}{
		{name: "empty question", clientID: 10, projectID: p.ID, question: "   "},
		{name: "project of another client", clientID: 99, projectID: p.ID, question: "Any news?"},
		{name: "unknown project", clientID: 10, projectID: 404, question: "Any news?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.svc.Create(context.Background(), 5, tt.clientID, tt.projectID, tt.question); err == nil {
				t.Error("Create() expected error, got nil")
			}
		})
	}
}

func TestUpdateRequestSetStatus(t *testing.T) {
	f := newRequestFixture()
	p := f.seedProject()
	id, _ := f.svc.Create(context.Background(), 5, 10, p.ID, "Any news?")

	// Transitions are unordered: completed can go back to pending.
	sequence := []string{
		updaterequest.StatusReviewed,
		updaterequest.StatusCompleted,
		updaterequest.StatusPending,
		updaterequest.StatusCompleted,
	}
	for _, status := range sequence {
		if err := f.svc.SetStatus(context.Background(), 1, id, status); err != nil {
			t.Fatalf("SetStatus(%q) error = %v", status, err)
		}
		if got := f.repo.Requests[id].Status; got != status {
			t.Errorf("Status = %q, want %q", got, status)
		}
	}

	if err := f.svc.SetStatus(context.Background(), 1, id, "escalated"); err == nil {
		t.Error("SetStatus() accepted unknown status")
	}
}

func TestUpdateRequestSetStatusOwnership(t *testing.T) {
	f := newRequestFixture()
	p := f.seedProject()
	id, _ := f.svc.Create(context.Background(), 5, 10, p.ID, "Any news?")

	// Contractor 2 does not own the project behind the request.
	if err := f.svc.SetStatus(context.Background(), 2, id, updaterequest.StatusReviewed); err == nil {
		t.Error("SetStatus() allowed foreign contractor")
	}
	if _, err := f.svc.Get(context.Background(), 2, id); err == nil {
		t.Error("Get() allowed foreign contractor")
	}
}

func TestUpdateRequestSetReply(t *testing.T) {
	f := newRequestFixture()
	p := f.seedProject()
	id, _ := f.svc.Create(context.Background(), 5, 10, p.ID, "Any news?")

	// The reply is independent of status: it can be set while the
	// request is still pending.
	if err := f.svc.SetReply(context.Background(), 1, id, "Railing goes up Thursday."); err != nil {
		t.Fatalf("SetReply() error = %v", err)
	}

	req := f.repo.Requests[id]
	if req.Reply != "Railing goes up Thursday." {
		t.Errorf("Reply = %q", req.Reply)
	}
	if req.Status != updaterequest.StatusPending {
		t.Errorf("Status changed by SetReply: %q", req.Status)
	}
}

func TestUpdateRequestListForUser(t *testing.T) {
	f := newRequestFixture()
	p := f.seedProject()
	f.svc.Create(context.Background(), 5, 10, p.ID, "First question")
	id2, _ := f.svc.Create(context.Background(), 5, 10, p.ID, "Second question")
	f.svc.SetStatus(context.Background(), 1, id2, updaterequest.StatusCompleted)

	all, total, err := f.svc.ListForUser(context.Background(), 1, "", 20, 0)
	if err != nil {
		t.Fatalf("ListForUser() error = %v", err)
	}
	if total != 2 || len(all) != 2 {
		t.Errorf("ListForUser() = %d items, total %d, want 2", len(all), total)
	}

	pending, total, err := f.svc.ListForUser(context.Background(), 1, updaterequest.StatusPending, 20, 0)
	if err != nil {
		t.Fatalf("ListForUser(pending) error = %v", err)
	}
	if total != 1 || len(pending) != 1 {
		t.Errorf("ListForUser(pending) = %d items, total %d, want 1", len(pending), total)
	}

	if _, _, err := f.svc.ListForUser(context.Background(), 1, "escalated", 20, 0); err == nil {
		t.Error("ListForUser() accepted unknown status filter")
	}
}

func TestUpdateRequestListByPortalUser(t *testing.T) {
	f := newRequestFixture()
	p := f.seedProject()
	f.svc.Create(context.Background(), 5, 10, p.ID, "From portal user five")
	f.svc.Create(context.Background(), 6, 10, p.ID, "From portal user six")

	mine, err := f.svc.ListByPortalUser(context.Background(), 5)
	if err != nil {
		t.Fatalf("ListByPortalUser() error = %v", err)
	}
	if len(mine) != 1 || mine[0].Question != "From portal user five" {
		t.Errorf("ListByPortalUser() = %+v, want only own requests", mine)
	}
}
