package services

import (
	"context"
	"testing"

	"github.com/hfletcher/jobsite/internal/domain/client"
	"github.com/hfletcher/jobsite/internal/domain/project"
	"github.com/hfletcher/jobsite/internal/testutil"
)

func TestProjectCreate(t *testing.T) {
	repo := testutil.NewMockProjectRepository()
	clients := testutil.NewMockClientRepository()
	svc := NewProjectService(repo, clients, testLogger())
	ctx := context.Background()

	mine := &client.Client{UserID: 1, Name: "Meyer"}
	clients.Create(ctx, mine)
	foreign := &client.Client{UserID: 2, Name: "Other"}
	clients.Create(ctx, foreign)

	tests := []struct {
		name    string
		project *project.Project
		wantErr bool
	}{
		{
			name:    "valid project",
			project: &project.Project{UserID: 1, ClientID: mine.ID, Name: "Deck Build"},
		},
		{
			name:    "client of another contractor",
			project: &project.Project{UserID: 1, ClientID: foreign.ID, Name: "Deck Build"},
			wantErr: true,
		},
		{
			name:    "unknown client",
			project: &project.Project{UserID: 1, ClientID: 404, Name: "Deck Build"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := svc.Create(ctx, tt.project)
			if (err != nil) != tt.wantErr {
				t.Errorf("Create() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr {
				if id == 0 {
					t.Error("Create() did not return an id")
				}
				if tt.project.Status != project.StatusPlanning {
					t.Errorf("Status = %q, want default planning", tt.project.Status)
				}
			}
		})
	}
}

func TestProjectUpdateClientReassignment(t *testing.T) {
	repo := testutil.NewMockProjectRepository()
	clients := testutil.NewMockClientRepository()
	svc := NewProjectService(repo, clients, testLogger())
	ctx := context.Background()

	first := &client.Client{UserID: 1, Name: "Meyer"}
	clients.Create(ctx, first)
	second := &client.Client{UserID: 1, Name: "Berg"}
	clients.Create(ctx, second)
	foreign := &client.Client{UserID: 2, Name: "Other"}
	clients.Create(ctx, foreign)

	p := &project.Project{UserID: 1, ClientID: first.ID, Name: "Deck Build"}
	svc.Create(ctx, p)

	p.ClientID = second.ID
	if err := svc.Update(ctx, 1, p); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	p.ClientID = foreign.ID
	if err := svc.Update(ctx, 1, p); err == nil {
		t.Error("Update() allowed reassignment to a foreign client")
	}
}

func TestProjectTenantIsolation(t *testing.T) {
	repo := testutil.NewMockProjectRepository()
	clients := testutil.NewMockClientRepository()
	svc := NewProjectService(repo, clients, testLogger())
	ctx := context.Background()

	c := &client.Client{UserID: 1, Name: "Meyer"}
	clients.Create(ctx, c)
	p := &project.Project{UserID: 1, ClientID: c.ID, Name: "Deck Build"}
	id, _ := svc.Create(ctx, p)

	if _, err := svc.GetByID(ctx, 2, id); err == nil {
		t.Error("GetByID() leaked another contractor's project")
	}
	if err := svc.Delete(ctx, 2, id); err == nil {
		t.Error("Delete() allowed another contractor")
	}

	list, total, err := svc.List(ctx, 2, project.Filter{}, 20, 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 0 || len(list) != 0 {
		t.Errorf("List() for foreign contractor = %d items", len(list))
	}
}
