package services

import (
	"context"
	"testing"

	"github.com/hfletcher/jobsite/internal/domain/project"
	"github.com/hfletcher/jobsite/internal/domain/update"
	"github.com/hfletcher/jobsite/internal/testutil"
)

func TestUpdateCreate(t *testing.T) {
	repo := testutil.NewMockUpdateRepository()
	projects := testutil.NewMockProjectRepository()
	svc := NewUpdateService(repo, projects, testLogger())
	ctx := context.Background()

	p := &project.Project{UserID: 1, ClientID: 10, Name: "Deck Build"}
	projects.Create(ctx, p)

	u := &update.Update{
		ProjectID: p.ID,
		Title:     "Framing done",
		Body:      "All posts set, framing complete.",
		Photos: []update.Photo{
			{URL: "https://cdn.example.com/framing.jpg", Caption: "North side"},
		},
	}
	id, err := svc.Create(ctx, 1, u)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if id == 0 {
		t.Error("Create() did not return an id")
	}
	if u.Photos[0].ID == "" {
		t.Error("photo id not assigned")
	}
}

func TestUpdateCreateValidation(t *testing.T) {
	repo := testutil.NewMockUpdateRepository()
	projects := testutil.NewMockProjectRepository()
	svc := NewUpdateService(repo, projects, testLogger())
	ctx := context.Background()

	p := &project.Project{UserID: 1, ClientID: 10, Name: "Deck Build"}
	projects.Create(ctx, p)

	tests := []struct {
		name   string
		userID int64
		update *update.Update
	}{
		{name: "missing title", userID: 1, update: &update.Update{ProjectID: p.ID}},
		{name: "foreign project", userID: 2, update: &update.Update{ProjectID: p.ID, Title: "Framing done"}},
		{name: "unknown project", userID: 1, update: &update.Update{ProjectID: 404, Title: "Framing done"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, tt.userID, tt.update); err == nil {
				t.Error("Create() expected error, got nil")
			}
		})
	}
}

func TestUpdateAddPhoto(t *testing.T) {
	repo := testutil.NewMockUpdateRepository()
	projects := testutil.NewMockProjectRepository()
	svc := NewUpdateService(repo, projects, testLogger())
	ctx := context.Background()

	p := &project.Project{UserID: 1, ClientID: 10, Name: "Deck Build"}
	projects.Create(ctx, p)
	u := &update.Update{ProjectID: p.ID, Title: "Framing done"}
	id, _ := svc.Create(ctx, 1, u)

	photo, err := svc.AddPhoto(ctx, 1, p.ID, id, "https://cdn.example.com/rail.jpg", "Railing stock")
	if err != nil {
		t.Fatalf("AddPhoto() error = %v", err)
	}
	if photo.ID == "" || photo.UpdateID != id {
		t.Errorf("AddPhoto() = %+v", photo)
	}

	if _, err := svc.AddPhoto(ctx, 1, p.ID, id, "", ""); err == nil {
		t.Error("AddPhoto() accepted empty URL")
	}
	if _, err := svc.AddPhoto(ctx, 2, p.ID, id, "https://cdn.example.com/x.jpg", ""); err == nil {
		t.Error("AddPhoto() allowed foreign contractor")
	}
}
