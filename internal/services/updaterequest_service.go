package services

import (
	"context"
	"strings"

	"github.com/hfletcher/jobsite/internal/domain/project"
	"github.com/hfletcher/jobsite/internal/domain/updaterequest"
	"github.com/hfletcher/jobsite/internal/pkg/errors"
	"github.com/hfletcher/jobsite/internal/pkg/logger"
	"github.com/hfletcher/jobsite/internal/pkg/metrics"
)

// UpdateRequestService implements updaterequest.Service
type UpdateRequestService struct {
	repo     updaterequest.Repository
	projects project.Repository
	logger   *logger.Logger
}

// NewUpdateRequestService creates a new update request service
func NewUpdateRequestService(repo updaterequest.Repository, projects project.Repository, log *logger.Logger) updaterequest.Service {
	return &UpdateRequestService{
		repo:     repo,
		projects: projects,
		logger:   log,
	}
}

// Create files a new request against a project on behalf of a portal
// user. The project must belong to the portal user's client.
func (s *UpdateRequestService) Create(ctx context.Context, portalUserID, clientID, projectID int64, question string) (int64, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return 0, errors.BadRequest("Question is required")
	}

	owned, err := s.projects.ListByClient(ctx, clientID)
	if err != nil {
		return 0, err
	}
	found := false
	for _, p := range owned {
		if p.ID == projectID {
			found = true
			break
		}
	}
	if !found {
		return 0, errors.NotFound("Project")
	}

	req := &updaterequest.Request{
		ProjectID:    projectID,
		PortalUserID: portalUserID,
		Question:     question,
	}

	id, err := s.repo.Create(ctx, req)
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to create update request")
		return 0, err
	}

	s.logger.WithFields(map[string]interface{}{
		"request_id":     id,
		"project_id":     projectID,
		"portal_user_id": portalUserID,
	}).Info("Update request filed")

	return id, nil
}

// Get retrieves a request, verifying contractor ownership
func (s *UpdateRequestService) Get(ctx context.Context, userID, id int64) (*updaterequest.Request, error) {
	req, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.projects.GetByID(ctx, userID, req.ProjectID); err != nil {
		return nil, errors.NotFound("Update request")
	}
	return req, nil
}

// SetStatus moves a request to any known status. Transitions are
// unordered on purpose; a completed request can go back to pending.
func (s *UpdateRequestService) SetStatus(ctx context.Context, userID, id int64, status string) error {
	if !updaterequest.ValidStatus(status) {
		return errors.BadRequest("Unknown request status")
	}

	req, err := s.Get(ctx, userID, id)
	if err != nil {
		return err
	}

	req.Status = status
	if err := s.repo.Update(ctx, req); err != nil {
		return err
	}

	metrics.RecordUpdateRequestTransition(status)
	return nil
}

// SetReply sets the contractor's free-text reply, independent of status
func (s *UpdateRequestService) SetReply(ctx context.Context, userID, id int64, reply string) error {
	req, err := s.Get(ctx, userID, id)
	if err != nil {
		return err
	}

	req.Reply = reply
	return s.repo.Update(ctx, req)
}

// ListForUser retrieves requests across a contractor's projects
func (s *UpdateRequestService) ListForUser(ctx context.Context, userID int64, status string, limit, offset int) ([]*updaterequest.Request, int64, error) {
	if status != "" && !updaterequest.ValidStatus(status) {
		return nil, 0, errors.BadRequest("Unknown request status")
	}
	return s.repo.ListForUser(ctx, userID, status, limit, offset)
}

// ListByPortalUser retrieves requests created by one portal user
func (s *UpdateRequestService) ListByPortalUser(ctx context.Context, portalUserID int64) ([]*updaterequest.Request, error) {
	return s.repo.ListByPortalUser(ctx, portalUserID)
}
