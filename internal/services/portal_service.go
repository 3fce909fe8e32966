package services

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/hfletcher/jobsite/internal/domain/client"
	"github.com/hfletcher/jobsite/internal/domain/portal"
	"github.com/hfletcher/jobsite/internal/domain/project"
	"github.com/hfletcher/jobsite/internal/domain/update"
	"github.com/hfletcher/jobsite/internal/pkg/errors"
	"github.com/hfletcher/jobsite/internal/pkg/logger"
	"github.com/hfletcher/jobsite/internal/pkg/metrics"
)

// PortalService owns the client portal: end-client logins and the
// read-only project views scoped to one client.
type PortalService struct {
	users    portal.Repository
	clients  client.Repository
	projects project.Repository
	updates  update.Repository
	logger   *logger.Logger
}

// NewPortalService creates a new portal service
func NewPortalService(
	users portal.Repository,
	clients client.Repository,
	projects project.Repository,
	updates update.Repository,
	log *logger.Logger,
) *PortalService {
	return &PortalService{
		users:    users,
		clients:  clients,
		projects: projects,
		updates:  updates,
		logger:   log,
	}
}

// Invite creates a portal login for one of the contractor's clients
func (s *PortalService) Invite(ctx context.Context, userID, clientID int64, email, name, password string) (*portal.PortalUser, error) {
	if _, err := s.clients.GetByID(ctx, userID, clientID); err != nil {
		return nil, err
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, errors.BadRequest("Email is required")
	}
	if len(password) < 8 {
		return nil, errors.BadRequest("Password must be at least 8 characters")
	}

	if existing, err := s.users.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, errors.Conflict("A portal login with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Internal("Failed to hash password", err)
	}

	p := &portal.PortalUser{
		ClientID:     clientID,
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
	}
	if _, err := s.users.Create(ctx, p); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"portal_user_id": p.ID,
		"client_id":      clientID,
	}).Info("Portal login created")
	return p, nil
}

// Authenticate verifies portal credentials and records the login
func (s *PortalService) Authenticate(ctx context.Context, email, password string) (*portal.PortalUser, error) {
	p, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		metrics.RecordPortalLogin("failure")
		return nil, errors.Unauthorized("Invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)); err != nil {
		metrics.RecordPortalLogin("failure")
		return nil, errors.Unauthorized("Invalid email or password")
	}

	if err := s.users.SetLastLogin(ctx, p.ID, time.Now()); err != nil {
		// Login still succeeds; the timestamp is best effort.
		s.logger.ErrorWithErr(err, "Failed to record portal login")
	}

	metrics.RecordPortalLogin("success")
	return p, nil
}

// GetUser retrieves a portal user by ID
func (s *PortalService) GetUser(ctx context.Context, id int64) (*portal.PortalUser, error) {
	return s.users.GetByID(ctx, id)
}

// ListLogins retrieves the portal logins of one of the contractor's clients
func (s *PortalService) ListLogins(ctx context.Context, userID, clientID int64) ([]*portal.PortalUser, error) {
	if _, err := s.clients.GetByID(ctx, userID, clientID); err != nil {
		return nil, err
	}
	return s.users.ListByClient(ctx, clientID)
}

// Revoke deletes a portal login
func (s *PortalService) Revoke(ctx context.Context, userID, clientID, portalUserID int64) error {
	if _, err := s.clients.GetByID(ctx, userID, clientID); err != nil {
		return err
	}
	return s.users.Delete(ctx, clientID, portalUserID)
}

// ListProjects retrieves the projects visible to one client
func (s *PortalService) ListProjects(ctx context.Context, clientID int64) ([]*project.Project, error) {
	return s.projects.ListByClient(ctx, clientID)
}

// ListUpdates retrieves updates for a project the client owns. The
// project is resolved through the client id from the portal token, so
// a portal user can never read another client's project.
func (s *PortalService) ListUpdates(ctx context.Context, clientID, projectID int64, limit, offset int) ([]*update.Update, int64, error) {
	owned, err := s.projects.ListByClient(ctx, clientID)
	if err != nil {
		return nil, 0, err
	}
	found := false
	for _, p := range owned {
		if p.ID == projectID {
			found = true
			break
		}
	}
	if !found {
		return nil, 0, errors.NotFound("Project")
	}

	return s.updates.ListByProject(ctx, projectID, limit, offset)
}
