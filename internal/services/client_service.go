package services

import (
	"context"

	"github.com/hfletcher/jobsite/internal/domain/client"
	"github.com/hfletcher/jobsite/internal/pkg/logger"
)

// ClientService implements client.Service
type ClientService struct {
	repo   client.Repository
	logger *logger.Logger
}

// NewClientService creates a new client service
func NewClientService(repo client.Repository, log *logger.Logger) client.Service {
	return &ClientService{
		repo:   repo,
		logger: log,
	}
}

// Create creates a new client
func (s *ClientService) Create(ctx context.Context, c *client.Client) (int64, error) {
	id, err := s.repo.Create(ctx, c)
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to create client")
		return 0, err
	}

	s.logger.WithFields(map[string]interface{}{
		"client_id": id,
		"user_id":   c.UserID,
	}).Info("Client created")

	return id, nil
}

// GetByID retrieves a client by ID
func (s *ClientService) GetByID(ctx context.Context, userID, id int64) (*client.Client, error) {
	return s.repo.GetByID(ctx, userID, id)
}

// Update updates a client after verifying ownership
func (s *ClientService) Update(ctx context.Context, userID int64, c *client.Client) error {
	if _, err := s.repo.GetByID(ctx, userID, c.ID); err != nil {
		return err
	}
	c.UserID = userID
	return s.repo.Update(ctx, c)
}

// Delete deletes a client
func (s *ClientService) Delete(ctx context.Context, userID, id int64) error {
	return s.repo.Delete(ctx, userID, id)
}

// List retrieves clients with pagination
func (s *ClientService) List(ctx context.Context, userID int64, limit, offset int) ([]*client.Client, int64, error) {
	return s.repo.List(ctx, userID, limit, offset)
}
