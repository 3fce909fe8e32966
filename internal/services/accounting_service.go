package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2"

	"github.com/hfletcher/jobsite/internal/accounting"
	acctdomain "github.com/hfletcher/jobsite/internal/domain/accounting"
	"github.com/hfletcher/jobsite/internal/domain/budget"
	"github.com/hfletcher/jobsite/internal/domain/client"
	"github.com/hfletcher/jobsite/internal/domain/project"
	"github.com/hfletcher/jobsite/internal/pkg/errors"
	"github.com/hfletcher/jobsite/internal/pkg/logger"
	"github.com/hfletcher/jobsite/internal/pkg/metrics"
)

// TokenExchanger is the OAuth surface the accounting service depends
// on. Satisfied by accounting.OAuthConfig.
type TokenExchanger interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error)
}

// AccountingAPI is the platform surface used for one-way pushes.
// Satisfied by *accounting.Client.
type AccountingAPI interface {
	CreateCustomer(ctx context.Context, in accounting.CustomerInput) (*accounting.CustomerRecord, error)
	CreateEstimate(ctx context.Context, in accounting.EstimateInput) (*accounting.EstimateRecord, error)
}

// ConnectionStatus is the contractor-facing view of the accounting link
type ConnectionStatus struct {
	Connected bool      `json:"connected"`
	RealmID   string    `json:"realm_id,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// AccountingService owns the OAuth token lifecycle for the accounting
// platform and the one-way record pushes built on top of it.
type AccountingService struct {
	conns    acctdomain.Repository
	clients  client.Repository
	projects project.Repository
	budgets  budget.Repository
	oauth    TokenExchanger
	apiURL   string
	// newAPI builds a short-lived API client from live credentials.
	// Replaceable in tests.
	newAPI func(realmID, accessToken string) AccountingAPI
	logger *logger.Logger
}

// NewAccountingService creates a new accounting service
func NewAccountingService(
	conns acctdomain.Repository,
	clients client.Repository,
	projects project.Repository,
	budgets budget.Repository,
	oauth TokenExchanger,
	apiURL string,
	log *logger.Logger,
) *AccountingService {
	s := &AccountingService{
		conns:    conns,
		clients:  clients,
		projects: projects,
		budgets:  budgets,
		oauth:    oauth,
		apiURL:   apiURL,
		logger:   log,
	}
	s.newAPI = func(realmID, accessToken string) AccountingAPI {
		return accounting.NewClient(apiURL, realmID, accessToken)
	}
	return s
}

// ConnectURL returns the consent URL to start the OAuth flow
func (s *AccountingService) ConnectURL(state string) string {
	return s.oauth.AuthCodeURL(state)
}

// CompleteConnect exchanges the authorization code and persists the
// connection for the user
func (s *AccountingService) CompleteConnect(ctx context.Context, userID int64, code, realmID string) error {
	if code == "" || realmID == "" {
		return errors.BadRequest("Missing authorization code or realm id")
	}

	tok, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		s.logger.ErrorWithErr(err, "OAuth code exchange failed")
		return errors.AccountingError("Could not complete accounting connection", err)
	}

	conn := &acctdomain.Connection{
		UserID:       userID,
		RealmID:      realmID,
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiresAt:    tok.Expiry,
	}
	if err := s.conns.Save(ctx, conn); err != nil {
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id":  userID,
		"realm_id": realmID,
	}).Info("Accounting platform connected")
	return nil
}

// Disconnect drops the stored connection. Idempotent.
func (s *AccountingService) Disconnect(ctx context.Context, userID int64) error {
	return s.conns.Delete(ctx, userID)
}

// Status reports the connection state for a user
func (s *AccountingService) Status(ctx context.Context, userID int64) (ConnectionStatus, error) {
	conn, err := s.conns.Get(ctx, userID)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok && appErr.Code == errors.ErrCodeNotFound {
			return ConnectionStatus{Connected: false}, nil
		}
		return ConnectionStatus{}, err
	}
	return ConnectionStatus{
		Connected: true,
		RealmID:   conn.RealmID,
		ExpiresAt: conn.ExpiresAt,
	}, nil
}

// ClientFor returns a live API client for the user, refreshing the
// token pair first if it has expired. A refresh is attempted at most
// once; if it fails the connection is dropped and the user must
// re-authorize. Credentials are only persisted as a complete pair.
func (s *AccountingService) ClientFor(ctx context.Context, userID int64) (AccountingAPI, error) {
	conn, err := s.conns.Get(ctx, userID)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok && appErr.Code == errors.ErrCodeNotFound {
			return nil, errors.NotConnected()
		}
		return nil, err
	}

	if !conn.Expired(time.Now()) {
		return s.newAPI(conn.RealmID, conn.AccessToken), nil
	}

	tok, err := s.oauth.Refresh(ctx, conn.RefreshToken)
	if err != nil {
		metrics.RecordAccountingRefresh("failure")
		s.logger.WithFields(map[string]interface{}{
			"user_id": userID,
		}).WithError(err).Warn("Token refresh failed, disconnecting")

		if delErr := s.conns.Delete(ctx, userID); delErr != nil {
			return nil, delErr
		}
		return nil, errors.NotConnected()
	}
	metrics.RecordAccountingRefresh("success")

	conn.AccessToken = tok.AccessToken
	if tok.RefreshToken != "" {
		conn.RefreshToken = tok.RefreshToken
	}
	conn.ExpiresAt = tok.Expiry
	if err := s.conns.Save(ctx, conn); err != nil {
		return nil, err
	}

	return s.newAPI(conn.RealmID, conn.AccessToken), nil
}

// SyncCustomer pushes a client record to the accounting platform and
// stores the returned external id. One-way: a retry after a half
// failure can create a duplicate record on the platform side.
func (s *AccountingService) SyncCustomer(ctx context.Context, userID, clientID int64) (string, error) {
	c, err := s.clients.GetByID(ctx, userID, clientID)
	if err != nil {
		return "", err
	}

	api, err := s.ClientFor(ctx, userID)
	if err != nil {
		return "", err
	}

	rec, err := api.CreateCustomer(ctx, accounting.CustomerInput{
		DisplayName: c.Name,
		Email:       c.Email,
	})
	if err != nil {
		metrics.RecordAccountingSync("customer", "failure")
		return "", errors.AccountingError("Could not push customer", err)
	}

	if err := s.clients.SetAccountingID(ctx, clientID, rec.ID); err != nil {
		return "", err
	}

	metrics.RecordAccountingSync("customer", "success")
	s.logger.WithFields(map[string]interface{}{
		"user_id":     userID,
		"client_id":   clientID,
		"external_id": rec.ID,
	}).Info("Client pushed to accounting platform")
	return rec.ID, nil
}

// SyncEstimate pushes a project as an estimate referencing the
// client's accounting record, syncing the client first if it was
// never pushed. Estimate lines come from the project's budget items.
func (s *AccountingService) SyncEstimate(ctx context.Context, userID, projectID int64) (string, error) {
	p, err := s.projects.GetByID(ctx, userID, projectID)
	if err != nil {
		return "", err
	}

	externalID, err := s.clients.GetAccountingID(ctx, p.ClientID)
	if err != nil {
		return "", err
	}
	if externalID == "" {
		externalID, err = s.SyncCustomer(ctx, userID, p.ClientID)
		if err != nil {
			return "", err
		}
	}

	api, err := s.ClientFor(ctx, userID)
	if err != nil {
		return "", err
	}

	items, err := s.budgets.ListByProject(ctx, projectID)
	if err != nil {
		return "", err
	}
	lines := make([]accounting.EstimateLine, 0, len(items))
	for _, item := range items {
		desc := item.Category
		if item.Description != "" {
			desc = fmt.Sprintf("%s: %s", item.Category, item.Description)
		}
		lines = append(lines, accounting.EstimateLine{
			Description: desc,
			Amount:      float64(item.EstimatedCents) / 100,
		})
	}
	if len(lines) == 0 {
		lines = append(lines, accounting.EstimateLine{Description: p.Name, Amount: 0})
	}

	rec, err := api.CreateEstimate(ctx, accounting.EstimateInput{
		CustomerID: externalID,
		Memo:       fmt.Sprintf("Project: %s", p.Name),
		Lines:      lines,
	})
	if err != nil {
		metrics.RecordAccountingSync("estimate", "failure")
		return "", errors.AccountingError("Could not push estimate", err)
	}

	if err := s.projects.SetAccountingEstimateID(ctx, projectID, rec.ID); err != nil {
		return "", err
	}

	metrics.RecordAccountingSync("estimate", "success")
	s.logger.WithFields(map[string]interface{}{
		"user_id":     userID,
		"project_id":  projectID,
		"estimate_id": rec.ID,
	}).Info("Project pushed as estimate")
	return rec.ID, nil
}
