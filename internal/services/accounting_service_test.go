package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"golang.org/x/oauth2"

	"github.com/hfletcher/jobsite/internal/accounting"
	acctdomain "github.com/hfletcher/jobsite/internal/domain/accounting"
	"github.com/hfletcher/jobsite/internal/domain/budget"
	"github.com/hfletcher/jobsite/internal/domain/client"
	"github.com/hfletcher/jobsite/internal/domain/project"
	"github.com/hfletcher/jobsite/internal/testutil"
)

// fakeExchanger is an in-memory OAuth endpoint for service tests
type fakeExchanger struct {
	exchangeTok *oauth2.Token
	exchangeErr error
	refreshTok  *oauth2.Token
	refreshErr  error

	refreshCalls     int
	lastRefreshToken string
}

func (f *fakeExchanger) AuthCodeURL(state string) string {
	return "https://accounting.example.com/authorize?state=" + state
}

func (f *fakeExchanger) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	if f.exchangeErr != nil {
		return nil, f.exchangeErr
	}
	return f.exchangeTok, nil
}

func (f *fakeExchanger) Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	f.refreshCalls++
	f.lastRefreshToken = refreshToken
	if f.refreshErr != nil {
		return nil, f.refreshErr
	}
	return f.refreshTok, nil
}

// fakeAccountingAPI records pushed records
type fakeAccountingAPI struct {
	customers []accounting.CustomerInput
	estimates []accounting.EstimateInput

	customerErr error
	estimateErr error
}

func (f *fakeAccountingAPI) CreateCustomer(ctx context.Context, in accounting.CustomerInput) (*accounting.CustomerRecord, error) {
	if f.customerErr != nil {
		return nil, f.customerErr
	}
	f.customers = append(f.customers, in)
	return &accounting.CustomerRecord{ID: fmt.Sprintf("QB-CUST-%d", len(f.customers))}, nil
}

func (f *fakeAccountingAPI) CreateEstimate(ctx context.Context, in accounting.EstimateInput) (*accounting.EstimateRecord, error) {
	if f.estimateErr != nil {
		return nil, f.estimateErr
	}
	f.estimates = append(f.estimates, in)
	return &accounting.EstimateRecord{ID: fmt.Sprintf("QB-EST-%d", len(f.estimates))}, nil
}

type accountingFixture struct {
	svc       *AccountingService
	conns     *testutil.MockAccountingRepository
	clients   *testutil.MockClientRepository
	projects  *testutil.MockProjectRepository
	budgets   *testutil.MockBudgetRepository
	exchanger *fakeExchanger
	api       *fakeAccountingAPI
}

func newAccountingFixture() *accountingFixture {
	f := &accountingFixture{
		conns:     testutil.NewMockAccountingRepository(),
		clients:   testutil.NewMockClientRepository(),
		projects:  testutil.NewMockProjectRepository(),
		budgets:   testutil.NewMockBudgetRepository(),
		exchanger: &fakeExchanger{},
		api:       &fakeAccountingAPI{},
	}
	f.svc = NewAccountingService(
		f.conns, f.clients, f.projects, f.budgets,
		f.exchanger, "https://accounting.example.com", testLogger(),
	)
	f.svc.newAPI = func(realmID, accessToken string) AccountingAPI {
		return f.api
	}
	return f
}

func (f *accountingFixture) connect(userID int64, expiresAt time.Time) {
	f.conns.Connections[userID] = &acctdomain.Connection{
		UserID:       userID,
		RealmID:      "realm-1",
		AccessToken:  "access-old",
		RefreshToken: "refresh-old",
		ExpiresAt:    expiresAt,
	}
}

func TestAccountingCompleteConnect(t *testing.T) {
	f := newAccountingFixture()
	f.exchanger.exchangeTok = &oauth2.Token{
		AccessToken:  "access-new",
		RefreshToken: "refresh-new",
		Expiry:       time.Now().Add(time.Hour),
	}

	if err := f.svc.CompleteConnect(context.Background(), 1, "auth-code", "realm-1"); err != nil {
		t.Fatalf("CompleteConnect() error = %v", err)
	}

	conn, ok := f.conns.Connections[1]
	if !ok {
		t.Fatal("connection not persisted")
	}
	if conn.AccessToken != "access-new" || conn.RefreshToken != "refresh-new" {
		t.Errorf("stored tokens = (%q, %q), want (access-new, refresh-new)", conn.AccessToken, conn.RefreshToken)
	}
	if conn.RealmID != "realm-1" {
		t.Errorf("RealmID = %q, want realm-1", conn.RealmID)
	}
}

func TestAccountingCompleteConnectMissingParams(t *testing.T) {
	f := newAccountingFixture()

	tests := []struct {
		name    string
		code    string
		realmID string
	}{
		{name: "missing code", code: "", realmID: "realm-1"},
		{name: "missing realm", code: "auth-code", realmID: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := f.svc.CompleteConnect(context.Background(), 1, tt.code, tt.realmID); err == nil {
				t.Error("CompleteConnect() expected error, got nil")
			}
		})
	}
}

func TestAccountingStatus(t *testing.T) {
	f := newAccountingFixture()

	status, err := f.svc.Status(context.Background(), 1)
	if err != nil {
		t.Fatalf("Status() disconnected error = %v", err)
	}
	if status.Connected {
		t.Error("Status() Connected = true for user without connection")
	}

	f.connect(1, time.Now().Add(time.Hour))
	status, err = f.svc.Status(context.Background(), 1)
	if err != nil {
		t.Fatalf("Status() connected error = %v", err)
	}
	if !status.Connected || status.RealmID != "realm-1" {
		t.Errorf("Status() = %+v, want connected to realm-1", status)
	}
}

func TestAccountingClientForValidToken(t *testing.T) {
	f := newAccountingFixture()
	f.connect(1, time.Now().Add(time.Hour))

	if _, err := f.svc.ClientFor(context.Background(), 1); err != nil {
		t.Fatalf("ClientFor() error = %v", err)
	}
	if f.exchanger.refreshCalls != 0 {
		t.Errorf("refresh called %d times for a live token, want 0", f.exchanger.refreshCalls)
	}
}

func TestAccountingClientForRefreshesExpired(t *testing.T) {
	f := newAccountingFixture()
	f.connect(1, time.Now().Add(-time.Minute))
	newExpiry := time.Now().Add(time.Hour)
	f.exchanger.refreshTok = &oauth2.Token{
		AccessToken:  "access-new",
		RefreshToken: "refresh-new",
		Expiry:       newExpiry,
	}

	if _, err := f.svc.ClientFor(context.Background(), 1); err != nil {
		t.Fatalf("ClientFor() error = %v", err)
	}

	if f.exchanger.refreshCalls != 1 {
		t.Errorf("refresh called %d times, want 1", f.exchanger.refreshCalls)
	}
	if f.exchanger.lastRefreshToken != "refresh-old" {
		t.Errorf("refresh used token %q, want refresh-old", f.exchanger.lastRefreshToken)
	}

	conn := f.conns.Connections[1]
	if conn.AccessToken != "access-new" || conn.RefreshToken != "refresh-new" {
		t.Errorf("persisted tokens = (%q, %q), want rotated pair", conn.AccessToken, conn.RefreshToken)
	}
	if !conn.ExpiresAt.Equal(newExpiry) {
		t.Errorf("persisted expiry = %v, want %v", conn.ExpiresAt, newExpiry)
	}
}

func TestAccountingClientForKeepsRefreshTokenWhenOmitted(t *testing.T) {
	f := newAccountingFixture()
	f.connect(1, time.Now().Add(-time.Minute))
	// Some providers omit the refresh token on rotation; the stored
	// one must survive.
	f.exchanger.refreshTok = &oauth2.Token{
		AccessToken: "access-new",
		Expiry:      time.Now().Add(time.Hour),
	}

	if _, err := f.svc.ClientFor(context.Background(), 1); err != nil {
		t.Fatalf("ClientFor() error = %v", err)
	}

	conn := f.conns.Connections[1]
	if conn.RefreshToken != "refresh-old" {
		t.Errorf("RefreshToken = %q, want refresh-old preserved", conn.RefreshToken)
	}
	if conn.AccessToken != "access-new" {
		t.Errorf("AccessToken = %q, want access-new", conn.AccessToken)
	}
}

func TestAccountingClientForRefreshFailureDisconnects(t *testing.T) {
	f := newAccountingFixture()
	f.connect(1, time.Now().Add(-time.Minute))
	f.exchanger.refreshErr = fmt.Errorf("invalid_grant")

	_, err := f.svc.ClientFor(context.Background(), 1)
	if err == nil {
		t.Fatal("ClientFor() expected error after refresh failure")
	}
	if f.exchanger.refreshCalls != 1 {
		t.Errorf("refresh called %d times, want exactly 1", f.exchanger.refreshCalls)
	}
	if _, ok := f.conns.Connections[1]; ok {
		t.Error("connection not dropped after refresh failure")
	}

	// The user is now disconnected; later calls fail without another
	// refresh attempt.
	if _, err := f.svc.ClientFor(context.Background(), 1); err == nil {
		t.Fatal("ClientFor() expected error for disconnected user")
	}
	if f.exchanger.refreshCalls != 1 {
		t.Errorf("refresh retried after disconnect: %d calls", f.exchanger.refreshCalls)
	}
}

func TestAccountingSyncCustomer(t *testing.T) {
	f := newAccountingFixture()
	f.connect(1, time.Now().Add(time.Hour))
	c := &client.Client{UserID: 1, Name: "Meyer Kitchen", Email: "meyer@example.com"}
	f.clients.Create(context.Background(), c)

	externalID, err := f.svc.SyncCustomer(context.Background(), 1, c.ID)
	if err != nil {
		t.Fatalf("SyncCustomer() error = %v", err)
	}
	if externalID != "QB-CUST-1" {
		t.Errorf("externalID = %q, want QB-CUST-1", externalID)
	}
	if got := f.clients.AccountingIDs[c.ID]; got != "QB-CUST-1" {
		t.Errorf("stored accounting id = %q, want QB-CUST-1", got)
	}
	if len(f.api.customers) != 1 || f.api.customers[0].DisplayName != "Meyer Kitchen" {
		t.Errorf("pushed customers = %+v", f.api.customers)
	}
}

func TestAccountingSyncEstimate(t *testing.T) {
	f := newAccountingFixture()
	f.connect(1, time.Now().Add(time.Hour))

	c := &client.Client{UserID: 1, Name: "Meyer Kitchen"}
	f.clients.Create(context.Background(), c)
	p := &project.Project{UserID: 1, ClientID: c.ID, Name: "Kitchen Remodel", Status: project.StatusActive}
	f.projects.Create(context.Background(), p)
	f.budgets.Create(context.Background(), &budget.Item{
		ProjectID: p.ID, Category: budget.CategoryLabor, Description: "Demo crew", EstimatedCents: 250000,
	})
	f.budgets.Create(context.Background(), &budget.Item{
		ProjectID: p.ID, Category: budget.CategoryMaterials, EstimatedCents: 120050,
	})

	estimateID, err := f.svc.SyncEstimate(context.Background(), 1, p.ID)
	if err != nil {
		t.Fatalf("SyncEstimate() error = %v", err)
	}
	if estimateID != "QB-EST-1" {
		t.Errorf("estimateID = %q, want QB-EST-1", estimateID)
	}

	// The client had never been pushed, so the estimate sync pushes
	// it first.
	if len(f.api.customers) != 1 {
		t.Fatalf("customers pushed = %d, want 1", len(f.api.customers))
	}

	if len(f.api.estimates) != 1 {
		t.Fatalf("estimates pushed = %d, want 1", len(f.api.estimates))
	}
	est := f.api.estimates[0]
	if est.CustomerID != "QB-CUST-1" {
		t.Errorf("estimate customer = %q, want QB-CUST-1", est.CustomerID)
	}
	if len(est.Lines) != 2 {
		t.Fatalf("estimate lines = %d, want 2", len(est.Lines))
	}
	if est.Lines[0].Description != "labor: Demo crew" {
		t.Errorf("line description = %q", est.Lines[0].Description)
	}
	if est.Lines[0].Amount != 2500 {
		t.Errorf("line amount = %v, want 2500", est.Lines[0].Amount)
	}
	if est.Lines[1].Amount != 1200.50 {
		t.Errorf("line amount = %v, want 1200.50", est.Lines[1].Amount)
	}

	if p.AccountingEstimateID != "QB-EST-1" {
		t.Errorf("AccountingEstimateID = %q, want QB-EST-1", p.AccountingEstimateID)
	}
}

func TestAccountingSyncEstimateEmptyBudget(t *testing.T) {
	f := newAccountingFixture()
	f.connect(1, time.Now().Add(time.Hour))

	c := &client.Client{UserID: 1, Name: "Meyer Kitchen"}
	f.clients.Create(context.Background(), c)
	f.clients.SetAccountingID(context.Background(), c.ID, "QB-CUST-9")
	p := &project.Project{UserID: 1, ClientID: c.ID, Name: "Fence Repair", Status: project.StatusPlanning}
	f.projects.Create(context.Background(), p)

	if _, err := f.svc.SyncEstimate(context.Background(), 1, p.ID); err != nil {
		t.Fatalf("SyncEstimate() error = %v", err)
	}

	if len(f.api.customers) != 0 {
		t.Errorf("customer re-pushed for already linked client")
	}
	est := f.api.estimates[0]
	if len(est.Lines) != 1 || est.Lines[0].Description != "Fence Repair" || est.Lines[0].Amount != 0 {
		t.Errorf("placeholder line = %+v", est.Lines)
	}
}

func TestAccountingDisconnectIdempotent(t *testing.T) {
	f := newAccountingFixture()
	f.connect(1, time.Now().Add(time.Hour))

	if err := f.svc.Disconnect(context.Background(), 1); err != nil {
		t.Fatalf("Disconnect() error = %v", err)
	}
	if err := f.svc.Disconnect(context.Background(), 1); err != nil {
		t.Errorf("Disconnect() second call error = %v", err)
	}
}
