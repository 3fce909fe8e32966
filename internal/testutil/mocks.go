package testutil

import (
	"context"
	"sort"
	"time"

	"github.com/hfletcher/jobsite/internal/domain/accounting"
	"github.com/hfletcher/jobsite/internal/domain/budget"
	"github.com/hfletcher/jobsite/internal/domain/client"
	"github.com/hfletcher/jobsite/internal/domain/portal"
	"github.com/hfletcher/jobsite/internal/domain/project"
	"github.com/hfletcher/jobsite/internal/domain/task"
	"github.com/hfletcher/jobsite/internal/domain/update"
	"github.com/hfletcher/jobsite/internal/domain/updaterequest"
	"github.com/hfletcher/jobsite/internal/domain/user"
	"github.com/hfletcher/jobsite/internal/pkg/errors"
)

// MockUserRepository is a mock implementation of user.Repository
type MockUserRepository struct {
	Users         map[int64]*user.User
	EmailIndex    map[string]*user.User
	CustomerIndex map[string]*user.User
	NextID        int64
	CreateError   error
	GetError      error
	UpdateError   error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:         make(map[int64]*user.User),
		EmailIndex:    make(map[string]*user.User),
		CustomerIndex: make(map[string]*user.User),
		NextID:        1,
	}
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	u.ID = m.NextID
	m.NextID++
	m.Users[u.ID] = u
	m.EmailIndex[u.Email] = u
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	u, ok := m.Users[id]
	if !ok {
		return nil, errors.NotFound("User")
	}
	return u, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	u, ok := m.EmailIndex[email]
	if !ok {
		return nil, errors.NotFound("User")
	}
	return u, nil
}

func (m *MockUserRepository) GetByProcessorCustomer(ctx context.Context, customerID string) (*user.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	u, ok := m.CustomerIndex[customerID]
	if !ok {
		return nil, errors.NotFound("User")
	}
	return u, nil
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	if _, ok := m.Users[u.ID]; !ok {
		return errors.NotFound("User")
	}
	m.Users[u.ID] = u
	m.EmailIndex[u.Email] = u
	return nil
}

func (m *MockUserRepository) SaveProcessorRefs(ctx context.Context, userID int64, customerID, subscriptionID string) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	u, ok := m.Users[userID]
	if !ok {
		return errors.NotFound("User")
	}
	u.ProcessorCustomerID = customerID
	u.ProcessorSubscriptionID = subscriptionID
	if customerID != "" {
		m.CustomerIndex[customerID] = u
	}
	return nil
}

func (m *MockUserRepository) SetSubscriptionState(ctx context.Context, userID int64, active, setupPaid bool) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	u, ok := m.Users[userID]
	if !ok {
		return errors.NotFound("User")
	}
	u.SubscriptionActive = active
	u.SetupPaid = setupPaid
	return nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) error {
	if u, ok := m.Users[id]; ok {
		delete(m.EmailIndex, u.Email)
		delete(m.Users, id)
	}
	return nil
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]*user.User, int64, error) {
	var result []*user.User
	for _, u := range m.Users {
		result = append(result, u)
	}
	return result, int64(len(result)), nil
}

func (m *MockUserRepository) ListOnTrial(ctx context.Context) ([]*user.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	var result []*user.User
	for _, u := range m.Users {
		if !u.SubscriptionActive {
			result = append(result, u)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// MockClientRepository is a mock implementation of client.Repository
type MockClientRepository struct {
	Clients       map[int64]*client.Client
	AccountingIDs map[int64]string
	NextID        int64
	CreateError   error
	GetError      error
	UpdateError   error
}

func NewMockClientRepository() *MockClientRepository {
	return &MockClientRepository{
		Clients:       make(map[int64]*client.Client),
		AccountingIDs: make(map[int64]string),
		NextID:        1,
	}
}

func (m *MockClientRepository) Create(ctx context.Context, c *client.Client) (int64, error) {
	if m.CreateError != nil {
		return 0, m.CreateError
	}
	c.ID = m.NextID
	m.NextID++
	m.Clients[c.ID] = c
	return c.ID, nil
}

func (m *MockClientRepository) GetByID(ctx context.Context, userID, id int64) (*client.Client, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	c, ok := m.Clients[id]
	if !ok || c.UserID != userID {
		return nil, errors.NotFound("Client")
	}
	return c, nil
}

func (m *MockClientRepository) Update(ctx context.Context, c *client.Client) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	if _, ok := m.Clients[c.ID]; !ok {
		return errors.NotFound("Client")
	}
	m.Clients[c.ID] = c
	return nil
}

func (m *MockClientRepository) Delete(ctx context.Context, userID, id int64) error {
	c, ok := m.Clients[id]
	if !ok || c.UserID != userID {
		return errors.NotFound("Client")
	}
	delete(m.Clients, id)
	return nil
}

func (m *MockClientRepository) List(ctx context.Context, userID int64, limit, offset int) ([]*client.Client, int64, error) {
	var result []*client.Client
	for _, c := range m.Clients {
		if c.UserID == userID {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, int64(len(result)), nil
}

func (m *MockClientRepository) SetAccountingID(ctx context.Context, clientID int64, externalID string) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.AccountingIDs[clientID] = externalID
	return nil
}

func (m *MockClientRepository) GetAccountingID(ctx context.Context, clientID int64) (string, error) {
	if m.GetError != nil {
		return "", m.GetError
	}
	return m.AccountingIDs[clientID], nil
}

// MockProjectRepository is a mock implementation of project.Repository
type MockProjectRepository struct {
	Projects    map[int64]*project.Project
	NextID      int64
	CreateError error
	GetError    error
	UpdateError error
}

func NewMockProjectRepository() *MockProjectRepository {
	return &MockProjectRepository{
		Projects: make(map[int64]*project.Project),
		NextID:   1,
	}
}

func (m *MockProjectRepository) Create(ctx context.Context, p *project.Project) (int64, error) {
	if m.CreateError != nil {
		return 0, m.CreateError
	}
	p.ID = m.NextID
	m.NextID++
	m.Projects[p.ID] = p
	return p.ID, nil
}

func (m *MockProjectRepository) GetByID(ctx context.Context, userID, id int64) (*project.Project, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	p, ok := m.Projects[id]
	if !ok || p.UserID != userID {
		return nil, errors.NotFound("Project")
	}
	return p, nil
}

func (m *MockProjectRepository) Update(ctx context.Context, p *project.Project) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	if _, ok := m.Projects[p.ID]; !ok {
		return errors.NotFound("Project")
	}
	stored := *p
	m.Projects[p.ID] = &stored
	return nil
}

func (m *MockProjectRepository) Delete(ctx context.Context, userID, id int64) error {
	p, ok := m.Projects[id]
	if !ok || p.UserID != userID {
		return errors.NotFound("Project")
	}
	delete(m.Projects, id)
	return nil
}

func (m *MockProjectRepository) List(ctx context.Context, userID int64, filter project.Filter, limit, offset int) ([]*project.Project, int64, error) {
	var result []*project.Project
	for _, p := range m.Projects {
		if p.UserID != userID {
			continue
		}
		if filter.ClientID != 0 && p.ClientID != filter.ClientID {
			continue
		}
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, int64(len(result)), nil
}

func (m *MockProjectRepository) ListByClient(ctx context.Context, clientID int64) ([]*project.Project, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	var result []*project.Project
	for _, p := range m.Projects {
		if p.ClientID == clientID {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *MockProjectRepository) SetAccountingEstimateID(ctx context.Context, projectID int64, estimateID string) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	p, ok := m.Projects[projectID]
	if !ok {
		return errors.NotFound("Project")
	}
	p.AccountingEstimateID = estimateID
	return nil
}

func (m *MockProjectRepository) CountByStatus(ctx context.Context, userID int64) (map[string]int, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	counts := make(map[string]int)
	for _, p := range m.Projects {
		if p.UserID == userID {
			counts[p.Status]++
		}
	}
	return counts, nil
}

// MockTaskRepository is a mock implementation of task.Repository
type MockTaskRepository struct {
	Tasks       map[int64]*task.Task
	NextID      int64
	CreateError error
	GetError    error
}

func NewMockTaskRepository() *MockTaskRepository {
	return &MockTaskRepository{
		Tasks:  make(map[int64]*task.Task),
		NextID: 1,
	}
}

func (m *MockTaskRepository) Create(ctx context.Context, t *task.Task) (int64, error) {
	if m.CreateError != nil {
		return 0, m.CreateError
	}
	t.ID = m.NextID
	m.NextID++
	m.Tasks[t.ID] = t
	return t.ID, nil
}

func (m *MockTaskRepository) GetByID(ctx context.Context, projectID, id int64) (*task.Task, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	t, ok := m.Tasks[id]
	if !ok || t.ProjectID != projectID {
		return nil, errors.NotFound("Task")
	}
	return t, nil
}

func (m *MockTaskRepository) Update(ctx context.Context, t *task.Task) error {
	if _, ok := m.Tasks[t.ID]; !ok {
		return errors.NotFound("Task")
	}
	m.Tasks[t.ID] = t
	return nil
}

func (m *MockTaskRepository) Delete(ctx context.Context, projectID, id int64) error {
	t, ok := m.Tasks[id]
	if !ok || t.ProjectID != projectID {
		return errors.NotFound("Task")
	}
	delete(m.Tasks, id)
	return nil
}

func (m *MockTaskRepository) ListByProject(ctx context.Context, projectID int64) ([]*task.Task, error) {
	var result []*task.Task
	for _, t := range m.Tasks {
		if t.ProjectID == projectID {
			result = append(result, t)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// CountOpenForUser counts all not-done tasks; the mock does not track
// project ownership.
func (m *MockTaskRepository) CountOpenForUser(ctx context.Context, userID int64) (int, error) {
	if m.GetError != nil {
		return 0, m.GetError
	}
	count := 0
	for _, t := range m.Tasks {
		if t.Status != task.StatusDone {
			count++
		}
	}
	return count, nil
}

// MockBudgetRepository is a mock implementation of budget.Repository
type MockBudgetRepository struct {
	Items       map[int64]*budget.Item
	NextID      int64
	CreateError error
	GetError    error
}

func NewMockBudgetRepository() *MockBudgetRepository {
	return &MockBudgetRepository{
		Items:  make(map[int64]*budget.Item),
		NextID: 1,
	}
}

func (m *MockBudgetRepository) Create(ctx context.Context, item *budget.Item) (int64, error) {
	if m.CreateError != nil {
		return 0, m.CreateError
	}
	item.ID = m.NextID
	m.NextID++
	m.Items[item.ID] = item
	return item.ID, nil
}

func (m *MockBudgetRepository) GetByID(ctx context.Context, projectID, id int64) (*budget.Item, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	item, ok := m.Items[id]
	if !ok || item.ProjectID != projectID {
		return nil, errors.NotFound("Budget item")
	}
	return item, nil
}

func (m *MockBudgetRepository) Update(ctx context.Context, item *budget.Item) error {
	if _, ok := m.Items[item.ID]; !ok {
		return errors.NotFound("Budget item")
	}
	m.Items[item.ID] = item
	return nil
}

func (m *MockBudgetRepository) Delete(ctx context.Context, projectID, id int64) error {
	item, ok := m.Items[id]
	if !ok || item.ProjectID != projectID {
		return errors.NotFound("Budget item")
	}
	delete(m.Items, id)
	return nil
}

func (m *MockBudgetRepository) ListByProject(ctx context.Context, projectID int64) ([]*budget.Item, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	var result []*budget.Item
	for _, item := range m.Items {
		if item.ProjectID == projectID {
			result = append(result, item)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *MockBudgetRepository) TotalsByProject(ctx context.Context, projectID int64) (budget.Totals, error) {
	var totals budget.Totals
	for _, item := range m.Items {
		if item.ProjectID == projectID {
			totals.EstimatedCents += item.EstimatedCents
			totals.ActualCents += item.ActualCents
		}
	}
	return totals, nil
}

func (m *MockBudgetRepository) TotalsForUser(ctx context.Context, userID int64) (budget.Totals, error) {
	if m.GetError != nil {
		return budget.Totals{}, m.GetError
	}
	var totals budget.Totals
	for _, item := range m.Items {
		totals.EstimatedCents += item.EstimatedCents
		totals.ActualCents += item.ActualCents
	}
	return totals, nil
}

// MockUpdateRepository is a mock implementation of update.Repository
type MockUpdateRepository struct {
	Updates     map[int64]*update.Update
	NextID      int64
	CreateError error
	GetError    error
}

func NewMockUpdateRepository() *MockUpdateRepository {
	return &MockUpdateRepository{
		Updates: make(map[int64]*update.Update),
		NextID:  1,
	}
}

func (m *MockUpdateRepository) Create(ctx context.Context, u *update.Update) (int64, error) {
	if m.CreateError != nil {
		return 0, m.CreateError
	}
	u.ID = m.NextID
	m.NextID++
	m.Updates[u.ID] = u
	return u.ID, nil
}

func (m *MockUpdateRepository) GetByID(ctx context.Context, projectID, id int64) (*update.Update, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	u, ok := m.Updates[id]
	if !ok || u.ProjectID != projectID {
		return nil, errors.NotFound("Update")
	}
	return u, nil
}

func (m *MockUpdateRepository) Update(ctx context.Context, u *update.Update) error {
	if _, ok := m.Updates[u.ID]; !ok {
		return errors.NotFound("Update")
	}
	m.Updates[u.ID] = u
	return nil
}

func (m *MockUpdateRepository) Delete(ctx context.Context, projectID, id int64) error {
	u, ok := m.Updates[id]
	if !ok || u.ProjectID != projectID {
		return errors.NotFound("Update")
	}
	delete(m.Updates, id)
	return nil
}

func (m *MockUpdateRepository) ListByProject(ctx context.Context, projectID int64, limit, offset int) ([]*update.Update, int64, error) {
	if m.GetError != nil {
		return nil, 0, m.GetError
	}
	var result []*update.Update
	for _, u := range m.Updates {
		if u.ProjectID == projectID {
			result = append(result, u)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, int64(len(result)), nil
}

func (m *MockUpdateRepository) AddPhoto(ctx context.Context, p *update.Photo) error {
	u, ok := m.Updates[p.UpdateID]
	if !ok {
		return errors.NotFound("Update")
	}
	u.Photos = append(u.Photos, *p)
	return nil
}

// MockUpdateRequestRepository is a mock implementation of
// updaterequest.Repository. ProjectOwner maps project id to the
// owning contractor so ListForUser can scope results.
type MockUpdateRequestRepository struct {
	Requests     map[int64]*updaterequest.Request
	ProjectOwner map[int64]int64
	NextID       int64
	CreateError  error
	GetError     error
	UpdateError  error
}

func NewMockUpdateRequestRepository() *MockUpdateRequestRepository {
	return &MockUpdateRequestRepository{
		Requests:     make(map[int64]*updaterequest.Request),
		ProjectOwner: make(map[int64]int64),
		NextID:       1,
	}
}

func (m *MockUpdateRequestRepository) Create(ctx context.Context, r *updaterequest.Request) (int64, error) {
	if m.CreateError != nil {
		return 0, m.CreateError
	}
	r.ID = m.NextID
	m.NextID++
	if r.Status == "" {
		r.Status = updaterequest.StatusPending
	}
	m.Requests[r.ID] = r
	return r.ID, nil
}

func (m *MockUpdateRequestRepository) GetByID(ctx context.Context, id int64) (*updaterequest.Request, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	r, ok := m.Requests[id]
	if !ok {
		return nil, errors.NotFound("Update request")
	}
	return r, nil
}

func (m *MockUpdateRequestRepository) Update(ctx context.Context, r *updaterequest.Request) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	if _, ok := m.Requests[r.ID]; !ok {
		return errors.NotFound("Update request")
	}
	m.Requests[r.ID] = r
	return nil
}

func (m *MockUpdateRequestRepository) ListForUser(ctx context.Context, userID int64, status string, limit, offset int) ([]*updaterequest.Request, int64, error) {
	if m.GetError != nil {
		return nil, 0, m.GetError
	}
	var result []*updaterequest.Request
	for _, r := range m.Requests {
		if m.ProjectOwner[r.ProjectID] != userID {
			continue
		}
		if status != "" && r.Status != status {
			continue
		}
		result = append(result, r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, int64(len(result)), nil
}

func (m *MockUpdateRequestRepository) ListByPortalUser(ctx context.Context, portalUserID int64) ([]*updaterequest.Request, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	var result []*updaterequest.Request
	for _, r := range m.Requests {
		if r.PortalUserID == portalUserID {
			result = append(result, r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *MockUpdateRequestRepository) CountPendingForUser(ctx context.Context, userID int64) (int, error) {
	if m.GetError != nil {
		return 0, m.GetError
	}
	count := 0
	for _, r := range m.Requests {
		if m.ProjectOwner[r.ProjectID] == userID && r.Status == updaterequest.StatusPending {
			count++
		}
	}
	return count, nil
}

// MockPortalRepository is a mock implementation of portal.Repository
type MockPortalRepository struct {
	Users       map[int64]*portal.PortalUser
	EmailIndex  map[string]*portal.PortalUser
	NextID      int64
	CreateError error
	GetError    error
	LoginError  error
}

func NewMockPortalRepository() *MockPortalRepository {
	return &MockPortalRepository{
		Users:      make(map[int64]*portal.PortalUser),
		EmailIndex: make(map[string]*portal.PortalUser),
		NextID:     1,
	}
}

func (m *MockPortalRepository) Create(ctx context.Context, p *portal.PortalUser) (int64, error) {
	if m.CreateError != nil {
		return 0, m.CreateError
	}
	p.ID = m.NextID
	m.NextID++
	m.Users[p.ID] = p
	m.EmailIndex[p.Email] = p
	return p.ID, nil
}

func (m *MockPortalRepository) GetByID(ctx context.Context, id int64) (*portal.PortalUser, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	p, ok := m.Users[id]
	if !ok {
		return nil, errors.NotFound("Portal user")
	}
	return p, nil
}

func (m *MockPortalRepository) GetByEmail(ctx context.Context, email string) (*portal.PortalUser, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	p, ok := m.EmailIndex[email]
	if !ok {
		return nil, errors.NotFound("Portal user")
	}
	return p, nil
}

func (m *MockPortalRepository) ListByClient(ctx context.Context, clientID int64) ([]*portal.PortalUser, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	var result []*portal.PortalUser
	for _, p := range m.Users {
		if p.ClientID == clientID {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *MockPortalRepository) SetLastLogin(ctx context.Context, id int64, at time.Time) error {
	if m.LoginError != nil {
		return m.LoginError
	}
	p, ok := m.Users[id]
	if !ok {
		return errors.NotFound("Portal user")
	}
	p.LastLoginAt = &at
	return nil
}

func (m *MockPortalRepository) Delete(ctx context.Context, clientID, id int64) error {
	p, ok := m.Users[id]
	if !ok || p.ClientID != clientID {
		return errors.NotFound("Portal user")
	}
	delete(m.EmailIndex, p.Email)
	delete(m.Users, id)
	return nil
}

// MockAccountingRepository is a mock implementation of
// accounting.Repository
type MockAccountingRepository struct {
	Connections map[int64]*accounting.Connection
	SaveError   error
	GetError    error
	DeleteError error
	SaveCalls   int
	DeleteCalls int
}

func NewMockAccountingRepository() *MockAccountingRepository {
	return &MockAccountingRepository{
		Connections: make(map[int64]*accounting.Connection),
	}
}

func (m *MockAccountingRepository) Get(ctx context.Context, userID int64) (*accounting.Connection, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	c, ok := m.Connections[userID]
	if !ok {
		return nil, errors.NotFound("Accounting connection")
	}
	return c, nil
}

func (m *MockAccountingRepository) Save(ctx context.Context, c *accounting.Connection) error {
	m.SaveCalls++
	if m.SaveError != nil {
		return m.SaveError
	}
	m.Connections[c.UserID] = c
	return nil
}

func (m *MockAccountingRepository) Delete(ctx context.Context, userID int64) error {
	m.DeleteCalls++
	if m.DeleteError != nil {
		return m.DeleteError
	}
	delete(m.Connections, userID)
	return nil
}
