package accounting

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

// Client is a short-lived accounting API client bound to one company
// (realm) and one access token. Callers construct a fresh client from
// persisted credentials per operation instead of sharing a global
// instance.
type Client struct {
	apiURL      string
	realmID     string
	accessToken string
	httpClient  *http.Client
}

// NewClient creates an accounting API client
func NewClient(apiURL, realmID, accessToken string) *Client {
	return &Client{
		apiURL:      apiURL,
		realmID:     realmID,
		accessToken: accessToken,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

// CustomerInput describes a customer to push
type CustomerInput struct {
	DisplayName string `json:"DisplayName"`
	Email       string `json:"PrimaryEmailAddr,omitempty"`
}

// CustomerRecord is the platform's customer record
type CustomerRecord struct {
	ID          string `json:"Id"`
	DisplayName string `json:"DisplayName"`
}

// EstimateLine is one line of an estimate
type EstimateLine struct {
	Description string  `json:"Description"`
	Amount      float64 `json:"Amount"`
}

// EstimateInput describes an estimate to push
type EstimateInput struct {
	CustomerID string         `json:"CustomerRef"`
	Memo       string         `json:"PrivateNote,omitempty"`
	Lines      []EstimateLine `json:"Line"`
}

// EstimateRecord is the platform's estimate record
type EstimateRecord struct {
	ID string `json:"Id"`
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/company/"+c.realmID+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return errors.New("unexpected status: " + resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// CreateCustomer pushes a customer record. The platform does not
// deduplicate: retrying a failed push can create a duplicate.
func (c *Client) CreateCustomer(ctx context.Context, in CustomerInput) (*CustomerRecord, error) {
	var rec CustomerRecord
	if err := c.post(ctx, "/customer", in, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// CreateEstimate pushes a project as an estimate
func (c *Client) CreateEstimate(ctx context.Context, in EstimateInput) (*EstimateRecord, error) {
	var rec EstimateRecord
	if err := c.post(ctx, "/estimate", in, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}
