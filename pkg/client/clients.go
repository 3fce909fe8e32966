package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// ClientService handles client-related API calls
type ClientService struct {
	client *Client
}

// Clients returns the client management service
func (c *Client) Clients() *ClientService {
	return &ClientService{client: c}
}

// CreateClientRequest represents a request to create a client
type CreateClientRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

// List retrieves a page of clients
func (s *ClientService) List(ctx context.Context, opts *ListOptions) (*Page[ProjectClient], error) {
	query := url.Values{}
	if opts != nil {
		if opts.Page > 0 {
			query.Set("page", strconv.Itoa(opts.Page))
		}
		if opts.PageSize > 0 {
			query.Set("page_size", strconv.Itoa(opts.PageSize))
		}
	}

	path := "/api/v1/clients"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var page Page[ProjectClient]
	if err := s.client.doRequest(ctx, "GET", path, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Get retrieves a client by id
func (s *ClientService) Get(ctx context.Context, id int64) (*ProjectClient, error) {
	var c ProjectClient
	if err := s.client.doRequest(ctx, "GET", fmt.Sprintf("/api/v1/clients/%d", id), nil, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create creates a new client
func (s *ClientService) Create(ctx context.Context, req CreateClientRequest) (*ProjectClient, error) {
	var c ProjectClient
	if err := s.client.doRequest(ctx, "POST", "/api/v1/clients", req, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Delete deletes a client
func (s *ClientService) Delete(ctx context.Context, id int64) error {
	return s.client.doRequest(ctx, "DELETE", fmt.Sprintf("/api/v1/clients/%d", id), nil, nil)
}
