package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// ProjectService handles project-related API calls
type ProjectService struct {
	client *Client
}

// Projects returns the project management service
func (c *Client) Projects() *ProjectService {
	return &ProjectService{client: c}
}

// ProjectListOptions contains options for listing projects
type ProjectListOptions struct {
	ListOptions
	ClientID *int64
	Status   *string
}

// List retrieves a page of projects
func (s *ProjectService) List(ctx context.Context, opts *ProjectListOptions) (*Page[Project], error) {
	query := url.Values{}
	if opts != nil {
		if opts.Page > 0 {
			query.Set("page", strconv.Itoa(opts.Page))
		}
		if opts.PageSize > 0 {
			query.Set("page_size", strconv.Itoa(opts.PageSize))
		}
		if opts.ClientID != nil {
			query.Set("client_id", strconv.FormatInt(*opts.ClientID, 10))
		}
		if opts.Status != nil {
			query.Set("status", *opts.Status)
		}
	}

	path := "/api/v1/projects"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var page Page[Project]
	if err := s.client.doRequest(ctx, "GET", path, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Get retrieves a project by id
func (s *ProjectService) Get(ctx context.Context, id int64) (*Project, error) {
	var p Project
	if err := s.client.doRequest(ctx, "GET", fmt.Sprintf("/api/v1/projects/%d", id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
