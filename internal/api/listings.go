package api

import (
	"context"
	"fmt"
	"time"
)

// Listing is a posted volunteer opportunity. The shape is owned by the
// remote service; only the fields the UI needs are decoded.
type Listing struct {
	ID             int64  `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Location       string `json:"location"`
	OrganizationID int64  `json:"organizationId"`
}

// ListingsClient fetches opportunity listings.
type ListingsClient struct {
	c *Client
}

// NewListingsClient creates a client for the listings endpoints.
func NewListingsClient(baseURL string, timeout time.Duration) *ListingsClient {
	return &ListingsClient{c: NewClient(baseURL, timeout)}
}

// ByOrganization returns the listings posted by one organization.
// GET /listings/{organizationId} -> {data: [...]}.
func (l *ListingsClient) ByOrganization(ctx context.Context, organizationID int64) ([]Listing, error) {
	var out struct {
		Data []Listing `json:"data"`
	}
	path := fmt.Sprintf("/listings/%d", organizationID)
	if err := l.c.getJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}
