// Package masterdata provides an HTTP client adapter for the master-data
// service that owns jobs, suppliers and job roles. Order creation resolves
// its external references through this client.
package masterdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/ports"
	"production/internal/pkg/errs"
)

// Client resolves jobs, suppliers and roles against the master-data
// service's REST API. Implements the JobProvider, SupplierProvider and
// RoleProvider ports.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a master-data client for the given base URL,
// e.g. "http://masterdata:8080".
func NewClient(baseURL string) (*Client, error) {
	if _, err := url.Parse(baseURL); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("baseURL", err)
	}
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// jobPayload mirrors the master-data job resource.
type jobPayload struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	CustomerName string `json:"customerName"`
}

// supplierPayload mirrors the master-data supplier resource.
type supplierPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// rolePayload mirrors the master-data role resource.
type rolePayload struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	EstimatedDays int    `json:"estimatedDays"`
}

// GetJob resolves a customer job by ID.
func (c *Client) GetJob(ctx context.Context, id kernel.UUID) (ports.Job, error) {
	var payload jobPayload
	if err := c.getResource(ctx, "jobs", id, &payload); err != nil {
		return ports.Job{}, err
	}

	jobID, err := kernel.UUIDFromString(payload.ID)
	if err != nil {
		return ports.Job{}, err
	}

	return ports.Job{
		ID:           jobID,
		Title:        payload.Title,
		CustomerName: payload.CustomerName,
	}, nil
}

// GetSupplier resolves a supplier by ID.
func (c *Client) GetSupplier(ctx context.Context, id kernel.UUID) (ports.Supplier, error) {
	var payload supplierPayload
	if err := c.getResource(ctx, "suppliers", id, &payload); err != nil {
		return ports.Supplier{}, err
	}

	supplierID, err := kernel.UUIDFromString(payload.ID)
	if err != nil {
		return ports.Supplier{}, err
	}

	return ports.Supplier{ID: supplierID, Name: payload.Name}, nil
}

// GetRole resolves a work category by ID.
func (c *Client) GetRole(ctx context.Context, id kernel.UUID) (ports.Role, error) {
	var payload rolePayload
	if err := c.getResource(ctx, "roles", id, &payload); err != nil {
		return ports.Role{}, err
	}

	roleID, err := kernel.UUIDFromString(payload.ID)
	if err != nil {
		return ports.Role{}, err
	}

	return ports.Role{
		ID:            roleID,
		Name:          payload.Name,
		EstimatedDays: payload.EstimatedDays,
	}, nil
}

// getResource fetches one resource and decodes it into out. A 404 from the
// master-data service maps to an object-not-found error so handlers can
// classify it; any other non-200 status is an infrastructure error.
func (c *Client) getResource(ctx context.Context, resource string, id kernel.UUID, out any) error {
	if err := id.Validate(); err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/api/v1/%s/%s", c.baseURL, resource, id.String())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return json.NewDecoder(resp.Body).Decode(out)
	case http.StatusNotFound:
		return errs.NewObjectNotFoundError(resource, id.String())
	default:
		return fmt.Errorf("master-data service returned status %d for %s %s",
			resp.StatusCode, resource, id.String())
	}
}
