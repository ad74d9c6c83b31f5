// Package crm mirrors leads into the sales CRM. Every call is best effort: callers log
// failures and carry on.
package crm

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const StatusActive = "Active"

type Mirror interface {
	CreateLead(ctx context.Context, lead NewLead) error
	UpdateLead(ctx context.Context, id string, upd LeadUpdate) error
}

type NewLead struct {
	ExternalID string `json:"external_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Source     string `json:"source,omitempty"`
	AdSource   string `json:"ad_source,omitempty"`
	Status     string `json:"status"`
}

type LeadUpdate struct {
	ProjectInterest string `json:"project_interest"`
	Budget          string `json:"budget"`
	FinanceNeed     string `json:"finance_need"`
	Status          string `json:"status"`
}

type Client struct {
	http *resty.Client
}

func NewClient(host, apiKey string, timeout time.Duration) *Client {
	c := resty.New().
		SetBaseURL(host).
		SetTimeout(timeout).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json")
	return &Client{http: c}
}

func (c *Client) CreateLead(ctx context.Context, lead NewLead) error {
	if lead.Status == "" {
		lead.Status = StatusActive
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(lead).
		Post("/api/v1/admin/leads")
	if err != nil {
		return fmt.Errorf("crm create lead: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("crm create lead: status=%d body=%s", resp.StatusCode(), resp.String())
	}
	return nil
}

func (c *Client) UpdateLead(ctx context.Context, id string, upd LeadUpdate) error {
	if upd.Status == "" {
		upd.Status = StatusActive
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("id", id).
		SetBody(upd).
		Put("/api/v1/admin/leads/{id}")
	if err != nil {
		return fmt.Errorf("crm update lead: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("crm update lead: status=%d body=%s", resp.StatusCode(), resp.String())
	}
	return nil
}

// Noop is used when no CRM host is configured.
type Noop struct{}

func (Noop) CreateLead(context.Context, NewLead) error            { return nil }
func (Noop) UpdateLead(context.Context, string, LeadUpdate) error { return nil }
