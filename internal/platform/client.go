// Package platform is the HTTP client for the external content-platform
// backend. The console proxies credits settings and AI-creator application
// reviews to it; its availability never affects session or authorization
// state.
package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// PaidPlan is one purchasable credit bundle.
type PaidPlan struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Credits int    `json:"credits"`
}

// BurnTiers holds per-quality credit burn rates for one model family.
type BurnTiers map[string]float64

// CreditSettings mirrors the platform's credits configuration document.
type CreditSettings struct {
	ID                    string               `json:"_id,omitempty"`
	WelcomeBonusEnabled   bool                 `json:"welcome_bonus_enabled"`
	WelcomeBonusCredits   int                  `json:"welcome_bonus_credits"`
	WelcomeBonusValidDays int                  `json:"welcome_bonus_valid_days"`
	DailyAdEnabled        bool                 `json:"daily_ad_enabled"`
	DailyAdCredits        int                  `json:"daily_ad_credits"`
	DailyAdLimit          int                  `json:"daily_ad_limit"`
	PaidPlans             []PaidPlan           `json:"paid_plans"`
	BurnRates             map[string]BurnTiers `json:"burn_rates"`
	ModelEnabled          map[string]bool      `json:"model_enabled"`
}

// CreatorApplication is one user's application to become an AI creator.
type CreatorApplication struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Mobile       string    `json:"mobile,omitempty"`
	Instagram    string    `json:"instagram,omitempty"`
	YouTube      string    `json:"youtube,omitempty"`
	Website      string    `json:"website,omitempty"`
	Reason       string    `json:"reason,omitempty"`
	PortfolioURL string    `json:"portfolioUrl,omitempty"`
	Bio          string    `json:"bio,omitempty"`
	Experience   string    `json:"experience,omitempty"`
	SubmittedAt  time.Time `json:"submittedAt"`
	Status       string    `json:"status"`
}

// Client talks to the platform backend.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// CreditSettings fetches the current credits configuration.
func (c *Client) CreditSettings(ctx context.Context) (*CreditSettings, error) {
	var out CreditSettings
	if err := c.do(ctx, http.MethodGet, "/admin/credits/settings", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCreditSettings submits a full or partial settings update and
// returns the document the platform persisted.
func (c *Client) UpdateCreditSettings(ctx context.Context, payload *CreditSettings) (*CreditSettings, error) {
	var out CreditSettings
	if err := c.do(ctx, http.MethodPut, "/admin/credits/settings", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListCreatorApplications fetches all AI-creator applications.
func (c *Client) ListCreatorApplications(ctx context.Context) ([]CreatorApplication, error) {
	var out []CreatorApplication
	if err := c.do(ctx, http.MethodGet, "/admin/ai-creator/applications", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ApproveCreatorApplication marks the application approved.
func (c *Client) ApproveCreatorApplication(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/admin/ai-creator/applications/"+id+"/approve", nil, nil)
}

// RejectCreatorApplication marks the application rejected.
func (c *Client) RejectCreatorApplication(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/admin/ai-creator/applications/"+id+"/reject", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling platform API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("platform API returned %s for %s %s", resp.Status, method, path)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding platform response: %w", err)
		}
	}
	return nil
}
