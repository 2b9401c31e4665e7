// Package crmclient is a cookie-session HTTP client for the agency CRM API.
package crmclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/agate-ltd/agency-crm/pkg/session"
)

// ErrUnauthorized is wrapped by every 401 response.
var ErrUnauthorized = session.ErrUnauthorized

// APIError is a non-2xx response decoded from the error envelope.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("crm api: %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// Unwrap lets errors.Is match ErrUnauthorized on 401.
func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return nil
}

// Client talks to the API, keeping the session cookie in a jar.
type Client struct {
	baseURL *url.URL
	http    *http.Client
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying client. Its Jar is replaced when nil.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New builds a client for baseURL, e.g. "http://localhost:3000".
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	c := &Client{baseURL: u, http: &http.Client{Timeout: 15 * time.Second}}
	for _, opt := range opts {
		opt(c)
	}
	if c.http.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, err
		}
		c.http.Jar = jar
	}
	return c, nil
}

type signInResponse struct {
	session.Profile
	SessionExpiresAt int64 `json:"sessionExpiresAt"`
}

// SignIn authenticates and stores the session cookie.
func (c *Client) SignIn(ctx context.Context, staffID, password string) (session.Profile, time.Time, error) {
	var resp signInResponse
	body := map[string]string{"staffId": staffID, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/signin", body, &resp); err != nil {
		return session.Profile{}, time.Time{}, err
	}
	return resp.Profile, time.UnixMilli(resp.SessionExpiresAt), nil
}

// Refresh renews the session and returns the new absolute expiry.
func (c *Client) Refresh(ctx context.Context) (time.Time, error) {
	var resp struct {
		SessionExpiresAt int64 `json:"sessionExpiresAt"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/refresh", nil, &resp); err != nil {
		return time.Time{}, err
	}
	if resp.SessionExpiresAt == 0 {
		return time.Time{}, errors.New("crm api: refresh response without expiry")
	}
	return time.UnixMilli(resp.SessionExpiresAt), nil
}

// SignOut asks the server to clear the session cookie.
func (c *Client) SignOut(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/user/signout", nil, nil)
}

// ClientRecord is a client row as listed by the API.
type ClientRecord struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Surname       string `json:"surname"`
	Email         string `json:"email"`
	CompanyName   string `json:"companyName"`
	CampaignCount int    `json:"campaignCount"`
}

// ListClients returns every client with campaign counts.
func (c *Client) ListClients(ctx context.Context) ([]ClientRecord, error) {
	var resp struct {
		Data []ClientRecord `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/clients/get-clients", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// CampaignRecord is a campaign row as listed by the API.
type CampaignRecord struct {
	ID            string  `json:"id"`
	ClientID      string  `json:"clientId"`
	Title         string  `json:"title"`
	EstimatedCost float64 `json:"estimatedCost"`
	Budget        float64 `json:"budget"`
}

// ListCampaigns returns campaigns, optionally for one client.
func (c *Client) ListCampaigns(ctx context.Context, clientID string) ([]CampaignRecord, error) {
	path := "/api/campaigns/get-campaigns"
	if clientID != "" {
		path += "?clientId=" + url.QueryEscape(clientID)
	}
	var resp struct {
		Data []CampaignRecord `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var envelope struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil {
			apiErr.Code = envelope.Code
			apiErr.Message = envelope.Message
		}
		return apiErr
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
