// Package api is the HTTP client for the Courtside backend. All endpoints
// live under a single base path; requests and responses are conventional JSON.
// Failures surface as wrapped errors with the response status and body; there
// is no retry logic.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// Client represents an HTTP client for the Courtside API
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// New creates a new API client for the given base URL
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetHTTPClient sets a custom HTTP client
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	c.httpClient = httpClient
}

// SetToken installs the bearer token sent with authenticated requests.
// An empty token clears it.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the currently installed bearer token
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// do sends a JSON request and decodes the JSON response into out (when out is
// non-nil). Any status outside wantStatus is an error carrying the body.
func (c *Client) do(ctx context.Context, method, path string, body, out any, wantStatus int) error {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("request to %s failed (status %d): %s", path, resp.StatusCode, string(respBody))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// Login authenticates the user and installs the returned token on the client
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var loginResp LoginResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", LoginRequest{
		Email:    email,
		Password: password,
	}, &loginResp, http.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	c.SetToken(loginResp.Token)
	return &loginResp, nil
}

// Logout invalidates the session server-side and clears the local token.
// The token is cleared even when the server call fails.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil, http.StatusOK)
	c.SetToken("")
	if err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}
	return nil
}

// CheckSession probes whether the current token still identifies a valid
// session. Callers treat any error as "not authenticated".
func (c *Client) CheckSession(ctx context.Context) (*SessionResponse, error) {
	var sessionResp SessionResponse
	if err := c.do(ctx, http.MethodGet, "/api/auth/session", nil, &sessionResp, http.StatusOK); err != nil {
		return nil, fmt.Errorf("session check failed: %w", err)
	}
	return &sessionResp, nil
}

// GetProfile returns the current user's profile
func (c *Client) GetProfile(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/api/users/me", nil, &user, http.StatusOK); err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &user, nil
}

// UpdateProfile updates the current user's profile and returns the new state
func (c *Client) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodPut, "/api/users/me", req, &user, http.StatusOK); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return &user, nil
}

// ListUsers returns one page of the user listing (admin only)
func (c *Client) ListUsers(ctx context.Context, page, perPage int) (*UserPage, error) {
	path := fmt.Sprintf("/api/admin/users?page=%d&per_page=%d", page, perPage)
	var userPage UserPage
	if err := c.do(ctx, http.MethodGet, path, nil, &userPage, http.StatusOK); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return &userPage, nil
}

// SearchUsers finds users whose name or email matches the query (admin only)
func (c *Client) SearchUsers(ctx context.Context, query string) ([]User, error) {
	path := "/api/admin/users/search?q=" + url.QueryEscape(query)
	var users []User
	if err := c.do(ctx, http.MethodGet, path, nil, &users, http.StatusOK); err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	return users, nil
}

// GrantRole grants "admin" or "super_admin" to a user (super-admin only)
func (c *Client) GrantRole(ctx context.Context, userID, role string) error {
	path := fmt.Sprintf("/api/admin/users/%s/roles/%s", userID, role)
	if err := c.do(ctx, http.MethodPost, path, nil, nil, http.StatusOK); err != nil {
		return fmt.Errorf("failed to grant role: %w", err)
	}
	return nil
}

// RevokeRole revokes "admin" or "super_admin" from a user (super-admin only)
func (c *Client) RevokeRole(ctx context.Context, userID, role string) error {
	path := fmt.Sprintf("/api/admin/users/%s/roles/%s", userID, role)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil, http.StatusOK); err != nil {
		return fmt.Errorf("failed to revoke role: %w", err)
	}
	return nil
}

// DeleteUser removes a user account (admin only)
func (c *Client) DeleteUser(ctx context.Context, userID string) error {
	path := fmt.Sprintf("/api/admin/users/%s", userID)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil, http.StatusOK); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// ListVenues returns all bookable venues
func (c *Client) ListVenues(ctx context.Context) ([]Venue, error) {
	var venues []Venue
	if err := c.do(ctx, http.MethodGet, "/api/venues", nil, &venues, http.StatusOK); err != nil {
		return nil, fmt.Errorf("failed to list venues: %w", err)
	}
	return venues, nil
}

// GetVenue returns a single venue by ID
func (c *Client) GetVenue(ctx context.Context, venueID string) (*Venue, error) {
	var venue Venue
	path := fmt.Sprintf("/api/venues/%s", venueID)
	if err := c.do(ctx, http.MethodGet, path, nil, &venue, http.StatusOK); err != nil {
		return nil, fmt.Errorf("failed to get venue: %w", err)
	}
	return &venue, nil
}

// BookVenue books a time slot at a venue for the current user
func (c *Client) BookVenue(ctx context.Context, venueID string, req BookVenueRequest) (*Booking, error) {
	var booking Booking
	path := fmt.Sprintf("/api/venues/%s/bookings", venueID)
	if err := c.do(ctx, http.MethodPost, path, req, &booking, http.StatusCreated); err != nil {
		return nil, fmt.Errorf("failed to book venue: %w", err)
	}
	return &booking, nil
}

// ListClubs returns all clubs
func (c *Client) ListClubs(ctx context.Context) ([]Club, error) {
	var clubs []Club
	if err := c.do(ctx, http.MethodGet, "/api/clubs", nil, &clubs, http.StatusOK); err != nil {
		return nil, fmt.Errorf("failed to list clubs: %w", err)
	}
	return clubs, nil
}

// JoinClub adds the current user to a club
func (c *Client) JoinClub(ctx context.Context, clubID string) error {
	path := fmt.Sprintf("/api/clubs/%s/members", clubID)
	if err := c.do(ctx, http.MethodPost, path, nil, nil, http.StatusCreated); err != nil {
		return fmt.Errorf("failed to join club: %w", err)
	}
	return nil
}

// ListSessions returns upcoming play sessions
func (c *Client) ListSessions(ctx context.Context) ([]PlaySession, error) {
	var sessions []PlaySession
	if err := c.do(ctx, http.MethodGet, "/api/sessions", nil, &sessions, http.StatusOK); err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, nil
}

// JoinSession registers the current user for a play session
func (c *Client) JoinSession(ctx context.Context, sessionID string) error {
	path := fmt.Sprintf("/api/sessions/%s/attendees", sessionID)
	if err := c.do(ctx, http.MethodPost, path, nil, nil, http.StatusCreated); err != nil {
		return fmt.Errorf("failed to join session: %w", err)
	}
	return nil
}
