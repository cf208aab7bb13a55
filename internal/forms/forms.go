// Package forms submits the contact form to the third-party form API.
// Validation is client-local and blocks submission without a network
// round-trip: field format and length via the validator, profanity and
// dangerous-markup checks via the sanitize package.
package forms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/courtside-app/courtside/internal/sanitize"
)

var (
	ErrNoAccessKey   = errors.New("form submission is not configured: missing access key")
	ErrProfanity     = errors.New("message contains inappropriate language")
	ErrDangerousText = errors.New("message contains disallowed markup")
)

// Submission is the contact form payload
type Submission struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,min=10,max=2000"`
}

// Response is the third-party API's result envelope
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// Client submits forms to a single configured endpoint
type Client struct {
	endpoint   string
	accessKey  string
	httpClient *http.Client
	validate   *validator.Validate
}

// New creates a form client for the given endpoint and access key
func New(endpoint, accessKey string) *Client {
	return &Client{
		endpoint:  endpoint,
		accessKey: accessKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		validate: validator.New(),
	}
}

// SetHTTPClient sets a custom HTTP client
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	c.httpClient = httpClient
}

// Validate runs every client-local check without touching the network
func (c *Client) Validate(sub Submission) error {
	if err := c.validate.Struct(sub); err != nil {
		return fmt.Errorf("invalid submission: %w", err)
	}

	for _, text := range []string{sub.Subject, sub.Message} {
		if sanitize.ContainsProfanity(text) {
			return ErrProfanity
		}
		if sanitize.ContainsDangerousPattern(text) {
			return ErrDangerousText
		}
	}
	if sanitize.ContainsDangerousPattern(sub.Name) {
		return ErrDangerousText
	}

	return nil
}

// Submit validates and posts the form. The access key travels in the JSON
// body, as the third-party API expects.
func (c *Client) Submit(ctx context.Context, sub Submission) (*Response, error) {
	if c.accessKey == "" {
		return nil, ErrNoAccessKey
	}
	if err := c.Validate(sub); err != nil {
		return nil, err
	}

	payload := struct {
		AccessKey string `json:"access_key"`
		Submission
	}{
		AccessKey:  c.accessKey,
		Submission: sub,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to submit form: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("form submission failed (status %d): %s", resp.StatusCode, string(body))
	}

	var formResp Response
	if err := json.NewDecoder(resp.Body).Decode(&formResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &formResp, nil
}
