package commands

import (
	"fmt"

	"github.com/courtside-app/courtside/internal/api"
	"github.com/courtside-app/courtside/internal/cli/auth"
	"github.com/courtside-app/courtside/internal/cli/userconfig"
)

const defaultServerURL = "http://localhost:8080"

// resolveServerURL returns the configured server URL, falling back to the
// local default.
func resolveServerURL() (string, error) {
	cfg, err := userconfig.Load()
	if err != nil {
		return "", fmt.Errorf("failed to load user config: %w", err)
	}
	if cfg.ServerURL == "" {
		return defaultServerURL, nil
	}
	return cfg.ServerURL, nil
}

// newClient builds an API client for the configured server without a token
func newClient() (*api.Client, string, error) {
	serverURL, err := resolveServerURL()
	if err != nil {
		return nil, "", err
	}
	return api.New(serverURL), serverURL, nil
}

// newAuthedClient builds an API client carrying the persisted session token
func newAuthedClient() (*api.Client, string, error) {
	apiClient, serverURL, err := newClient()
	if err != nil {
		return nil, "", err
	}

	token, err := auth.LoadToken(serverURL)
	if err != nil {
		return nil, "", err
	}
	apiClient.SetToken(token)

	return apiClient, serverURL, nil
}
