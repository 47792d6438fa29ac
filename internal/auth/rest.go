package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/enum"
)

// RESTProvider delegates authentication to the café backend's login endpoint.
type RESTProvider struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewRESTProvider creates a provider for the backend at baseURL.
func NewRESTProvider(baseURL string) *RESTProvider {
	return &RESTProvider{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type restLoginResponse struct {
	Token string `json:"token"`
	User  struct {
		ID         string `json:"id"`
		Name       string `json:"name"`
		Email      string `json:"email"`
		EmployeeID string `json:"employeeId"`
		Role       string `json:"role"`
	} `json:"user"`
}

// Authenticate implements IdentityProvider.
func (p *RESTProvider) Authenticate(ctx context.Context, creds Credentials) (*Session, error) {
	if err := creds.validate(); err != nil {
		return nil, err
	}

	body, err := json.Marshal(creds)
	if err != nil {
		return nil, fmt.Errorf("marshal login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("login request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ErrInvalidCredentials
	case resp.StatusCode != http.StatusOK:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("login request: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out restLoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode login response: %w", err)
	}

	role := strings.ToUpper(out.User.Role)
	if out.User.ID == "" || (role != enum.RoleAdmin && role != enum.RoleEmployee) {
		return nil, fmt.Errorf("login response: invalid user %q with role %q", out.User.ID, out.User.Role)
	}

	// Admin credentials must not yield an employee session and vice versa.
	if (creds.Email != "" && role != enum.RoleAdmin) || (creds.Email == "" && role != enum.RoleEmployee) {
		return nil, ErrInvalidCredentials
	}

	return &Session{
		UserID:     out.User.ID,
		Name:       out.User.Name,
		Email:      out.User.Email,
		EmployeeID: out.User.EmployeeID,
		Role:       role,
	}, nil
}
