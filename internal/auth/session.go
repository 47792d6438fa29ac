package auth

import (
	"context"
	"errors"
)

// Errors returned by identity providers.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingCredentials = errors.New("email or employee id and password are required")
)

// Session is the authenticated actor. It is built once at login, carried in
// the access token, and handed explicitly to whatever needs identity.
type Session struct {
	UserID     string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	EmployeeID string `json:"employee_id,omitempty"`
	Role       string `json:"role"`
}

// Credentials identify an admin by email or an employee by employee ID.
// Exactly one of Email and EmployeeID is expected.
type Credentials struct {
	Email      string `json:"email,omitempty"`
	EmployeeID string `json:"employeeId,omitempty"`
	Password   string `json:"password"`
}

func (c Credentials) validate() error {
	if c.Password == "" || (c.Email == "" && c.EmployeeID == "") {
		return ErrMissingCredentials
	}
	return nil
}

// IdentityProvider turns credentials into a Session.
// Implementations return ErrInvalidCredentials when the credentials are wrong.
type IdentityProvider interface {
	Authenticate(ctx context.Context, creds Credentials) (*Session, error)
}

// RosterVerifier checks an employee's password against the employee roster.
// Satisfied by *employee.Service.
type RosterVerifier interface {
	VerifyEmployee(ctx context.Context, employeeID, password string) (*Session, error)
}

// SessionChecker reports whether a token's session still belongs to a current
// user. Satisfied by *employee.Service.
type SessionChecker interface {
	SessionActive(ctx context.Context, s Session) (bool, error)
}
