package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/enum"
	"golang.org/x/crypto/bcrypt"
)

// MockAccount is a fixed login known to MockProvider.
type MockAccount struct {
	Login    string // email for admins, employee ID for employees
	Password string
	Session  Session
}

// DefaultMockAccounts are the demo logins shipped with the café client.
func DefaultMockAccounts() []MockAccount {
	return []MockAccount{
		{
			Login:    "admin@cafeflow.com",
			Password: "admin123",
			Session:  Session{UserID: "ADM001", Name: "Admin User", Email: "admin@cafeflow.com", Role: enum.RoleAdmin},
		},
		{
			Login:    "EMP001",
			Password: "emp001",
			Session:  Session{UserID: "EMP001", Name: "John Doe", EmployeeID: "EMP001", Role: enum.RoleEmployee},
		},
		{
			Login:    "EMP002",
			Password: "emp002",
			Session:  Session{UserID: "EMP002", Name: "Jane Smith", EmployeeID: "EMP002", Role: enum.RoleEmployee},
		},
	}
}

// DefaultAdminAccounts is DefaultMockAccounts without the employee logins,
// for deployments where employees sign in against the roster.
func DefaultAdminAccounts() []MockAccount {
	var admins []MockAccount
	for _, a := range DefaultMockAccounts() {
		if a.Session.Role == enum.RoleAdmin {
			admins = append(admins, a)
		}
	}
	return admins
}

type mockEntry struct {
	hash    []byte
	session Session
}

// MockProvider authenticates against a fixed set of accounts. Admins sign in
// by email and employees by employee ID; an email never matches an employee
// account and vice versa. When a RosterVerifier is set, employee IDs unknown
// to the fixed set are checked against the roster.
type MockProvider struct {
	admins    map[string]mockEntry
	employees map[string]mockEntry
	roster    RosterVerifier
}

// NewMockProvider hashes the account passwords up front so plaintext is not
// kept in memory.
func NewMockProvider(accounts []MockAccount, roster RosterVerifier) (*MockProvider, error) {
	p := &MockProvider{
		admins:    make(map[string]mockEntry),
		employees: make(map[string]mockEntry),
		roster:    roster,
	}
	for _, a := range accounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(a.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password for %s: %w", a.Login, err)
		}
		entry := mockEntry{hash: hash, session: a.Session}
		switch a.Session.Role {
		case enum.RoleAdmin:
			p.admins[strings.ToLower(a.Login)] = entry
		case enum.RoleEmployee:
			p.employees[strings.ToUpper(a.Login)] = entry
		default:
			return nil, fmt.Errorf("account %s: unknown role %q", a.Login, a.Session.Role)
		}
	}
	return p, nil
}

// Authenticate implements IdentityProvider.
func (p *MockProvider) Authenticate(ctx context.Context, creds Credentials) (*Session, error) {
	if err := creds.validate(); err != nil {
		return nil, err
	}

	if creds.Email != "" {
		return check(p.admins[strings.ToLower(strings.TrimSpace(creds.Email))], creds.Password)
	}

	id := strings.ToUpper(strings.TrimSpace(creds.EmployeeID))
	if entry, ok := p.employees[id]; ok {
		return check(entry, creds.Password)
	}
	if p.roster != nil {
		s, err := p.roster.VerifyEmployee(ctx, id, creds.Password)
		if err != nil {
			if errors.Is(err, ErrInvalidCredentials) {
				return nil, ErrInvalidCredentials
			}
			return nil, fmt.Errorf("verify roster employee: %w", err)
		}
		return s, nil
	}
	return nil, ErrInvalidCredentials
}

func check(entry mockEntry, password string) (*Session, error) {
	if entry.hash == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(entry.hash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	s := entry.session
	return &s, nil
}
