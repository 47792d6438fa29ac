package employee

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/auth"
	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/enum"
	"golang.org/x/crypto/bcrypt"
)

const maxIDRetries = 3

const minPasswordLen = 6

// CreateRequest is the input for adding an employee.
type CreateRequest struct {
	Name     string
	Email    string
	Role     string
	Password string
}

// UpdateRequest changes selected fields; nil fields are left as they are.
type UpdateRequest struct {
	Name     *string
	Email    *string
	Role     *string
	Status   *string
	Password *string
}

// Stats summarizes the roster for the admin dashboard.
type Stats struct {
	Total  int `json:"total"`
	Active int `json:"active"`
}

// Service applies roster rules on top of a Store.
type Service struct {
	store Store
	now   func() time.Time
	cost  int
}

// NewService creates a roster service.
func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now, cost: bcrypt.DefaultCost}
}

func (s *Service) List(ctx context.Context) ([]Employee, error) {
	return s.store.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (Employee, error) {
	return s.store.Get(ctx, id)
}

// Create validates the request, reserves a fresh ID, and stores the
// employee as active from today. IDs of deleted employees are never handed
// out again. Retries when the reserved ID is already taken.
func (s *Service) Create(ctx context.Context, req CreateRequest) (Employee, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Role = strings.TrimSpace(req.Role)

	if err := validateProfile(req.Name, req.Email, req.Role); err != nil {
		return Employee{}, err
	}
	if len(req.Password) < minPasswordLen {
		return Employee{}, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return Employee{}, fmt.Errorf("hash password: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < maxIDRetries; attempt++ {
		id, err := s.store.NextID(ctx)
		if err != nil {
			return Employee{}, fmt.Errorf("reserve employee id: %w", err)
		}

		e := Employee{
			ID:       id,
			Name:     req.Name,
			Email:    req.Email,
			Role:     req.Role,
			JoinDate: truncateToDay(s.now()),
			Status:   enum.EmployeeStatusActive,
		}
		created, err := s.store.Create(ctx, e, string(hash))
		if err == nil {
			return created, nil
		}
		if errors.Is(err, ErrDuplicateID) {
			lastErr = err
			continue
		}
		return Employee{}, err
	}
	return Employee{}, lastErr
}

// Update applies a partial change to an employee.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (Employee, error) {
	e, err := s.store.Get(ctx, id)
	if err != nil {
		return Employee{}, err
	}

	if req.Name != nil {
		e.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		e.Email = strings.TrimSpace(*req.Email)
	}
	if req.Role != nil {
		e.Role = strings.TrimSpace(*req.Role)
	}
	if req.Status != nil {
		status := strings.ToUpper(strings.TrimSpace(*req.Status))
		if status != enum.EmployeeStatusActive && status != enum.EmployeeStatusInactive {
			return Employee{}, ErrInvalidStatus
		}
		e.Status = status
	}
	if err := validateProfile(e.Name, e.Email, e.Role); err != nil {
		return Employee{}, err
	}

	hash := ""
	if req.Password != nil {
		if len(*req.Password) < minPasswordLen {
			return Employee{}, ErrWeakPassword
		}
		b, err := bcrypt.GenerateFromPassword([]byte(*req.Password), s.cost)
		if err != nil {
			return Employee{}, fmt.Errorf("hash password: %w", err)
		}
		hash = string(b)
	}

	return s.store.Update(ctx, e, hash)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// Stats counts all and active employees.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	list, err := s.store.List(ctx)
	if err != nil {
		return Stats{}, err
	}
	st := Stats{Total: len(list)}
	for _, e := range list {
		if e.Status == enum.EmployeeStatusActive {
			st.Active++
		}
	}
	return st, nil
}

// VerifyEmployee implements auth.RosterVerifier. Inactive employees cannot
// sign in.
func (s *Service) VerifyEmployee(ctx context.Context, employeeID, password string) (*auth.Session, error) {
	e, err := s.store.Get(ctx, employeeID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, auth.ErrInvalidCredentials
		}
		return nil, err
	}
	if e.Status != enum.EmployeeStatusActive {
		return nil, auth.ErrInvalidCredentials
	}
	hash, err := s.store.PasswordHash(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return nil, auth.ErrInvalidCredentials
	}
	return &auth.Session{
		UserID:     e.ID,
		Name:       e.Name,
		Email:      e.Email,
		EmployeeID: e.ID,
		Role:       enum.RoleEmployee,
	}, nil
}

// SessionActive implements auth.SessionChecker. An employee session stays
// valid only while the employee is on the roster and active.
func (s *Service) SessionActive(ctx context.Context, sess auth.Session) (bool, error) {
	if sess.Role != enum.RoleEmployee {
		return true, nil
	}
	e, err := s.store.Get(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return e.Status == enum.EmployeeStatusActive, nil
}

// Seed is an employee to preload with a known password.
type Seed struct {
	Employee Employee
	Password string
}

// DefaultSeeds is the starting roster of the café.
func DefaultSeeds() []Seed {
	return []Seed{
		{
			Employee: Employee{
				ID: "EMP001", Name: "John Doe", Email: "john@cafeflow.com", Role: "Barista",
				JoinDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), Status: enum.EmployeeStatusActive,
			},
			Password: "emp001",
		},
		{
			Employee: Employee{
				ID: "EMP002", Name: "Jane Smith", Email: "jane@cafeflow.com", Role: "Cashier",
				JoinDate: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), Status: enum.EmployeeStatusActive,
			},
			Password: "emp002",
		},
	}
}

// Seed stores the given employees, skipping IDs that already exist.
// It returns how many were created.
func (s *Service) Seed(ctx context.Context, seeds []Seed) (int, error) {
	created := 0
	for _, sd := range seeds {
		hash, err := bcrypt.GenerateFromPassword([]byte(sd.Password), s.cost)
		if err != nil {
			return created, fmt.Errorf("hash password for %s: %w", sd.Employee.ID, err)
		}
		if _, err := s.store.Create(ctx, sd.Employee, string(hash)); err != nil {
			if errors.Is(err, ErrDuplicateID) || errors.Is(err, ErrDuplicateEmail) {
				continue
			}
			return created, fmt.Errorf("seed %s: %w", sd.Employee.ID, err)
		}
		created++
	}
	return created, nil
}

func validateProfile(name, email, role string) error {
	switch {
	case name == "":
		return ErrNameRequired
	case !strings.Contains(email, "@"):
		return ErrInvalidEmail
	case role == "":
		return ErrRoleRequired
	}
	return nil
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
