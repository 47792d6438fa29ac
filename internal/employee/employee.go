// Package employee manages the café's staff roster.
package employee

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Errors returned by roster stores and the service.
var (
	ErrNotFound       = errors.New("employee not found")
	ErrDuplicateEmail = errors.New("email already exists")
	ErrDuplicateID    = errors.New("employee id already exists")
	ErrNameRequired   = errors.New("name is required")
	ErrInvalidEmail   = errors.New("invalid email format")
	ErrRoleRequired   = errors.New("role is required")
	ErrWeakPassword   = errors.New("password must be at least 6 characters")
	ErrInvalidStatus  = errors.New("invalid status")
)

const idPrefix = "EMP"

// Employee is a staff member on the roster. Role is a job title such as
// "Barista"; it is unrelated to the access role carried in tokens.
type Employee struct {
	ID       string
	Name     string
	Email    string
	Role     string
	JoinDate time.Time
	Status   string
}

// Store persists the roster. Implementations return ErrNotFound,
// ErrDuplicateEmail and ErrDuplicateID as appropriate.
type Store interface {
	List(ctx context.Context) ([]Employee, error)
	Get(ctx context.Context, id string) (Employee, error)
	Create(ctx context.Context, e Employee, passwordHash string) (Employee, error)
	// Update replaces the employee's fields. An empty passwordHash keeps the
	// current password.
	Update(ctx context.Context, e Employee, passwordHash string) (Employee, error)
	Delete(ctx context.Context, id string) error
	PasswordHash(ctx context.Context, id string) (string, error)
	// NextID reserves the next employee number. A number is handed out at
	// most once, even after the employee holding it is deleted.
	NextID(ctx context.Context) (string, error)
}

// FormatID renders the n-th employee ID, e.g. 3 → EMP003.
func FormatID(n int) string {
	return fmt.Sprintf("%s%03d", idPrefix, n)
}

// ParseID extracts the sequence number from an ID like EMP012.
func ParseID(id string) (int, bool) {
	if !strings.HasPrefix(id, idPrefix) {
		return 0, false
	}
	n, err := strconv.Atoi(id[len(idPrefix):])
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
