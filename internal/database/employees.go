package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/employee"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	employeesPKey     = "employees_pkey"
	employeesEmailKey = "employees_email_key"
)

const employeeColumns = `id, name, email, role, join_date, status`

// EmployeeStore is the PostgreSQL employee.Store.
type EmployeeStore struct {
	db DBTX
}

func NewEmployeeStore(db DBTX) *EmployeeStore {
	return &EmployeeStore{db: db}
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var (
		e    employee.Employee
		join pgtype.Date
	)
	if err := row.Scan(&e.ID, &e.Name, &e.Email, &e.Role, &join, &e.Status); err != nil {
		return employee.Employee{}, err
	}
	e.JoinDate = join.Time
	return e, nil
}

func (s *EmployeeStore) List(ctx context.Context) ([]employee.Employee, error) {
	rows, err := s.db.Query(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	var out []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *EmployeeStore) Get(ctx context.Context, id string) (employee.Employee, error) {
	e, err := scanEmployee(s.db.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrNotFound
		}
		return employee.Employee{}, fmt.Errorf("get employee: %w", err)
	}
	return e, nil
}

func (s *EmployeeStore) Create(ctx context.Context, e employee.Employee, passwordHash string) (employee.Employee, error) {
	created, err := scanEmployee(s.db.QueryRow(ctx,
		`INSERT INTO employees (id, name, email, role, join_date, status, password_hash)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+employeeColumns,
		e.ID, e.Name, e.Email, e.Role, pgtype.Date{Time: e.JoinDate, Valid: true}, e.Status, passwordHash,
	))
	if err != nil {
		return employee.Employee{}, mapEmployeeError("create employee", err)
	}

	// Seeded rows carry explicit IDs; keep the sequence ahead of them.
	if n, ok := employee.ParseID(created.ID); ok {
		if _, err := s.db.Exec(ctx,
			`SELECT setval('employee_number_seq', $1::bigint)
			 WHERE $1::bigint > (SELECT CASE WHEN is_called THEN last_value ELSE last_value - 1 END FROM employee_number_seq)`,
			int64(n),
		); err != nil {
			return employee.Employee{}, fmt.Errorf("advance employee number: %w", err)
		}
	}
	return created, nil
}

func (s *EmployeeStore) Update(ctx context.Context, e employee.Employee, passwordHash string) (employee.Employee, error) {
	updated, err := scanEmployee(s.db.QueryRow(ctx,
		`UPDATE employees
		 SET name = $2, email = $3, role = $4, status = $5,
		     password_hash = COALESCE(NULLIF($6, ''), password_hash),
		     updated_at = now()
		 WHERE id = $1
		 RETURNING `+employeeColumns,
		e.ID, e.Name, e.Email, e.Role, e.Status, passwordHash,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrNotFound
		}
		return employee.Employee{}, mapEmployeeError("update employee", err)
	}
	return updated, nil
}

func (s *EmployeeStore) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrNotFound
	}
	return nil
}

func (s *EmployeeStore) PasswordHash(ctx context.Context, id string) (string, error) {
	var hash string
	err := s.db.QueryRow(ctx, `SELECT password_hash FROM employees WHERE id = $1`, id).Scan(&hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", employee.ErrNotFound
		}
		return "", fmt.Errorf("get password hash: %w", err)
	}
	return hash, nil
}

// NextID draws from employee_number_seq, which deletes never rewind.
func (s *EmployeeStore) NextID(ctx context.Context) (string, error) {
	var n int64
	if err := s.db.QueryRow(ctx, `SELECT nextval('employee_number_seq')`).Scan(&n); err != nil {
		return "", fmt.Errorf("next employee number: %w", err)
	}
	return employee.FormatID(int(n)), nil
}

func mapEmployeeError(op string, err error) error {
	if constraint, ok := uniqueViolation(err); ok {
		switch constraint {
		case employeesPKey:
			return employee.ErrDuplicateID
		case employeesEmailKey:
			return employee.ErrDuplicateEmail
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
