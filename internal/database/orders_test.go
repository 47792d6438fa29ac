package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/auth"
	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/employee"
	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/menu"
	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/order"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// fakeTx records statements. Methods the sink never calls are left to the
// embedded nil interface.
type fakeTx struct {
	pgx.Tx
	stmts      []string
	args       [][]any
	failOn     string
	committed  bool
	rolledBack bool
}

func (f *fakeTx) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if f.failOn != "" && strings.Contains(sql, f.failOn) {
		return pgconn.CommandTag{}, errors.New("boom")
	}
	f.stmts = append(f.stmts, sql)
	f.args = append(f.args, args)
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (f *fakeTx) Commit(context.Context) error {
	f.committed = true
	return nil
}

func (f *fakeTx) Rollback(context.Context) error {
	if !f.committed {
		f.rolledBack = true
	}
	return nil
}

type fakeBeginner struct {
	tx  *fakeTx
	err error
}

func (b *fakeBeginner) Begin(context.Context) (pgx.Tx, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.tx, nil
}

func testSubmission() order.Submission {
	return order.Submission{
		Actor:        auth.Session{UserID: "EMP001", Name: "John Doe"},
		CustomerName: "Jane",
		Lines: []order.LineItem{
			{LineID: 1, MenuItemID: 1, Category: menu.Coffee, Name: "Espresso", UnitPrice: decimal.RequireFromString("2.50"), Quantity: 2,
				Customizations: map[string]string{"size": "Small (8oz)"}},
			{LineID: 2, MenuItemID: 11, Category: menu.Pastries, Name: "Croissant", UnitPrice: decimal.RequireFromString("2.50"), Quantity: 1,
				Customizations: map[string]string{"warmed": "Yes"}},
		},
		Total: decimal.RequireFromString("7.50"),
	}
}

func TestOrderSink_Submit(t *testing.T) {
	tx := &fakeTx{}
	sink := NewOrderSink(&fakeBeginner{tx: tx})
	fixed := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	sink.now = func() time.Time { return fixed }

	r, err := sink.Submit(context.Background(), testSubmission())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if r.OrderID == "" || !r.AcceptedAt.Equal(fixed) {
		t.Errorf("unexpected receipt %+v", r)
	}
	if !tx.committed {
		t.Fatal("expected commit")
	}
	if len(tx.stmts) != 3 {
		t.Fatalf("expected 1 order + 2 lines, got %d statements", len(tx.stmts))
	}
	if !strings.Contains(tx.stmts[0], "INSERT INTO orders") {
		t.Errorf("first statement should insert the order: %s", tx.stmts[0])
	}
	// position, category and customizations of the second line
	line := tx.args[2]
	if line[2] != 1 || line[4] != "pastries" {
		t.Errorf("unexpected line args %v", line)
	}
	if got := string(line[8].([]byte)); got != `{"warmed":"Yes"}` {
		t.Errorf("customizations: got %s", got)
	}
}

func TestOrderSink_RollsBackOnLineFailure(t *testing.T) {
	tx := &fakeTx{failOn: "order_items"}
	sink := NewOrderSink(&fakeBeginner{tx: tx})

	_, err := sink.Submit(context.Background(), testSubmission())
	var failure *order.SinkFailure
	if !errors.As(err, &failure) {
		t.Fatalf("expected *order.SinkFailure, got %v", err)
	}
	if tx.committed || !tx.rolledBack {
		t.Errorf("expected rollback without commit (committed=%v rolledBack=%v)", tx.committed, tx.rolledBack)
	}
}

func TestOrderSink_BeginFailure(t *testing.T) {
	sink := NewOrderSink(&fakeBeginner{err: errors.New("pool closed")})

	_, err := sink.Submit(context.Background(), testSubmission())
	var failure *order.SinkFailure
	if !errors.As(err, &failure) || failure.Reason != "order could not be saved" {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestDecimalNumericRoundTrip(t *testing.T) {
	for _, s := range []string{"0.00", "2.50", "1234.99"} {
		d := decimal.RequireFromString(s)
		if got := numericToDecimal(decimalToNumeric(d)); !got.Equal(d) {
			t.Errorf("%s: got %s", s, got)
		}
	}
}

func TestMapEmployeeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"duplicate id", &pgconn.PgError{Code: "23505", ConstraintName: employeesPKey}, employee.ErrDuplicateID},
		{"duplicate email", &pgconn.PgError{Code: "23505", ConstraintName: employeesEmailKey}, employee.ErrDuplicateEmail},
		{"wrapped", fmt.Errorf("exec: %w", &pgconn.PgError{Code: "23505", ConstraintName: employeesEmailKey}), employee.ErrDuplicateEmail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapEmployeeError("create employee", tt.err); !errors.Is(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}

	other := &pgconn.PgError{Code: "23503"}
	got := mapEmployeeError("create employee", other)
	if errors.Is(got, employee.ErrDuplicateID) || errors.Is(got, employee.ErrDuplicateEmail) {
		t.Errorf("foreign key error mapped to duplicate: %v", got)
	}
	if !strings.HasPrefix(got.Error(), "create employee:") {
		t.Errorf("expected op prefix, got %v", got)
	}
}
