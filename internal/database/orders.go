package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/dashboard"
	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/order"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// OrderSink persists submitted orders. Satisfies order.Sink.
type OrderSink struct {
	pool TxBeginner
	now  func() time.Time
}

func NewOrderSink(pool TxBeginner) *OrderSink {
	return &OrderSink{pool: pool, now: time.Now}
}

// Submit writes the order and its lines in one transaction.
func (s *OrderSink) Submit(ctx context.Context, sub order.Submission) (order.Receipt, error) {
	receipt := order.Receipt{OrderID: uuid.NewString(), AcceptedAt: s.now()}
	if err := s.createOrderTx(ctx, receipt, sub); err != nil {
		return order.Receipt{}, &order.SinkFailure{Reason: "order could not be saved", Err: err}
	}
	return receipt, nil
}

func (s *OrderSink) createOrderTx(ctx context.Context, r order.Receipt, sub order.Submission) error {
	// --- Begin transaction ---
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	// --- Order header ---
	_, err = tx.Exec(ctx,
		`INSERT INTO orders (id, customer_name, customer_phone, taken_by, taken_by_name, total_amount, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		r.OrderID, sub.CustomerName, sub.CustomerPhone, sub.Actor.UserID, sub.Actor.Name,
		decimalToNumeric(sub.Total), r.AcceptedAt,
	)
	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}

	// --- Lines, with their price snapshot ---
	for i, l := range sub.Lines {
		custom, err := json.Marshal(l.Customizations)
		if err != nil {
			return fmt.Errorf("line[%d]: encode customizations: %w", i, err)
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO order_items (id, order_id, position, menu_item_id, category, name, unit_price, quantity, customizations)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			uuid.NewString(), r.OrderID, i, l.MenuItemID, l.Category.String(), l.Name,
			decimalToNumeric(l.UnitPrice), l.Quantity, custom,
		)
		if err != nil {
			return fmt.Errorf("line[%d]: create order item: %w", i, err)
		}
	}

	// --- Commit ---
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// RecentOrders loads the latest orders for the dashboard, newest first.
func RecentOrders(ctx context.Context, db DBTX, limit int) ([]dashboard.RecentOrder, error) {
	rows, err := db.Query(ctx,
		`SELECT o.id::text, o.customer_name, o.total_amount, o.created_at, o.taken_by_name,
		        string_agg(CASE WHEN i.quantity > 1 THEN i.name || ' x' || i.quantity ELSE i.name END,
		                   ', ' ORDER BY i.position)
		 FROM orders o
		 JOIN order_items i ON i.order_id = o.id
		 GROUP BY o.id
		 ORDER BY o.created_at DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent orders: %w", err)
	}
	defer rows.Close()

	var out []dashboard.RecentOrder
	for rows.Next() {
		var (
			o     dashboard.RecentOrder
			total pgtype.Numeric
		)
		if err := rows.Scan(&o.ID, &o.Customer, &total, &o.PlacedAt, &o.TakenBy, &o.Items); err != nil {
			return nil, fmt.Errorf("scan recent order: %w", err)
		}
		o.Total = numericToDecimal(total)
		out = append(out, o)
	}
	return out, rows.Err()
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}
	val, err := n.Value()
	if err != nil || val == nil {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(val.(string))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric
	_ = n.Scan(d.StringFixed(2))
	return n
}
