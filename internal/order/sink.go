package order

import (
	"context"
	"log/slog"
	"time"

	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/auth"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Submission is the finalized order handed to a Sink. Lines is a snapshot;
// the sink may keep it.
type Submission struct {
	Actor         auth.Session
	CustomerName  string
	CustomerPhone string
	Lines         []LineItem
	Total         decimal.Decimal
	SubmittedAt   time.Time
}

// Receipt acknowledges an accepted order.
type Receipt struct {
	OrderID    string    `json:"order_id"`
	AcceptedAt time.Time `json:"accepted_at"`
}

// Sink accepts finalized orders. A non-nil error means the order was not
// taken; returning a *SinkFailure lets the sink choose the reason shown.
type Sink interface {
	Submit(ctx context.Context, sub Submission) (Receipt, error)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, sub Submission) (Receipt, error)

func (f SinkFunc) Submit(ctx context.Context, sub Submission) (Receipt, error) {
	return f(ctx, sub)
}

// NotifySink accepts every order without persisting it. It stands in for a
// real order backend: the order is logged and a receipt ID assigned.
type NotifySink struct {
	now func() time.Time
}

func NewNotifySink() *NotifySink {
	return &NotifySink{now: time.Now}
}

func (s *NotifySink) Submit(ctx context.Context, sub Submission) (Receipt, error) {
	if err := ctx.Err(); err != nil {
		return Receipt{}, &SinkFailure{Reason: "order not sent", Err: err}
	}
	r := Receipt{OrderID: uuid.NewString(), AcceptedAt: s.now()}
	slog.Info("order placed",
		"order_id", r.OrderID,
		"customer", sub.CustomerName,
		"lines", len(sub.Lines),
		"total", sub.Total.StringFixed(2),
		"taken_by", sub.Actor.UserID,
	)
	return r, nil
}

// Recorder observes accepted orders.
type Recorder interface {
	Record(sub Submission, r Receipt)
}

// RecordingSink forwards to Next and reports every accepted order to Recorder.
type RecordingSink struct {
	Next     Sink
	Recorder Recorder
}

func (s RecordingSink) Submit(ctx context.Context, sub Submission) (Receipt, error) {
	r, err := s.Next.Submit(ctx, sub)
	if err != nil {
		return r, err
	}
	s.Recorder.Record(sub, r)
	return r, nil
}
