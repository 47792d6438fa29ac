// Package dashboard assembles the employee home screen: today's tasks and
// the most recent orders.
package dashboard

import (
	"strings"
	"sync"
	"time"

	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/enum"
	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/order"
	"github.com/shopspring/decimal"
)

// Task is a scheduled chore for the shift.
type Task struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status"`
	Time   string `json:"time"`
}

// TaskCounts summarizes the task list.
type TaskCounts struct {
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}

// DefaultTasks is the daily checklist.
func DefaultTasks() []Task {
	return []Task{
		{ID: 1, Title: "Clean espresso machine", Status: enum.TaskStatusCompleted, Time: "09:00 AM"},
		{ID: 2, Title: "Restock coffee beans", Status: enum.TaskStatusPending, Time: "10:30 AM"},
		{ID: 3, Title: "Update daily specials board", Status: enum.TaskStatusPending, Time: "11:00 AM"},
		{ID: 4, Title: "Inventory check - milk products", Status: enum.TaskStatusCompleted, Time: "02:00 PM"},
	}
}

func CountTasks(tasks []Task) TaskCounts {
	var c TaskCounts
	for _, t := range tasks {
		if t.Status == enum.TaskStatusCompleted {
			c.Completed++
		} else {
			c.Pending++
		}
	}
	return c
}

// RecentOrder is a one-line summary of a placed order.
type RecentOrder struct {
	ID       string          `json:"id"`
	Customer string          `json:"customer"`
	Items    string          `json:"items"`
	Total    decimal.Decimal `json:"total"`
	PlacedAt time.Time       `json:"placed_at"`
	TakenBy  string          `json:"taken_by,omitempty"`
}

// RecentOrders keeps the last few placed orders, newest first.
// It implements order.Recorder.
type RecentOrders struct {
	mu     sync.Mutex
	limit  int
	orders []RecentOrder
}

func NewRecentOrders(limit int, seed []RecentOrder) *RecentOrders {
	r := &RecentOrders{limit: limit}
	for i := len(seed) - 1; i >= 0; i-- {
		r.push(seed[i])
	}
	return r
}

// Record adds an accepted order to the front of the list.
func (r *RecentOrders) Record(sub order.Submission, rc order.Receipt) {
	names := make([]string, len(sub.Lines))
	for i, l := range sub.Lines {
		names[i] = l.Name
		if l.Quantity > 1 {
			names[i] = l.Name + " x" + decimal.NewFromInt(int64(l.Quantity)).String()
		}
	}
	r.push(RecentOrder{
		ID:       rc.OrderID,
		Customer: sub.CustomerName,
		Items:    strings.Join(names, ", "),
		Total:    sub.Total,
		PlacedAt: rc.AcceptedAt,
		TakenBy:  sub.Actor.Name,
	})
}

func (r *RecentOrders) push(o RecentOrder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = append([]RecentOrder{o}, r.orders...)
	if len(r.orders) > r.limit {
		r.orders = r.orders[:r.limit]
	}
}

// List returns the recorded orders, newest first.
func (r *RecentOrders) List() []RecentOrder {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]RecentOrder, len(r.orders))
	copy(out, r.orders)
	return out
}

func at(clock string) time.Time {
	t, err := time.Parse(time.Kitchen, clock)
	if err != nil {
		panic(err)
	}
	return t
}

// SampleRecentOrders are shown until real orders arrive.
func SampleRecentOrders() []RecentOrder {
	return []RecentOrder{
		{ID: "ORD003", Customer: "Emily Davis", Items: "Americano, Danish", Total: decimal.RequireFromString("5.25"), PlacedAt: at("11:35AM")},
		{ID: "ORD002", Customer: "Mike Chen", Items: "Cappuccino, Croissant", Total: decimal.RequireFromString("6.75"), PlacedAt: at("11:20AM")},
		{ID: "ORD001", Customer: "Sarah Johnson", Items: "Large Latte, Blueberry Muffin", Total: decimal.RequireFromString("8.50"), PlacedAt: at("10:45AM")},
	}
}
