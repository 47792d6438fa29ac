// Package order builds point-of-sale orders: a cart of line items priced from
// the menu catalog, customized per the category schema, and submitted to a Sink.
package order

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/auth"
	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/menu"
	"github.com/shopspring/decimal"
)

// LineItem is one entry in the cart. Name and UnitPrice are copied from the
// menu item when the line is created and never change afterwards.
type LineItem struct {
	LineID         int64
	MenuItemID     int
	Category       menu.Category
	Name           string
	UnitPrice      decimal.Decimal
	Quantity       int
	Customizations map[string]string
}

// LineTotal is always Quantity × UnitPrice.
func (l LineItem) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func (l LineItem) clone() LineItem {
	c := l
	c.Customizations = make(map[string]string, len(l.Customizations))
	for k, v := range l.Customizations {
		c.Customizations[k] = v
	}
	return c
}

// Order is a point-in-time copy of the composer's state.
type Order struct {
	CustomerName  string
	CustomerPhone string
	Lines         []LineItem
	Total         decimal.Decimal
	Submitting    bool
}

// State names where an order-entry session is in its lifecycle.
type State string

const (
	StateEmpty      State = "empty"
	StateBuilding   State = "building"
	StateSubmitting State = "submitting"
)

// State derives the lifecycle state from the snapshot.
func (o Order) State() State {
	switch {
	case o.Submitting:
		return StateSubmitting
	case len(o.Lines) == 0:
		return StateEmpty
	}
	return StateBuilding
}

// Composer owns one order-entry session's cart. All methods are safe for
// concurrent use; the lock is not held while the sink runs.
type Composer struct {
	session  auth.Session
	sink     Sink
	notifier Notifier
	now      func() time.Time

	mu            sync.Mutex
	lines         []LineItem
	nextLineID    int64
	customerName  string
	customerPhone string
	submitting    bool
}

// NewComposer creates an empty order for the given session. A nil notifier
// discards notifications.
func NewComposer(session auth.Session, sink Sink, notifier Notifier) *Composer {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &Composer{
		session:  session,
		sink:     sink,
		notifier: notifier,
		now:      time.Now,
	}
}

// Session returns the actor this composer takes orders for.
func (c *Composer) Session() auth.Session { return c.session }

// AddItem appends a new line for item with quantity 1 and default
// customizations. Adding the same item twice creates two independent lines.
func (c *Composer) AddItem(item menu.Item) LineItem {
	c.mu.Lock()
	c.nextLineID++
	line := LineItem{
		LineID:         c.nextLineID,
		MenuItemID:     item.ID,
		Category:       item.Category,
		Name:           item.Name,
		UnitPrice:      item.UnitPrice,
		Quantity:       1,
		Customizations: item.Category.DefaultCustomizations(),
	}
	c.lines = append(c.lines, line)
	out := line.clone()
	c.mu.Unlock()

	c.notifier.Notify(c.session.UserID, itemAdded(item.Name))
	return out
}

// MaxQuantity is the largest quantity a single line can hold.
const MaxQuantity = 999

// UpdateQuantity adds delta to the line's quantity, clamped to
// [1, MaxQuantity]. It reports whether the line exists; an unknown line is
// left alone.
func (c *Composer) UpdateQuantity(lineID int64, delta int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(lineID)
	if i < 0 {
		return false
	}
	c.lines[i].Quantity = clampQuantity(c.lines[i].Quantity, delta)
	return true
}

// clampQuantity compares delta against the remaining headroom so the sum is
// never computed out of range.
func clampQuantity(q, delta int) int {
	switch {
	case delta > MaxQuantity-q:
		return MaxQuantity
	case delta < 1-q:
		return 1
	default:
		return q + delta
	}
}

// UpdateCustomization sets one customization of a line. The attribute must be
// part of the line's category schema and the value one of its options.
// An unknown line is a no-op and returns nil.
func (c *Composer) UpdateCustomization(lineID int64, attributeID, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(lineID)
	if i < 0 {
		return nil
	}
	attr, ok := c.lines[i].Category.Attribute(attributeID)
	if !ok {
		return ErrUnknownAttribute
	}
	if !attr.Allows(value) {
		return ErrInvalidValue
	}
	c.lines[i].Customizations[attributeID] = value
	return nil
}

// RemoveItem deletes a line. It reports whether the line existed.
func (c *Composer) RemoveItem(lineID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(lineID)
	if i < 0 {
		return false
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	return true
}

// Total is the sum of every line's total.
func (c *Composer) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return sumLines(c.lines)
}

// Lines returns copies of the current lines in insertion order.
func (c *Composer) Lines() []LineItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneLines(c.lines)
}

// Snapshot returns the whole order as it is now.
func (c *Composer) Snapshot() Order {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Order{
		CustomerName:  c.customerName,
		CustomerPhone: c.customerPhone,
		Lines:         cloneLines(c.lines),
		Total:         sumLines(c.lines),
		Submitting:    c.submitting,
	}
}

// SetCustomer records the customer details typed so far.
func (c *Composer) SetCustomer(name, phone string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.customerName = name
	c.customerPhone = phone
}

// Reset discards the cart and customer details. It has no effect while a
// submission is in flight.
func (c *Composer) Reset() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.submitting {
		return false
	}
	c.lines = nil
	c.customerName = ""
	c.customerPhone = ""
	return true
}

// Submit validates the order and hands it to the sink.
//
// The customer name is checked before the cart, so an empty name is reported
// even when the cart is also empty. On success the submitted lines and the
// customer details are cleared; on any error they are kept for a retry.
// While one Submit is waiting on the sink, others return ErrSubmitInProgress.
func (c *Composer) Submit(ctx context.Context, customerName, customerPhone string) (Receipt, error) {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return Receipt{}, ErrSubmitInProgress
	}

	c.customerName = customerName
	c.customerPhone = customerPhone

	var verr *ValidationError
	switch {
	case strings.TrimSpace(customerName) == "":
		verr = &ValidationError{Reason: MissingCustomerName}
	case len(c.lines) == 0:
		verr = &ValidationError{Reason: EmptyOrder}
	}
	if verr != nil {
		c.mu.Unlock()
		c.notifier.Notify(c.session.UserID, validationFailed(verr))
		return Receipt{}, verr
	}

	sub := Submission{
		Actor:         c.session,
		CustomerName:  strings.TrimSpace(customerName),
		CustomerPhone: strings.TrimSpace(customerPhone),
		Lines:         cloneLines(c.lines),
		Total:         sumLines(c.lines),
		SubmittedAt:   c.now(),
	}
	c.submitting = true
	c.mu.Unlock()

	receipt, err := c.sink.Submit(ctx, sub)

	c.mu.Lock()
	c.submitting = false
	if err != nil {
		var failure *SinkFailure
		if !errors.As(err, &failure) {
			failure = &SinkFailure{Reason: "order could not be placed", Err: err}
		}
		c.mu.Unlock()
		c.notifier.Notify(c.session.UserID, orderFailed(failure))
		return Receipt{}, failure
	}

	// Lines added while the sink was busy were not part of this order.
	submitted := make(map[int64]bool, len(sub.Lines))
	for _, l := range sub.Lines {
		submitted[l.LineID] = true
	}
	kept := c.lines[:0]
	for _, l := range c.lines {
		if !submitted[l.LineID] {
			kept = append(kept, l)
		}
	}
	c.lines = kept
	c.customerName = ""
	c.customerPhone = ""
	c.mu.Unlock()

	c.notifier.Notify(c.session.UserID, orderPlaced(sub.CustomerName))
	return receipt, nil
}

func (c *Composer) indexOf(lineID int64) int {
	for i := range c.lines {
		if c.lines[i].LineID == lineID {
			return i
		}
	}
	return -1
}

func sumLines(lines []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.LineTotal())
	}
	return total
}

func cloneLines(lines []LineItem) []LineItem {
	out := make([]LineItem, len(lines))
	for i, l := range lines {
		out[i] = l.clone()
	}
	return out
}
