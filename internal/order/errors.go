package order

import (
	"errors"
	"fmt"
)

// Errors returned by the composer.
var (
	ErrSubmitInProgress = errors.New("order submission already in progress")
	ErrUnknownAttribute = errors.New("attribute not defined for this item's category")
	ErrInvalidValue     = errors.New("value not allowed for this attribute")
)

// ValidationReason says which submission precondition failed.
type ValidationReason int

const (
	MissingCustomerName ValidationReason = iota + 1
	EmptyOrder
)

func (r ValidationReason) String() string {
	switch r {
	case MissingCustomerName:
		return "MissingCustomerName"
	case EmptyOrder:
		return "EmptyOrder"
	}
	return fmt.Sprintf("ValidationReason(%d)", int(r))
}

// ValidationError blocks a submission. The cart is left untouched.
type ValidationError struct {
	Reason ValidationReason
}

func (e *ValidationError) Error() string {
	return "order validation: " + e.Description()
}

// Title is the short heading shown to the cashier.
func (e *ValidationError) Title() string {
	switch e.Reason {
	case MissingCustomerName:
		return "Missing Information"
	case EmptyOrder:
		return "Empty Order"
	}
	return "Invalid Order"
}

// Description tells the cashier how to fix the order.
func (e *ValidationError) Description() string {
	switch e.Reason {
	case MissingCustomerName:
		return "Please enter customer name."
	case EmptyOrder:
		return "Please add items to the order."
	}
	return "The order could not be validated."
}

// SinkFailure means the order sink refused or could not take the order.
// It is retryable: the cart and customer details are preserved.
type SinkFailure struct {
	Reason string
	Err    error
}

func (e *SinkFailure) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("order sink: %s: %v", e.Reason, e.Err)
	}
	return "order sink: " + e.Reason
}

func (e *SinkFailure) Unwrap() error { return e.Err }
