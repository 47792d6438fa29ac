package order

import "github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/enum"

// Notification is a transient message for the cashier's screen.
type Notification struct {
	Variant     string `json:"variant"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Notifier delivers notifications to a user. Notify must not block.
type Notifier interface {
	Notify(userID string, n Notification)
}

type nopNotifier struct{}

func (nopNotifier) Notify(string, Notification) {}

func itemAdded(name string) Notification {
	return Notification{
		Variant:     enum.NotificationInfo,
		Title:       "Item Added",
		Description: name + " added to order.",
	}
}

func orderPlaced(customer string) Notification {
	return Notification{
		Variant:     enum.NotificationSuccess,
		Title:       "Order Placed",
		Description: "Order for " + customer + " has been placed successfully.",
	}
}

func validationFailed(e *ValidationError) Notification {
	return Notification{
		Variant:     enum.NotificationDestructive,
		Title:       e.Title(),
		Description: e.Description(),
	}
}

func orderFailed(e *SinkFailure) Notification {
	return Notification{
		Variant:     enum.NotificationDestructive,
		Title:       "Order Failed",
		Description: "The order could not be placed (" + e.Reason + "). Please try again.",
	}
}
