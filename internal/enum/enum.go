package enum

// ── Roles (carried in access tokens) ──

const (
	RoleAdmin    = "ADMIN"
	RoleEmployee = "EMPLOYEE"
)

// ── Employee roster ──

const (
	EmployeeStatusActive   = "ACTIVE"
	EmployeeStatusInactive = "INACTIVE"
)

// ── Inventory (derived from quantity vs threshold) ──

const (
	StockStatusIn  = "In Stock"
	StockStatusLow = "Low Stock"
	StockStatusOut = "Out of Stock"
)

// ── Daily tasks ──

const (
	TaskStatusPending   = "pending"
	TaskStatusCompleted = "completed"
)

// ── Notifications pushed to the order screen ──

const (
	NotificationSuccess     = "success"
	NotificationInfo        = "info"
	NotificationDestructive = "destructive"
)

// ── Auth providers and order sinks (configuration) ──

const (
	AuthProviderMock = "mock"
	AuthProviderREST = "rest"
)

const (
	OrderSinkNotify   = "notify"
	OrderSinkPostgres = "postgres"
)
