package auth

import (
	"sort"

	"github.com/ApurvaSarkar/cafe-admin-portal-pro/internal/enum"
)

// Permission names an action gated by role.
type Permission string

const (
	ManageEmployees Permission = "employees:manage"
	ViewDashboard   Permission = "dashboard:view"
	ViewInventory   Permission = "inventory:view"
	TakeOrders      Permission = "orders:take"
)

// rolePermissions is the only place that maps roles to what they may do.
// Routing middleware and the /auth/me capability list both read from here.
var rolePermissions = map[string]map[Permission]bool{
	enum.RoleAdmin: {
		ManageEmployees: true,
		TakeOrders:      true,
	},
	enum.RoleEmployee: {
		ViewDashboard: true,
		ViewInventory: true,
		TakeOrders:    true,
	},
}

// Allows reports whether role grants p. Unknown roles grant nothing.
func Allows(role string, p Permission) bool {
	return rolePermissions[role][p]
}

// Permissions lists what role grants, sorted for stable output.
func Permissions(role string) []Permission {
	perms := make([]Permission, 0, len(rolePermissions[role]))
	for p := range rolePermissions[role] {
		perms = append(perms, p)
	}
	sort.Slice(perms, func(i, j int) bool { return perms[i] < perms[j] })
	return perms
}
