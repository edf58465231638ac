// Package access turns session and approval state into allow/redirect
// decisions. It never touches the network and never navigates itself:
// a Decision says where to go, the caller performs the move.
package access

import "flowrelay/pkg/models"

// Route names a screen the bot can navigate to.
type Route string

const (
	RouteEntry           Route = "entry"
	RouteClientDashboard Route = "client_dashboard"
	RouteDriverDashboard Route = "driver_dashboard"
	RouteAdminDashboard  Route = "admin_dashboard"
)

// SessionView is the read-only slice of the session the gate needs.
type SessionView interface {
	Token() string
	User() *models.User
}

type Decision struct {
	Allowed  bool
	Redirect Route
	Notice   string
}

func allow() Decision { return Decision{Allowed: true} }

func deny(redirect Route, notice string) Decision {
	return Decision{Redirect: redirect, Notice: notice}
}

type Gate struct {
	sess SessionView
}

func New(sess SessionView) *Gate {
	return &Gate{sess: sess}
}

func (g *Gate) IsAuthenticated() bool {
	return g.sess.Token() != ""
}

func (g *Gate) RoleIs(role models.Role) bool {
	user := g.sess.User()
	return user != nil && user.Role == role
}

// RequireAuthenticated is the guard every protected screen runs first.
func (g *Gate) RequireAuthenticated() Decision {
	if !g.IsAuthenticated() {
		return deny(RouteEntry, "")
	}
	return allow()
}

// RequireRole denies with exactly one notice and a redirect to the
// holder's own dashboard when the role does not match.
func (g *Gate) RequireRole(role models.Role) Decision {
	if d := g.RequireAuthenticated(); !d.Allowed {
		return d
	}
	if !g.RoleIs(role) {
		return deny(DashboardFor(g.sess.User()), "🚫 Access denied. This area is for "+string(role)+" accounts.")
	}
	return allow()
}

// DashboardFor is the routing table keyed by role, also used directly
// after login.
func DashboardFor(user *models.User) Route {
	if user == nil {
		return RouteEntry
	}
	switch user.Role {
	case models.RoleAdmin:
		return RouteAdminDashboard
	case models.RoleClient:
		return RouteClientDashboard
	case models.RoleDriver:
		return RouteDriverDashboard
	}
	return RouteEntry
}

// ApprovalState normalizes an account's approval status. It is total:
// an absent status reads as pending, anything else passes through raw
// so callers can surface unknown values explicitly.
func ApprovalState(user *models.User) models.AccountStatus {
	if user == nil || user.AccountStatus == "" {
		return models.StatusPending
	}
	return user.AccountStatus
}
