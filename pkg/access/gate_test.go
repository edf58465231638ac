package access

import (
	"testing"

	"flowrelay/pkg/models"
)

type fakeSession struct {
	token string
	user  *models.User
}

func (f *fakeSession) Token() string      { return f.token }
func (f *fakeSession) User() *models.User { return f.user }

func userWith(role models.Role, status models.AccountStatus) *models.User {
	return &models.User{ID: 1, Email: "u@example.com", Role: role, AccountStatus: status}
}

func TestIsAuthenticated(t *testing.T) {
	g := New(&fakeSession{})
	if g.IsAuthenticated() {
		t.Fatal("empty session must not be authenticated")
	}
	g = New(&fakeSession{token: "tok"})
	if !g.IsAuthenticated() {
		t.Fatal("session with token must be authenticated")
	}
}

func TestRequireAuthenticatedRedirectsToEntry(t *testing.T) {
	d := New(&fakeSession{}).RequireAuthenticated()
	if d.Allowed {
		t.Fatal("unauthenticated access must be denied")
	}
	if d.Redirect != RouteEntry {
		t.Fatalf("redirect = %q, want %q", d.Redirect, RouteEntry)
	}
	if d.Notice != "" {
		t.Fatalf("expected silent redirect, got notice %q", d.Notice)
	}
}

func TestRequireRoleMismatchRedirectsToOwnDashboard(t *testing.T) {
	sess := &fakeSession{token: "tok", user: userWith(models.RoleClient, models.StatusApproved)}
	d := New(sess).RequireRole(models.RoleAdmin)

	if d.Allowed {
		t.Fatal("client must not pass an admin gate")
	}
	if d.Redirect != RouteClientDashboard {
		t.Fatalf("redirect = %q, want the client's own dashboard", d.Redirect)
	}
	if d.Notice == "" {
		t.Fatal("role mismatch must carry exactly one notice")
	}
}

func TestRequireRoleUnauthenticatedShortCircuits(t *testing.T) {
	d := New(&fakeSession{}).RequireRole(models.RoleAdmin)
	if d.Allowed || d.Redirect != RouteEntry {
		t.Fatalf("unauthenticated RequireRole = %+v, want entry redirect", d)
	}
	if d.Notice != "" {
		t.Fatal("missing auth must not produce a role notice")
	}
}

func TestRequireRoleMatch(t *testing.T) {
	sess := &fakeSession{token: "tok", user: userWith(models.RoleAdmin, models.StatusApproved)}
	if d := New(sess).RequireRole(models.RoleAdmin); !d.Allowed {
		t.Fatalf("admin must pass an admin gate, got %+v", d)
	}
}

func TestDashboardFor(t *testing.T) {
	cases := []struct {
		user *models.User
		want Route
	}{
		{nil, RouteEntry},
		{userWith(models.RoleClient, models.StatusApproved), RouteClientDashboard},
		{userWith(models.RoleDriver, models.StatusApproved), RouteDriverDashboard},
		{userWith(models.RoleAdmin, models.StatusApproved), RouteAdminDashboard},
		{userWith(models.Role("ghost"), models.StatusApproved), RouteEntry},
	}
	for _, tc := range cases {
		if got := DashboardFor(tc.user); got != tc.want {
			t.Errorf("DashboardFor(%v) = %q, want %q", tc.user, got, tc.want)
		}
	}
}

func TestApprovalStateIsTotal(t *testing.T) {
	cases := []struct {
		name string
		user *models.User
		want models.AccountStatus
	}{
		{"nil user", nil, models.StatusPending},
		{"empty status", &models.User{}, models.StatusPending},
		{"approved", userWith(models.RoleClient, models.StatusApproved), models.StatusApproved},
		{"rejected", userWith(models.RoleClient, models.StatusRejected), models.StatusRejected},
		{"suspended", userWith(models.RoleClient, models.StatusSuspended), models.StatusSuspended},
		{"unknown passes through", userWith(models.RoleClient, models.AccountStatus("frozen")), models.AccountStatus("frozen")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ApprovalState(tc.user); got != tc.want {
				t.Fatalf("ApprovalState = %q, want %q", got, tc.want)
			}
		})
	}
}
