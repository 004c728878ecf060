// Package router decides whether a navigation may render, must wait, or must redirect.
package router

import (
	"fmt"
	"strings"

	"github.com/ytinsight/insight-client/internal/models"
	"github.com/ytinsight/insight-client/internal/session"
)

// Default destinations
const (
	LoginPath     = session.EntryPath
	DashboardPath = "/dashboard"
)

// Access is what a route demands of the session
type Access int

const (
	Public Access = iota
	RequireAuth
	RequireAdmin
)

// Route is one entry of the route table
type Route struct {
	Path   string
	Access Access
}

// Outcome of resolving a navigation
type Outcome int

const (
	Render Outcome = iota
	Loading
	Redirect
)

// Decision is the result of Resolve
type Decision struct {
	Outcome Outcome
	Route   Route
	Target  string // set when Outcome is Redirect
}

func (d Decision) String() string {
	switch d.Outcome {
	case Render:
		return "render " + d.Route.Path
	case Loading:
		return "loading " + d.Route.Path
	default:
		return fmt.Sprintf("redirect %s -> %s", d.Route.Path, d.Target)
	}
}

// Routes is the application route table; /admin/* entries need the ADMIN role
var Routes = []Route{
	{Path: "/login", Access: Public},
	{Path: "/register", Access: Public},
	{Path: "/dashboard", Access: RequireAuth},
	{Path: "/analytics", Access: RequireAuth},
	{Path: "/sentiment", Access: RequireAuth},
	{Path: "/community", Access: RequireAuth},
	{Path: "/ai-suggestion", Access: RequireAuth},
	{Path: "/settings", Access: RequireAuth},
	{Path: "/admin", Access: RequireAdmin},
	{Path: "/admin/users", Access: RequireAdmin},
	{Path: "/admin/ai", Access: RequireAdmin},
	{Path: "/admin/data", Access: RequireAdmin},
	{Path: "/admin/settings", Access: RequireAdmin},
	{Path: "/admin/support", Access: RequireAdmin},
}

// Lookup finds the route for path; unknown /admin paths still require admin,
// other unknown paths require authentication
func Lookup(path string) Route {
	for _, r := range Routes {
		if r.Path == path {
			return r
		}
	}
	if path == "/admin" || strings.HasPrefix(path, "/admin/") {
		return Route{Path: path, Access: RequireAdmin}
	}
	return Route{Path: path, Access: RequireAuth}
}

// Decide is the pure guard over a session snapshot
func Decide(snap session.Snapshot, route Route) Decision {
	if route.Access == Public {
		return Decision{Outcome: Render, Route: route}
	}
	if snap.Loading() {
		return Decision{Outcome: Loading, Route: route}
	}
	if snap.State != session.Authenticated || snap.User == nil {
		return Decision{Outcome: Redirect, Route: route, Target: LoginPath}
	}
	if route.Access == RequireAdmin && snap.User.Role != models.RoleAdmin {
		return Decision{Outcome: Redirect, Route: route, Target: DashboardPath}
	}
	return Decision{Outcome: Render, Route: route}
}

// SnapshotSource is anything that can report the session state
type SnapshotSource interface {
	Snapshot() session.Snapshot
}

// Gate resolves navigations against a live session
type Gate struct {
	sessions SnapshotSource
}

func NewGate(sessions SnapshotSource) *Gate {
	return &Gate{sessions: sessions}
}

func (g *Gate) Resolve(path string) Decision {
	return Decide(g.sessions.Snapshot(), Lookup(path))
}
