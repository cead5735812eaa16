package cafeclient

import "github.com/rymdrosten/cafeclient/session"

// GuardDecision defines a public type used by cafeclient APIs.
//
// GuardDecision instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type GuardDecision struct {
	Allowed bool
	// RedirectTo names the route to send the visitor to instead, or "" when
	// the denial should leave them where they are.
	RedirectTo string
}

// RouteGuard defines a public type used by cafeclient APIs.
//
// RouteGuard decides entry into routes reserved for elevated roles. A
// logged-out visitor is pointed at the account route to log in first; a
// logged-in visitor lacking the role is denied in place, since logging in
// again would change nothing.
type RouteGuard struct {
	sessions     *session.Store
	accountRoute string
	metrics      *Metrics
}

// CanActivate describes the canactivate operation and its observable behavior.
//
// CanActivate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (g *RouteGuard) CanActivate() GuardDecision {
	if !g.sessions.LoggedIn() {
		g.metrics.Inc(MetricGuardDenied)
		g.metrics.Inc(MetricGuardRedirected)
		return GuardDecision{Allowed: false, RedirectTo: g.accountRoute}
	}

	// A lost user record denies in place as well; logging in again would
	// not repair it, so no redirect.
	user, ok := g.sessions.CurrentUser()
	if !ok || !user.Role.Elevated() {
		g.metrics.Inc(MetricGuardDenied)
		return GuardDecision{Allowed: false}
	}

	g.metrics.Inc(MetricGuardAllowed)
	return GuardDecision{Allowed: true}
}
