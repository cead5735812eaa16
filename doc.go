// Package cafeclient is the client-side core of the Rymdrosten cafe
// ordering and review frontend. It owns the authenticated session lifecycle,
// role-based capability checks, route guarding, and the circular pagination
// controller that every list view shares, plus a typed REST client for the
// cafe backend.
//
// The package trusts backend-issued credential tokens and only manages their
// local lifecycle: persistence, scheduled expiry, and broadcast of login-state
// changes. It performs no cryptographic verification of the token itself —
// the backend remains the authorization boundary, and every capability
// predicate exposed here is advisory, for UI affordance only.
//
// # Architecture boundaries
//
// cafeclient is the public surface. It exposes [Client], [Builder], [Config],
// [Capabilities], [RouteGuard], and value types (MetricsSnapshot, AuditEvent,
// GuardDecision). The session state machine lives in the session subpackage,
// circular paging in paging, token expiry extraction in token, and the REST
// surface in api.
//
// # What this package must NOT do
//
//   - Verify token signatures or enforce authorization (backend concern).
//   - Retry failed backend calls (call sites surface the failure once).
//   - Let an error escape the session store or the route guard: both degrade
//     to the logged-out state instead.
package cafeclient
