package cafeclient

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rymdrosten/cafeclient/api"
	"github.com/rymdrosten/cafeclient/paging"
	"github.com/rymdrosten/cafeclient/session"
	"github.com/rymdrosten/cafeclient/validation"
)

const (
	auditEventLoginSuccess        = "login_success"
	auditEventLoginFailure        = "login_failure"
	auditEventRegisterSuccess     = "register_success"
	auditEventRegisterFailure     = "register_failure"
	auditEventLogout              = "logout"
	auditEventSessionRestored     = "session_restored"
	auditEventSessionRejected     = "session_replay_rejected"
	auditEventSessionExpired      = "session_expired"
	auditEventAdminAccountCreated = "admin_account_created"
)

// Client defines a public type used by cafeclient APIs.
//
// Client is the facade over the session store, the route guard, the
// capability checker, and the REST surface. Construct one via [New] and its
// builder; the zero value is not usable. Client is safe for concurrent use.
type Client struct {
	config   Config
	sessions *session.Store
	backend  *api.Client
	metrics  *Metrics
	audit    *auditDispatcher

	unsubscribe func()

	// wasLoggedIn and manualLogout let onLoginChange attribute each
	// logged-out transition to an explicit Logout or to token expiry.
	wasLoggedIn  atomic.Bool
	manualLogout atomic.Bool

	closed    atomic.Bool
	closeOnce sync.Once
}

// Start describes the start operation and its observable behavior.
//
// Start replays a persisted session, confirms it with the backend, and
// settles the client into a definitive login state. Call it once, before
// serving any user interaction.
func (c *Client) Start(ctx context.Context) {
	persisted := c.sessions.Persisted(ctx)

	c.sessions.Start(ctx)

	if c.sessions.LoggedIn() {
		c.metrics.Inc(MetricSessionRestored)
		user, _ := c.sessions.CurrentUser()
		c.emitAudit(auditEventSessionRestored, user.ID, true, "")
		return
	}
	if persisted {
		c.metrics.Inc(MetricSessionReplayRejected)
		c.emitAudit(auditEventSessionRejected, "", false, "")
	}
}

// Login describes the login operation and its observable behavior.
//
// Login may return an error when input validation, dependency calls, or security checks fail.
// Login exchanges credentials for a session. On success the account is
// returned, the session is persisted, and the login-state broadcast emits
// true.
func (c *Client) Login(ctx context.Context, email, password string) (User, error) {
	if c.closed.Load() {
		return User{}, ErrClientNotReady
	}

	data, err := c.backend.Login(ctx, email, password)
	if err != nil {
		c.metrics.Inc(MetricLoginFailure)
		c.emitAudit(auditEventLoginFailure, "", false, err.Error())
		return User{}, fmt.Errorf("%w: %v", ErrLoginFailed, err)
	}

	if err := c.sessions.AcceptLogin(data.Account, data.Token); err != nil {
		c.metrics.Inc(MetricLoginFailure)
		c.emitAudit(auditEventLoginFailure, data.Account.ID, false, err.Error())
		return User{}, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}

	c.metrics.Inc(MetricLoginSuccess)
	c.emitAudit(auditEventLoginSuccess, data.Account.ID, true, "")
	return data.Account, nil
}

// Register describes the register operation and its observable behavior.
//
// Register may return an error when input validation, dependency calls, or security checks fail.
// Register validates the form locally before sending it, so obviously bad
// input never costs a round trip.
func (c *Client) Register(ctx context.Context, reg Registration) error {
	if c.closed.Load() {
		return ErrClientNotReady
	}

	if msgs := validation.Registration(reg.Firstname, reg.Lastname, reg.Email, reg.Password); len(msgs) > 0 {
		c.metrics.Inc(MetricRegisterFailure)
		return fmt.Errorf("%w: %s", ErrRegistrationFailed, strings.Join(msgs, " "))
	}

	if err := c.backend.Register(ctx, reg); err != nil {
		c.metrics.Inc(MetricRegisterFailure)
		c.emitAudit(auditEventRegisterFailure, "", false, err.Error())
		return fmt.Errorf("%w: %v", ErrRegistrationFailed, err)
	}

	c.metrics.Inc(MetricRegisterSuccess)
	c.emitAudit(auditEventRegisterSuccess, "", true, "")
	return nil
}

// RegisterAndLogin describes the registerandlogin operation and its observable behavior.
//
// RegisterAndLogin may return an error when input validation, dependency calls, or security checks fail.
func (c *Client) RegisterAndLogin(ctx context.Context, reg Registration) (User, error) {
	if err := c.Register(ctx, reg); err != nil {
		return User{}, err
	}
	return c.Login(ctx, reg.Email, reg.Password)
}

// CreateAdmin describes the createadmin operation and its observable behavior.
//
// CreateAdmin may return an error when input validation, dependency calls, or security checks fail.
// The backend only honors it for a root session; the local role check just
// fails faster.
func (c *Client) CreateAdmin(ctx context.Context, reg Registration) error {
	if c.closed.Load() {
		return ErrClientNotReady
	}
	if !c.sessions.LoggedIn() {
		return ErrNotLoggedIn
	}

	if err := c.backend.CreateAdmin(ctx, reg); err != nil {
		return err
	}
	user, _ := c.sessions.CurrentUser()
	c.emitAudit(auditEventAdminAccountCreated, user.ID, true, "")
	return nil
}

// Logout describes the logout operation and its observable behavior.
//
// Logout clears the session and broadcasts false. Calling it while logged
// out is a no-op.
func (c *Client) Logout() {
	if c.sessions.State() == session.StateLoggedIn {
		c.manualLogout.Store(true)
	}
	c.sessions.Logout()
}

// CurrentUser describes the currentuser operation and its observable behavior.
//
// CurrentUser does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) CurrentUser() (User, bool) {
	return c.sessions.CurrentUser()
}

// CurrentToken describes the currenttoken operation and its observable behavior.
//
// CurrentToken can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) CurrentToken() string {
	return c.sessions.CurrentToken()
}

// LoggedIn describes the loggedin operation and its observable behavior.
//
// LoggedIn does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) LoggedIn() bool {
	return c.sessions.LoggedIn()
}

// SessionState describes the sessionstate operation and its observable behavior.
//
// SessionState does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) SessionState() SessionState {
	return c.sessions.State()
}

// Subscribe describes the subscribe operation and its observable behavior.
//
// Subscribe registers fn on the login-state broadcast; fn immediately
// receives the latest value. The returned func cancels the subscription.
func (c *Client) Subscribe(fn func(loggedIn bool)) (cancel func()) {
	return c.sessions.Subscribe(fn)
}

// Capabilities describes the capabilities operation and its observable behavior.
//
// Capabilities does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) Capabilities() Capabilities {
	return Capabilities{sessions: c.sessions}
}

// Guard describes the guard operation and its observable behavior.
//
// Guard does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) Guard() *RouteGuard {
	return &RouteGuard{
		sessions:     c.sessions,
		accountRoute: c.config.Guard.AccountRoute,
		metrics:      c.metrics,
	}
}

// API describes the api operation and its observable behavior.
//
// API exposes the full REST surface for callers that need endpoints the
// facade has no shorthand for.
func (c *Client) API() *api.Client {
	return c.backend
}

// NewPager describes the newpager operation and its observable behavior.
//
// NewPager creates an independent pagination controller with the configured
// default page size. Each on-screen listing gets its own.
func (c *Client) NewPager(fetch paging.FetchFunc) *paging.Pager {
	return paging.New(c.config.Paging.DefaultPageSize, fetch)
}

// Metrics describes the metrics operation and its observable behavior.
//
// Metrics does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) Metrics() *Metrics {
	return c.metrics
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
//
// MetricsSnapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) MetricsSnapshot() MetricsSnapshot {
	return c.metrics.Snapshot()
}

// AuditDropped describes the auditdropped operation and its observable behavior.
//
// AuditDropped does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) AuditDropped() uint64 {
	return c.audit.Dropped()
}

// Close describes the close operation and its observable behavior.
//
// Close releases the audit dispatcher and detaches the client from the
// login-state broadcast. The session itself stays persisted.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		if c.unsubscribe != nil {
			c.unsubscribe()
		}
		c.audit.Close()
	})
}

// onLoginChange attributes each logged-out transition to its cause. It runs
// on the broadcast path, so it must not call back into the session store.
func (c *Client) onLoginChange(loggedIn bool) {
	was := c.wasLoggedIn.Swap(loggedIn)
	if loggedIn || !was {
		return
	}

	if c.manualLogout.Swap(false) {
		c.metrics.Inc(MetricLogout)
		c.emitAudit(auditEventLogout, "", true, "")
		return
	}
	c.metrics.Inc(MetricSessionExpired)
	c.emitAudit(auditEventSessionExpired, "", true, "")
}

func (c *Client) emitAudit(eventType, userID string, success bool, errMsg string) {
	if c.audit == nil {
		return
	}
	c.audit.Emit(context.Background(), AuditEvent{
		Timestamp: time.Now(),
		EventType: eventType,
		UserID:    userID,
		Success:   success,
		Error:     errMsg,
	})
}
