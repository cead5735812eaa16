package session

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/rymdrosten/cafeclient/token"
)

// State identifies the store's position in its lifecycle. Verifying only
// occurs while a replayed session is being confirmed with the backend at
// process start.
type State uint8

const (
	// StateLoggedOut is an exported constant or variable used by the cafe client.
	StateLoggedOut State = iota
	// StateVerifying is an exported constant or variable used by the cafe client.
	StateVerifying
	// StateLoggedIn is an exported constant or variable used by the cafe client.
	StateLoggedIn
)

// String describes the state for logs and tests.
func (s State) String() string {
	switch s {
	case StateVerifying:
		return "verifying"
	case StateLoggedIn:
		return "logged_in"
	default:
		return "logged_out"
	}
}

// Verifier confirms with the backend that a replayed token is still accepted
// for the given user. Implemented by the api client's CheckLogin.
type Verifier interface {
	CheckLogin(ctx context.Context, userID, tok string) error
}

// Store defines a public type used by cafeclient APIs.
//
// Store owns the process-wide session state: the authenticated user, the
// credential token, and the derived expiry instant. All mutation goes
// through Start, AcceptLogin, and Logout; every transition is written
// through to Storage and announced on the login-state broadcast. Store is
// safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	storage  Storage
	verifier Verifier

	state    State
	timer    *time.Timer
	timerGen uint64

	events *broadcast
	now    func() time.Time
}

// NewStore creates a session [Store] persisting into storage and using
// verifier to re-validate replayed sessions at start. verifier may be nil,
// in which case Start trusts the persisted session as long as its expiry
// has not passed.
func NewStore(storage Storage, verifier Verifier) *Store {
	return &Store{
		storage:  storage,
		verifier: verifier,
		events:   newBroadcast(),
		now:      time.Now,
	}
}

// SetVerifier installs the backend confirmation hook. The verifier is
// consulted by Start only, so SetVerifier must be called before Start; it
// exists because the api client that implements the verifier needs the
// store as its token source, and one of the two has to be built first.
func (s *Store) SetVerifier(v Verifier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.verifier = v
}

// Persisted reports whether storage currently holds a session token. It
// says nothing about the token's validity.
func (s *Store) Persisted(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.storage.Get(ctx, keyToken)
	return err == nil
}

// Start replays the persisted session from storage and settles the store
// into LoggedIn or LoggedOut. A missing or expired persisted session, a
// storage failure, and a backend rejection all degrade to LoggedOut with the
// storage cleared; Start never returns an error and never panics.
//
// The backend confirmation is the only blocking step; it honors ctx.
func (s *Store) Start(ctx context.Context) {
	s.mu.Lock()

	userRaw, userErr := s.storage.Get(ctx, keyUser)
	tokenRaw, tokenErr := s.storage.Get(ctx, keyToken)
	if userErr != nil || tokenErr != nil {
		s.clearLocked(ctx)
		s.mu.Unlock()
		return
	}

	var user User
	var tok string
	if err := json.Unmarshal([]byte(userRaw), &user); err != nil {
		s.clearLocked(ctx)
		s.mu.Unlock()
		return
	}
	if err := json.Unmarshal([]byte(tokenRaw), &tok); err != nil || tok == "" {
		s.clearLocked(ctx)
		s.mu.Unlock()
		return
	}
	if s.expiredLocked(ctx) {
		s.clearLocked(ctx)
		s.mu.Unlock()
		return
	}

	if s.verifier == nil {
		s.state = StateLoggedIn
		s.publishLocked(true)
		s.mu.Unlock()
		return
	}

	s.state = StateVerifying
	gen := s.timerGen
	s.mu.Unlock()

	err := s.verifier.CheckLogin(ctx, user.ID, tok)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateVerifying || gen != s.timerGen {
		// AcceptLogin or Logout raced the confirmation; their outcome wins.
		return
	}
	if err != nil {
		s.clearLocked(ctx)
		return
	}
	s.state = StateLoggedIn
	s.publishLocked(true)
}

// AcceptLogin installs a fresh backend-issued session: it derives the expiry
// instant from the token's exp claim, persists all three fields, arms the
// single-shot expiry timer (replacing any previous one), and broadcasts
// true.
//
// The caller guarantees the token is well-formed; a token that cannot be
// parsed is a programmer error and is reported as such, leaving the store
// untouched. A token whose expiry already passed forces an immediate logout
// instead of a LoggedIn transition.
func (s *Store) AcceptLogin(user User, tok string) error {
	expiresAt, err := token.ExpiryClaim(tok)
	if err != nil {
		return err
	}

	ctx := context.Background()

	s.mu.Lock()
	defer s.mu.Unlock()

	userJSON, err := json.Marshal(user)
	if err != nil {
		return err
	}
	tokenJSON, err := json.Marshal(tok)
	if err != nil {
		return err
	}

	if err := s.storage.Set(ctx, keyUser, string(userJSON)); err != nil {
		return err
	}
	if err := s.storage.Set(ctx, keyToken, string(tokenJSON)); err != nil {
		s.clearLocked(ctx)
		return err
	}
	if err := s.storage.Set(ctx, keyExpiresAt, expiresAt.Format(time.RFC3339Nano)); err != nil {
		s.clearLocked(ctx)
		return err
	}

	remaining := expiresAt.Sub(s.now())
	if remaining <= 0 {
		// Expired on arrival: forced logout, no LoggedIn transition.
		s.clearLocked(ctx)
		return nil
	}

	s.armTimerLocked(remaining)
	s.state = StateLoggedIn
	s.publishLocked(true)
	return nil
}

// Logout clears the persisted session, cancels any armed expiry timer, and
// broadcasts false. Logout is idempotent: the timer-driven logout and a
// manual one funnel into the same clear path, and whichever fires second is
// a no-op.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked(context.Background())
}

// CurrentUser returns the persisted user record. It is a pure read: an
// expired token does not force a logout here (that is CurrentToken's job).
func (s *Store) CurrentUser() (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userLocked(context.Background())
}

// CurrentToken returns the credential token, or "" when no valid session
// exists. A token past its expiry is never returned: the access triggers a
// definitive logout first. This lazy check is the only defense against a
// stale credential between timer ticks, e.g. after the process was
// suspended.
func (s *Store) CurrentToken() string {
	ctx := context.Background()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.expiredLocked(ctx) {
		s.clearLocked(ctx)
		return ""
	}
	raw, err := s.storage.Get(ctx, keyToken)
	if err != nil {
		return ""
	}
	var tok string
	if err := json.Unmarshal([]byte(raw), &tok); err != nil {
		return ""
	}
	return tok
}

// State returns the store's current lifecycle state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LoggedIn returns the most recent broadcast value.
func (s *Store) LoggedIn() bool {
	return s.events.current()
}

// Subscribe registers fn on the login-state broadcast. fn is invoked
// immediately with the latest value, then on every transition, in
// registration order. Callbacks fired by a transition run while the store's
// lock is held and must not call back into the Store; the replay at
// registration time carries no such restriction. The returned func cancels
// the subscription.
func (s *Store) Subscribe(fn func(loggedIn bool)) (cancel func()) {
	return s.events.subscribe(fn)
}

func (s *Store) userLocked(ctx context.Context) (User, bool) {
	raw, err := s.storage.Get(ctx, keyUser)
	if err != nil {
		return User{}, false
	}
	var user User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return User{}, false
	}
	return user, true
}

// expiredLocked reports whether the persisted expiry exists and has passed.
// A missing or unreadable expiry counts as expired: a session without a
// known expiry must not yield a token.
func (s *Store) expiredLocked(ctx context.Context) bool {
	raw, err := s.storage.Get(ctx, keyExpiresAt)
	if err != nil {
		return true
	}
	expiresAt, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return true
	}
	return !s.now().Before(expiresAt)
}

// clearLocked is the single idempotent logged-out path shared by manual
// logout, timer expiry, lazy expiry, and replay rejection.
func (s *Store) clearLocked(ctx context.Context) {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.timerGen++

	if err := s.storage.Delete(ctx, keyUser, keyToken, keyExpiresAt); err != nil {
		// Best-effort: a storage failure must not keep the session alive.
		log.Print("cafeclient: session storage clear failed")
	}

	s.state = StateLoggedOut
	s.publishLocked(false)
}

// armTimerLocked schedules the forced logout, replacing (not stacking) any
// previously armed timer. The generation check makes a stale timer that
// already fired but has not yet run a no-op.
func (s *Store) armTimerLocked(d time.Duration) {
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timerGen++
	gen := s.timerGen
	s.timer = time.AfterFunc(d, func() {
		s.expire(gen)
	})
}

func (s *Store) expire(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.timerGen {
		return
	}
	s.clearLocked(context.Background())
}

// publishLocked emits only on actual transitions of the broadcast value, so
// a logout after a logout stays silent and true is never observed after a
// logout without an intervening AcceptLogin.
func (s *Store) publishLocked(v bool) {
	if s.events.current() == v {
		return
	}
	s.events.publish(v)
}
