package cafeclient

import "github.com/rymdrosten/cafeclient/session"

// Capabilities defines a public type used by cafeclient APIs.
//
// Capabilities answers "may the current session do X" questions from the
// live session state. Answers are advisory: the backend re-checks every
// mutation, so a wrong answer here mis-renders a button but never grants
// access.
type Capabilities struct {
	sessions *session.Store
}

// Role describes the role operation and its observable behavior.
//
// Role does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c Capabilities) Role() Role {
	user, ok := c.sessions.CurrentUser()
	if !ok {
		return RoleGuest
	}
	return session.ParseRole(string(user.Role))
}

// Elevated describes the elevated operation and its observable behavior.
//
// Elevated does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c Capabilities) Elevated() bool {
	return c.Role().Elevated()
}

// IsOwner reports whether the current session belongs to the given account.
//
// IsOwner does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c Capabilities) IsOwner(userID string) bool {
	if userID == "" {
		return false
	}
	user, ok := c.sessions.CurrentUser()
	return ok && user.ID == userID
}

// CanDeleteContent reports whether the session may delete content authored
// by the given account: authors delete their own, elevated roles delete
// anyone's.
//
// CanDeleteContent does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c Capabilities) CanDeleteContent(authorID string) bool {
	return c.IsOwner(authorID) || c.Elevated()
}

// CanManageMenu reports whether the session may create, edit, and delete
// menu products and categories.
//
// CanManageMenu does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c Capabilities) CanManageMenu() bool {
	return c.Elevated()
}

// CanManageUsers reports whether the session may browse and administer the
// account directory.
//
// CanManageUsers does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c Capabilities) CanManageUsers() bool {
	return c.Elevated()
}

// CanCreateAdmins reports whether the session may create admin accounts.
// Reserved for root.
//
// CanCreateAdmins does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c Capabilities) CanCreateAdmins() bool {
	return c.Role() == RoleRoot
}
