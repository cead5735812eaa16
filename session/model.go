package session

import "time"

// Role is the closed set of account roles the backend issues. Anything the
// backend sends outside this set is treated as RoleGuest.
type Role string

const (
	// RoleGuest is the implied role of an absent session.
	RoleGuest Role = ""
	// RoleUser is an exported constant or variable used by the cafe client.
	RoleUser Role = "user"
	// RoleAdmin is an exported constant or variable used by the cafe client.
	RoleAdmin Role = "admin"
	// RoleRoot is an exported constant or variable used by the cafe client.
	RoleRoot Role = "root"
)

// ParseRole maps a wire string onto the closed role set. Unknown strings
// collapse to RoleGuest so a typo on the backend can never grant access.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleUser, RoleAdmin, RoleRoot:
		return Role(s)
	default:
		return RoleGuest
	}
}

// Elevated reports whether the role carries administrative access.
func (r Role) Elevated() bool {
	return r == RoleAdmin || r == RoleRoot
}

// User defines a public type used by cafeclient APIs.
//
// User instances are issued by the backend on login and treated as immutable
// by the store; mutation goes through the accept/clear operations only.
type User struct {
	ID         string    `json:"id"`
	Firstname  string    `json:"firstname"`
	Lastname   string    `json:"lastname"`
	Email      string    `json:"email,omitempty"`
	Role       Role      `json:"role"`
	Registered time.Time `json:"registered,omitzero"`
}

// Fullname returns the display name used by review listings and banners.
func (u User) Fullname() string {
	if u.Firstname == "" {
		return u.Lastname
	}
	if u.Lastname == "" {
		return u.Firstname
	}
	return u.Firstname + " " + u.Lastname
}
