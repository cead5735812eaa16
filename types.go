package cafeclient

import (
	"github.com/rymdrosten/cafeclient/api"
	"github.com/rymdrosten/cafeclient/paging"
	"github.com/rymdrosten/cafeclient/session"
)

// User defines a public type used by cafeclient APIs.
//
// User is the session package's account record, re-exported so callers of
// the facade never import subpackages for everyday work.
type User = session.User

// Role defines a public type used by cafeclient APIs.
type Role = session.Role

const (
	// RoleGuest is an exported constant or variable used by the cafe client.
	RoleGuest = session.RoleGuest
	// RoleUser is an exported constant or variable used by the cafe client.
	RoleUser = session.RoleUser
	// RoleAdmin is an exported constant or variable used by the cafe client.
	RoleAdmin = session.RoleAdmin
	// RoleRoot is an exported constant or variable used by the cafe client.
	RoleRoot = session.RoleRoot
)

// SessionState defines a public type used by cafeclient APIs.
type SessionState = session.State

const (
	// SessionLoggedOut is an exported constant or variable used by the cafe client.
	SessionLoggedOut = session.StateLoggedOut
	// SessionVerifying is an exported constant or variable used by the cafe client.
	SessionVerifying = session.StateVerifying
	// SessionLoggedIn is an exported constant or variable used by the cafe client.
	SessionLoggedIn = session.StateLoggedIn
)

// Category defines a public type used by cafeclient APIs.
type Category = api.Category

// Product defines a public type used by cafeclient APIs.
type Product = api.Product

// Review defines a public type used by cafeclient APIs.
type Review = api.Review

// Pagination defines a public type used by cafeclient APIs.
type Pagination = paging.Pagination

// Registration defines a public type used by cafeclient APIs.
type Registration = api.Registration

// APIError defines a public type used by cafeclient APIs.
type APIError = api.APIError
