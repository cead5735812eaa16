package cafeclient

import "errors"

var (
	// ErrClientNotReady is an exported constant or variable used by the cafe client.
	ErrClientNotReady = errors.New("client not initialized")
	// ErrNotLoggedIn is an exported constant or variable used by the cafe client.
	ErrNotLoggedIn = errors.New("not logged in")
	// ErrLoginFailed is an exported constant or variable used by the cafe client.
	ErrLoginFailed = errors.New("login failed")
	// ErrRegistrationFailed is an exported constant or variable used by the cafe client.
	ErrRegistrationFailed = errors.New("registration failed")
	// ErrTokenMalformed is an exported constant or variable used by the cafe client.
	ErrTokenMalformed = errors.New("malformed credential token")
)
