package api

import (
	"context"
	"net/http"
)

// Registration is the account-creation payload.
type Registration struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type adminRegistration struct {
	Registration
	Role string `json:"role"`
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new account with the default role. It does not log the
// account in.
func (c *Client) Register(ctx context.Context, reg Registration) error {
	return c.call(ctx, request{
		method: http.MethodPost,
		path:   "/api/auth/register",
		body:   reg,
		route:  "auth.register",
	}, nil)
}

// Login exchanges credentials for a token and the account record. The
// caller hands the result to the session store; Login itself changes no
// client state.
func (c *Client) Login(ctx context.Context, email, password string) (LoginData, error) {
	var data LoginData
	err := c.call(ctx, request{
		method: http.MethodPost,
		path:   "/api/auth/login",
		body:   credentials{Email: email, Password: password},
		route:  "auth.login",
	}, &data)
	return data, err
}

// CreateAdmin creates an account with the admin role. The backend only
// honors it for a root session.
func (c *Client) CreateAdmin(ctx context.Context, reg Registration) error {
	return c.call(ctx, request{
		method: http.MethodPost,
		path:   "/api/auth/root/register",
		body:   adminRegistration{Registration: reg, Role: "admin"},
		route:  "auth.create_admin",
		authed: true,
	}, nil)
}

// CheckLogin asks the backend whether tok is still accepted for userID.
// The token is passed explicitly rather than read from the TokenSource:
// this call runs while the session store is deciding whether to trust a
// replayed token, before any TokenSource would return it.
//
// A nil error means the session is valid. It satisfies the session
// package's Verifier interface.
func (c *Client) CheckLogin(ctx context.Context, userID, tok string) error {
	return c.call(ctx, request{
		method:        http.MethodGet,
		path:          "/api/users/check/" + userID,
		route:         "auth.check_login",
		tokenOverride: tok,
	}, nil)
}
