package api

import (
	"context"
	"net/http"
	"net/url"
)

// UserFilter narrows the account directory listing. Zero-value fields are
// omitted from the query.
type UserFilter struct {
	// Roles is a comma-separated role filter, e.g. "admin,root".
	Roles string
	// Name matches against first and last names.
	Name string
}

// UserEdit is the account-update payload. Email and CurrentPassword are
// optional; the backend demands CurrentPassword when the session edits its
// own account.
type UserEdit struct {
	Firstname       string `json:"firstname"`
	Lastname        string `json:"lastname"`
	Email           string `json:"email,omitempty"`
	CurrentPassword string `json:"currentPassword,omitempty"`
}

// Profile fetches an account plus the first page of reviews it posted.
// Requires a session.
func (c *Client) Profile(ctx context.Context, userID string) (Profile, error) {
	q := url.Values{}
	q.Set("id", userID)

	var data Profile
	err := c.call(ctx, request{
		method: http.MethodGet,
		path:   "/api/users/profile",
		query:  q,
		route:  "users.profile",
		authed: true,
	}, &data)
	return data, err
}

// Users lists one page of the account directory. Requires an elevated
// session.
func (c *Client) Users(ctx context.Context, filter UserFilter, page, limit int) (UserListing, error) {
	q := pageQuery(page, limit)
	if filter.Roles != "" {
		q.Set("roles", filter.Roles)
	}
	if filter.Name != "" {
		q.Set("name", filter.Name)
	}

	var data UserListing
	err := c.call(ctx, request{
		method: http.MethodGet,
		path:   "/api/users/",
		query:  q,
		route:  "users.list",
		authed: true,
	}, &data)
	return data, err
}

// EditUser updates an account. Requires a session; the backend decides
// whether that session may edit the target.
func (c *Client) EditUser(ctx context.Context, userID string, edit UserEdit) error {
	return c.call(ctx, request{
		method: http.MethodPut,
		path:   "/api/users/user/" + url.PathEscape(userID),
		body:   edit,
		route:  "users.edit",
		authed: true,
	}, nil)
}

// DeleteUser removes an account. Requires a session; the backend decides
// whether that session may delete the target.
func (c *Client) DeleteUser(ctx context.Context, userID string) error {
	return c.call(ctx, request{
		method: http.MethodDelete,
		path:   "/api/users/user/" + url.PathEscape(userID),
		route:  "users.delete",
		authed: true,
	}, nil)
}
