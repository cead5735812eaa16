package api

import (
	"context"
	"net/http"
	"net/url"
)

type reviewInput struct {
	Rating  int    `json:"rating"`
	Message string `json:"message"`
}

// PostReview adds a review on a product and returns the stored record.
// Requires a session; the backend allows one review per account per
// product.
func (c *Client) PostReview(ctx context.Context, productID string, rating int, message string) (Review, error) {
	var data struct {
		Review Review `json:"review"`
	}
	err := c.call(ctx, request{
		method: http.MethodPost,
		path:   "/api/reviews/post/" + url.PathEscape(productID),
		body:   reviewInput{Rating: rating, Message: message},
		route:  "reviews.post",
		authed: true,
	}, &data)
	return data.Review, err
}

// DeleteReview removes a review. Requires a session; the backend allows
// authors to delete their own reviews and elevated sessions to delete any.
func (c *Client) DeleteReview(ctx context.Context, reviewID string) error {
	return c.call(ctx, request{
		method: http.MethodDelete,
		path:   "/api/reviews/delete/" + url.PathEscape(reviewID),
		route:  "reviews.delete",
		authed: true,
	}, nil)
}

// CheckAlreadyPosted reports whether the session's account already reviewed
// the product: a nil error means no review exists yet, a backend rejection
// means one does.
func (c *Client) CheckAlreadyPosted(ctx context.Context, productID string) error {
	return c.call(ctx, request{
		method: http.MethodGet,
		path:   "/api/reviews/check/" + url.PathEscape(productID),
		route:  "reviews.check",
		authed: true,
	}, nil)
}
