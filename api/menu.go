package api

import (
	"context"
	"net/http"
	"net/url"
)

// ProductInput is the create/edit payload for a product. The backend
// derives the slug from the name.
type ProductInput struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// CategoryInput is the create/edit payload for a category.
type CategoryInput struct {
	Name string `json:"name"`
}

// Categories lists every menu category. Public.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var data struct {
		Categories []Category `json:"categories"`
	}
	err := c.call(ctx, request{
		method: http.MethodGet,
		path:   "/api/menu/categories",
		route:  "menu.categories",
	}, &data)
	return data.Categories, err
}

// Products lists one page of the full menu. Public.
func (c *Client) Products(ctx context.Context, page, limit int) (ProductListing, error) {
	var data ProductListing
	err := c.call(ctx, request{
		method: http.MethodGet,
		path:   "/api/menu",
		query:  pageQuery(page, limit),
		route:  "menu.products",
	}, &data)
	return data, err
}

// ProductsInCategory lists one page of a category's products, addressed by
// the category slug. Public.
func (c *Client) ProductsInCategory(ctx context.Context, categorySlug string, page, limit int) (ProductListing, error) {
	var data ProductListing
	err := c.call(ctx, request{
		method: http.MethodGet,
		path:   "/api/menu/category/" + url.PathEscape(categorySlug),
		query:  pageQuery(page, limit),
		route:  "menu.products_in_category",
	}, &data)
	return data, err
}

// Product fetches one product plus the requested page of its reviews,
// addressed by category and product slugs. Public.
func (c *Client) Product(ctx context.Context, categorySlug, productSlug string, page, limit int) (ProductPage, error) {
	var data ProductPage
	err := c.call(ctx, request{
		method: http.MethodGet,
		path:   "/api/menu/" + url.PathEscape(categorySlug) + "/" + url.PathEscape(productSlug),
		query:  pageQuery(page, limit),
		route:  "menu.product",
	}, &data)
	return data, err
}

// CreateProduct adds a product to the menu. Requires an elevated session.
func (c *Client) CreateProduct(ctx context.Context, input ProductInput) error {
	return c.call(ctx, request{
		method: http.MethodPost,
		path:   "/api/menu",
		body:   input,
		route:  "menu.create_product",
		authed: true,
	}, nil)
}

// EditProduct replaces a product's fields. Requires an elevated session.
func (c *Client) EditProduct(ctx context.Context, productID string, input ProductInput) error {
	return c.call(ctx, request{
		method: http.MethodPut,
		path:   "/api/menu/" + url.PathEscape(productID),
		body:   input,
		route:  "menu.edit_product",
		authed: true,
	}, nil)
}

// DeleteProduct removes a product and its reviews. Requires an elevated
// session.
func (c *Client) DeleteProduct(ctx context.Context, productID string) error {
	return c.call(ctx, request{
		method: http.MethodDelete,
		path:   "/api/menu/" + url.PathEscape(productID),
		route:  "menu.delete_product",
		authed: true,
	}, nil)
}

// CreateCategory adds a menu category. Requires an elevated session.
func (c *Client) CreateCategory(ctx context.Context, input CategoryInput) error {
	return c.call(ctx, request{
		method: http.MethodPost,
		path:   "/api/menu/categories",
		body:   input,
		route:  "menu.create_category",
		authed: true,
	}, nil)
}

// EditCategory renames a category. Requires an elevated session.
func (c *Client) EditCategory(ctx context.Context, categoryID string, input CategoryInput) error {
	return c.call(ctx, request{
		method: http.MethodPut,
		path:   "/api/menu/categories/" + url.PathEscape(categoryID),
		body:   input,
		route:  "menu.edit_category",
		authed: true,
	}, nil)
}

// DeleteCategory removes a category. Requires an elevated session.
func (c *Client) DeleteCategory(ctx context.Context, categoryID string) error {
	return c.call(ctx, request{
		method: http.MethodDelete,
		path:   "/api/menu/categories/" + url.PathEscape(categoryID),
		route:  "menu.delete_category",
		authed: true,
	}, nil)
}
