package api

import (
	"time"

	"github.com/rymdrosten/cafeclient/paging"
	"github.com/rymdrosten/cafeclient/session"
)

// NamedSlug is the backend's two-form name: the display form and the
// URL-safe slug the menu routes are addressed by.
type NamedSlug struct {
	Normal string `json:"normal"`
	Slug   string `json:"slug"`
}

// Category defines a public type used by cafeclient APIs.
type Category struct {
	ID      string    `json:"id"`
	Name    NamedSlug `json:"name"`
	Created time.Time `json:"created,omitzero"`
	Updated time.Time `json:"updated,omitzero"`
}

// CategoryRef is the embedded category reference a product carries.
type CategoryRef struct {
	ID   string    `json:"id"`
	Name NamedSlug `json:"name"`
}

// Product defines a public type used by cafeclient APIs.
type Product struct {
	ID          string      `json:"id"`
	Name        NamedSlug   `json:"name"`
	InCategory  CategoryRef `json:"inCategory"`
	Description string      `json:"description"`
	Price       float64     `json:"price"`
	Rating      float64     `json:"rating"`
	Created     time.Time   `json:"created,omitzero"`
	Updated     time.Time   `json:"updated,omitzero"`
}

// Review defines a public type used by cafeclient APIs.
type Review struct {
	ID        string    `json:"id"`
	CreatedBy string    `json:"createdBy"`
	Rating    int       `json:"rating"`
	Message   string    `json:"message"`
	Fullname  string    `json:"fullname"`
	Posted    time.Time `json:"posted,omitzero"`
	Edited    time.Time `json:"edited,omitzero"`
}

// ReviewsSection is the paged review block the backend embeds in product
// and profile responses.
type ReviewsSection struct {
	Pagination paging.Pagination `json:"pagination"`
	Reviews    []Review          `json:"reviews"`
}

// ProductPage is a product detail response: the product plus the requested
// page of its reviews.
type ProductPage struct {
	Product        Product        `json:"product"`
	ReviewsSection ReviewsSection `json:"reviews_section"`
}

// ProductListing is one page of a product collection.
type ProductListing struct {
	Pagination paging.Pagination `json:"pagination"`
	Products   []Product         `json:"products"`
}

// UserListing is one page of the account directory.
type UserListing struct {
	Pagination paging.Pagination `json:"pagination"`
	Users      []session.User    `json:"users"`
}

// Profile is an account detail response: the account plus the first page of
// reviews it posted.
type Profile struct {
	Account        session.User   `json:"account"`
	ReviewsSection ReviewsSection `json:"reviews_section"`
}

// LoginData is the payload of a successful login.
type LoginData struct {
	Token   string       `json:"token"`
	Account session.User `json:"account"`
}
