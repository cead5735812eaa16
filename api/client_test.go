package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

type staticTokens string

func (s staticTokens) CurrentToken() string { return string(s) }

func writeEnvelope(t *testing.T, w http.ResponseWriter, status int, success bool, message string, data any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]any{
		"success": success,
		"message": message,
		"data":    data,
	}); err != nil {
		t.Errorf("encode envelope: %v", err)
	}
}

func newTestClient(t *testing.T, handler http.Handler, cfg Config) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg.BaseURL = srv.URL
	c, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestNewClientValidation(t *testing.T) {
	for _, base := range []string{"", "://bad", "not-a-url"} {
		if _, err := NewClient(Config{BaseURL: base}); err == nil {
			t.Fatalf("NewClient(%q) accepted an invalid base URL", base)
		}
	}
	if _, err := NewClient(Config{BaseURL: "http://localhost:3000"}); err != nil {
		t.Fatalf("NewClient rejected a valid base URL: %v", err)
	}
}

func TestLoginDecodesEnvelope(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/auth/login" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("missing X-Request-ID header")
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body["email"] != "ada@example.com" {
			t.Errorf("email = %q", body["email"])
		}
		writeEnvelope(t, w, http.StatusOK, true, "logged in", map[string]any{
			"token": "jwt-goes-here",
			"account": map[string]any{
				"id": "42", "firstname": "Ada", "lastname": "Lovelace", "role": "user",
			},
		})
	}), Config{})

	data, err := c.Login(context.Background(), "ada@example.com", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if data.Token != "jwt-goes-here" || data.Account.ID != "42" {
		t.Fatalf("LoginData = %+v", data)
	}
}

func TestBackendRejectionBecomesAPIError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusUnauthorized, false, "wrong password", nil)
	}), Config{})

	_, err := c.Login(context.Background(), "ada@example.com", "wrong")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized || apiErr.Message != "wrong password" {
		t.Fatalf("APIError = %+v", apiErr)
	}
}

func TestEnvelopeFailureWithOKStatusIsAPIError(t *testing.T) {
	// Some backends report failures inside a 200 envelope.
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusOK, false, "already reviewed", nil)
	}), Config{Tokens: staticTokens("tok")})

	err := c.CheckAlreadyPosted(context.Background(), "p1")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Message != "already reviewed" {
		t.Fatalf("message = %q", apiErr.Message)
	}
}

func TestTransportFailureWrapsBackendUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c, err := NewClient(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	if _, err := c.Categories(context.Background()); !errors.Is(err, ErrBackendUnavailable) {
		t.Fatalf("err = %v, want ErrBackendUnavailable", err)
	}
}

func TestAuthedEndpointAttachesBearerToken(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer session-token" {
			t.Errorf("Authorization = %q", got)
		}
		writeEnvelope(t, w, http.StatusOK, true, "", nil)
	}), Config{Tokens: staticTokens("session-token")})

	if err := c.DeleteReview(context.Background(), "r1"); err != nil {
		t.Fatalf("DeleteReview: %v", err)
	}
}

func TestPublicEndpointOmitsAuthorization(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("Authorization = %q on public endpoint", got)
		}
		writeEnvelope(t, w, http.StatusOK, true, "", map[string]any{"categories": []any{}})
	}), Config{Tokens: staticTokens("session-token")})

	if _, err := c.Categories(context.Background()); err != nil {
		t.Fatalf("Categories: %v", err)
	}
}

func TestCheckLoginUsesExplicitToken(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/users/check/42" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer candidate-token" {
			t.Errorf("Authorization = %q, want the candidate token", got)
		}
		writeEnvelope(t, w, http.StatusOK, true, "", nil)
	}), Config{Tokens: staticTokens("stored-token")})

	if err := c.CheckLogin(context.Background(), "42", "candidate-token"); err != nil {
		t.Fatalf("CheckLogin: %v", err)
	}
}

func TestProductsSendsPageQuery(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("page") != "3" || q.Get("limit") != "10" {
			t.Errorf("query = %v", q)
		}
		writeEnvelope(t, w, http.StatusOK, true, "", map[string]any{
			"pagination": map[string]int{"currentPage": 3, "pageSize": 10, "totalItems": 23, "totalPages": 3},
			"products":   []any{},
		})
	}), Config{})

	listing, err := c.Products(context.Background(), 3, 10)
	if err != nil {
		t.Fatalf("Products: %v", err)
	}
	if listing.Pagination.CurrentPage != 3 || listing.Pagination.TotalItems != 23 {
		t.Fatalf("pagination = %+v", listing.Pagination)
	}
}

func TestUsersFilterQuery(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("roles") != "admin,root" || q.Get("name") != "ada" {
			t.Errorf("query = %v", q)
		}
		writeEnvelope(t, w, http.StatusOK, true, "", map[string]any{
			"pagination": map[string]int{"currentPage": 1, "pageSize": 10, "totalItems": 1, "totalPages": 1},
			"users":      []any{},
		})
	}), Config{Tokens: staticTokens("tok")})

	if _, err := c.Users(context.Background(), UserFilter{Roles: "admin,root", Name: "ada"}, 1, 10); err != nil {
		t.Fatalf("Users: %v", err)
	}
}

func TestProductDecodesReviewsSection(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/menu/coffee/espresso" {
			t.Errorf("path = %q", r.URL.Path)
		}
		writeEnvelope(t, w, http.StatusOK, true, "", map[string]any{
			"product": map[string]any{
				"id":   "p1",
				"name": map[string]string{"normal": "Espresso", "slug": "espresso"},
			},
			"reviews_section": map[string]any{
				"pagination": map[string]int{"currentPage": 1, "pageSize": 5, "totalItems": 6, "totalPages": 2},
				"reviews": []any{
					map[string]any{"id": "r1", "rating": 5, "message": "great", "fullname": "Ada Lovelace"},
				},
			},
		})
	}), Config{})

	page, err := c.Product(context.Background(), "coffee", "espresso", 1, 5)
	if err != nil {
		t.Fatalf("Product: %v", err)
	}
	if page.Product.Name.Slug != "espresso" {
		t.Fatalf("product = %+v", page.Product)
	}
	if len(page.ReviewsSection.Reviews) != 1 || page.ReviewsSection.Pagination.TotalPages != 2 {
		t.Fatalf("reviews_section = %+v", page.ReviewsSection)
	}
}

func TestObserveHookSeesEveryRequest(t *testing.T) {
	var mu sync.Mutex
	type observed struct {
		route string
		err   error
	}
	var calls []observed

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/menu/categories" {
			writeEnvelope(t, w, http.StatusOK, true, "", map[string]any{"categories": []any{}})
			return
		}
		writeEnvelope(t, w, http.StatusUnauthorized, false, "no session", nil)
	}), Config{Observe: func(route string, d time.Duration, err error) {
		mu.Lock()
		defer mu.Unlock()
		calls = append(calls, observed{route: route, err: err})
	}})

	if _, err := c.Categories(context.Background()); err != nil {
		t.Fatalf("Categories: %v", err)
	}
	_ = c.DeleteUser(context.Background(), "42")

	mu.Lock()
	defer mu.Unlock()
	if len(calls) != 2 {
		t.Fatalf("observed %d calls, want 2", len(calls))
	}
	if calls[0].route != "menu.categories" || calls[0].err != nil {
		t.Fatalf("first observation = %+v", calls[0])
	}
	if calls[1].route != "users.delete" || calls[1].err == nil {
		t.Fatalf("second observation = %+v", calls[1])
	}
}
