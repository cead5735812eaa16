// Package paging drives page-at-a-time listing of backend collections with
// circular navigation: stepping past the last page wraps to the first and
// stepping before the first wraps to the last.
package paging

import "sync"

// Pagination mirrors the pagination block the backend attaches to every
// paged listing response.
type Pagination struct {
	CurrentPage int `json:"currentPage"`
	PageSize    int `json:"pageSize"`
	TotalItems  int `json:"totalItems"`
	TotalPages  int `json:"totalPages"`
}

// normalize corrects the backend's zero-pages answer for an empty
// collection, so navigation arithmetic never divides into page 0.
func (p Pagination) normalize() Pagination {
	if p.TotalPages < 1 {
		p.TotalPages = 1
	}
	if p.CurrentPage < 1 {
		p.CurrentPage = 1
	}
	return p
}

// FetchFunc loads one page from the backend. Implementations report the
// result back via [Pager.ApplyResponse], passing through the seq they were
// handed; the pager uses it to discard responses that arrive after a newer
// fetch was issued. FetchFunc runs outside the pager's lock and may block.
type FetchFunc func(page, pageSize int, seq uint64)

// Pager defines a public type used by cafeclient APIs.
//
// Pager tracks one listing's pagination state and issues fetches as the
// user steps through pages. Each listing on screen owns its own Pager;
// two listings never share one. Pager is safe for concurrent use.
type Pager struct {
	mu    sync.Mutex
	state Pagination
	fetch FetchFunc
	seq   uint64
}

// New creates a [Pager] positioned on page 1 of an unknown-size collection.
// No fetch is issued until the first navigation or Reload call.
func New(pageSize int, fetch FetchFunc) *Pager {
	if pageSize < 1 {
		pageSize = 1
	}
	return &Pager{
		state: Pagination{CurrentPage: 1, PageSize: pageSize, TotalPages: 1},
		fetch: fetch,
	}
}

// Advance moves one page forward, wrapping from the last page to the first,
// and issues a fetch for the new page.
func (p *Pager) Advance() {
	p.mu.Lock()
	if p.state.CurrentPage >= p.state.TotalPages {
		p.state.CurrentPage = 1
	} else {
		p.state.CurrentPage++
	}
	page, size, seq := p.state.CurrentPage, p.state.PageSize, p.nextSeqLocked()
	p.mu.Unlock()

	p.dispatch(page, size, seq)
}

// Retreat moves one page back, wrapping from the first page to the last,
// and issues a fetch for the new page.
func (p *Pager) Retreat() {
	p.mu.Lock()
	if p.state.CurrentPage <= 1 {
		p.state.CurrentPage = p.state.TotalPages
	} else {
		p.state.CurrentPage--
	}
	page, size, seq := p.state.CurrentPage, p.state.PageSize, p.nextSeqLocked()
	p.mu.Unlock()

	p.dispatch(page, size, seq)
}

// Reload re-fetches the current page without moving. Used after a mutation
// (a deleted product, a posted review) invalidates the page contents.
func (p *Pager) Reload() {
	p.mu.Lock()
	page, size, seq := p.state.CurrentPage, p.state.PageSize, p.nextSeqLocked()
	p.mu.Unlock()

	p.dispatch(page, size, seq)
}

// ApplyResponse installs the pagination block of a fetch response. It
// reports whether the response was applied: a response carrying a seq older
// than the latest issued fetch is stale and is discarded, so a slow page-2
// response can never overwrite the state of a later page-3 navigation.
func (p *Pager) ApplyResponse(seq uint64, pg Pagination) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if seq != p.seq {
		return false
	}
	p.state = pg.normalize()
	return true
}

// Replace installs backend pagination state directly, outside the fetch
// cycle, e.g. when a page arrives embedded in a larger response.
func (p *Pager) Replace(pg Pagination) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seq++
	p.state = pg.normalize()
}

// State returns a copy of the current pagination state.
func (p *Pager) State() Pagination {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Pager) nextSeqLocked() uint64 {
	p.seq++
	return p.seq
}

func (p *Pager) dispatch(page, size int, seq uint64) {
	if p.fetch == nil {
		return
	}
	p.fetch(page, size, seq)
}
