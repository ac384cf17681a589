package project

import (
	"context"
	"log/slog"
	"slices"
	"sync"
)

// LoadState is the lifecycle of the catalog's project list.
type LoadState string

const (
	StateEmpty   LoadState = "empty"
	StateLoading LoadState = "loading"
	StateReady   LoadState = "ready"
	StateFailed  LoadState = "failed"
)

// Predicate names the rule that produced the filtered list. Dimension
// filters and free-text search are not composed: whichever ran last wins.
type Predicate string

const (
	PredicateNone    Predicate = "none"
	PredicateFilters Predicate = "filters"
	PredicateSearch  Predicate = "search"
)

// Options configures a Catalog.
type Options struct {
	PageSize int
	Logger   *slog.Logger
}

// Catalog owns one session's project list, the active predicate and the
// current page. It is safe for concurrent use.
type Catalog struct {
	mu       sync.RWMutex
	pageSize int
	logger   *slog.Logger

	state   LoadState
	loadErr error
	loadSeq uint64
	settled uint64

	all       []Project
	filtered  []Project
	filters   Filters
	query     string
	predicate Predicate
	page      int
}

// NewCatalog creates an empty catalog.
func NewCatalog(opts Options) *Catalog {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Catalog{
		pageSize:  pageSize,
		logger:    logger,
		state:     StateEmpty,
		predicate: PredicateNone,
		page:      1,
	}
}

// Load fetches the project list from src and replaces the catalog contents
// in one step. On failure the catalog is left empty and a *LoadError is
// returned. If another Load starts before this one finishes, this result is
// dropped and ErrSuperseded is returned.
func (c *Catalog) Load(ctx context.Context, src Source) error {
	if src == nil {
		return ErrNilSource
	}

	c.mu.Lock()
	c.loadSeq++
	seq := c.loadSeq
	if c.state != StateReady {
		c.state = StateLoading
	}
	c.mu.Unlock()

	projects, err := src.Fetch(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.loadSeq {
		c.logger.Debug("discarding stale load", "load", seq, "latest", c.loadSeq)
		return ErrSuperseded
	}
	c.settled = seq
	c.resetLocked()

	if err != nil {
		c.all = nil
		c.filtered = nil
		c.state = StateFailed
		c.loadErr = &LoadError{Err: err}
		c.logger.Warn("project load failed", "error", err)
		return c.loadErr
	}

	c.all = slices.Clone(projects)
	if c.all == nil {
		c.all = []Project{}
	}
	c.filtered = c.all
	c.state = StateReady
	c.loadErr = nil
	c.logger.Info("projects loaded", "count", len(c.all))
	return nil
}

// SetFilter constrains one dimension; an empty value removes the constraint.
// The filtered list is recomputed from all projects and the page resets to 1.
// Unknown dimensions are ignored and reported as false.
func (c *Catalog) SetFilter(d Dimension, value string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, ok := c.filters.With(d, value)
	if !ok {
		return false
	}
	c.filters = next
	c.filtered = next.Apply(c.all)
	c.predicate = PredicateFilters
	c.page = 1
	return true
}

// ClearFilters drops every dimension constraint and the search query.
func (c *Catalog) ClearFilters() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.resetLocked()
	c.filtered = c.all
}

// Search replaces the filtered list with the projects whose name, location
// or builder contains query. Dimension filters are kept but not applied.
func (c *Catalog) Search(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.query = query
	c.filtered = SearchProjects(c.all, query)
	c.predicate = PredicateSearch
	c.page = 1
}

// GoToPage moves to page n. Out-of-range pages are ignored and reported as
// false.
func (c *Catalog) GoToPage(n int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.goToPageLocked(n)
}

// NextPage advances one page unless already on the last.
func (c *Catalog) NextPage() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.goToPageLocked(c.page + 1)
}

// PrevPage goes back one page unless already on the first.
func (c *Catalog) PrevPage() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.goToPageLocked(c.page - 1)
}

// Page returns the current page slice.
func (c *Catalog) Page() PageSlice {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pageLocked()
}

// Pagination returns the pagination descriptor for the current page.
func (c *Catalog) Pagination() Pagination {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return newPagination(c.page, len(c.filtered), c.pageSize)
}

// CurrentPage returns the 1-based current page.
func (c *Catalog) CurrentPage() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.page
}

// TotalPages returns the number of pages of the filtered list; 0 when empty.
func (c *Catalog) TotalPages() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return TotalPages(len(c.filtered), c.pageSize)
}

// PageSize returns the fixed page size.
func (c *Catalog) PageSize() int {
	return c.pageSize
}

// Filters returns the active dimension filters.
func (c *Catalog) Filters() Filters {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filters
}

// Query returns the active search query.
func (c *Catalog) Query() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.query
}

// Predicate returns the rule that produced the filtered list.
func (c *Catalog) Predicate() Predicate {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.predicate
}

// State returns the load state.
func (c *Catalog) State() LoadState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Loading reports whether a load is in flight.
func (c *Catalog) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loadSeq != c.settled
}

// Err returns the error of the last load, if it failed.
func (c *Catalog) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loadErr
}

// All returns a copy of every loaded project.
func (c *Catalog) All() []Project {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.all)
}

// Filtered returns a copy of the filtered list.
func (c *Catalog) Filtered() []Project {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.filtered)
}

// Facets returns the selectable values per dimension over all projects.
func (c *Catalog) Facets() Facets {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return BuildFacets(c.all)
}

// View is a consistent snapshot of everything a renderer needs.
type View struct {
	State      LoadState  `json:"state"`
	Loading    bool       `json:"loading"`
	Error      string     `json:"error,omitempty"`
	Predicate  Predicate  `json:"predicate"`
	Filters    Filters    `json:"filters"`
	Query      string     `json:"query"`
	Page       PageSlice  `json:"page"`
	Summary    string     `json:"summary"`
	Pagination Pagination `json:"pagination"`
}

// View returns a snapshot of the catalog taken under a single lock.
func (c *Catalog) View() View {
	c.mu.RLock()
	defer c.mu.RUnlock()

	page := c.pageLocked()
	v := View{
		State:      c.state,
		Loading:    c.loadSeq != c.settled,
		Predicate:  c.predicate,
		Filters:    c.filters,
		Query:      c.query,
		Page:       page,
		Summary:    page.Summary(),
		Pagination: newPagination(c.page, len(c.filtered), c.pageSize),
	}
	if c.loadErr != nil {
		v.Error = c.loadErr.Error()
	}
	return v
}

func (c *Catalog) resetLocked() {
	c.filters = Filters{}
	c.query = ""
	c.predicate = PredicateNone
	c.page = 1
}

func (c *Catalog) goToPageLocked(n int) bool {
	last := max(1, TotalPages(len(c.filtered), c.pageSize))
	if n < 1 || n > last {
		return false
	}
	c.page = n
	return true
}

func (c *Catalog) pageLocked() PageSlice {
	if len(c.filtered) == 0 {
		return PageSlice{Outcome: c.emptyOutcomeLocked(), Items: []Card{}}
	}
	return slicePage(c.filtered, c.page, c.pageSize)
}

func (c *Catalog) emptyOutcomeLocked() Outcome {
	switch c.state {
	case StateReady:
		if len(c.all) == 0 {
			return OutcomeEmptyCatalog
		}
		return OutcomeNoMatches
	case StateFailed:
		return OutcomeLoadFailed
	case StateLoading:
		return OutcomeLoading
	default:
		return OutcomeNotLoaded
	}
}
