// Package listing implements the shared state machine behind every
// paginated, searchable, sortable, editable resource listing: query
// parameters, the fetched page, and the create/edit form draft for one
// resource type at a time.
package listing

import (
	"context"
	"strings"
	"sync"

	"github.com/selfcare/selfcare/internal/platform/apperr"
)

// Resource is the minimum a listed item must expose to the controller.
type Resource interface {
	// Key is the server-assigned identifier.
	Key() int
	// Label is the required display name; submitting a draft with an
	// empty label fails locally.
	Label() string
}

// Source is the remote collection a controller drives. Implementations
// talk to the backend; the controller never does.
type Source[T Resource] interface {
	List(ctx context.Context, q Query) (Page[T], error)
	Create(ctx context.Context, draft T) error
	Update(ctx context.Context, id int, draft T) error
	Delete(ctx context.Context, id int) error
}

// State is the controller's display state.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateLoaded
	StateErrored
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateErrored:
		return "errored"
	}
	return "unknown"
}

// Controller owns one resource type's query, page and form draft, and
// mediates every mutating operation. The displayed page always reflects
// the latest successful fetch for the query most recently issued: each
// fetch carries a generation, and a response from an older generation is
// discarded rather than applied.
type Controller[T Resource] struct {
	mu  sync.Mutex
	src Source[T]

	query Query
	page  Page[T]
	state State
	msg   string

	draft     T
	blank     T
	editingID *int

	gen uint64
}

// NewController builds a controller around src. blank is the empty draft
// the form resets to after a successful submit (it carries type defaults,
// e.g. a medication draft starts with IsCurrent true).
func NewController[T Resource](src Source[T], defaultLimit int, blank T) *Controller[T] {
	return &Controller[T]{
		src:   src,
		query: DefaultQuery(defaultLimit),
		state: StateIdle,
		draft: blank,
		blank: blank,
	}
}

// Query returns the current query parameters.
func (c *Controller[T]) Query() Query {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// Page returns the last successfully fetched page.
func (c *Controller[T]) Page() Page[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

// State returns the display state.
func (c *Controller[T]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Message returns the user-facing message from the last failed operation,
// or "" if the last operation succeeded.
func (c *Controller[T]) Message() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.msg
}

// Draft returns the current form draft.
func (c *Controller[T]) Draft() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// EditingID returns the id the draft is editing, or nil when the draft
// would create a new item.
func (c *Controller[T]) EditingID() *int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.editingID == nil {
		return nil
	}
	id := *c.editingID
	return &id
}

// SetSearch updates the search text, resets to page 1 and refetches.
func (c *Controller[T]) SetSearch(ctx context.Context, search string) error {
	c.mu.Lock()
	c.query.Search = search
	c.query.Page = 1
	c.mu.Unlock()
	return c.Reload(ctx)
}

// SetLimit updates the page size, resets to page 1 and refetches.
func (c *Controller[T]) SetLimit(ctx context.Context, limit int) error {
	if limit <= 0 {
		return apperr.Validation("limit must be positive")
	}
	c.mu.Lock()
	c.query.Limit = limit
	c.query.Page = 1
	c.mu.Unlock()
	return c.Reload(ctx)
}

// SetSortBy updates the sort key, resets to page 1 and refetches.
func (c *Controller[T]) SetSortBy(ctx context.Context, sortBy string) error {
	c.mu.Lock()
	c.query.SortBy = sortBy
	c.query.Page = 1
	c.mu.Unlock()
	return c.Reload(ctx)
}

// SetOrder updates the sort direction, resets to page 1 and refetches.
func (c *Controller[T]) SetOrder(ctx context.Context, order Order) error {
	c.mu.Lock()
	c.query.Order = order
	c.query.Page = 1
	c.mu.Unlock()
	return c.Reload(ctx)
}

// SetPage navigates to page n, clamped to [1, TotalPages]. Navigating past
// either boundary is a no-op rather than an error, so it neither refetches
// nor disturbs the current page.
func (c *Controller[T]) SetPage(ctx context.Context, n int) error {
	c.mu.Lock()
	n = clampPage(n, c.page.TotalPages)
	if n == c.query.Page {
		c.mu.Unlock()
		return nil
	}
	c.query.Page = n
	c.mu.Unlock()
	return c.Reload(ctx)
}

// Reload issues a list request with the current query. On success the held
// page is replaced atomically; on failure the previous page stays visible
// and the error is surfaced as a message. A response that raced with a
// newer query change is dropped.
func (c *Controller[T]) Reload(ctx context.Context) error {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	q := c.query
	c.state = StateLoading
	c.mu.Unlock()

	page, err := c.src.List(ctx, q)

	c.mu.Lock()
	if gen != c.gen {
		// A newer fetch was issued while this one was in flight.
		c.mu.Unlock()
		return nil
	}
	if err != nil {
		c.state = StateErrored
		c.msg = apperr.Message(err)
		c.mu.Unlock()
		return err
	}
	c.state = StateLoaded
	c.msg = ""
	c.page = page
	clamped := clampPage(c.query.Page, page.TotalPages)
	moved := clamped != c.query.Page
	c.query.Page = clamped
	c.mu.Unlock()

	if moved {
		// The result set shrank under us; fetch the page we landed on.
		return c.Reload(ctx)
	}
	return nil
}

// BeginEdit copies item into the draft and records its id, so the next
// submit updates instead of creating. No network call.
func (c *Controller[T]) BeginEdit(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = item
	id := item.Key()
	c.editingID = &id
	c.msg = ""
}

// SetDraft replaces the form draft wholesale.
func (c *Controller[T]) SetDraft(draft T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = draft
}

// SubmitDraft creates or updates depending on whether an edit is in
// progress. A draft without a name fails locally. On success the draft is
// reset and the list refetched; on failure the draft is kept so the user
// can retry.
func (c *Controller[T]) SubmitDraft(ctx context.Context) error {
	c.mu.Lock()
	draft := c.draft
	editing := c.editingID
	c.mu.Unlock()

	if strings.TrimSpace(draft.Label()) == "" {
		err := apperr.Validation("name is required")
		c.setMessage(err)
		return err
	}

	var err error
	if editing != nil {
		err = c.src.Update(ctx, *editing, draft)
	} else {
		err = c.src.Create(ctx, draft)
	}
	if err != nil {
		c.setMessage(err)
		return err
	}

	c.mu.Lock()
	c.draft = c.blank
	c.editingID = nil
	c.msg = ""
	c.mu.Unlock()
	return c.Reload(ctx)
}

// DeleteItem deletes id on the server and refetches. On failure nothing
// local changes; the item stays visible until a later fetch succeeds.
func (c *Controller[T]) DeleteItem(ctx context.Context, id int) error {
	if err := c.src.Delete(ctx, id); err != nil {
		c.setMessage(err)
		return err
	}
	return c.Reload(ctx)
}

func (c *Controller[T]) setMessage(err error) {
	c.mu.Lock()
	c.msg = apperr.Message(err)
	c.mu.Unlock()
}

func clampPage(n, totalPages int) int {
	if n < 1 {
		return 1
	}
	if totalPages >= 1 && n > totalPages {
		return totalPages
	}
	return n
}
