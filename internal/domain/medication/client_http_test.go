package medication

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/selfcare/selfcare/internal/platform/rest"
	"github.com/selfcare/selfcare/internal/platform/session"
	"github.com/selfcare/selfcare/pkg/listing"
)

// fakeBackend reimplements the remote medication endpoints over an
// in-memory collection: bearer check, search, sort, per-partition
// pagination and the pages = max(current, past) rule.
type fakeBackend struct {
	mu   sync.Mutex
	meds []Medication

	lastQuery map[string]string
}

func (f *fakeBackend) register(e *echo.Group) {
	e.GET("/medications", f.list)
	e.POST("/medications", f.create)
	e.PUT("/medications/:id", f.update)
	e.DELETE("/medications/:id", f.delete)
}

func (f *fakeBackend) list(c echo.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	search := strings.ToLower(c.QueryParam("search"))
	order := c.QueryParam("order")
	f.lastQuery = map[string]string{
		"page":    c.QueryParam("page"),
		"limit":   c.QueryParam("limit"),
		"search":  c.QueryParam("search"),
		"sort_by": c.QueryParam("sort_by"),
		"order":   c.QueryParam("order"),
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 5
	}

	var current, past []Medication
	for _, m := range f.meds {
		if search != "" && !strings.Contains(strings.ToLower(m.Name), search) {
			continue
		}
		if m.IsCurrent {
			current = append(current, m)
		} else {
			past = append(past, m)
		}
	}
	byID := func(items []Medication) {
		sort.Slice(items, func(i, j int) bool {
			if order == "desc" {
				return items[i].ID > items[j].ID
			}
			return items[i].ID < items[j].ID
		})
	}
	byID(current)
	byID(past)

	pages := pageCount(len(current), limit)
	if p := pageCount(len(past), limit); p > pages {
		pages = p
	}

	return c.JSON(http.StatusOK, map[string]any{
		"current_medications": slicePage(current, page, limit),
		"past_medications":    slicePage(past, page, limit),
		"pages":               pages,
		"page":                page,
		"limit":               limit,
	})
}

func (f *fakeBackend) create(c echo.Context) error {
	var m Medication
	if err := c.Bind(&m); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "bad body"})
	}
	if m.Name == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Medication name is required"})
	}
	f.mu.Lock()
	m.ID = len(f.meds) + 1
	f.meds = append(f.meds, m)
	f.mu.Unlock()
	return c.JSON(http.StatusCreated, map[string]string{"status": "success", "message": "Medication added"})
}

func (f *fakeBackend) update(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	var m Medication
	if err := c.Bind(&m); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "bad body"})
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.meds {
		if f.meds[i].ID == id {
			m.ID = id
			f.meds[i] = m
			return c.JSON(http.StatusOK, map[string]string{"status": "success", "message": "Medication updated"})
		}
	}
	return c.JSON(http.StatusNotFound, map[string]string{"message": "Medication not found"})
}

func (f *fakeBackend) delete(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.meds {
		if f.meds[i].ID == id {
			f.meds = append(f.meds[:i], f.meds[i+1:]...)
			return c.JSON(http.StatusOK, map[string]string{"status": "success", "message": "Medication deleted"})
		}
	}
	return c.JSON(http.StatusNotFound, map[string]string{"message": "Medication not found"})
}

func pageCount(n, limit int) int {
	if n == 0 {
		return 1
	}
	return (n + limit - 1) / limit
}

func slicePage(items []Medication, page, limit int) []Medication {
	start := (page - 1) * limit
	if start >= len(items) {
		return []Medication{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func newTestBackend(t *testing.T, meds []Medication) (*fakeBackend, *HTTPClient) {
	t.Helper()

	backend := &fakeBackend{meds: meds}
	e := echo.New()
	authed := e.Group("", func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !strings.HasPrefix(c.Request().Header.Get("Authorization"), "Bearer ") {
				return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Missing Authorization Header"})
			}
			return next(c)
		}
	})
	backend.register(authed)

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)

	store := session.NewStore(filepath.Join(t.TempDir(), "token"))
	if err := store.Save("test-token"); err != nil {
		t.Fatalf("save token: %v", err)
	}
	rc := rest.New(srv.URL, 5*time.Second, zerolog.Nop(), store)
	return backend, NewHTTPClient(rc)
}

func seedMeds(n int) []Medication {
	meds := make([]Medication, 0, n)
	for i := 1; i <= n; i++ {
		meds = append(meds, Medication{
			ID:        i,
			Name:      fmt.Sprintf("Med %d", i),
			Dosage:    "20mg",
			Time:      "Once a day",
			IsCurrent: true,
		})
	}
	return meds
}

func TestListMapsPartitionsAndPages(t *testing.T) {
	meds := seedMeds(3)
	meds[2].IsCurrent = false
	_, client := newTestBackend(t, meds)

	page, err := client.List(context.Background(), listing.DefaultQuery(5))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Primary) != 2 {
		t.Errorf("current = %d, want 2", len(page.Primary))
	}
	if len(page.Secondary) != 1 {
		t.Errorf("past = %d, want 1", len(page.Secondary))
	}
	if page.TotalPages != 1 {
		t.Errorf("pages = %d, want 1", page.TotalPages)
	}
}

// TestTwelveMedicationsPaginateAcrossThreePages is the end-to-end
// scenario: 12 current medications at limit 5 yield 3 pages, and a
// search change resets the cursor to page 1 before re-querying.
func TestTwelveMedicationsPaginateAcrossThreePages(t *testing.T) {
	meds := seedMeds(12)
	meds[3].Name = "Aspirin 81mg"
	backend, client := newTestBackend(t, meds)

	ctrl := listing.NewController[Medication](client, 5, BlankDraft())
	ctx := context.Background()

	if err := ctrl.Reload(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got := ctrl.Page().TotalPages; got != 3 {
		t.Fatalf("total pages = %d, want 3", got)
	}
	if got := len(ctrl.Page().Primary); got != 5 {
		t.Errorf("page size = %d, want 5", got)
	}

	if err := ctrl.SetPage(ctx, 3); err != nil {
		t.Fatalf("set page: %v", err)
	}
	if got := len(ctrl.Page().Primary); got != 2 {
		t.Errorf("last page size = %d, want 2", got)
	}

	if err := ctrl.SetSearch(ctx, "aspirin"); err != nil {
		t.Fatalf("search: %v", err)
	}
	if got := ctrl.Query().Page; got != 1 {
		t.Errorf("page after search = %d, want 1", got)
	}
	backend.mu.Lock()
	sent := backend.lastQuery
	backend.mu.Unlock()
	if sent["search"] != "aspirin" || sent["page"] != "1" {
		t.Errorf("backend saw query %v, want search=aspirin page=1", sent)
	}
	if got := len(ctrl.Page().Primary); got != 1 {
		t.Errorf("matches = %d, want 1", got)
	}
}

func TestSubmitDraftRoundTrip(t *testing.T) {
	backend, client := newTestBackend(t, seedMeds(1))
	ctrl := listing.NewController[Medication](client, 5, BlankDraft())
	ctx := context.Background()

	draft := BlankDraft()
	draft.Name = "Metformin"
	draft.Dosage = "500mg"
	ctrl.SetDraft(draft)
	if err := ctrl.SubmitDraft(ctx); err != nil {
		t.Fatalf("submit: %v", err)
	}

	backend.mu.Lock()
	count := len(backend.meds)
	backend.mu.Unlock()
	if count != 2 {
		t.Fatalf("backend has %d medications, want 2", count)
	}
	if got := len(ctrl.Page().Primary); got != 2 {
		t.Errorf("refetched page has %d items, want 2", got)
	}
	if got := ctrl.Draft(); got != BlankDraft() {
		t.Errorf("draft not reset: %+v", got)
	}
}

func TestDeleteRoundTrip(t *testing.T) {
	backend, client := newTestBackend(t, seedMeds(2))
	ctrl := listing.NewController[Medication](client, 5, BlankDraft())
	ctx := context.Background()

	if err := ctrl.DeleteItem(ctx, 1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	backend.mu.Lock()
	count := len(backend.meds)
	backend.mu.Unlock()
	if count != 1 {
		t.Fatalf("backend has %d medications, want 1", count)
	}
	if got := len(ctrl.Page().Primary); got != 1 {
		t.Errorf("refetched page has %d items, want 1", got)
	}
}

func TestCurrentReturnsFullPartition(t *testing.T) {
	meds := seedMeds(12)
	meds[0].IsCurrent = false
	_, client := newTestBackend(t, meds)

	current, err := client.Current(context.Background())
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if len(current) != 11 {
		t.Errorf("current = %d items, want the full unpaginated partition of 11", len(current))
	}
}
