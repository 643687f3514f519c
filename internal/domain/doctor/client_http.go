package doctor

import (
	"context"
	"fmt"

	"github.com/selfcare/selfcare/internal/platform/rest"
	"github.com/selfcare/selfcare/pkg/listing"
)

// allItemsLimit is the page size used when a caller needs the complete
// partition rather than one page.
const allItemsLimit = 1000

// HTTPClient implements Client against the remote API.
type HTTPClient struct {
	rest *rest.Client
}

func NewHTTPClient(rc *rest.Client) *HTTPClient {
	return &HTTPClient{rest: rc}
}

type listResponse struct {
	Active []Doctor `json:"active_doctors"`
	Past   []Doctor `json:"past_doctors"`
	Pages  int      `json:"pages"`
}

func (h *HTTPClient) List(ctx context.Context, q listing.Query) (listing.Page[Doctor], error) {
	var resp listResponse
	if err := h.rest.Get(ctx, "/doctors", q.Values(), &resp); err != nil {
		return listing.Page[Doctor]{}, err
	}
	total := resp.Pages
	if total < 1 {
		total = 1
	}
	return listing.Page[Doctor]{
		Primary:    resp.Active,
		Secondary:  resp.Past,
		TotalPages: total,
	}, nil
}

func (h *HTTPClient) Create(ctx context.Context, draft Doctor) error {
	return h.rest.Post(ctx, "/doctors", draft, nil)
}

func (h *HTTPClient) Update(ctx context.Context, id int, draft Doctor) error {
	return h.rest.Put(ctx, fmt.Sprintf("/doctors/%d", id), draft, nil)
}

func (h *HTTPClient) Delete(ctx context.Context, id int) error {
	return h.rest.Delete(ctx, fmt.Sprintf("/doctors/%d", id))
}

func (h *HTTPClient) Detail(ctx context.Context, id int) (Doctor, error) {
	var d Doctor
	if err := h.rest.Get(ctx, fmt.Sprintf("/doctors/%d", id), nil, &d); err != nil {
		return Doctor{}, err
	}
	return d, nil
}

func (h *HTTPClient) UpdateNotes(ctx context.Context, id int, notes string) error {
	body := map[string]string{"notes": notes}
	return h.rest.Put(ctx, fmt.Sprintf("/doctors/%d/notes", id), body, nil)
}

func (h *HTTPClient) Active(ctx context.Context) ([]Doctor, error) {
	page, err := h.List(ctx, listing.Query{
		Page:   1,
		Limit:  allItemsLimit,
		SortBy: "id",
		Order:  listing.OrderDesc,
	})
	if err != nil {
		return nil, err
	}
	return page.Primary, nil
}
