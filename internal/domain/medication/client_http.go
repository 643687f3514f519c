package medication

import (
	"context"
	"fmt"

	"github.com/selfcare/selfcare/internal/platform/rest"
	"github.com/selfcare/selfcare/pkg/listing"
)

const allItemsLimit = 1000

// HTTPClient implements Client against the remote API.
type HTTPClient struct {
	rest *rest.Client
}

func NewHTTPClient(rc *rest.Client) *HTTPClient {
	return &HTTPClient{rest: rc}
}

type listResponse struct {
	Current []Medication `json:"current_medications"`
	Past    []Medication `json:"past_medications"`
	Pages   int          `json:"pages"`
}

func (h *HTTPClient) List(ctx context.Context, q listing.Query) (listing.Page[Medication], error) {
	var resp listResponse
	if err := h.rest.Get(ctx, "/medications", q.Values(), &resp); err != nil {
		return listing.Page[Medication]{}, err
	}
	total := resp.Pages
	if total < 1 {
		total = 1
	}
	return listing.Page[Medication]{
		Primary:    resp.Current,
		Secondary:  resp.Past,
		TotalPages: total,
	}, nil
}

func (h *HTTPClient) Create(ctx context.Context, draft Medication) error {
	return h.rest.Post(ctx, "/medications", draft, nil)
}

func (h *HTTPClient) Update(ctx context.Context, id int, draft Medication) error {
	return h.rest.Put(ctx, fmt.Sprintf("/medications/%d", id), draft, nil)
}

func (h *HTTPClient) Delete(ctx context.Context, id int) error {
	return h.rest.Delete(ctx, fmt.Sprintf("/medications/%d", id))
}

func (h *HTTPClient) Current(ctx context.Context) ([]Medication, error) {
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
