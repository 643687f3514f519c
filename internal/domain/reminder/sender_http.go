package reminder

import (
	"context"

	"github.com/selfcare/selfcare/internal/platform/rest"
)

// HTTPSender implements Sender against the remote API.
type HTTPSender struct {
	rest *rest.Client
}

func NewHTTPSender(rc *rest.Client) *HTTPSender {
	return &HTTPSender{rest: rc}
}

func (h *HTTPSender) SetReminder(ctx context.Context, req Request) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	if err := h.rest.Post(ctx, "/set_reminder", req, &resp); err != nil {
		return "", err
	}
	if resp.Message == "" {
		resp.Message = "reminder set"
	}
	return resp.Message, nil
}
