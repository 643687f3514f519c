package doctor

import (
	"context"

	"github.com/selfcare/selfcare/pkg/listing"
)

// Client is the remote doctor collection: the paginated listing source
// plus the detail, notes and dashboard operations.
type Client interface {
	listing.Source[Doctor]

	// Detail fetches one doctor including the free-text notes.
	Detail(ctx context.Context, id int) (Doctor, error)
	// UpdateNotes replaces the notes on one doctor.
	UpdateNotes(ctx context.Context, id int, notes string) error
	// Active returns the complete active partition, unpaginated; the
	// dashboard and reminder selection need the full set.
	Active(ctx context.Context) ([]Doctor, error)
}
