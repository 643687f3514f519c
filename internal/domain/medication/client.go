package medication

import (
	"context"

	"github.com/selfcare/selfcare/pkg/listing"
)

// Client is the remote medication collection.
type Client interface {
	listing.Source[Medication]

	// Current returns the complete current partition, unpaginated.
	Current(ctx context.Context) ([]Medication, error)
}
