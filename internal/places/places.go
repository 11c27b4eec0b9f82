// Package places holds the clients for the external business directory. All of
// them are fail-soft at the pipeline boundary: a transport error means "no
// information", never a retry loop or a propagated exception.
package places

import (
	"context"

	"dinescan-service/internal/resolve/model"
)

// SearchClient performs one places-search call. Callers must treat an empty
// result the same as a failed one.
type SearchClient interface {
	Search(ctx context.Context, term string, lat, lng float64, limit int, category string) ([]model.GeoBusiness, error)
}

// DetailsClient fetches the full record for a resolved business id.
type DetailsClient interface {
	Details(ctx context.Context, id string) (*model.BusinessDetails, error)
}

// ReviewsClient fetches up to limit reviews for a business id.
type ReviewsClient interface {
	Reviews(ctx context.Context, id string, limit int) ([]model.Review, error)
}

// Directory bundles the three interfaces a full pipeline needs.
type Directory interface {
	SearchClient
	DetailsClient
	ReviewsClient
}
