package service

import (
	"context"

	"github.com/rs/zerolog"

	"dinescan-service/internal/places"
	"dinescan-service/internal/resolve/model"
)

// geoSearch wraps the places client with the fail-soft contract: any transport
// or API failure comes back as an empty list, logged once, never retried here.
// Results keep the provider's own relevance ordering.
type geoSearch struct {
	client places.SearchClient
	logger zerolog.Logger
}

func (g *geoSearch) search(ctx context.Context, term string, coords model.Coordinates, limit int, category string) ([]model.GeoBusiness, bool) {
	list, err := g.client.Search(ctx, term, coords.Lat, coords.Lng, limit, category)
	if err != nil {
		g.logger.Warn().Err(err).Str("term", term).Msg("places search degraded")
		return nil, true
	}
	return list, false
}
