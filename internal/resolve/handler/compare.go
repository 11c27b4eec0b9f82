package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"dinescan-service/internal/config"
	"dinescan-service/internal/resolve/model"
	"dinescan-service/internal/resolve/service"
)

type compareRequest struct {
	// Query is the single-string form: "compare X vs Y".
	Query   string             `json:"query,omitempty"`
	Option1 *model.OptionInput `json:"option1,omitempty"`
	Option2 *model.OptionInput `json:"option2,omitempty"`
	Budget  float64            `json:"budget,omitempty"`
	Lat     float64            `json:"lat,omitempty"`
	Lng     float64            `json:"lng,omitempty"`
}

// Compare handles the comparison path. A ComparisonError (side could not be
// resolved) is a well-formed 200 response, not an HTTP failure; only invalid
// input gets a 400.
func Compare(cfg config.Config, logger zerolog.Logger, pipe *service.Pipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := requestLogger(logger, r)

		var req compareRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad json: "+err.Error())
			return
		}

		var opt1, opt2 model.OptionInput
		switch {
		case req.Query != "":
			a, b, ok := service.SplitComparisonQuery(req.Query)
			if !ok {
				writeError(w, http.StatusBadRequest, `query must look like "X vs Y"`)
				return
			}
			opt1, opt2 = model.FreeTextOption(a), model.FreeTextOption(b)
		case req.Option1 != nil && req.Option2 != nil:
			opt1, opt2 = *req.Option1, *req.Option2
		default:
			writeError(w, http.StatusBadRequest, "either query or option1+option2 is required")
			return
		}

		coords := model.Coordinates{Lat: req.Lat, Lng: req.Lng}
		res, cmpErr, err := pipe.Compare(r.Context(), opt1, opt2, req.Budget, coords)
		if err != nil {
			if errors.Is(err, service.ErrInvalidInput) {
				writeError(w, http.StatusBadRequest, "both options must be non-empty")
				return
			}
			log.Error().Err(err).Msg("compare failed")
			writeError(w, http.StatusInternalServerError, "internal")
			return
		}
		if cmpErr != nil {
			writeJSON(w, http.StatusOK, cmpErr)
			log.Info().
				Strs("missing", cmpErr.MissingRestaurants).
				Dur("elapsed", time.Since(start)).
				Msg("compare unresolved")
			return
		}

		writeJSON(w, http.StatusOK, res)
		log.Info().
			Str("winner", res.Winner).
			Dur("elapsed", time.Since(start)).
			Msg("compare done")
	}
}
