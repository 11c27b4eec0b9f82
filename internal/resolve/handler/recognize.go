package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"dinescan-service/internal/config"
	"dinescan-service/internal/resolve/model"
	"dinescan-service/internal/resolve/service"
)

// Recognize handles the camera path. Multipart form: image bytes, a GPS fix,
// and an optional user-preference JSON blob.
func Recognize(cfg config.Config, logger zerolog.Logger, pipe *service.Pipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := requestLogger(logger, r)

		if err := r.ParseMultipartForm(int64(cfg.MaxUploadMB) << 20); err != nil {
			writeError(w, http.StatusBadRequest, "bad multipart form: "+err.Error())
			return
		}

		file, _, err := r.FormFile("image")
		if err != nil {
			writeError(w, http.StatusBadRequest, "missing image: "+err.Error())
			return
		}
		defer file.Close()
		image, err := io.ReadAll(file)
		if err != nil {
			writeError(w, http.StatusBadRequest, "failed to read image: "+err.Error())
			return
		}

		coords := model.Coordinates{
			Lat: toFloat(r.FormValue("lat"), 0),
			Lng: toFloat(r.FormValue("lng"), 0),
		}

		var profile *model.UserProfile
		if raw := r.FormValue("profile"); raw != "" {
			profile = &model.UserProfile{}
			if err := json.Unmarshal([]byte(raw), profile); err != nil {
				writeError(w, http.StatusBadRequest, "bad profile: "+err.Error())
				return
			}
		}

		res, err := pipe.Recognize(r.Context(), image, coords, profile)
		if err != nil {
			if errors.Is(err, service.ErrInvalidInput) {
				writeError(w, http.StatusBadRequest, "image and coordinates are required")
				return
			}
			log.Error().Err(err).Msg("recognize failed")
			writeError(w, http.StatusInternalServerError, "internal")
			return
		}

		writeJSON(w, http.StatusOK, res)
		log.Info().
			Float64("confidence", res.ConfidenceScore).
			Bool("matched", res.Match != nil).
			Dur("elapsed", time.Since(start)).
			Msg("recognize done")
	}
}

func requestLogger(logger zerolog.Logger, r *http.Request) zerolog.Logger {
	if rid := r.Header.Get("X-Request-ID"); rid != "" {
		return logger.With().Str("req_id", rid).Logger()
	}
	return logger
}
