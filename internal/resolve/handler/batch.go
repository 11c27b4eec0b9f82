package handler

import (
	"net/http"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"dinescan-service/internal/config"
	"dinescan-service/internal/fileio"
	"dinescan-service/internal/resolve/model"
	"dinescan-service/internal/resolve/service"
	"dinescan-service/internal/utils"
)

type batchResponse struct {
	Budget  float64          `json:"budget"`
	Count   int              `json:"count"`
	Options []batchScoredRow `json:"options"`
}

type batchScoredRow struct {
	Rank   int                    `json:"rank"`
	Option model.ComparisonOption `json:"option"`
}

// BatchCompare scores every row of an uploaded CSV/XLS/XLSX sheet of meal
// options against one budget and returns them ranked best-value first.
// Columns are resolved fuzzily, so "Price", "cost ($)" and "Estimated Cost"
// all land on the cost field.
func BatchCompare(cfg config.Config, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := requestLogger(logger, r)

		if err := r.ParseMultipartForm(int64(cfg.MaxUploadMB) << 20); err != nil {
			writeError(w, http.StatusBadRequest, "bad multipart form: "+err.Error())
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			writeError(w, http.StatusBadRequest, "missing file: "+err.Error())
			return
		}
		defer file.Close()

		headerRow := atoi(r.FormValue("header_row"), 1)
		budget := toFloat(r.FormValue("budget"), cfg.DefaultBudget)

		rows, err := fileio.ReadAnyMaps(file, header.Filename, headerRow)
		if err != nil {
			writeError(w, http.StatusBadRequest, "failed to read file: "+err.Error())
			return
		}

		scored := make([]batchScoredRow, 0, len(rows))
		for _, rec := range rows {
			restaurant := strings.TrimSpace(rec[resolveColumn(rec, "restaurant|name")])
			if restaurant == "" {
				continue
			}
			dish := strings.TrimSpace(rec[resolveColumn(rec, "dish|item|meal")])
			cost, _ := utils.ParseMoney(rec[resolveColumn(rec, "cost|price")])
			calories, _ := utils.ParseMoney(rec[resolveColumn(rec, "calories|kcal")])
			quantity := strings.TrimSpace(rec[resolveColumn(rec, "quantity|portion|size")])

			opt := service.ScoreOption(restaurant, dish, cost, calories, quantity, budget)
			scored = append(scored, batchScoredRow{Option: opt})
		}

		sort.SliceStable(scored, func(i, j int) bool {
			return scored[i].Option.ValueScore > scored[j].Option.ValueScore
		})
		for i := range scored {
			scored[i].Rank = i + 1
		}

		writeJSON(w, http.StatusOK, batchResponse{
			Budget:  budget,
			Count:   len(scored),
			Options: scored,
		})
		log.Info().
			Int("rows", len(rows)).
			Int("scored", len(scored)).
			Dur("elapsed", time.Since(start)).
			Msg("batch compare done")
	}
}

var reHeaderJunk = regexp.MustCompile(`[^\p{L}\p{N}]+`)

func normHeaderKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = reHeaderJunk.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// resolveColumn finds the real column key for a wanted name, with "|"
// alternatives ("cost|price"). Exact match first, then normalized, then
// containment either way; the longest containment hit wins.
func resolveColumn(rec map[string]string, want string) string {
	alts := strings.Split(want, "|")
	for i := range alts {
		alts[i] = strings.TrimSpace(alts[i])
	}

	for _, a := range alts {
		if _, ok := rec[a]; ok {
			return a
		}
	}

	normAlts := make([]string, len(alts))
	for i, a := range alts {
		normAlts[i] = normHeaderKey(a)
	}

	bestKey := ""
	bestScore := 0
	for k := range rec {
		nk := normHeaderKey(k)
		for _, n := range normAlts {
			if nk == n {
				return k
			}
		}
		score := 0
		for _, n := range normAlts {
			if n != "" && (strings.Contains(nk, n) || strings.Contains(n, nk)) {
				if len(n) > score {
					score = len(n)
				}
			}
		}
		if score > bestScore {
			bestScore, bestKey = score, k
		}
	}
	return bestKey
}
