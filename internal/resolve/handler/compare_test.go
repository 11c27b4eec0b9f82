package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dinescan-service/internal/resolve/model"
)

func comparePipelineDir() *fakeDirectory {
	return &fakeDirectory{searches: map[string][]model.GeoBusiness{
		"karma kafe": {{ID: "kk", Name: "Karma Kafe", PriceLevel: 2}},
		"chipotle":   {{ID: "ch", Name: "Chipotle", PriceLevel: 1}},
	}}
}

func doCompare(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	h := Compare(testConfig(), zerolog.Nop(), testPipeline(comparePipelineDir(), model.OCRText{}))
	req := httptest.NewRequest(http.MethodPost, "/api/compare", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestCompareHandler_BadJSON(t *testing.T) {
	rec := doCompare(t, "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCompareHandler_MissingOptions(t *testing.T) {
	rec := doCompare(t, `{"budget": 20}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCompareHandler_QueryNotSplittable(t *testing.T) {
	rec := doCompare(t, `{"query": "just one place"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCompareHandler_QueryForm(t *testing.T) {
	rec := doCompare(t, `{"query": "Compare Karma Kafe biryani $18 vs Chipotle $18", "lat": 37.7, "lng": -122.4}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var res model.ComparisonResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.True(t, res.Success)
	assert.Equal(t, "tie", res.Winner)
	assert.Equal(t, 18.0, res.Budget)
	assert.Equal(t, "Karma Kafe", res.Option1.Option.RestaurantName)
	assert.Equal(t, "Chipotle", res.Option2.Option.RestaurantName)
}

func TestCompareHandler_MixedOptionShapes(t *testing.T) {
	// option1 structured, option2 free text; both decode through the same field
	body := `{
		"option1": {"restaurant": "Karma Kafe", "dish": "biryani", "cost": 10},
		"option2": "Chipotle $18",
		"lat": 37.7, "lng": -122.4
	}`
	rec := doCompare(t, body)

	require.Equal(t, http.StatusOK, rec.Code)
	var res model.ComparisonResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "option1", res.Winner)
}

func TestCompareHandler_UnresolvedIsStill200(t *testing.T) {
	h := Compare(testConfig(), zerolog.Nop(), testPipeline(&fakeDirectory{}, model.OCRText{}))
	body := `{"query": "Nowhere Cafe vs Nonexistent Grill", "lat": 37.7, "lng": -122.4}`
	req := httptest.NewRequest(http.MethodPost, "/api/compare", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var cmpErr model.ComparisonError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cmpErr))
	assert.False(t, cmpErr.Success)
	assert.Equal(t, []string{"Nowhere Cafe", "Nonexistent Grill"}, cmpErr.MissingRestaurants)
	assert.Equal(t, "Could not find: Nowhere Cafe, Nonexistent Grill", cmpErr.Error)
}
