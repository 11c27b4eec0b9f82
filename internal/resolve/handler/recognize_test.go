package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dinescan-service/internal/resolve/model"
)

func storefrontDir() *fakeDirectory {
	return &fakeDirectory{searches: map[string][]model.GeoBusiness{
		"starbucks": {{ID: "sb", Name: "Starbucks", DistanceMeters: 45}},
	}}
}

func doRecognize(t *testing.T, fields map[string]string, image []byte) *httptest.ResponseRecorder {
	t.Helper()
	ocrText := model.OCRText{Blocks: []string{"STARBUCKS", "EST 1971"}}
	h := Recognize(testConfig(), zerolog.Nop(), testPipeline(storefrontDir(), ocrText))

	fileField := ""
	if image != nil {
		fileField = "image"
	}
	body, ctype := multipartBody(t, fields, fileField, "sign.jpg", image)
	req := httptest.NewRequest(http.MethodPost, "/api/recognize", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestRecognizeHandler_MissingImage(t *testing.T) {
	rec := doRecognize(t, map[string]string{"lat": "37.7", "lng": "-122.4"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecognizeHandler_MissingCoordinates(t *testing.T) {
	rec := doRecognize(t, nil, []byte("jpeg"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecognizeHandler_BadProfileJSON(t *testing.T) {
	fields := map[string]string{"lat": "37.7", "lng": "-122.4", "profile": "{broken"}
	rec := doRecognize(t, fields, []byte("jpeg"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecognizeHandler_Matched(t *testing.T) {
	fields := map[string]string{"lat": "37.7", "lng": "-122.4"}
	rec := doRecognize(t, fields, []byte("jpeg"))

	require.Equal(t, http.StatusOK, rec.Code)
	var res model.RecognitionResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, model.StageComplete, res.Stage)
	require.NotNil(t, res.Match)
	assert.Equal(t, "Starbucks", res.Match.Name)
	assert.InDelta(t, 0.94, res.ConfidenceScore, 1e-9)
}

func TestRecognizeHandler_ProfileDecodes(t *testing.T) {
	fields := map[string]string{
		"lat": "37.7", "lng": "-122.4",
		"profile": `{"dietary_preferences": ["Vegan"]}`,
	}
	rec := doRecognize(t, fields, []byte("jpeg"))

	require.Equal(t, http.StatusOK, rec.Code)
	var res model.RecognitionResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.NotNil(t, res.Personalization)
}
