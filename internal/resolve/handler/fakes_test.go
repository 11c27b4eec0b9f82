package handler

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"dinescan-service/internal/config"
	"dinescan-service/internal/resolve/model"
	"dinescan-service/internal/resolve/service"
)

type fakeDirectory struct {
	searches map[string][]model.GeoBusiness
}

func (f *fakeDirectory) Search(_ context.Context, term string, _, _ float64, limit int, _ string) ([]model.GeoBusiness, error) {
	list := f.searches[strings.ToLower(strings.TrimSpace(term))]
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (f *fakeDirectory) Details(_ context.Context, id string) (*model.BusinessDetails, error) {
	return nil, errors.New("not found")
}

func (f *fakeDirectory) Reviews(_ context.Context, id string, _ int) ([]model.Review, error) {
	return nil, nil
}

type fakeOCR struct {
	text model.OCRText
}

func (f *fakeOCR) ExtractText(context.Context, []byte) (model.OCRText, error) {
	return f.text, nil
}

func testConfig() config.Config {
	return config.Config{MaxUploadMB: 10, SearchRadiusM: 150, DefaultBudget: 20}
}

func testPipeline(dir *fakeDirectory, ocrText model.OCRText) *service.Pipeline {
	return service.NewPipeline(&fakeOCR{text: ocrText}, dir, 150, 20, zerolog.Nop())
}

// multipartBody builds a multipart form with the given text fields plus one
// optional file part.
func multipartBody(t *testing.T, fields map[string]string, fileField, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if fileField != "" {
		fw, err := mw.CreateFormFile(fileField, filename)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}
