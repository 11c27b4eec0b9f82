package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"dinescan-service/internal/resolve/model"
)

// fakeDirectory serves canned search results keyed by lowercased term.
type fakeDirectory struct {
	searches   map[string][]model.GeoBusiness
	details    map[string]*model.BusinessDetails
	reviews    map[string][]model.Review
	searchErr  bool
	detailsErr bool
	reviewsErr bool

	searchTerms []string
}

func (f *fakeDirectory) Search(_ context.Context, term string, _, _ float64, limit int, _ string) ([]model.GeoBusiness, error) {
	f.searchTerms = append(f.searchTerms, term)
	if f.searchErr {
		return nil, errors.New("places down")
	}
	list := f.searches[strings.ToLower(strings.TrimSpace(term))]
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (f *fakeDirectory) Details(_ context.Context, id string) (*model.BusinessDetails, error) {
	if f.detailsErr {
		return nil, errors.New("details down")
	}
	if d, ok := f.details[id]; ok {
		return d, nil
	}
	return nil, errors.New("not found")
}

func (f *fakeDirectory) Reviews(_ context.Context, id string, limit int) ([]model.Review, error) {
	if f.reviewsErr {
		return nil, errors.New("reviews down")
	}
	list := f.reviews[id]
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

type fakeOCR struct {
	text model.OCRText
	err  error
}

func (f *fakeOCR) ExtractText(context.Context, []byte) (model.OCRText, error) {
	return f.text, f.err
}

func newTestPipeline(dir *fakeDirectory, ocrSvc *fakeOCR) *Pipeline {
	if ocrSvc == nil {
		ocrSvc = &fakeOCR{}
	}
	return NewPipeline(ocrSvc, dir, 150, 20, zerolog.Nop())
}
