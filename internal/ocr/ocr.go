// Package ocr wraps the external text-extraction service. The contract is
// fail-soft: a garbled or empty image yields empty blocks, not an error the
// pipeline has to handle specially.
package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"dinescan-service/internal/resolve/model"
)

type Service interface {
	ExtractText(ctx context.Context, image []byte) (model.OCRText, error)
}

type HTTPClient struct {
	baseURL string
	hc      *http.Client
}

var _ Service = (*HTTPClient)(nil)

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{baseURL: baseURL, hc: &http.Client{Timeout: timeout}}
}

func (c *HTTPClient) ExtractText(ctx context.Context, image []byte) (model.OCRText, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/extract", bytes.NewReader(image))
	if err != nil {
		return model.OCRText{}, err
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	res, err := c.hc.Do(req)
	if err != nil {
		return model.OCRText{}, fmt.Errorf("ocr extract: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return model.OCRText{}, fmt.Errorf("ocr extract: status %d", res.StatusCode)
	}

	var out model.OCRText
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return model.OCRText{}, fmt.Errorf("ocr extract: %w", err)
	}
	return out, nil
}
