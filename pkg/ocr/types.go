// Package ocr defines the text-extraction contract shared by the OCR engines
// and the extract-text function.
package ocr

import (
	"context"
	"fmt"
)

// Engine extracts the text visible in the image at imageURL. An image with no
// recognisable text yields "" and a nil error.
type Engine interface {
	Name() string
	ExtractText(ctx context.Context, imageURL string) (string, error)
}

// ProviderError reports a non-2xx answer from a remote OCR provider.
type ProviderError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	body := e.Body
	if len(body) > 256 {
		body = body[:256] + "..."
	}
	return fmt.Sprintf("%s: status code %d, body: %s", e.Provider, e.StatusCode, body)
}
