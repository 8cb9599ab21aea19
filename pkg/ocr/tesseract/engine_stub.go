//go:build !tesseract

package tesseract

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable is returned when the binary was built without the tesseract tag.
var ErrUnavailable = errors.New("tesseract engine not compiled in (build with -tags tesseract)")

type Engine struct{}

func New(language string, timeout time.Duration) (*Engine, error) {
	return nil, ErrUnavailable
}

func (e *Engine) Name() string { return "tesseract" }

func (e *Engine) ExtractText(ctx context.Context, imageURL string) (string, error) {
	return "", ErrUnavailable
}
