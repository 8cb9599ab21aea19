//go:build tesseract

package tesseract

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/otiai10/gosseract/v2"

	"notes-repository-be/pkg/ocr"
)

// Engine downloads the image and recognises it locally with Tesseract.
type Engine struct {
	http          *resty.Client
	languages     []string
	clientFactory func() *gosseract.Client
}

func New(language string, timeout time.Duration) (*Engine, error) {
	client := resty.New()
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	var langs []string
	for _, l := range strings.Split(language, "+") {
		if l = strings.TrimSpace(l); l != "" {
			langs = append(langs, l)
		}
	}

	return &Engine{http: client, languages: langs, clientFactory: gosseract.NewClient}, nil
}

func (e *Engine) Name() string { return "tesseract" }

func (e *Engine) ExtractText(ctx context.Context, imageURL string) (string, error) {
	res, err := e.http.R().SetContext(ctx).Get(imageURL)
	if err != nil {
		return "", fmt.Errorf("download image: %w", err)
	}
	if res.StatusCode() < 200 || res.StatusCode() > 299 {
		return "", &ocr.ProviderError{Provider: "image-host", StatusCode: res.StatusCode(), Body: string(res.Body())}
	}

	c := e.clientFactory()
	defer c.Close()

	if err := c.SetImageFromBytes(res.Body()); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	if len(e.languages) > 0 {
		if err := c.SetLanguage(e.languages...); err != nil {
			return "", fmt.Errorf("set languages: %w", err)
		}
	}

	text, err := c.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}
	return strings.TrimSpace(text), nil
}

var _ ocr.Engine = (*Engine)(nil)
