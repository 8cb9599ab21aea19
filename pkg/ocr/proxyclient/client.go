// Package proxyclient calls the extract-text function over HTTP. It is the
// ingestion pipeline's view of OCR.
package proxyclient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

type Client struct {
	http *resty.Client
	url  string
	key  string
}

type extractRequest struct {
	ImageURL string `json:"imageUrl"`
}

type extractResponse struct {
	Text  *string `json:"text"`
	Error string  `json:"error,omitempty"`
}

func New(url, key string, timeout time.Duration) *Client {
	client := resty.New()
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return &Client{http: client, url: url, key: key}
}

func (c *Client) ExtractText(ctx context.Context, imageURL string) (string, error) {
	var out extractResponse

	req := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(extractRequest{ImageURL: imageURL}).
		SetResult(&out).
		SetError(&out)
	if c.key != "" {
		req.SetAuthToken(c.key)
	}

	res, err := req.Post(c.url)
	if err != nil {
		return "", fmt.Errorf("client.R.Post > %w", err)
	}
	if res.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("extract-text status code: %d, error: %s", res.StatusCode(), out.Error)
	}
	if out.Text == nil {
		return "", fmt.Errorf("extract-text response without text: %s", string(res.Body()))
	}
	return *out.Text, nil
}
