package ocrspace

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"notes-repository-be/pkg/ocr"

	"github.com/go-resty/resty/v2"
)

const DefaultURL = "https://api.ocr.space/parse/image"

type Config struct {
	URL      string
	APIKey   string
	Language string
	// OCREngine selects the provider's recognition engine ("1" or "2").
	OCREngine string
	Timeout   time.Duration
}

type parseResponse struct {
	ParsedResults []struct {
		ParsedText string `json:"ParsedText"`
	} `json:"ParsedResults"`
}

// Client calls the OCR.space parse endpoint with a remote image URL.
type Client struct {
	http   *resty.Client
	config Config
}

func New(config Config) *Client {
	if config.URL == "" {
		config.URL = DefaultURL
	}
	if config.Language == "" {
		config.Language = "spa"
	}
	if config.OCREngine == "" {
		config.OCREngine = "2"
	}

	client := resty.New()
	if config.Timeout > 0 {
		client.SetTimeout(config.Timeout)
	}
	return &Client{http: client, config: config}
}

func (c *Client) Name() string { return "ocrspace" }

func (c *Client) ExtractText(ctx context.Context, imageURL string) (string, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetHeader("apikey", c.config.APIKey).
		SetMultipartFormData(map[string]string{
			"url":               imageURL,
			"language":          c.config.Language,
			"isOverlayRequired": "false",
			"detectOrientation": "true",
			"scale":             "true",
			"OCREngine":         c.config.OCREngine,
		}).
		Post(c.config.URL)
	if err != nil {
		return "", fmt.Errorf("client.R.Post > %w", err)
	}
	if res.IsError() || res.StatusCode() < 200 || res.StatusCode() > 299 {
		return "", &ocr.ProviderError{Provider: c.Name(), StatusCode: res.StatusCode(), Body: string(res.Body())}
	}

	var parsed parseResponse
	if err := json.Unmarshal(res.Body(), &parsed); err != nil {
		return "", fmt.Errorf("json.Unmarshal > %w", err)
	}
	if len(parsed.ParsedResults) == 0 {
		return "", nil
	}
	return parsed.ParsedResults[0].ParsedText, nil
}

var _ ocr.Engine = (*Client)(nil)
