package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"notes-repository-be/internal/pkg/logger"
	"notes-repository-be/internal/tracer"
	"notes-repository-be/pkg/ocr"

	"go.opentelemetry.io/otel/attribute"
)

var ErrMissingImageURL = errors.New("imageUrl is required")

type IExtractTextService interface {
	Extract(ctx context.Context, imageURL string) (string, error)
}

type extractTextService struct {
	engine ocr.Engine
	logger logger.ILogger
}

func NewExtractTextService(engine ocr.Engine, log logger.ILogger) IExtractTextService {
	return &extractTextService{engine: engine, logger: log}
}

// Extract is stateless; it forwards one image URL to the configured engine.
func (s *extractTextService) Extract(ctx context.Context, imageURL string) (text string, err error) {
	imageURL = strings.TrimSpace(imageURL)
	if imageURL == "" {
		return "", ErrMissingImageURL
	}

	ctx, span := tracer.Start(ctx, "ocr.extract", attribute.String("ocr.engine", s.engine.Name()))
	defer func() { tracer.End(span, err) }()

	start := time.Now()
	text, err = s.engine.ExtractText(ctx, imageURL)
	if err != nil {
		s.logger.Error("OCR", "Text extraction failed", map[string]interface{}{
			"engine":    s.engine.Name(),
			"image_url": imageURL,
			"error":     err.Error(),
		})
		return "", err
	}

	s.logger.Info("OCR", "Text extracted", map[string]interface{}{
		"engine":      s.engine.Name(),
		"chars":       len(text),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return text, nil
}
