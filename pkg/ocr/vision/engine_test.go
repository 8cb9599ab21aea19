package vision

import (
	"context"
	"errors"
	"testing"

	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"
	"github.com/googleapis/gax-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	statuspb "google.golang.org/genproto/googleapis/rpc/status"
)

type fakeAnnotator struct {
	req  *visionpb.BatchAnnotateImagesRequest
	resp *visionpb.BatchAnnotateImagesResponse
	err  error
}

func (f *fakeAnnotator) BatchAnnotateImages(ctx context.Context, req *visionpb.BatchAnnotateImagesRequest, opts ...gax.CallOption) (*visionpb.BatchAnnotateImagesResponse, error) {
	f.req = req
	return f.resp, f.err
}

func (f *fakeAnnotator) Close() error { return nil }

func TestExtractTextReadsFullTextAnnotation(t *testing.T) {
	fake := &fakeAnnotator{resp: &visionpb.BatchAnnotateImagesResponse{
		Responses: []*visionpb.AnnotateImageResponse{
			{FullTextAnnotation: &visionpb.TextAnnotation{Text: "hola mundo"}},
		},
	}}
	engine := &Engine{client: fake, languageHints: []string{"es"}}

	text, err := engine.ExtractText(context.Background(), "https://example.com/a.jpg")
	require.NoError(t, err)
	assert.Equal(t, "hola mundo", text)

	sent := fake.req.Requests[0]
	assert.Equal(t, "https://example.com/a.jpg", sent.Image.Source.ImageUri)
	assert.Equal(t, visionpb.Feature_DOCUMENT_TEXT_DETECTION, sent.Features[0].Type)
	assert.Equal(t, []string{"es"}, sent.ImageContext.LanguageHints)
}

func TestExtractTextNoAnnotationIsEmpty(t *testing.T) {
	engine := &Engine{client: &fakeAnnotator{resp: &visionpb.BatchAnnotateImagesResponse{
		Responses: []*visionpb.AnnotateImageResponse{{}},
	}}}

	text, err := engine.ExtractText(context.Background(), "https://example.com/a.jpg")
	require.NoError(t, err)
	assert.Equal(t, "", text)
}

func TestExtractTextPerImageError(t *testing.T) {
	engine := &Engine{client: &fakeAnnotator{resp: &visionpb.BatchAnnotateImagesResponse{
		Responses: []*visionpb.AnnotateImageResponse{{Error: &statuspb.Status{Message: "image fetch failed"}}},
	}}}

	_, err := engine.ExtractText(context.Background(), "https://example.com/a.jpg")
	assert.ErrorContains(t, err, "image fetch failed")
}

func TestExtractTextTransportError(t *testing.T) {
	boom := errors.New("unavailable")
	engine := &Engine{client: &fakeAnnotator{err: boom}}

	_, err := engine.ExtractText(context.Background(), "https://example.com/a.jpg")
	assert.ErrorIs(t, err, boom)
}
