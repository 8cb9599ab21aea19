package proxyclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTextPostsImageURLWithBearer(t *testing.T) {
	var body map[string]string
	var auth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":"hola"}`))
	}))
	defer server.Close()

	text, err := New(server.URL, "anon-key", time.Second).ExtractText(context.Background(), "https://x/y.jpg")

	require.NoError(t, err)
	assert.Equal(t, "hola", text)
	assert.Equal(t, "Bearer anon-key", auth)
	assert.Equal(t, "https://x/y.jpg", body["imageUrl"])
}

func TestExtractTextFailureStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Failed to extract text from image","text":""}`))
	}))
	defer server.Close()

	_, err := New(server.URL, "", time.Second).ExtractText(context.Background(), "https://x/y.jpg")
	assert.ErrorContains(t, err, "Failed to extract text from image")
}

func TestExtractTextUndecodableBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"unexpected":true}`))
	}))
	defer server.Close()

	_, err := New(server.URL, "", time.Second).ExtractText(context.Background(), "https://x/y.jpg")
	assert.Error(t, err)
}
