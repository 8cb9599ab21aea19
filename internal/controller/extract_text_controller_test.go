package controller

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"notes-repository-be/internal/pkg/logger"
	"notes-repository-be/internal/service"
	"notes-repository-be/pkg/ocr/ocrspace"
	"notes-repository-be/pkg/ocr/proxyclient"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func extractTextApp(providerURL, key string) *fiber.App {
	return extractTextAppWithTimeout(providerURL, key, 0)
}

func extractTextAppWithTimeout(providerURL, key string, timeout time.Duration) *fiber.App {
	engine := ocrspace.New(ocrspace.Config{URL: providerURL, APIKey: "provider-key", Timeout: timeout})
	app := fiber.New()
	NewExtractTextController(service.NewExtractTextService(engine, logger.NewNopLogger()), key).RegisterRoutes(app)
	return app
}

func fakeProvider(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "provider-key", r.Header.Get("apikey"))
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func call(t *testing.T, app *fiber.App, method, body, bearer string) (*http.Response, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, ExtractTextPath, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	res, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, _ := io.ReadAll(res.Body)
	var parsed map[string]interface{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &parsed), string(raw))
	}
	return res, parsed
}

func assertCORS(t *testing.T, res *http.Response) {
	t.Helper()
	assert.Equal(t, "*", res.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST, PUT, DELETE, OPTIONS", res.Header.Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type, Authorization, X-Client-Info, Apikey", res.Header.Get("Access-Control-Allow-Headers"))
}

func TestExtractTextPreflight(t *testing.T) {
	app := extractTextApp("http://unused", "")

	res, body := call(t, app, http.MethodOptions, "", "")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Nil(t, body)
	assertCORS(t, res)
}

func TestExtractTextSuccess(t *testing.T) {
	provider := fakeProvider(t, http.StatusOK, `{"ParsedResults":[{"ParsedText":"Hola"},{"ParsedText":"ignored"}]}`)
	app := extractTextApp(provider.URL, "")

	res, body := call(t, app, http.MethodPost, `{"imageUrl":"https://cdn/x.png"}`, "")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "Hola", body["text"])
	assertCORS(t, res)
}

func TestExtractTextNoResultsIsEmptyText(t *testing.T) {
	provider := fakeProvider(t, http.StatusOK, `{"ParsedResults":[]}`)
	app := extractTextApp(provider.URL, "")

	res, body := call(t, app, http.MethodPost, `{"imageUrl":"https://cdn/x.png"}`, "")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "", body["text"])
}

func TestExtractTextFailures(t *testing.T) {
	ok := fakeProvider(t, http.StatusOK, `{"ParsedResults":[]}`)
	forbidden := fakeProvider(t, http.StatusForbidden, `{"message":"bad key"}`)
	malformed := fakeProvider(t, http.StatusOK, `<html>`)

	cases := []struct {
		name     string
		provider string
		key      string
		bearer   string
		body     string
		status   int
	}{
		{"not json", ok.URL, "", "", `imageUrl=x`, http.StatusBadRequest},
		{"missing url", ok.URL, "", "", `{}`, http.StatusBadRequest},
		{"blank url", ok.URL, "", "", `{"imageUrl":"  "}`, http.StatusBadRequest},
		{"wrong key", ok.URL, "fn-key", "nope", `{"imageUrl":"https://cdn/x.png"}`, http.StatusUnauthorized},
		{"missing key", ok.URL, "fn-key", "", `{"imageUrl":"https://cdn/x.png"}`, http.StatusUnauthorized},
		{"provider 403", forbidden.URL, "", "", `{"imageUrl":"https://cdn/x.png"}`, http.StatusInternalServerError},
		{"provider garbage", malformed.URL, "", "", `{"imageUrl":"https://cdn/x.png"}`, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := extractTextApp(tc.provider, tc.key)

			res, body := call(t, app, http.MethodPost, tc.body, tc.bearer)
			assert.Equal(t, tc.status, res.StatusCode)
			assert.NotEmpty(t, body["error"])
			assert.Equal(t, "", body["text"])
			assertCORS(t, res)
		})
	}
}

func TestExtractTextProviderUnreachable(t *testing.T) {
	dead := httptest.NewServer(http.NotFoundHandler())
	deadURL := dead.URL
	dead.Close()

	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(500 * time.Millisecond):
		case <-r.Context().Done():
		}
		_, _ = io.WriteString(w, `{"ParsedResults":[{"ParsedText":"late"}]}`)
	}))
	t.Cleanup(slow.Close)

	cases := map[string]*fiber.App{
		"connection refused": extractTextAppWithTimeout(deadURL, "", time.Second),
		"provider timeout":   extractTextAppWithTimeout(slow.URL, "", 50*time.Millisecond),
	}
	for name, app := range cases {
		t.Run(name, func(t *testing.T) {
			res, body := call(t, app, http.MethodPost, `{"imageUrl":"https://cdn/x.png"}`, "")
			assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
			assert.Equal(t, "", body["text"])
			assert.Equal(t, extractFailedMessage, body["error"])
			assertCORS(t, res)
		})
	}
}

func TestExtractTextHidesEngineErrors(t *testing.T) {
	provider := fakeProvider(t, http.StatusForbidden, `{"message":"secret provider detail"}`)
	app := extractTextApp(provider.URL, "")

	res, body := call(t, app, http.MethodPost, `{"imageUrl":"https://cdn/x.png"}`, "")
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
	assert.Equal(t, extractFailedMessage, body["error"])
	assert.NotContains(t, body["error"], provider.URL)
}

// The ingestion side reaches the function through proxyclient over HTTP.
func TestProxyClientAgainstFunction(t *testing.T) {
	provider := fakeProvider(t, http.StatusOK, `{"ParsedResults":[{"ParsedText":"derivadas"}]}`)
	fn := httptest.NewServer(adaptor.FiberApp(extractTextApp(provider.URL, "fn-key")))
	t.Cleanup(fn.Close)

	client := proxyclient.New(fn.URL+ExtractTextPath, "fn-key", 5*time.Second)
	text, err := client.ExtractText(t.Context(), "https://cdn/x.png")
	require.NoError(t, err)
	assert.Equal(t, "derivadas", text)

	wrongKey := proxyclient.New(fn.URL+ExtractTextPath, "other", 5*time.Second)
	_, err = wrongKey.ExtractText(t.Context(), "https://cdn/x.png")
	assert.Error(t, err)
}
