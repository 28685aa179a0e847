package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thiruselvaa/odcs-converter/internal/codec"
	"github.com/thiruselvaa/odcs-converter/internal/config"
)

func testClient(maxSize int64) *Client {
	return New(config.FetchConfig{
		Timeout:         5 * time.Second,
		MaxResponseSize: maxSize,
		UserAgent:       "odcs-converter-test",
	})
}

func TestDocumentJSONByExtension(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "odcs-converter-test", r.Header.Get("User-Agent"))
		w.Write([]byte(`{"id":"c1"}`))
	}))
	defer srv.Close()

	data, format, err := testClient(1 << 20).Document(context.Background(), srv.URL+"/contract.json")
	require.NoError(t, err)
	assert.Equal(t, codec.FormatJSON, format)
	assert.JSONEq(t, `{"id":"c1"}`, string(data))
}

func TestDocumentFormatFromContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, format, err := testClient(1 << 20).Document(context.Background(), srv.URL+"/contract")
	require.NoError(t, err)
	assert.Equal(t, codec.FormatJSON, format)
}

func TestDocumentDefaultsToYAML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("id: c1\n"))
	}))
	defer srv.Close()

	_, format, err := testClient(1 << 20).Document(context.Background(), srv.URL+"/contract")
	require.NoError(t, err)
	assert.Equal(t, codec.FormatYAML, format)
}

func TestDocumentNotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, _, err := testClient(1 << 20).Document(context.Background(), srv.URL+"/missing.yaml")
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.True(t, statusErr.NotFound())
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
}

func TestDocumentResponseTooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(make([]byte, 128))
	}))
	defer srv.Close()

	_, _, err := testClient(64).Document(context.Background(), srv.URL+"/big.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds")
}

func TestDocumentContextCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := testClient(1 << 20).Document(ctx, srv.URL+"/contract.yaml")
	require.ErrorIs(t, err, context.Canceled)
}
