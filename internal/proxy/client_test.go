package proxy

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string) *Client {
	return NewClient(url, 2*time.Second, 500*time.Millisecond)
}

func TestPredictForwardsVerbatim(t *testing.T) {
	var gotPath, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"prediction":2,"confidence":0.8}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	body, status, err := c.Predict(context.Background(), []byte(`{"features":[1,2]}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "/api/v1/predict", gotPath)
	assert.JSONEq(t, `{"features":[1,2]}`, gotBody)
	assert.JSONEq(t, `{"prediction":2,"confidence":0.8}`, string(body))
}

func TestPredictRemoteErrorBodyPassesThrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"boom"}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	body, status, err := c.Predict(context.Background(), []byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.JSONEq(t, `{"error":"boom"}`, string(body))
}

func TestPredictTransportFailure(t *testing.T) {
	c := newTestClient("http://127.0.0.1:1")
	_, _, err := c.Predict(context.Background(), []byte(`{}`))
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestPredictTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	c := NewClient(server.URL, 50*time.Millisecond, 50*time.Millisecond)
	_, _, err := c.Predict(context.Background(), []byte(`{}`))
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestHealth(t *testing.T) {
	testCases := []struct {
		name   string
		status int
		want   string
	}{
		{"2xx is online", http.StatusOK, "online"},
		{"5xx is offline", http.StatusInternalServerError, "offline"},
		{"4xx is offline", http.StatusNotFound, "offline"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/health", r.URL.Path)
				w.WriteHeader(tc.status)
			}))
			defer server.Close()

			c := newTestClient(server.URL)
			assert.Equal(t, tc.want, c.Health(context.Background()))
		})
	}
}

func TestHealthNeverRaises(t *testing.T) {
	c := newTestClient("http://127.0.0.1:1")
	assert.Equal(t, "offline", c.Health(context.Background()))
}
