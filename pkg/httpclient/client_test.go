package httpclient_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Behyna/sms-services/scheduler/pkg/httpclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// echoes method, X-Test header and body back to the caller
func setupMockServer() *httptest.Server {
	handler := http.NewServeMux()
	handler.HandleFunc("/test", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("X-Method", r.Method)
		w.Header().Set("X-Test", r.Header.Get("X-Test"))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
	})
	handler.HandleFunc("/slow", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	})
	return httptest.NewServer(handler)
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestHttpClient_Methods(t *testing.T) {
	server := setupMockServer()
	defer server.Close()

	client := httpclient.NewHTTPClient(5 * time.Second)
	ctx := context.Background()
	headers := map[string]string{"X-Test": "yes"}

	testCases := []struct {
		name   string
		method string
		call   func() (*http.Response, error)
		body   string
	}{
		{
			name:   "get",
			method: http.MethodGet,
			call:   func() (*http.Response, error) { return client.Get(ctx, server.URL+"/test", headers) },
		},
		{
			name:   "post",
			method: http.MethodPost,
			call: func() (*http.Response, error) {
				return client.Post(ctx, server.URL+"/test", strings.NewReader(`{"a":1}`), headers)
			},
			body: `{"a":1}`,
		},
		{
			name:   "put",
			method: http.MethodPut,
			call: func() (*http.Response, error) {
				return client.Put(ctx, server.URL+"/test", strings.NewReader(`{"b":2}`), headers)
			},
			body: `{"b":2}`,
		},
		{
			name:   "delete",
			method: http.MethodDelete,
			call:   func() (*http.Response, error) { return client.Delete(ctx, server.URL+"/test", headers) },
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := tc.call()
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, tc.method, resp.Header.Get("X-Method"))
			assert.Equal(t, "yes", resp.Header.Get("X-Test"))
			assert.Equal(t, tc.body, readBody(t, resp))
		})
	}
}

func TestHttpClient_Do(t *testing.T) {
	server := setupMockServer()
	defer server.Close()

	client := httpclient.NewHTTPClient(5 * time.Second)

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, server.URL+"/test", nil)
	require.NoError(t, err)

	resp, err := client.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, http.MethodGet, resp.Header.Get("X-Method"))
	_ = readBody(t, resp)
}

func TestHttpClient_Timeout(t *testing.T) {
	server := setupMockServer()
	defer server.Close()

	client := httpclient.NewHTTPClient(20 * time.Millisecond)

	_, err := client.Get(context.Background(), server.URL+"/slow", nil)
	assert.Error(t, err)
}
