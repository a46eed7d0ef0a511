package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoints/staking-ledger/internal/observability/metrics"
	"github.com/zoints/staking-ledger/internal/types"
)

type testHttpClient struct {
	baseURL string
	timeout time.Duration
	client  *http.Client
}

func (c *testHttpClient) GetBaseURL() string                     { return c.baseURL }
func (c *testHttpClient) GetDefaultRequestTimeout() time.Duration { return c.timeout }
func (c *testHttpClient) GetHttpClient() *http.Client             { return c.client }

type echoRequest struct {
	Value string `json:"value"`
}

type echoResponse struct {
	Value  string `json:"value"`
	Method string `json:"method"`
}

func newTestHttpClient(t *testing.T, handler http.HandlerFunc) *testHttpClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return &testHttpClient{
		baseURL: server.URL,
		timeout: time.Second,
		client:  server.Client(),
	}
}

func TestSendRequest(t *testing.T) {
	metrics.Init(0)
	ctx := t.Context()

	t.Run("post with body and headers", func(t *testing.T) {
		c := newTestHttpClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/echo", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			assert.Equal(t, "secret", r.Header.Get("X-Api-Key"))

			var req echoRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			json.NewEncoder(w).Encode(echoResponse{Value: req.Value, Method: r.Method}) //nolint:errcheck
		})

		opts := &HttpClientOptions{
			Path:         "/v1/echo",
			TemplatePath: "/v1/echo",
			Headers:      map[string]string{"X-Api-Key": "secret"},
		}
		resp, err := SendRequest[echoRequest, echoResponse](ctx, c, http.MethodPost, opts, &echoRequest{Value: "hello"})
		require.NoError(t, err)
		assert.Equal(t, "hello", resp.Value)
		assert.Equal(t, http.MethodPost, resp.Method)
	})

	t.Run("error status", func(t *testing.T) {
		c := newTestHttpClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})

		opts := &HttpClientOptions{Path: "/v1/echo", TemplatePath: "/v1/echo"}
		_, err := SendRequest[any, echoResponse](ctx, c, http.MethodGet, opts, nil)
		require.Error(t, err)

		var typed *types.Error
		require.ErrorAs(t, err, &typed)
		assert.Equal(t, http.StatusServiceUnavailable, typed.StatusCode)
		assert.Equal(t, types.ServiceUnavailable, typed.ErrorCode)
	})

	t.Run("timeout", func(t *testing.T) {
		c := newTestHttpClient(t, func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(time.Second):
			}
		})

		opts := &HttpClientOptions{Path: "/slow", TemplatePath: "/slow", Timeout: 10 * time.Millisecond}
		_, err := SendRequest[any, echoResponse](ctx, c, http.MethodGet, opts, nil)

		var typed *types.Error
		require.ErrorAs(t, err, &typed)
		assert.Equal(t, http.StatusRequestTimeout, typed.StatusCode)
		assert.Equal(t, types.RequestTimeout, typed.ErrorCode)
	})

	t.Run("malformed response", func(t *testing.T) {
		c := newTestHttpClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"value":`)) //nolint:errcheck
		})

		opts := &HttpClientOptions{Path: "/v1/echo", TemplatePath: "/v1/echo"}
		_, err := SendRequest[any, echoResponse](ctx, c, http.MethodGet, opts, nil)

		var typed *types.Error
		require.ErrorAs(t, err, &typed)
		assert.Equal(t, http.StatusInternalServerError, typed.StatusCode)
	})
}

func TestStatusToErrorCode(t *testing.T) {
	assert.Equal(t, types.NotFound, statusToErrorCode(http.StatusNotFound))
	assert.Equal(t, types.BadRequest, statusToErrorCode(http.StatusBadRequest))
	assert.Equal(t, types.ServiceUnavailable, statusToErrorCode(http.StatusServiceUnavailable))
	assert.Equal(t, types.InternalServiceError, statusToErrorCode(http.StatusBadGateway))
}
