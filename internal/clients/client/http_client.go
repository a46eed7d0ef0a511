package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/zoints/staking-ledger/internal/observability/metrics"
	"github.com/zoints/staking-ledger/internal/types"
)

type HttpClient interface {
	GetBaseURL() string
	GetDefaultRequestTimeout() time.Duration
	GetHttpClient() *http.Client
}

type HttpClientOptions struct {
	Timeout time.Duration
	Path    string
	// TemplatePath is the path without parameters, used as metrics label
	TemplatePath string
	Headers      map[string]string
}

// sendRequest sends an HTTP request and decodes the JSON response into R.
// Non 2xx responses are returned as *types.Error carrying the status code.
func sendRequest[I any, R any](
	ctx context.Context, client HttpClient, method string, opts *HttpClientOptions, input *I,
) (*R, error) {
	timeout := client.GetDefaultRequestTimeout()
	// If timeout is set, use it instead of the default
	if opts.Timeout != 0 {
		timeout = opts.Timeout
	}
	// Set a timeout for the request
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	completeURL := client.GetBaseURL() + opts.Path

	var req *http.Request
	var requestError error
	if input != nil && method != http.MethodGet {
		body, err := json.Marshal(input)
		if err != nil {
			return nil, types.NewErrorWithMsg(
				http.StatusInternalServerError,
				types.InternalServiceError,
				"failed to marshal request body",
			)
		}
		req, requestError = http.NewRequestWithContext(ctxWithTimeout, method, completeURL, bytes.NewBuffer(body))
	} else {
		req, requestError = http.NewRequestWithContext(ctxWithTimeout, method, completeURL, nil)
	}
	if requestError != nil {
		return nil, types.NewErrorWithMsg(
			http.StatusInternalServerError,
			types.InternalServiceError,
			requestError.Error(),
		)
	}
	// Set headers
	req.Header.Set("Content-Type", "application/json")
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := client.GetHttpClient().Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded || ctxWithTimeout.Err() == context.DeadlineExceeded {
			return nil, types.NewErrorWithMsg(
				http.StatusRequestTimeout,
				types.RequestTimeout,
				fmt.Sprintf("request timeout after %d ms", timeout.Milliseconds()),
			)
		}
		return nil, types.NewErrorWithMsg(
			http.StatusInternalServerError,
			types.InternalServiceError,
			fmt.Sprintf("failed to send request to %s: %s", opts.TemplatePath, err.Error()),
		)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Ctx(ctx).Debug().
			Int("status", resp.StatusCode).
			Str("path", opts.TemplatePath).
			Str("body", string(body)).
			Msg("unexpected response status")

		return nil, types.NewErrorWithMsg(
			resp.StatusCode,
			statusToErrorCode(resp.StatusCode),
			fmt.Sprintf("request to %s failed with status %d", opts.TemplatePath, resp.StatusCode),
		)
	}

	var output R
	if err := json.NewDecoder(resp.Body).Decode(&output); err != nil {
		return nil, types.NewErrorWithMsg(
			http.StatusInternalServerError,
			types.InternalServiceError,
			fmt.Sprintf("failed to decode response from %s: %s", opts.TemplatePath, err.Error()),
		)
	}

	return &output, nil
}

func SendRequest[I any, R any](
	ctx context.Context, client HttpClient, method string, opts *HttpClientOptions, input *I,
) (*R, error) {
	timer := metrics.StartClientRequestDurationTimer(
		client.GetBaseURL(), method, opts.TemplatePath,
	)

	result, err := sendRequest[I, R](ctx, client, method, opts, input)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if typed, ok := err.(*types.Error); ok {
			statusCode = typed.StatusCode
		}
		timer(statusCode)
		return nil, err
	}

	timer(http.StatusOK)
	return result, nil
}

func statusToErrorCode(status int) types.ErrorCode {
	switch {
	case status == http.StatusNotFound:
		return types.NotFound
	case status == http.StatusBadRequest:
		return types.BadRequest
	case status == http.StatusForbidden:
		return types.Forbidden
	case status == http.StatusUnprocessableEntity:
		return types.UnprocessableEntity
	case status == http.StatusRequestTimeout:
		return types.RequestTimeout
	case status == http.StatusServiceUnavailable:
		return types.ServiceUnavailable
	default:
		return types.InternalServiceError
	}
}
