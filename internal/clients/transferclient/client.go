package transferclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"

	"github.com/zoints/staking-ledger/internal/clients/client"
	"github.com/zoints/staking-ledger/internal/config"
	"github.com/zoints/staking-ledger/internal/ledger"
	"github.com/zoints/staking-ledger/internal/types"
)

const accountEndpoint = "/v1/accounts/{principal}/{asset}"

type Client struct {
	httpClient *http.Client
	cfg        *config.TransferConfig
}

func NewClient(cfg *config.TransferConfig) *Client {
	return &Client{
		httpClient: &http.Client{},
		cfg:        cfg,
	}
}

func (c *Client) GetBaseURL() string {
	return c.cfg.URL
}

func (c *Client) GetDefaultRequestTimeout() time.Duration {
	return c.cfg.Timeout
}

func (c *Client) GetHttpClient() *http.Client {
	return c.httpClient
}

type accountResponse struct {
	Principal string `json:"principal"`
	Asset     string `json:"asset"`
	Account   string `json:"account"`
	Balance   uint64 `json:"balance"`
}

// VerifyAssociated looks up principal's account for asset. A missing account
// is reported as ledger.ErrAccountNotAssociated and is not retried.
func (c *Client) VerifyAssociated(ctx context.Context, principal, asset string) (uint64, error) {
	type empty struct{}

	call := func() (uint64, error) {
		opts := &client.HttpClientOptions{
			Path:         fmt.Sprintf("/v1/accounts/%s/%s", url.PathEscape(principal), url.PathEscape(asset)),
			TemplatePath: accountEndpoint,
		}

		resp, err := client.SendRequest[empty, accountResponse](ctx, c, http.MethodGet, opts, nil)
		if err != nil {
			return 0, err
		}
		if resp.Account == "" {
			return 0, fmt.Errorf("%w: %s has no %s account", ledger.ErrAccountNotAssociated, principal, asset)
		}

		return resp.Balance, nil
	}

	balance, err := retry.DoWithData(call,
		retry.Context(ctx),
		retry.Attempts(c.cfg.MaxRetryTimes),
		retry.Delay(c.cfg.RetryInterval),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isRetryable),
		retry.OnRetry(func(n uint, err error) {
			log.Ctx(ctx).Debug().
				Uint("attempt", n+1).
				Uint("max_attempts", c.cfg.MaxRetryTimes).
				Err(err).
				Msg("transfer service request failed, retrying")
		}))
	if err != nil {
		var typed *types.Error
		if errors.As(err, &typed) && typed.StatusCode == http.StatusNotFound {
			return 0, fmt.Errorf("%w: %s has no %s account", ledger.ErrAccountNotAssociated, principal, asset)
		}
		return 0, fmt.Errorf("failed to verify %s account of %s: %w", asset, principal, err)
	}

	return balance, nil
}

func isRetryable(err error) bool {
	var typed *types.Error
	if !errors.As(err, &typed) {
		return false
	}
	return typed.IsRetryable() ||
		typed.StatusCode == http.StatusTooManyRequests ||
		typed.StatusCode == http.StatusRequestTimeout
}
