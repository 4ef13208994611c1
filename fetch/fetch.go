package fetch

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/urizennnn/geocommit-scanner/ratelimit"
)

// errBadRequest marks a request that could not even be constructed
// (malformed URL). Retrying it can never succeed.
var errBadRequest = errors.New("fetch: unbuildable request")

// Client issues rate-limited GETs against the GitHub API and absorbs
// every recoverable failure: any non-200 status and any transport
// error put the request to sleep for a fixed cooldown and then repeat
// it, with no retry cap. The only errors surfaced to callers are
// context cancellation and a request that cannot be built at all.
type Client struct {
	http     *http.Client
	limiter  *ratelimit.Limiter
	cooldown time.Duration

	// sleep is swapped out in tests so retries do not wait in real time.
	sleep func(ctx context.Context, d time.Duration) error
}

func New(limiter *ratelimit.Limiter, timeout, cooldown time.Duration) *Client {
	return &Client{
		http:     &http.Client{Timeout: timeout},
		limiter:  limiter,
		cooldown: cooldown,
		sleep:    sleepCtx,
	}
}

// FetchJSON GETs url and returns the raw response body of the first
// attempt that comes back 200.
func (c *Client) FetchJSON(ctx context.Context, url string) ([]byte, error) {
	for {
		if c.limiter != nil {
			if err := c.limiter.WaitGithub(ctx); err != nil {
				return nil, err
			}
		}

		body, status, err := c.attempt(ctx, url)
		switch {
		case err == nil && status == http.StatusOK:
			return body, nil
		case ctx.Err() != nil:
			return nil, ctx.Err()
		case err == errBadRequest:
			return nil, err
		case err != nil:
			logrus.WithError(err).WithField("url", url).Error("request failed")
		default:
			logrus.WithFields(logrus.Fields{"status": status, "url": url}).Error("got non-200 status")
		}

		if err := c.sleep(ctx, c.cooldown); err != nil {
			return nil, err
		}
	}
}

func (c *Client) attempt(ctx context.Context, url string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, errBadRequest
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused across retries.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, resp.StatusCode, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
