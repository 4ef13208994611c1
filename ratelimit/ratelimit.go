package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter paces outgoing GitHub API requests. This is independent of
// the fetcher's cooldown retry: the limiter spaces requests out before
// they are sent, the cooldown reacts to rejected ones.
type Limiter struct {
	github *rate.Limiter
}

func New(githubReqPerMin int) *Limiter {
	return &Limiter{
		github: rate.NewLimiter(rate.Limit(float64(githubReqPerMin)/60.0), githubReqPerMin),
	}
}

func (l *Limiter) WaitGithub(ctx context.Context) error {
	return l.github.Wait(ctx)
}
