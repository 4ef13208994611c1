package github

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Scanner fans one Worker goroutine out per configured repository and
// joins them all before returning. The first worker to fail cancels
// its siblings through the group context; no partial results survive a
// failed run. Results come back in completion order.
type Scanner struct {
	worker *Worker
}

func NewScanner(worker *Worker) *Scanner {
	return &Scanner{worker: worker}
}

func (s *Scanner) Run(ctx context.Context, repos []string) ([]*Result, error) {
	g, ctx := errgroup.WithContext(ctx)
	results := make(chan *Result, len(repos))

	for _, repo := range repos {
		repo := repo
		g.Go(func() error {
			res, err := s.worker.Process(ctx, repo)
			if err != nil {
				return err
			}
			results <- res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	close(results)

	out := make([]*Result, 0, len(repos))
	for res := range results {
		out = append(out, res)
	}
	return out, nil
}
