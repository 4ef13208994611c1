package github

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Worker processes one repository end to end: summary, every commit
// page, contributor resolution, tally. It produces a Result only when
// the whole history has been walked; a failed worker contributes
// nothing.
type Worker struct {
	fetcher  Fetcher
	resolver *Resolver
	token    string
	perPage  int
}

func NewWorker(fetcher Fetcher, resolver *Resolver, token string, perPage int) *Worker {
	return &Worker{
		fetcher:  fetcher,
		resolver: resolver,
		token:    token,
		perPage:  perPage,
	}
}

func (w *Worker) Process(ctx context.Context, repo string) (*Result, error) {
	log := logrus.WithField("repo", repo)
	log.Info("start processing")

	body, err := w.fetcher.FetchJSON(ctx, summaryURL(repo, w.token))
	if err != nil {
		return nil, err
	}
	var summary RepoSummary
	if err := json.Unmarshal(body, &summary); err != nil {
		return nil, fmt.Errorf("decode summary for %s: %w", repo, err)
	}
	log.Debugf("loaded summary name=%q description=%q", summary.Name, summary.Description)

	commiters := make(map[string]int)
	for page := 1; ; page++ {
		body, err := w.fetcher.FetchJSON(ctx, commitsURL(repo, w.token, w.perPage, page))
		if err != nil {
			return nil, err
		}
		var commits []Commit
		if err := json.Unmarshal(body, &commits); err != nil {
			return nil, fmt.Errorf("decode commits page %d for %s: %w", page, repo, err)
		}
		// An empty page means the history is exhausted. A transient
		// empty response is indistinguishable from end-of-history; the
		// API does not let us tell them apart.
		if len(commits) == 0 {
			break
		}
		log.WithField("page", page).Debugf("resolving %d commits", len(commits))

		for _, commit := range commits {
			login, ok, err := w.resolver.Resolve(ctx, commit)
			if err != nil {
				return nil, err
			}
			if ok {
				commiters[login]++
			}
		}
	}

	log.Info("finished processing")
	return &Result{
		Repo:        repo,
		Name:        summary.Name,
		Description: summary.Description,
		Commiters:   commiters,
	}, nil
}
