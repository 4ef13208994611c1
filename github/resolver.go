package github

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/urizennnn/geocommit-scanner/cache"
)

// Resolver turns a raw commit into a matching contributor login, or
// nothing. Profiles are fetched at most once per login per run: the
// shared cache answers repeats, and the singleflight group collapses
// concurrent first lookups for the same login from different repo
// workers into one request.
type Resolver struct {
	fetcher   Fetcher
	profiles  *cache.Cache[*Profile]
	group     singleflight.Group
	token     string
	locations []string
}

func NewResolver(fetcher Fetcher, profiles *cache.Cache[*Profile], token string, locations []string) *Resolver {
	return &Resolver{
		fetcher:   fetcher,
		profiles:  profiles,
		token:     token,
		locations: locations,
	}
}

// Resolve returns the commit author's login and true when the author's
// profile location matches one of the configured substrings. Commits
// with no author, or an author without a login, resolve to nothing.
func (r *Resolver) Resolve(ctx context.Context, commit Commit) (string, bool, error) {
	if commit.Author == nil || commit.Author.Login == "" {
		return "", false, nil
	}

	profile, err := r.profile(ctx, commit.Author.Login, commit.Author.URL)
	if err != nil {
		return "", false, err
	}
	if r.matchesLocation(profile.Location) {
		return profile.Login, true, nil
	}
	return "", false, nil
}

func (r *Resolver) profile(ctx context.Context, login, authorURL string) (*Profile, error) {
	if p, ok := r.profiles.Get(login); ok {
		return p, nil
	}

	v, err, _ := r.group.Do(login, func() (interface{}, error) {
		// A sibling may have stored the profile while this call waited
		// for the flight slot.
		if p, ok := r.profiles.Get(login); ok {
			return p, nil
		}
		body, err := r.fetcher.FetchJSON(ctx, profileURL(authorURL, r.token))
		if err != nil {
			return nil, err
		}
		var p Profile
		if err := json.Unmarshal(body, &p); err != nil {
			return nil, fmt.Errorf("decode profile for %s: %w", login, err)
		}
		r.profiles.Set(login, &p)
		return &p, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Profile), nil
}

func (r *Resolver) matchesLocation(location string) bool {
	if location == "" {
		return false
	}
	loc := strings.ToLower(location)
	for _, want := range r.locations {
		if strings.Contains(loc, strings.ToLower(want)) {
			return true
		}
	}
	return false
}
