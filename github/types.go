package github

import "context"

// Author is the GitHub account attached to a commit. Commits made with
// an email that maps to no account come back with a null author.
type Author struct {
	Login string `json:"login"`
	URL   string `json:"url"`
}

// Commit carries only the fields the pipeline reads; the rest of the
// API payload is ignored.
type Commit struct {
	SHA    string  `json:"sha"`
	Author *Author `json:"author"`
}

// Profile is the public metadata of one contributor account. Location
// is free text and frequently empty.
type Profile struct {
	Login    string `json:"login"`
	Name     string `json:"name"`
	Location string `json:"location"`
	HTMLURL  string `json:"html_url"`
}

type RepoSummary struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Result is the outcome of scanning one repository: every contributor
// whose profile matched a configured location, with the number of
// commits they authored. Immutable once produced.
type Result struct {
	Repo        string
	Name        string
	Description string
	Commiters   map[string]int
}

// Fetcher is satisfied by fetch.Client; tests substitute fakes.
type Fetcher interface {
	FetchJSON(ctx context.Context, url string) ([]byte, error)
}
