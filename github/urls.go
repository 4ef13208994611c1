package github

import "fmt"

const apiBase = "https://api.github.com"

func summaryURL(repo, token string) string {
	return fmt.Sprintf("%s/repos/%s?access_token=%s", apiBase, repo, token)
}

func commitsURL(repo, token string, perPage, page int) string {
	return fmt.Sprintf("%s/repos/%s/commits?access_token=%s&per_page=%d&page=%d",
		apiBase, repo, token, perPage, page)
}

// profileURL appends the token to the author URL carried inside the
// commit payload; that URL is fetched as-is, not rebuilt.
func profileURL(authorURL, token string) string {
	return fmt.Sprintf("%s?access_token=%s", authorURL, token)
}
