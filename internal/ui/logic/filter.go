package logic

import (
	"strings"

	"ghgrip/internal/domain"
)

// MatchesFilter checks if a repo matches the given filter query.
// "visibility:private" and "visibility:public" select by visibility; any
// other query matches name or description.
func MatchesFilter(repo domain.RepositorySummary, filterQuery string) bool {
	if filterQuery == "" {
		return true
	}

	query := strings.ToLower(strings.TrimSpace(filterQuery))

	if strings.HasPrefix(query, "visibility:") {
		switch strings.TrimPrefix(query, "visibility:") {
		case "private":
			return repo.IsPrivate
		case "public":
			return !repo.IsPrivate
		default:
			return false
		}
	}

	return strings.Contains(strings.ToLower(repo.Name), query) ||
		strings.Contains(strings.ToLower(repo.DescriptionText()), query)
}

// FilterRepositories returns the repos matching filterQuery, in order
func FilterRepositories(repos []domain.RepositorySummary, filterQuery string) []domain.RepositorySummary {
	if filterQuery == "" {
		return repos
	}
	out := make([]domain.RepositorySummary, 0, len(repos))
	for _, r := range repos {
		if MatchesFilter(r, filterQuery) {
			out = append(out, r)
		}
	}
	return out
}

// PerformSearch returns the row indices whose name contains query
func PerformSearch(query string, repos []domain.RepositorySummary) []int {
	if query == "" {
		return nil
	}
	lowerQuery := strings.ToLower(query)

	var results []int
	for i, r := range repos {
		if strings.Contains(strings.ToLower(r.Name), lowerQuery) {
			results = append(results, i)
		}
	}
	return results
}

// NextMatch picks the match after (or before) the current one, wrapping
func NextMatch(matches []int, current int, forward bool) int {
	if len(matches) == 0 {
		return 0
	}
	if forward {
		return (current + 1) % len(matches)
	}
	return (current - 1 + len(matches)) % len(matches)
}
