package model

import (
	"fmt"
	"sort"
)

// LanguageNotSpecified is displayed when github reports no primary language
const LanguageNotSpecified = "not specified"

// Repository is the projection of a github repository needed to rank and display it
type Repository struct {
	StargazersCount int     `json:"stargazersCount"`
	Name            string  `json:"name"`
	Language        *string `json:"language"` // nil when github reports no primary language
}

func (r Repository) String() string {
	language := LanguageNotSpecified
	if r.Language != nil {
		language = *r.Language
	}

	return fmt.Sprintf("Name: %s, language: %s, %d", r.Name, language, r.StargazersCount)
}

// FilterStarred returns a new slice without the repositories having zero stars
func FilterStarred(repos []Repository) []Repository {
	starred := make([]Repository, 0, len(repos))

	for _, r := range repos {
		if r.StargazersCount > 0 {
			starred = append(starred, r)
		}
	}

	return starred
}

// SortByStars orders repositories by star count, most starred first.
// The relative order of repositories with the same count is not part of the contract.
func SortByStars(repos []Repository) {
	sort.SliceStable(repos, func(i, j int) bool {
		return repos[i].StargazersCount > repos[j].StargazersCount
	})
}
