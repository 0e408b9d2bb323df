package service

import (
	"fmt"
	"io"

	"github.com/Scalingo/sclng-starred-repos/model"
	log "github.com/sirupsen/logrus"
)

// Summary returns the starred repositories, most starred first
// the input slice is left untouched
func Summary(repos []model.Repository) []model.Repository {
	starred := model.FilterStarred(repos)
	model.SortByStars(starred)

	return starred
}

// Summarize writes one line per starred repository, most starred first
func Summarize(w io.Writer, repos []model.Repository) {
	for _, r := range Summary(repos) {
		if _, err := fmt.Fprintln(w, r); err != nil {
			log.WithError(err).Debug("unable to write repository summary")
			return
		}
	}
}
