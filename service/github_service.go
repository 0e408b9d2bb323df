package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/Scalingo/sclng-starred-repos/config"
	"github.com/Scalingo/sclng-starred-repos/model"
	"github.com/google/go-github/v66/github"

	log "github.com/sirupsen/logrus"
)

// github returns at most 100 repositories per page, only the first page is fetched
const repositoriesPerPage = 100

// RepoClient fetches the repositories of an organization from a hosting backend
// every failure is returned as a *model.FetchError
type RepoClient interface {
	FetchRepos(ctx context.Context, org string) ([]model.Repository, error)
}

type githubService struct {
	githubClient *github.Client
	config       config.Config
}

// NewGithubClient builds the go-github client used by the github service
// httpClient can be nil to use the default transport and its timeouts
func NewGithubClient(cfg config.Config, httpClient *http.Client) (*github.Client, error) {
	githubClient := github.NewClient(httpClient)

	if cfg.Github.BaseURL != "" {
		baseURL, err := url.Parse(cfg.Github.BaseURL)
		if err != nil {
			return nil, err
		}

		if !strings.HasSuffix(baseURL.Path, "/") {
			return nil, fmt.Errorf("github base url %q must have a trailing slash", cfg.Github.BaseURL)
		}

		githubClient.BaseURL = baseURL
	}

	if cfg.Github.UserAgent != "" {
		githubClient.UserAgent = cfg.Github.UserAgent
	}

	return githubClient, nil
}

func NewGithubService(config config.Config, githubClient *github.Client) RepoClient {
	return githubService{
		githubClient: githubClient,
		config:       config,
	}
}

// FetchRepos lists the repositories of the organization, a single attempt is made
// the order returned by github is preserved
func (s githubService) FetchRepos(ctx context.Context, org string) ([]model.Repository, error) {
	log.WithFields(log.Fields{
		"organization": org,
		"perPage":      repositoriesPerPage,
	}).Debug("fetch organization repositories from github")

	// Repositories.ListByOrg replaces the Accept header with preview media types,
	// NewRequest keeps application/vnd.github.v3+json
	req, err := s.githubClient.NewRequest(
		http.MethodGet,
		fmt.Sprintf("orgs/%v/repos?per_page=%d", org, repositoriesPerPage),
		nil,
	)

	if err != nil {
		return nil, model.NewTransportError(0, err)
	}

	var repos []*github.Repository
	if _, err := s.githubClient.Do(ctx, req, &repos); err != nil {
		return nil, s.HandleRequestErrors(err)
	}

	// empty and null bodies decode without error but leave the slice nil
	if repos == nil {
		return nil, model.NewMalformedError("response body is not a json array")
	}

	records := make([]model.Repository, 0, len(repos))

	for i, r := range repos {
		record, err := toRepository(i, r)
		if err != nil {
			log.WithError(err).Debug("repository found with invalid information")
			return nil, err
		}

		records = append(records, record)
	}

	log.WithField("numberOfRepositories", len(records)).Debug("repositories fetched from github")

	return records, nil
}

// toRepository checks the fields required to rank and display a repository
func toRepository(index int, r *github.Repository) (model.Repository, error) {
	if r == nil {
		return model.Repository{}, model.NewMalformedError("repository at index %d is null", index)
	}

	if r.Name == nil || *r.Name == "" {
		return model.Repository{}, model.NewMalformedError("repository at index %d has no name", index)
	}

	if r.StargazersCount == nil {
		return model.Repository{}, model.NewMalformedError("repository %q has no stargazers_count", *r.Name)
	}

	if *r.StargazersCount < 0 {
		return model.Repository{}, model.NewMalformedError("repository %q has a negative stargazers_count", *r.Name)
	}

	return model.Repository{
		StargazersCount: *r.StargazersCount,
		Name:            *r.Name,
		Language:        r.Language,
	}, nil
}

// HandleRequestErrors converts go-github errors to the fetch error kinds
// so callers never depend on the transport library
func (s githubService) HandleRequestErrors(err error) error {
	var errResponse *github.ErrorResponse
	if errors.As(err, &errResponse) && errResponse.Response != nil {
		status := errResponse.Response.StatusCode

		if status == http.StatusNotFound {
			log.Debug("github answered not found for organization")
			return model.NewNotFoundError(status)
		}

		log.WithError(err).WithField("status", status).Debug("github answered with an error status")
		return model.NewTransportError(status, err)
	}

	var rateLimitErr *github.RateLimitError
	if errors.As(err, &rateLimitErr) && rateLimitErr.Response != nil {
		return model.NewTransportError(rateLimitErr.Response.StatusCode, err)
	}

	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) && abuseErr.Response != nil {
		return model.NewTransportError(abuseErr.Response.StatusCode, err)
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, io.ErrUnexpectedEOF) {
		log.WithError(err).Debug("unable to decode github response")
		return model.NewMalformedError("%v", err)
	}

	log.WithError(err).Debug("error caught when fetching data from github")
	return model.NewTransportError(0, err)
}
