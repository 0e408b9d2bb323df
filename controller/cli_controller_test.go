package controller

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/Scalingo/sclng-starred-repos/config"
	"github.com/Scalingo/sclng-starred-repos/model"
	"github.com/Scalingo/sclng-starred-repos/service"
	githubMock "github.com/migueleliasweb/go-github-mock/src/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRepoClient returns fixed results and records the requested organizations
type stubRepoClient struct {
	repos []model.Repository
	err   error
	orgs  []string
}

func (s *stubRepoClient) FetchRepos(_ context.Context, org string) ([]model.Repository, error) {
	s.orgs = append(s.orgs, org)
	return s.repos, s.err
}

func githubBackedClient(t *testing.T, status int, body string) service.RepoClient {
	mockedHTTPClient := githubMock.NewMockedHTTPClient(
		githubMock.WithRequestMatchHandler(
			githubMock.GetOrgsReposByOrg,
			http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(status)

				if _, err := w.Write([]byte(body)); err != nil {
					t.Error("unable to configure mock http client")
				}
			}),
		),
	)

	conf := config.GetDefault()
	githubClient, err := service.NewGithubClient(*conf, mockedHTTPClient)
	require.NoError(t, err)

	return service.NewGithubService(*conf, githubClient)
}

// TestRun will test function Run against a mocked github backend
func TestRun(t *testing.T) {
	tests := []struct {
		name           string
		status         int
		body           string
		expectedCode   int
		expectedStdout string
		expectedStderr string
	}{
		{
			name:   "Starred repositories printed",
			status: http.StatusOK,
			body: `[
				{"stargazers_count":5,"name":"a","language":"Go"},
				{"stargazers_count":0,"name":"b","language":null},
				{"stargazers_count":20,"name":"c","language":"Rust"}
			]`,
			expectedCode:   model.ExitOK,
			expectedStdout: "Name: c, language: Rust, 20\nName: a, language: Go, 5\n",
		},
		{
			name:         "Empty organization",
			status:       http.StatusOK,
			body:         `[]`,
			expectedCode: model.ExitOK,
		},
		{
			name:           "Organization not found",
			status:         http.StatusNotFound,
			body:           `{"message":"Not Found"}`,
			expectedCode:   model.ExitNotFound,
			expectedStderr: "Error: organization not found\n",
		},
		{
			name:           "Missing required fields",
			status:         http.StatusOK,
			body:           `[{"stargazers_count":5,"name":"a"},{"language":"Go"}]`,
			expectedCode:   model.ExitMalformed,
			expectedStderr: "Error: response data does not match the expected shape: repository at index 1 has no name\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer

			cli := NewCLIController(githubBackedClient(t, tt.status, tt.body), &stdout, &stderr)
			code := cli.Run(context.Background(), "sysart")

			assert.Equal(t, tt.expectedCode, code)
			assert.Equal(t, tt.expectedStdout, stdout.String())
			assert.Equal(t, tt.expectedStderr, stderr.String())
		})
	}
}

func TestRunServerError(t *testing.T) {
	var stdout, stderr bytes.Buffer

	cli := NewCLIController(githubBackedClient(t, http.StatusInternalServerError, `{"message":"Server Error"}`), &stdout, &stderr)
	code := cli.Run(context.Background(), "sysart")

	assert.Equal(t, model.ExitTransport, code)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "Error: http connection failed - ")
	assert.Contains(t, stderr.String(), "500")
	assert.Equal(t, 1, bytes.Count(stderr.Bytes(), []byte("\n")))
}

func TestRunFetchesOnce(t *testing.T) {
	var stdout, stderr bytes.Buffer
	client := &stubRepoClient{err: model.NewNotFoundError(http.StatusNotFound)}

	code := NewCLIController(client, &stdout, &stderr).Run(context.Background(), "unknown-org")

	assert.Equal(t, model.ExitNotFound, code)
	assert.Equal(t, []string{"unknown-org"}, client.orgs)
	assert.Empty(t, stdout.String())
}
