package controller

import (
	"context"
	"fmt"
	"io"

	"github.com/Scalingo/sclng-starred-repos/model"
	"github.com/Scalingo/sclng-starred-repos/service"
	log "github.com/sirupsen/logrus"
)

type CLIController interface {
	Run(ctx context.Context, org string) int
}

type cliController struct {
	repoClient service.RepoClient
	stdout     io.Writer
	stderr     io.Writer
}

func NewCLIController(repoClient service.RepoClient, stdout io.Writer, stderr io.Writer) CLIController {
	return cliController{
		repoClient: repoClient,
		stdout:     stdout,
		stderr:     stderr,
	}
}

// Run fetches the repositories once and prints the summary
// on failure nothing is printed on stdout and a single line is written on stderr
// the returned value is the process exit code
func (c cliController) Run(ctx context.Context, org string) int {
	repos, err := c.repoClient.FetchRepos(ctx, org)
	if err != nil {
		cliErr := model.NewCLIError(err)
		log.WithError(err).WithField("exitCode", cliErr.ExitCode).Debug("unable to fetch repositories")

		fmt.Fprintln(c.stderr, cliErr.Message)
		return cliErr.ExitCode
	}

	service.Summarize(c.stdout, repos)
	return model.ExitOK
}
