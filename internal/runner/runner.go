// Package runner ties credential generation, form submission and
// result recording together into a single run.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/jakopako/gosignup/internal/browser"
	"github.com/jakopako/gosignup/internal/config"
	"github.com/jakopako/gosignup/internal/credentials"
	"github.com/jakopako/gosignup/internal/log"
	"github.com/jakopako/gosignup/internal/output"
	"github.com/jakopako/gosignup/internal/register"
)

// Report summarizes a run.
type Report struct {
	Credentials credentials.Credentials
	Results     []register.Result
	// Path is the location the record has been written to.
	Path string
}

// Run opens a browser session with open, registers on every configured
// target in order and writes the credentials together with the results.
// The session is closed exactly once, no matter how the run ends. Failures
// on a single target don't stop the run, anything else is logged and returned.
func Run(ctx context.Context, c *config.Config, open browser.Opener) (report *Report, err error) {
	logger := log.LoggerFromContext(ctx)

	logger.Info("starting browser")
	s, err := open(ctx, &c.Browser)
	if err != nil {
		logger.Error(fmt.Sprintf("an unexpected error occurred: %v", err))
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Error(fmt.Sprintf("an unexpected error occurred: %v", r), slog.String("stack", string(debug.Stack())))
			err = fmt.Errorf("panic during run: %v", r)
		}
		logger.Info("closing browser")
		if cerr := s.Close(); cerr != nil {
			logger.Warn(fmt.Sprintf("error while closing browser: %v", cerr))
		}
	}()

	report = &Report{
		Credentials: credentials.NewGenerator(&c.Credentials).Generate(),
	}
	logger.Debug(fmt.Sprintf("generated credentials for user %s", report.Credentials.Username))

	for i := range c.Targets {
		t := &c.Targets[i]
		ok := register.Register(ctx, s, t, report.Credentials)
		report.Results = append(report.Results, register.Result{Target: t.Name, Success: ok})
	}

	for _, r := range report.Results {
		logger.Info(fmt.Sprintf("%s registration status: %s", r.Target, register.StatusMessage(r)))
	}

	writer, err := output.NewWriter(&c.Writer)
	if err != nil {
		logger.Error(fmt.Sprintf("an unexpected error occurred: %v", err))
		return report, err
	}
	report.Path, err = writer.Write(report.Credentials, report.Results)
	if err != nil {
		logger.Error(fmt.Sprintf("an unexpected error occurred: %v", err))
		return report, err
	}
	logger.Info(fmt.Sprintf("credentials saved to %s", report.Path))
	return report, nil
}
