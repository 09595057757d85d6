// Package register fills out and submits signup forms.
package register

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/jakopako/gosignup/internal/browser"
	"github.com/jakopako/gosignup/internal/credentials"
	"github.com/jakopako/gosignup/internal/log"
)

const (
	DefaultPageLoadWaitMS = 1000
	DefaultRedirectWaitMS = 2000
)

// Fields holds the name attributes of the form controls of a signup form.
type Fields struct {
	Email    string `yaml:"email"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Submit   string `yaml:"submit"`
}

// Target is a site with a signup form.
type Target struct {
	Name           string `yaml:"name"`
	URL            string `yaml:"url"`
	Fields         Fields `yaml:"fields"`
	PageLoadWaitMS int    `yaml:"page_load_wait_ms"`
	RedirectWaitMS int    `yaml:"redirect_wait_ms"`
}

// DefaultTargets returns the targets that are used if none are configured.
func DefaultTargets() []Target {
	return []Target{
		{
			Name: "Bolt",
			URL:  "https://example.com/bolt-signup",
			Fields: Fields{
				Email:    "email",
				Username: "username",
				Password: "password",
				Submit:   "submit",
			},
			PageLoadWaitMS: DefaultPageLoadWaitMS,
			RedirectWaitMS: DefaultRedirectWaitMS,
		},
		{
			Name: "Superbase",
			URL:  "https://example.com/superbase-signup",
			Fields: Fields{
				Email:    "email",
				Username: "user",
				Password: "pass",
				Submit:   "submit",
			},
			PageLoadWaitMS: DefaultPageLoadWaitMS,
			RedirectWaitMS: DefaultRedirectWaitMS,
		},
	}
}

// Result is the outcome of a registration attempt.
type Result struct {
	Target  string `yaml:"target"`
	Success bool   `yaml:"success"`
}

// StatusMessage returns a human readable status of the result. Success only
// means that the form has been submitted, not that an account exists.
func StatusMessage(r Result) string {
	if r.Success {
		return "Completed"
	}
	return "May need manual verification"
}

func wait(ctx context.Context, ms int) error {
	if ms <= 0 {
		return nil
	}
	timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func submit(ctx context.Context, s browser.Session, t *Target, c credentials.Credentials) error {
	if err := s.Navigate(ctx, t.URL); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", t.URL, err)
	}
	if err := wait(ctx, t.PageLoadWaitMS); err != nil {
		return err
	}
	inputs := []struct {
		name  string
		value string
	}{
		{t.Fields.Email, c.Email},
		{t.Fields.Username, c.Username},
		{t.Fields.Password, c.Password},
	}
	for _, in := range inputs {
		if err := s.Fill(ctx, in.name, in.value); err != nil {
			return err
		}
	}
	if err := s.Click(ctx, t.Fields.Submit); err != nil {
		return err
	}
	return wait(ctx, t.RedirectWaitMS)
}

// Register fills out the signup form of target t with the credentials c and
// submits it. Any error is logged and reported as false.
func Register(ctx context.Context, s browser.Session, t *Target, c credentials.Credentials) bool {
	logger := log.LoggerFromContext(ctx).With(slog.String("target", t.Name))
	ctx = log.ContextWithLogger(ctx, logger)
	logger.Info(fmt.Sprintf("registering on %s", t.Name))

	if err := submit(ctx, s, t, c); err != nil {
		logger.Error(fmt.Sprintf("%s registration failed: %v", t.Name, err))
		return false
	}

	logLandingPage(ctx, s)
	logger.Info(fmt.Sprintf("%s registration successful", t.Name))
	return true
}

// logLandingPage logs the title of the page the browser ended up on after
// submitting the form.
func logLandingPage(ctx context.Context, s browser.Session) {
	logger := log.LoggerFromContext(ctx)
	res, err := s.HTML(ctx)
	if err != nil {
		logger.Warn(fmt.Sprintf("failed to read landing page: %v", err))
		return
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(res))
	if err != nil {
		logger.Warn(fmt.Sprintf("failed to parse landing page: %v", err))
		return
	}
	logger.Debug(fmt.Sprintf("landed on page with title '%s'", strings.TrimSpace(doc.Find("title").First().Text())))
}
