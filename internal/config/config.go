// Package config reads the gosignup configuration from a yaml file and
// environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/jakopako/gosignup/internal/browser"
	"github.com/jakopako/gosignup/internal/credentials"
	"github.com/jakopako/gosignup/internal/output"
	"github.com/jakopako/gosignup/internal/register"
)

// Config defines the overall structure of the configuration.
// Values will be taken from a config yml file or environment variables
// or both.
type Config struct {
	Browser     browser.Config      `yaml:"browser"`
	Credentials credentials.Config  `yaml:"credentials"`
	Targets     []register.Target   `yaml:"targets"`
	Writer      output.WriterConfig `yaml:"writer"`
}

// NewConfig reads the config file at configPath. If the file does not exist
// the configuration is read from the environment only.
func NewConfig(configPath string) (*Config, error) {
	var config Config

	_, err := os.Stat(configPath)
	switch {
	case err == nil:
		if err := cleanenv.ReadConfig(configPath, &config); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	case errors.Is(err, fs.ErrNotExist):
		slog.Debug(fmt.Sprintf("config file %s does not exist, using defaults", configPath))
		if err := cleanenv.ReadEnv(&config); err != nil {
			return nil, fmt.Errorf("failed to read config from environment: %w", err)
		}
	default:
		return nil, err
	}

	config.applyDefaults()
	if err := config.validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Default returns the configuration that is used if neither a config file
// nor environment variables are present.
func Default() *Config {
	config := &Config{}
	config.applyDefaults()
	return config
}

func (c *Config) applyDefaults() {
	if c.Browser.Type == "" {
		c.Browser.Type = browser.DefaultType()
	}
	if c.Browser.ActionTimeoutMS == 0 {
		c.Browser.ActionTimeoutMS = browser.DefaultActionTimeoutMS
	}

	if c.Credentials.EmailPrefix == "" {
		c.Credentials.EmailPrefix = credentials.DefaultEmailPrefix
	}
	if c.Credentials.EmailDomain == "" {
		c.Credentials.EmailDomain = credentials.DefaultEmailDomain
	}
	if c.Credentials.UsernamePrefix == "" {
		c.Credentials.UsernamePrefix = credentials.DefaultUsernamePrefix
	}

	if len(c.Targets) == 0 {
		c.Targets = register.DefaultTargets()
	}
	for i := range c.Targets {
		if c.Targets[i].PageLoadWaitMS == 0 {
			c.Targets[i].PageLoadWaitMS = register.DefaultPageLoadWaitMS
		}
		if c.Targets[i].RedirectWaitMS == 0 {
			c.Targets[i].RedirectWaitMS = register.DefaultRedirectWaitMS
		}
	}

	if c.Writer.Type == "" {
		c.Writer.Type = output.FILE_WRITER_TYPE
	}
	if c.Writer.Type == output.FILE_WRITER_TYPE && c.Writer.FilePath == "" {
		c.Writer.FilePath = output.DefaultFilePath
	}
}

func (c *Config) validate() error {
	for i, t := range c.Targets {
		if t.Name == "" {
			return fmt.Errorf("target nr %d has no name", i)
		}
		if t.URL == "" {
			return fmt.Errorf("target %s has no url", t.Name)
		}
		f := t.Fields
		if f.Email == "" || f.Username == "" || f.Password == "" || f.Submit == "" {
			return fmt.Errorf("target %s: all of email, username, password and submit fields need to be set", t.Name)
		}
	}
	return nil
}

// UseMockBrowser replaces the browser with a mock that serves a page with
// all the expected form fields for every target. This allows for a dry run
// that does not touch the network.
func (c *Config) UseMockBrowser() {
	c.Browser.Type = browser.MOCK_SESSION_TYPE
	c.Browser.MockPages = c.Browser.MockPages[:0]
	for _, t := range c.Targets {
		c.Browser.MockPages = append(c.Browser.MockPages, browser.MockPage{
			URL:     t.URL,
			Content: fmt.Sprintf("<html><head><title>%s</title></head><body></body></html>", t.Name),
			Fields:  []string{t.Fields.Email, t.Fields.Username, t.Fields.Password, t.Fields.Submit},
		})
	}
}
