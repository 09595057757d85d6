// Package browser provides the browser session that is used to fill out
// and submit web forms.
package browser

import (
	"context"
	"fmt"
)

// A Session is a single browser tab. Form controls are looked up by their
// name attribute. Lookups don't wait for elements to appear: if there is no
// matching element an error is returned right away.
type Session interface {
	Navigate(ctx context.Context, url string) error
	Fill(ctx context.Context, name, value string) error
	Click(ctx context.Context, name string) error
	// HTML returns the outer html of the current document.
	HTML(ctx context.Context) (string, error)
	// Close releases the session. Calling it more than once is a no-op.
	Close() error
}

// Type encapsulates the type of a session
// See below constants for possible types
type Type string

const (
	CHROME_SESSION_TYPE Type = "chrome"
	MOCK_SESSION_TYPE   Type = "mock"
)

// Config defines how the browser session is created. The zero value
// results in a headless chrome without sandbox and without /dev/shm usage.
type Config struct {
	Type            Type       `yaml:"type" env:"GOSIGNUP_BROWSER_TYPE"`
	ShowBrowser     bool       `yaml:"show_browser,omitempty" env:"GOSIGNUP_SHOW_BROWSER"`
	Sandbox         bool       `yaml:"sandbox,omitempty" env:"GOSIGNUP_SANDBOX"`
	DevShm          bool       `yaml:"dev_shm,omitempty" env:"GOSIGNUP_DEV_SHM"`
	UserAgent       string     `yaml:"user_agent,omitempty" env:"GOSIGNUP_USER_AGENT"`
	ActionTimeoutMS int        `yaml:"action_timeout_ms" env:"GOSIGNUP_ACTION_TIMEOUT_MS"`
	DebugDir        string     `yaml:"debug_dir,omitempty" env:"GOSIGNUP_DEBUG_DIR"`
	MockPages       []MockPage `yaml:"mock_pages,omitempty"`
}

// DefaultActionTimeoutMS bounds every single browser action.
const DefaultActionTimeoutMS = 10000

// DefaultType returns the default session type.
func DefaultType() Type {
	return CHROME_SESSION_TYPE
}

// An Opener creates a new session.
type Opener func(ctx context.Context, c *Config) (Session, error)

// NewSession returns a new session depending on the session type.
func NewSession(ctx context.Context, c *Config) (Session, error) {
	switch c.Type {
	case "", CHROME_SESSION_TYPE:
		return NewChromeSession(ctx, c)
	case MOCK_SESSION_TYPE:
		return NewMockSession(c), nil
	default:
		return nil, fmt.Errorf("session of type '%s' not implemented", c.Type)
	}
}

func selectorByName(name string) string {
	return fmt.Sprintf("[name=%q]", name)
}
