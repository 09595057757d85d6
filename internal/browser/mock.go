package browser

import (
	"context"
	"errors"
	"fmt"
	"slices"
)

// MockPage is a page served by the MockSession. Fields lists the
// name attributes of the form controls present on the page.
type MockPage struct {
	URL     string   `yaml:"url"`
	Content string   `yaml:"content,omitempty"`
	Fields  []string `yaml:"fields"`
}

// MockSession serves pages from the config instead of using a real browser
// and records every call made to it.
type MockSession struct {
	*Config
	pagesMap   map[string]MockPage
	current    *MockPage
	Calls      []string
	Filled     map[string]string
	Clicked    []string
	CloseCount int
}

func NewMockSession(c *Config) *MockSession {
	ms := &MockSession{
		Config:   c,
		pagesMap: map[string]MockPage{},
		Filled:   map[string]string{},
	}
	for _, p := range c.MockPages {
		ms.pagesMap[p.URL] = p
	}
	return ms
}

func (ms *MockSession) Navigate(ctx context.Context, url string) error {
	ms.Calls = append(ms.Calls, "navigate "+url)
	p, ok := ms.pagesMap[url]
	if !ok {
		return errors.New("page not found")
	}
	ms.current = &p
	return nil
}

func (ms *MockSession) element(name string) error {
	if ms.current == nil {
		return errors.New("no page loaded")
	}
	if !slices.Contains(ms.current.Fields, name) {
		return fmt.Errorf("no element with name %q", name)
	}
	return nil
}

func (ms *MockSession) Fill(ctx context.Context, name, value string) error {
	ms.Calls = append(ms.Calls, "fill "+name)
	if err := ms.element(name); err != nil {
		return err
	}
	ms.Filled[name] = value
	return nil
}

func (ms *MockSession) Click(ctx context.Context, name string) error {
	ms.Calls = append(ms.Calls, "click "+name)
	if err := ms.element(name); err != nil {
		return err
	}
	ms.Clicked = append(ms.Clicked, name)
	return nil
}

func (ms *MockSession) HTML(ctx context.Context) (string, error) {
	if ms.current == nil {
		return "", errors.New("no page loaded")
	}
	return ms.current.Content, nil
}

// Close counts its invocations so that tests can check that a session is
// closed exactly once.
func (ms *MockSession) Close() error {
	ms.CloseCount++
	return nil
}
