package browser

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	cdpbrowser "github.com/chromedp/cdproto/browser"
	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/chromedp"
	"github.com/jakopako/gosignup/internal/log"
)

// ChromeSession drives a chrome tab via the devtools protocol.
type ChromeSession struct {
	*Config
	allocContext context.Context
	cancelAlloc  context.CancelFunc
	tabContext   context.Context
	cancelTab    context.CancelFunc
	closed       bool
}

// browserFlags returns the command line switches that depend on the config.
// A false value removes the switch.
func browserFlags(c *Config) map[string]any {
	return map[string]any{
		"headless":              !c.ShowBrowser,
		"no-sandbox":            !c.Sandbox,
		"disable-dev-shm-usage": !c.DevShm,
	}
}

func allocatorOptions(c *Config) []chromedp.ExecAllocatorOption {
	opts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.WindowSize(1920, 1080), // desktop view, mobile layouts sometimes hide form fields
	)
	for name, value := range browserFlags(c) {
		opts = append(opts, chromedp.Flag(name, value))
	}
	if c.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(c.UserAgent))
	}
	return opts
}

// NewChromeSession starts a new browser and opens a tab. The browser is started
// right away so that a missing or broken chrome installation shows up here and
// not in the middle of filling out a form.
func NewChromeSession(ctx context.Context, c *Config) (*ChromeSession, error) {
	logger := log.LoggerFromContext(ctx).With(slog.String("session", string(CHROME_SESSION_TYPE)))

	allocContext, cancelAlloc := chromedp.NewExecAllocator(context.Background(), allocatorOptions(c)...)
	tabContext, cancelTab := chromedp.NewContext(allocContext)
	s := &ChromeSession{
		Config:       c,
		allocContext: allocContext,
		cancelAlloc:  cancelAlloc,
		tabContext:   tabContext,
		cancelTab:    cancelTab,
	}
	if s.ActionTimeoutMS == 0 {
		s.ActionTimeoutMS = DefaultActionTimeoutMS
	}

	actions := []chromedp.Action{}
	if log.Debug {
		actions = append(actions, chromedp.ActionFunc(func(ctx context.Context) error {
			protocolVersion, product, revision, userAgent, jsVersion, err := cdpbrowser.GetVersion().Do(ctx)
			if err != nil {
				logger.Warn("failed to get chrome version", slog.String("err", err.Error()))
				return nil
			}
			logger.Debug(fmt.Sprintf("chrome version: protocolVersion=%s, product=%s, revision=%s, userAgent=%s, jsVersion=%s",
				protocolVersion, product, revision, userAgent, jsVersion))
			return nil
		}))
	}

	// the first Run allocates the browser, it must not be run with a timeout context
	if err := chromedp.Run(tabContext, actions...); err != nil {
		cancelTab()
		cancelAlloc()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}
	logger.Debug("browser started")
	return s, nil
}

// run executes the actions on the tab. The actions are aborted when ctx is done
// or when the action timeout is exceeded. Neither closes the tab.
func (s *ChromeSession) run(ctx context.Context, actions ...chromedp.Action) error {
	if s.closed {
		return fmt.Errorf("session is closed")
	}
	runContext, cancel := context.WithTimeout(s.tabContext, time.Duration(s.ActionTimeoutMS)*time.Millisecond)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()
	return chromedp.Run(runContext, actions...)
}

func (s *ChromeSession) Navigate(ctx context.Context, url string) error {
	log.LoggerFromContext(ctx).Debug(fmt.Sprintf("navigating to %s", url))
	return s.run(ctx, chromedp.Navigate(url))
}

// firstNodeByName finds the first node with the given name attribute without
// waiting for it to appear.
func firstNodeByName(ctx context.Context, name string) (*cdp.Node, error) {
	var nodes []*cdp.Node
	if err := chromedp.Nodes(selectorByName(name), &nodes, chromedp.ByQuery, chromedp.AtLeast(0)).Do(ctx); err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("no element with name %q", name)
	}
	return nodes[0], nil
}

func (s *ChromeSession) Fill(ctx context.Context, name, value string) error {
	log.LoggerFromContext(ctx).Debug(fmt.Sprintf("typing into element with name %s", name))
	return s.run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		node, err := firstNodeByName(ctx, name)
		if err != nil {
			return err
		}
		return chromedp.SendKeys([]cdp.NodeID{node.NodeID}, value, chromedp.ByNodeID).Do(ctx)
	}))
}

func (s *ChromeSession) Click(ctx context.Context, name string) error {
	logger := log.LoggerFromContext(ctx)
	logger.Debug(fmt.Sprintf("clicking on element with name %s", name))
	actions := []chromedp.Action{
		chromedp.ActionFunc(func(ctx context.Context) error {
			node, err := firstNodeByName(ctx, name)
			if err != nil {
				return err
			}
			return chromedp.MouseClickNode(node).Do(ctx)
		}),
	}

	if log.Debug {
		if s.DebugDir != "" {
			if err := os.MkdirAll(s.DebugDir, os.ModePerm); err != nil {
				return fmt.Errorf("failed to create debug directory: %v", err)
			}
		}
		var buf []byte
		filename := filepath.Join(s.DebugDir, fmt.Sprintf("%s-%d.png", name, time.Now().UnixNano()))
		actions = append(actions,
			chromedp.CaptureScreenshot(&buf),
			chromedp.ActionFunc(func(ctx context.Context) error {
				logger.Debug(fmt.Sprintf("writing screenshot to file %s", filename))
				return os.WriteFile(filename, buf, 0644)
			}),
		)
	}
	return s.run(ctx, actions...)
}

func (s *ChromeSession) HTML(ctx context.Context) (string, error) {
	var body string
	err := s.run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		node, err := dom.GetDocument().Do(ctx)
		if err != nil {
			return err
		}
		body, err = dom.GetOuterHTML().WithNodeID(node.NodeID).Do(ctx)
		return err
	}))
	return body, err
}

// Close shuts down the browser gracefully and releases the allocator.
func (s *ChromeSession) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	err := chromedp.Cancel(s.tabContext)
	s.cancelTab()
	s.cancelAlloc()
	return err
}
