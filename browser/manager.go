// Package browser owns the headless Chrome process and hands out
// per-request pages. One Session maps to one request: retailers and
// shopping-list items are processed sequentially against a single page,
// which is never navigated concurrently.
package browser

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/smartcart/cartscout/config"
	"github.com/smartcart/cartscout/models"
)

// Manager manages the global browser lifecycle. It is safe for
// concurrent use; each request acquires its own page via Acquire.
type Manager struct {
	browser        *rod.Browser
	browserCfg     config.BrowserConfig
	retailCfg      config.RetailConfig
	activeSessions atomic.Int32
}

// NewManager launches a headless browser and connects to it.
func NewManager(browserCfg config.BrowserConfig, retailCfg config.RetailConfig) (*Manager, error) {
	l := launcher.New().
		Headless(browserCfg.Headless).
		NoSandbox(browserCfg.NoSandbox)

	if browserCfg.BrowserBin != "" {
		l = l.Bin(browserCfg.BrowserBin)
	}
	if browserCfg.DefaultProxy != "" {
		l = l.Proxy(browserCfg.DefaultProxy)
	}

	l.Set(flags.Flag("disable-blink-features"), "AutomationControlled")
	l.Delete(flags.Flag("enable-automation"))
	l.Set(flags.Flag("disable-features"), "AudioServiceOutOfProcess,TranslateUI")
	l.Set(flags.Flag("disable-background-timer-throttling"))
	l.Set(flags.Flag("disable-backgrounding-occluded-windows"))
	l.Set(flags.Flag("disable-component-update"))
	l.Set(flags.Flag("disable-default-apps"))
	l.Set(flags.Flag("disable-dev-shm-usage"))
	l.Set(flags.Flag("disable-extensions"))
	l.Set(flags.Flag("no-first-run"))

	controlURL, err := l.Launch()
	if err != nil {
		return nil, models.NewCompareError(
			models.ErrCodeBrowserCrash,
			"failed to launch browser",
			err,
		)
	}
	slog.Info("browser launched", "controlURL", controlURL)

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, models.NewCompareError(
			models.ErrCodeBrowserCrash,
			"failed to connect to browser",
			err,
		)
	}

	return &Manager{
		browser:    browser,
		browserCfg: browserCfg,
		retailCfg:  retailCfg,
	}, nil
}

// Acquire creates one fresh page for the lifetime of one compare request.
// The caller must Close the returned Session on every exit path.
func (m *Manager) Acquire(ctx context.Context) (*Session, error) {
	page, err := m.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, models.NewCompareError(
			models.ErrCodeBrowserCrash,
			"failed to create browser page",
			err,
		)
	}
	m.activeSessions.Add(1)

	// Stealth JS and resource blocking only take effect for navigations
	// that happen after they are installed, so both go in before the
	// session sees its first retailer URL.
	if m.browserCfg.Stealth {
		if _, evalErr := page.EvalOnNewDocument(stealth.JS); evalErr != nil {
			slog.Warn("stealth injection failed, proceeding without stealth",
				"error", evalErr,
			)
		}
	}

	setDefaultHeaders(page)
	router := mountHijack(page, m.retailCfg.BlockedResourceTypes)

	return &Session{
		page:        page,
		router:      router,
		mgr:         m,
		navTimeout:  m.retailCfg.NavigationTimeout,
		waitTimeout: m.retailCfg.SelectorTimeout,
	}, nil
}

// Stats returns a snapshot of the browser's current state. Connectivity
// is probed with a cheap CDP call so a crashed or disconnected Chrome
// shows up as degraded rather than permanently healthy.
func (m *Manager) Stats() models.BrowserStats {
	_, err := proto.BrowserGetVersion{}.Call(m.browser)
	return models.BrowserStats{
		Connected:      err == nil,
		ActiveSessions: int(m.activeSessions.Load()),
	}
}

// Close kills the browser process. Call this on graceful shutdown to
// prevent zombie Chrome processes.
func (m *Manager) Close() {
	slog.Info("browser manager shutting down")
	m.browser.MustClose()
	slog.Info("browser manager shutdown complete")
}
