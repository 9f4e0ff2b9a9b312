package browser

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/use-agent/browserbridge/berrors"
	"github.com/use-agent/browserbridge/config"
)

// healthCheckInterval is how often Session verifies the CDP transport
// is still alive, so a closed browser is detected even between tool
// calls (spec §3 "disconnect observer").
const healthCheckInterval = 10 * time.Second

// Session is the process-wide BrowserHandle (spec §3): the live
// connection to one browser's debugging endpoint. Created on first use;
// discarded (and rebuilt) on transport loss.
type Session struct {
	mu       sync.Mutex
	browser  *rod.Browser
	launcher *Launcher

	// onAttach fires after every successful attach, with the pool
	// reconstruction contract of spec §3/§4.4 in mind.
	onAttach func(*rod.Browser)
	// onDisconnect fires once when the transport is found to be dead.
	onDisconnect func()

	stopHealth chan struct{}
}

// NewSession creates a Session that discovers/launches across the given
// browser targets in order (spec §4.4 step 3: Chrome, then Edge).
// onAttach and onDisconnect may be nil.
func NewSession(onAttach func(*rod.Browser), onDisconnect func(), targets ...config.BrowserTarget) *Session {
	return &Session{
		launcher:     NewLauncher(targets...),
		onAttach:     onAttach,
		onDisconnect: onDisconnect,
	}
}

// Browser returns the live *rod.Browser, discovering/launching/attaching
// as needed. Safe for concurrent use; the session lock serializes
// callers, so a caller that waited behind a successful first launch
// receives the browser that launch attached.
func (s *Session) Browser(ctx context.Context) (*rod.Browser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.browser != nil {
		return s.browser, nil
	}

	wsURL, err := s.launcher.Launch(ctx)
	if err != nil {
		return nil, err
	}

	b := rod.New().ControlURL(wsURL)
	if err := b.Connect(); err != nil {
		return nil, berrors.Wrap(berrors.CodeTransport, "failed to attach to browser", err)
	}

	s.browser = b
	s.startHealthCheck()

	if s.onAttach != nil {
		s.onAttach(b)
	}
	return b, nil
}

// Connected reports whether a live browser handle is currently held.
func (s *Session) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.browser != nil
}

// startHealthCheck launches a background poller that detects transport
// loss between tool calls, clearing the handle and firing onDisconnect.
// Must be called with s.mu held.
func (s *Session) startHealthCheck() {
	s.stopHealth = make(chan struct{})
	browser := s.browser
	stop := s.stopHealth

	go func() {
		ticker := time.NewTicker(healthCheckInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				if _, err := browser.Pages(); err != nil {
					slog.Warn("browser transport lost", "error", err)
					s.handleDisconnect()
					return
				}
			}
		}
	}()
}

func (s *Session) handleDisconnect() {
	s.mu.Lock()
	s.browser = nil
	if s.stopHealth != nil {
		close(s.stopHealth)
		s.stopHealth = nil
	}
	s.mu.Unlock()

	if s.onDisconnect != nil {
		s.onDisconnect()
	}
}

// Close tears down the health-check loop and drops the browser handle
// without killing the browser process itself (spec §5: "pages in the
// browser remain open"). No close command is sent to the browser; the
// CDP connection ends when this process exits.
func (s *Session) Close() {
	s.mu.Lock()
	s.browser = nil
	if s.stopHealth != nil {
		close(s.stopHealth)
		s.stopHealth = nil
	}
	s.mu.Unlock()
}
