// Package browser implements the browser lifecycle manager (spec §4.4):
// discover an already-running debugging endpoint, else locate and spawn
// an executable, then attach a CDP client — with concurrent launches
// coalesced into a single spawn.
package browser

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/use-agent/browserbridge/berrors"
	"github.com/use-agent/browserbridge/config"
	"golang.org/x/sync/singleflight"
)

const (
	pollInterval = 500 * time.Millisecond
	pollDeadline = 20 * time.Second
)

// Launcher discovers or spawns a browser and returns its WebSocket
// debugger URL. It tries targets in order — spec §4.4 step 3 says to
// probe "canonical paths for Chrome, then Edge" — running the full
// discover/locate/spawn/poll sequence against each target in turn until
// one succeeds. Concurrent Launch calls coalesce into a single attempt
// via singleflight (spec §4.4, §5).
type Launcher struct {
	targets []config.BrowserTarget
	group   singleflight.Group
}

// NewLauncher creates a Launcher that tries each target in order,
// stopping at the first one it can discover, launch, or spawn.
func NewLauncher(targets ...config.BrowserTarget) *Launcher {
	return &Launcher{targets: targets}
}

// Launch runs the discovery/launch algorithm (spec §4.4 steps 1-5)
// against each configured target in order.
func (l *Launcher) Launch(ctx context.Context) (string, error) {
	v, err, _ := l.group.Do("launch", func() (interface{}, error) {
		return l.launchOnce(ctx)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (l *Launcher) launchOnce(ctx context.Context) (string, error) {
	var lastErr error
	for _, target := range l.targets {
		ws, err := launchTarget(ctx, target)
		if err == nil {
			return ws, nil
		}
		lastErr = err
	}
	return "", lastErr
}

func launchTarget(ctx context.Context, target config.BrowserTarget) (string, error) {
	// 1. Explicit WebSocket endpoint short-circuits discovery.
	if target.WSEndpoint != "" {
		return target.WSEndpoint, nil
	}

	// 2. Probe for an already-running debugging endpoint.
	if ws, ok := probeVersion(ctx, target.Host, target.Port); ok {
		return ws, nil
	}

	// 3. Locate an executable.
	exePath, probed, err := locateExecutable(target.Name, target.ExecutablePath)
	if err != nil {
		return "", berrors.Wrap(berrors.CodeBrowserLaunch,
			fmt.Sprintf("could not find a %s executable (probed: %v)", target.Name, probed), err)
	}

	// 4. Spawn, detached, stdio ignored.
	if err := spawnTarget(target, exePath); err != nil {
		return "", berrors.Wrap(berrors.CodeBrowserLaunch,
			fmt.Sprintf("failed to launch %s", exePath), err)
	}

	// 5. Poll for the debug port to come up.
	ws, err := pollForWS(ctx, target.Host, target.Port, pollDeadline, pollInterval)
	if err != nil {
		return "", berrors.Wrap(berrors.CodeBrowserLaunch,
			fmt.Sprintf("%s debug port did not come up (probed executable: %s)", target.Name, exePath), err)
	}
	return ws, nil
}

func spawnTarget(target config.BrowserTarget, exePath string) error {
	if err := os.MkdirAll(target.UserDataDir, 0o700); err != nil {
		return fmt.Errorf("create user-data-dir: %w", err)
	}

	args := []string{
		fmt.Sprintf("--remote-debugging-port=%d", target.Port),
		fmt.Sprintf("--user-data-dir=%s", target.UserDataDir),
		"--no-first-run",
		"--no-default-browser-check",
		"--disable-sync",
		"about:blank",
	}

	cmd := exec.Command(exePath, args...)
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.SysProcAttr = &syscall.SysProcAttr{}
	detach(cmd.SysProcAttr)

	if err := cmd.Start(); err != nil {
		return err
	}
	// Detached: we deliberately do not Wait() on the child so it
	// outlives this process. Reap its own exit via os/exec's internal
	// bookkeeping is unnecessary since the process is re-parented.
	go func() { _ = cmd.Process.Release() }()

	return nil
}
