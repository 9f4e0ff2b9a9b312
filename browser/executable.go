package browser

import (
	"fmt"
	"os"
	"runtime"
)

// candidatePaths are the platform-specific canonical install locations
// probed in order (spec §4.4 step 3), first for Chrome then for Edge.
var candidatePaths = map[string]map[string][]string{
	"chrome": {
		"linux": {
			"/usr/bin/google-chrome",
			"/usr/bin/google-chrome-stable",
			"/usr/bin/chromium",
			"/usr/bin/chromium-browser",
			"/snap/bin/chromium",
		},
		"darwin": {
			"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
		},
		"windows": {
			`C:\Program Files\Google\Chrome\Application\chrome.exe`,
			`C:\Program Files (x86)\Google\Chrome\Application\chrome.exe`,
		},
	},
	"edge": {
		"linux": {
			"/usr/bin/microsoft-edge",
			"/usr/bin/microsoft-edge-stable",
			"/usr/bin/microsoft-edge-beta",
		},
		"darwin": {
			"/Applications/Microsoft Edge.app/Contents/MacOS/Microsoft Edge",
		},
		"windows": {
			`C:\Program Files (x86)\Microsoft\Edge\Application\msedge.exe`,
			`C:\Program Files\Microsoft\Edge\Application\msedge.exe`,
		},
	},
}

// locateExecutable resolves the browser binary to spawn: the
// configured path if it exists, else the platform-specific candidate
// list for family ("chrome" or "edge"). Returns the list of probed
// paths alongside any error so callers can build a diagnostic message.
func locateExecutable(family, configured string) (string, []string, error) {
	var probed []string

	if configured != "" {
		probed = append(probed, configured)
		if fileExists(configured) {
			return configured, probed, nil
		}
	}

	for _, path := range candidatePaths[family][runtime.GOOS] {
		probed = append(probed, path)
		if fileExists(path) {
			return path, probed, nil
		}
	}

	return "", probed, fmt.Errorf("no %s executable found among probed locations", family)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
