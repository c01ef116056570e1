// Package util holds small helpers for launching the dashboard.
package util

import (
	"errors"
	"fmt"
	"net"
	"os/exec"
	"runtime"
	"strconv"
)

// browserCommands candidate commands opening url on goos, in preference order
func browserCommands(goos, url string) [][]string {
	switch goos {
	case "windows":
		// rundll32 works from Windows 7 on; explorer is the fallback
		return [][]string{
			{"rundll32", "url.dll,FileProtocolHandler", url},
			{"explorer", url},
		}
	case "darwin":
		return [][]string{{"open", url}}
	default:
		return [][]string{
			{"xdg-open", url},
			{"sensible-browser", url},
			{"google-chrome", url},
			{"firefox", url},
			{"chromium-browser", url},
		}
	}
}

// OpenBrowser opens url with the platform's default handler
func OpenBrowser(url string) error {
	cmd := browserCommands(runtime.GOOS, url)[0]
	return exec.Command(cmd[0], cmd[1:]...).Start()
}

// OpenBrowserWithFallback tries each known launcher until one starts
func OpenBrowserWithFallback(url string) error {
	var errs []error
	for _, cmd := range browserCommands(runtime.GOOS, url) {
		err := exec.Command(cmd[0], cmd[1:]...).Start()
		if err == nil {
			return nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", cmd[0], err))
	}
	return errors.Join(errs...)
}

// FindAvailablePort first port from startPort on that can be bound on localhost.
// Returns startPort when none of the next attempts ports is free.
func FindAvailablePort(startPort, attempts int) int {
	for p := startPort; p < startPort+attempts && p <= 65535; p++ {
		ln, err := net.Listen("tcp", net.JoinHostPort("127.0.0.1", strconv.Itoa(p)))
		if err != nil {
			continue
		}
		_ = ln.Close()
		return p
	}
	return startPort
}
