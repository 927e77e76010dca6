// Package clipboard copies text to the system clipboard via shell commands.
package clipboard

import (
	"errors"
	"os/exec"
	"runtime"
	"strings"
)

// ErrUnavailable is returned when no clipboard command exists on this system.
var ErrUnavailable = errors.New("clipboard unavailable")

// command picks the clipboard writer for the current platform, or nil when
// there is none.
func command() *exec.Cmd {
	switch runtime.GOOS {
	case "darwin":
		if _, err := exec.LookPath("pbcopy"); err == nil {
			return exec.Command("pbcopy")
		}
	case "linux":
		// Prefer xclip, fall back to xsel.
		if _, err := exec.LookPath("xclip"); err == nil {
			return exec.Command("xclip", "-selection", "clipboard")
		}
		if _, err := exec.LookPath("xsel"); err == nil {
			return exec.Command("xsel", "--clipboard", "--input")
		}
	}
	return nil
}

// IsAvailable reports whether a clipboard command exists on this system.
func IsAvailable() bool {
	return command() != nil
}

// Copy writes text to the system clipboard.
// Returns ErrUnavailable when no clipboard command exists.
func Copy(text string) error {
	cmd := command()
	if cmd == nil {
		return ErrUnavailable
	}
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}
