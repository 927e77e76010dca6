// Package pdf opens PDFs in the configured reader and pulls metadata out of
// them.
package pdf

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// Open launches the reader on the PDF at path and returns without waiting
// for the viewer to exit. reader is a config pdf_reader value; empty means
// the system default.
func Open(path, reader string) error {
	// Fail fast if the file doesn't exist
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("PDF does not exist: %s", path)
		}
		return fmt.Errorf("checking PDF: %w", err)
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = darwinCommand(path, reader)
	case "linux":
		cmd = linuxCommand(path, reader)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}

// darwinCommand returns the command to open a PDF on macOS.
func darwinCommand(path, reader string) *exec.Cmd {
	switch reader {
	case "skim":
		return exec.Command("open", "-a", "Skim", path)
	case "preview":
		return exec.Command("open", "-a", "Preview", path)
	default: // "system"
		return exec.Command("open", path)
	}
}

// linuxCommand returns the command to open a PDF on Linux.
func linuxCommand(path, reader string) *exec.Cmd {
	switch reader {
	case "zathura":
		return exec.Command("zathura", path)
	case "evince":
		return exec.Command("evince", path)
	case "okular":
		return exec.Command("okular", path)
	default: // "system"
		return exec.Command("xdg-open", path)
	}
}
