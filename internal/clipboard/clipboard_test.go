package clipboard

import (
	"errors"
	"testing"
)

func TestCommandConsistent(t *testing.T) {
	// command and IsAvailable must agree.
	if (command() != nil) != IsAvailable() {
		t.Error("command() and IsAvailable() disagree")
	}
}

func TestCopy(t *testing.T) {
	if !IsAvailable() {
		if err := Copy("x"); !errors.Is(err, ErrUnavailable) {
			t.Errorf("Copy() error = %v, want ErrUnavailable", err)
		}
		t.Skip("clipboard not available on this system")
	}

	if err := Copy("CMT12"); err != nil {
		t.Fatalf("Copy() error = %v", err)
	}
	// Clipboard contents cannot be read back portably; no error is the best
	// check available here.
	if err := Copy(""); err != nil {
		t.Fatalf("Copy(\"\") error = %v", err)
	}
}
