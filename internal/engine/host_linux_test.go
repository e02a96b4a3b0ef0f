//go:build linux

package engine

import (
	"errors"
	"os"
	"testing"

	"golang.org/x/sys/unix"
)

func TestHostPlatformUnameFailure(t *testing.T) {
	saved := uname
	defer func() { uname = saved }()
	uname = func(*unix.Utsname) error { return unix.EPERM }

	_, err := HostPlatform()
	if !errors.Is(err, unix.EPERM) {
		t.Fatalf("expected EPERM, got %v", err)
	}
	if cat, ok := CategoryOf(err); !ok || cat != CategoryIO {
		t.Errorf("category = %v (ok=%v), want i/o", cat, ok)
	}
}

func TestIsTerminalOnRegularFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "tty")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if IsTerminal(f) {
		t.Error("a regular file is not a terminal")
	}
}
