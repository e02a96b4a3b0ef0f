// Completion: 100% - Platform-specific module complete
//go:build linux
// +build linux

package engine

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

var uname = unix.Uname

// HostPlatform reports the machine the generator runs on, as seen by uname(2)
func HostPlatform() (Platform, error) {
	var uts unix.Utsname
	if err := uname(&uts); err != nil {
		return Platform{}, IOError("uname failed", err)
	}
	machine := unix.ByteSliceToString(uts.Machine[:])
	arch, err := ParseArch(machine)
	if err != nil {
		return Platform{}, err
	}
	if VerboseMode {
		fmt.Fprintf(os.Stderr, "host: %s (%s %s)\n", machine,
			unix.ByteSliceToString(uts.Sysname[:]), unix.ByteSliceToString(uts.Release[:]))
	}
	return Platform{Arch: arch, OS: OSLinux}, nil
}

// IsExecutable reports whether the current user may execute path
func IsExecutable(path string) bool {
	return unix.Access(path, unix.X_OK) == nil
}

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	_, err := unix.IoctlGetTermios(int(f.Fd()), unix.TCGETS)
	return err == nil
}
