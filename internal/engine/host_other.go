// Completion: 100% - Platform-specific module complete
//go:build !linux
// +build !linux

package engine

import (
	"os"
	"runtime"
)

// HostPlatform reports the machine the generator runs on
func HostPlatform() (Platform, error) {
	arch, err := ParseArch(runtime.GOARCH)
	if err != nil {
		return Platform{}, err
	}
	hostOS, err := ParseOS(runtime.GOOS)
	if err != nil {
		return Platform{}, err
	}
	return Platform{Arch: arch, OS: hostOS}, nil
}

// IsExecutable reports whether path has any execute bit set
func IsExecutable(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode()&0o111 != 0
}

// IsTerminal reports whether f is a character device
func IsTerminal(f *os.File) bool {
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
