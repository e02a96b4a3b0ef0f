// Completion: 100% - Utility module complete
package engine

import (
	"fmt"
	"strings"
)

// Architecture type
type Arch int

const (
	ArchUnknown Arch = iota
	ArchX86_64
	ArchARM64
	ArchRiscv64
)

func (a Arch) String() string {
	switch a {
	case ArchX86_64:
		return "x86_64"
	case ArchARM64:
		return "aarch64"
	case ArchRiscv64:
		return "riscv64"
	default:
		return "unknown"
	}
}

var archNames = map[string]Arch{
	"x86_64":  ArchX86_64,
	"amd64":   ArchX86_64,
	"x86-64":  ArchX86_64,
	"aarch64": ArchARM64,
	"arm64":   ArchARM64,
	"riscv64": ArchRiscv64,
	"rv64":    ArchRiscv64,
}

// ParseArch parses an architecture string (like GOARCH or uname -m values)
func ParseArch(s string) (Arch, error) {
	name := strings.ToLower(s)
	if arch, ok := archNames[name]; ok {
		return arch, nil
	}
	return ArchUnknown, ArgumentError(
		fmt.Sprintf("unsupported architecture: %s%s", s, didYouMean(name, archNames)),
		ErrUnsupportedTarget)
}

// OS type
type OS int

const (
	OSUnknown OS = iota
	OSLinux
	OSDarwin
	OSFreeBSD
)

func (o OS) String() string {
	switch o {
	case OSLinux:
		return "linux"
	case OSDarwin:
		return "darwin"
	case OSFreeBSD:
		return "freebsd"
	default:
		return "unknown"
	}
}

var osNames = map[string]OS{
	"linux":   OSLinux,
	"darwin":  OSDarwin,
	"macos":   OSDarwin,
	"freebsd": OSFreeBSD,
}

// ParseOS parses an OS string (like GOOS values)
func ParseOS(s string) (OS, error) {
	name := strings.ToLower(s)
	if os, ok := osNames[name]; ok {
		return os, nil
	}
	return OSUnknown, ArgumentError(
		fmt.Sprintf("unsupported OS: %s%s", s, didYouMean(name, osNames)),
		ErrUnsupportedTarget)
}

// Platform represents a target platform (architecture + OS)
type Platform struct {
	Arch Arch
	OS   OS
}

// DefaultPlatform is the only platform the ELF emitter produces executables for.
var DefaultPlatform = Platform{Arch: ArchX86_64, OS: OSLinux}

// ParsePlatform parses strings like "x86_64-linux" or "amd64-linux".
// A bare architecture implies linux.
func ParsePlatform(s string) (Platform, error) {
	// Split on the last dash, since "x86-64" carries one of its own
	if i := strings.LastIndex(s, "-"); i >= 0 {
		if os, err := ParseOS(s[i+1:]); err == nil {
			arch, err := ParseArch(s[:i])
			if err != nil {
				return Platform{}, err
			}
			return Platform{Arch: arch, OS: os}, nil
		}
	}
	arch, err := ParseArch(s)
	if err != nil {
		return Platform{}, err
	}
	return Platform{Arch: arch, OS: OSLinux}, nil
}

// Supported reports whether executables can be generated for p.
func (p Platform) Supported() bool {
	return p == DefaultPlatform
}

// String returns a human-readable platform string
func (p Platform) String() string {
	return fmt.Sprintf("%s-%s", p.Arch, p.OS)
}

// FullString returns a detailed platform string
func (p Platform) FullString() string {
	return fmt.Sprintf("%s on %s", p.Arch, p.OS)
}
