package engine

import (
	"errors"
	"strings"
	"testing"
)

// TestParsePlatform checks the accepted spellings of the supported target
func TestParsePlatform(t *testing.T) {
	tests := []struct {
		in   string
		want Platform
	}{
		{"x86_64-linux", Platform{ArchX86_64, OSLinux}},
		{"amd64-linux", Platform{ArchX86_64, OSLinux}},
		{"x86-64-linux", Platform{ArchX86_64, OSLinux}},
		{"x86-64", Platform{ArchX86_64, OSLinux}},
		{"amd64", Platform{ArchX86_64, OSLinux}},
		{"arm64-darwin", Platform{ArchARM64, OSDarwin}},
	}
	for _, tt := range tests {
		got, err := ParsePlatform(tt.in)
		if err != nil {
			t.Errorf("ParsePlatform(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePlatform(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// TestParsePlatformSuggestion verifies typos get a hint
func TestParsePlatformSuggestion(t *testing.T) {
	_, err := ParsePlatform("amd46-linux")
	if err == nil {
		t.Fatal("expected an error for amd46")
	}
	if !errors.Is(err, ErrUnsupportedTarget) {
		t.Errorf("expected ErrUnsupportedTarget, got %v", err)
	}
	if !strings.Contains(err.Error(), "did you mean amd64") {
		t.Errorf("expected a suggestion, got %q", err.Error())
	}
	if c, ok := CategoryOf(err); !ok || c != CategoryArgument {
		t.Errorf("expected an argument error, got %v", c)
	}
}

func TestPlatformSupported(t *testing.T) {
	if !DefaultPlatform.Supported() {
		t.Error("default platform must be supported")
	}
	if (Platform{ArchARM64, OSLinux}).Supported() {
		t.Error("arm64-linux must not be supported")
	}
	if got := DefaultPlatform.String(); got != "x86_64-linux" {
		t.Errorf("String() = %q", got)
	}
}

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "abc", 3},
		{"amd64", "amd64", 0},
		{"amd46", "amd64", 2},
		{"linux", "linus", 1},
	}
	for _, tt := range tests {
		if got := levenshteinDistance(tt.a, tt.b); got != tt.want {
			t.Errorf("levenshteinDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

// TestHostPlatform only checks that the host can be described
func TestHostPlatform(t *testing.T) {
	p, err := HostPlatform()
	if err != nil {
		t.Skipf("host platform not recognized: %v", err)
	}
	if p.Arch == ArchUnknown || p.OS == OSUnknown {
		t.Errorf("HostPlatform() = %v", p)
	}
}
