package x86

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/xyproto/tacet/internal/engine"
)

func TestModRMEncoding(t *testing.T) {
	tests := []struct {
		name string
		m    ModRMSIB
		want []byte
	}{
		{"register direct", *RegisterDirect(0, 7), []byte{0xC7}},
		{"direct rm=100 has no SIB", ModRMSIB{Mod: ModRegisterDirect, Reg: 2, RM: 4, Scale: 3}, []byte{0xD4}},
		{"indirect", ModRMSIB{Mod: ModIndirect, Reg: 1, RM: 3}, []byte{0x0B}},
		{"SIB", ModRMSIB{Mod: ModIndirect, Reg: 0, RM: 4, Scale: 2, Index: 1, Base: 5}, []byte{0x04, 0x8D}},
		{"disp32 SIB", ModRMSIB{Mod: ModDisp32, Reg: 7, RM: 4, Scale: 0, Index: 4, Base: 4}, []byte{0xBC, 0x24}},
	}
	for _, tt := range tests {
		got, err := tt.m.Encode()
		if err != nil {
			t.Errorf("%s: %v", tt.name, err)
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", tt.name, diff)
		}
	}
}

// TestModRMFieldOverflow verifies each sub-field is range checked
func TestModRMFieldOverflow(t *testing.T) {
	bad := []ModRMSIB{
		{Mod: 4},
		{Reg: 8},
		{RM: 9},
		{Mod: ModIndirect, RM: 4, Scale: 4},
		{Mod: ModIndirect, RM: 4, Index: 8},
		{Mod: ModIndirect, RM: 4, Base: 0xFF},
	}
	for _, m := range bad {
		_, err := m.Encode()
		if !errors.Is(err, engine.ErrFieldOverflow) {
			t.Errorf("%+v: expected ErrFieldOverflow, got %v", m, err)
		}
		if c, _ := engine.CategoryOf(err); c != engine.CategoryArgument {
			t.Errorf("%+v: expected an argument error, got %v", m, c)
		}
	}

	// SIB fields are ignored when no SIB byte is emitted
	if _, err := (ModRMSIB{Mod: ModRegisterDirect, RM: 4, Base: 0xFF}).Encode(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
