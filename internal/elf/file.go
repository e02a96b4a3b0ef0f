package elf

import (
	"errors"
	"fmt"
	"os"

	"github.com/xyproto/tacet/internal/build"
	"github.com/xyproto/tacet/internal/engine"
)

// WriteFile creates or truncates path and emits asm into it as an
// executable. Nothing is created when asm fails validation.
func WriteFile(path string, asm *build.Assembly) error {
	if err := Validate(asm); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o755)
	if err != nil {
		return engine.IOError("creating "+path, err)
	}
	if err := NewEmitter(f).Emit(asm); err != nil {
		f.Close()
		return err
	}
	// An existing file keeps its old mode through O_TRUNC
	if err := f.Chmod(0o755); err != nil {
		f.Close()
		return engine.IOError("making "+path+" executable", err)
	}
	if err := f.Close(); err != nil {
		return engine.IOError("closing "+path, err)
	}

	if !engine.IsExecutable(path) {
		return engine.IOError(path, errors.New("not executable after writing"))
	}
	if engine.VerboseMode {
		fmt.Fprintf(os.Stderr, "Wrote %s (entry %#x)\n", path, asm.Entry())
	}
	return nil
}
