// Completion: 100% - CLI interface complete, all flags working
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/xyproto/tacet/internal/build"
	"github.com/xyproto/tacet/internal/elf"
	"github.com/xyproto/tacet/internal/engine"
	"github.com/xyproto/tacet/internal/ir"
)

// A tiny code generator that writes static x86_64 Linux executables

const versionString = "tacet 0.1.0"

// compile builds p and writes it to path as an executable, creating the
// directory if needed. Nothing is written when the build fails.
func compile(p *ir.Program, path string) (*build.Assembly, error) {
	asm, err := build.NewBuilder().Build(p)
	if err != nil {
		return nil, err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, engine.IOError("creating "+dir, err)
		}
	}
	if err := elf.WriteFile(path, asm); err != nil {
		return nil, err
	}
	return asm, nil
}

// runExecutable runs a freshly written executable if the host can
func runExecutable(path string, stdout, stderr io.Writer) error {
	host, err := engine.HostPlatform()
	if err != nil {
		return err
	}
	if !host.Supported() {
		return engine.ArgumentError(
			fmt.Sprintf("can not run %s executables on %s", engine.DefaultPlatform, host.FullString()),
			engine.ErrUnsupportedTarget)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	cmd := exec.Command(abs)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// outputPath picks -o over -output when both were given on the command line
func outputPath(fs *flag.FlagSet, short, long string) string {
	var shortSet, longSet bool
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "o":
			shortSet = true
		case "output":
			longSet = true
		}
	})
	if longSet && !shortSet {
		return long
	}
	return short
}

func fail(err error) {
	var ce *engine.CompilerError
	if errors.As(err, &ce) {
		fmt.Fprint(os.Stderr, ce.Format(engine.IsTerminal(os.Stderr)))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(1)
}

func main() {
	cfg := engine.LoadConfig()

	var outputFilenameFlag = flag.String("o", cfg.OutputPath, "output executable filename")
	var outputFilenameLongFlag = flag.String("output", cfg.OutputPath, "output executable filename")
	var targetFlag = flag.String("target", cfg.Target, "target platform (only x86_64-linux is supported)")
	var versionShort = flag.Bool("V", false, "print version information and exit")
	var version = flag.Bool("version", false, "print version information and exit")
	var verbose = flag.Bool("v", false, "verbose mode (show encodings, symbol addresses and headers)")
	var verboseLong = flag.Bool("verbose", false, "verbose mode (show encodings, symbol addresses and headers)")
	var runFlag = flag.Bool("run", false, "run the executable after writing it")
	var quiet = flag.Bool("q", false, "do not print the greeting and farewell")
	flag.Parse()

	if *version || *versionShort {
		fmt.Println(versionString)
		os.Exit(0)
	}

	// Set global verbosity flag (use whichever was specified)
	engine.VerboseMode = cfg.Verbose || *verbose || *verboseLong

	outputFilename := outputPath(flag.CommandLine, *outputFilenameFlag, *outputFilenameLongFlag)

	platform, err := engine.ParsePlatform(*targetFlag)
	if err != nil {
		fail(err)
	}
	if !platform.Supported() {
		fail(engine.ArgumentError("can not generate executables for "+platform.FullString(), engine.ErrUnsupportedTarget))
	}

	if engine.VerboseMode {
		fmt.Fprintf(os.Stderr, "Target: %s, output: %s\n", platform, outputFilename)
	}

	if !*quiet {
		fmt.Println("hello, world!")
	}

	asm, err := compile(helloProgram(), outputFilename)
	if err != nil {
		fail(err)
	}
	if engine.VerboseMode {
		fmt.Fprintf(os.Stderr, "Build %s: code %d bytes, data %d bytes\n", asm.Digest(), len(asm.Code), len(asm.Data))
	}

	if !*quiet {
		fmt.Println("goodbye, world!")
	}

	if *runFlag {
		if err := runExecutable(outputFilename, os.Stdout, os.Stderr); err != nil {
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				os.Exit(exitErr.ExitCode())
			}
			fail(err)
		}
	}
}
