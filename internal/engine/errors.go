// Completion: 100% - Error handling complete, clear and helpful messages
package engine

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoAssembly        = errors.New("no Assembly given")
	ErrUndefinedSymbol   = errors.New("undefined symbol")
	ErrInvalidOperand    = errors.New("invalid operand")
	ErrFieldOverflow     = errors.New("value does not fit its field")
	ErrSegmentOverlap    = errors.New("segments overlap")
	ErrUnalignedLayout   = errors.New("layout is not page aligned")
	ErrUnsupportedTarget = errors.New("unsupported target")
)

// ErrorLevel indicates the severity of an error
type ErrorLevel int

const (
	LevelError ErrorLevel = iota
	LevelFatal
)

func (l ErrorLevel) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelFatal:
		return "fatal error"
	default:
		return "unknown"
	}
}

// ErrorCategory classifies the type of error
type ErrorCategory int

const (
	// CategoryIO covers creating, truncating, seeking and writing the output
	CategoryIO ErrorCategory = iota
	// CategoryRange is a size, address or length that does not fit its field
	CategoryRange
	// CategoryReference is a SymbolRef naming no resolved symbol
	CategoryReference
	// CategoryArgument is a malformed operand or encoding field
	CategoryArgument
)

func (c ErrorCategory) String() string {
	switch c {
	case CategoryIO:
		return "i/o"
	case CategoryRange:
		return "range"
	case CategoryReference:
		return "reference"
	case CategoryArgument:
		return "argument"
	default:
		return "unknown"
	}
}

// CompilerError is a single build failure. Every CompilerError aborts the build.
type CompilerError struct {
	Level    ErrorLevel
	Category ErrorCategory
	Message  string
	Err      error
}

// Error implements the error interface
func (e *CompilerError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *CompilerError) Unwrap() error {
	return e.Err
}

// Format returns a message suitable for the terminal
func (e *CompilerError) Format(useColor bool) string {
	var sb strings.Builder

	if useColor {
		sb.WriteString("\033[1;31m") // Bold red
	}
	sb.WriteString(e.Level.String())
	sb.WriteString(" (")
	sb.WriteString(e.Category.String())
	sb.WriteString("): ")
	if useColor {
		sb.WriteString("\033[0m") // Reset
	}
	sb.WriteString(e.Error())
	sb.WriteString("\n")

	if e.Category == CategoryIO {
		if useColor {
			sb.WriteString("\033[1;36m") // Bold cyan
		}
		sb.WriteString("   note: ")
		if useColor {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("the output file may be partially written and must not be used\n")
	}

	return sb.String()
}

// IOError wraps a failure on the output target
func IOError(message string, err error) *CompilerError {
	return &CompilerError{
		Level:    LevelFatal,
		Category: CategoryIO,
		Message:  message,
		Err:      err,
	}
}

// RangeError reports a value that can not be represented in its field
func RangeError(message string, err error) *CompilerError {
	return &CompilerError{
		Level:    LevelFatal,
		Category: CategoryRange,
		Message:  message,
		Err:      err,
	}
}

// ReferenceError reports an undefined or forward symbol reference
func ReferenceError(message string) *CompilerError {
	return &CompilerError{
		Level:    LevelFatal,
		Category: CategoryReference,
		Message:  message,
		Err:      ErrUndefinedSymbol,
	}
}

// ArgumentError reports an operand or encoding field out of its domain
func ArgumentError(message string, err error) *CompilerError {
	return &CompilerError{
		Level:    LevelError,
		Category: CategoryArgument,
		Message:  message,
		Err:      err,
	}
}

// CategoryOf returns the category of the first CompilerError in err's chain.
func CategoryOf(err error) (ErrorCategory, bool) {
	var ce *CompilerError
	if errors.As(err, &ce) {
		return ce.Category, true
	}
	return 0, false
}
