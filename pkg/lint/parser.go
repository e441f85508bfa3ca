package lint

import (
	"context"

	"github.com/yaklabco/gopydoclint/pkg/pysrc"
)

// Parser parses Python source into a File with its definitions located.
//
// The lint package defines this interface in the consumer package;
// parser/treesitter provides the concrete implementation.
//
// Implementations must be:
//   - deterministic for a given (path, content) pair,
//   - safe for concurrent use by multiple goroutines,
//   - side-effect free (no I/O, no global state mutation).
type Parser interface {
	// Parse converts raw Python bytes into a File.
	//
	// The path is used for diagnostics only. Syntax errors are not fatal:
	// the parser recovers, sets File.HasSyntaxErrors, and still reports the
	// definitions it could locate. An error is returned only when no File
	// can be produced, such as on cancellation.
	//
	// Every docstring literal in the returned File satisfies
	// StringLiteral.Validate for the file's length.
	Parse(ctx context.Context, path string, content []byte) (*pysrc.File, error)
}
