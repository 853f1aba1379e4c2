package errors

import (
	"strings"
	"unicode"
)

// MaxIdentifierLength bounds node and edge identifiers in graph files and
// route scripts.
const MaxIdentifierLength = 256

// ValidateIdentifier validates a node or edge identifier.
//
// Identifiers are free-form labels but must be:
//   - Non-empty
//   - At most MaxIdentifierLength bytes
//   - Free of control characters
//   - Free of the edge separator "->", which is reserved for edge names
//     of the form "from->to"
func ValidateIdentifier(id string) error {
	if id == "" {
		return New(ErrCodeInvalidIdentifier, "identifier cannot be empty")
	}

	if len(id) > MaxIdentifierLength {
		return New(ErrCodeInvalidIdentifier, "identifier too long (max %d characters)", MaxIdentifierLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidIdentifier, "identifier contains invalid control characters")
		}
	}

	if strings.Contains(id, "->") {
		return New(ErrCodeInvalidIdentifier, "identifier %q contains reserved separator \"->\"", id)
	}

	return nil
}

// ValidatePath validates a file path referenced from a route script. Such
// paths are resolved against the script's directory and must stay inside it.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	// Must not be absolute path
	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	// Check for path traversal
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	// No backslashes (potential Windows path injection)
	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// ValidateFormat checks that format is one of the accepted output formats.
func ValidateFormat(format string, accepted ...string) error {
	for _, f := range accepted {
		if format == f {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "unsupported format %q (want one of %s)", format, strings.Join(accepted, ", "))
}
