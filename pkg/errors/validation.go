package errors

import (
	"strings"
	"unicode"
)

// maxLocationLength bounds project locations accepted from users and requests.
const maxLocationLength = 4096

// ValidateLocation validates a project location before it reaches the
// filesystem. Locations are either plain paths or file:// URIs.
//
// Validation rules:
//   - Location cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
//   - Only the file scheme is accepted when a scheme is present
//   - A file URI must carry a non-empty path
func ValidateLocation(location string) error {
	if location == "" {
		return New(ErrCodeInvalidPath, "location cannot be empty")
	}

	if len(location) > maxLocationLength {
		return New(ErrCodeInvalidPath, "location too long (max %d characters)", maxLocationLength)
	}

	for _, r := range location {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "location contains invalid characters")
		}
	}

	scheme, rest, ok := strings.Cut(location, "://")
	if !ok {
		return nil
	}
	if scheme != "file" {
		return New(ErrCodeInvalidPath, "unsupported location scheme %q (only file:// is supported)", scheme)
	}
	if rest == "" || rest == "/" {
		return New(ErrCodeInvalidPath, "file URI has no path")
	}

	return nil
}

// ValidateFilename validates an output filename chosen by a user.
// It ensures the filename is a simple basename without path components.
func ValidateFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidPath, "filename cannot be empty")
	}

	if strings.ContainsAny(filename, "/\\") {
		return New(ErrCodeInvalidPath, "filename cannot contain path separators")
	}

	if strings.HasPrefix(filename, ".") {
		return New(ErrCodeInvalidPath, "filename cannot be a hidden file")
	}

	return nil
}
