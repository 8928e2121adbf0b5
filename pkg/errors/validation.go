package errors

import (
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	maxWorldNameLength  = 128
	maxPlayerNameLength = 64
	maxImageRefLength   = 4096
)

// ValidateWorldName validates the card title.
// An empty name is allowed; templates skip the title and exports fall back
// to a fixed filename.
func ValidateWorldName(name string) error {
	if utf8.RuneCountInString(name) > maxWorldNameLength {
		return New(ErrCodeInvalidInput, "world name too long (max %d characters)", maxWorldNameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "world name contains invalid control characters")
		}
	}
	return nil
}

// ValidatePlayerName validates a single roster entry.
func ValidatePlayerName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidInput, "player name cannot be empty")
	}
	if utf8.RuneCountInString(name) > maxPlayerNameLength {
		return New(ErrCodeInvalidInput, "player name too long (max %d characters): %q", maxPlayerNameLength, name)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "player name contains invalid control characters: %q", name)
		}
	}
	return nil
}

// ValidateImageRef validates an image reference. Accepted forms:
//   - http:// or https:// URLs
//   - data: URIs
//   - local file paths (no null bytes or control characters)
//
// An empty reference means "no image" and is valid.
func ValidateImageRef(ref string) error {
	if ref == "" {
		return nil
	}
	if strings.HasPrefix(ref, "data:") {
		if !strings.Contains(ref, ",") {
			return New(ErrCodeInvalidImage, "malformed data URI")
		}
		return nil
	}
	if len(ref) > maxImageRefLength {
		return New(ErrCodeInvalidImage, "image reference too long (max %d characters)", maxImageRefLength)
	}
	if strings.Contains(ref, "://") {
		return ValidateURL(ref)
	}
	for _, r := range ref {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "image path contains invalid characters")
		}
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https) and a host.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidURL, "URL cannot be empty")
	}
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidURL, "URL must use http or https scheme")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidURL, err, "invalid URL")
	}
	if u.Host == "" {
		return New(ErrCodeInvalidURL, "URL must include a host")
	}
	return nil
}

// ValidateFilename validates an output filename for safety.
// It must be a simple basename without path components.
func ValidateFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidPath, "filename cannot be empty")
	}
	if strings.ContainsAny(filename, "/\\") {
		return New(ErrCodeInvalidPath, "filename cannot contain path separators")
	}
	if filename == "." || filename == ".." {
		return New(ErrCodeInvalidPath, "filename cannot be %q", filename)
	}
	for _, r := range filename {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "filename contains invalid characters")
		}
	}
	return nil
}
