package io

import (
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/matzehuels/joinpreview/pkg/errors"
)

const maxSlugRunes = 64

// DefaultFilename returns "<slug>.<format>" for a world name, or
// "preview.<format>" when the name has no usable characters. The slug
// keeps letters and digits of any script; every other run of characters
// becomes a single "-".
func DefaultFilename(worldName, format string) string {
	slug := slugify(worldName)
	if slug == "" {
		slug = "preview"
	}
	return slug + "." + format
}

func slugify(name string) string {
	var b strings.Builder
	n, pending := 0, false
	for _, r := range strings.ToLower(name) {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.Is(unicode.Mn, r) {
			pending = b.Len() > 0
			continue
		}
		if pending {
			if n+1 >= maxSlugRunes {
				break
			}
			b.WriteByte('-')
			n++
			pending = false
		}
		if n == maxSlugRunes {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String()
}

// WriteFile writes data to path by renaming a fully written temporary
// file into place. Missing parent directories are created.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", dir)
	}
	tmp := filepath.Join(dir, "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeExport, err, "write %s", path)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return errors.Wrap(errors.ErrCodeExport, err, "write %s", path)
	}
	return nil
}
