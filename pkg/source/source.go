// Package source resolves card image references to pixels.
//
// A reference is one of:
//   - "" (no image)
//   - a data: URI, base64 or percent-encoded
//   - an http(s) URL, downloaded with retry and cached by URL
//   - a local file path
//
// Decoding supports PNG, JPEG, GIF, BMP and WebP, and applies EXIF
// orientation.
package source

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/matzehuels/joinpreview/pkg/cache"
	"github.com/matzehuels/joinpreview/pkg/errors"
	"github.com/matzehuels/joinpreview/pkg/httputil"
	"github.com/matzehuels/joinpreview/pkg/observability"
	"github.com/matzehuels/joinpreview/pkg/palette"
)

// Kind classifies an image reference.
type Kind string

const (
	KindNone Kind = ""
	KindData Kind = "data"
	KindURL  Kind = "url"
	KindFile Kind = "file"
)

// Classify returns the kind of ref.
func Classify(ref string) Kind {
	switch {
	case strings.TrimSpace(ref) == "":
		return KindNone
	case strings.HasPrefix(ref, "data:"):
		return KindData
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return KindURL
	default:
		return KindFile
	}
}

// Image is a loaded card image.
type Image struct {
	Ref         string
	Kind        Kind
	Data        []byte
	ContentType string
	Hash        string // SHA-256 of Data
	Pixels      image.Image
	FromCache   bool
}

// Href returns the URI to place in vector output. Remote images keep
// their URL unless embed is set; everything else is inlined.
func (img *Image) Href(embed bool) string {
	if img == nil {
		return ""
	}
	if img.Kind == KindURL && !embed {
		return img.Ref
	}
	return "data:" + img.ContentType + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
}

// Pixels converts any decoded image to the buffer the color extractor reads.
func Pixels(img image.Image) palette.PixelImage {
	return palette.NewPixelImage(img)
}

// Loader loads image references.
type Loader struct {
	Fetcher *httputil.Fetcher
	Cache   cache.Cache
	Keyer   cache.Keyer
	Logger  *log.Logger
}

// NewLoader returns a Loader using c for downloaded images. A nil c
// disables caching.
func NewLoader(c cache.Cache, logger *log.Logger) *Loader {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Loader{
		Fetcher: httputil.NewFetcher(),
		Cache:   c,
		Keyer:   cache.NewDefaultKeyer(),
		Logger:  logger,
	}
}

// Load resolves and decodes ref. It returns (nil, nil) for an empty ref.
func (l *Loader) Load(ctx context.Context, ref string) (*Image, error) {
	ref = strings.TrimSpace(ref)
	img := &Image{Ref: ref, Kind: Classify(ref)}

	var err error
	switch img.Kind {
	case KindNone:
		return nil, nil
	case KindData:
		img.ContentType, img.Data, err = parseDataURI(ref)
	case KindURL:
		err = l.fetch(ctx, img)
	case KindFile:
		img.Data, err = readFile(ref)
	}
	if err != nil {
		return nil, err
	}

	if img.ContentType == "" || !strings.HasPrefix(img.ContentType, "image/") {
		img.ContentType = http.DetectContentType(img.Data)
	}
	img.Hash = cache.Hash(img.Data)
	if img.Pixels == nil {
		if img.Pixels, err = Decode(img.Data); err != nil {
			return nil, err
		}
	}
	return img, nil
}

func (l *Loader) fetch(ctx context.Context, img *Image) error {
	key := l.Keyer.ImageKey(img.Ref)
	if data, ok, err := l.Cache.Get(ctx, key); err != nil {
		l.Logger.Warn("image cache read failed", "error", err)
	} else if ok {
		if pixels, err := Decode(data); err == nil {
			observability.Cache().OnCacheHit(ctx, "image")
			l.Logger.Debug("image cache hit", "url", img.Ref)
			img.Data, img.Pixels, img.FromCache = data, pixels, true
			return nil
		}
		l.Logger.Warn("dropping undecodable cached image", "url", img.Ref)
		if err := l.Cache.Delete(ctx, key); err != nil {
			l.Logger.Warn("image cache delete failed", "error", err)
		}
	}

	observability.Cache().OnCacheMiss(ctx, "image")
	l.Logger.Debug("downloading image", "url", img.Ref)
	data, contentType, err := l.Fetcher.Get(ctx, img.Ref)
	if err != nil {
		return err
	}
	// Only decodable bodies are cached.
	pixels, err := Decode(data)
	if err != nil {
		return err
	}
	img.Data, img.ContentType, img.Pixels = data, contentType, pixels
	if err := l.Cache.Set(ctx, key, data, cache.ImageTTL); err != nil {
		l.Logger.Warn("image cache write failed", "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "image", len(data))
	}
	return nil
}

// Decode decodes image bytes, honoring EXIF orientation.
func Decode(data []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidImage, err, "decode image")
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return nil, errors.New(errors.ErrCodeInvalidImage, "image has no pixels")
	}
	return img, nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "image file not found: %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read image %s", path)
	}
	return data, nil
}

// parseDataURI splits "data:[<mediatype>][;base64],<data>".
func parseDataURI(ref string) (string, []byte, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(ref, "data:"), ",")
	if !ok {
		return "", nil, errors.New(errors.ErrCodeInvalidImage, "malformed data URI")
	}
	params := strings.Split(meta, ";")
	contentType := params[0]
	isBase64 := false
	for _, p := range params[1:] {
		if p == "base64" {
			isBase64 = true
		}
	}

	if isBase64 {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			if data, err = base64.RawStdEncoding.DecodeString(payload); err != nil {
				return "", nil, errors.Wrap(errors.ErrCodeInvalidImage, err, "decode data URI")
			}
		}
		return contentType, data, nil
	}
	text, err := url.PathUnescape(payload)
	if err != nil {
		return "", nil, errors.Wrap(errors.ErrCodeInvalidImage, err, "decode data URI")
	}
	return contentType, []byte(text), nil
}
