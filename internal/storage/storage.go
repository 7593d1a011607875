// Package storage keeps uploaded files (payment proofs and kit thumbnails)
// and hands back the URL clients use to fetch them.
package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/mucyuneje/asamfxproduction/internal/config"
)

const (
	PrefixProofs     = "proofs"
	PrefixThumbnails = "thumbnails"
)

var ErrInvalidKey = errors.New("invalid storage key")

type Store interface {
	Put(ctx context.Context, key, contentType string, r io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
}

// New builds the store selected by conf.Driver.
func New(ctx context.Context, conf *config.StorageConfig) (Store, error) {
	switch conf.Driver {
	case config.StorageDriverLocal:
		local, err := NewLocal(conf.LocalDir, conf.PublicPrefix)
		if err != nil {
			return nil, err
		}
		return local, nil
	case config.StorageDriverGCS:
		gcs, err := NewGCS(ctx, conf.GCSBucket, conf.GCSPublicBase)
		if err != nil {
			return nil, err
		}
		return gcs, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", conf.Driver)
	}
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// SanitizeName reduces a client supplied file name to a safe base name.
func SanitizeName(name string) string {
	name = path.Base(strings.ReplaceAll(name, `\`, "/"))
	name = unsafeChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if len(name) > 64 {
		name = name[len(name)-64:]
	}
	if name == "" {
		return "file"
	}

	return name
}

// Key derives a content addressed object key:
// <prefix>/<sha256 prefix>-<unix nanos>-<sanitised name>.
func Key(prefix, name string, content []byte, now time.Time) string {
	sum := sha256.Sum256(content)

	return fmt.Sprintf("%s/%s-%d-%s", prefix, hex.EncodeToString(sum[:])[:16], now.UnixNano(), SanitizeName(name))
}

func checkKey(key string) error {
	if key == "" || strings.HasPrefix(key, "/") || path.Clean(key) != key || strings.HasPrefix(key, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}

	return nil
}
