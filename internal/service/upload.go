package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mucyuneje/asamfxproduction/internal/storage"
)

// File is an uploaded file held in memory. Handlers cap its size.
type File struct {
	Name        string
	ContentType string
	Content     []byte
}

func (f *File) empty() bool {
	return f == nil || strings.TrimSpace(f.Name) == "" || len(f.Content) == 0
}

type FileStore interface {
	Put(ctx context.Context, key, contentType string, r io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
}

// storedFile remembers where a file went so a failed insert can undo it.
type storedFile struct {
	key string
	url string
}

func putFile(ctx context.Context, store FileStore, prefix string, f *File, now time.Time) (storedFile, error) {
	key := storage.Key(prefix, f.Name, f.Content, now)

	url, err := store.Put(ctx, key, f.ContentType, bytes.NewReader(f.Content))
	if err != nil {
		return storedFile{}, fmt.Errorf("store.Put -> %w", err)
	}

	return storedFile{key: key, url: url}, nil
}

// discard removes a stored file after a failed insert. The request context
// may already be cancelled, so a short detached one is used.
func discard(ctx context.Context, store FileStore, f storedFile) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	if err := store.Delete(ctx, f.key); err != nil {
		zap.L().Warn("failed to delete orphaned upload", zap.String("key", f.key), zap.Error(err))
	}
}
