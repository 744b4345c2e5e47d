package localfs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/kirillkom/docqa-client/internal/core/domain"
)

const defaultMaxBytes = 50 << 20

// Source reads user-selected files from the local filesystem.
type Source struct {
	basePath string
	maxBytes int64
}

func New(basePath string, maxBytes int64) *Source {
	if maxBytes <= 0 {
		maxBytes = defaultMaxBytes
	}
	return &Source{basePath: basePath, maxBytes: maxBytes}
}

// Load returns nil without error when nothing was selected.
func (s *Source) Load(_ context.Context, path string) (*domain.File, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, nil
	}
	if !filepath.IsAbs(path) && s.basePath != "" {
		path = filepath.Join(s.basePath, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}
	if stat.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if stat.Size() > s.maxBytes {
		return nil, fmt.Errorf("file %s is %d bytes, limit is %d", path, stat.Size(), s.maxBytes)
	}

	data, err := readLimited(f, s.maxBytes)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}

	return &domain.File{
		Name:        filepath.Base(path),
		ContentType: mimetype.Detect(data).String(),
		Data:        data,
	}, nil
}

// readLimited fails instead of truncating when r holds more than limit bytes,
// which covers a file growing after it was stat'ed.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("content exceeds limit of %d bytes", limit)
	}
	return data, nil
}
