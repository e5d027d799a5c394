package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Local stores files on the local filesystem and serves them through the
// application's static file route.
type Local struct {
	dir     string
	baseURL string
	logger  zerolog.Logger
}

// NewLocal ensures the upload directory exists and returns a disk-backed
// storage. baseURL is the public prefix the files are mounted under.
func NewLocal(dir, baseURL string, logger zerolog.Logger) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Local{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger.With().Str("component", "local_storage").Logger(),
	}, nil
}

func (l *Local) Save(_ context.Context, ext string, data []byte) (string, error) {
	name := fmt.Sprintf("%s%s", uuid.NewString(), ext)
	path := filepath.Join(l.dir, name)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	l.logger.Debug().Str("path", path).Int("bytes", len(data)).Msg("file stored")
	return l.baseURL + "/" + name, nil
}
