package storage

import "context"

// FileStorage persists uploaded binary assets and returns a URL clients can
// fetch them from. Implementations generate their own unique object names;
// ext is the dotted file extension derived from the detected content type.
type FileStorage interface {
	Save(ctx context.Context, ext string, data []byte) (string, error)
}
