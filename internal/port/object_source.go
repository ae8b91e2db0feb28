package port

import "context"

// ObjectInfo describes a stored object before it is downloaded.
type ObjectInfo struct {
	Size        int64
	ContentType string
}

// ObjectSource abstracts read access to cloud object storage.
type ObjectSource interface {
	Stat(ctx context.Context, bucket, key string) (*ObjectInfo, error)
	Download(ctx context.Context, bucket, key string) ([]byte, error)
}
