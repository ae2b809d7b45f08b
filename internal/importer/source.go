package importer

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pageza/recipe-catalog/backend/config"
)

// Open opens the CSV at path, which is either a local file or an
// s3://bucket/key URL. s3:///key reads key from S3_BUCKET_NAME.
func Open(ctx context.Context, cfg *config.Config, path string) (io.ReadCloser, error) {
	if !strings.HasPrefix(path, "s3://") {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		return f, nil
	}

	bucket, key, ok := strings.Cut(strings.TrimPrefix(path, "s3://"), "/")
	if !ok || key == "" {
		return nil, fmt.Errorf("invalid S3 path %q: want s3://bucket/key", path)
	}
	s3cfg, err := config.NewS3Config(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return s3cfg.Open(ctx, bucket, key)
}
