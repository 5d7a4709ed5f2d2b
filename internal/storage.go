package internal

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Publisher uploads a generated fixture directory to S3-compatible storage
type Publisher struct {
	client *minio.Client
	bucket string
	prefix string
	log    *Logger
}

// PublishResult counts what Publish did
type PublishResult struct {
	Uploaded []string
	Skipped  []string
	Bytes    int64
}

// NewPublisher connects to the configured endpoint
func NewPublisher(cfg StorageConfig, log *Logger) (*Publisher, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	if log == nil {
		log = NopLogger()
	}
	return &Publisher{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix, log: log}, nil
}

// EnsureBucket creates the bucket when it does not exist
func (p *Publisher) EnsureBucket(ctx context.Context) error {
	exists, err := p.client.BucketExists(ctx, p.bucket)
	if err != nil {
		return fmt.Errorf("error checking bucket existence: %w", err)
	}
	if exists {
		return nil
	}
	if err := p.client.MakeBucket(ctx, p.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", p.bucket, err)
	}
	p.log.Info("bucket created", "bucket", p.bucket)
	return nil
}

// Publish uploads every photo in dir plus its manifest. Photos already in
// the bucket are left untouched; the manifest grows with every run and is
// always overwritten.
func (p *Publisher) Publish(ctx context.Context, dir string) (*PublishResult, error) {
	files, err := ScanPhotos(dir)
	if err != nil {
		return nil, err
	}
	manifest := filepath.Join(dir, ManifestName)
	if _, err := os.Stat(manifest); err == nil {
		files = append(files, manifest)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no photos found in %s", dir)
	}

	if err := p.EnsureBucket(ctx); err != nil {
		return nil, err
	}

	res := &PublishResult{}
	for _, f := range files {
		key := objectKey(p.prefix, dir, f)

		if !alwaysUpload(f) {
			_, err := p.client.StatObject(ctx, p.bucket, key, minio.StatObjectOptions{})
			if err == nil {
				p.log.Debug("object exists, skipping", "bucket", p.bucket, "key", key)
				res.Skipped = append(res.Skipped, key)
				continue
			}
			if minio.ToErrorResponse(err).Code != "NoSuchKey" {
				return res, fmt.Errorf("failed to check for existing object %s: %w", key, err)
			}
		}

		info, err := p.client.FPutObject(ctx, p.bucket, key, f, minio.PutObjectOptions{ContentType: contentType(f)})
		if err != nil {
			return res, fmt.Errorf("failed to upload %s: %w", f, err)
		}
		res.Uploaded = append(res.Uploaded, key)
		res.Bytes += info.Size
		p.log.Info("object uploaded", "bucket", p.bucket, "key", key, "size", info.Size)
	}
	return res, nil
}

// alwaysUpload reports whether file replaces its object even when one exists
func alwaysUpload(file string) bool {
	return filepath.Base(file) == ManifestName
}

// objectKey builds <prefix>/<dir name>/<file name>
func objectKey(prefix, dir, file string) string {
	parts := []string{}
	if prefix = strings.Trim(prefix, "/"); prefix != "" {
		parts = append(parts, prefix)
	}
	parts = append(parts, sanitizeKey(filepath.Base(filepath.Clean(dir))), sanitizeKey(filepath.Base(file)))
	return path.Join(parts...)
}

// sanitizeKey replaces spaces with hyphens; non-ASCII names are kept as is
func sanitizeKey(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), " ", "-")
}

func contentType(file string) string {
	if isPhotoFile(file) {
		return "image/jpeg"
	}
	if strings.HasSuffix(file, ".jsonl") {
		return "application/x-ndjson"
	}
	return "application/octet-stream"
}
