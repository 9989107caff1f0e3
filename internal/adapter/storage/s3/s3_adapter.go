package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/Abdurahmanit/GroupProject/shop-service/internal/app/config"
	"github.com/Abdurahmanit/GroupProject/shop-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/shop-service/internal/platform/logger"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const photoPrefix = "photos/"

// objectStore is the part of *minio.Client the storage needs.
type objectStore interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
	EndpointURL() *url.URL
}

type Storage struct {
	client objectStore
	bucket string
	log    logger.Logger
}

func NewStorage(ctx context.Context, cfg config.S3Config, log logger.Logger) (*Storage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client for %s: %w", cfg.Endpoint, err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.Bucket, err)
		}
		log.Infof("created bucket %s", cfg.Bucket)
	}

	return newStorage(client, cfg.Bucket, log), nil
}

func newStorage(client objectStore, bucket string, log logger.Logger) *Storage {
	return &Storage{client: client, bucket: bucket, log: log.Named("S3Storage")}
}

func (s *Storage) Upload(ctx context.Context, fileName, contentType string, data []byte) (*entity.Photo, error) {
	key := photoPrefix + uuid.NewString() + strings.ToLower(filepath.Ext(fileName))

	info, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: map[string]string{"original-filename": filepath.Base(fileName)},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload object %s to bucket %s: %w", key, s.bucket, err)
	}
	s.log.Infow("photo uploaded", "bucket", info.Bucket, "key", info.Key, "size", info.Size)

	return &entity.Photo{
		Key:         key,
		URL:         fmt.Sprintf("%s/%s/%s", s.client.EndpointURL().String(), s.bucket, key),
		ContentType: contentType,
	}, nil
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove object %s from bucket %s: %w", key, s.bucket, err)
	}
	s.log.Infow("photo removed", "bucket", s.bucket, "key", key)
	return nil
}
