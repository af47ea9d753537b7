package services

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ReceiptStore archives rendered receipts in one object-storage bucket.
type ReceiptStore interface {
	Put(ctx context.Context, key string, content []byte, contentType string) error
	// SignedURL returns a time-limited download link for key.
	SignedURL(ctx context.Context, key, filename string, expiry time.Duration) (string, error)
	EnsureBucket(ctx context.Context) error
	Ping(ctx context.Context) error
}

// MinioOptions locates the S3-compatible endpoint and bucket.
type MinioOptions struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type minioReceiptStore struct {
	client *minio.Client
	bucket string
}

func NewMinioReceiptStore(opts MinioOptions) (ReceiptStore, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("receipt bucket is required")
	}
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, err
	}
	return &minioReceiptStore{client: client, bucket: opts.Bucket}, nil
}

func (s *minioReceiptStore) Put(ctx context.Context, key string, content []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(content), int64(len(content)), minio.PutObjectOptions{
		ContentType:  contentType,
		CacheControl: "private, max-age=0",
	})
	if err != nil {
		return fmt.Errorf("put %s/%s: %w", s.bucket, key, err)
	}
	return nil
}

// SignedURL makes the browser save the object under filename.
func (s *minioReceiptStore) SignedURL(ctx context.Context, key, filename string, expiry time.Duration) (string, error) {
	params := url.Values{}
	params.Set("response-content-disposition", fmt.Sprintf("attachment; filename=%q", filename))
	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, expiry, params)
	if err != nil {
		return "", fmt.Errorf("presign %s/%s: %w", s.bucket, key, err)
	}
	return u.String(), nil
}

func (s *minioReceiptStore) EnsureBucket(ctx context.Context) error {
	found, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if found {
		return nil
	}
	return s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
}

func (s *minioReceiptStore) Ping(ctx context.Context) error {
	found, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("bucket %s does not exist", s.bucket)
	}
	return nil
}
