package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/studiobook/internal/config"
	"github.com/BruksfildServices01/studiobook/internal/logging"
)

// ObjectClient is the part of the S3 API the store uses.
type ObjectClient interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type ImageStore struct {
	client  ObjectClient
	bucket  string
	baseURL string
}

// NewS3Client builds a client for AWS or any S3-compatible endpoint.
// Static credentials are used when given, otherwise anonymous access.
func NewS3Client(cfg config.S3Config) *s3.Client {
	opts := s3.Options{
		Region: cfg.Region,
	}
	if cfg.AccessKeyID != "" {
		opts.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}
	return s3.New(opts)
}

func NewImageStore(client ObjectClient, bucket, baseURL string) *ImageStore {
	return &ImageStore{
		client:  client,
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Save converts the upload to WebP and stores it under folder. It
// returns the public URL.
func (s *ImageStore) Save(ctx context.Context, folder string, data []byte) (string, error) {
	if s == nil {
		return "", ErrStorageUnavailable
	}

	body, err := ToWebP(data)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("%s/%s.webp", strings.Trim(folder, "/"), uuid.NewString())

	if _, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(body),
		ContentType:  aws.String("image/webp"),
		CacheControl: aws.String("public, max-age=31536000"),
	}); err != nil {
		return "", fmt.Errorf("put %s: %w", key, err)
	}

	return s.baseURL + "/" + key, nil
}

// Delete removes a previously saved image. URLs outside the store are
// ignored. Failures are logged, never returned.
func (s *ImageStore) Delete(ctx context.Context, url string) {
	if s == nil || url == "" {
		return
	}

	key, ok := s.keyFor(url)
	if !ok {
		return
	}

	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		logging.Log.Warn("image delete failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *ImageStore) keyFor(url string) (string, bool) {
	prefix := s.baseURL + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(url, prefix)
	return key, key != ""
}
