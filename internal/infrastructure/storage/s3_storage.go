// Package storage provides object storage implementations for flier files.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	ticketingapp "github.com/eventpass/backend/internal/application/ticketing"
	infraconfig "github.com/eventpass/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Ensure S3FlierStorage implements FlierStorage
var _ ticketingapp.FlierStorage = (*S3FlierStorage)(nil)

// S3FlierStorage stores flier images in an S3-compatible bucket and exposes
// them through stable public view URLs. It works with AWS S3, MinIO, RustFS
// and any other S3-compatible backend.
type S3FlierStorage struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
	projectID     string
	logger        *zap.Logger
}

// S3FlierStorageOption is a functional option for configuring S3FlierStorage
type S3FlierStorageOption func(*S3FlierStorage)

// WithLogger sets a custom logger for S3FlierStorage
func WithLogger(logger *zap.Logger) S3FlierStorageOption {
	return func(s *S3FlierStorage) {
		s.logger = logger
	}
}

// NewS3FlierStorage creates a new S3FlierStorage from configuration.
func NewS3FlierStorage(cfg *infraconfig.StorageConfig, opts ...S3FlierStorageOption) (*S3FlierStorage, error) {
	if cfg == nil {
		return nil, errors.New("storage configuration is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}
	if cfg.AccessKey == "" {
		return nil, errors.New("storage access key is required")
	}
	if cfg.SecretKey == "" {
		return nil, errors.New("storage secret key is required")
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = "http://localhost:9000"
	}
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}
	if _, err := url.Parse(endpoint); err != nil {
		return nil, fmt.Errorf("invalid storage endpoint: %w", err)
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.ForcePathStyle
		o.BaseEndpoint = aws.String(endpoint)
	})

	storage := &S3FlierStorage{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: cfg.PublicBaseURL,
		projectID:     cfg.ProjectID,
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(storage)
	}
	return storage, nil
}

// EnsureBucket creates the bucket if it doesn't exist.
// Call this during application startup so uploads don't fail later.
func (s *S3FlierStorage) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err == nil {
		return nil
	}

	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	s.logger.Info("Creating storage bucket", zap.String("bucket", s.bucket))
	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		// Another instance may have created it first
		var alreadyOwned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &alreadyOwned) {
			return nil
		}
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// Upload stores a flier image and returns its public view URL.
func (s *S3FlierStorage) Upload(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("flier data is empty")
	}

	fileID := uuid.New().String()
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(fileID),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		Metadata: map[string]string{
			"original-filename": filename,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload flier: %w", err)
	}

	s.logger.Info("Flier uploaded",
		zap.String("file_id", fileID),
		zap.String("filename", filename),
		zap.Int("size", len(data)))

	return BuildViewURL(s.publicBaseURL, s.bucket, fileID, s.projectID), nil
}

// Delete removes the flier referenced by a view URL.
func (s *S3FlierStorage) Delete(ctx context.Context, fileURL string) error {
	fileID, err := ExtractFileID(fileURL)
	if err != nil {
		return err
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(fileID),
	})
	if err != nil {
		return fmt.Errorf("failed to delete flier: %w", err)
	}

	s.logger.Info("Flier deleted", zap.String("file_id", fileID))
	return nil
}
