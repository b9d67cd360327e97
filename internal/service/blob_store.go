package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"dental-clinic-api/internal/domain/entity"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// FileIntake is what the upload/camera collaborator hands the core: a
// content blob plus metadata. MimeType may be empty, in which case the
// content is sniffed.
type FileIntake struct {
	Name     string
	MimeType string
	Content  io.Reader
}

// BlobStore persists file content and returns an opaque URL reference. The
// clinical record only ever stores that reference.
type BlobStore interface {
	Put(ctx context.Context, name, contentType string, content io.Reader) (string, error)
}

// DetectFileType resolves the clinical file class for an intake. A declared
// MIME type wins; otherwise the content is sniffed. The possibly-buffered
// content reader is returned so sniffed bytes are not lost.
func DetectFileType(intake FileIntake) (entity.ClinicalFileType, string, io.Reader, error) {
	if intake.MimeType != "" {
		return entity.FileTypeFromMime(intake.MimeType), intake.MimeType, intake.Content, nil
	}

	raw, err := io.ReadAll(intake.Content)
	if err != nil {
		return "", "", nil, fmt.Errorf("failed to read file content: %w", err)
	}
	detected := mimetype.Detect(raw)
	return entity.FileTypeFromMime(detected.String()), detected.String(), bytes.NewReader(raw), nil
}

// objectKey builds a collision-free object name preserving the extension
func objectKey(name string) string {
	return uuid.NewString() + filepath.Ext(name)
}

// FSBlobStore writes content under a local directory. This is the reference
// backend; URLs are served back under /uploads/.
type FSBlobStore struct {
	dir string
}

func NewFSBlobStore(dir string) (*FSBlobStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &FSBlobStore{dir: dir}, nil
}

func (s *FSBlobStore) Put(ctx context.Context, name, contentType string, content io.Reader) (string, error) {
	key := objectKey(name)
	path := filepath.Join(s.dir, key)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create blob file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write blob file: %w", err)
	}
	return "/uploads/" + key, nil
}

// S3BlobStore stores file content in an S3-compatible bucket (AWS or MinIO)
type S3BlobStore struct {
	client *s3.Client
	bucket string
}

// S3Config holds explicit construction parameters. Credentials come from the
// default AWS chain.
type S3Config struct {
	Region   string
	Bucket   string
	Endpoint string // optional, for MinIO-style endpoints
}

func NewS3BlobStore(ctx context.Context, cfg S3Config) (*S3BlobStore, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3BlobStore{client: client, bucket: cfg.Bucket}, nil
}

func (s *S3BlobStore) Put(ctx context.Context, name, contentType string, content io.Reader) (string, error) {
	key := objectKey(name)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        content,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload blob to s3: %w", err)
	}
	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}
