package s3

// Package s3 implements ports.ObjectStore on S3-compatible storage. Product
// and banner images are uploaded here and served from PublicBaseURL.

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	awss3 "github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"

	"github.com/nextgen-organics/portal-api/internal/ports"
)

// Config holds S3 object store configuration.
type Config struct {
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	// Endpoint overrides the AWS endpoint for S3-compatible stores (MinIO).
	Endpoint string
	// PublicBaseURL is the prefix for returned object URLs, e.g. a CDN host.
	PublicBaseURL string
}

// ObjectStore implements ports.ObjectStore against a single bucket.
type ObjectStore struct {
	uploader      *s3manager.Uploader
	svc           *awss3.S3
	bucket        string
	publicBaseURL string
}

// NewObjectStore creates an S3 object store.
func NewObjectStore(cfg Config) (*ObjectStore, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3: bucket is required")
	}
	if cfg.PublicBaseURL == "" {
		return nil, errors.New("s3: public base URL is required")
	}

	awsCfg := &aws.Config{
		Region: aws.String(cfg.Region),
	}
	if cfg.AccessKey != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
		// Path-style addressing for MinIO and similar S3-compatible stores.
		awsCfg.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("create AWS session: %w", err)
	}

	return &ObjectStore{
		uploader:      s3manager.NewUploader(sess),
		svc:           awss3.New(sess),
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimSuffix(cfg.PublicBaseURL, "/"),
	}, nil
}

// Put uploads an object and returns its public URL.
func (s *ObjectStore) Put(ctx context.Context, in ports.PutObjectInput) (string, error) {
	if in.Key == "" {
		return "", errors.New("s3: object key is required")
	}
	if in.Body == nil {
		return "", errors.New("s3: object body is required")
	}

	_, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(in.Key),
		Body:        in.Body,
		ContentType: aws.String(in.ContentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload object %s: %w", in.Key, err)
	}

	return s.publicBaseURL + "/" + strings.TrimPrefix(in.Key, "/"), nil
}

// Delete removes an object. Deleting a missing key is not an error.
func (s *ObjectStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	_, err := s.svc.DeleteObjectWithContext(ctx, &awss3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}
