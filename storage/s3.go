package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Store keeps every logical bucket as a key prefix inside one S3 bucket.
type S3Store struct {
	BucketName string
	PublicBase string
	Client     *s3.Client
}

func NewS3Store(ctx context.Context, bucket, region, publicBase string) (*S3Store, error) {
	if bucket == "" {
		return nil, fmt.Errorf("bucket name is not set")
	}
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	if publicBase == "" {
		publicBase = fmt.Sprintf("https://%s.s3.amazonaws.com", bucket)
	}
	return &S3Store{
		BucketName: bucket,
		PublicBase: strings.TrimRight(publicBase, "/"),
		Client:     s3.NewFromConfig(cfg),
	}, nil
}

func (s *S3Store) objectKey(bucket, key string) string {
	return bucket + "/" + strings.TrimLeft(key, "/")
}

func (s *S3Store) Put(ctx context.Context, bucket, key string, body io.Reader, contentType string) (string, error) {
	objectKey := s.objectKey(bucket, key)
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.BucketName),
		Key:    aws.String(objectKey),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := s.Client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %w", err)
	}
	return s.PublicBase + "/" + objectKey, nil
}

func (s *S3Store) Delete(ctx context.Context, bucket, key string) error {
	_, err := s.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.BucketName),
		Key:    aws.String(s.objectKey(bucket, key)),
	})
	if err != nil {
		return fmt.Errorf("failed to delete S3 object: %w", err)
	}
	return nil
}
