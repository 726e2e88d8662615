package output

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"github.com/df07/go-sphere-tracer/pkg/config"
	"github.com/df07/go-sphere-tracer/pkg/core"
)

// UploadTimeout bounds a single PutObject call
const UploadTimeout = 30 * time.Second

// Uploader stores renders in an S3 bucket
type Uploader struct {
	client s3iface.S3API
	bucket string
	logger core.Logger
}

// NewS3Uploader opens an S3 session from cfg. Static credentials are used when
// both keys are set; otherwise the SDK's default credential chain applies.
func NewS3Uploader(cfg config.S3Config) (*Uploader, error) {
	awsConfig := &aws.Config{
		Region: aws.String(cfg.Region),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("create S3 session: %w", err)
	}
	return NewUploader(s3.New(sess), cfg.Bucket), nil
}

// NewUploader wraps an existing S3 client
func NewUploader(client s3iface.S3API, bucket string) *Uploader {
	return &Uploader{client: client, bucket: bucket}
}

// SetLogger reports finished uploads to logger
func (u *Uploader) SetLogger(logger core.Logger) {
	u.logger = logger
}

// Upload stores data under key as a P3 pixmap
func (u *Uploader) Upload(ctx context.Context, key string, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	size := int64(len(data))
	_, err := u.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(ContentType),
	})
	if err != nil {
		return fmt.Errorf("upload s3://%s/%s: %w", u.bucket, key, err)
	}

	if u.logger != nil {
		u.logger.Printf("Uploaded s3://%s/%s (%d bytes)\n", u.bucket, key, size)
	}
	return nil
}
