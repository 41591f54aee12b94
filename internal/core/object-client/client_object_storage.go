package objectclient

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/markdave123-py/reflectcoach/internal/core"
	"github.com/markdave123-py/reflectcoach/internal/pkg/logger"
)

type S3Client struct {
	log      *logger.Logger
	uploader *manager.Uploader
	region   string
}

var _ core.ObjectClient = (*S3Client)(nil)

func NewS3Client(log *logger.Logger, awsCfg aws.Config) (*S3Client, error) {
	if awsCfg.Region == "" {
		return nil, fmt.Errorf("AWS_REGION not set")
	}

	client := s3.NewFromConfig(awsCfg)
	log.Info("S3 client configured", "region", awsCfg.Region)

	return &S3Client{
		log:      log.With("service", "S3Client"),
		uploader: manager.NewUploader(client),
		region:   awsCfg.Region,
	}, nil
}

// UploadFile uploads an object to S3 and returns its URL.
func (c *S3Client) UploadFile(ctx context.Context, bucket, key string, data io.Reader, contentType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        data,
		ContentType: aws.String(contentType),
	}

	ctxUpload, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	if _, err := c.uploader.Upload(ctxUpload, input); err != nil {
		return "", fmt.Errorf("s3 upload failed: %w", err)
	}

	url := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, c.region, key)
	c.log.Debug("object uploaded", "url", url)
	return url, nil
}
