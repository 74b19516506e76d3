package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/Abdulkadar0710/Student-Dashboard-task/pkg/logger"
	"github.com/Abdulkadar0710/Student-Dashboard-task/pkg/metrics"
	"go.uber.org/zap"
)

// Client wraps an S3-compatible object storage bucket used for roster
// snapshot exports.
type Client struct {
	s3Client   *s3.Client
	bucketName string
	endpoint   string
}

// ClientInterface is the storage contract consumed by services
type ClientInterface interface {
	UploadObject(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// NewClient creates a new object storage client using the S3 SDK. An empty
// endpoint targets AWS itself; set one for S3-compatible providers.
func NewClient(accessKeyID, secretAccessKey, bucketName, endpoint, region string) (*Client, error) {
	if region == "" {
		region = "us-east-1"
	}

	opts := s3.Options{
		Region: region,
		Credentials: credentials.NewStaticCredentialsProvider(
			accessKeyID,
			secretAccessKey,
			"", // session token not needed
		),
	}
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://s3.%s.amazonaws.com", region)
	}
	opts.BaseEndpoint = aws.String(endpoint)

	s3Client := s3.New(opts)

	logger.Info("Object storage client initialized",
		zap.String("bucket", bucketName),
		zap.String("endpoint", endpoint),
		zap.String("region", region),
	)

	return &Client{
		s3Client:   s3Client,
		bucketName: bucketName,
		endpoint:   endpoint,
	}, nil
}

// UploadObject uploads a blob to the bucket and returns its public URL
func (c *Client) UploadObject(ctx context.Context, key, contentType string, data []byte) (string, error) {
	start := time.Now()
	operation := "uploadObject"

	_, err := c.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})

	duration := metrics.MeasureDuration(start)

	if err != nil {
		metrics.StorageRequestDuration.WithLabelValues(operation, "error").Observe(duration)
		metrics.StorageRequestTotal.WithLabelValues(operation, "error").Inc()
		logger.Error("Failed to upload object",
			zap.Error(err),
			zap.String("key", key))
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	metrics.StorageRequestDuration.WithLabelValues(operation, "success").Observe(duration)
	metrics.StorageRequestTotal.WithLabelValues(operation, "success").Inc()
	logger.Info("Object uploaded",
		zap.String("key", key),
		zap.Int("size_bytes", len(data)))

	// Format: {endpoint}/{bucket}/{key}
	return fmt.Sprintf("%s/%s/%s", c.endpoint, c.bucketName, key), nil
}
