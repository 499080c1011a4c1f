package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog/log"

	cfg "github.com/wahinekai/memberdb-backend/internal/config"
	"github.com/wahinekai/memberdb-backend/internal/domain"
	"github.com/wahinekai/memberdb-backend/internal/retry"
)

// ErrPublicBaseURLRequired is returned when uploads would have no permanent URL
var ErrPublicBaseURLRequired = errors.New("S3 public base URL is required")

// objectAPI is the subset of the S3 client the repository uses
type objectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3UploadRepository implements domain.UploadRepository using AWS S3
type S3UploadRepository struct {
	client        objectAPI
	bucket        string
	publicBaseURL string
	policy        retry.Policy
}

var _ domain.UploadRepository = (*S3UploadRepository)(nil)

// NewS3UploadRepository creates a new S3 upload repository. Returned URLs are
// stored on member records, so they are built on the public base URL and never expire.
func NewS3UploadRepository(ctx context.Context, s3cfg cfg.S3Config, policy retry.Policy) (*S3UploadRepository, error) {
	if s3cfg.PublicBaseURL == "" {
		return nil, ErrPublicBaseURLRequired
	}

	// Build AWS config options
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(s3cfg.Region),
	}

	// Add credentials if provided
	if s3cfg.AccessKeyID != "" && s3cfg.SecretAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				s3cfg.AccessKeyID,
				s3cfg.SecretAccessKey,
				"",
			),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	// Endpoint override for MinIO/LocalStack
	var client *s3.Client
	if s3cfg.Endpoint != "" {
		client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(s3cfg.Endpoint)
			o.UsePathStyle = true
		})
	} else {
		client = s3.NewFromConfig(awsCfg)
	}

	repo := &S3UploadRepository{
		client:        client,
		bucket:        s3cfg.Bucket,
		publicBaseURL: s3cfg.PublicBaseURL,
		policy:        uploadPolicy(policy),
	}

	if err := ensureBucket(ctx, client, s3cfg.Bucket); err != nil {
		return nil, err
	}
	return repo, nil
}

// ensureBucket creates the bucket if it doesn't exist. The bucket stays private.
func ensureBucket(ctx context.Context, client *s3.Client, bucket string) error {
	_, err := client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(bucket),
	})
	if err == nil {
		return nil
	}

	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("failed to check bucket (may be permission denied): %w", err)
	}

	_, err = client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// Upload stores data under fileName and returns its permanent public URL. Throttling and
// server errors are retried under the repository's policy.
func (r *S3UploadRepository) Upload(ctx context.Context, fileName string, data io.Reader, contentType string, size int64) (string, error) {
	key := path.Clean("/" + fileName)[1:]
	if key == "" {
		return "", fmt.Errorf("upload requires a file name")
	}

	// buffered so every attempt sends the full body
	buf, err := io.ReadAll(data)
	if err != nil {
		return "", fmt.Errorf("failed to read data: %w", err)
	}
	if size >= 0 && int64(len(buf)) != size {
		log.Warn().Int64("declared", size).Int("actual", len(buf)).Str("key", key).Msg("Upload size mismatch")
	}

	err = retry.Run(ctx, r.policy, func(ctx context.Context) error {
		_, err := r.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:        aws.String(r.bucket),
			Key:           aws.String(key),
			Body:          bytes.NewReader(buf),
			ContentType:   aws.String(contentType),
			ContentLength: aws.Int64(int64(len(buf))),
		})
		return err
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	return r.publicBaseURL + "/" + key, nil
}

func uploadPolicy(p retry.Policy) retry.Policy {
	p.Retryable = isRetryableUpload
	return p
}

// isRetryableUpload reports throttling, server errors and network timeouts
func isRetryableUpload(err error) bool {
	var status interface{ HTTPStatusCode() int }
	if errors.As(err, &status) {
		code := status.HTTPStatusCode()
		return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
