package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/soumenkm/TranslateApp/internal/domain"
	"github.com/soumenkm/TranslateApp/internal/ports"
)

// S3Options configures the object store sink. Endpoint, AccessKey,
// and SecretKey are optional: leave them empty to use the default
// AWS resolution chain, or set them to point at a MinIO-style
// deployment with static credentials.
type S3Options struct {
	Region    string
	Bucket    string
	Prefix    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// S3 persists each submission as an object at <prefix>/<key>.json.
// Object puts are last-writer-wins, so replaying a key rewrites the
// identical document.
type S3 struct {
	client *s3.Client
	bucket string
	prefix string
}

var _ ports.RatingsSink = (*S3)(nil)

// NewS3 builds an object store sink from the given options.
func NewS3(ctx context.Context, opts S3Options) (*S3, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}

	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(opts.Region),
	}
	if opts.AccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, "")))
	}
	if opts.Endpoint != "" {
		endpoint := opts.Endpoint
		if !strings.Contains(endpoint, "://") {
			endpoint = fmt.Sprintf("http://%s", endpoint)
		}
		resolver := aws.EndpointResolverWithOptionsFunc(
			func(service, region string, options ...interface{}) (aws.Endpoint, error) {
				return aws.Endpoint{URL: endpoint, HostnameImmutable: true}, nil
			})
		loadOpts = append(loadOpts, config.WithEndpointResolverWithOptions(resolver))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load s3 configuration: %w", err)
	}

	return &S3{
		client: s3.NewFromConfig(cfg),
		bucket: opts.Bucket,
		prefix: strings.Trim(opts.Prefix, "/"),
	}, nil
}

// Name identifies this sink in errors, metrics, and traces.
func (s *S3) Name() string { return "s3" }

// Store uploads the submission document to the configured bucket.
func (s *S3) Store(ctx context.Context, submission *domain.ValidatedSubmission) error {
	payload, err := json.Marshal(submission)
	if err != nil {
		return ports.NewPersistError(s.Name(), submission.Key,
			fmt.Errorf("%w: %v", ports.ErrInvalidRecord, err))
	}

	key := s.objectKey(submission.Key)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &key,
		Body:        bytes.NewReader(payload),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return ports.NewPersistError(s.Name(), submission.Key,
			fmt.Errorf("%w: %v", ports.ErrSinkUnavailable, err))
	}

	return nil
}

func (s *S3) objectKey(submissionKey string) string {
	if s.prefix == "" {
		return submissionKey + ".json"
	}
	return fmt.Sprintf("%s/%s.json", s.prefix, submissionKey)
}
