package dataset

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/iwvelando/poder-adquisitivo/internal/config"
)

// ObjectGetter is the part of the S3 client the opener uses.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Opener reads s3://bucket/key sources from S3 or an S3-compatible store.
type S3Opener struct {
	client ObjectGetter
}

// NewS3Opener builds an S3 client from cfg. A custom endpoint switches to
// path-style addressing; empty keys use the default credential chain.
func NewS3Opener(ctx context.Context, cfg config.S3Config) (*S3Opener, error) {
	region := cfg.Region
	if region == "" {
		region = "auto"
	}
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load s3 configuration: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return NewS3OpenerWithClient(client), nil
}

// NewS3OpenerWithClient wraps an existing client.
func NewS3OpenerWithClient(client ObjectGetter) *S3Opener {
	return &S3Opener{client: client}
}

func (o *S3Opener) Open(ctx context.Context, source string) (io.ReadCloser, error) {
	bucket, key, err := ParseS3URI(source)
	if err != nil {
		return nil, err
	}
	out, err := o.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", source, err)
	}
	return out.Body, nil
}

// ParseS3URI splits s3://bucket/key into its bucket and key.
func ParseS3URI(uri string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(uri, "s3://")
	if !ok {
		return "", "", fmt.Errorf("%w: %s is not an s3:// URI", ErrUnsupportedSource, uri)
	}
	bucket, key, ok = strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("%w: %s must be s3://bucket/key", ErrUnsupportedSource, uri)
	}
	return bucket, key, nil
}
