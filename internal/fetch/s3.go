package fetch

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/jonathan/resume-analyzer/internal/logging"
	"github.com/jonathan/resume-analyzer/internal/pipeline"
)

// ObjectAPI is the subset of the S3 client used by S3Source
type ObjectAPI interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source downloads documents from S3 or an S3-compatible store
type S3Source struct {
	client   ObjectAPI
	maxBytes int64
}

// NewS3Source wraps an S3 client
func NewS3Source(client ObjectAPI, maxBytes int64) *S3Source {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &S3Source{client: client, maxBytes: maxBytes}
}

// NewS3SourceFromConfig builds the S3 client from a loaded AWS config. Path
// style addressing is used when a custom endpoint is set.
func NewS3SourceFromConfig(cfg aws.Config, maxBytes int64) *S3Source {
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.BaseEndpoint != nil
	})
	return NewS3Source(client, maxBytes)
}

// ParseS3Location splits s3://bucket/key
func ParseS3Location(location string) (bucket, key string, err error) {
	u, err := url.Parse(location)
	if err != nil || u.Scheme != "s3" {
		return "", "", fmt.Errorf("not an s3 location: %s", location)
	}
	bucket = u.Host
	key = strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("s3 location needs a bucket and a key: %s", location)
	}
	return bucket, key, nil
}

// Load downloads the object at an s3:// location
func (s *S3Source) Load(ctx context.Context, location string) (*pipeline.Document, error) {
	bucket, key, err := ParseS3Location(location)
	if err != nil {
		return nil, &Error{URL: location, Message: "invalid s3 location", Cause: err}
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, &Error{URL: location, Message: "failed to download object", Cause: err}
	}
	defer func() { _ = out.Body.Close() }()

	data, err := readLimited(out.Body, s.maxBytes)
	if err != nil {
		return nil, &Error{URL: location, Message: "failed to read object body", Cause: err}
	}
	logging.Ctx(ctx).Debug().Str("bucket", bucket).Str("key", key).Int("bytes", len(data)).Msg("downloaded document")

	return &pipeline.Document{
		Name:     path.Base(key),
		MIMEType: aws.ToString(out.ContentType),
		Data:     data,
	}, nil
}
