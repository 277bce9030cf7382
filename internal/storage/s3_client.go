package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"text-to-pdf/internal/domain"
)

// s3API is the minimal S3 interface required by Client.
// *s3.Client from aws-sdk-go-v2 satisfies this interface.
type s3API interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Client reads and writes whole objects in S3.
type Client struct {
	api s3API
}

func New(api s3API) (*Client, error) {
	if api == nil {
		return nil, errors.New("storage: api must not be nil")
	}
	return &Client{api: api}, nil
}

// Get returns the full content of an object. Failures while streaming the body
// wrap domain.ErrTransfer; failures of the request itself do not.
func (c *Client) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	if err := validateLocation(bucket, key); err != nil {
		return nil, err
	}

	out, err := c.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("storage: get s3://%s/%s: %w: %w", bucket, key, domain.ErrNotFound, err)
		}
		return nil, fmt.Errorf("storage: get s3://%s/%s: %w", bucket, key, err)
	}
	if out == nil || out.Body == nil {
		return nil, fmt.Errorf("storage: get s3://%s/%s: response has no body", bucket, key)
	}
	defer func() { _ = out.Body.Close() }()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("storage: read s3://%s/%s: %w: %w", bucket, key, domain.ErrTransfer, err)
	}
	return body, nil
}

// Put stores body under key with an explicit content type and length.
func (c *Client) Put(ctx context.Context, bucket, key string, body []byte, contentType string) error {
	if err := validateLocation(bucket, key); err != nil {
		return err
	}

	_, err := c.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("storage: put s3://%s/%s: %w", bucket, key, err)
	}
	return nil
}

func validateLocation(bucket, key string) error {
	if strings.TrimSpace(bucket) == "" {
		return errors.New("storage: bucket is required")
	}
	if key == "" {
		return errors.New("storage: key is required")
	}
	return nil
}

// isNotFound reports whether err means the object or its bucket is absent.
// GetObject reports a missing key as NoSuchKey, or as a bare NotFound when the
// caller lacks s3:ListBucket.
func isNotFound(err error) bool {
	var noKey *types.NoSuchKey
	var notFound *types.NotFound
	var noBucket *types.NoSuchBucket
	return errors.As(err, &noKey) || errors.As(err, &notFound) || errors.As(err, &noBucket)
}
