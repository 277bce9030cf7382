package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/require"

	"text-to-pdf/internal/domain"
)

// fakeS3 is a simple fake implementing s3API for tests.
type fakeS3 struct {
	getOut *s3.GetObjectOutput
	getErr error
	getIn  *s3.GetObjectInput

	putErr  error
	putIn   *s3.PutObjectInput
	putBody []byte
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.getIn = in
	return f.getOut, f.getErr
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.putIn = in
	if in.Body != nil {
		b, err := io.ReadAll(in.Body)
		if err != nil {
			return nil, err
		}
		f.putBody = b
	}
	return &s3.PutObjectOutput{}, f.putErr
}

type brokenBody struct{}

func (brokenBody) Read(_ []byte) (int, error) {
	return 0, errors.New("connection reset")
}

func (brokenBody) Close() error {
	return nil
}

type closeTracker struct {
	io.Reader
	closed bool
}

func (c *closeTracker) Close() error {
	c.closed = true
	return nil
}

func TestNew_NilAPI(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "must not be nil")
}

func TestGet_HappyPath(t *testing.T) {
	body := &closeTracker{Reader: strings.NewReader("line1\nline2")}
	api := &fakeS3{getOut: &s3.GetObjectOutput{Body: body}}
	client, err := New(api)
	require.NoError(t, err)

	got, err := client.Get(context.Background(), "b", "docs/a.txt")
	require.NoError(t, err)
	require.Equal(t, "line1\nline2", string(got))
	require.Equal(t, "b", aws.ToString(api.getIn.Bucket))
	require.Equal(t, "docs/a.txt", aws.ToString(api.getIn.Key))
	require.True(t, body.closed)
}

func TestGet_NotFound(t *testing.T) {
	cases := map[string]error{
		"no such key":    &types.NoSuchKey{Message: aws.String("The specified key does not exist.")},
		"not found":      &types.NotFound{Message: aws.String("Not Found")},
		"no such bucket": &types.NoSuchBucket{Message: aws.String("The specified bucket does not exist.")},
	}
	for name, apiErr := range cases {
		t.Run(name, func(t *testing.T) {
			client, err := New(&fakeS3{getErr: apiErr})
			require.NoError(t, err)

			_, err = client.Get(context.Background(), "b", "missing.txt")
			require.Error(t, err)
			require.ErrorIs(t, err, domain.ErrNotFound)
			require.ErrorIs(t, err, apiErr)
			require.NotErrorIs(t, err, domain.ErrTransfer)
			require.Contains(t, err.Error(), "s3://b/missing.txt")
		})
	}
}

func TestGet_ApiError(t *testing.T) {
	api := &fakeS3{getErr: errors.New("access denied")}
	client, err := New(api)
	require.NoError(t, err)

	_, err = client.Get(context.Background(), "b", "a.txt")
	require.Error(t, err)
	require.ErrorContains(t, err, "access denied")
	require.NotErrorIs(t, err, domain.ErrNotFound)
	require.NotErrorIs(t, err, domain.ErrTransfer)
}

func TestGet_BodyReadFailureIsTransferError(t *testing.T) {
	api := &fakeS3{getOut: &s3.GetObjectOutput{Body: brokenBody{}}}
	client, err := New(api)
	require.NoError(t, err)

	_, err = client.Get(context.Background(), "b", "a.txt")
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrTransfer)
	require.ErrorContains(t, err, "connection reset")
}

func TestGet_MissingBody(t *testing.T) {
	client, err := New(&fakeS3{getOut: &s3.GetObjectOutput{}})
	require.NoError(t, err)

	_, err = client.Get(context.Background(), "b", "a.txt")
	require.Error(t, err)
	require.Contains(t, err.Error(), "no body")
}

func TestGet_ValidatesLocation(t *testing.T) {
	client, err := New(&fakeS3{})
	require.NoError(t, err)

	_, err = client.Get(context.Background(), " ", "a.txt")
	require.ErrorContains(t, err, "bucket is required")
	_, err = client.Get(context.Background(), "b", "")
	require.ErrorContains(t, err, "key is required")
}

func TestPut_SetsContentTypeAndLength(t *testing.T) {
	api := &fakeS3{}
	client, err := New(api)
	require.NoError(t, err)

	body := []byte("%PDF-1.3 fake")
	err = client.Put(context.Background(), "b", "docs/a.pdf", body, domain.ContentTypePDF)
	require.NoError(t, err)
	require.Equal(t, "b", aws.ToString(api.putIn.Bucket))
	require.Equal(t, "docs/a.pdf", aws.ToString(api.putIn.Key))
	require.Equal(t, "application/pdf", aws.ToString(api.putIn.ContentType))
	require.Equal(t, int64(len(body)), aws.ToInt64(api.putIn.ContentLength))
	require.Equal(t, body, api.putBody)
}

func TestPut_ApiError(t *testing.T) {
	client, err := New(&fakeS3{putErr: errors.New("slow down")})
	require.NoError(t, err)

	err = client.Put(context.Background(), "b", "a.pdf", []byte("x"), domain.ContentTypePDF)
	require.Error(t, err)
	require.ErrorContains(t, err, "storage: put s3://b/a.pdf")
	require.ErrorContains(t, err, "slow down")
}
