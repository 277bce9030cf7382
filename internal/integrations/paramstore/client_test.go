package paramstore

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/require"
)

// fakeAPI is a simple fake implementing ssmAPI for tests. Each call returns
// the next page.
type fakeAPI struct {
	pages []*ssm.GetParametersByPathOutput
	err   error
	ins   []*ssm.GetParametersByPathInput
}

func (f *fakeAPI) GetParametersByPath(_ context.Context, in *ssm.GetParametersByPathInput, _ ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error) {
	f.ins = append(f.ins, in)
	if f.err != nil {
		return nil, f.err
	}
	if len(f.ins) > len(f.pages) {
		return nil, errors.New("unexpected page request")
	}
	return f.pages[len(f.ins)-1], nil
}

func param(name, value string) types.Parameter {
	return types.Parameter{Name: aws.String(name), Value: aws.String(value)}
}

func TestSettings_HappyPath(t *testing.T) {
	api := &fakeAPI{pages: []*ssm.GetParametersByPathOutput{{
		Parameters: []types.Parameter{
			param("/text-to-pdf/font_size", "10"),
			param("/text-to-pdf/page_size", "Letter"),
		},
	}}}
	client, err := New(api)
	require.NoError(t, err)

	got, err := client.Settings(context.Background(), " /text-to-pdf/ ")
	require.NoError(t, err)
	require.Equal(t, map[string]string{"font_size": "10", "page_size": "Letter"}, got)
	require.Equal(t, "/text-to-pdf/", aws.ToString(api.ins[0].Path))
	require.True(t, aws.ToBool(api.ins[0].WithDecryption))
}

func TestSettings_FollowsPages(t *testing.T) {
	api := &fakeAPI{pages: []*ssm.GetParametersByPathOutput{
		{Parameters: []types.Parameter{param("/p/font_size", "9")}, NextToken: aws.String("t1")},
		{Parameters: []types.Parameter{param("/p/margin", "15")}},
	}}
	client, err := New(api)
	require.NoError(t, err)

	got, err := client.Settings(context.Background(), "/p")
	require.NoError(t, err)
	require.Equal(t, map[string]string{"font_size": "9", "margin": "15"}, got)
	require.Len(t, api.ins, 2)
	require.Nil(t, api.ins[0].NextToken)
	require.Equal(t, "t1", aws.ToString(api.ins[1].NextToken))
}

func TestSettings_SkipsIncompleteParameters(t *testing.T) {
	api := &fakeAPI{pages: []*ssm.GetParametersByPathOutput{{
		Parameters: []types.Parameter{{Name: aws.String("/p/font_size")}, {Value: aws.String("x")}},
	}}}
	client, err := New(api)
	require.NoError(t, err)

	got, err := client.Settings(context.Background(), "/p")
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestSettings_ApiError(t *testing.T) {
	client, err := New(&fakeAPI{err: errors.New("boom")})
	require.NoError(t, err)
	_, err = client.Settings(context.Background(), "/p")
	require.Error(t, err)
	require.ErrorContains(t, err, "boom")
}

func TestSettings_EmptyResponse(t *testing.T) {
	client, err := New(&fakeAPI{pages: []*ssm.GetParametersByPathOutput{nil}})
	require.NoError(t, err)
	_, err = client.Settings(context.Background(), "/p")
	require.Error(t, err)
	require.Contains(t, err.Error(), "empty response")
}

func TestSettings_ClientNotInitialized(t *testing.T) {
	_, err := (&Client{}).Settings(context.Background(), "/p")
	require.Error(t, err)
	require.Contains(t, err.Error(), "not initialized")
}

func TestSettings_EmptyPrefix(t *testing.T) {
	client, err := New(&fakeAPI{})
	require.NoError(t, err)
	_, err = client.Settings(context.Background(), " / ")
	require.Error(t, err)
	require.Contains(t, err.Error(), "required")
}

func TestNew_NilAPI(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "must not be nil")
}
