package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/dmitrijs2005/lifelog/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	objects map[string]string
	putErr  error
	getErr  error

	lastPut *s3.PutObjectInput
}

func newFakeS3() *fakeS3 { return &fakeS3{objects: map[string]string{}} }

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.lastPut = in
	f.objects[*in.Key] = string(b)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	v, ok := f.objects[*in.Key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(v))}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, *in.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func (f *fakeS3) HeadObject(_ context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	if _, ok := f.objects[*in.Key]; !ok {
		return nil, &types.NotFound{}
	}
	return &s3.HeadObjectOutput{}, nil
}

func stubS3(t *testing.T, fake *fakeS3) *s3.Options {
	t.Helper()
	origLoad, origNew := loadDefaultAWSConfig, newS3ClientFromConfig
	t.Cleanup(func() { loadDefaultAWSConfig, newS3ClientFromConfig = origLoad, origNew })

	opts := &s3.Options{}
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*config.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) s3API {
		for _, fn := range optFns {
			fn(opts)
		}
		return fake
	}
	return opts
}

func TestNewS3Store_Endpoint(t *testing.T) {
	opts := stubS3(t, newFakeS3())

	_, err := NewS3Store(context.Background(), S3Options{Bucket: "b", Endpoint: "http://minio:9000"})
	require.NoError(t, err)
	require.NotNil(t, opts.BaseEndpoint)
	assert.Equal(t, "http://minio:9000", *opts.BaseEndpoint)
	assert.True(t, opts.UsePathStyle)
}

func TestNewS3Store_Errors(t *testing.T) {
	stubS3(t, newFakeS3())
	_, err := NewS3Store(context.Background(), S3Options{})
	assert.Error(t, err)

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*config.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no config")
	}
	_, err = NewS3Store(context.Background(), S3Options{Bucket: "b"})
	assert.ErrorContains(t, err, "no config")
}

func TestS3Store_SaveOpenRemove(t *testing.T) {
	ctx := context.Background()
	fake := newFakeS3()
	stubS3(t, fake)

	s, err := NewS3Store(ctx, S3Options{Bucket: "b", Prefix: "uploads/"})
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, "a.png", strings.NewReader("data"), 4, "image/png"))
	assert.Equal(t, "data", fake.objects["uploads/a.png"])
	assert.Equal(t, "image/png", *fake.lastPut.ContentType)
	assert.Equal(t, int64(4), *fake.lastPut.ContentLength)

	rc, err := s.Open(ctx, "a.png")
	require.NoError(t, err)
	b, _ := io.ReadAll(rc)
	assert.Equal(t, "data", string(b))

	require.NoError(t, s.Remove(ctx, "a.png"))
	assert.ErrorIs(t, s.Remove(ctx, "a.png"), common.ErrorNotFound)

	_, err = s.Open(ctx, "a.png")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestS3Store_WrapsBackendErrors(t *testing.T) {
	ctx := context.Background()
	fake := newFakeS3()
	fake.putErr = errors.New("denied")
	fake.getErr = errors.New("timeout")
	stubS3(t, fake)

	s, err := NewS3Store(ctx, S3Options{Bucket: "b"})
	require.NoError(t, err)

	assert.ErrorContains(t, s.Save(ctx, "a.png", strings.NewReader("x"), -1, "image/png"), "denied")
	_, err = s.Open(ctx, "a.png")
	assert.ErrorContains(t, err, "timeout")
	assert.NotErrorIs(t, err, common.ErrorNotFound)
}
