package managers

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakePutter) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	f.body, _ = io.ReadAll(params.Body)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestUploadAvatar(t *testing.T) {
	putter := &fakePutter{}
	sm := NewStorageManagerWithClient(putter, "avatars", "http://localhost:9000")

	url, err := sm.UploadAvatar(context.Background(), "alice", "image/png", []byte("png-bytes"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9000/avatars/avatars/alice", url)
	assert.Equal(t, "avatars", aws.ToString(putter.input.Bucket))
	assert.Equal(t, "avatars/alice", aws.ToString(putter.input.Key))
	assert.Equal(t, "image/png", aws.ToString(putter.input.ContentType))
	assert.Equal(t, []byte("png-bytes"), putter.body)
}

func TestUploadAvatarFailure(t *testing.T) {
	sm := NewStorageManagerWithClient(&fakePutter{err: errors.New("bucket missing")}, "avatars", "http://localhost:9000")

	_, err := sm.UploadAvatar(context.Background(), "alice", "image/png", []byte("x"))
	assert.Error(t, err)
}
