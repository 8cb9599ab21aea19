package s3

import (
	"bytes"
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
	if params.Body != nil {
		f.body, _ = io.ReadAll(params.Body)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestApplyPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		key    string
		want   string
	}{
		{name: "no prefix", prefix: "", key: "user/1.jpg", want: "user/1.jpg"},
		{name: "simple prefix", prefix: "root", key: "user/1.jpg", want: "root/user/1.jpg"},
		{name: "prefix trailing slash", prefix: "root/", key: "user/1.jpg", want: "root/user/1.jpg"},
		{name: "prefix and key slashes", prefix: "/root/", key: "/user/1.jpg", want: "root/user/1.jpg"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, applyPrefix(tt.prefix, tt.key))
		})
	}
}

func TestStorePutSendsObject(t *testing.T) {
	fake := &fakePutter{}
	store := &Store{client: fake, bucket: "note-images", region: "eu-west-1", prefix: "notes"}

	n, err := store.Put(context.Background(), "user-1/1.png", "image/png", bytes.NewReader([]byte("png")))
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.Equal(t, "note-images", aws.ToString(fake.input.Bucket))
	assert.Equal(t, "notes/user-1/1.png", aws.ToString(fake.input.Key))
	assert.Equal(t, "image/png", aws.ToString(fake.input.ContentType))
	assert.Equal(t, "png", string(fake.body))
}

func TestStorePutWrapsError(t *testing.T) {
	boom := errors.New("access denied")
	store := &Store{client: &fakePutter{err: boom}, bucket: "b", region: "us-east-1"}

	_, err := store.Put(context.Background(), "u/1.png", "image/png", bytes.NewReader([]byte("x")))
	assert.ErrorIs(t, err, boom)
}

func TestStorePublicURL(t *testing.T) {
	store := &Store{bucket: "note-images", region: "eu-west-1", prefix: "notes"}
	assert.Equal(t, "https://note-images.s3.eu-west-1.amazonaws.com/notes/u/1.png", store.PublicURL("u/1.png"))

	store.publicBaseURL = "https://cdn.example.com/"
	assert.Equal(t, "https://cdn.example.com/notes/u/1.png", store.PublicURL("u/1.png"))
}
