package storage

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockObjectClient struct {
	mock.Mock
}

func (m *MockObjectClient) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, in)
	return &s3.PutObjectOutput{}, args.Error(0)
}

func (m *MockObjectClient) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	args := m.Called(ctx, in)
	return &s3.DeleteObjectOutput{}, args.Error(0)
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestToWebP_ScalesDownWideImages(t *testing.T) {
	out, err := ToWebP(pngBytes(t, 2560, 100))
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, MaxImageWidth, cfg.Width)
	assert.Equal(t, 50, cfg.Height)
}

func TestToWebP_Rejects(t *testing.T) {
	_, err := ToWebP([]byte("plain text, not an image"))
	assert.ErrorIs(t, err, ErrUnsupportedImage)

	_, err = ToWebP(make([]byte, MaxUploadBytes+1))
	assert.ErrorIs(t, err, ErrImageTooLarge)
}

func TestImageStore_SaveAndDelete(t *testing.T) {
	ctx := context.Background()
	client := new(MockObjectClient)
	store := NewImageStore(client, "studiobook", "https://cdn.example.com/")

	client.On("PutObject", ctx, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		return aws.ToString(in.Bucket) == "studiobook" &&
			strings.HasPrefix(aws.ToString(in.Key), "covers/") &&
			strings.HasSuffix(aws.ToString(in.Key), ".webp") &&
			aws.ToString(in.ContentType) == "image/webp"
	})).Return(nil)

	url, err := store.Save(ctx, "covers", pngBytes(t, 10, 10))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://cdn.example.com/covers/"))

	key := strings.TrimPrefix(url, "https://cdn.example.com/")
	client.On("DeleteObject", ctx, mock.MatchedBy(func(in *s3.DeleteObjectInput) bool {
		return aws.ToString(in.Key) == key
	})).Return(nil).Once()

	store.Delete(ctx, url)
	store.Delete(ctx, "https://elsewhere.example.com/covers/x.webp")

	client.AssertExpectations(t)
	client.AssertNumberOfCalls(t, "DeleteObject", 1)
}

func TestImageStore_NilIsUnavailable(t *testing.T) {
	var store *ImageStore
	_, err := store.Save(context.Background(), "covers", nil)
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.NotPanics(t, func() { store.Delete(context.Background(), "x") })
}
