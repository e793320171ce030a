package imagestore

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/alexanderramin/kanban/internal/domain"
	"github.com/alexanderramin/kanban/internal/testutil"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngHeader is enough for http.DetectContentType to report image/png.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestRef_IsContentAddressed(t *testing.T) {
	a := Ref([]byte("same"))
	assert.Equal(t, a, Ref([]byte("same")))
	assert.NotEqual(t, a, Ref([]byte("other")))
	assert.True(t, ValidRef(a))
	assert.True(t, strings.HasPrefix(a, "sha256-"))

	assert.False(t, ValidRef("sha256-xyz"))
	assert.False(t, ValidRef("md5-"+strings.Repeat("a", 64)))
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	store := NewSQLiteStore(testutil.NewTestDB(t))
	ctx := context.Background()

	ref, err := store.Put(ctx, pngHeader, "")
	require.NoError(t, err)

	again, err := store.Put(ctx, pngHeader, "")
	require.NoError(t, err)
	assert.Equal(t, ref, again, "identical bytes share one reference")

	img, err := store.Get(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.ContentType)
	assert.Equal(t, pngHeader, img.Data)

	require.NoError(t, store.Delete(ctx, ref))
	_, err = store.Get(ctx, ref)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSQLiteStore_RejectsBadInput(t *testing.T) {
	store := NewSQLiteStore(testutil.NewTestDB(t))
	ctx := context.Background()

	_, err := store.Put(ctx, nil, "image/png")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = store.Put(ctx, []byte("plain text"), "")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = store.Get(ctx, "../../etc/passwd")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
	putErr  error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[aws.ToString(in.Key)] = data
	f.types[aws.ToString(in.Key)] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{
		Body:        io.NopCloser(bytes.NewReader(data)),
		ContentType: aws.String(f.types[aws.ToString(in.Key)]),
	}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3Store_RoundTrip(t *testing.T) {
	client := newFakeS3()
	store := newS3Store(client, S3Config{Bucket: "boards", Prefix: "kanban/images/"})
	ctx := context.Background()

	ref, err := store.Put(ctx, pngHeader, "image/png")
	require.NoError(t, err)
	assert.Contains(t, client.objects, "kanban/images/"+ref)

	img, err := store.Get(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, pngHeader, img.Data)
	assert.Equal(t, "image/png", img.ContentType)

	require.NoError(t, store.Delete(ctx, ref))
	_, err = store.Get(ctx, ref)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestS3Store_UploadFailure(t *testing.T) {
	client := newFakeS3()
	client.putErr = errors.New("access denied")
	store := newS3Store(client, S3Config{Bucket: "boards"})

	_, err := store.Put(context.Background(), pngHeader, "image/png")
	require.Error(t, err)
	assert.ErrorIs(t, domain.Classify(err), domain.ErrStorage)
}
