package testutil

import (
	"context"
	"path"
	"strings"
	"sync"

	"foodgram/internal/utils/storage"

	"github.com/google/uuid"
)

const fakeS3Prefix = "https://bucket.test/"

// FakeS3 keeps uploaded objects in memory.
type FakeS3 struct {
	mu      sync.Mutex
	Objects map[string][]byte
	Deleted []string
}

var _ storage.AwsS3 = (*FakeS3)(nil)

func NewFakeS3() *FakeS3 {
	return &FakeS3{Objects: map[string][]byte{}}
}

func (f *FakeS3) UploadFile(_ context.Context, key string, body []byte, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Objects[key] = body
	return fakeS3Prefix + key, nil
}

func (f *FakeS3) UploadBase64Image(ctx context.Context, folder string, dataURL string) (string, error) {
	body, contentType, ext, err := storage.DecodeDataURL(dataURL)
	if err != nil {
		return "", err
	}
	return f.UploadFile(ctx, path.Join(folder, uuid.NewString()+ext), body, contentType)
}

func (f *FakeS3) DeleteFile(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.Objects, key)
	f.Deleted = append(f.Deleted, key)
	return nil
}

func (f *FakeS3) GetObjectKeyFromLink(link string) string {
	if !strings.HasPrefix(link, fakeS3Prefix) {
		return ""
	}
	return strings.TrimPrefix(link, fakeS3Prefix)
}

// PNGDataURL is a valid 1x1 PNG as a base64 data url.
const PNGDataURL = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNk+M9QDwADhgGAWjR9awAAAABJRU5ErkJggg=="
