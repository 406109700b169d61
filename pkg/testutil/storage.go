package testutil

import (
	"context"

	"github.com/mangrove-guardian/backend/pkg/storage"
)

// MockStorage stands in for the s3 uploader. Without an override it
// fabricates a mock url so upload flows can run end to end.
type MockStorage struct {
	UploadFunc     func(context.Context, *storage.UploadObject) (*storage.UploadResponse, error)
	BulkUploadFunc func(context.Context, []*storage.UploadObject) ([]*storage.UploadResponse, error)
}

func (m *MockStorage) Upload(
	ctx context.Context, obj *storage.UploadObject,
) (*storage.UploadResponse, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, obj)
	}

	return &storage.UploadResponse{
		Url:      "mock://" + obj.Bucket + "/" + obj.FileName,
		FileName: obj.FileName,
	}, nil
}

func (m *MockStorage) BulkUpload(
	ctx context.Context, objs []*storage.UploadObject,
) ([]*storage.UploadResponse, error) {
	if m.BulkUploadFunc != nil {
		return m.BulkUploadFunc(ctx, objs)
	}

	resps := make([]*storage.UploadResponse, 0, len(objs))
	for _, obj := range objs {
		resp, err := m.Upload(ctx, obj)
		if err != nil {
			return nil, err
		}

		resps = append(resps, resp)
	}

	return resps, nil
}
