package common

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/mangrove-guardian/backend/pkg/errorx"
	"github.com/mangrove-guardian/backend/pkg/storage"
	"github.com/mangrove-guardian/backend/pkg/xcontext"
	"github.com/nfnt/resize"
)

const (
	EvidenceBucket = "evidence"
	AvatarBucket   = "avatars"
)

type size struct {
	w int
	h int
}

func (s size) String() string {
	return fmt.Sprintf("%dx%d", s.w, s.h)
}

var AvatarSizes = []size{
	{w: 512, h: 512},
	{w: 128, h: 128},
	{w: 32, h: 32},
}

// ProcessAvatar reads an image from the multipart form field named by key,
// renders it at every avatar size, and uploads the lot.
func ProcessAvatar(ctx context.Context, fileStorage storage.Storage, key string) ([]*storage.UploadResponse, error) {
	file, header, err := formFile(ctx, key)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	mime := header.mime
	img, err := decodeImg(mime, file)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Only jpeg, png, or gif images are accepted")
	}

	objs := make([]*storage.UploadObject, 0, len(AvatarSizes))
	for _, size := range AvatarSizes {
		img := resize.Resize(uint(size.w), uint(size.h), img, resize.Lanczos2)
		b, err := encodeImg(mime, img)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot encode image: %v", err)
			return nil, errorx.Unknown
		}

		objs = append(objs, &storage.UploadObject{
			Bucket:   AvatarBucket,
			Prefix:   "avatars",
			FileName: fmt.Sprintf("%s-%s", size, header.filename),
			Mime:     mime,
			Data:     b,
		})
	}

	uresp, err := fileStorage.BulkUpload(ctx, objs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upload image: %v", err)
		return nil, errorx.Unknown
	}

	return uresp, nil
}

// ProcessEvidence uploads a single evidence file as-is.
func ProcessEvidence(ctx context.Context, fileStorage storage.Storage, key string) (*storage.UploadResponse, error) {
	file, header, err := formFile(ctx, key)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot read evidence file: %v", err)
		return nil, errorx.Unknown
	}

	uresp, err := fileStorage.Upload(ctx, &storage.UploadObject{
		Bucket:   EvidenceBucket,
		Prefix:   "reports",
		FileName: header.filename,
		Mime:     header.mime,
		Data:     data,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upload evidence: %v", err)
		return nil, errorx.Unknown
	}

	return uresp, nil
}

type fileHeader struct {
	filename string
	mime     string
}

func formFile(ctx context.Context, key string) (io.ReadCloser, fileHeader, error) {
	req := xcontext.HTTPRequest(ctx)
	if err := req.ParseMultipartForm(xcontext.Configs(ctx).File.MaxSize); err != nil {
		return nil, fileHeader{}, errorx.New(errorx.BadRequest, "Request must be multipart form")
	}

	file, header, err := req.FormFile(key)
	if err != nil {
		return nil, fileHeader{}, errorx.New(errorx.BadRequest, "Error retrieving the file")
	}

	return file, fileHeader{
		filename: header.Filename,
		mime:     header.Header.Get("Content-Type"),
	}, nil
}

func decodeImg(mime string, data io.Reader) (img image.Image, err error) {
	switch mime {
	case "image/jpeg":
		img, err = jpeg.Decode(data)
	case "image/png", "application/octet-stream":
		img, err = png.Decode(data)
	case "image/gif":
		img, err = gif.Decode(data)
	default:
		return nil, fmt.Errorf("unsupported mime type %s", mime)
	}
	return img, err
}

func encodeImg(mime string, img image.Image) ([]byte, error) {
	buf := new(bytes.Buffer)

	var err error
	switch mime {
	case "image/jpeg", "application/octet-stream":
		err = jpeg.Encode(buf, img, nil)
	case "image/png":
		err = png.Encode(buf, img)
	case "image/gif":
		err = gif.Encode(buf, img, nil)
	default:
		return nil, fmt.Errorf("unsupported mime type %s", mime)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
