package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

var ErrDisabled = errors.New("file uploads are disabled")

// Folders uploads are grouped under.
const (
	FolderEvents    = "evently/events"
	FolderPlaces    = "evently/places"
	FolderDocuments = "evently/documents"
)

// Uploader stores a file and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, r io.Reader, folder string) (string, error)
}

// Disabled rejects every upload.
type Disabled struct{}

func (Disabled) Upload(context.Context, io.Reader, string) (string, error) {
	return "", ErrDisabled
}

type Cloudinary struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinary(cloudName, apiKey, apiSecret string) (*Cloudinary, error) {
	const op = "storage.NewCloudinary"

	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Cloudinary{cld: cld}, nil
}

func (c *Cloudinary) Upload(ctx context.Context, r io.Reader, folder string) (string, error) {
	const op = "storage.Cloudinary.Upload"

	res, err := c.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder: folder,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if res.Error.Message != "" {
		return "", fmt.Errorf("%s: %s", op, res.Error.Message)
	}

	return res.SecureURL, nil
}
