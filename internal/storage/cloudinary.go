package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// File is an uploaded document handed in by a request.
type File struct {
	Name   string
	Reader io.Reader
}

// FileStore persists an uploaded file and returns a public link to it.
type FileStore interface {
	Upload(ctx context.Context, file File) (string, error)
}

const uploadTimeout = 30 * time.Second

// CloudinaryStore stores resumes as raw assets on Cloudinary.
type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryStore builds a store from a CLOUDINARY_URL style URL.
func NewCloudinaryStore(url string) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &CloudinaryStore{cld: cld}, nil
}

// Upload pushes the file to Cloudinary and returns its secure URL. The call
// is bounded by uploadTimeout so a stalled upload cannot hold its request
// forever.
func (s *CloudinaryStore) Upload(ctx context.Context, file File) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	resp, err := s.cld.Upload.Upload(ctx, file.Reader, uploader.UploadParams{
		ResourceType: "raw",
		Folder:       "resumes",
	})
	if err != nil {
		return "", fmt.Errorf("upload resume: %w", err)
	}
	return resp.SecureURL, nil
}
