package domain

import (
	"context"
	"io"
	"time"
)

// Upload is an incoming file independent of the transport that delivered it.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// FileDownload is an open stored file ready to be streamed.
type FileDownload struct {
	Name        string
	ContentType string
	Size        int64
	ModTime     time.Time
	Content     io.ReadSeekCloser
}

// UploadResult is returned by successful uploads.
type UploadResult struct {
	FileURL string `json:"fileUrl"`
	User    *User  `json:"user"`
}

// FileStore persists files flat under a single managed root.
type FileStore interface {
	Save(ctx context.Context, name string, r io.Reader) (int64, error)
	Open(ctx context.Context, name string) (*FileDownload, error)
	// Remove deletes name. A missing file is not an error and reports false.
	Remove(ctx context.Context, name string) (bool, error)
	Root() string
}

type FileUsecase interface {
	UploadResume(ctx context.Context, upload Upload) (*UploadResult, error)
	UploadProfilePicture(ctx context.Context, upload Upload) (*UploadResult, error)
	DownloadFile(ctx context.Context, filename string) (*FileDownload, error)
	DeleteResume(ctx context.Context) (*User, error)
	DeleteProfilePicture(ctx context.Context) (*User, error)
}
