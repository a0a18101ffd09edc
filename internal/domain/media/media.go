package media

import (
	"context"
	"time"
)

// Upload is one incoming binary attachment from a multipart request.
type Upload struct {
	Name        string
	ContentType string
	Data        []byte
}

// File is the stored artifact reference bound back onto the profile.
type File struct {
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	MimeType   string    `json:"mime"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Store is the binary-storage collaborator. A nil *File with a nil error
// means nothing was stored; callers drop the field rather than failing the
// whole request.
type Store interface {
	Save(ctx context.Context, upload Upload) (*File, error)
}
