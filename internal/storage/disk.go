package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"time"

	"tpcell/internal/common"
	"tpcell/internal/domain/media"
)

// DiskStore writes uploads under a flat directory and serves them back by
// URL. Each stored file gets a random prefix so re-uploads never clobber an
// artifact that is still referenced.
type DiskStore struct {
	dir     string
	baseURL string
}

func NewDiskStore(dir, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create upload dir", err)
	}
	return &DiskStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *DiskStore) Save(ctx context.Context, upload media.Upload) (*media.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "upload cancelled", err)
	}
	if len(upload.Data) == 0 {
		return nil, nil
	}
	name := sanitizeName(upload.Name)
	stored := randomPrefix() + "_" + name
	path := filepath.Join(s.dir, stored)
	if err := os.WriteFile(path, upload.Data, 0o644); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to write upload", err)
	}
	return &media.File{
		Name:       name,
		URL:        s.baseURL + "/uploads/" + stored,
		MimeType:   upload.ContentType,
		Size:       int64(len(upload.Data)),
		UploadedAt: time.Now().UTC(),
	}, nil
}

func sanitizeName(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "upload"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}

func randomPrefix() string {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "000000000000"
	}
	return hex.EncodeToString(buf)
}
