package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tpcell/internal/domain/media"
)

func TestDiskStoreSave(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir, "http://localhost:8080/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	file, err := store.Save(context.Background(), media.Upload{
		Name:        "19cs05.pdf",
		ContentType: "application/pdf",
		Data:        []byte("pdf bytes"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if file == nil {
		t.Fatalf("expected a stored file")
	}
	if !strings.HasPrefix(file.URL, "http://localhost:8080/uploads/") {
		t.Fatalf("unexpected url: %q", file.URL)
	}
	if !strings.HasSuffix(file.URL, "_19cs05.pdf") {
		t.Fatalf("expected the original name kept after the prefix, got %q", file.URL)
	}
	stored := strings.TrimPrefix(file.URL, "http://localhost:8080/uploads/")
	data, err := os.ReadFile(filepath.Join(dir, stored))
	if err != nil {
		t.Fatalf("stored file unreadable: %v", err)
	}
	if string(data) != "pdf bytes" {
		t.Fatalf("stored bytes differ: %q", data)
	}
}

func TestDiskStoreEmptyUploadStoresNothing(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir, "http://localhost:8080")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	file, err := store.Save(context.Background(), media.Upload{Name: "empty.pdf"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if file != nil {
		t.Fatalf("expected nil file for an empty upload, got %v", file)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no files written, found %d", len(entries))
	}
}

func TestDiskStoreSanitizesNames(t *testing.T) {
	store, err := NewDiskStore(t.TempDir(), "http://localhost:8080")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	file, err := store.Save(context.Background(), media.Upload{
		Name: "../../etc/pass wd?.png",
		Data: []byte("png"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(file.URL, "..") || strings.Contains(file.URL, "/etc/") {
		t.Fatalf("path segments leaked into the stored name: %q", file.URL)
	}
	if !strings.HasSuffix(file.URL, "_pass_wd_.png") {
		t.Fatalf("unexpected sanitized name: %q", file.URL)
	}
}
