package fsops

import (
	"errors"
	"os"
	"testing"
)

func TestFakeFSRenameUpdatesListing(t *testing.T) {
	fs := NewFakeFS("/photos", "a.JPG", "b.txt")

	if err := fs.Rename("/photos/a.JPG", "/photos/a.jpg"); err != nil {
		t.Fatalf("Rename failed: %v", err)
	}

	names, err := fs.ReadDirNames("/photos")
	if err != nil {
		t.Fatalf("ReadDirNames failed: %v", err)
	}
	if names[0] != "a.jpg" {
		t.Errorf("Expected a.jpg after rename, got %v", names)
	}
	if len(fs.Calls) != 1 || fs.Calls[0] != "mv:/photos/a.JPG->/photos/a.jpg" {
		t.Errorf("Unexpected calls: %v", fs.Calls)
	}
}

func TestFakeFSInjectedFailure(t *testing.T) {
	fs := NewFakeFS("/photos", "a.JPG")
	fs.Fail["a.JPG"] = os.ErrPermission

	err := fs.Rename("/photos/a.JPG", "/photos/a.jpg")
	if !errors.Is(err, os.ErrPermission) {
		t.Errorf("Expected permission error, got %v", err)
	}

	var linkErr *os.LinkError
	if !errors.As(err, &linkErr) {
		t.Errorf("Expected *os.LinkError, got %T", err)
	}
}

func TestFakeFSMissingDirectory(t *testing.T) {
	fs := NewFakeFS("/photos")

	if _, err := fs.ReadDirNames("/nowhere"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected not-exist error, got %v", err)
	}
}

func TestOSFSListsAndRenames(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(dir+"/x.JPG", []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}

	var fs OSFS
	if err := fs.Rename(dir+"/x.JPG", dir+"/x.jpg"); err != nil {
		t.Fatalf("Rename failed: %v", err)
	}

	names, err := fs.ReadDirNames(dir)
	if err != nil {
		t.Fatalf("ReadDirNames failed: %v", err)
	}
	if len(names) != 1 || names[0] != "x.jpg" {
		t.Errorf("Expected [x.jpg], got %v", names)
	}
}
