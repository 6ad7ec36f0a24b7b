package fsops

import (
	"os"
	"path/filepath"
)

// FakeFS implements FS for testing
// Holds directory listings in memory and records every rename call
type FakeFS struct {
	Entries map[string][]string // dir -> names
	Fail    map[string]error    // old name -> error returned by Rename
	Calls   []string
}

// NewFakeFS returns a FakeFS with a single directory holding names.
func NewFakeFS(dir string, names ...string) *FakeFS {
	return &FakeFS{
		Entries: map[string][]string{dir: append([]string(nil), names...)},
		Fail:    map[string]error{},
	}
}

func (f *FakeFS) ReadDirNames(dir string) ([]string, error) {
	names, ok := f.Entries[dir]
	if !ok {
		return nil, &os.PathError{Op: "open", Path: dir, Err: os.ErrNotExist}
	}
	return append([]string(nil), names...), nil
}

func (f *FakeFS) Rename(oldpath, newpath string) error {
	f.Calls = append(f.Calls, "mv:"+oldpath+"->"+newpath)

	dir, oldName := filepath.Split(oldpath)
	dir = filepath.Clean(dir)
	if err, ok := f.Fail[oldName]; ok {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: err}
	}

	names := f.Entries[dir]
	for i, n := range names {
		if n == oldName {
			names[i] = filepath.Base(newpath)
			return nil
		}
	}
	return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: os.ErrNotExist}
}
