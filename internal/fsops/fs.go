package fsops

// FS abstracts the directory listing and rename operations used by the renamer
// Enables tests to inject failures without touching the real filesystem
type FS interface {
	ReadDirNames(dir string) ([]string, error)
	Rename(oldpath, newpath string) error
}
