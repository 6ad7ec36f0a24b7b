package fsops

import "os"

// OSFS implements FS using real os package calls
type OSFS struct{}

// ReadDirNames lists the names directly inside dir, unsorted.
func (OSFS) ReadDirNames(dir string) ([]string, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.Readdirnames(-1)
}

func (OSFS) Rename(oldpath, newpath string) error {
	return os.Rename(oldpath, newpath)
}
