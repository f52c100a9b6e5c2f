// pkg/object/file.go

package object

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

type filestore struct {
	root string
}

func (d *filestore) String() string {
	return "file://" + d.root
}

func (d *filestore) path(key string) string {
	if d.root == "" {
		return filepath.Clean(key)
	}
	return filepath.Join(d.root, filepath.Clean("/"+key))
}

func (d *filestore) Info(ctx context.Context, key string) (FileInfo, error) {
	p := d.path(key)
	st, err := os.Stat(p)
	if err != nil {
		if os.IsNotExist(err) {
			return FileInfo{}, errors.Wrapf(ErrNotFound, "%s", p)
		}
		return FileInfo{}, err
	}
	if st.IsDir() {
		return FileInfo{}, errors.Errorf("%s is a directory", p)
	}
	return newFileInfo(st.Size()), nil
}

func (d *filestore) ReadRange(ctx context.Context, key string, chunkSize int, offset int64) ([]byte, error) {
	p := d.path(key)
	f, err := os.Open(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrNotFound, "%s", p)
		}
		return nil, err
	}
	defer f.Close()
	adviseRandom(f)

	buf := make([]byte, chunkSize)
	n, err := f.ReadAt(buf, offset)
	if err != nil && err != io.EOF {
		return nil, errors.Wrapf(err, "read %s at %d", p, offset)
	}
	return buf[:n], nil
}

func newDisk(root, accesskey, secretkey string) (Backend, error) {
	if root != "" {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, err
		}
		root = abs
	}
	return &filestore{root: root}, nil
}

func init() {
	Register("file", newDisk)
}
