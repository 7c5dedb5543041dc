package output

import (
	"archive/zip"
	"io"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// Compress zips the regular files directly under dir into dir + ".zip" and
// returns the archive path. Entries are stored by base name.
func Compress(fs afero.Fs, dir string) (path string, err error) {
	dir = strings.TrimRight(dir, string(filepath.Separator))
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return "", errors.Wrapf(err, "read %s", dir)
	}

	path = dir + ".zip"
	f, err := fs.Create(path)
	if err != nil {
		return "", errors.Wrapf(err, "create %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "close %s", path)
		}
	}()

	zw := zip.NewWriter(f)
	for _, e := range entries {
		if !e.Mode().IsRegular() {
			continue
		}
		if err := addFile(fs, zw, filepath.Join(dir, e.Name())); err != nil {
			return "", err
		}
	}
	if err := zw.Close(); err != nil {
		return "", errors.Wrap(err, "finish zip archive")
	}
	return path, nil
}

func addFile(fs afero.Fs, zw *zip.Writer, path string) error {
	src, err := fs.Open(path)
	if err != nil {
		return errors.Wrapf(err, "open %s", path)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return errors.Wrapf(err, "stat %s", path)
	}
	hdr, err := zip.FileInfoHeader(info)
	if err != nil {
		return errors.Wrapf(err, "zip header for %s", path)
	}
	hdr.Name = filepath.Base(path)
	hdr.Method = zip.Deflate

	dst, err := zw.CreateHeader(hdr)
	if err != nil {
		return errors.Wrapf(err, "add %s", hdr.Name)
	}
	if _, err := io.Copy(dst, src); err != nil {
		return errors.Wrapf(err, "compress %s", hdr.Name)
	}
	return nil
}
