package serverbackup

import (
	"archive/tar"
	"io"
	"os"
	"path/filepath"

	"github.com/pierrec/lz4/v4"
	"github.com/pkg/errors"
)

// compressDir writes the tree rooted at src as a tar stream compressed
// with lz4. Entry names are relative to src.
func compressDir(src string, w io.Writer) error {
	lw := lz4.NewWriter(w)
	tw := tar.NewWriter(lw)

	err := filepath.Walk(src, func(file string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, file)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}

		header, err := tar.FileInfoHeader(fi, file)
		if err != nil {
			return err
		}
		header.Name = filepath.ToSlash(rel)

		if err := tw.WriteHeader(header); err != nil {
			return err
		}

		if fi.IsDir() {
			return nil
		}

		data, err := os.Open(file)
		if err != nil {
			return err
		}
		defer func() {
			_ = data.Close()
		}()

		_, err = io.Copy(tw, data)

		return err
	})
	if err != nil {
		return errors.WithMessage(err, "failed to archive directory")
	}

	if err := tw.Close(); err != nil {
		return err
	}

	return lw.Close()
}
