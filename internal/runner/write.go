package runner

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// writeFile writes r to dst with the given mode. When atomic is set the
// data goes to a temporary file in dst's directory that is renamed over
// dst once complete, so an interrupted write never leaves a truncated file
// behind.
func writeFile(dst string, r io.Reader, mode os.FileMode, atomic bool) (err error) {
	if !atomic {
		f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
		if err != nil {
			return err
		}
		if _, err := io.Copy(f, r); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".tokentrim-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()

	if _, err = io.Copy(tmp, r); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Chmod(mode); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dst)
}

// copyFile copies src to dst keeping its permission bits and modification
// time.
func copyFile(src, dst string, atomic bool) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	if err := writeFile(dst, in, info.Mode().Perm(), atomic); err != nil {
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	return os.Chtimes(dst, time.Now(), info.ModTime())
}
