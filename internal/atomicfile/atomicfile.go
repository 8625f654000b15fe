// Package atomicfile writes files through a temp file and rename so that
// readers never observe a partially written output.
package atomicfile

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	"github.com/agentstation/fipsref/pkg/constants"
	"github.com/agentstation/fipsref/pkg/errors"
)

// Write creates path's parent directories, streams fn's output into a temp
// file next to path and renames it into place once fn and the flush succeed.
func Write(path string, fn func(w io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.WrapIO("create", "temp file", err)
	}
	tempPath := tempFile.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tempFile.Close()
			_ = os.Remove(tempPath)
		}
	}()

	bw := bufio.NewWriter(tempFile)
	if err := fn(bw); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return errors.WrapIO("write", path, err)
	}
	if err := tempFile.Chmod(constants.FilePermissions); err != nil {
		return errors.WrapIO("chmod", path, err)
	}
	if err := tempFile.Sync(); err != nil {
		return errors.WrapIO("sync", path, err)
	}
	if err := tempFile.Close(); err != nil {
		return errors.WrapIO("close", path, err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		committed = true
		return errors.WrapIO("rename", path, err)
	}
	committed = true
	return nil
}

// WriteBytes atomically replaces path with data.
func WriteBytes(path string, data []byte) error {
	return Write(path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}
