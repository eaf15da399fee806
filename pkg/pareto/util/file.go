package util

import (
	"io"
	"os"
)

// WriteFile creates the file at path and fills it with write. Errors from
// closing the file are reported, so that short writes do not go unnoticed.
func WriteFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
