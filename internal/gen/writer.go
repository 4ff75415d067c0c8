package gen

import (
	"bytes"
	"errors"
	"fmt"
	"os"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// ErrForeignFile is returned when the output path holds a file that does not
// start with Header.
var ErrForeignFile = errors.New("file was not generated by swizzle-generator")

// WriteFiles writes every generated file to its path, creating directories
// as needed. Files whose content is already up to date are left untouched;
// the returned count is the number of files actually written. An existing
// file is only replaced when it starts with Header.
func WriteFiles(files []GeneratedFile) (int, error) {
	written := 0

	for i := range files {
		file := &files[i]

		if err := os.MkdirAll(file.Dir, dirPerm); err != nil {
			return written, fmt.Errorf("creating output directory: %w", err)
		}

		current, err := os.ReadFile(file.Path())

		switch {
		case err == nil && bytes.Equal(current, file.Content):
			continue
		case err == nil && !bytes.HasPrefix(current, []byte(Header)):
			return written, fmt.Errorf("refusing to overwrite %s: %w", file.Path(), ErrForeignFile)
		case err != nil && !errors.Is(err, os.ErrNotExist):
			return written, fmt.Errorf("reading %s: %w", file.Path(), err)
		}

		if err := os.WriteFile(file.Path(), file.Content, filePerm); err != nil {
			return written, fmt.Errorf("writing file %s: %w", file.Path(), err)
		}

		written++
	}

	return written, nil
}
