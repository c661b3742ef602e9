package filesystem

import (
	"path/filepath"
	"strings"
)

// DirectoryName returns the parent directory portion of the path.
func (i *Item) DirectoryName() string {
	path, _ := i.Path()

	return filepath.Dir(path)
}

// Name returns the last element of the path.
func (i *Item) Name() string {
	path, _ := i.Path()

	return filepath.Base(path)
}

// Extension returns the extension of the last path element, without the
// leading dot. Names without a dot have no extension.
func (i *Item) Extension() string {
	return strings.TrimPrefix(filepath.Ext(i.Name()), ".")
}
