package filesystem

import (
	"fmt"
	"os"
)

// defaultFilePerms are the permissions new files are created with (before
// the umask is applied).
const defaultFilePerms = 0o666

// File is a [Node] for a regular file.
type File struct {
	*Item
}

// File returns a pointer to a new [File] for a path.
func (h *Handler) File(path string) *File {
	return &File{Item: h.Item(path)}
}

// LazyFile returns a pointer to a new [File] whose path is allocated by the
// given [PathAllocator] on first access.
func (h *Handler) LazyFile(allocator PathAllocator) *File {
	return &File{Item: h.LazyItem(allocator)}
}

// Base returns the underlying [Item].
func (f *File) Base() *Item {
	return f.Item
}

func (*File) isNode() {}

// Content reads the entire content of the file.
func (f *File) Content() ([]byte, error) {
	path, err := f.Path()
	if err != nil {
		return nil, err
	}

	data, err := f.handler.osHandler.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("(fs-read) %w", err)
	}

	return data, nil
}

// SetContent replaces the content of the file, creating it if needed.
func (f *File) SetContent(data []byte) error {
	return f.write(data, os.O_WRONLY|os.O_CREATE|os.O_TRUNC)
}

// Append appends data to the end of the file, creating it if needed.
func (f *File) Append(data []byte) error {
	return f.write(data, os.O_WRONLY|os.O_CREATE|os.O_APPEND)
}

func (f *File) write(data []byte, flag int) error {
	path, err := f.Path()
	if err != nil {
		return err
	}
	defer f.handler.invalidate(path)

	fh, err := f.handler.osHandler.OpenFile(path, flag, defaultFilePerms)
	if err != nil {
		return fmt.Errorf("(fs-write) %w", err)
	}

	if _, err := fh.Write(data); err != nil {
		fh.Close()

		return fmt.Errorf("(fs-write) failed to write %s: %w", path, err)
	}

	if err := fh.Close(); err != nil {
		return fmt.Errorf("(fs-write) failed to close %s: %w", path, err)
	}

	return nil
}

// Slice reads length bytes starting at offset. A negative offset counts from
// the end of the file. Reading past the end of the file returns only the
// bytes that are available, an offset at or past the end of the file returns
// an empty slice.
func (f *File) Slice(offset int64, length int64) ([]byte, error) {
	if length < 0 {
		return nil, fmt.Errorf("(fs-slice) %w: %d", ErrInvalidLength, length)
	}

	return f.slice(offset, length)
}

// SliceFrom reads from offset until the end of the file. A negative offset
// counts from the end of the file.
func (f *File) SliceFrom(offset int64) ([]byte, error) {
	return f.slice(offset, -1)
}

func (f *File) slice(offset int64, length int64) ([]byte, error) {
	path, err := f.Path()
	if err != nil {
		return nil, err
	}

	fh, err := f.handler.osHandler.Open(path)
	if err != nil {
		return nil, fmt.Errorf("(fs-slice) %w", err)
	}
	defer fh.Close()

	info, err := fh.Stat()
	if err != nil {
		return nil, fmt.Errorf("(fs-slice) failed to stat %s: %w", path, err)
	}

	data, err := ReadSlice(fh, info.Size(), offset, length)
	if err != nil {
		return nil, fmt.Errorf("(fs-slice) %s: %w", path, err)
	}

	return data, nil
}

// Unlink deletes the file.
func (f *File) Unlink() error {
	path, err := f.Path()
	if err != nil {
		return err
	}

	if err := f.handler.unixHandler.Unlink(path); err != nil {
		return fmt.Errorf("(fs-unlink) cannot unlink %s: %w", path, err)
	}
	f.handler.invalidate(path)

	return nil
}

// Count returns the size of the file in bytes, equal to [Item.Size].
func (f *File) Count() (int64, error) {
	return f.Size()
}
