package filesystem

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"path/filepath"
)

// dirHandle defines the methods needed of an open directory listing.
type dirHandle interface {
	Readdirnames(n int) ([]string, error)
	Seek(offset int64, whence int) (int64, error)
	Close() error
}

// DirectoryIterator lazily iterates the entries of a single directory, in
// the order returned by the operating system. The self (".") and parent
// ("..") entries are never returned.
//
// A [DirectoryIterator] holds an open directory handle and must be closed.
// Call [DirectoryIterator.Rewind] to position it on the first entry:
//
//	for err = it.Rewind(); err == nil && it.Valid(); err = it.Next() {
//		node := it.Current()
//	}
type DirectoryIterator struct {
	handler *Handler
	path    string
	dir     dirHandle
	key     int
	current Node
	err     error
}

// NewDirectoryIterator opens the directory listing of a path and returns a
// pointer to a new [DirectoryIterator] for it.
func (h *Handler) NewDirectoryIterator(path string) (*DirectoryIterator, error) {
	dir, err := h.osHandler.Open(path)
	if err != nil {
		return nil, fmt.Errorf("(fs-iterator) failed to open %s: %w", path, err)
	}

	return &DirectoryIterator{
		handler: h,
		path:    path,
		dir:     dir,
		key:     -1,
	}, nil
}

// Path returns the path of the iterated directory.
func (it *DirectoryIterator) Path() string {
	return it.path
}

// Key returns the zero-based position of the current entry, or -1 before
// the first entry.
func (it *DirectoryIterator) Key() int {
	return it.key
}

// Current returns the current entry, or nil when the iterator is not
// positioned on an entry.
func (it *DirectoryIterator) Current() Node {
	return it.current
}

// Valid reports whether the iterator is positioned on an entry. It turns
// false once the listing is exhausted.
func (it *DirectoryIterator) Valid() bool {
	return it.current != nil
}

// Err returns the last error that occurred while advancing the iterator.
func (it *DirectoryIterator) Err() error {
	return it.err
}

// Rewind resets the listing to its start and advances to the first entry.
func (it *DirectoryIterator) Rewind() error {
	if it.dir == nil {
		return fmt.Errorf("(fs-iterator) %w", ErrClosed)
	}

	if _, err := it.dir.Seek(0, io.SeekStart); err != nil {
		it.err = fmt.Errorf("(fs-iterator) failed to rewind %s: %w", it.path, err)

		return it.err
	}

	it.key = -1
	it.current = nil
	it.err = nil

	return it.Next()
}

// Next advances the iterator to the next entry. Once the listing is
// exhausted, [DirectoryIterator.Current] returns nil.
func (it *DirectoryIterator) Next() error {
	if it.dir == nil {
		return fmt.Errorf("(fs-iterator) %w", ErrClosed)
	}

	for {
		names, err := it.dir.Readdirnames(1)
		if err != nil {
			it.current = nil
			if errors.Is(err, io.EOF) {
				return nil
			}
			it.err = fmt.Errorf("(fs-iterator) failed to readdir %s: %w", it.path, err)

			return it.err
		}

		if len(names) == 0 {
			it.current = nil

			return nil
		}

		if isDotEntry(names[0]) {
			continue
		}

		it.key++
		it.current = it.handler.Entry(filepath.Join(it.path, names[0]))

		return nil
	}
}

// All returns an iterator over all entries from the start of the listing,
// rewinding it first. Errors are available from [DirectoryIterator.Err]
// after the iteration has ended.
func (it *DirectoryIterator) All() iter.Seq2[int, Node] {
	return func(yield func(int, Node) bool) {
		for err := it.Rewind(); err == nil && it.Valid(); err = it.Next() {
			if !yield(it.key, it.current) {
				return
			}
		}
	}
}

// Close releases the directory handle. It is safe to call more than once.
func (it *DirectoryIterator) Close() error {
	if it.dir == nil {
		return nil
	}

	err := it.dir.Close()
	it.dir = nil
	it.current = nil

	if err != nil {
		return fmt.Errorf("(fs-iterator) failed to close %s: %w", it.path, err)
	}
	slog.Debug("Closed directory iterator", "path", it.path)

	return nil
}

// RecursiveDirectoryIterator is a [DirectoryIterator] that can open child
// iterators for entries which are directories. It does not descend by itself,
// see [Walk] for a tree traversal built on top of it.
type RecursiveDirectoryIterator struct {
	*DirectoryIterator
}

// NewRecursiveDirectoryIterator opens the directory listing of a path and
// returns a pointer to a new [RecursiveDirectoryIterator] for it.
func (h *Handler) NewRecursiveDirectoryIterator(path string) (*RecursiveDirectoryIterator, error) {
	it, err := h.NewDirectoryIterator(path)
	if err != nil {
		return nil, err
	}

	return &RecursiveDirectoryIterator{DirectoryIterator: it}, nil
}

// HasChildren reports whether the current entry is a directory.
func (it *RecursiveDirectoryIterator) HasChildren() bool {
	_, ok := it.current.(*Directory)

	return ok
}

// Children opens a new, independent [RecursiveDirectoryIterator] for the
// current entry. The caller is responsible for closing it.
func (it *RecursiveDirectoryIterator) Children() (*RecursiveDirectoryIterator, error) {
	dir, ok := it.current.(*Directory)
	if !ok {
		return nil, fmt.Errorf("(fs-iterator) no children at position %d of %s: %w", it.key, it.path, ErrNotDirectory)
	}

	return dir.Iterator()
}

// isDotEntry reports whether a name is the self or parent entry.
func isDotEntry(name string) bool {
	return name == "." || name == ".."
}
