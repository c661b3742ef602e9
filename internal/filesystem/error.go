package filesystem

import (
	"errors"
	"io/fs"
)

var (
	// ErrUnsupportedType is an error that occurs when a path is to be
	// classified, but is neither an existing regular file nor a directory.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrNotDirectory is an error that occurs when a directory operation is
	// attempted on a path that does not currently resolve to a directory.
	ErrNotDirectory = errors.New("not a directory")

	// ErrEmptyPath is an error that occurs when an [Item] has neither a path
	// nor a way to allocate one.
	ErrEmptyPath = errors.New("item has no path")

	// ErrInvalidOffset is an error that occurs when a slice offset still
	// resolves to a negative position after adjusting it to the end of file.
	ErrInvalidOffset = errors.New("invalid offset")

	// ErrInvalidLength is an error that occurs when a negative slice length is
	// requested.
	ErrInvalidLength = errors.New("invalid length < 0")

	// ErrCopyMismatch is an error that occurs when the checksum of a copied
	// file differs from the checksum of its source.
	ErrCopyMismatch = errors.New("copy checksum mismatch")

	// ErrClosed is an error that occurs when an already closed iterator is
	// used.
	ErrClosed = errors.New("iterator is closed")

	// SkipDir can be returned from a [WalkFunc] to skip a directory (or the
	// remaining entries of the current directory, when returned for a file).
	SkipDir = fs.SkipDir //nolint:errname
)
