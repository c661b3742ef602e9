package tempfile

import "errors"

var (
	// ErrClosed is an error that occurs when a [TempFile] or
	// [BufferedTempFile] is used after it was closed.
	ErrClosed = errors.New("temporary file is closed")

	// ErrNoInode is an error that occurs when the inode of a newly created
	// [TempFile] cannot be determined.
	ErrNoInode = errors.New("cannot determine inode")

	// ErrNotOnDisk is an error that occurs when a disk-backed file is
	// requested from a [BufferedTempFile] that has not spilled to disk.
	ErrNotOnDisk = errors.New("buffered content is not on disk")
)
