package filesystem

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/zeebo/blake3"
)

// OpenMode is the access mode a [File] is opened with.
type OpenMode int

const (
	// ModeRead opens the file read-only, positioned at the start.
	ModeRead OpenMode = iota
	// ModeWrite opens the file write-only, creating or truncating it.
	ModeWrite
	// ModeAppend opens the file write-only, creating it and positioning all
	// writes at the end.
	ModeAppend
	// ModeReadWrite opens the file for reading and writing, creating it if
	// needed, positioned at the start.
	ModeReadWrite
	// ModeCreateExclusive creates the file for reading and writing, failing if
	// it already exists.
	ModeCreateExclusive
)

func (m OpenMode) flags() int {
	switch m {
	case ModeWrite:
		return os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	case ModeAppend:
		return os.O_WRONLY | os.O_CREATE | os.O_APPEND
	case ModeReadWrite:
		return os.O_RDWR | os.O_CREATE
	case ModeCreateExclusive:
		return os.O_RDWR | os.O_CREATE | os.O_EXCL
	case ModeRead:
		fallthrough
	default:
		return os.O_RDONLY
	}
}

// String returns a textual representation of the [OpenMode].
func (m OpenMode) String() string {
	switch m {
	case ModeRead:
		return "read"
	case ModeWrite:
		return "write"
	case ModeAppend:
		return "append"
	case ModeReadWrite:
		return "readwrite"
	case ModeCreateExclusive:
		return "exclusive"
	default:
		return "unknown"
	}
}

// Open opens the file with the given [OpenMode]. The caller is responsible
// for closing the returned [os.File].
func (f *File) Open(mode OpenMode) (*os.File, error) {
	path, err := f.Path()
	if err != nil {
		return nil, err
	}

	fh, err := f.handler.osHandler.OpenFile(path, mode.flags(), defaultFilePerms)
	if err != nil {
		return nil, fmt.Errorf("(fs-open) failed to open in %s mode: %w", mode, err)
	}

	if mode != ModeRead {
		f.handler.invalidate(path)
	}

	return fh, nil
}

// Copy copies the file byte-for-byte to target (overwriting it) and returns
// a new [*File] for target. The copy keeps the permission bits of the source
// and is verified by comparing checksums of the source and the written target.
func (f *File) Copy(target string) (*File, error) {
	path, err := f.Path()
	if err != nil {
		return nil, err
	}
	defer f.handler.invalidate(target)

	srcFile, err := f.handler.osHandler.Open(path)
	if err != nil {
		return nil, fmt.Errorf("(fs-copy) failed to open source: %w", err)
	}
	defer srcFile.Close()

	info, err := srcFile.Stat()
	if err != nil {
		return nil, fmt.Errorf("(fs-copy) failed to stat source: %w", err)
	}

	dstFile, err := f.handler.osHandler.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return nil, fmt.Errorf("(fs-copy) failed to open target: %w", err)
	}

	srcHasher := blake3.New()
	teeReader := io.TeeReader(srcFile, srcHasher)

	if _, err := io.Copy(dstFile, teeReader); err != nil {
		dstFile.Close()

		return nil, fmt.Errorf("(fs-copy) failed to copy %s to %s: %w", path, target, err)
	}

	if err := dstFile.Sync(); err != nil {
		dstFile.Close()

		return nil, fmt.Errorf("(fs-copy) failed to sync target: %w", err)
	}

	if err := dstFile.Close(); err != nil {
		return nil, fmt.Errorf("(fs-copy) failed to close target: %w", err)
	}

	dstSum, err := f.checksum(target)
	if err != nil {
		return nil, fmt.Errorf("(fs-copy) failed to verify target: %w", err)
	}

	if srcSum := srcHasher.Sum(nil); !bytes.Equal(srcSum, dstSum) {
		return nil, fmt.Errorf("(fs-copy) %w: %x (src) != %x (dst)", ErrCopyMismatch, srcSum, dstSum)
	}

	return f.handler.File(target), nil
}

// checksum returns the blake3 checksum of the content at a path.
func (f *File) checksum(path string) ([]byte, error) {
	fh, err := f.handler.osHandler.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	hasher := blake3.New()
	if _, err := io.Copy(hasher, fh); err != nil {
		return nil, err
	}

	return hasher.Sum(nil), nil
}

// ReadSlice reads length bytes at offset from r, which holds size bytes in
// total. A negative offset counts from the end, a negative length reads
// until the end. The result is clipped to the available bytes, an offset at
// or past the end results in an empty slice.
func ReadSlice(r io.ReaderAt, size int64, offset int64, length int64) ([]byte, error) {
	if offset < 0 {
		offset += size
	}

	if offset < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidOffset, offset-size)
	}

	if offset >= size {
		return []byte{}, nil
	}

	if available := size - offset; length < 0 || length > available {
		length = available
	}

	buf := make([]byte, length)

	n, err := r.ReadAt(buf, offset)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read at %d: %w", offset, err)
	}

	return buf[:n], nil
}
