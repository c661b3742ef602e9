// Package tempfile provides ephemeral files: a disk-backed [TempFile] that
// is removed on [TempFile.Close], and a memory-backed [BufferedTempFile] that
// spills to disk once it grows past a threshold.
package tempfile

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"github.com/desertwitch/fsitem/internal/filesystem"
	"github.com/google/uuid"
)

// DefaultPrefix is the file name prefix of a [TempFile] unless configured.
const DefaultPrefix = "temp_"

// tempFilePerms are the permissions a [TempFile] is created with.
const tempFilePerms = 0o600

// osProvider defines operating system methods needed to allocate temporary
// files.
type osProvider interface {
	OpenFile(name string, flag int, perm os.FileMode) (*os.File, error)
	Remove(name string) error
	TempDir() string
}

// TempFile is a [filesystem.File] whose path is allocated on first access,
// as a uniquely named file in a directory. [TempFile.Close] removes it again,
// but only if the path still refers to the originally created inode.
type TempFile struct {
	*filesystem.File
	osHandler    osProvider
	directory    string
	prefix       string
	createdInode uint64
	closed       bool
}

// Option configures a [TempFile] during construction.
type Option func(*TempFile)

// WithDirectory sets the directory the [TempFile] is allocated in.
func WithDirectory(dir string) Option {
	return func(t *TempFile) {
		t.directory = dir
	}
}

// WithPrefix sets the file name prefix of the [TempFile].
func WithPrefix(prefix string) Option {
	return func(t *TempFile) {
		t.prefix = prefix
	}
}

// New returns a pointer to a new [TempFile]. No file is created until its
// path is first accessed. It should eventually be disposed of with e.g. a
// deferred [TempFile.Close] call.
func New(fsHandler *filesystem.Handler, osHandler osProvider, opts ...Option) *TempFile {
	t := &TempFile{
		osHandler: osHandler,
		prefix:    DefaultPrefix,
	}

	for _, opt := range opts {
		opt(t)
	}

	t.File = fsHandler.LazyFile(t)

	return t
}

// Directory returns the directory the [TempFile] is allocated in, defaulting
// to the temporary directory of the operating system.
func (t *TempFile) Directory() string {
	if t.directory == "" {
		t.directory = t.osHandler.TempDir()
	}

	return t.directory
}

// Prefix returns the file name prefix of the [TempFile].
func (t *TempFile) Prefix() string {
	return t.prefix
}

// CreatedInode returns the inode of the file as it was created, or 0 if the
// path was not yet allocated.
func (t *TempFile) CreatedInode() uint64 {
	return t.createdInode
}

// Allocate creates the backing file and records its inode. It is called on
// first access of the path and implements [filesystem.PathAllocator].
func (t *TempFile) Allocate() (string, error) {
	if t.closed {
		return "", fmt.Errorf("(temp-alloc) %w", ErrClosed)
	}

	path := filepath.Join(t.Directory(), t.prefix+uuid.NewString())

	fh, err := t.osHandler.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, tempFilePerms)
	if err != nil {
		return "", fmt.Errorf("(temp-alloc) failed to create: %w", err)
	}
	defer fh.Close()

	info, err := fh.Stat()
	if err != nil {
		_ = t.osHandler.Remove(path)

		return "", fmt.Errorf("(temp-alloc) failed to stat: %w", err)
	}

	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		_ = t.osHandler.Remove(path)

		return "", fmt.Errorf("(temp-alloc) %w: %s", ErrNoInode, path)
	}
	t.createdInode = st.Ino

	slog.Debug("Allocated temporary file", "path", path, "inode", t.createdInode)

	return path, nil
}

// Close disposes of the [TempFile], removing the backing file if it still
// has the inode it was created with. A path that was removed, or replaced by
// another file, is left untouched. It is safe to call more than once.
func (t *TempFile) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true

	if !t.HasPath() {
		return nil
	}

	t.ClearStatCache(false)

	inode, err := t.Inode()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}

		return fmt.Errorf("(temp-close) %w", err)
	}

	if inode != t.createdInode {
		slog.Warn("Skipped removing replaced temporary file",
			"path", t.String(),
			"inode", inode,
			"createdInode", t.createdInode,
		)

		return nil
	}

	if err := t.Unlink(); err != nil {
		return fmt.Errorf("(temp-close) %w", err)
	}
	slog.Debug("Removed temporary file", "path", t.String())

	return nil
}
