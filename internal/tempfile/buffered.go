package tempfile

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/desertwitch/fsitem/internal/filesystem"
	"github.com/google/uuid"
)

const (
	// DefaultMaxMemory is the amount of bytes a [BufferedTempFile] holds in
	// memory before spilling to disk, unless configured otherwise.
	DefaultMaxMemory = 2 << 20

	// spillPrefix is the file name prefix of spilled [BufferedTempFile]s.
	spillPrefix = "fsitem-spill-"
)

// BufferedTempFile is an ephemeral file held in memory up to a threshold.
// Once its content grows past that threshold, it transparently moves to an
// anonymous file on disk, which is removed again with
// [BufferedTempFile.Close].
type BufferedTempFile struct {
	fsHandler *filesystem.Handler
	osHandler osProvider
	maxMemory int64
	path      string
	mem       []byte
	spill     *os.File
	spillPath string
	size      int64
	closed    bool
}

// NewBuffered returns a pointer to a new [BufferedTempFile] holding up to
// maxMemory bytes in memory, with [DefaultMaxMemory] used for maxMemory <= 0.
func NewBuffered(fsHandler *filesystem.Handler, osHandler osProvider, maxMemory int64) *BufferedTempFile {
	if maxMemory <= 0 {
		maxMemory = DefaultMaxMemory
	}

	return &BufferedTempFile{
		fsHandler: fsHandler,
		osHandler: osHandler,
		maxMemory: maxMemory,
	}
}

// MaxMemory returns the in-memory threshold in bytes.
func (b *BufferedTempFile) MaxMemory() int64 {
	return b.maxMemory
}

// SetMaxMemory changes the in-memory threshold, taking effect on the next
// write. Content that already spilled to disk stays there.
func (b *BufferedTempFile) SetMaxMemory(maxMemory int64) {
	b.maxMemory = maxMemory
}

// Path returns the synthetic descriptor of the [BufferedTempFile]. It does
// not refer to a real path on the filesystem.
func (b *BufferedTempFile) Path() string {
	if b.path == "" {
		b.path = fmt.Sprintf("temp://maxmemory:%d", b.maxMemory)
	}

	return b.path
}

// String returns the synthetic descriptor of the [BufferedTempFile].
func (b *BufferedTempFile) String() string {
	return b.Path()
}

// Spilled reports whether the content has moved to disk.
func (b *BufferedTempFile) Spilled() bool {
	return b.spill != nil
}

// Size returns the size of the content in bytes.
func (b *BufferedTempFile) Size() int64 {
	return b.size
}

// Count returns the size of the content in bytes, equal to
// [BufferedTempFile.Size].
func (b *BufferedTempFile) Count() int64 {
	return b.size
}

// Write appends p to the content, spilling to disk if the threshold is
// exceeded. It implements [io.Writer].
func (b *BufferedTempFile) Write(p []byte) (int, error) {
	if b.closed {
		return 0, fmt.Errorf("(temp-write) %w", ErrClosed)
	}

	if b.spill == nil && b.size+int64(len(p)) > b.maxMemory {
		if err := b.spillToDisk(); err != nil {
			return 0, err
		}
	}

	if b.spill != nil {
		n, err := b.spill.WriteAt(p, b.size)
		b.size += int64(n)
		if err != nil {
			return n, fmt.Errorf("(temp-write) failed to write spill file: %w", err)
		}

		return n, nil
	}

	b.mem = append(b.mem, p...)
	b.size += int64(len(p))

	return len(p), nil
}

// Append appends data to the content.
func (b *BufferedTempFile) Append(data []byte) error {
	_, err := b.Write(data)

	return err
}

// SetContent replaces the content.
func (b *BufferedTempFile) SetContent(data []byte) error {
	if b.closed {
		return fmt.Errorf("(temp-write) %w", ErrClosed)
	}

	if b.spill != nil {
		if err := b.spill.Truncate(0); err != nil {
			return fmt.Errorf("(temp-write) failed to truncate spill file: %w", err)
		}
	}
	b.mem = b.mem[:0]
	b.size = 0

	return b.Append(data)
}

// ReadAt reads len(p) bytes at offset off. It implements [io.ReaderAt].
func (b *BufferedTempFile) ReadAt(p []byte, off int64) (int, error) {
	if b.closed {
		return 0, fmt.Errorf("(temp-read) %w", ErrClosed)
	}

	if b.spill != nil {
		return io.NewSectionReader(b.spill, 0, b.size).ReadAt(p, off)
	}

	return bytes.NewReader(b.mem).ReadAt(p, off)
}

// Content returns a copy of the entire content.
func (b *BufferedTempFile) Content() ([]byte, error) {
	return b.SliceFrom(0)
}

// Slice reads length bytes starting at offset, with the same semantics as
// [filesystem.File.Slice].
func (b *BufferedTempFile) Slice(offset int64, length int64) ([]byte, error) {
	if length < 0 {
		return nil, fmt.Errorf("(temp-slice) %w: %d", filesystem.ErrInvalidLength, length)
	}

	return b.slice(offset, length)
}

// SliceFrom reads from offset until the end of the content, with the same
// semantics as [filesystem.File.SliceFrom].
func (b *BufferedTempFile) SliceFrom(offset int64) ([]byte, error) {
	return b.slice(offset, -1)
}

func (b *BufferedTempFile) slice(offset int64, length int64) ([]byte, error) {
	if b.closed {
		return nil, fmt.Errorf("(temp-slice) %w", ErrClosed)
	}

	data, err := filesystem.ReadSlice(b, b.size, offset, length)
	if err != nil {
		return nil, fmt.Errorf("(temp-slice) %w", err)
	}

	return data, nil
}

// WriteTo writes the entire content to w. It implements [io.WriterTo].
func (b *BufferedTempFile) WriteTo(w io.Writer) (int64, error) {
	if b.closed {
		return 0, fmt.Errorf("(temp-read) %w", ErrClosed)
	}

	return io.Copy(w, io.NewSectionReader(b, 0, b.size))
}

// DiskFile returns a [filesystem.File] for the spill file, allowing any
// path-based operation on spilled content. It fails with [ErrNotOnDisk] while
// the content is still held in memory.
func (b *BufferedTempFile) DiskFile() (*filesystem.File, error) {
	if b.closed {
		return nil, fmt.Errorf("(temp-disk) %w", ErrClosed)
	}

	if b.spill == nil {
		return nil, fmt.Errorf("(temp-disk) %w", ErrNotOnDisk)
	}

	return b.fsHandler.File(b.spillPath), nil
}

// Close discards the content and removes the spill file, if any. It is safe
// to call more than once.
func (b *BufferedTempFile) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	b.mem = nil
	b.size = 0

	if b.spill == nil {
		return nil
	}

	if err := b.spill.Close(); err != nil {
		return fmt.Errorf("(temp-close) failed to close spill file: %w", err)
	}

	if err := b.osHandler.Remove(b.spillPath); err != nil {
		return fmt.Errorf("(temp-close) failed to remove spill file: %w", err)
	}
	slog.Debug("Removed spill file", "path", b.spillPath)

	return nil
}

// spillToDisk moves the in-memory content into a new spill file.
func (b *BufferedTempFile) spillToDisk() error {
	path := filepath.Join(b.osHandler.TempDir(), spillPrefix+uuid.NewString())

	fh, err := b.osHandler.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, tempFilePerms)
	if err != nil {
		return fmt.Errorf("(temp-spill) failed to create spill file: %w", err)
	}

	if _, err := fh.WriteAt(b.mem, 0); err != nil {
		fh.Close()
		_ = b.osHandler.Remove(path)

		return fmt.Errorf("(temp-spill) failed to write spill file: %w", err)
	}

	slog.Debug("Spilled buffered temporary file to disk",
		"path", path,
		"size", b.size,
		"maxMemory", b.maxMemory,
	)

	b.spill = fh
	b.spillPath = path
	b.mem = nil

	return nil
}
