package filesystem

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// PathAllocator allocates the path of an [Item] on first access. It is used
// for items whose backing entry is created on demand (e.g. temporary files).
type PathAllocator interface {
	Allocate() (string, error)
}

// Item is a handle for a path on the filesystem. It carries no state besides
// the path, all metadata is read from the operating system on every call
// (or from the [StatCache], if enabled on the [Handler]).
type Item struct {
	handler   *Handler
	path      string
	allocator PathAllocator
}

// Item returns a pointer to a new [Item] for a path.
func (h *Handler) Item(path string) *Item {
	return &Item{
		handler: h,
		path:    path,
	}
}

// LazyItem returns a pointer to a new [Item] whose path is allocated by the
// given [PathAllocator] on first access.
func (h *Handler) LazyItem(allocator PathAllocator) *Item {
	return &Item{
		handler:   h,
		allocator: allocator,
	}
}

// Path returns the path of the [Item], allocating it first if needed.
func (i *Item) Path() (string, error) {
	if i.path == "" && i.allocator != nil {
		path, err := i.allocator.Allocate()
		if err != nil {
			return "", fmt.Errorf("(fs-path) failed to allocate: %w", err)
		}
		i.path = path
	}

	if i.path == "" {
		return "", fmt.Errorf("(fs-path) %w", ErrEmptyPath)
	}

	return i.path, nil
}

// HasPath reports whether the path of the [Item] is already known (without
// allocating it).
func (i *Item) HasPath() bool {
	return i.path != ""
}

// String returns the path of the [Item], or an empty string if the path was
// not yet allocated.
func (i *Item) String() string {
	return i.path
}

// statPath resolves the path and stats it.
func (i *Item) statPath() (string, unix.Stat_t, error) {
	path, err := i.Path()
	if err != nil {
		return "", unix.Stat_t{}, err
	}

	st, err := i.handler.stat(path)
	if err != nil {
		return path, unix.Stat_t{}, err
	}

	return path, st, nil
}

// Exists reports whether the path exists (following symbolic links).
func (i *Item) Exists() bool {
	_, _, err := i.statPath()

	return err == nil
}

// IsDirectory reports whether the path is a directory (following symbolic
// links).
func (i *Item) IsDirectory() bool {
	_, st, err := i.statPath()
	if err != nil {
		return false
	}

	return st.Mode&unix.S_IFMT == unix.S_IFDIR
}

// IsFile reports whether the path is a regular file (following symbolic
// links).
func (i *Item) IsFile() bool {
	_, st, err := i.statPath()
	if err != nil {
		return false
	}

	return st.Mode&unix.S_IFMT == unix.S_IFREG
}

// IsLink reports whether the path itself is a symbolic link.
func (i *Item) IsLink() bool {
	path, err := i.Path()
	if err != nil {
		return false
	}

	st, err := i.handler.lstat(path)
	if err != nil {
		return false
	}

	return st.Mode&unix.S_IFMT == unix.S_IFLNK
}

// IsReadable reports whether the calling process may read the path.
func (i *Item) IsReadable() bool {
	return i.access(unix.R_OK)
}

// IsWritable reports whether the calling process may write the path.
func (i *Item) IsWritable() bool {
	return i.access(unix.W_OK)
}

// IsExecutable reports whether the calling process may execute (or, for
// directories, search) the path.
func (i *Item) IsExecutable() bool {
	return i.access(unix.X_OK)
}

func (i *Item) access(mode uint32) bool {
	path, err := i.Path()
	if err != nil {
		return false
	}

	return i.handler.unixHandler.Access(path, mode) == nil
}

// Inode returns the inode number of the path.
func (i *Item) Inode() (uint64, error) {
	_, st, err := i.statPath()
	if err != nil {
		return 0, fmt.Errorf("(fs-inode) %w", err)
	}

	return st.Ino, nil
}

// Size returns the size of the path in bytes.
func (i *Item) Size() (int64, error) {
	_, st, err := i.statPath()
	if err != nil {
		return 0, fmt.Errorf("(fs-size) %w", err)
	}

	return st.Size, nil
}

// RealPath returns the canonical absolute path, with all symbolic links
// resolved.
func (i *Item) RealPath() (string, error) {
	path, err := i.Path()
	if err != nil {
		return "", err
	}

	resolved, err := i.handler.realpath(path)
	if err != nil {
		return "", fmt.Errorf("(fs-realpath) %w", err)
	}

	return resolved, nil
}

// ClearStatCache drops the cached stat results of the path, so that
// subsequent calls observe the current state on disk. The cached realpath is
// only dropped with alsoRealpath. It is a no-op if the [Handler] has no
// [StatCache].
func (i *Item) ClearStatCache(alsoRealpath bool) {
	if i.handler.statCache == nil || i.path == "" {
		return
	}

	i.handler.statCache.Invalidate(i.path, alsoRealpath)
}
