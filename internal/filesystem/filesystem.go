// Package filesystem provides path-addressed handles for files and
// directories on the local filesystem, together with directory iterators and
// a tree walker built on top of them.
//
// Every operation is a direct call into the operating system. The only state
// kept in memory is an optional [StatCache], which is cleared explicitly with
// [Item.ClearStatCache] and implicitly by all mutating methods of this package.
package filesystem

import (
	"os"
	"os/user"

	"golang.org/x/sys/unix"
)

// osProvider defines operating system methods needed by a [Handler].
type osProvider interface {
	EvalSymlinks(path string) (string, error)
	LookupGroup(name string) (*user.Group, error)
	MkdirAll(path string, perm os.FileMode) error
	Open(name string) (*os.File, error)
	OpenFile(name string, flag int, perm os.FileMode) (*os.File, error)
	ReadFile(name string) ([]byte, error)
	Rename(oldpath, newpath string) error
}

// unixProvider defines Unix operating system methods needed by a [Handler].
type unixProvider interface {
	Access(path string, mode uint32) error
	Chmod(path string, mode uint32) error
	Chown(path string, uid, gid int) error
	Link(oldpath, newpath string) error
	Lstat(path string, stat *unix.Stat_t) error
	Mkdir(path string, mode uint32) error
	Rmdir(path string) error
	Stat(path string, stat *unix.Stat_t) error
	Statfs(path string, buf *unix.Statfs_t) error
	Symlink(oldpath, newpath string) error
	Unlink(path string) error
	UtimesNano(path string, times []unix.Timespec) error
}

// Handler is the principal filesystem handler, owning the operating system
// providers and the (optional) [StatCache]. All [Item] handles created from a
// [Handler] perform their calls through it.
type Handler struct {
	osHandler   osProvider
	unixHandler unixProvider
	statCache   *StatCache
}

// Option configures a [Handler] during construction.
type Option func(*Handler)

// WithStatCache enables caching of stat and realpath results. Cached results
// are served until they are cleared with [Item.ClearStatCache] or invalidated
// by a mutating method of this package.
func WithStatCache() Option {
	return func(h *Handler) {
		h.statCache = NewStatCache()
	}
}

// NewHandler returns a pointer to a new [Handler].
func NewHandler(osHandler osProvider, unixHandler unixProvider, opts ...Option) *Handler {
	h := &Handler{
		osHandler:   osHandler,
		unixHandler: unixHandler,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// StatCacheEnabled reports whether the [Handler] caches stat results.
func (h *Handler) StatCacheEnabled() bool {
	return h.statCache != nil
}

// stat returns the (possibly cached) stat(2) result for a path.
func (h *Handler) stat(path string) (unix.Stat_t, error) {
	if h.statCache != nil {
		if st, ok := h.statCache.getStat(path); ok {
			return st, nil
		}
	}

	var st unix.Stat_t
	if err := h.unixHandler.Stat(path, &st); err != nil {
		return unix.Stat_t{}, &os.PathError{Op: "stat", Path: path, Err: err}
	}

	if h.statCache != nil {
		h.statCache.putStat(path, st)
	}

	return st, nil
}

// lstat returns the (possibly cached) lstat(2) result for a path.
func (h *Handler) lstat(path string) (unix.Stat_t, error) {
	if h.statCache != nil {
		if st, ok := h.statCache.getLstat(path); ok {
			return st, nil
		}
	}

	var st unix.Stat_t
	if err := h.unixHandler.Lstat(path, &st); err != nil {
		return unix.Stat_t{}, &os.PathError{Op: "lstat", Path: path, Err: err}
	}

	if h.statCache != nil {
		h.statCache.putLstat(path, st)
	}

	return st, nil
}

// realpath returns the (possibly cached) canonical absolute path.
func (h *Handler) realpath(path string) (string, error) {
	if h.statCache != nil {
		if resolved, ok := h.statCache.getRealpath(path); ok {
			return resolved, nil
		}
	}

	resolved, err := h.osHandler.EvalSymlinks(path)
	if err != nil {
		return "", err
	}

	if h.statCache != nil {
		h.statCache.putRealpath(path, resolved)
	}

	return resolved, nil
}

// invalidate drops the cached stat results of the given paths.
func (h *Handler) invalidate(paths ...string) {
	if h.statCache == nil {
		return
	}

	for _, path := range paths {
		h.statCache.Invalidate(path, false)
	}
}
