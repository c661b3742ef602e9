package filesystem

import (
	"fmt"
	"io/fs"
	"os"

	"golang.org/x/sys/unix"
)

// DefaultDirectoryMode is the mode new directories are created with by
// default (rwxr-xr-x, before the umask is applied).
const DefaultDirectoryMode = PermOwnerAll | PermGroupRead | PermGroupExecute | PermOtherRead | PermOtherExecute

// Directory is a [Node] for a directory.
type Directory struct {
	*Item
}

// Directory returns a pointer to a new [Directory] for a path.
func (h *Handler) Directory(path string) *Directory {
	return &Directory{Item: h.Item(path)}
}

// Base returns the underlying [Item].
func (d *Directory) Base() *Item {
	return d.Item
}

func (*Directory) isNode() {}

// Create creates the directory with the given permissions. With recursive,
// any missing parents are created as well. Creating an already existing
// directory results in an error either way.
func (d *Directory) Create(perm uint32, recursive bool) error {
	path, err := d.Path()
	if err != nil {
		return err
	}
	defer d.handler.invalidate(path)

	if !recursive {
		if err := d.handler.unixHandler.Mkdir(path, perm); err != nil {
			return fmt.Errorf("(fs-mkdir) cannot create directory %s: %w", path, err)
		}

		return nil
	}

	var st unix.Stat_t
	if err := d.handler.unixHandler.Lstat(path, &st); err == nil {
		return fmt.Errorf("(fs-mkdir) cannot create directory %s: %w", path, fs.ErrExist)
	}

	if err := d.handler.osHandler.MkdirAll(path, os.FileMode(perm)); err != nil {
		return fmt.Errorf("(fs-mkdir) cannot create directory %s: %w", path, err)
	}

	return nil
}

// Unlink removes the directory, which must be empty.
func (d *Directory) Unlink() error {
	path, err := d.Path()
	if err != nil {
		return err
	}

	if err := d.handler.unixHandler.Rmdir(path); err != nil {
		return fmt.Errorf("(fs-rmdir) cannot remove directory %s: %w", path, err)
	}
	d.handler.invalidate(path)

	return nil
}

// Iterator opens a [RecursiveDirectoryIterator] over the entries of the
// directory. The caller is responsible for closing it.
func (d *Directory) Iterator() (*RecursiveDirectoryIterator, error) {
	path, err := d.Path()
	if err != nil {
		return nil, err
	}

	return d.handler.NewRecursiveDirectoryIterator(path)
}
