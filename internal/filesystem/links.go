package filesystem

import (
	"fmt"
)

// Link creates a symbolic link at target, pointing to the path of the [Item].
func (i *Item) Link(target string) error {
	path, err := i.Path()
	if err != nil {
		return err
	}

	if err := i.handler.unixHandler.Symlink(path, target); err != nil {
		return fmt.Errorf("(fs-symlink) cannot link %s to %s: %w", target, path, err)
	}
	i.handler.invalidate(target)

	return nil
}

// Rename moves the path to target and returns a new [*File] for target. The
// [Item] itself keeps its (now stale) path.
func (i *Item) Rename(target string) (*File, error) {
	path, err := i.Path()
	if err != nil {
		return nil, err
	}

	if err := i.handler.osHandler.Rename(path, target); err != nil {
		return nil, fmt.Errorf("(fs-rename) cannot rename %s to %s: %w", path, target, err)
	}
	i.handler.invalidate(path, target)

	return i.handler.File(target), nil
}

// CreateHardLink creates a hard link at target for the path of the [File].
func (f *File) CreateHardLink(target string) error {
	path, err := f.Path()
	if err != nil {
		return err
	}

	if err := f.handler.unixHandler.Link(path, target); err != nil {
		return fmt.Errorf("(fs-link) %w", err)
	}
	f.handler.invalidate(path, target)

	return nil
}
