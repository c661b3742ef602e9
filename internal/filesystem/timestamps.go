package filesystem

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

// AccessTime returns the last access time of the path.
func (i *Item) AccessTime() (time.Time, error) {
	_, st, err := i.statPath()
	if err != nil {
		return time.Time{}, fmt.Errorf("(fs-atime) %w", err)
	}

	return time.Unix(st.Atim.Unix()), nil
}

// ChangeTime returns the last inode change time of the path.
func (i *Item) ChangeTime() (time.Time, error) {
	_, st, err := i.statPath()
	if err != nil {
		return time.Time{}, fmt.Errorf("(fs-ctime) %w", err)
	}

	return time.Unix(st.Ctim.Unix()), nil
}

// ModificationTime returns the last modification time of the path.
func (i *Item) ModificationTime() (time.Time, error) {
	_, st, err := i.statPath()
	if err != nil {
		return time.Time{}, fmt.Errorf("(fs-mtime) %w", err)
	}

	return time.Unix(st.Mtim.Unix()), nil
}

// Touch sets the modification and access times of the path. A zero mtime
// means the current time, a zero atime means the access time is set to mtime
// as well. Unlike touch(1), a missing
// path is not created but results in an error.
func (i *Item) Touch(mtime time.Time, atime time.Time) error {
	path, err := i.Path()
	if err != nil {
		return err
	}

	if mtime.IsZero() {
		mtime = time.Now()
	}
	if atime.IsZero() {
		atime = mtime
	}

	ts := []unix.Timespec{
		unix.NsecToTimespec(atime.UnixNano()),
		unix.NsecToTimespec(mtime.UnixNano()),
	}
	if err := i.handler.unixHandler.UtimesNano(path, ts); err != nil {
		return fmt.Errorf("(fs-touch) cannot set timestamps of %s: %w", path, err)
	}
	i.handler.invalidate(path)

	return nil
}
