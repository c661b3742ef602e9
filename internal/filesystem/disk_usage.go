package filesystem

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// DiskStats holds disk usage information. It is meant to be passed by value.
type DiskStats struct {
	TotalSize uint64
	FreeSpace uint64
}

// DiskUsage returns the [DiskStats] of the filesystem containing the
// directory.
func (d *Directory) DiskUsage() (DiskStats, error) {
	path, err := d.Path()
	if err != nil {
		return DiskStats{}, err
	}

	if !d.IsDirectory() {
		return DiskStats{}, fmt.Errorf("(fs-diskstats) cannot calculate space on %s: %w", path, ErrNotDirectory)
	}

	var stat unix.Statfs_t
	if err := d.handler.unixHandler.Statfs(path, &stat); err != nil {
		return DiskStats{}, fmt.Errorf("(fs-diskstats) failed to statfs %s: %w", path, err)
	}

	stats := DiskStats{
		TotalSize: stat.Blocks * handleSize(int64(stat.Bsize)),
		FreeSpace: stat.Bavail * handleSize(int64(stat.Bsize)),
	}

	return stats, nil
}

// TotalSpace returns the total size in bytes of the filesystem containing the
// directory.
func (d *Directory) TotalSpace() (uint64, error) {
	stats, err := d.DiskUsage()
	if err != nil {
		return 0, err
	}

	return stats.TotalSize, nil
}

// FreeSpace returns the bytes available to unprivileged users on the
// filesystem containing the directory.
func (d *Directory) FreeSpace() (uint64, error) {
	stats, err := d.DiskUsage()
	if err != nil {
		return 0, err
	}

	return stats.FreeSpace, nil
}

// handleSize converts a int64 size to a uint64 size (with sizes < 0 becoming 0).
func handleSize(size int64) uint64 {
	if size < 0 {
		return 0
	}

	return uint64(size)
}
