package filesystem

import (
	"fmt"
)

// Keys of the [Stats] returned by [Item.Stats].
const (
	StatDev     = "dev"
	StatIno     = "ino"
	StatMode    = "mode"
	StatNlink   = "nlink"
	StatUID     = "uid"
	StatGID     = "gid"
	StatRdev    = "rdev"
	StatSize    = "size"
	StatAtime   = "atime"
	StatMtime   = "mtime"
	StatCtime   = "ctime"
	StatBlksize = "blksize"
	StatBlocks  = "blocks"
)

// StatKeys holds all keys of [Stats] in stat(2) order.
//
//nolint:gochecknoglobals
var StatKeys = []string{
	StatDev, StatIno, StatMode, StatNlink, StatUID, StatGID, StatRdev,
	StatSize, StatAtime, StatMtime, StatCtime, StatBlksize, StatBlocks,
}

// Stats holds the named fields of a stat(2) call. Times are in seconds since
// the Unix epoch.
type Stats map[string]int64

// Stats returns the named stat(2) fields of the path.
func (i *Item) Stats() (Stats, error) {
	_, st, err := i.statPath()
	if err != nil {
		return nil, fmt.Errorf("(fs-stats) %w", err)
	}

	return Stats{
		StatDev:     int64(st.Dev),   //nolint:gosec
		StatIno:     int64(st.Ino),   //nolint:gosec
		StatMode:    int64(st.Mode),
		StatNlink:   int64(st.Nlink), //nolint:gosec
		StatUID:     int64(st.Uid),
		StatGID:     int64(st.Gid),
		StatRdev:    int64(st.Rdev), //nolint:gosec
		StatSize:    st.Size,
		StatAtime:   int64(st.Atim.Sec),
		StatMtime:   int64(st.Mtim.Sec),
		StatCtime:   int64(st.Ctim.Sec),
		StatBlksize: int64(st.Blksize),
		StatBlocks:  int64(st.Blocks),
	}, nil
}
