package filesystem

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/desertwitch/fsitem/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestDirectory_Success_CreateAndUnlink(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "dir")
	dir := newTestHandler(WithStatCache()).Directory(path)

	assert.False(t, dir.Exists())
	require.NoError(t, dir.Create(0o700, false))
	assert.True(t, dir.IsDirectory(), "create should invalidate the stat cache")

	perms, err := dir.Permissions()
	require.NoError(t, err)
	assert.Equal(t, uint32(0o700), perms&0o777)

	require.NoError(t, dir.Unlink())
	assert.False(t, dir.Exists())
	assert.NoDirExists(t, path)
}

func TestDirectory_Fail_CreateExisting(t *testing.T) {
	t.Parallel()

	dir := newTestHandler().Directory(t.TempDir())

	err := dir.Create(DefaultDirectoryMode, false)
	require.ErrorIs(t, err, os.ErrExist)

	err = dir.Create(DefaultDirectoryMode, true)
	require.ErrorIs(t, err, os.ErrExist)
}

func TestDirectory_Success_CreateRecursive(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "a", "b", "c")
	dir := newTestHandler().Directory(path)

	err := dir.Create(DefaultDirectoryMode, false)
	require.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, dir.Create(DefaultDirectoryMode, true))
	assert.DirExists(t, path)
}

func TestDirectory_Fail_UnlinkNotEmpty(t *testing.T) {
	t.Parallel()

	path := t.TempDir()
	writeTestFile(t, path, "test.txt", "foo")

	err := newTestHandler().Directory(path).Unlink()
	require.ErrorIs(t, err, unix.ENOTEMPTY)
}

func TestDirectory_Fail_UnlinkMissing(t *testing.T) {
	t.Parallel()

	err := newTestHandler().Directory(filepath.Join(t.TempDir(), "missing")).Unlink()
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestDirectory_Success_Space(t *testing.T) {
	t.Parallel()

	dir := newTestHandler().Directory(t.TempDir())

	total, err := dir.TotalSpace()
	require.NoError(t, err)
	assert.Positive(t, total)

	free, err := dir.FreeSpace()
	require.NoError(t, err)
	assert.LessOrEqual(t, free, total)
}

func TestDirectory_Success_SpaceCalculation(t *testing.T) {
	t.Parallel()

	unixProv := &mockUnixProvider{}
	h := NewHandler(&schema.OS{}, unixProv)
	path := t.TempDir()

	unixProv.On("Statfs", path, mock.AnythingOfType("*unix.Statfs_t")).
		Run(func(args mock.Arguments) {
			buf, _ := args.Get(1).(*unix.Statfs_t)
			buf.Blocks = 1000
			buf.Bavail = 250
			buf.Bsize = 4096
		}).
		Return(nil).Once()

	usage, err := h.Directory(path).DiskUsage()
	require.NoError(t, err)
	assert.Equal(t, uint64(4096000), usage.TotalSize)
	assert.Equal(t, uint64(1024000), usage.FreeSpace)

	unixProv.AssertExpectations(t)
}

func TestDirectory_Fail_SpaceStatfs(t *testing.T) {
	t.Parallel()

	statfsErr := errors.New("statfs failed")

	unixProv := &mockUnixProvider{}
	h := NewHandler(&schema.OS{}, unixProv)
	path := t.TempDir()

	unixProv.On("Statfs", path, mock.Anything).Return(statfsErr).Once()

	_, err := h.Directory(path).FreeSpace()
	require.ErrorIs(t, err, statfsErr)

	unixProv.AssertExpectations(t)
}

func TestDirectory_Fail_SpaceNotDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	h := newTestHandler()

	_, err := h.Directory(filepath.Join(dir, "missing")).TotalSpace()
	require.ErrorIs(t, err, ErrNotDirectory)

	file := writeTestFile(t, dir, "test.txt", "foo")
	_, err = h.Directory(file).FreeSpace()
	require.ErrorIs(t, err, ErrNotDirectory)
}
