package filesystem

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTouch_Success(t *testing.T) {
	t.Parallel()

	path := writeTestFile(t, t.TempDir(), "test.txt", "foo")
	item := newTestHandler().Item(path)

	require.NoError(t, item.Touch(time.Unix(23, 0), time.Unix(42, 0)))

	mtime, err := item.ModificationTime()
	require.NoError(t, err)
	assert.Equal(t, int64(23), mtime.Unix())

	atime, err := item.AccessTime()
	require.NoError(t, err)
	assert.Equal(t, int64(42), atime.Unix())

	ctime, err := item.ChangeTime()
	require.NoError(t, err)
	assert.False(t, ctime.IsZero())
}

func TestTouch_Success_ZeroAccessTime(t *testing.T) {
	t.Parallel()

	path := writeTestFile(t, t.TempDir(), "test.txt", "foo")
	item := newTestHandler().Item(path)

	require.NoError(t, item.Touch(time.Unix(1337, 0), time.Time{}))

	atime, err := item.AccessTime()
	require.NoError(t, err)
	assert.Equal(t, int64(1337), atime.Unix())
}

func TestTouch_Success_ZeroModificationTime(t *testing.T) {
	t.Parallel()

	path := writeTestFile(t, t.TempDir(), "test.txt", "foo")
	item := newTestHandler().Item(path)

	require.NoError(t, item.Touch(time.Unix(23, 0), time.Unix(42, 0)))

	before := time.Now().Add(-time.Minute)
	require.NoError(t, item.Touch(time.Time{}, time.Time{}))

	mtime, err := item.ModificationTime()
	require.NoError(t, err)
	assert.True(t, mtime.After(before), "zero mtime should default to now")

	atime, err := item.AccessTime()
	require.NoError(t, err)
	assert.Equal(t, mtime.Unix(), atime.Unix())
}

func TestTouch_Success_Nanoseconds(t *testing.T) {
	t.Parallel()

	path := writeTestFile(t, t.TempDir(), "test.txt", "foo")
	item := newTestHandler().Item(path)

	mtime := time.Unix(1000, 500_000_000)
	require.NoError(t, item.Touch(mtime, time.Time{}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, mtime.Equal(info.ModTime()))
}

func TestTouch_Fail_Missing(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing")

	err := newTestHandler().Item(path).Touch(time.Now(), time.Time{})
	require.ErrorIs(t, err, os.ErrNotExist)
	assert.NoFileExists(t, path)
}
