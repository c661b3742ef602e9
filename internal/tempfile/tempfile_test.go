package tempfile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertwitch/fsitem/internal/filesystem"
	"github.com/desertwitch/fsitem/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockOsProvider passes all calls through to [schema.OS], except for file
// creation.
type mockOsProvider struct {
	schema.OS
	mock.Mock
}

func (m *mockOsProvider) OpenFile(name string, flag int, perm os.FileMode) (*os.File, error) {
	args := m.Called(name, flag, perm)

	fh, _ := args.Get(0).(*os.File)

	return fh, args.Error(1)
}

func newTestHandler() *filesystem.Handler {
	return filesystem.NewHandler(&schema.OS{}, &schema.Unix{})
}

func TestTempFile_Success_Lifecycle(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tmp := New(newTestHandler(), &schema.OS{}, WithDirectory(dir))

	assert.False(t, tmp.HasPath(), "no file should be created before first access")
	assert.Zero(t, tmp.CreatedInode())

	path, err := tmp.Path()
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasPrefix(filepath.Base(path), DefaultPrefix))
	assert.FileExists(t, path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	inode, err := tmp.Inode()
	require.NoError(t, err)
	assert.Equal(t, inode, tmp.CreatedInode())

	require.NoError(t, tmp.SetContent([]byte("foobar")))
	data, err := tmp.Slice(-3, 3)
	require.NoError(t, err)
	assert.Equal(t, "bar", string(data))

	require.NoError(t, tmp.Close())
	assert.NoFileExists(t, path)

	require.NoError(t, tmp.Close(), "close should be idempotent")
}

func TestTempFile_Success_Prefix(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tmp := New(newTestHandler(), &schema.OS{}, WithDirectory(dir), WithPrefix("job_"))
	defer tmp.Close()

	assert.Equal(t, "job_", tmp.Prefix())
	assert.True(t, strings.HasPrefix(tmp.Name(), "job_"))
}

func TestTempFile_Success_DefaultDirectory(t *testing.T) {
	t.Parallel()

	tmp := New(newTestHandler(), &schema.OS{})
	defer tmp.Close()

	assert.Equal(t, os.TempDir(), tmp.Directory())
}

func TestTempFile_Success_UniquePaths(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	h := newTestHandler()

	first := New(h, &schema.OS{}, WithDirectory(dir))
	defer first.Close()
	second := New(h, &schema.OS{}, WithDirectory(dir))
	defer second.Close()

	assert.NotEqual(t, first.Name(), second.Name())
}

func TestTempFile_Success_CloseWithoutAccess(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tmp := New(newTestHandler(), &schema.OS{}, WithDirectory(dir))

	require.NoError(t, tmp.Close())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = tmp.Path()
	require.ErrorIs(t, err, ErrClosed)
}

func TestTempFile_Success_SkipsReplacedFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tmp := New(newTestHandler(), &schema.OS{}, WithDirectory(dir))

	path, err := tmp.Path()
	require.NoError(t, err)

	other := filepath.Join(dir, "other")
	require.NoError(t, os.WriteFile(other, []byte("replacement"), 0o644))
	require.NoError(t, os.Rename(other, path))

	require.NoError(t, tmp.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err, "a replaced file should not be removed")
	assert.Equal(t, "replacement", string(data))
}

func TestTempFile_Success_SkipsRenamedAway(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tmp := New(newTestHandler(), &schema.OS{}, WithDirectory(dir))

	require.NoError(t, tmp.SetContent([]byte("keep")))

	kept, err := tmp.Rename(filepath.Join(dir, "kept.txt"))
	require.NoError(t, err)

	require.NoError(t, tmp.Close())

	content, err := kept.Content()
	require.NoError(t, err)
	assert.Equal(t, "keep", string(content))
}

func TestTempFile_Success_HardLinkDoesNotPreventRemoval(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tmp := New(newTestHandler(), &schema.OS{}, WithDirectory(dir))

	path, err := tmp.Path()
	require.NoError(t, err)

	hard := filepath.Join(dir, "hard")
	require.NoError(t, tmp.CreateHardLink(hard))

	require.NoError(t, tmp.Close())
	assert.NoFileExists(t, path)
	assert.FileExists(t, hard)
}

func TestTempFile_Fail_Create(t *testing.T) {
	t.Parallel()

	createErr := errors.New("disk full")

	osProv := &mockOsProvider{}
	osProv.On("OpenFile", mock.Anything, mock.Anything, os.FileMode(0o600)).Return(nil, createErr).Once()

	tmp := New(newTestHandler(), osProv, WithDirectory(t.TempDir()))

	_, err := tmp.Path()
	require.ErrorIs(t, err, createErr)
	assert.False(t, tmp.HasPath())

	require.NoError(t, tmp.Close())

	osProv.AssertExpectations(t)
}

func TestTempFile_Fail_MissingDirectory(t *testing.T) {
	t.Parallel()

	tmp := New(newTestHandler(), &schema.OS{}, WithDirectory(filepath.Join(t.TempDir(), "missing")))

	_, err := tmp.Path()
	require.ErrorIs(t, err, os.ErrNotExist)
}
