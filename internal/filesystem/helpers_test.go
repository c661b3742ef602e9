package filesystem

import (
	"os"
	"os/user"
	"path/filepath"
	"testing"

	"github.com/desertwitch/fsitem/internal/schema"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

// mockUnixProvider passes all calls through to [schema.Unix], except for
// those that need privileges or a broken filesystem to fail, which are
// served by the embedded [mock.Mock].
type mockUnixProvider struct {
	schema.Unix
	mock.Mock
}

func (m *mockUnixProvider) Chown(path string, uid, gid int) error {
	args := m.Called(path, uid, gid)

	return args.Error(0)
}

func (m *mockUnixProvider) Statfs(path string, buf *unix.Statfs_t) error {
	args := m.Called(path, buf)

	return args.Error(0)
}

// mockOsProvider passes all calls through to [schema.OS], except for the
// group lookup.
type mockOsProvider struct {
	schema.OS
	mock.Mock
}

func (m *mockOsProvider) LookupGroup(name string) (*user.Group, error) {
	args := m.Called(name)

	group, _ := args.Get(0).(*user.Group)

	return group, args.Error(1)
}

func newTestHandler(opts ...Option) *Handler {
	return NewHandler(&schema.OS{}, &schema.Unix{}, opts...)
}

// writeTestFile creates a file with content and mode 0644 below dir.
func writeTestFile(t *testing.T, dir string, name string, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	require.NoError(t, os.Chmod(path, 0o644))

	return path
}

// staticAllocator is a [PathAllocator] handing out a fixed path once.
type staticAllocator struct {
	path  string
	err   error
	calls int
}

func (a *staticAllocator) Allocate() (string, error) {
	a.calls++

	return a.path, a.err
}
