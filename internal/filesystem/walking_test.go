package filesystem

import (
	"errors"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type walkEntry struct {
	depth int
	rel   string
}

func walkTree(t *testing.T, root string, order WalkOrder, fn func(rel string) error) ([]walkEntry, error) {
	t.Helper()

	var entries []walkEntry

	err := Walk(newTestHandler().Directory(root), order, func(depth int, node Node) error {
		path, err := node.Base().Path()
		require.NoError(t, err)

		rel, err := filepath.Rel(root, path)
		require.NoError(t, err)

		entries = append(entries, walkEntry{depth, rel})

		if fn != nil {
			return fn(rel)
		}

		return nil
	})

	return entries, err
}

func indexOf(entries []walkEntry, rel string) int {
	return slices.IndexFunc(entries, func(e walkEntry) bool {
		return e.rel == rel
	})
}

func TestWalk_Success_SelfFirst(t *testing.T) {
	t.Parallel()

	root := newTestTree(t)

	entries, err := walkTree(t, root, SelfFirst, nil)
	require.NoError(t, err)

	assert.Len(t, entries, 6)
	assert.Less(t, indexOf(entries, "b"), indexOf(entries, filepath.Join("b", "c.txt")))
	assert.Less(t, indexOf(entries, "b"), indexOf(entries, filepath.Join("b", "d")))

	assert.Equal(t, 0, entries[indexOf(entries, "b")].depth)
	assert.Equal(t, 1, entries[indexOf(entries, filepath.Join("b", "d"))].depth)
}

func TestWalk_Success_ChildrenFirst(t *testing.T) {
	t.Parallel()

	root := newTestTree(t)

	entries, err := walkTree(t, root, ChildrenFirst, nil)
	require.NoError(t, err)

	assert.Len(t, entries, 6)
	assert.Greater(t, indexOf(entries, "b"), indexOf(entries, filepath.Join("b", "c.txt")))
	assert.Greater(t, indexOf(entries, "b"), indexOf(entries, filepath.Join("b", "d")))
}

func TestWalk_Success_LeavesOnly(t *testing.T) {
	t.Parallel()

	root := newTestTree(t)

	entries, err := walkTree(t, root, LeavesOnly, nil)
	require.NoError(t, err)

	var rels []string
	for _, e := range entries {
		rels = append(rels, e.rel)
	}
	slices.Sort(rels)

	assert.Equal(t, []string{"a.txt", filepath.Join("b", "c.txt"), "e.txt"}, rels)
}

func TestWalk_Success_SkipDir(t *testing.T) {
	t.Parallel()

	root := newTestTree(t)

	entries, err := walkTree(t, root, SelfFirst, func(rel string) error {
		if rel == "b" {
			return SkipDir
		}

		return nil
	})
	require.NoError(t, err)

	assert.Len(t, entries, 3)
	assert.Equal(t, -1, indexOf(entries, filepath.Join("b", "c.txt")))
}

func TestWalk_Success_SkipDirOnFile(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTestFile(t, root, "x.txt", "x")
	writeTestFile(t, root, "y.txt", "y")
	writeTestFile(t, root, "z.txt", "z")

	entries, err := walkTree(t, root, SelfFirst, func(string) error {
		return SkipDir
	})
	require.NoError(t, err)

	assert.Len(t, entries, 1, "skipping on a file should skip its siblings")
}

func TestWalk_Fail_CallbackError(t *testing.T) {
	t.Parallel()

	root := newTestTree(t)
	stopErr := errors.New("stop")

	entries, err := walkTree(t, root, SelfFirst, func(string) error {
		return stopErr
	})
	require.ErrorIs(t, err, stopErr)
	assert.Len(t, entries, 1)
}

func TestWalk_Fail_Missing(t *testing.T) {
	t.Parallel()

	_, err := walkTree(t, filepath.Join(t.TempDir(), "missing"), SelfFirst, nil)
	require.Error(t, err)
}
