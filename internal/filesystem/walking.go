package filesystem

import (
	"errors"
	"fmt"
)

// WalkOrder defines when [Walk] reports directories relative to their
// children.
type WalkOrder int

const (
	// SelfFirst reports a directory before its children.
	SelfFirst WalkOrder = iota
	// ChildrenFirst reports a directory after its children.
	ChildrenFirst
	// LeavesOnly reports only entries without children.
	LeavesOnly
)

// WalkFunc is called by [Walk] for every reported entry, with depth 0 for
// direct children of the root. Returning [SkipDir] for a directory (in
// [SelfFirst] order) skips its children, returning it for any other entry
// skips the remaining entries of the containing directory. Any other error
// stops the walk and is returned by [Walk].
type WalkFunc func(depth int, node Node) error

// Walk traverses the tree below root depth-first, using one
// [RecursiveDirectoryIterator] per directory level. All iterators are closed
// before Walk returns.
func Walk(root *Directory, order WalkOrder, fn WalkFunc) error {
	it, err := root.Iterator()
	if err != nil {
		return fmt.Errorf("(fs-walk) %w", err)
	}

	err = walkLevel(it, 0, order, fn)
	if cerr := it.Close(); err == nil && cerr != nil {
		err = cerr
	}

	return err
}

func walkLevel(it *RecursiveDirectoryIterator, depth int, order WalkOrder, fn WalkFunc) error {
	for err := it.Rewind(); it.Valid() || err != nil; err = it.Next() {
		if err != nil {
			return err
		}

		node := it.Current()

		if !it.HasChildren() {
			if err := fn(depth, node); err != nil {
				if errors.Is(err, SkipDir) {
					return nil
				}

				return err
			}

			continue
		}

		if order == SelfFirst {
			if err := fn(depth, node); err != nil {
				if errors.Is(err, SkipDir) {
					continue
				}

				return err
			}
		}

		if err := walkChildren(it, depth, order, fn); err != nil {
			return err
		}

		if order == ChildrenFirst {
			if err := fn(depth, node); err != nil && !errors.Is(err, SkipDir) {
				return err
			}
		}
	}

	return nil
}

func walkChildren(it *RecursiveDirectoryIterator, depth int, order WalkOrder, fn WalkFunc) error {
	child, err := it.Children()
	if err != nil {
		return err
	}
	defer child.Close()

	return walkLevel(child, depth+1, order, fn)
}
