package filesystem

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Node is an [Item] that was classified by its type on the filesystem. It is
// implemented by [*File], [*Directory] and [*Unsupported] only, callers are
// expected to use a type switch on it.
type Node interface {
	Base() *Item
	isNode()
}

// Unsupported is a [Node] for an entry that is neither a regular file nor a
// directory (e.g. sockets, devices, FIFOs or dangling symbolic links).
type Unsupported struct {
	*Item
}

// Base returns the underlying [Item].
func (u *Unsupported) Base() *Item {
	return u.Item
}

func (*Unsupported) isNode() {}

// Classify is the factory for a path, returning a [*Directory] for a
// directory and a [*File] for a regular file. Any other path (including a
// missing one) results in an [ErrUnsupportedType].
func (h *Handler) Classify(path string) (Node, error) {
	st, err := h.stat(path)
	if err != nil {
		return nil, fmt.Errorf("(fs-classify) %w of %s: %w", ErrUnsupportedType, path, err)
	}

	switch st.Mode & unix.S_IFMT {
	case unix.S_IFDIR:
		return h.Directory(path), nil
	case unix.S_IFREG:
		return h.File(path), nil
	default:
		return nil, fmt.Errorf("(fs-classify) %w of %s: mode %o", ErrUnsupportedType, path, st.Mode&unix.S_IFMT)
	}
}

// Entry classifies a path like [Handler.Classify], but returns an
// [*Unsupported] instead of an error for paths that cannot be classified.
func (h *Handler) Entry(path string) Node {
	node, err := h.Classify(path)
	if err != nil {
		return &Unsupported{Item: h.Item(path)}
	}

	return node
}
