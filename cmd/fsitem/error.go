package main

import "errors"

var (
	// errUnknownFormat occurs when an output format is requested that the
	// command does not support.
	errUnknownFormat = errors.New("unknown output format")

	// errUnknownOrder occurs when a walk order is requested that does not
	// exist.
	errUnknownOrder = errors.New("unknown walk order")

	// errNotFile occurs when a command expecting a regular file is given any
	// other type of path.
	errNotFile = errors.New("not a regular file")
)
