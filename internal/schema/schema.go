// Package schema provides the implementations wrapping the (Unix-based)
// operating system calls that all other packages perform their filesystem
// interactions through. Packages declare the subset of methods they need as
// provider interfaces, so that tests can substitute them.
package schema
