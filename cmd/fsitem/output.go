package main

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/desertwitch/fsitem/internal/filesystem"
	"github.com/dustin/go-humanize"
)

//nolint:gochecknoglobals
var (
	// directoryStyle defines the style for directory names.
	directoryStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	// unsupportedStyle defines the style for entries that are neither files
	// nor directories.
	unsupportedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240"))

	// labelStyle defines the style for labels of key-value output.
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(14) //nolint:mnd
)

const timeLayout = time.RFC3339

// nodeType returns a short name for the type of a [filesystem.Node].
func nodeType(node filesystem.Node) string {
	switch node.(type) {
	case *filesystem.File:
		return "file"
	case *filesystem.Directory:
		return "directory"
	default:
		return "unsupported"
	}
}

// styledName renders the base name of a node according to its type.
func styledName(node filesystem.Node) string {
	name := node.Base().Name()

	switch node.(type) {
	case *filesystem.Directory:
		return directoryStyle.Render(name + "/")
	case *filesystem.Unsupported:
		return unsupportedStyle.Render(name)
	default:
		return name
	}
}

// humanSize renders a size both in bytes and human-readable.
func humanSize(size uint64) string {
	return fmt.Sprintf("%s (%d bytes)", humanize.IBytes(size), size)
}

// printField prints one labeled line of key-value output.
func printField(w io.Writer, label string, value any) {
	fmt.Fprintf(w, "%s %v\n", labelStyle.Render(label+":"), value)
}
