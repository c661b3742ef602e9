package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/desertwitch/fsitem/internal/filesystem"
	"github.com/desertwitch/fsitem/internal/tempfile"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// regularFile classifies a path and returns it as a [filesystem.File].
func (app *App) regularFile(path string) (*filesystem.File, error) {
	node, err := app.fsHandler.Classify(path)
	if err != nil {
		return nil, err
	}

	file, ok := node.(*filesystem.File)
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, errNotFile)
	}

	return file, nil
}

func newCatCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "cat FILE",
		Short: "Print the content of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := app.regularFile(args[0])
			if err != nil {
				return fmt.Errorf("(cli-cat) %w", err)
			}

			data, err := file.Content()
			if err != nil {
				return fmt.Errorf("(cli-cat) %w", err)
			}

			_, err = cmd.OutOrStdout().Write(data)

			return err
		},
	}
}

func newSliceCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "slice FILE OFFSET [LENGTH]",
		Short: "Print part of the content of a file",
		Long: `Print LENGTH bytes of a file starting at OFFSET, or everything from OFFSET
on if LENGTH is omitted. A negative OFFSET counts from the end of the file.`,
		Args: cobra.RangeArgs(2, 3), //nolint:mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			offset, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("(cli-slice) invalid offset: %w", err)
			}

			file, err := app.regularFile(args[0])
			if err != nil {
				return fmt.Errorf("(cli-slice) %w", err)
			}

			var data []byte
			if len(args) == 3 { //nolint:mnd
				length, perr := strconv.ParseInt(args[2], 10, 64)
				if perr != nil {
					return fmt.Errorf("(cli-slice) invalid length: %w", perr)
				}
				data, err = file.Slice(offset, length)
			} else {
				data, err = file.SliceFrom(offset)
			}
			if err != nil {
				return fmt.Errorf("(cli-slice) %w", err)
			}

			_, err = cmd.OutOrStdout().Write(data)

			return err
		},
	}
}

func newTempCommand(app *App) *cobra.Command {
	var buffered bool
	var maxMemory string

	cmd := &cobra.Command{
		Use:   "temp",
		Short: "Write standard input into a temporary file and dispose of it",
		Long: `Write standard input into a temporary file, print where it was stored and
how large it got, then dispose of it again. With --buffered the content is
held in memory until it exceeds --max-memory, and only then moves to disk.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var limit int64
			if maxMemory != "" {
				size, err := humanize.ParseBytes(maxMemory)
				if err != nil {
					return fmt.Errorf("(cli-temp) invalid max memory: %w", err)
				}
				limit = int64(size) //nolint:gosec
			}

			if buffered {
				return runBufferedTemp(cmd, app.NewBufferedTempFile(limit))
			}

			return runTemp(cmd, app)
		},
	}

	cmd.Flags().BoolVar(&buffered, "buffered", false, "hold the content in memory up to --max-memory")
	cmd.Flags().StringVar(&maxMemory, "max-memory", "", "in-memory limit for --buffered, e.g. 4MiB")

	return cmd
}

func runTemp(cmd *cobra.Command, app *App) error {
	tmp := app.NewTempFile()
	defer tmp.Close()

	fh, err := tmp.Open(filesystem.ModeWrite)
	if err != nil {
		return fmt.Errorf("(cli-temp) %w", err)
	}

	if _, err := io.Copy(fh, cmd.InOrStdin()); err != nil {
		fh.Close()

		return fmt.Errorf("(cli-temp) failed to write: %w", err)
	}

	if err := fh.Close(); err != nil {
		return fmt.Errorf("(cli-temp) failed to close: %w", err)
	}

	size, err := tmp.Size()
	if err != nil {
		return fmt.Errorf("(cli-temp) %w", err)
	}

	w := cmd.OutOrStdout()
	printField(w, "Path", tmp.String())
	printField(w, "Inode", tmp.CreatedInode())
	printField(w, "Size", humanSize(uint64(size))) //nolint:gosec

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("(cli-temp) %w", err)
	}
	printField(w, "Removed", !tmp.Exists())

	return nil
}

func runBufferedTemp(cmd *cobra.Command, tmp *tempfile.BufferedTempFile) error {
	defer tmp.Close()

	if _, err := io.Copy(tmp, cmd.InOrStdin()); err != nil {
		return fmt.Errorf("(cli-temp) failed to write: %w", err)
	}

	w := cmd.OutOrStdout()
	printField(w, "Path", tmp.Path())
	printField(w, "Size", humanSize(uint64(tmp.Size()))) //nolint:gosec
	printField(w, "Spilled", tmp.Spilled())

	if tmp.Spilled() {
		disk, err := tmp.DiskFile()
		if err != nil {
			return fmt.Errorf("(cli-temp) %w", err)
		}
		printField(w, "Disk file", disk.String())
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("(cli-temp) %w", err)
	}

	return nil
}
