package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/desertwitch/fsitem/internal/filesystem"
	"github.com/spf13/cobra"
)

// parseMode parses an octal permission mode such as "0755" or "644".
func parseMode(mode string) (uint32, error) {
	perm, err := strconv.ParseUint(mode, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid mode %q: %w", mode, err)
	}

	return uint32(perm), nil
}

// parseTime parses an RFC 3339 time or a Unix timestamp in seconds. An empty
// value returns the zero time.
func parseTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}

	if secs, err := strconv.ParseInt(value, 10, 64); err == nil {
		return time.Unix(secs, 0), nil
	}

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: %w", value, err)
	}

	return t, nil
}

func newChmodCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "chmod MODE PATH",
		Short: "Change the permissions of a path",
		Args:  cobra.ExactArgs(2), //nolint:mnd
		RunE: func(_ *cobra.Command, args []string) error {
			mode, err := parseMode(args[0])
			if err != nil {
				return fmt.Errorf("(cli-chmod) %w", err)
			}

			if err := app.fsHandler.Item(args[1]).SetPermissions(mode); err != nil {
				return fmt.Errorf("(cli-chmod) %w", err)
			}

			return nil
		},
	}
}

func newTouchCommand(app *App) *cobra.Command {
	var mtime, atime string

	cmd := &cobra.Command{
		Use:   "touch PATH",
		Short: "Set the access and modification times of a path",
		Long: `Set the access and modification times of an existing path. Times are given
as RFC 3339 or Unix seconds. The modification time defaults to now, the
access time defaults to the modification time.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			mt, err := parseTime(mtime)
			if err != nil {
				return fmt.Errorf("(cli-touch) %w", err)
			}

			at, err := parseTime(atime)
			if err != nil {
				return fmt.Errorf("(cli-touch) %w", err)
			}

			if err := app.fsHandler.Item(args[0]).Touch(mt, at); err != nil {
				return fmt.Errorf("(cli-touch) %w", err)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&mtime, "mtime", "", "modification time")
	cmd.Flags().StringVar(&atime, "atime", "", "access time")

	return cmd
}

func newCopyCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "cp SRC DST",
		Short: "Copy a file, verifying the copy by checksum",
		Args:  cobra.ExactArgs(2), //nolint:mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := app.regularFile(args[0])
			if err != nil {
				return fmt.Errorf("(cli-cp) %w", err)
			}

			dst, err := file.Copy(args[1])
			if err != nil {
				return fmt.Errorf("(cli-cp) %w", err)
			}

			size, err := dst.Size()
			if err != nil {
				return fmt.Errorf("(cli-cp) %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s (%s)\n", file, dst, humanSize(uint64(size))) //nolint:gosec

			return nil
		},
	}
}

func newMoveCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "mv SRC DST",
		Short: "Rename a path",
		Args:  cobra.ExactArgs(2), //nolint:mnd
		RunE: func(_ *cobra.Command, args []string) error {
			if _, err := app.fsHandler.Item(args[0]).Rename(args[1]); err != nil {
				return fmt.Errorf("(cli-mv) %w", err)
			}

			return nil
		},
	}
}

func newLinkCommand(app *App) *cobra.Command {
	var symbolic bool

	cmd := &cobra.Command{
		Use:   "ln SRC DST",
		Short: "Create a hard link (or with -s a symbolic link) at DST",
		Args:  cobra.ExactArgs(2), //nolint:mnd
		RunE: func(_ *cobra.Command, args []string) error {
			if symbolic {
				if err := app.fsHandler.Item(args[0]).Link(args[1]); err != nil {
					return fmt.Errorf("(cli-ln) %w", err)
				}

				return nil
			}

			file, err := app.regularFile(args[0])
			if err != nil {
				return fmt.Errorf("(cli-ln) %w", err)
			}

			if err := file.CreateHardLink(args[1]); err != nil {
				return fmt.Errorf("(cli-ln) %w", err)
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&symbolic, "symbolic", "s", false, "create a symbolic link")

	return cmd
}

func newRemoveCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm FILE",
		Short: "Remove a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := app.fsHandler.File(args[0]).Unlink(); err != nil {
				return fmt.Errorf("(cli-rm) %w", err)
			}

			return nil
		},
	}
}

func newMkdirCommand(app *App) *cobra.Command {
	var parents bool
	var mode string

	cmd := &cobra.Command{
		Use:   "mkdir DIR",
		Short: "Create a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			perm, err := parseMode(mode)
			if err != nil {
				return fmt.Errorf("(cli-mkdir) %w", err)
			}

			if err := app.fsHandler.Directory(args[0]).Create(perm, parents); err != nil {
				return fmt.Errorf("(cli-mkdir) %w", err)
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&parents, "parents", "p", false, "create missing parent directories")
	cmd.Flags().StringVar(&mode, "mode", fmt.Sprintf("%04o", filesystem.DefaultDirectoryMode), "permissions of the directory")

	return cmd
}

func newRmdirCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rmdir DIR",
		Short: "Remove an empty directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := app.fsHandler.Directory(args[0]).Unlink(); err != nil {
				return fmt.Errorf("(cli-rmdir) %w", err)
			}

			return nil
		},
	}
}

func newSpaceCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "space DIR",
		Short: "Print the total and free space of the filesystem holding a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			usage, err := app.fsHandler.Directory(args[0]).DiskUsage()
			if err != nil {
				return fmt.Errorf("(cli-space) %w", err)
			}

			w := cmd.OutOrStdout()
			printField(w, "Total", humanSize(usage.TotalSize))
			printField(w, "Free", humanSize(usage.FreeSpace))

			return nil
		},
	}
}
