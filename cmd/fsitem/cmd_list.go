package main

import (
	"fmt"
	"strings"

	"github.com/desertwitch/fsitem/internal/filesystem"
	"github.com/spf13/cobra"
)

func newListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ls DIR",
		Short: "List the entries of a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			it, err := app.fsHandler.NewDirectoryIterator(args[0])
			if err != nil {
				return fmt.Errorf("(cli-ls) %w", err)
			}
			defer it.Close()

			w := cmd.OutOrStdout()
			for _, node := range it.All() {
				size, _ := node.Base().Size()
				fmt.Fprintf(w, "%-11s %10d  %s\n", nodeType(node), size, styledName(node))
			}

			if err := it.Err(); err != nil {
				return fmt.Errorf("(cli-ls) %w", err)
			}

			return nil
		},
	}
}

func parseWalkOrder(order string) (filesystem.WalkOrder, error) {
	switch order {
	case "self":
		return filesystem.SelfFirst, nil
	case "children":
		return filesystem.ChildrenFirst, nil
	case "leaves":
		return filesystem.LeavesOnly, nil
	default:
		return 0, fmt.Errorf("%w: %q", errUnknownOrder, order)
	}
}

func newTreeCommand(app *App) *cobra.Command {
	var order string
	var maxDepth int

	cmd := &cobra.Command{
		Use:   "tree DIR",
		Short: "Print the tree below a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			walkOrder, err := parseWalkOrder(order)
			if err != nil {
				return fmt.Errorf("(cli-tree) %w", err)
			}

			root := app.fsHandler.Directory(args[0])
			if !root.IsDirectory() {
				return fmt.Errorf("(cli-tree) %s: %w", args[0], filesystem.ErrNotDirectory)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, directoryStyle.Render(args[0]))

			var files, dirs int
			err = filesystem.Walk(root, walkOrder, func(depth int, node filesystem.Node) error {
				fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth+1), styledName(node))

				if _, ok := node.(*filesystem.Directory); !ok {
					files++

					return nil
				}
				dirs++

				if maxDepth >= 0 && depth >= maxDepth {
					return filesystem.SkipDir
				}

				return nil
			})
			if err != nil {
				return fmt.Errorf("(cli-tree) %w", err)
			}

			fmt.Fprintf(w, "\n%d directories, %d other entries\n", dirs, files)

			return nil
		},
	}

	cmd.Flags().StringVar(&order, "order", "self", "walk order (self, children, leaves)")
	cmd.Flags().IntVar(&maxDepth, "max-depth", -1, "do not descend below this depth (self order only)")

	return cmd
}
