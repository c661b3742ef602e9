package main

import (
	"fmt"
	"time"

	"github.com/desertwitch/fsitem/internal/filesystem"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	formatText = "text"
	formatYAML = "yaml"
)

// statReport is the metadata of a path as printed by the stat command.
type statReport struct {
	Path        string           `yaml:"path"`
	RealPath    string           `yaml:"realPath"`
	Type        string           `yaml:"type"`
	Link        bool             `yaml:"link"`
	Size        int64            `yaml:"size"`
	Permissions string           `yaml:"permissions"`
	Owner       uint32           `yaml:"owner"`
	Group       uint32           `yaml:"group"`
	Inode       uint64           `yaml:"inode"`
	Readable    bool             `yaml:"readable"`
	Writable    bool             `yaml:"writable"`
	Executable  bool             `yaml:"executable"`
	AccessTime  time.Time        `yaml:"accessTime"`
	ModifyTime  time.Time        `yaml:"modificationTime"`
	ChangeTime  time.Time        `yaml:"changeTime"`
	Stats       filesystem.Stats `yaml:"stats"`
}

func newStatCommand(app *App) *cobra.Command {
	var format string
	var raw bool

	cmd := &cobra.Command{
		Use:   "stat PATH",
		Short: "Print the metadata of a path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatText && format != formatYAML {
				return fmt.Errorf("(cli-stat) %w: %q", errUnknownFormat, format)
			}

			report, err := buildStatReport(app.fsHandler.Entry(args[0]))
			if err != nil {
				return fmt.Errorf("(cli-stat) %w", err)
			}

			if format == formatYAML {
				data, err := yaml.Marshal(report)
				if err != nil {
					return fmt.Errorf("(cli-stat) failed to marshal: %w", err)
				}
				_, err = cmd.OutOrStdout().Write(data)

				return err
			}

			printStatReport(cmd, report, raw)

			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", formatText, "output format (text, yaml)")
	cmd.Flags().BoolVar(&raw, "raw", false, "also print the raw stat(2) fields (text format)")

	return cmd
}

func buildStatReport(node filesystem.Node) (*statReport, error) {
	item := node.Base()

	stats, err := item.Stats()
	if err != nil {
		return nil, err
	}

	perms, err := item.Permissions()
	if err != nil {
		return nil, err
	}

	report := &statReport{
		Path:        item.String(),
		Type:        nodeType(node),
		Link:        item.IsLink(),
		Size:        stats[filesystem.StatSize],
		Permissions: fmt.Sprintf("%04o", perms&0o7777), //nolint:mnd
		Owner:       uint32(stats[filesystem.StatUID]),  //nolint:gosec
		Group:       uint32(stats[filesystem.StatGID]),  //nolint:gosec
		Inode:       uint64(stats[filesystem.StatIno]),  //nolint:gosec
		Readable:    item.IsReadable(),
		Writable:    item.IsWritable(),
		Executable:  item.IsExecutable(),
		AccessTime:  time.Unix(stats[filesystem.StatAtime], 0),
		ModifyTime:  time.Unix(stats[filesystem.StatMtime], 0),
		ChangeTime:  time.Unix(stats[filesystem.StatCtime], 0),
		Stats:       stats,
	}

	if resolved, err := item.RealPath(); err == nil {
		report.RealPath = resolved
	}

	return report, nil
}

func printStatReport(cmd *cobra.Command, r *statReport, raw bool) {
	w := cmd.OutOrStdout()

	printField(w, "Path", r.Path)
	printField(w, "Real path", r.RealPath)
	printField(w, "Type", r.Type)
	printField(w, "Link", r.Link)
	printField(w, "Size", humanSize(uint64(r.Size))) //nolint:gosec
	printField(w, "Permissions", r.Permissions)
	printField(w, "Owner", fmt.Sprintf("%d:%d", r.Owner, r.Group))
	printField(w, "Inode", r.Inode)
	printField(w, "Access", fmt.Sprintf("r=%t w=%t x=%t", r.Readable, r.Writable, r.Executable))
	printField(w, "Accessed", r.AccessTime.Format(timeLayout))
	printField(w, "Modified", r.ModifyTime.Format(timeLayout))
	printField(w, "Changed", r.ChangeTime.Format(timeLayout))

	if !raw {
		return
	}

	for _, key := range filesystem.StatKeys {
		printField(w, key, r.Stats[key])
	}
}
