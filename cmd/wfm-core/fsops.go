package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"wfm/internal/fsops"
)

var statCmd = &cobra.Command{
	Use:   "stat [path]",
	Short: "Show a single path's metadata, computing folder size asynchronously for directories",
	Args:  cobra.ExactArgs(1),
	RunE:  runStat,
}

var statWait bool

func init() {
	statCmd.Flags().BoolVar(&statWait, "wait", false, "block until a directory's recursive size finishes computing")
}

func runStat(cmd *cobra.Command, args []string) error {
	props, err := fsops.Get(mgr, args[0])
	if err != nil {
		return err
	}

	m := props.Meta
	fmt.Printf("path:     %s\n", m.Path)
	fmt.Printf("kind:     %s\n", m.Kind)
	fmt.Printf("size:     %d\n", m.Size)
	if m.Modified != nil {
		fmt.Printf("modified: %s\n", m.Modified.Format(time.RFC3339))
	}
	if m.LinkTarget != "" {
		fmt.Printf("target:   %s\n", m.LinkTarget)
	}

	if props.FolderStatsJob == nil {
		return nil
	}

	if !statWait {
		fmt.Printf("folder stats: job %d running, see `wfm-core jobs wait %d`\n", props.FolderStatsJob.ID, props.FolderStatsJob.ID)
		return nil
	}
	waitTerminal(props.FolderStatsJob)
	if stats := props.FolderStats.Get(); stats != nil {
		fmt.Printf("folder total size: %d bytes (%d files, %d dirs)\n", stats.TotalBytes, stats.FileCount, stats.DirCount)
	}
	return nil
}

var renameCmd = &cobra.Command{
	Use:   "rename [from] [to]",
	Short: "Rename or move a single path, failing if the destination exists",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return fsops.Rename(args[0], args[1])
	},
}

var mkdirCmd = &cobra.Command{
	Use:   "mkdir [path]",
	Short: "Create a directory, including any missing parents",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return fsops.Mkdir(args[0])
	},
}

var deletePermanent bool

var deleteCmd = &cobra.Command{
	Use:   "delete [paths...]",
	Short: "Delete paths, to the recycle bin unless --permanent is given",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return fsops.Delete(args, deletePermanent)
	},
}

func init() {
	deleteCmd.Flags().BoolVar(&deletePermanent, "permanent", false, "bypass the recycle bin")
}

var openCmd = &cobra.Command{
	Use:   "open [path]",
	Short: "Open a path with the OS-associated default application",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return fsops.OpenDefault(args[0])
	},
}
