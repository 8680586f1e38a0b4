package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"wfm/internal/config"
	"wfm/internal/jobs"
)

var version = "0.1.0"

// mgr is the process-wide job queue every job-producing subcommand
// (transfer, clipboard paste, properties) enqueues onto.
var mgr = jobs.GetManager()

// cfgManager is the single on-disk configuration document shared by the
// favorites subcommand.
var cfgManager = config.NewManager()

var debug bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "wfm-core",
	Short: "Command-line front end for the wfm file manager core",
	Long: `wfm-core drives the file manager's domain kernel and Transfer
Engine directly from the shell: directory listings, single-item commands
(rename, mkdir, delete, properties), drive enumeration, favorites,
clipboard-backed copy/cut/paste, directory watching, and transfer jobs
with pause/resume/cancel.`,
}

func init() {
	rootCmd.Version = version
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable verbose job logging to stderr")
	cobra.OnInitialize(func() {
		if debug {
			jobs.SetDebug(func(format string, args ...interface{}) {
				fmt.Fprintf(os.Stderr, format+"\n", args...)
			})
		}
	})

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(statCmd)
	rootCmd.AddCommand(renameCmd)
	rootCmd.AddCommand(mkdirCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(drivesCmd)
	rootCmd.AddCommand(favoritesCmd)
	rootCmd.AddCommand(clipboardCmd)
	rootCmd.AddCommand(transferCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(jobsCmd)
}
