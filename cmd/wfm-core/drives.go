package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"wfm/internal/drives"
	"wfm/internal/model"
)

var drivesCmd = &cobra.Command{
	Use:   "drives",
	Short: "List the volumes visible to this machine",
	RunE:  runDrives,
}

func runDrives(cmd *cobra.Command, args []string) error {
	list, err := drives.ListDrives()
	if err != nil {
		return err
	}
	for _, d := range list {
		free := "-"
		total := "-"
		if d.FreeBytes != nil {
			free = model.FormatSize(int64(*d.FreeBytes))
		}
		if d.TotalBytes != nil {
			total = model.FormatSize(int64(*d.TotalBytes))
		}
		ready := ""
		if !d.IsReady {
			ready = " (not ready)"
		}
		fmt.Printf("%-8s %-10s %10s free / %10s total  %s%s\n", d.Path, d.DriveType, free, total, d.Label, ready)
	}
	return nil
}
