package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"wfm/internal/enum"
	"wfm/internal/model"
)

var (
	listShowHidden bool
	listShowSystem bool
	listSortBy     string
	listDesc       bool
	listDirsFirst  bool
	listPattern    string
)

var listCmd = &cobra.Command{
	Use:   "list [path]",
	Short: "List a directory's children",
	Args:  cobra.ExactArgs(1),
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listShowHidden, "hidden", false, "include hidden entries")
	listCmd.Flags().BoolVar(&listShowSystem, "system", false, "include system entries")
	listCmd.Flags().StringVar(&listSortBy, "sort", "name", "sort field: name|size|modified|created|extension|kind")
	listCmd.Flags().BoolVar(&listDesc, "desc", false, "sort descending")
	listCmd.Flags().BoolVar(&listDirsFirst, "dirs-first", true, "list directories before files")
	listCmd.Flags().StringVar(&listPattern, "filter", "", "case-insensitive substring filter on name")
}

func parseSortField(s string) (model.SortField, error) {
	switch strings.ToLower(s) {
	case "name":
		return model.SortByName, nil
	case "size":
		return model.SortBySize, nil
	case "modified":
		return model.SortByModified, nil
	case "created":
		return model.SortByCreated, nil
	case "extension":
		return model.SortByExtension, nil
	case "kind":
		return model.SortByKind, nil
	default:
		return 0, fmt.Errorf("unknown sort field %q", s)
	}
}

func runList(cmd *cobra.Command, args []string) error {
	field, err := parseSortField(listSortBy)
	if err != nil {
		return err
	}
	order := model.Ascending
	if listDesc {
		order = model.Descending
	}

	listing, err := enum.List(args[0], model.SortSpec{
		Field:            field,
		Order:            order,
		DirectoriesFirst: listDirsFirst,
	}, model.FilterSpec{
		ShowHidden: listShowHidden,
		ShowSystem: listShowSystem,
		Pattern:    listPattern,
	})
	if err != nil {
		return err
	}

	for _, e := range listing.Entries {
		kind := "-"
		switch e.Kind {
		case model.KindDirectory:
			kind = "d"
		case model.KindSymlink:
			kind = "l"
		case model.KindJunction:
			kind = "j"
		}
		size := model.FormatSize(e.Size)
		if e.Kind == model.KindDirectory || e.Kind == model.KindJunction {
			size = "-"
		}
		fmt.Fprintf(os.Stdout, "%s %10s  %s\n", kind, size, e.Name)
	}
	fmt.Fprintf(os.Stderr, "%d files, %d dirs, %s total\n", listing.FileCount, listing.DirCount, model.FormatSize(listing.TotalSize))
	return nil
}
