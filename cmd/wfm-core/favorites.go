package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "Manage the persistent Quick Access favorites list",
}

var favoritesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List favorites in order",
	RunE:  runFavoritesList,
}

var favoritesAddCmd = &cobra.Command{
	Use:   "add [name] [path]",
	Short: "Add a favorite",
	Args:  cobra.ExactArgs(2),
	RunE:  runFavoritesAdd,
}

var favoritesRemoveCmd = &cobra.Command{
	Use:   "remove [id]",
	Short: "Remove a favorite by ID",
	Args:  cobra.ExactArgs(1),
	RunE:  runFavoritesRemove,
}

var favoritesRenameCmd = &cobra.Command{
	Use:   "rename [id] [name]",
	Short: "Rename a favorite",
	Args:  cobra.ExactArgs(2),
	RunE:  runFavoritesRename,
}

var favoritesReorderCmd = &cobra.Command{
	Use:   "reorder [id...]",
	Short: "Reorder favorites; must name every existing ID exactly once",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFavoritesReorder,
}

func init() {
	favoritesCmd.AddCommand(favoritesListCmd)
	favoritesCmd.AddCommand(favoritesAddCmd)
	favoritesCmd.AddCommand(favoritesRemoveCmd)
	favoritesCmd.AddCommand(favoritesRenameCmd)
	favoritesCmd.AddCommand(favoritesReorderCmd)
}

func runFavoritesList(cmd *cobra.Command, args []string) error {
	cfg, err := cfgManager.Load()
	if err != nil {
		return err
	}
	for _, f := range cfg.FavoriteList() {
		fmt.Printf("%s\t%s\t%s\n", f.ID, f.Name, f.Path)
	}
	return nil
}

func runFavoritesAdd(cmd *cobra.Command, args []string) error {
	cfg, err := cfgManager.Load()
	if err != nil {
		return err
	}
	id := cfg.AddFavorite(args[0], args[1])
	if err := cfgManager.Save(cfg); err != nil {
		return err
	}
	fmt.Println(id)
	return nil
}

func runFavoritesRemove(cmd *cobra.Command, args []string) error {
	cfg, err := cfgManager.Load()
	if err != nil {
		return err
	}
	cfg.RemoveFavorite(args[0])
	return cfgManager.Save(cfg)
}

func runFavoritesRename(cmd *cobra.Command, args []string) error {
	cfg, err := cfgManager.Load()
	if err != nil {
		return err
	}
	if err := cfg.RenameFavorite(args[0], args[1]); err != nil {
		return err
	}
	return cfgManager.Save(cfg)
}

func runFavoritesReorder(cmd *cobra.Command, args []string) error {
	cfg, err := cfgManager.Load()
	if err != nil {
		return err
	}
	if err := cfg.Reorder(args); err != nil {
		return err
	}
	return cfgManager.Save(cfg)
}
