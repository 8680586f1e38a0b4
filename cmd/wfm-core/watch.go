package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"wfm/internal/watcher"
)

var (
	watchDebounce   time.Duration
	watchMaxWatches int
)

var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "Subscribe to debounced, coalesced change notifications for a directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 0, "coalescing window (default 300ms)")
	watchCmd.Flags().IntVar(&watchMaxWatches, "max-watches", 0, "bound on concurrently active watches (default 10)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	wm, err := watcher.New(watcher.Options{Debounce: watchDebounce, MaxWatches: watchMaxWatches})
	if err != nil {
		return err
	}
	defer wm.Close()

	sub, err := wm.Watch(args[0])
	if err != nil {
		return err
	}
	defer sub.Close()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	defer signal.Stop(sigCh)

	fmt.Printf("watching %s (ctrl-c to stop)\n", args[0])
	for {
		select {
		case ev, ok := <-sub.Events:
			if !ok {
				return nil
			}
			if ev.Kind == watcher.Renamed {
				fmt.Printf("%s %s -> %s  %s\n", ev.Kind, ev.From, ev.Path, ev.Time.Format(time.RFC3339))
			} else {
				fmt.Printf("%s %s  %s\n", ev.Kind, ev.Path, ev.Time.Format(time.RFC3339))
			}
		case werr, ok := <-sub.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "watch error: %v\n", werr)
		case <-sigCh:
			return nil
		}
	}
}
