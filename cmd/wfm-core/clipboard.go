package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"wfm/internal/clipboard"
	"wfm/internal/conflict"
)

var clipboardCmd = &cobra.Command{
	Use:   "clipboard",
	Short: "Write or read the platform file-list clipboard, or paste it as a transfer job",
}

var clipboardCopyCmd = &cobra.Command{
	Use:   "copy [paths...]",
	Short: "Place paths on the clipboard tagged as a copy",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return clipboard.Write(args, clipboard.EffectCopy)
	},
}

var clipboardCutCmd = &cobra.Command{
	Use:   "cut [paths...]",
	Short: "Place paths on the clipboard tagged as a cut",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return clipboard.Write(args, clipboard.EffectCut)
	},
}

var clipboardShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the clipboard's current file list and effect",
	RunE:  runClipboardShow,
}

var (
	clipboardPastePolicy string
	clipboardPasteWait   bool
)

var clipboardPasteCmd = &cobra.Command{
	Use:   "paste [dest_dir]",
	Short: "Start a transfer job from the clipboard's current file list",
	Args:  cobra.ExactArgs(1),
	RunE:  runClipboardPaste,
}

func init() {
	clipboardCmd.AddCommand(clipboardCopyCmd)
	clipboardCmd.AddCommand(clipboardCutCmd)
	clipboardCmd.AddCommand(clipboardShowCmd)
	clipboardCmd.AddCommand(clipboardPasteCmd)

	clipboardPasteCmd.Flags().StringVar(&clipboardPastePolicy, "conflict", "ask", "conflict policy: overwrite|skip|rename|keep_newer|keep_larger|ask")
	clipboardPasteCmd.Flags().BoolVar(&clipboardPasteWait, "wait", false, "block until the paste job finishes")
}

func runClipboardShow(cmd *cobra.Command, args []string) error {
	content, err := clipboard.Read()
	if err != nil {
		return err
	}
	fmt.Printf("effect: %s\n", content.Effect)
	for _, p := range content.Paths {
		fmt.Println(p)
	}
	return nil
}

func runClipboardPaste(cmd *cobra.Command, args []string) error {
	policy, err := parseConflictPolicy(clipboardPastePolicy)
	if err != nil {
		return err
	}

	job, result, err := clipboard.Paste(mgr, args[0], policy)
	if err != nil {
		return err
	}
	fmt.Printf("started job %d\n", job.ID)

	if !clipboardPasteWait {
		return nil
	}
	runEventLoop(job)
	printReport(result.Get())
	return nil
}

func parseConflictPolicy(s string) (conflict.Policy, error) {
	switch conflict.Policy(s) {
	case conflict.PolicyOverwrite, conflict.PolicySkip, conflict.PolicyRename,
		conflict.PolicyKeepNewer, conflict.PolicyKeepLarger, conflict.PolicyAsk:
		return conflict.Policy(s), nil
	default:
		return "", fmt.Errorf("unknown conflict policy %q", s)
	}
}
