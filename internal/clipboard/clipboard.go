// Package clipboard bridges the OS file-list clipboard format: CF_HDROP
// read/write plus the "Preferred DropEffect" atom that distinguishes a copy
// from a cut, and the paste-to-transfer-job glue.
package clipboard

import (
	"errors"

	"wfm/internal/conflict"
	"wfm/internal/executor"
	"wfm/internal/jobs"
	"wfm/internal/planner"
)

// Effect records whether the clipboard's file list was cut or copied; a
// reader that honors the Preferred DropEffect atom uses this to decide
// move vs copy.
type Effect string

const (
	EffectCopy Effect = "copy"
	EffectCut  Effect = "cut"
)

// ErrEmpty is returned by Read when the clipboard holds no file-list
// content.
var ErrEmpty = errors.New("clipboard: no file list present")

var errNoPaths = errors.New("clipboard: no paths to write")

// Content is what Read returns: the path list plus the effect its writer
// recorded.
type Content struct {
	Paths  []string
	Effect Effect
}

// Write places paths on the clipboard as a file-list, tagged with effect.
func Write(paths []string, effect Effect) error {
	return platformWrite(paths, effect)
}

// Read returns the current file-list clipboard content. It returns
// ErrEmpty (not a hard error) when the clipboard holds no file list, so
// callers can treat "nothing to paste" as a normal, expected outcome.
func Read() (Content, error) {
	return platformRead()
}

// Paste builds a transfer plan from the clipboard's current file list and
// enqueues the corresponding copy or move job on mgr. The clipboard itself
// is left untouched: a `cut` is honored as a move here, but we never rely
// on the source application purging its own clipboard, and we don't purge
// ours either — entries are simply consumed by virtue of the job running.
func Paste(mgr *jobs.Manager, destDir string, policy conflict.Policy) (*jobs.Job, *executor.Result, error) {
	content, err := Read()
	if err != nil {
		return nil, nil, err
	}

	plan, err := planner.Build(content.Paths, destDir, planner.Options{Estimate: true})
	if err != nil {
		return nil, nil, err
	}

	t := jobs.TypeCopy
	move := content.Effect == EffectCut
	if move {
		t = jobs.TypeMove
	}

	job, result := executor.Execute(mgr, t, plan, executor.Options{
		Move:           move,
		ConflictPolicy: policy,
	})
	return job, result, nil
}
