// Package conflict implements the destination-exists policy engine: a pure
// decision function over metadata snapshots, plus the one-shot "ask"
// response-channel protocol with an apply-to-all latch.
package conflict

import "time"

// Policy is one of the six dispositions the executor can apply to a
// destination that already exists.
type Policy string

const (
	PolicyOverwrite  Policy = "overwrite"
	PolicySkip       Policy = "skip"
	PolicyRename     Policy = "rename"
	PolicyKeepNewer  Policy = "keep_newer"
	PolicyKeepLarger Policy = "keep_larger"
	PolicyAsk        Policy = "ask"
)

// Meta is the metadata snapshot the resolver decides from; it never
// touches the filesystem itself.
type Meta struct {
	Size     int64
	Modified time.Time
}

// Action is a resolved, non-"ask" disposition ready for the executor to
// apply.
type Action string

const (
	ActionOverwrite Action = "overwrite"
	ActionSkip      Action = "skip"
	ActionRename    Action = "rename"
	ActionCancelJob Action = "cancel_job"
)

// AskFunc is supplied by the caller to resolve PolicyAsk items; it blocks
// until a human (or scripted) decision arrives for this one item.
type AskFunc func(src, dst Meta) (Action, applyToAll bool)

// Resolver holds the current policy for a job and applies the
// apply-to-all latch: once a caller answers an "ask" with apply_to_all,
// the resolver adopts that action as its policy for every later item and
// never reverts to "ask".
type Resolver struct {
	policy Policy
	ask    AskFunc
}

// New constructs a Resolver starting at policy. ask is required when
// policy is PolicyAsk (or becomes reachable again, which it never does
// once latched) and ignored otherwise.
func New(policy Policy, ask AskFunc) *Resolver {
	return &Resolver{policy: policy, ask: ask}
}

// Decide resolves one conflicting item to a concrete Action.
func (r *Resolver) Decide(src, dst Meta) Action {
	switch r.policy {
	case PolicyOverwrite:
		return ActionOverwrite
	case PolicySkip:
		return ActionSkip
	case PolicyRename:
		return ActionRename
	case PolicyKeepNewer:
		return decideKeepNewer(src, dst)
	case PolicyKeepLarger:
		return decideKeepLarger(src, dst)
	case PolicyAsk:
		action, applyToAll := r.ask(src, dst)
		if action == ActionCancelJob {
			// The job is stopping; there is nothing left to latch a policy
			// for.
			return action
		}
		if applyToAll {
			// Latch: once set, the resolver never asks again, and never
			// downgrades back to PolicyAsk even if a later caller wanted it.
			r.policy = actionToPolicy(action)
		}
		return action
	default:
		return ActionSkip
	}
}

// decideKeepNewer keeps the file with the later Modified; an exact tie
// proceeds as overwrite (see DESIGN.md for the tie-break rationale).
func decideKeepNewer(src, dst Meta) Action {
	switch {
	case src.Modified.After(dst.Modified):
		return ActionOverwrite
	case src.Modified.Before(dst.Modified):
		return ActionSkip
	default:
		return ActionOverwrite
	}
}

// decideKeepLarger keeps the file with the larger Size; an exact tie
// proceeds as overwrite, mirroring decideKeepNewer's tie rule.
func decideKeepLarger(src, dst Meta) Action {
	switch {
	case src.Size > dst.Size:
		return ActionOverwrite
	case src.Size < dst.Size:
		return ActionSkip
	default:
		return ActionOverwrite
	}
}

func actionToPolicy(a Action) Policy {
	switch a {
	case ActionOverwrite:
		return PolicyOverwrite
	case ActionRename:
		return PolicyRename
	default:
		return PolicySkip
	}
}
