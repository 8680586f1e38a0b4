package conflict

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedPoliciesIgnoreMetadata(t *testing.T) {
	meta := Meta{Size: 1, Modified: time.Now()}
	cases := map[Policy]Action{
		PolicyOverwrite: ActionOverwrite,
		PolicySkip:      ActionSkip,
		PolicyRename:    ActionRename,
	}
	for policy, want := range cases {
		r := New(policy, nil)
		assert.Equal(t, want, r.Decide(meta, meta), "policy %s", policy)
	}
}

func TestKeepNewerTieBreaksToOverwrite(t *testing.T) {
	now := time.Now()
	r := New(PolicyKeepNewer, nil)

	assert.Equal(t, ActionOverwrite, r.Decide(Meta{Modified: now}, Meta{Modified: now}), "exact tie")
	assert.Equal(t, ActionOverwrite, r.Decide(Meta{Modified: now.Add(time.Second)}, Meta{Modified: now}), "source newer")
	assert.Equal(t, ActionSkip, r.Decide(Meta{Modified: now}, Meta{Modified: now.Add(time.Second)}), "destination newer")
}

func TestKeepLargerTieBreaksToOverwrite(t *testing.T) {
	r := New(PolicyKeepLarger, nil)
	assert.Equal(t, ActionOverwrite, r.Decide(Meta{Size: 10}, Meta{Size: 10}), "exact tie")
	assert.Equal(t, ActionOverwrite, r.Decide(Meta{Size: 20}, Meta{Size: 10}), "source larger")
	assert.Equal(t, ActionSkip, r.Decide(Meta{Size: 5}, Meta{Size: 10}), "destination larger")
}

func TestAskLatchesApplyToAllAndNeverDowngrades(t *testing.T) {
	calls := 0
	r := New(PolicyAsk, func(src, dst Meta) (Action, bool) {
		calls++
		return ActionRename, true // apply to all from here on
	})

	first := r.Decide(Meta{}, Meta{})
	require.Equal(t, ActionRename, first)

	// Second call must use the latched policy, never invoking ask again.
	second := r.Decide(Meta{}, Meta{})
	assert.Equal(t, ActionRename, second, "expected latched rename")
	assert.Equal(t, 1, calls, "expected ask to be invoked exactly once")
}

func TestAskWithoutApplyToAllAsksEveryTime(t *testing.T) {
	calls := 0
	r := New(PolicyAsk, func(src, dst Meta) (Action, bool) {
		calls++
		return ActionSkip, false
	})
	r.Decide(Meta{}, Meta{})
	r.Decide(Meta{}, Meta{})
	assert.Equal(t, 2, calls, "expected ask invoked for every item without latch")
}
