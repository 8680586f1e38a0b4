package watcher

import (
	"time"

	"github.com/fsnotify/fsnotify"
)

// rawEvent is one fsnotify event captured during a debounce window,
// stamped with the time it first arrived.
type rawEvent struct {
	path string
	op   fsnotify.Op
	at   time.Time
}

// pendingWindow accumulates raw fsnotify events for one watched directory
// over a debounce interval, and resolves them into the final set of
// coalesced Events to deliver.
type pendingWindow struct {
	renames []rawEvent
	creates []rawEvent
	removes []rawEvent
	writes  map[string]rawEvent // last Write/Chmod per path, first-seen timestamp kept
	chmods  map[string]rawEvent
}

func (p *pendingWindow) add(ev fsnotify.Event) {
	now := timeNow()
	raw := rawEvent{path: ev.Name, op: ev.Op, at: now}

	switch {
	case ev.Op.Has(fsnotify.Rename):
		p.renames = append(p.renames, raw)
	case ev.Op.Has(fsnotify.Create):
		p.creates = append(p.creates, raw)
	case ev.Op.Has(fsnotify.Remove):
		p.removes = append(p.removes, raw)
	case ev.Op.Has(fsnotify.Write):
		if p.writes == nil {
			p.writes = make(map[string]rawEvent)
		}
		if existing, ok := p.writes[ev.Name]; !ok || raw.at.Before(existing.at) {
			p.writes[ev.Name] = raw
		}
	case ev.Op.Has(fsnotify.Chmod):
		if p.chmods == nil {
			p.chmods = make(map[string]rawEvent)
		}
		if existing, ok := p.chmods[ev.Name]; !ok || raw.at.Before(existing.at) {
			p.chmods[ev.Name] = raw
		}
	}
}

// resolve turns the accumulated raw events into coalesced Events. A
// Rename paired with a same-window Create is reported as one Renamed
// event (from the rename's path to the create's path), taking precedence
// over reporting them as a separate Deleted+Created pair. Unpaired renames
// degrade to Deleted (the path left the watched directory and we have no
// destination to report). Write/Chmod activity on a path that was also
// created or removed in the same window is dropped: the Created/Deleted
// event already covers it.
func (p *pendingWindow) resolve() []Event {
	var out []Event

	renames := append([]rawEvent(nil), p.renames...)
	creates := append([]rawEvent(nil), p.creates...)

	paired := 0
	for paired < len(renames) && paired < len(creates) {
		r, c := renames[paired], creates[paired]
		ts := r.at
		if c.at.Before(ts) {
			ts = c.at
		}
		out = append(out, Event{Kind: Renamed, Path: c.path, From: r.path, Time: ts})
		paired++
	}
	for _, r := range renames[paired:] {
		out = append(out, Event{Kind: Deleted, Path: r.path, Time: r.at})
	}
	touched := make(map[string]bool, len(renames)+len(creates))
	for _, r := range renames {
		touched[r.path] = true
	}
	for i, c := range creates {
		if i < paired {
			touched[c.path] = true
			continue
		}
		out = append(out, Event{Kind: Created, Path: c.path, Time: c.at})
		touched[c.path] = true
	}

	for _, r := range p.removes {
		if touched[r.path] {
			continue
		}
		out = append(out, Event{Kind: Deleted, Path: r.path, Time: r.at})
		touched[r.path] = true
	}

	for path, w := range p.writes {
		if touched[path] {
			continue
		}
		out = append(out, Event{Kind: Modified, Path: path, Time: w.at})
	}
	for path, c := range p.chmods {
		if touched[path] {
			continue
		}
		if _, alreadyModified := p.writes[path]; alreadyModified {
			continue
		}
		out = append(out, Event{Kind: Changed, Path: path, Time: c.at})
	}

	return out
}

func timeNow() time.Time { return time.Now() }
