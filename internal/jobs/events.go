package jobs

// Subscription is one consumer's view of a Job's event stream. Progress is
// intentionally lossy: it is a buffered channel of capacity 1 where a send
// that would block instead replaces the pending value, so a slow consumer
// only ever sees the latest progress and never blocks the job. StateChanged
// and ItemCompleted are never dropped; if a consumer falls behind beyond
// highWatermark, the subscription is torn down and Lagged fires once.
type Subscription struct {
	StateChanged     chan State
	Progress         chan Progress
	ConflictDetected chan ConflictQuery
	ItemCompleted    chan ItemResult
	Log              chan string
	Lagged           chan struct{}

	done chan struct{}
}

const highWatermark = 64

func newSubscription() *Subscription {
	return &Subscription{
		StateChanged:     make(chan State, highWatermark),
		Progress:         make(chan Progress, 1),
		ConflictDetected: make(chan ConflictQuery, highWatermark),
		ItemCompleted:    make(chan ItemResult, highWatermark),
		Log:              make(chan string, highWatermark),
		Lagged:           make(chan struct{}, 1),
		done:             make(chan struct{}),
	}
}

func (s *Subscription) torndown() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

func (s *Subscription) teardown() {
	select {
	case <-s.done:
	default:
		close(s.done)
	}
	select {
	case s.Lagged <- struct{}{}:
	default:
	}
}

// eventBus multicasts job events to every live Subscription.
type eventBus struct {
	subs []*Subscription
}

func (b *eventBus) subscribe() *Subscription {
	s := newSubscription()
	b.subs = append(b.subs, s)
	return s
}

func broadcast[T any](b *eventBus, chanOf func(*Subscription) chan T, v T) {
	live := b.subs[:0]
	for _, s := range b.subs {
		if s.torndown() {
			continue
		}
		select {
		case chanOf(s) <- v:
			live = append(live, s)
		default:
			s.teardown()
		}
	}
	b.subs = live
}

func (b *eventBus) emitState(s State) {
	broadcast(b, func(sub *Subscription) chan State { return sub.StateChanged }, s)
}

func (b *eventBus) emitItem(r ItemResult) {
	broadcast(b, func(sub *Subscription) chan ItemResult { return sub.ItemCompleted }, r)
}

func (b *eventBus) emitLog(msg string) {
	broadcast(b, func(sub *Subscription) chan string { return sub.Log }, msg)
}

func (b *eventBus) emitConflict(q ConflictQuery) {
	broadcast(b, func(sub *Subscription) chan ConflictQuery { return sub.ConflictDetected }, q)
}

// emitProgress never blocks and never queues more than the latest value: if
// the channel already holds an unread value, it is drained and replaced.
func (b *eventBus) emitProgress(p Progress) {
	live := b.subs[:0]
	for _, s := range b.subs {
		if s.torndown() {
			continue
		}
		select {
		case s.Progress <- p:
		default:
			select {
			case <-s.Progress:
			default:
			}
			select {
			case s.Progress <- p:
			default:
			}
		}
		live = append(live, s)
	}
	b.subs = live
}
