package session

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Publisher hands the latest Snapshot to any number of readers. Get never
// blocks and never returns nil.
type Publisher struct {
	current atomic.Pointer[Snapshot]

	mutex        sync.Mutex
	subscribers  map[uuid.UUID]chan *Snapshot
	lastNotified uint64
	closed       bool
}

func NewPublisher() *Publisher {
	p := &Publisher{
		subscribers: make(map[uuid.UUID]chan *Snapshot),
	}

	p.current.Store(&Snapshot{})

	return p
}

func (p *Publisher) Get() *Snapshot {
	return p.current.Load()
}

// Publish makes s current unless a snapshot with the same or a later sequence
// is already published. It reports whether s was accepted.
func (p *Publisher) Publish(s *Snapshot) bool {
	for {
		current := p.current.Load()

		if s.Sequence <= current.Sequence {
			return false
		}

		if p.current.CompareAndSwap(current, s) {
			break
		}
	}

	p.notify(s)

	return true
}

func (p *Publisher) notify(s *Snapshot) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if s.Sequence <= p.lastNotified {
		return
	}

	p.lastNotified = s.Sequence

	for _, ch := range p.subscribers {
		// keep only the newest snapshot in the buffer
		select {
		case <-ch:
		default:
		}

		select {
		case ch <- s:
		default:
		}
	}
}

// Subscribe returns a channel that receives published snapshots. A slow
// reader misses intermediate snapshots but always gets the latest. The
// returned func cancels the subscription and closes the channel.
func (p *Publisher) Subscribe() (<-chan *Snapshot, func()) {
	ch := make(chan *Snapshot, 1)

	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.closed {
		close(ch)
		return ch, func() {}
	}

	id := uuid.New()
	p.subscribers[id] = ch

	var once sync.Once

	return ch, func() {
		once.Do(func() {
			p.mutex.Lock()
			defer p.mutex.Unlock()

			if ch, ok := p.subscribers[id]; ok {
				delete(p.subscribers, id)
				close(ch)
			}
		})
	}
}

// OnSnapshot calls fn from its own goroutine for every snapshot delivered to
// the subscription.
func (p *Publisher) OnSnapshot(fn func(*Snapshot)) func() {
	ch, cancel := p.Subscribe()

	go func() {
		for s := range ch {
			fn(s)
		}
	}()

	return cancel
}

// Close ends every subscription. Get keeps returning the last snapshot.
func (p *Publisher) Close() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.closed {
		return
	}

	p.closed = true

	for id, ch := range p.subscribers {
		delete(p.subscribers, id)
		close(ch)
	}
}

// NumSubscribers is the number of open subscriptions.
func (p *Publisher) NumSubscribers() int {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	return len(p.subscribers)
}
