package store

import (
	"context"
	"sync"

	"sparin/pkg/logger"
)

// Feed is an ordered, unbounded delivery queue drivers use to push
// snapshots to one subscriber. Pushes never block the committing writer;
// the pump goroutine drains the queue into the outbound channel in push
// order and stops as soon as the subscriber cancels.
type Feed[E any] struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []E
	closed bool
	err    error

	out  chan E
	done chan struct{}
	once sync.Once
}

func NewFeed[E any]() *Feed[E] {
	f := &Feed[E]{
		out:  make(chan E),
		done: make(chan struct{}),
	}
	f.cond = sync.NewCond(&f.mu)
	go f.pump()
	return f
}

// Push enqueues one element. Ignored after Close.
func (f *Feed[E]) Push(e E) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.queue = append(f.queue, e)
	f.cond.Signal()
}

// Close terminates the feed after all queued elements are delivered. A nil
// err means an orderly cancel; anything else is surfaced through Err.
func (f *Feed[E]) Close(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.closed = true
	f.err = err
	f.cond.Signal()
}

// Cancel stops delivery immediately, even with elements still queued.
func (f *Feed[E]) Cancel() {
	f.once.Do(func() {
		close(f.done)
	})
	f.Close(nil)
}

func (f *Feed[E]) C() <-chan E {
	return f.out
}

// Err is meaningful only after C is closed.
func (f *Feed[E]) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

func (f *Feed[E]) pump() {
	for {
		f.mu.Lock()
		for len(f.queue) == 0 && !f.closed {
			f.cond.Wait()
		}
		if len(f.queue) == 0 {
			f.mu.Unlock()
			close(f.out)
			return
		}
		e := f.queue[0]
		f.queue = f.queue[1:]
		f.mu.Unlock()

		select {
		case f.out <- e:
		case <-f.done:
			close(f.out)
			return
		}
	}
}

// Snapshot is one typed collection observation. Skipped counts documents
// that failed to decode and were dropped.
type Snapshot[T any] struct {
	Docs    []T
	Skipped int
}

// DocSnapshot is one typed document observation; Doc is nil once the
// document has been deleted.
type DocSnapshot[T any] struct {
	Doc    *T
	Exists bool
}

// Subscription decodes a raw collection stream into typed snapshots. Owns
// exactly one live registration; Cancel releases it exactly once.
type Subscription[T any] struct {
	raw  RawCollectionSub
	out  chan Snapshot[T]
	done chan struct{}
	once sync.Once
}

// ObserveCollection registers a typed live view over the collection. The
// stream ends when cancelled or when the driver faults; it does not retry.
func ObserveCollection[T any](ctx context.Context, d Driver, collection string) (*Subscription[T], error) {
	raw, err := d.ObserveCollection(ctx, collection)
	if err != nil {
		return nil, err
	}
	s := &Subscription[T]{
		raw:  raw,
		out:  make(chan Snapshot[T]),
		done: make(chan struct{}),
	}
	go s.pump(collection)
	return s, nil
}

func (s *Subscription[T]) pump(collection string) {
	defer close(s.out)
	for docs := range s.raw.C() {
		snap := Snapshot[T]{Docs: make([]T, 0, len(docs))}
		for _, doc := range docs {
			var v T
			if err := Decode(doc, &v); err != nil {
				logger.LogSkippedDocument(collection, doc.ID, err)
				snap.Skipped++
				continue
			}
			snap.Docs = append(snap.Docs, v)
		}
		select {
		case s.out <- snap:
		case <-s.done:
			return
		}
	}
}

func (s *Subscription[T]) C() <-chan Snapshot[T] {
	return s.out
}

// Err is meaningful only after C is closed; nil means an orderly cancel.
func (s *Subscription[T]) Err() error {
	return s.raw.Err()
}

func (s *Subscription[T]) Cancel() {
	s.once.Do(func() {
		close(s.done)
		s.raw.Cancel()
	})
}

// DocSubscription is the document-scoped variant of Subscription.
type DocSubscription[T any] struct {
	raw  RawDocumentSub
	out  chan DocSnapshot[T]
	done chan struct{}
	once sync.Once
}

func ObserveDocument[T any](ctx context.Context, d Driver, collection, id string) (*DocSubscription[T], error) {
	raw, err := d.ObserveDocument(ctx, collection, id)
	if err != nil {
		return nil, err
	}
	s := &DocSubscription[T]{
		raw:  raw,
		out:  make(chan DocSnapshot[T]),
		done: make(chan struct{}),
	}
	go s.pump(collection)
	return s, nil
}

func (s *DocSubscription[T]) pump(collection string) {
	defer close(s.out)
	for raw := range s.raw.C() {
		snap := DocSnapshot[T]{Exists: raw.Exists}
		if raw.Exists {
			var v T
			if err := Decode(raw.Doc, &v); err != nil {
				logger.LogSkippedDocument(collection, raw.Doc.ID, err)
				continue
			}
			snap.Doc = &v
		}
		select {
		case s.out <- snap:
		case <-s.done:
			return
		}
	}
}

func (s *DocSubscription[T]) C() <-chan DocSnapshot[T] {
	return s.out
}

func (s *DocSubscription[T]) Err() error {
	return s.raw.Err()
}

func (s *DocSubscription[T]) Cancel() {
	s.once.Do(func() {
		close(s.done)
		s.raw.Cancel()
	})
}
