// Package memstore is an in-memory Driver used by tests and local
// development. It honors the same contract as the Firestore driver:
// merge-only updates, idempotent deletes, all-or-nothing batches and
// commit-ordered snapshot delivery.
package memstore

import (
	"context"
	"reflect"
	"sync"

	"sparin/internal/store"
)

type Store struct {
	mu          sync.Mutex
	collections map[string]map[string]map[string]interface{}
	colSubs     map[string][]*colSub
	docSubs     map[string][]*docSub

	// failWith, when set, makes every subsequent operation fail with it
	// and terminates live subscriptions. Test hook for StoreFault paths.
	failWith error
}

type colSub struct {
	collection string
	feed       *store.Feed[[]store.RawDocument]
	parent     *Store
}

type docSub struct {
	collection string
	id         string
	feed       *store.Feed[store.RawSnapshot]
	parent     *Store
}

func New() *Store {
	return &Store{
		collections: make(map[string]map[string]map[string]interface{}),
		colSubs:     make(map[string][]*colSub),
		docSubs:     make(map[string][]*docSub),
	}
}

// Fail makes every subsequent operation return err and terminates all live
// subscriptions with it. Passing nil restores normal operation for new
// calls; terminated subscriptions stay terminated.
func (s *Store) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWith = err
	if err != nil {
		for _, subs := range s.colSubs {
			for _, sub := range subs {
				sub.feed.Close(err)
			}
		}
		for _, subs := range s.docSubs {
			for _, sub := range subs {
				sub.feed.Close(err)
			}
		}
		s.colSubs = make(map[string][]*colSub)
		s.docSubs = make(map[string][]*docSub)
	}
}

// Close terminates all subscriptions and rejects further operations.
func (s *Store) Close() {
	s.Fail(store.ErrClosed)
}

// Seed injects a raw document without notification. Test setup helper;
// also the door for planting malformed payloads.
func (s *Store) Seed(collection, id string, data map[string]interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.col(collection)[id] = cloneDoc(data)
}

func (s *Store) col(collection string) map[string]map[string]interface{} {
	c, ok := s.collections[collection]
	if !ok {
		c = make(map[string]map[string]interface{})
		s.collections[collection] = c
	}
	return c
}

func (s *Store) Set(ctx context.Context, collection, id string, data map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	s.col(collection)[id] = cloneDoc(data)
	s.notifyLocked(collection, id)
	return nil
}

func (s *Store) Get(ctx context.Context, collection, id string) (map[string]interface{}, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, false, s.failWith
	}
	data, ok := s.col(collection)[id]
	if !ok {
		return nil, false, nil
	}
	return cloneDoc(data), true, nil
}

func (s *Store) Update(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	doc, ok := s.col(collection)[id]
	if !ok {
		return store.ErrNotFound
	}
	for k, v := range fields {
		doc[k] = v
	}
	s.notifyLocked(collection, id)
	return nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	c := s.col(collection)
	if _, ok := c[id]; !ok {
		return nil
	}
	delete(c, id)
	s.notifyLocked(collection, id)
	return nil
}

func (s *Store) List(ctx context.Context, collection string) ([]store.RawDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	return s.snapshotLocked(collection), nil
}

func (s *Store) Query(ctx context.Context, collection string, filters []store.Filter) ([]store.RawDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	var out []store.RawDocument
	for _, doc := range s.snapshotLocked(collection) {
		if matches(doc.Data, filters) {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (s *Store) ObserveCollection(ctx context.Context, collection string) (store.RawCollectionSub, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	sub := &colSub{
		collection: collection,
		feed:       store.NewFeed[[]store.RawDocument](),
		parent:     s,
	}
	s.colSubs[collection] = append(s.colSubs[collection], sub)
	// Initial snapshot, then one per commit.
	sub.feed.Push(s.snapshotLocked(collection))
	return sub, nil
}

func (s *Store) ObserveDocument(ctx context.Context, collection, id string) (store.RawDocumentSub, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	sub := &docSub{
		collection: collection,
		id:         id,
		feed:       store.NewFeed[store.RawSnapshot](),
		parent:     s,
	}
	key := collection + "/" + id
	s.docSubs[key] = append(s.docSubs[key], sub)
	sub.feed.Push(s.docSnapshotLocked(collection, id))
	return sub, nil
}

func (s *Store) RunBatch(ctx context.Context, fn func(b *store.Batch) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}

	// The callback runs under the store lock, so its reads and the
	// commit are one atomic step. It must read through the batch only.
	b := store.NewTxBatch(lockedReader{s: s})
	if err := fn(b); err != nil {
		return err
	}

	// Validate first so the commit is all-or-nothing.
	for _, op := range b.Ops() {
		if op.Kind == store.BatchUpdate {
			if _, ok := s.col(op.Collection)[op.ID]; !ok {
				return store.ErrNotFound
			}
		}
	}

	touched := make(map[string]map[string]bool)
	for _, op := range b.Ops() {
		c := s.col(op.Collection)
		switch op.Kind {
		case store.BatchSet:
			c[op.ID] = cloneDoc(op.Data)
		case store.BatchUpdate:
			for k, v := range op.Fields {
				c[op.ID][k] = v
			}
		case store.BatchDelete:
			delete(c, op.ID)
		}
		ids, ok := touched[op.Collection]
		if !ok {
			ids = make(map[string]bool)
			touched[op.Collection] = ids
		}
		ids[op.ID] = true
	}

	// One snapshot per affected collection per commit.
	for collection, ids := range touched {
		for _, sub := range s.colSubs[collection] {
			sub.feed.Push(s.snapshotLocked(collection))
		}
		for id := range ids {
			for _, sub := range s.docSubs[collection+"/"+id] {
				sub.feed.Push(s.docSnapshotLocked(collection, id))
			}
		}
	}
	return nil
}

func (s *Store) notifyLocked(collection, id string) {
	for _, sub := range s.colSubs[collection] {
		sub.feed.Push(s.snapshotLocked(collection))
	}
	for _, sub := range s.docSubs[collection+"/"+id] {
		sub.feed.Push(s.docSnapshotLocked(collection, id))
	}
}

func (s *Store) snapshotLocked(collection string) []store.RawDocument {
	c := s.collections[collection]
	out := make([]store.RawDocument, 0, len(c))
	for id, data := range c {
		out = append(out, store.RawDocument{Collection: collection, ID: id, Data: cloneDoc(data)})
	}
	return out
}

func (s *Store) docSnapshotLocked(collection, id string) store.RawSnapshot {
	data, ok := s.collections[collection][id]
	if !ok {
		return store.RawSnapshot{Doc: store.RawDocument{Collection: collection, ID: id}, Exists: false}
	}
	return store.RawSnapshot{
		Doc:    store.RawDocument{Collection: collection, ID: id, Data: cloneDoc(data)},
		Exists: true,
	}
}

func (c *colSub) C() <-chan []store.RawDocument { return c.feed.C() }
func (c *colSub) Err() error                    { return c.feed.Err() }

func (c *colSub) Cancel() {
	c.parent.removeColSub(c)
	c.feed.Cancel()
}

func (d *docSub) C() <-chan store.RawSnapshot { return d.feed.C() }
func (d *docSub) Err() error                  { return d.feed.Err() }

func (d *docSub) Cancel() {
	d.parent.removeDocSub(d)
	d.feed.Cancel()
}

func (s *Store) removeColSub(target *colSub) {
	s.mu.Lock()
	defer s.mu.Unlock()
	subs := s.colSubs[target.collection]
	for i, sub := range subs {
		if sub == target {
			s.colSubs[target.collection] = append(subs[:i], subs[i+1:]...)
			return
		}
	}
}

func (s *Store) removeDocSub(target *docSub) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := target.collection + "/" + target.id
	subs := s.docSubs[key]
	for i, sub := range subs {
		if sub == target {
			s.docSubs[key] = append(subs[:i], subs[i+1:]...)
			return
		}
	}
}

// lockedReader serves batch-callback reads while RunBatch holds the
// store lock; it must never lock itself.
type lockedReader struct {
	s *Store
}

func (r lockedReader) Get(collection, id string) (map[string]interface{}, bool, error) {
	data, ok := r.s.collections[collection][id]
	if !ok {
		return nil, false, nil
	}
	return cloneDoc(data), true, nil
}

func (r lockedReader) List(collection string) ([]store.RawDocument, error) {
	return r.s.snapshotLocked(collection), nil
}

func matches(data map[string]interface{}, filters []store.Filter) bool {
	for _, f := range filters {
		v, ok := data[f.Field]
		// DeepEqual rather than ==: decoded values may hold slices or
		// maps, which panic under plain comparison.
		if !ok || !reflect.DeepEqual(v, f.Value) {
			return false
		}
	}
	return true
}

func cloneDoc(data map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(data))
	for k, v := range data {
		out[k] = v
	}
	return out
}
