// Package store is the generic document-store access layer. Repositories
// only ever touch this package; the vocabulary of the backing engine
// (Firestore in production, memstore in tests) stays behind the Driver
// interface.
package store

import (
	"context"
	"errors"
)

// Sentinel faults a Driver reports. The typed layer maps them onto
// application errors; repositories never see driver-specific codes.
var (
	// ErrNotFound is returned by Update when the target document does
	// not exist. Get reports absence through its found flag instead.
	ErrNotFound = errors.New("store: document not found")
	// ErrClosed terminates operations and subscriptions after the
	// driver has been shut down.
	ErrClosed = errors.New("store: driver closed")
)

// RawDocument is one stored document before decoding.
type RawDocument struct {
	Collection string
	ID         string
	Data       map[string]interface{}
}

// RawSnapshot is one document-scoped observation; Exists is false once the
// document has been deleted.
type RawSnapshot struct {
	Doc    RawDocument
	Exists bool
}

// Filter is a single equality constraint. Query supports conjunctions of
// these only: no ranges, ordering or disjunction at this layer.
type Filter struct {
	Field string
	Value interface{}
}

// Record is implemented by every domain entity: a stable identifier field
// the store mirrors into the document payload.
type Record interface {
	DocumentID() string
	SetDocumentID(id string)
}

// Driver is the untyped contract over named collections. A collection name
// may be a slash-separated path for subcollections, e.g.
// "chats/{id}/messages".
type Driver interface {
	// Set fully replaces the document at id, creating it if absent.
	Set(ctx context.Context, collection, id string, data map[string]interface{}) error

	// Get returns (nil, false, nil) when the document does not exist;
	// absence is not an error.
	Get(ctx context.Context, collection, id string) (map[string]interface{}, bool, error)

	// Update merges fields into an existing document. Fields not present
	// are untouched. Returns ErrNotFound when the document is absent.
	Update(ctx context.Context, collection, id string, fields map[string]interface{}) error

	// Delete is idempotent; deleting an absent document is not an error.
	Delete(ctx context.Context, collection, id string) error

	// List returns a full snapshot of the collection.
	List(ctx context.Context, collection string) ([]RawDocument, error)

	// Query returns documents matching every filter.
	Query(ctx context.Context, collection string, filters []Filter) ([]RawDocument, error)

	// ObserveCollection emits a full snapshot each time any member of the
	// collection changes, in commit order, until cancelled. A driver
	// fault terminates the stream; it does not retry internally.
	ObserveCollection(ctx context.Context, collection string) (RawCollectionSub, error)

	// ObserveDocument is ObserveCollection scoped to one document.
	ObserveDocument(ctx context.Context, collection, id string) (RawDocumentSub, error)

	// RunBatch stages writes through the builder and commits them
	// atomically: all succeed or none are applied. Reads through the
	// builder's Get/List observe the state the commit applies against,
	// so read-modify-write sequences cannot lose concurrent writes. The
	// callback may run more than once on contention and must not read
	// through the driver directly.
	RunBatch(ctx context.Context, fn func(b *Batch) error) error
}

// RawCollectionSub is one live collection registration. Cancel must be
// called exactly once when the owning scope ends; Err is meaningful only
// after the channel closes.
type RawCollectionSub interface {
	C() <-chan []RawDocument
	Err() error
	Cancel()
}

// RawDocumentSub is the document-scoped variant.
type RawDocumentSub interface {
	C() <-chan RawSnapshot
	Err() error
	Cancel()
}
