// Package firestore implements the store.Driver contract on Cloud
// Firestore. All engine-specific vocabulary (document refs, snapshot
// iterators, grpc status codes) stays inside this package.
package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"sparin/internal/store"
	"sparin/pkg/logger"
)

type Driver struct {
	client *firestore.Client
}

func NewDriver(client *firestore.Client) *Driver {
	return &Driver{client: client}
}

func (d *Driver) Set(ctx context.Context, collection, id string, data map[string]interface{}) error {
	_, err := d.client.Collection(collection).Doc(id).Set(ctx, data)
	return err
}

func (d *Driver) Get(ctx context.Context, collection, id string) (map[string]interface{}, bool, error) {
	doc, err := d.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, false, nil
		}
		return nil, false, err
	}
	return doc.Data(), true, nil
}

func (d *Driver) Update(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	updates := make([]firestore.Update, 0, len(fields))
	for path, value := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}
	_, err := d.client.Collection(collection).Doc(id).Update(ctx, updates)
	if err != nil && status.Code(err) == codes.NotFound {
		return store.ErrNotFound
	}
	return err
}

func (d *Driver) Delete(ctx context.Context, collection, id string) error {
	// Firestore deletes are already idempotent.
	_, err := d.client.Collection(collection).Doc(id).Delete(ctx)
	return err
}

func (d *Driver) List(ctx context.Context, collection string) ([]store.RawDocument, error) {
	return d.collect(collection, d.client.Collection(collection).Documents(ctx))
}

func (d *Driver) Query(ctx context.Context, collection string, filters []store.Filter) ([]store.RawDocument, error) {
	q := d.client.Collection(collection).Query
	for _, f := range filters {
		q = q.Where(f.Field, "==", f.Value)
	}
	return d.collect(collection, q.Documents(ctx))
}

func (d *Driver) collect(collection string, iter *firestore.DocumentIterator) ([]store.RawDocument, error) {
	defer iter.Stop()
	var out []store.RawDocument
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		out = append(out, store.RawDocument{
			Collection: collection,
			ID:         doc.Ref.ID,
			Data:       doc.Data(),
		})
	}
	return out, nil
}

func (d *Driver) ObserveCollection(ctx context.Context, collection string) (store.RawCollectionSub, error) {
	ctx, cancel := context.WithCancel(ctx)
	snaps := d.client.Collection(collection).Query.Snapshots(ctx)

	sub := &colSub{
		feed:   store.NewFeed[[]store.RawDocument](),
		cancel: cancel,
	}

	go func() {
		defer snaps.Stop()
		for {
			snap, err := snaps.Next()
			if err != nil {
				if status.Code(err) == codes.Canceled {
					sub.feed.Close(nil)
				} else {
					logger.Error("Collection listener terminated: collection=%s, error=%v", collection, err)
					sub.feed.Close(err)
				}
				return
			}
			docs := make([]store.RawDocument, 0, snap.Size)
			iter := snap.Documents
			for {
				doc, err := iter.Next()
				if err == iterator.Done {
					break
				}
				if err != nil {
					logger.Error("Collection listener terminated: collection=%s, error=%v", collection, err)
					sub.feed.Close(err)
					return
				}
				docs = append(docs, store.RawDocument{
					Collection: collection,
					ID:         doc.Ref.ID,
					Data:       doc.Data(),
				})
			}
			sub.feed.Push(docs)
		}
	}()

	return sub, nil
}

func (d *Driver) ObserveDocument(ctx context.Context, collection, id string) (store.RawDocumentSub, error) {
	ctx, cancel := context.WithCancel(ctx)
	snaps := d.client.Collection(collection).Doc(id).Snapshots(ctx)

	sub := &docSub{
		feed:   store.NewFeed[store.RawSnapshot](),
		cancel: cancel,
	}

	go func() {
		defer snaps.Stop()
		for {
			snap, err := snaps.Next()
			if err != nil {
				if status.Code(err) == codes.Canceled {
					sub.feed.Close(nil)
				} else {
					logger.Error("Document listener terminated: collection=%s, id=%s, error=%v", collection, id, err)
					sub.feed.Close(err)
				}
				return
			}
			raw := store.RawSnapshot{
				Doc:    store.RawDocument{Collection: collection, ID: id},
				Exists: snap.Exists(),
			}
			if snap.Exists() {
				raw.Doc.Data = snap.Data()
			}
			sub.feed.Push(raw)
		}
	}()

	return sub, nil
}

// RunBatch runs the callback inside one Firestore transaction: batch
// reads go through tx.Get, staged writes commit all-or-nothing, and
// Firestore re-runs the callback on contention.
func (d *Driver) RunBatch(ctx context.Context, fn func(b *store.Batch) error) error {
	err := d.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		b := store.NewTxBatch(txReader{driver: d, tx: tx})
		if err := fn(b); err != nil {
			return err
		}
		for _, op := range b.Ops() {
			ref := d.client.Collection(op.Collection).Doc(op.ID)
			switch op.Kind {
			case store.BatchSet:
				if err := tx.Set(ref, op.Data); err != nil {
					return err
				}
			case store.BatchUpdate:
				updates := make([]firestore.Update, 0, len(op.Fields))
				for path, value := range op.Fields {
					updates = append(updates, firestore.Update{Path: path, Value: value})
				}
				if err := tx.Update(ref, updates); err != nil {
					return err
				}
			case store.BatchDelete:
				if err := tx.Delete(ref); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil && status.Code(err) == codes.NotFound {
		return store.ErrNotFound
	}
	return err
}

// txReader serves batch-callback reads through the enclosing Firestore
// transaction, so the commit is conditioned on what was read.
type txReader struct {
	driver *Driver
	tx     *firestore.Transaction
}

func (r txReader) Get(collection, id string) (map[string]interface{}, bool, error) {
	doc, err := r.tx.Get(r.driver.client.Collection(collection).Doc(id))
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, false, nil
		}
		return nil, false, err
	}
	return doc.Data(), true, nil
}

func (r txReader) List(collection string) ([]store.RawDocument, error) {
	return r.driver.collect(collection, r.tx.Documents(r.driver.client.Collection(collection)))
}

type colSub struct {
	feed   *store.Feed[[]store.RawDocument]
	cancel context.CancelFunc
}

func (c *colSub) C() <-chan []store.RawDocument { return c.feed.C() }
func (c *colSub) Err() error                    { return c.feed.Err() }

func (c *colSub) Cancel() {
	c.cancel()
	c.feed.Cancel()
}

type docSub struct {
	feed   *store.Feed[store.RawSnapshot]
	cancel context.CancelFunc
}

func (d *docSub) C() <-chan store.RawSnapshot { return d.feed.C() }
func (d *docSub) Err() error                  { return d.feed.Err() }

func (d *docSub) Cancel() {
	d.cancel()
	d.feed.Cancel()
}
