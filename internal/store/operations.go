package store

import (
	"context"

	"github.com/google/uuid"

	"sparin/pkg/errors"
	"sparin/pkg/logger"
)

// Typed operations over a Driver. These eight calls (plus the two observe
// variants and RunBatch) are the only store surface repositories use.

// Create writes rec under a freshly generated identifier, assigning it to
// the record before the write so the payload carries its own id.
func Create(ctx context.Context, d Driver, collection string, rec Record) (string, error) {
	id := rec.DocumentID()
	if id == "" {
		id = uuid.New().String()
		rec.SetDocumentID(id)
	}
	data, err := Encode(rec)
	if err != nil {
		return "", errors.Internal("Failed to encode document", err)
	}
	if err := d.Set(ctx, collection, id, data); err != nil {
		return "", errors.StoreFault("Failed to create document", err)
	}
	return id, nil
}

// CreateWithID fully replaces any existing document at id. Used when the
// caller controls identity, e.g. the auth UID as the user document id.
func CreateWithID(ctx context.Context, d Driver, collection, id string, rec Record) error {
	rec.SetDocumentID(id)
	data, err := Encode(rec)
	if err != nil {
		return errors.Internal("Failed to encode document", err)
	}
	if err := d.Set(ctx, collection, id, data); err != nil {
		return errors.StoreFault("Failed to write document", err)
	}
	return nil
}

// Get returns (nil, nil) when the document does not exist; absence is not
// an error.
func Get[T any](ctx context.Context, d Driver, collection, id string) (*T, error) {
	data, found, err := d.Get(ctx, collection, id)
	if err != nil {
		return nil, errors.StoreFault("Failed to read document", err)
	}
	if !found {
		return nil, nil
	}
	var v T
	if err := Decode(RawDocument{Collection: collection, ID: id, Data: data}, &v); err != nil {
		return nil, errors.Internal("Failed to decode document", err)
	}
	return &v, nil
}

// Update merges fields into an existing document; fields not present stay
// untouched. Fails with NotFound when the document is absent.
func Update(ctx context.Context, d Driver, collection, id string, fields map[string]interface{}) error {
	if err := d.Update(ctx, collection, id, fields); err != nil {
		if err == ErrNotFound {
			return errors.NotFound("Document", err)
		}
		return errors.StoreFault("Failed to update document", err)
	}
	return nil
}

// Delete is idempotent.
func Delete(ctx context.Context, d Driver, collection, id string) error {
	if err := d.Delete(ctx, collection, id); err != nil {
		return errors.StoreFault("Failed to delete document", err)
	}
	return nil
}

// List returns a full snapshot of the collection. Documents that fail to
// decode into T are dropped from the result, not surfaced: one corrupt
// document must not fail an entire listing. Each skip is logged.
func List[T any](ctx context.Context, d Driver, collection string) ([]T, error) {
	raw, err := d.List(ctx, collection)
	if err != nil {
		return nil, errors.StoreFault("Failed to list collection", err)
	}
	return decodeAll[T](collection, raw), nil
}

// Query returns documents where field == value.
func Query[T any](ctx context.Context, d Driver, collection, field string, value interface{}) ([]T, error) {
	return QueryMultiple[T](ctx, d, collection, map[string]interface{}{field: value})
}

// QueryMultiple applies conjunctive equality filters only.
func QueryMultiple[T any](ctx context.Context, d Driver, collection string, filters map[string]interface{}) ([]T, error) {
	fs := make([]Filter, 0, len(filters))
	for field, value := range filters {
		fs = append(fs, Filter{Field: field, Value: value})
	}
	raw, err := d.Query(ctx, collection, fs)
	if err != nil {
		return nil, errors.StoreFault("Failed to query collection", err)
	}
	return decodeAll[T](collection, raw), nil
}

// TxGet is Get inside a batch callback: it reads the state the staged
// writes will be applied against. Returns (nil, nil) when absent.
func TxGet[T any](b *Batch, collection, id string) (*T, error) {
	data, found, err := b.Get(collection, id)
	if err != nil {
		return nil, errors.StoreFault("Failed to read document", err)
	}
	if !found {
		return nil, nil
	}
	var v T
	if err := Decode(RawDocument{Collection: collection, ID: id, Data: data}, &v); err != nil {
		return nil, errors.Internal("Failed to decode document", err)
	}
	return &v, nil
}

// TxList is List inside a batch callback, with the same skip-on-decode
// behavior.
func TxList[T any](b *Batch, collection string) ([]T, error) {
	raw, err := b.List(collection)
	if err != nil {
		return nil, errors.StoreFault("Failed to list collection", err)
	}
	return decodeAll[T](collection, raw), nil
}

func decodeAll[T any](collection string, raw []RawDocument) []T {
	out := make([]T, 0, len(raw))
	for _, doc := range raw {
		var v T
		if err := Decode(doc, &v); err != nil {
			logger.LogSkippedDocument(collection, doc.ID, err)
			continue
		}
		out = append(out, v)
	}
	return out
}
