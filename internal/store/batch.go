package store

import "errors"

// BatchOp is one staged write inside an atomic batch.
type BatchOp struct {
	Kind       BatchOpKind
	Collection string
	ID         string
	Data       map[string]interface{} // Set
	Fields     map[string]interface{} // Update
}

type BatchOpKind int

const (
	BatchSet BatchOpKind = iota
	BatchUpdate
	BatchDelete
)

// TxReader provides reads that observe the exact state a batch commit
// will be applied against. Drivers install one before invoking the batch
// callback; repository code never constructs it.
type TxReader interface {
	Get(collection, id string) (map[string]interface{}, bool, error)
	List(collection string) ([]RawDocument, error)
}

// Batch stages writes for an atomic commit. Repositories use it whenever
// two or more documents must change together, e.g. a community join that
// touches both the community and the user document. Read-modify-write
// sequences read through the batch so concurrent commits cannot interleave
// between the read and the write.
type Batch struct {
	ops    []BatchOp
	reader TxReader
}

// NewTxBatch wires a batch to a driver's transactional reader.
func NewTxBatch(r TxReader) *Batch {
	return &Batch{reader: r}
}

// Get reads a document inside the commit scope. The callback may be
// re-run on contention, so it must stay free of side effects beyond the
// batch itself.
func (b *Batch) Get(collection, id string) (map[string]interface{}, bool, error) {
	if b.reader == nil {
		return nil, false, errors.New("store: batch reads require a driver-issued batch")
	}
	return b.reader.Get(collection, id)
}

// List reads a full collection inside the commit scope.
func (b *Batch) List(collection string) ([]RawDocument, error) {
	if b.reader == nil {
		return nil, errors.New("store: batch reads require a driver-issued batch")
	}
	return b.reader.List(collection)
}

func (b *Batch) Set(collection, id string, data map[string]interface{}) {
	b.ops = append(b.ops, BatchOp{Kind: BatchSet, Collection: collection, ID: id, Data: data})
}

// SetRecord encodes rec and stages a full overwrite at id.
func (b *Batch) SetRecord(collection, id string, rec Record) error {
	rec.SetDocumentID(id)
	data, err := Encode(rec)
	if err != nil {
		return err
	}
	b.Set(collection, id, data)
	return nil
}

// Update stages a merge of fields into an existing document; commit fails
// for the whole batch when the document is absent.
func (b *Batch) Update(collection, id string, fields map[string]interface{}) {
	b.ops = append(b.ops, BatchOp{Kind: BatchUpdate, Collection: collection, ID: id, Fields: fields})
}

func (b *Batch) Delete(collection, id string) {
	b.ops = append(b.ops, BatchOp{Kind: BatchDelete, Collection: collection, ID: id})
}

func (b *Batch) Ops() []BatchOp {
	return b.ops
}
