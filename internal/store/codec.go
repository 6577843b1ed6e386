package store

import (
	"encoding/json"
)

// Encode flattens an entity into the raw document shape drivers persist.
// Field names follow the entity's json tags, which mirror its firestore
// tags.
func Encode(v interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var data map[string]interface{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// Decode materializes a raw document into out, which must be a pointer.
// The document id wins over any id stored in the payload.
func Decode(doc RawDocument, out interface{}) error {
	raw, err := json.Marshal(doc.Data)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return err
	}
	if rec, ok := out.(Record); ok {
		rec.SetDocumentID(doc.ID)
	}
	return nil
}
