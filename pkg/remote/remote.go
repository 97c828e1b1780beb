// Package remote provides the document collection the client synchronizes
// with. A collection holds JSON documents keyed by a collection assigned key
// and supports fetch-all, add, equality queries, partial update and delete.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
)

// ErrNotFound is returned for operations on a key the collection does not hold.
var ErrNotFound = errors.New("remote: document not found")

// Document is a stored document and the key the collection assigned to it.
type Document struct {
	Key  string          `json:"key"`
	Data json.RawMessage `json:"data"`
}

// Decode unmarshals the document body into v.
func (d Document) Decode(v any) error {
	if err := json.Unmarshal(d.Data, v); err != nil {
		return fmt.Errorf("remote: decode %s: %w", d.Key, err)
	}
	return nil
}

// Collection is a named set of documents.
type Collection interface {
	// Name is the collection name.
	Name() string
	// Get returns every document in insertion order.
	Get(ctx context.Context) ([]Document, error)
	// Add stores data and returns the new document key.
	Add(ctx context.Context, data any) (string, error)
	// Where builds a query matching documents whose field equals value.
	Where(field string, value any) Query
	// Delete removes the document stored under key.
	Delete(ctx context.Context, key string) error
	// Update merges fields into the document stored under key.
	Update(ctx context.Context, key string, fields map[string]any) error
}

// Query is a filtered view of a collection.
type Query interface {
	Get(ctx context.Context) ([]Document, error)
}

// Change announces that documents in a collection changed.
type Change struct {
	Collection string
}

// Watcher is implemented by collections that can report changes made by
// other writers.
type Watcher interface {
	Watch(ctx context.Context) (<-chan Change, error)
}

// filterQuery evaluates an equality filter over a full fetch. Backends without
// an index use it for Where.
type filterQuery struct {
	fetch func(ctx context.Context) ([]Document, error)
	field string
	value any
}

func (q filterQuery) Get(ctx context.Context) ([]Document, error) {
	docs, err := q.fetch(ctx)
	if err != nil {
		return nil, err
	}
	return Filter(docs, q.field, q.value)
}

// Filter keeps the documents whose top level field equals value. Values are
// compared by their JSON meaning, so 5 matches a stored 5.0.
func Filter(docs []Document, field string, value any) ([]Document, error) {
	want, err := normalize(value)
	if err != nil {
		return nil, fmt.Errorf("remote: filter value for %q: %w", field, err)
	}
	out := make([]Document, 0)
	for _, doc := range docs {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(doc.Data, &fields); err != nil {
			continue
		}
		raw, ok := fields[field]
		if !ok {
			continue
		}
		var got any
		if err := json.Unmarshal(raw, &got); err != nil {
			continue
		}
		if reflect.DeepEqual(got, want) {
			out = append(out, doc)
		}
	}
	return out, nil
}

// Merge applies a partial update to a JSON object.
func Merge(data json.RawMessage, fields map[string]any) (json.RawMessage, error) {
	current := make(map[string]json.RawMessage)
	if len(data) > 0 {
		if err := json.Unmarshal(data, &current); err != nil {
			return nil, fmt.Errorf("remote: merge into non-object document: %w", err)
		}
	}
	for name, value := range fields {
		b, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("remote: encode field %q: %w", name, err)
		}
		current[name] = b
	}
	return json.Marshal(current)
}

func encode(data any) (json.RawMessage, error) {
	if raw, ok := data.(json.RawMessage); ok {
		if !json.Valid(raw) {
			return nil, errors.New("remote: invalid json document")
		}
		return raw, nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("remote: encode document: %w", err)
	}
	return b, nil
}

func normalize(value any) (any, error) {
	b, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}
