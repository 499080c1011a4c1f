// Package docstore defines the document store boundary used by the member repository.
package docstore

import "context"

const (
	// IDField is the document key holding the record id
	IDField = "id"
	// TimestampField is assigned by the store on every write and is read-only for callers
	TimestampField = "_ts"
)

// Document is a JSON object as stored on the wire
type Document map[string]any

// ID returns the document id, or "" when absent
func (d Document) ID() string {
	id, _ := d[IDField].(string)
	return id
}

// Without returns a shallow copy of d minus the given keys
func (d Document) Without(keys ...string) Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

// Store is the set of primitives a document store driver provides.
// Query results are fully read before the call returns.
type Store interface {
	// Query returns documents matching filter; limit <= 0 means unbounded
	Query(ctx context.Context, filter Filter, limit int) ([]Document, error)
	QueryAll(ctx context.Context) ([]Document, error)
	// Insert fails with ErrConflict when the id exists and ErrUniqueViolation when the email does
	Insert(ctx context.Context, doc Document) (Document, error)
	// Replace fails with ErrNotFound when no document has the id
	Replace(ctx context.Context, id string, doc Document) (Document, error)
	DeleteByID(ctx context.Context, id string) error
}
