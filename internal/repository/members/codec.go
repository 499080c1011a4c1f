package members

import (
	"encoding/json"
	"fmt"

	"github.com/wahinekai/memberdb-backend/internal/docstore"
	"github.com/wahinekai/memberdb-backend/internal/domain"
)

// encodeUser converts a record to its wire document. The store timestamp is never sent.
func encodeUser(u domain.User) (docstore.Document, error) {
	raw, err := json.Marshal(u)
	if err != nil {
		return nil, fmt.Errorf("failed to encode user: %w", err)
	}
	var doc docstore.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to encode user: %w", err)
	}
	delete(doc, docstore.TimestampField)
	return doc, nil
}

// decodeUser converts a stored document back to a validated record.
// A document that does not decode or validate is reported as ErrCorruptRecord,
// never as a caller's invalid record.
func decodeUser(doc docstore.Document) (*domain.User, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, corrupt(doc, err)
	}
	var u domain.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, corrupt(doc, err)
	}
	valid, err := domain.ValidateUser(u)
	if err != nil {
		return nil, corrupt(doc, err)
	}
	return &valid, nil
}

func corrupt(doc docstore.Document, cause error) error {
	return fmt.Errorf("%w: document %s: %v", domain.ErrCorruptRecord, doc.ID(), cause)
}

func decodeUsers(docs []docstore.Document) ([]*domain.User, error) {
	users := make([]*domain.User, 0, len(docs))
	for _, doc := range docs {
		u, err := decodeUser(doc)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}
