package docstore

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilters(t *testing.T) {
	doc := Document{
		"id":        "abc",
		"firstName": "Jane",
		"city":      "Oceanside",
		"lastName":  nil,
		"boards":    []any{"longboard"},
	}

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"eq match", Eq("firstName", "Jane"), true},
		{"eq is case sensitive", Eq("firstName", "jane"), false},
		{"eq missing field", Eq("region", "California"), false},
		{"eq on slice does not panic", Eq("boards", "longboard"), false},
		{"contains fold", ContainsFold("city", "SIDE"), true},
		{"contains fold miss", ContainsFold("city", "denver"), false},
		{"contains fold null", ContainsFold("lastName", ""), false},
		{"contains fold missing", ContainsFold("occupation", ""), false},
		{"or any", Or(ContainsFold("city", "x"), Eq("id", "abc")), true},
		{"or none", Or(ContainsFold("city", "x"), Eq("id", "zzz")), false},
		{"empty or", Or(), false},
		{"and all", And(Eq("id", "abc"), ContainsFold("firstName", "an")), true},
		{"and one fails", And(Eq("id", "abc"), ContainsFold("firstName", "bob")), false},
		{"empty and", And(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Match(doc))
		})
	}
}

func TestIsTransient(t *testing.T) {
	base := errors.New("throttled")
	err := fmt.Errorf("query: %w", Transient("query", base))

	assert.True(t, IsTransient(err))
	assert.ErrorIs(t, err, base)
	assert.False(t, IsTransient(base))
	assert.False(t, IsTransient(ErrNotFound))
}

func TestDocumentWithout(t *testing.T) {
	doc := Document{"id": "1", "_ts": int64(5), "email": "a@b.c"}
	out := doc.Without(TimestampField)

	assert.Equal(t, "1", out.ID())
	assert.NotContains(t, out, TimestampField)
	assert.Contains(t, doc, TimestampField)
}
