package docstore

import (
	"reflect"
	"strings"
)

// Filter is a boolean test over a document. The memory driver evaluates it
// with Match; SQL drivers compile the concrete types below.
type Filter interface {
	Match(doc Document) bool
}

// EqFilter matches documents whose field equals Value
type EqFilter struct {
	Field string
	Value any
}

// ContainsFoldFilter matches documents whose string field contains Substr, ignoring case.
// Missing or non-string fields never match.
type ContainsFoldFilter struct {
	Field  string
	Substr string
}

// OrFilter matches when any child matches. An empty OrFilter matches nothing.
type OrFilter struct {
	Filters []Filter
}

// AndFilter matches when every child matches. An empty AndFilter matches everything.
type AndFilter struct {
	Filters []Filter
}

func Eq(field string, value any) Filter {
	return EqFilter{Field: field, Value: value}
}

func ContainsFold(field, substr string) Filter {
	return ContainsFoldFilter{Field: field, Substr: substr}
}

func Or(filters ...Filter) Filter {
	return OrFilter{Filters: filters}
}

func And(filters ...Filter) Filter {
	return AndFilter{Filters: filters}
}

func (f EqFilter) Match(doc Document) bool {
	v, ok := doc[f.Field]
	if !ok || v == nil {
		return f.Value == nil
	}
	return reflect.DeepEqual(v, f.Value)
}

func (f ContainsFoldFilter) Match(doc Document) bool {
	s, ok := doc[f.Field].(string)
	if !ok {
		return false
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(f.Substr))
}

func (f OrFilter) Match(doc Document) bool {
	for _, child := range f.Filters {
		if child.Match(doc) {
			return true
		}
	}
	return false
}

func (f AndFilter) Match(doc Document) bool {
	for _, child := range f.Filters {
		if !child.Match(doc) {
			return false
		}
	}
	return true
}
