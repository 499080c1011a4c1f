package members

import (
	"strings"

	"github.com/wahinekai/memberdb-backend/internal/docstore"
	"github.com/wahinekai/memberdb-backend/internal/domain"
)

// QueryFields are the document fields free-text queries look at
var QueryFields = []string{"firstName", "lastName", "facebookName", "city", "region", "occupation"}

// BuildQueryPredicate turns a free-text query into a filter matching any
// record where any token appears in any query field, ignoring case.
func BuildQueryPredicate(query string) (docstore.Filter, error) {
	tokens := strings.Fields(strings.ToLower(query))
	if len(tokens) == 0 {
		return nil, domain.ErrEmptyQuery
	}

	perToken := make([]docstore.Filter, 0, len(tokens))
	for _, token := range tokens {
		fields := make([]docstore.Filter, 0, len(QueryFields))
		for _, field := range QueryFields {
			fields = append(fields, docstore.ContainsFold(field, token))
		}
		perToken = append(perToken, docstore.Or(fields...))
	}
	return docstore.Or(perToken...), nil
}
