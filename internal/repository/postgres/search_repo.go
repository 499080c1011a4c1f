package postgres

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wahinekai/memberdb-backend/internal/domain"
)

// SuggestLimit is the number of ids Suggest returns
const SuggestLimit = 5

// searchText must match the expression of member_documents_search_idx
const searchText = `to_tsvector('simple',
	coalesce(doc->>'firstName', '') || ' ' ||
	coalesce(doc->>'lastName', '') || ' ' ||
	coalesce(doc->>'facebookName', '') || ' ' ||
	coalesce(doc->>'city', '') || ' ' ||
	coalesce(doc->>'region', '') || ' ' ||
	coalesce(doc->>'occupation', ''))`

// SearchRepository implements domain.SearchRepository with Postgres full-text search
type SearchRepository struct {
	pool *pgxpool.Pool
}

var _ domain.SearchRepository = (*SearchRepository)(nil)

// NewSearchRepository creates a new SearchRepository
func NewSearchRepository(pool *pgxpool.Pool) *SearchRepository {
	return &SearchRepository{pool: pool}
}

// Search returns ids ranked by relevance. An empty query returns everyone by name.
func (r *SearchRepository) Search(ctx context.Context, query string) ([]uuid.UUID, error) {
	if strings.TrimSpace(query) == "" {
		return r.queryIDs(ctx, "search", `
			SELECT id FROM member_documents
			ORDER BY lower(doc->>'firstName'), lower(coalesce(doc->>'lastName', '')), seq
		`)
	}
	return r.queryIDs(ctx, "search", `
		SELECT id FROM member_documents
		WHERE `+searchText+` @@ websearch_to_tsquery('simple', $1)
		ORDER BY ts_rank(`+searchText+`, websearch_to_tsquery('simple', $1)) DESC, seq
	`, query)
}

// Suggest returns the best prefix matches for partial
func (r *SearchRepository) Suggest(ctx context.Context, partial string) ([]uuid.UUID, error) {
	tsq := prefixQuery(partial)
	if tsq == "" {
		return []uuid.UUID{}, nil
	}
	return r.queryIDs(ctx, "suggest", `
		SELECT id FROM member_documents
		WHERE `+searchText+` @@ to_tsquery('simple', $1)
		ORDER BY ts_rank(`+searchText+`, to_tsquery('simple', $1)) DESC, seq
		LIMIT $2
	`, tsq, SuggestLimit)
}

// AutoComplete returns the rest of the shortest name or place that starts with partial
func (r *SearchRepository) AutoComplete(ctx context.Context, partial string) (string, error) {
	partial = strings.TrimLeftFunc(partial, unicode.IsSpace)
	if partial == "" {
		return "", nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT v FROM member_documents,
		LATERAL (VALUES
			(doc->>'firstName' || coalesce(' ' || (doc->>'lastName'), '')),
			(doc->>'lastName'),
			(doc->>'facebookName'),
			(doc->>'city'),
			(doc->>'region'),
			(doc->>'occupation')
		) AS f(v)
		WHERE v IS NOT NULL AND left(lower(v), length($1::text)) = lower($1::text) AND length(v) > length($1::text)
		ORDER BY length(v), v
		LIMIT 1
	`, partial)
	if err != nil {
		return "", classify("autocomplete", err)
	}
	defer rows.Close()

	var completion string
	if rows.Next() {
		if err := rows.Scan(&completion); err != nil {
			return "", classify("autocomplete", err)
		}
	}
	if err := rows.Err(); err != nil {
		return "", classify("autocomplete", err)
	}
	return remainder(completion, partial), nil
}

func (r *SearchRepository) queryIDs(ctx context.Context, op, sql string, args ...any) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, classify(op, err))
	}
	defer rows.Close()

	ids := []uuid.UUID{}
	for rows.Next() {
		var id pgtype.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		ids = append(ids, uuid.UUID(id.Bytes))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, classify(op, err))
	}
	return ids, nil
}

// prefixQuery turns free text into a tsquery where every word is a prefix
func prefixQuery(partial string) string {
	words := strings.FieldsFunc(strings.ToLower(partial), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for i, w := range words {
		words[i] = w + ":*"
	}
	return strings.Join(words, " & ")
}

// remainder returns completion minus its first len(partial) runes
func remainder(completion, partial string) string {
	runes := []rune(completion)
	n := len([]rune(partial))
	if completion == "" || n >= len(runes) {
		return ""
	}
	return string(runes[n:])
}
