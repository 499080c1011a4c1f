package postgres

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/wahinekai/memberdb-backend/internal/docstore"
)

//go:embed schema.sql
var schemaSQL string

const (
	primaryKeyConstraint = "member_documents_pkey"
	nowEpoch             = "extract(epoch from now())::bigint"
)

// DocumentStore implements docstore.Store on a JSONB table
type DocumentStore struct {
	pool *pgxpool.Pool
}

var _ docstore.Store = (*DocumentStore)(nil)

// NewDocumentStore creates a new DocumentStore
func NewDocumentStore(pool *pgxpool.Pool) *DocumentStore {
	return &DocumentStore{pool: pool}
}

// EnsureSchema creates the document table and its indexes when missing
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create member_documents schema: %w", err)
	}
	return nil
}

func (s *DocumentStore) Query(ctx context.Context, filter docstore.Filter, limit int) ([]docstore.Document, error) {
	where := "TRUE"
	var args []any
	if filter != nil {
		var err error
		where, args, err = compileFilter(filter, args)
		if err != nil {
			return nil, err
		}
	}

	sql := "SELECT doc, ts FROM member_documents WHERE " + where + " ORDER BY seq"
	if limit > 0 {
		args = append(args, limit)
		sql += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	return s.queryDocuments(ctx, "query", sql, args...)
}

func (s *DocumentStore) QueryAll(ctx context.Context) ([]docstore.Document, error) {
	return s.queryDocuments(ctx, "query all", "SELECT doc, ts FROM member_documents ORDER BY seq")
}

func (s *DocumentStore) Insert(ctx context.Context, doc docstore.Document) (docstore.Document, error) {
	id, err := parseID(doc.ID())
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(doc.Without(docstore.TimestampField))
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}

	row := s.pool.QueryRow(ctx, `
		INSERT INTO member_documents (id, doc, ts)
		VALUES ($1, $2, `+nowEpoch+`)
		RETURNING doc, ts
	`, id, raw)
	stored, err := scanDocument(row)
	if err != nil {
		return nil, classify("insert", err)
	}
	return stored, nil
}

func (s *DocumentStore) Replace(ctx context.Context, id string, doc docstore.Document) (docstore.Document, error) {
	pgID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	body := doc.Without(docstore.TimestampField)
	body[docstore.IDField] = id
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}

	row := s.pool.QueryRow(ctx, `
		UPDATE member_documents
		SET doc = $2, ts = `+nowEpoch+`
		WHERE id = $1
		RETURNING doc, ts
	`, pgID, raw)
	stored, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, docstore.ErrNotFound
		}
		return nil, classify("replace", err)
	}
	return stored, nil
}

func (s *DocumentStore) DeleteByID(ctx context.Context, id string) error {
	pgID, err := parseID(id)
	if err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx, "DELETE FROM member_documents WHERE id = $1", pgID)
	if err != nil {
		return classify("delete", err)
	}
	if tag.RowsAffected() == 0 {
		return docstore.ErrNotFound
	}
	return nil
}

func (s *DocumentStore) queryDocuments(ctx context.Context, op, sql string, args ...any) ([]docstore.Document, error) {
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, classify(op, err)
	}
	defer rows.Close()

	docs := []docstore.Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, classify(op, err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(op, err)
	}
	return docs, nil
}

func scanDocument(row pgx.Row) (docstore.Document, error) {
	var raw []byte
	var ts int64
	if err := row.Scan(&raw, &ts); err != nil {
		return nil, err
	}
	var doc docstore.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	doc[docstore.TimestampField] = ts
	return doc, nil
}

func parseID(id string) (pgtype.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return pgtype.UUID{}, fmt.Errorf("invalid document id %q: %w", id, err)
	}
	return pgtype.UUID{Bytes: parsed, Valid: true}, nil
}

// Transient SQLSTATE codes: serialization failure, deadlock, too many
// connections, admin shutdown, and the connection exception class.
var transientCodes = map[string]bool{
	"40001": true,
	"40P01": true,
	"53300": true,
	"57P01": true,
	"57P03": true,
}

// classify maps driver errors onto docstore errors
func classify(op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505" && pgErr.ConstraintName == primaryKeyConstraint:
			return fmt.Errorf("%w: %s", docstore.ErrConflict, pgErr.Detail)
		case pgErr.Code == "23505":
			return fmt.Errorf("%w: %s", docstore.ErrUniqueViolation, pgErr.ConstraintName)
		case transientCodes[pgErr.Code], strings.HasPrefix(pgErr.Code, "08"):
			return docstore.Transient(op, err)
		}
		return err
	}

	var connErr *pgconn.ConnectError
	var netErr net.Error
	if errors.As(err, &connErr) || errors.As(err, &netErr) || pgconn.Timeout(err) || pgconn.SafeToRetry(err) {
		log.Debug().Err(err).Str("op", op).Msg("Transient database error")
		return docstore.Transient(op, err)
	}
	return err
}

var fieldName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// compileFilter renders f as a SQL predicate over the doc column, appending
// its parameters to args
func compileFilter(f docstore.Filter, args []any) (string, []any, error) {
	switch f := f.(type) {
	case docstore.EqFilter:
		if f.Field == docstore.IDField {
			return compileIDEq(f.Value, args)
		}
		if !fieldName.MatchString(f.Field) {
			return "", nil, fmt.Errorf("invalid filter field %q", f.Field)
		}
		if f.Value == nil {
			return fmt.Sprintf("(doc->'%s' IS NULL OR doc->'%s' = 'null'::jsonb)", f.Field, f.Field), args, nil
		}
		if s, ok := f.Value.(string); ok {
			args = append(args, s)
			return fmt.Sprintf("(jsonb_typeof(doc->'%s') = 'string' AND doc->>'%s' = $%d)", f.Field, f.Field, len(args)), args, nil
		}
		raw, err := json.Marshal(f.Value)
		if err != nil {
			return "", nil, fmt.Errorf("invalid filter value for %q: %w", f.Field, err)
		}
		args = append(args, string(raw))
		return fmt.Sprintf("doc->'%s' = $%d::jsonb", f.Field, len(args)), args, nil

	case docstore.ContainsFoldFilter:
		if !fieldName.MatchString(f.Field) {
			return "", nil, fmt.Errorf("invalid filter field %q", f.Field)
		}
		args = append(args, strings.ToLower(f.Substr))
		return fmt.Sprintf("(jsonb_typeof(doc->'%s') = 'string' AND strpos(lower(doc->>'%s'), $%d) > 0)", f.Field, f.Field, len(args)), args, nil

	case docstore.OrFilter:
		return compileGroup(f.Filters, " OR ", "FALSE", args)

	case docstore.AndFilter:
		return compileGroup(f.Filters, " AND ", "TRUE", args)

	default:
		return "", nil, fmt.Errorf("unsupported filter %T", f)
	}
}

// compileIDEq matches on the primary key column. A value that is not a
// UUID string can never match.
func compileIDEq(value any, args []any) (string, []any, error) {
	s, ok := value.(string)
	if !ok {
		return "FALSE", args, nil
	}
	id, err := parseID(s)
	if err != nil {
		return "FALSE", args, nil
	}
	args = append(args, id)
	return fmt.Sprintf("id = $%d", len(args)), args, nil
}

func compileGroup(filters []docstore.Filter, sep, empty string, args []any) (string, []any, error) {
	if len(filters) == 0 {
		return empty, args, nil
	}
	parts := make([]string, 0, len(filters))
	for _, child := range filters {
		var sql string
		var err error
		sql, args, err = compileFilter(child, args)
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, sql)
	}
	return "(" + strings.Join(parts, sep) + ")", args, nil
}
