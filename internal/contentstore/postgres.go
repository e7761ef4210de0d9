package contentstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"horse_portal_backend/platform/apperr"
)

const (
	documentNotFoundMessage = "document not found"
	documentChangedMessage  = "document was changed by another request"
)

// qb is the query builder with PostgreSQL placeholder format.
var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var bodyFieldPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

var documentColumns = []string{"id", "doc_type", "owner_id", "body", "created_at", "updated_at"}

// PostgresStore implements Store on a single jsonb documents table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a document store backed by pool.
func NewPostgresStore(pool *pgxpool.Pool) (*PostgresStore, error) {
	if pool == nil {
		return nil, errors.New("database pool is required")
	}
	return &PostgresStore{pool: pool}, nil
}

var _ Store = (*PostgresStore)(nil)

// Fetch returns documents matching q.
func (s *PostgresStore) Fetch(ctx context.Context, q Query) ([]Document, error) {
	query, args, err := BuildFetchQuery(q)
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetch %s documents: %w", q.Type, err)
	}
	defer rows.Close()

	docs := make([]Document, 0)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s document: %w", q.Type, err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s documents: %w", q.Type, err)
	}
	return docs, nil
}

// Count returns the number of documents matching q, ignoring paging.
func (s *PostgresStore) Count(ctx context.Context, q Query) (int, error) {
	builder := applyFilters(qb.Select("COUNT(*)").From("documents"), q)
	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var total int
	if err := s.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count %s documents: %w", q.Type, err)
	}
	return total, nil
}

// Get returns one document by id.
func (s *PostgresStore) Get(ctx context.Context, id uuid.UUID) (Document, error) {
	query, args, err := qb.Select(documentColumns...).From("documents").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return Document{}, fmt.Errorf("build get query: %w", err)
	}

	doc, err := scanDocument(s.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Document{}, apperr.NotFound(documentNotFoundMessage)
		}
		return Document{}, fmt.Errorf("get document: %w", err)
	}
	return doc, nil
}

// Create inserts a new document.
func (s *PostgresStore) Create(ctx context.Context, docType string, ownerID *uuid.UUID, body map[string]any) (Document, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return Document{}, fmt.Errorf("encode %s document: %w", docType, err)
	}

	now := time.Now().UTC()
	query, args, err := qb.Insert("documents").
		Columns(documentColumns...).
		Values(uuid.New(), docType, ownerID, raw, now, now).
		Suffix("RETURNING " + joinColumns()).
		ToSql()
	if err != nil {
		return Document{}, fmt.Errorf("build insert query: %w", err)
	}

	doc, err := scanDocument(s.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return Document{}, fmt.Errorf("create %s document: %w", docType, err)
	}
	return doc, nil
}

// Apply merges patch.Set into the body and drops patch.Unset keys.
func (s *PostgresStore) Apply(ctx context.Context, patch PatchSpec) (Document, error) {
	query, args, err := BuildPatchQuery(patch)
	if err != nil {
		return Document{}, err
	}

	doc, err := scanDocument(s.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return Document{}, fmt.Errorf("patch document: %w", err)
		}
		if len(patch.Match) == 0 {
			return Document{}, apperr.NotFound(documentNotFoundMessage)
		}
		// A conditional patch also misses when the row exists but moved on.
		if _, getErr := s.Get(ctx, patch.ID); getErr != nil {
			return Document{}, getErr
		}
		return Document{}, apperr.Conflict(documentChangedMessage)
	}
	return doc, nil
}

// Delete removes a document.
func (s *PostgresStore) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := qb.Delete("documents").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete query: %w", err)
	}

	tag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(documentNotFoundMessage)
	}
	return nil
}

// BuildFetchQuery renders the SELECT for q.
func BuildFetchQuery(q Query) (string, []any, error) {
	if q.Type == "" {
		return "", nil, apperr.BadRequest("document type is required")
	}

	builder := applyFilters(qb.Select(documentColumns...).From("documents"), q)

	order, err := orderExpression(q.OrderBy)
	if err != nil {
		return "", nil, err
	}
	if q.Desc {
		order += " DESC"
	} else {
		order += " ASC"
	}
	builder = builder.OrderBy(order)

	if q.Limit > 0 {
		builder = builder.Limit(uint64(q.Limit))
	}
	if q.Offset > 0 {
		builder = builder.Offset(uint64(q.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("build fetch query: %w", err)
	}
	return query, args, nil
}

// BuildPatchQuery renders the UPDATE for patch.
func BuildPatchQuery(patch PatchSpec) (string, []any, error) {
	setRaw, err := json.Marshal(patch.Set)
	if err != nil {
		return "", nil, fmt.Errorf("encode patch: %w", err)
	}

	bodyExpr := sq.Expr("body || ?::jsonb", setRaw)
	if len(patch.Unset) > 0 {
		bodyExpr = sq.Expr("(body || ?::jsonb) - ?::text[]", setRaw, patch.Unset)
	}

	builder := qb.Update("documents").
		Set("body", bodyExpr).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": patch.ID})
	for _, f := range patch.Match {
		builder = builder.Where(filterCondition(f))
	}

	query, args, err := builder.Suffix("RETURNING " + joinColumns()).ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("build patch query: %w", err)
	}
	return query, args, nil
}

func applyFilters(builder sq.SelectBuilder, q Query) sq.SelectBuilder {
	builder = builder.Where(sq.Eq{"doc_type": q.Type})
	if q.OwnerID != nil {
		builder = builder.Where(sq.Eq{"owner_id": *q.OwnerID})
	}
	for _, f := range q.Filters {
		builder = builder.Where(filterCondition(f))
	}
	return builder
}

func filterCondition(f Filter) sq.Sqlizer {
	if len(f.Values) == 1 {
		return sq.Expr("body #>> ?::text[] = ?", f.Path, f.Values[0])
	}
	return sq.Expr("body #>> ?::text[] = ANY(?::text[])", f.Path, f.Values)
}

func orderExpression(field string) (string, error) {
	switch field {
	case "", "created_at":
		return "created_at", nil
	case "updated_at":
		return "updated_at", nil
	}
	if !bodyFieldPattern.MatchString(field) {
		return "", apperr.BadRequest("invalid sort field")
	}
	return "body->>'" + field + "'", nil
}

func joinColumns() string {
	return strings.Join(documentColumns, ", ")
}

func scanDocument(row pgx.Row) (Document, error) {
	var (
		doc  Document
		raw  []byte
		body map[string]any
	)
	if err := row.Scan(&doc.ID, &doc.Type, &doc.OwnerID, &raw, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
		return Document{}, err
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return Document{}, fmt.Errorf("decode body: %w", err)
	}
	if body == nil {
		body = map[string]any{}
	}
	doc.Body = body
	return doc, nil
}
