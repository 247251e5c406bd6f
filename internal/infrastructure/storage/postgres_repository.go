package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"CompanyBrief/internal/domain"
	"CompanyBrief/internal/ports"
)

// PostgresRepository loads curated research documents from Postgres. The
// curation service writes one row per (job, category, locator) into
// curated_documents; this side only reads.
type PostgresRepository struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ ports.DatasetSource = (*PostgresRepository)(nil)

// Open connects to Postgres via the given DSN.
func Open(dsn string) (*PostgresRepository, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return NewPostgresRepository(db), nil
}

// NewPostgresRepository wires an existing sql.DB.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// LoadDatasets fetches every curated document for the job and groups them by
// category. An unknown category row is skipped; a job with no rows yields
// empty datasets, which the pipeline treats as a recognized empty state.
func (r *PostgresRepository) LoadDatasets(ctx context.Context, jobID string) (map[domain.Category]domain.CategoryDataset, error) {
	if r.db == nil {
		return map[domain.Category]domain.CategoryDataset{}, nil
	}

	query, args, err := r.builder.
		Select("category", "url", "title", "content", "raw_content", "query", "overall_score").
		From("curated_documents").
		Where(sq.Eq{"job_id": jobID}).
		OrderBy("category", "url").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build dataset query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query curated documents: %w", err)
	}
	defer rows.Close()

	datasets := make(map[domain.Category]domain.CategoryDataset)
	for rows.Next() {
		var (
			category string
			doc      domain.Document
		)
		if err := rows.Scan(&category, &doc.URL, &doc.Title, &doc.Content, &doc.RawContent, &doc.Query, &doc.Evaluation.OverallScore); err != nil {
			return nil, fmt.Errorf("scan curated document: %w", err)
		}

		cat := domain.Category(category)
		if !knownCategory(cat) {
			continue
		}
		if datasets[cat] == nil {
			datasets[cat] = domain.CategoryDataset{}
		}
		datasets[cat][doc.URL] = doc
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return datasets, nil
}

// Close releases the underlying connection pool.
func (r *PostgresRepository) Close() error {
	if r.db == nil {
		return nil
	}
	if err := r.db.Close(); err != nil {
		return fmt.Errorf("close postgres: %w", err)
	}
	return nil
}

func knownCategory(cat domain.Category) bool {
	for _, known := range domain.Categories {
		if cat == known {
			return true
		}
	}
	return false
}
