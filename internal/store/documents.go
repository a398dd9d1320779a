package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// AddDocument inserts an uploaded document record and returns its id.
func (s *Store) AddDocument(ctx context.Context, doc Document) (int64, error) {
	if doc.Filename == "" {
		return 0, errors.New("filename is required")
	}
	now := time.Now().UTC()
	uploadDate := doc.UploadDate
	if uploadDate.IsZero() {
		uploadDate = now
	}
	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO documents (
            filename, file_type, upload_date, file_size, word_count, analysis_data, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		doc.Filename,
		doc.FileType,
		uploadDate.UTC().Format(time.RFC3339Nano),
		doc.FileSize,
		doc.WordCount,
		nullableString(doc.AnalysisData),
		now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("insert document: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

// SetDocumentAnalysis records the analysis blob for a document. Analysis is
// written once; subsequent calls overwrite the previous blob.
func (s *Store) SetDocumentAnalysis(ctx context.Context, id int64, analysis string) error {
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE documents SET analysis_data = ? WHERE id = ?`,
		nullableString(analysis),
		id,
	)
	if err != nil {
		return fmt.Errorf("update analysis: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("document %d not found", id)
	}
	return nil
}

// GetDocument fetches a document by id. Returns nil when absent.
func (s *Store) GetDocument(ctx context.Context, id int64) (*Document, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT `+documentColumns+` FROM documents WHERE id = ?`,
		id,
	)
	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	return doc, nil
}

// ListDocuments returns all documents ordered by upload date, newest first.
func (s *Store) ListDocuments(ctx context.Context) ([]*Document, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+documentColumns+` FROM documents ORDER BY upload_date DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	var docs []*Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

const documentColumns = "id, filename, file_type, upload_date, file_size, word_count, analysis_data, created_at"

func scanDocument(scanner interface{ Scan(dest ...any) error }) (*Document, error) {
	var (
		doc        Document
		uploadRaw  string
		createdRaw string
		analysis   sql.NullString
	)
	if err := scanner.Scan(
		&doc.ID,
		&doc.Filename,
		&doc.FileType,
		&uploadRaw,
		&doc.FileSize,
		&doc.WordCount,
		&analysis,
		&createdRaw,
	); err != nil {
		return nil, err
	}
	doc.UploadDate = parseTimestamp(uploadRaw)
	doc.CreatedAt = parseTimestamp(createdRaw)
	doc.AnalysisData = analysis.String
	return &doc, nil
}
