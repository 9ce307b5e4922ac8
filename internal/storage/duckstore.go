package storage

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/marcboeker/go-duckdb"
	"github.com/wsi-annotator/backend/internal/geometry"
	"github.com/wsi-annotator/backend/internal/models"
)

// DuckStore persists annotation documents in a DuckDB file. Elements are
// stored as canonical-element JSON so the wire format and the storage format
// stay identical.
type DuckStore struct {
	db     *sql.DB
	dbPath string
}

// NewDuckStore opens (or creates) the annotation database in dataDir.
func NewDuckStore(dataDir string) (*DuckStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return NewDuckStoreAtPath(filepath.Join(dataDir, "annotations.duckdb"))
}

// NewDuckStoreAtPath opens an annotation database at a specific path.
func NewDuckStoreAtPath(dbPath string) (*DuckStore, error) {
	connector, err := duckdb.NewConnector(dbPath, func(execer driver.ExecerContext) error {
		pragmas := []string{
			"PRAGMA memory_limit='512MB'",
			"PRAGMA threads=2",
			"PRAGMA enable_progress_bar=false",
		}
		for _, pragma := range pragmas {
			if _, err := execer.ExecContext(context.Background(), pragma, nil); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create DuckDB connector: %w", err)
	}

	db := sql.OpenDB(connector)

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS annotations (
			id VARCHAR PRIMARY KEY,
			name VARCHAR NOT NULL,
			description VARCHAR,
			elements VARCHAR NOT NULL,
			element_count INTEGER NOT NULL,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create annotations table: %w", err)
	}

	return &DuckStore{db: db, dbPath: dbPath}, nil
}

// Create inserts a new annotation document and returns it.
func (s *DuckStore) Create(name, description string, elements []geometry.Element) (*models.Annotation, error) {
	if elements == nil {
		elements = []geometry.Element{}
	}
	data, err := json.Marshal(elements)
	if err != nil {
		return nil, fmt.Errorf("encoding elements: %w", err)
	}

	now := time.Now().UTC()
	a := &models.Annotation{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		Elements:    elements,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err = s.db.Exec(
		`INSERT INTO annotations (id, name, description, elements, element_count, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Name, a.Description, string(data), len(elements), now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting annotation: %w", err)
	}
	return a, nil
}

// Get fetches one annotation document by id.
func (s *DuckStore) Get(id string) (*models.Annotation, error) {
	row := s.db.QueryRow(
		`SELECT id, name, description, elements, created_at, updated_at
		 FROM annotations WHERE id = ?`, id)

	var a models.Annotation
	var elementsJSON string
	err := row.Scan(&a.ID, &a.Name, &a.Description, &elementsJSON, &a.CreatedAt, &a.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying annotation: %w", err)
	}

	if err := json.Unmarshal([]byte(elementsJSON), &a.Elements); err != nil {
		return nil, fmt.Errorf("decoding elements for %s: %w", id, err)
	}
	return &a, nil
}

// List returns the most recently updated annotations.
func (s *DuckStore) List(limit int) ([]*models.AnnotationInfo, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(
		`SELECT id, name, description, element_count, updated_at
		 FROM annotations ORDER BY updated_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing annotations: %w", err)
	}
	defer rows.Close()

	list := []*models.AnnotationInfo{}
	for rows.Next() {
		var info models.AnnotationInfo
		if err := rows.Scan(&info.ID, &info.Name, &info.Description, &info.ElementCount, &info.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning annotation row: %w", err)
		}
		list = append(list, &info)
	}
	return list, rows.Err()
}

// Update replaces the document's name, description and elements.
func (s *DuckStore) Update(id, name, description string, elements []geometry.Element) (*models.Annotation, error) {
	if elements == nil {
		elements = []geometry.Element{}
	}
	data, err := json.Marshal(elements)
	if err != nil {
		return nil, fmt.Errorf("encoding elements: %w", err)
	}

	now := time.Now().UTC()
	res, err := s.db.Exec(
		`UPDATE annotations
		 SET name = ?, description = ?, elements = ?, element_count = ?, updated_at = ?
		 WHERE id = ?`,
		name, description, string(data), len(elements), now, id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating annotation: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}
	return s.Get(id)
}

// Delete removes one annotation document.
func (s *DuckStore) Delete(id string) error {
	res, err := s.db.Exec(`DELETE FROM annotations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting annotation: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Close closes the underlying database.
func (s *DuckStore) Close() error {
	return s.db.Close()
}
