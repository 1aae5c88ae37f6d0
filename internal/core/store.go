package core

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDatasetNotFound is returned when a history id does not name a stored
// dataset, including datasets pruned from the history.
var ErrDatasetNotFound = errors.New("dataset not found")

// DBTX is the interface for database operations.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// TxBeginner starts a transaction. Satisfied by *pgxpool.Pool.
type TxBeginner interface {
	DBTX
	Begin(context.Context) (pgx.Tx, error)
}

// StoredFile is a raw uploaded file and its history entry.
type StoredFile struct {
	ID         int64
	UploadID   uuid.UUID
	FileName   string
	UploadedAt time.Time
	Content    []byte
}

// HistoryStore persists uploaded files, newest first, keeping at most a
// fixed number of them.
type HistoryStore interface {
	// Save stores a file and drops everything older than the newest keep
	// entries. ID and UploadedAt are assigned by the store.
	Save(ctx context.Context, f *StoredFile, keep int) error
	// List returns up to limit entries, newest first.
	List(ctx context.Context, limit int) ([]StoredFile, error)
	// Get returns one file with its content, or ErrDatasetNotFound.
	Get(ctx context.Context, id int64) (StoredFile, error)
}

const datasetsSchema = `
CREATE TABLE IF NOT EXISTS datasets (
	id          BIGSERIAL PRIMARY KEY,
	upload_id   UUID NOT NULL UNIQUE,
	file_name   TEXT NOT NULL,
	uploaded_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	content     BYTEA NOT NULL
);
CREATE INDEX IF NOT EXISTS datasets_uploaded_at_idx ON datasets (uploaded_at DESC, id DESC);
`

// PGStore is the PostgreSQL HistoryStore.
type PGStore struct {
	db TxBeginner
}

// NewPGStore returns a store backed by db.
func NewPGStore(db TxBeginner) *PGStore {
	return &PGStore{db: db}
}

// EnsureSchema creates the datasets table if it does not exist.
func (s *PGStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, datasetsSchema); err != nil {
		return fmt.Errorf("create datasets table: %w", err)
	}
	return nil
}

// Save inserts the file and prunes the history in one transaction.
func (s *PGStore) Save(ctx context.Context, f *StoredFile, keep int) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO datasets (upload_id, file_name, content)
		 VALUES ($1, $2, $3)
		 RETURNING id, uploaded_at`,
		f.UploadID, f.FileName, f.Content,
	).Scan(&f.ID, &f.UploadedAt)
	if err != nil {
		return fmt.Errorf("insert dataset: %w", err)
	}

	_, err = tx.Exec(ctx,
		`DELETE FROM datasets
		 WHERE id NOT IN (
			SELECT id FROM datasets ORDER BY uploaded_at DESC, id DESC LIMIT $1
		 )`,
		keep,
	)
	if err != nil {
		return fmt.Errorf("prune history: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// List returns history entries without their content.
func (s *PGStore) List(ctx context.Context, limit int) ([]StoredFile, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, upload_id, file_name, uploaded_at
		 FROM datasets
		 ORDER BY uploaded_at DESC, id DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list datasets: %w", err)
	}
	defer rows.Close()

	files := make([]StoredFile, 0, limit)
	for rows.Next() {
		var f StoredFile
		if err := rows.Scan(&f.ID, &f.UploadID, &f.FileName, &f.UploadedAt); err != nil {
			return nil, fmt.Errorf("scan dataset: %w", err)
		}
		files = append(files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list datasets: %w", err)
	}
	return files, nil
}

// Get loads one stored file.
func (s *PGStore) Get(ctx context.Context, id int64) (StoredFile, error) {
	var f StoredFile
	err := s.db.QueryRow(ctx,
		`SELECT id, upload_id, file_name, uploaded_at, content
		 FROM datasets WHERE id = $1`,
		id,
	).Scan(&f.ID, &f.UploadID, &f.FileName, &f.UploadedAt, &f.Content)
	if errors.Is(err, pgx.ErrNoRows) {
		return StoredFile{}, fmt.Errorf("%w: id %d", ErrDatasetNotFound, id)
	}
	if err != nil {
		return StoredFile{}, fmt.Errorf("get dataset %d: %w", id, err)
	}
	return f, nil
}

// MemoryStore is an in-process HistoryStore for tests and local runs
// without a database.
type MemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	files  []StoredFile // oldest first
	now    func() time.Time
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

func (s *MemoryStore) Save(_ context.Context, f *StoredFile, keep int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	f.ID = s.nextID
	f.UploadedAt = s.now()
	s.files = append(s.files, *f)

	if keep > 0 && len(s.files) > keep {
		s.files = append([]StoredFile(nil), s.files[len(s.files)-keep:]...)
	}
	return nil
}

func (s *MemoryStore) List(_ context.Context, limit int) ([]StoredFile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	files := make([]StoredFile, 0, len(s.files))
	for i := len(s.files) - 1; i >= 0 && len(files) < limit; i-- {
		f := s.files[i]
		f.Content = nil
		files = append(files, f)
	}
	sort.SliceStable(files, func(i, j int) bool {
		return files[i].UploadedAt.After(files[j].UploadedAt)
	})
	return files, nil
}

func (s *MemoryStore) Get(_ context.Context, id int64) (StoredFile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, f := range s.files {
		if f.ID == id {
			return f, nil
		}
	}
	return StoredFile{}, fmt.Errorf("%w: id %d", ErrDatasetNotFound, id)
}
