package core

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/JonMunkholm/equipview/internal/equipment"
	"github.com/JonMunkholm/equipview/internal/logging"
	"github.com/google/uuid"
)

// DefaultHistoryLimit is how many uploads are kept when no limit is set.
const DefaultHistoryLimit = 10

// ServiceOptions tunes a Service. Zero values fall back to defaults.
type ServiceOptions struct {
	HistoryLimit  int
	MaxFileSize   int64
	MaxConcurrent int
	MaxWait       time.Duration
	Timeout       time.Duration
}

// Service ingests telemetry files, keeps the upload history and answers
// analysis and comparison requests.
type Service struct {
	store   HistoryStore
	limiter *UploadLimiter

	historyLimit int
	maxFileSize  int64
	timeout      time.Duration
}

// NewService creates a Service over store.
func NewService(store HistoryStore, opts ServiceOptions) *Service {
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = DefaultHistoryLimit
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 2 * time.Minute
	}
	return &Service{
		store:        store,
		limiter:      NewUploadLimiter(opts.MaxConcurrent, opts.MaxWait),
		historyLimit: opts.HistoryLimit,
		maxFileSize:  opts.MaxFileSize,
		timeout:      opts.Timeout,
	}
}

// HistoryLimit returns how many uploads the history keeps.
func (s *Service) HistoryLimit() int {
	return s.historyLimit
}

// Upload parses and stores a file, then returns its summary with the
// assigned file id and upload time. Files that fail to parse are not stored.
func (s *Service) Upload(ctx context.Context, fileName string, r io.Reader) (equipment.Dataset, error) {
	if r == nil {
		return equipment.Dataset{}, ErrNoFile
	}
	if fileName == "" {
		fileName = "upload.csv"
	}

	if err := s.limiter.Acquire(ctx); err != nil {
		return equipment.Dataset{}, err
	}
	defer s.limiter.Release()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	data, err := readUpload(r, s.maxFileSize)
	if err != nil {
		return equipment.Dataset{}, err
	}

	records, err := ParseCSV(bytes.NewReader(data))
	if err != nil {
		return equipment.Dataset{}, fmt.Errorf("parse %s: %w", fileName, err)
	}
	ds := ComputeStats(records)

	f := &StoredFile{
		UploadID: uuid.New(),
		FileName: fileName,
		Content:  data,
	}
	if err := s.store.Save(ctx, f, s.historyLimit); err != nil {
		return equipment.Dataset{}, fmt.Errorf("store %s: %w", fileName, err)
	}

	ds.FileID = f.ID
	ds.UploadedAt = &f.UploadedAt

	logging.WithFields(ctx, "upload_id", f.UploadID.String(), "file", fileName).
		Info("upload stored", "file_id", f.ID, "rows", ds.TotalCount, "bytes", len(data))

	return ds, nil
}

// History lists stored uploads, newest first.
func (s *Service) History(ctx context.Context) ([]equipment.HistoryItem, error) {
	files, err := s.store.List(ctx, s.historyLimit)
	if err != nil {
		return nil, err
	}

	items := make([]equipment.HistoryItem, len(files))
	for i, f := range files {
		items[i] = equipment.HistoryItem{
			ID:         f.ID,
			UploadID:   f.UploadID.String(),
			File:       f.FileName,
			UploadedAt: f.UploadedAt,
		}
	}
	return items, nil
}

// Analysis re-reads a stored upload and returns its summary.
func (s *Service) Analysis(ctx context.Context, id int64) (equipment.Dataset, error) {
	f, err := s.store.Get(ctx, id)
	if err != nil {
		return equipment.Dataset{}, err
	}

	records, err := ParseCSV(bytes.NewReader(f.Content))
	if err != nil {
		return equipment.Dataset{}, fmt.Errorf("parse %s: %w", f.FileName, err)
	}

	ds := ComputeStats(records)
	ds.FileID = f.ID
	ds.UploadedAt = &f.UploadedAt
	return ds, nil
}

// CompareFiles summarizes two files and reconciles them by equipment name.
// Neither file is stored.
func (s *Service) CompareFiles(ctx context.Context, a, b io.Reader) (equipment.ComparisonResult, error) {
	if a == nil || b == nil {
		return equipment.ComparisonResult{}, fmt.Errorf("both file_a and file_b are required: %w", ErrNoFile)
	}

	if err := s.limiter.Acquire(ctx); err != nil {
		return equipment.ComparisonResult{}, err
	}
	defer s.limiter.Release()

	recA, err := s.parseUpload(a)
	if err != nil {
		return equipment.ComparisonResult{}, fmt.Errorf("file_a: %w", err)
	}
	recB, err := s.parseUpload(b)
	if err != nil {
		return equipment.ComparisonResult{}, fmt.Errorf("file_b: %w", err)
	}

	return compareRecords(recA, recB), nil
}

// CompareStored reconciles two uploads from the history.
func (s *Service) CompareStored(ctx context.Context, idA, idB int64) (equipment.ComparisonResult, error) {
	a, err := s.Analysis(ctx, idA)
	if err != nil {
		return equipment.ComparisonResult{}, err
	}
	b, err := s.Analysis(ctx, idB)
	if err != nil {
		return equipment.ComparisonResult{}, err
	}

	return equipment.ComparisonResult{
		FileA: a,
		FileB: b,
		Diff:  Compare(a.Records, b.Records),
	}, nil
}

// LimiterStatus reports upload slot usage.
func (s *Service) LimiterStatus() UploadLimiterStatus {
	return s.limiter.Status()
}

// Drain waits for in-flight uploads and comparisons to finish.
func (s *Service) Drain(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}

func (s *Service) parseUpload(r io.Reader) ([]equipment.Record, error) {
	data, err := readUpload(r, s.maxFileSize)
	if err != nil {
		return nil, err
	}
	return ParseCSV(bytes.NewReader(data))
}

func compareRecords(a, b []equipment.Record) equipment.ComparisonResult {
	return equipment.ComparisonResult{
		FileA: ComputeStats(a),
		FileB: ComputeStats(b),
		Diff:  Compare(a, b),
	}
}

// readUpload buffers an uploaded file, enforcing maxSize when positive.
func readUpload(r io.Reader, maxSize int64) ([]byte, error) {
	if maxSize > 0 {
		r = &sizeLimitReader{reader: r, remain: maxSize}
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyFile
	}
	return data, nil
}
