package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func newTestService(limit int) (*Service, *MemoryStore) {
	store := NewMemoryStore()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	var n int
	store.now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Minute)
	}
	return NewService(store, ServiceOptions{HistoryLimit: limit, MaxFileSize: 1 << 16}), store
}

func TestService_UploadAndAnalysis(t *testing.T) {
	svc, _ := newTestService(10)
	ctx := context.Background()

	ds, err := svc.Upload(ctx, "plant.csv", strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if ds.FileID == 0 || ds.UploadedAt == nil {
		t.Errorf("upload should assign file id and time, got %d/%v", ds.FileID, ds.UploadedAt)
	}
	if ds.TotalCount != 3 || ds.TypeDistribution["Pump"] != 2 {
		t.Errorf("stats = %+v", ds)
	}

	again, err := svc.Analysis(ctx, ds.FileID)
	if err != nil {
		t.Fatalf("Analysis() error = %v", err)
	}
	if again.TotalCount != ds.TotalCount || again.Averages != ds.Averages || again.FileID != ds.FileID {
		t.Errorf("Analysis() = %+v, want same summary as upload %+v", again, ds)
	}
}

func TestService_UploadRejectsBadFiles(t *testing.T) {
	svc, store := newTestService(10)
	ctx := context.Background()

	tests := []struct {
		name  string
		input string
		check func(error) bool
	}{
		{"empty", "  \n", func(err error) bool { return errors.Is(err, ErrEmptyFile) }},
		{"missing columns", "Name,Type\nA,B\n", func(err error) bool {
			var m *MissingColumnsError
			return errors.As(err, &m)
		}},
		{"too large", "Equipment Name,Type,Flowrate,Pressure,Temperature\n" + strings.Repeat("A,T,1,2,3\n", 10000),
			func(err error) bool { return errors.Is(err, ErrFileTooLarge) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Upload(ctx, "bad.csv", strings.NewReader(tt.input))
			if !tt.check(err) {
				t.Errorf("Upload() error = %v", err)
			}
		})
	}

	if items, _ := store.List(ctx, 10); len(items) != 0 {
		t.Errorf("rejected files should not be stored, history has %d", len(items))
	}
}

func TestService_HistoryKeepsNewest(t *testing.T) {
	svc, _ := newTestService(3)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		if _, err := svc.Upload(ctx, fmt.Sprintf("f%d.csv", i), strings.NewReader(sampleCSV)); err != nil {
			t.Fatalf("Upload %d: %v", i, err)
		}
	}

	items, err := svc.History(ctx)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	var files []string
	for _, it := range items {
		files = append(files, it.File)
		if it.UploadID == "" {
			t.Errorf("item %d has no upload id", it.ID)
		}
	}
	if got := strings.Join(files, ","); got != "f5.csv,f4.csv,f3.csv" {
		t.Errorf("history = %s, want f5.csv,f4.csv,f3.csv", got)
	}

	if _, err := svc.Analysis(ctx, 1); !errors.Is(err, ErrDatasetNotFound) {
		t.Errorf("pruned dataset: err = %v, want ErrDatasetNotFound", err)
	}
}

func TestService_CompareFiles(t *testing.T) {
	svc, store := newTestService(10)
	ctx := context.Background()

	b := "Equipment Name,Type,Flowrate,Pressure,Temperature\nPump-1,Pump,125.5,5.2,110\nHeater-9,Heater,1,1,300\n"
	res, err := svc.CompareFiles(ctx, strings.NewReader(sampleCSV), strings.NewReader(b))
	if err != nil {
		t.Fatalf("CompareFiles() error = %v", err)
	}

	if res.FileA.TotalCount != 3 || res.FileB.TotalCount != 2 {
		t.Errorf("counts = %d/%d, want 3/2", res.FileA.TotalCount, res.FileB.TotalCount)
	}
	if res.Diff.Summary.InBoth != 1 || res.Diff.Summary.OnlyInA != 2 || res.Diff.Summary.OnlyInB != 1 {
		t.Errorf("summary = %+v", res.Diff.Summary)
	}
	if items, _ := store.List(ctx, 10); len(items) != 0 {
		t.Error("comparison should not store files")
	}

	if _, err := svc.CompareFiles(ctx, strings.NewReader(sampleCSV), nil); !errors.Is(err, ErrNoFile) {
		t.Errorf("missing file_b: err = %v, want ErrNoFile", err)
	}
}

func TestService_CompareStored(t *testing.T) {
	svc, _ := newTestService(10)
	ctx := context.Background()

	a, _ := svc.Upload(ctx, "a.csv", strings.NewReader(sampleCSV))
	b, _ := svc.Upload(ctx, "b.csv", strings.NewReader(sampleCSV))

	res, err := svc.CompareStored(ctx, a.FileID, b.FileID)
	if err != nil {
		t.Fatalf("CompareStored() error = %v", err)
	}
	for _, row := range res.Diff.Rows {
		if row.Status != "same" {
			t.Errorf("%s status = %q, want same", row.EquipmentName, row.Status)
		}
	}

	if _, err := svc.CompareStored(ctx, a.FileID, 999); !errors.Is(err, ErrDatasetNotFound) {
		t.Errorf("err = %v, want ErrDatasetNotFound", err)
	}
}

func TestService_UploadBusy(t *testing.T) {
	svc := NewService(NewMemoryStore(), ServiceOptions{MaxConcurrent: 1, MaxWait: 20 * time.Millisecond})
	ctx := context.Background()

	if err := svc.limiter.Acquire(ctx); err != nil {
		t.Fatal(err)
	}
	defer svc.limiter.Release()

	_, err := svc.Upload(ctx, "a.csv", strings.NewReader(sampleCSV))
	if !errors.Is(err, ErrTooManyUploads) {
		t.Errorf("err = %v, want ErrTooManyUploads", err)
	}
	if MapError(err).Code != "UPL002" {
		t.Errorf("code = %q, want UPL002", MapError(err).Code)
	}
}
