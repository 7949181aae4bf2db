package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"launchdash/internal/modules/launches/domain"
	"launchdash/internal/modules/launches/dto"
	launchesin "launchdash/internal/modules/launches/port/in"
	"launchdash/internal/modules/launches/service"
	"launchdash/internal/modules/launches/usecase"
	"launchdash/internal/platform/clock"
	apperrors "launchdash/internal/platform/errors"
)

type fakeReader struct {
	raw   domain.RawTable
	err   error
	calls int
}

func (f *fakeReader) Read(context.Context, string) (domain.RawTable, error) {
	f.calls++
	return f.raw, f.err
}

type fakeWriter struct {
	path     string
	snapshot domain.Snapshot
}

func (f *fakeWriter) Write(_ context.Context, path string, snapshot domain.Snapshot) error {
	f.path = path
	f.snapshot = snapshot
	return nil
}

type fixedID string

func (f fixedID) New() string { return string(f) }

var loadedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func build(reader *fakeReader, writer *fakeWriter) launchesin.Usecase {
	svc := service.NewLaunchService(clock.Fixed(loadedAt), fixedID("snap-1"), reader, writer)
	return usecase.NewInteractor(svc, nil)
}

func sampleRaw() domain.RawTable {
	return domain.RawTable{
		Header: []string{"Launch Site", "Outcome", "Payload Mass (kg)", "Booster Version Category"},
		Rows: [][]string{
			{"A", "1", "100", "v1.0"},
			{"A", "0", "900", "FT"},
			{"B", "1", "4000", "FT"},
		},
	}
}

func TestLoadCurrentAndSummary(t *testing.T) {
	t.Parallel()
	reader := &fakeReader{raw: sampleRaw()}
	uc := build(reader, &fakeWriter{})

	if _, err := uc.Current(context.Background()); !errors.Is(err, apperrors.ErrNotLoaded) {
		t.Fatalf("expected ErrNotLoaded before load, got %v", err)
	}

	out, err := uc.Load(context.Background(), dto.LoadInput{Location: "launches.csv"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if out.Columns.Class != "Outcome" || !out.HasBooster {
		t.Fatalf("unexpected columns: %+v", out.Columns)
	}
	if !out.PayloadKnown || out.PayloadMin != 100 || out.PayloadMax != 4000 {
		t.Fatalf("unexpected bounds: %+v", out)
	}
	if !out.LoadedAt.Equal(loadedAt) {
		t.Fatalf("unexpected loaded at %s", out.LoadedAt)
	}

	current, err := uc.Current(context.Background())
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if len(current.Records) != 3 || strings.Join(current.Sites, ",") != "A,B" {
		t.Fatalf("unexpected current dataset: %+v", current)
	}

	summary, err := uc.Summary(context.Background())
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if len(summary) != 2 || summary[0].Site != "A" || summary[0].Successes != 1 || summary[0].Failures != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary[0].SuccessRate != 0.5 {
		t.Fatalf("unexpected success rate %v", summary[0].SuccessRate)
	}
}

func TestLoadMissingColumnsIsFatal(t *testing.T) {
	t.Parallel()
	reader := &fakeReader{raw: domain.RawTable{Header: []string{"Launch Site", "class"}}}
	uc := build(reader, &fakeWriter{})
	_, err := uc.Load(context.Background(), dto.LoadInput{Location: "bad.csv"})
	if !errors.Is(err, apperrors.ErrMissingColumns) {
		t.Fatalf("expected ErrMissingColumns, got %v", err)
	}
	if _, err := uc.Current(context.Background()); !errors.Is(err, apperrors.ErrNotLoaded) {
		t.Fatalf("failed load must not install a table, got %v", err)
	}
}

func TestLoadReaderErrorIsWrapped(t *testing.T) {
	t.Parallel()
	boom := errors.New("connection refused")
	uc := build(&fakeReader{err: boom}, &fakeWriter{})
	_, err := uc.Load(context.Background(), dto.LoadInput{Location: "http://example.invalid/x.csv"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped reader error, got %v", err)
	}
}

func TestSnapshotUsesLoadedTable(t *testing.T) {
	t.Parallel()
	writer := &fakeWriter{}
	uc := build(&fakeReader{raw: sampleRaw()}, writer)

	if _, err := uc.Snapshot(context.Background(), dto.SnapshotInput{DBPath: "x.db"}); !errors.Is(err, apperrors.ErrNotLoaded) {
		t.Fatalf("expected ErrNotLoaded, got %v", err)
	}
	if _, err := uc.Load(context.Background(), dto.LoadInput{Location: "launches.csv"}); err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := uc.Snapshot(context.Background(), dto.SnapshotInput{DBPath: " "}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank path, got %v", err)
	}
	out, err := uc.Snapshot(context.Background(), dto.SnapshotInput{DBPath: "exports/launchdash.db"})
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if out.ID != "snap-1" || out.Rows != 3 || out.Path != "exports/launchdash.db" {
		t.Fatalf("unexpected snapshot output: %+v", out)
	}
	if writer.path != "exports/launchdash.db" || writer.snapshot.Location != "launches.csv" {
		t.Fatalf("writer not called with loaded table: %+v", writer)
	}
}
