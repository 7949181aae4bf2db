package out_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	launchesout "launchdash/internal/modules/launches/adapter/out"
	apperrors "launchdash/internal/platform/errors"
)

const sampleCSV = "\ufeffFlight Number,Launch Site,class,Payload Mass (kg)\n1,CCAFS LC-40,0,0\n2,KSC LC-39A,1,\"2,500\"\n3,VAFB SLC-4E\n"

func TestCSVTableReaderReadsFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "launches.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	raw, err := launchesout.NewCSVTableReader(nil, time.Second).Read(context.Background(), path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if diff := cmp.Diff([]string{"Flight Number", "Launch Site", "class", "Payload Mass (kg)"}, raw.Header); diff != "" {
		t.Fatalf("header (-want +got):\n%s", diff)
	}
	if len(raw.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(raw.Rows))
	}
	if raw.Rows[1][3] != "2,500" {
		t.Fatalf("quoted cell not preserved: %q", raw.Rows[1][3])
	}
	if len(raw.Rows[2]) != 2 {
		t.Fatalf("short row should be kept as-is, got %v", raw.Rows[2])
	}
}

func TestCSVTableReaderMissingFile(t *testing.T) {
	t.Parallel()
	_, err := launchesout.NewCSVTableReader(nil, time.Second).Read(context.Background(), filepath.Join(t.TempDir(), "nope.csv"))
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCSVTableReaderEmptyInput(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	_, err := launchesout.NewCSVTableReader(nil, time.Second).Read(context.Background(), path)
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCSVTableReaderFetchesURL(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/launches.csv" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(sampleCSV))
	}))
	defer srv.Close()

	reader := launchesout.NewCSVTableReader(srv.Client(), time.Second)
	raw, err := reader.Read(context.Background(), srv.URL+"/launches.csv")
	if err != nil {
		t.Fatalf("read url: %v", err)
	}
	if len(raw.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(raw.Rows))
	}

	if _, err := reader.Read(context.Background(), srv.URL+"/missing.csv"); err == nil {
		t.Fatalf("expected error for non-200 response")
	}
}
