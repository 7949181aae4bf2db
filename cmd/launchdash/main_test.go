package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"launchdash/internal/modules/dashboard/dto"
	"launchdash/internal/platform/markdown"
)

const launchesCSV = `Flight Number,Launch Site,class,Payload Mass (kg),Booster Version Category
1,CCAFS LC-40,0,0,v1.0
2,CCAFS LC-40,1,525,v1.0
3,KSC LC-39A,1,2490,FT
4,VAFB SLC-4E,0,9600,B4
5,KSC LC-39A,1,5300,FT
`

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "launches.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSitesCommand(t *testing.T) {
	data := writeCSV(t, launchesCSV)
	out, err := run(t, "sites", "--data", data)
	if err != nil {
		t.Fatalf("sites: %v", err)
	}
	for _, want := range []string{"CCAFS LC-40", "KSC LC-39A", "VAFB SLC-4E", "Total"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestPieCommandJSON(t *testing.T) {
	data := writeCSV(t, launchesCSV)
	out, err := run(t, "pie", "--data", data, "--site", "CCAFS LC-40", "--json")
	if err != nil {
		t.Fatalf("pie: %v", err)
	}
	var fig dto.FigureOutput
	if err := json.Unmarshal([]byte(out), &fig); err != nil {
		t.Fatalf("decode figure: %v\n%s", err, out)
	}
	if fig.Title != "Launch Outcomes for site: CCAFS LC-40" {
		t.Fatalf("unexpected title %q", fig.Title)
	}
	if len(fig.Slices) != 2 || fig.Slices[0].Value != 1 || fig.Slices[1].Value != 1 {
		t.Fatalf("unexpected slices %+v", fig.Slices)
	}
}

func TestPieCommandTable(t *testing.T) {
	data := writeCSV(t, launchesCSV)
	out, err := run(t, "pie", "--data", data)
	if err != nil {
		t.Fatalf("pie: %v", err)
	}
	if !strings.Contains(out, "Total Successful Launches by Site") || !strings.Contains(out, "66.7%") {
		t.Fatalf("unexpected pie output:\n%s", out)
	}
}

func TestScatterCommandDefaultsToDatasetRange(t *testing.T) {
	data := writeCSV(t, launchesCSV)
	out, err := run(t, "scatter", "--data", data, "--json")
	if err != nil {
		t.Fatalf("scatter: %v", err)
	}
	var fig dto.FigureOutput
	if err := json.Unmarshal([]byte(out), &fig); err != nil {
		t.Fatalf("decode figure: %v", err)
	}
	if len(fig.Points) != 5 {
		t.Fatalf("expected every launch in the default range, got %d", len(fig.Points))
	}

	out, err = run(t, "scatter", "--data", data, "--site", "KSC LC-39A", "--low", "3000", "--high", "10000")
	if err != nil {
		t.Fatalf("scatter: %v", err)
	}
	if !strings.Contains(out, "Payload vs Outcome for KSC LC-39A") || !strings.Contains(out, "5300") || strings.Contains(out, "2490") {
		t.Fatalf("unexpected scatter output:\n%s", out)
	}
}

func TestRenderCommandWritesCharts(t *testing.T) {
	data := writeCSV(t, launchesCSV)
	dir := t.TempDir()
	if _, err := run(t, "render", "--data", data, "--out", dir, "--format", "svg"); err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, name := range []string{"pie_all.svg", "scatter_all.svg"} {
		raw, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		if !bytes.Contains(raw, []byte("<svg")) {
			t.Fatalf("%s is not an svg document", name)
		}
	}
	if _, err := run(t, "render", "--data", data, "--out", dir, "--format", "gif"); err == nil {
		t.Fatalf("expected unsupported format error")
	}
}

func TestReportCommandMergesIntoFile(t *testing.T) {
	data := writeCSV(t, launchesCSV)
	out, err := run(t, "report", "--data", data, "--raw")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if !strings.HasPrefix(out, "# Launch Summary") {
		t.Fatalf("unexpected report:\n%s", out)
	}

	path := filepath.Join(t.TempDir(), "notes.md")
	if err := os.WriteFile(path, []byte("---\ntitle: Launches\n---\nMy notes\n"), 0o644); err != nil {
		t.Fatalf("write notes: %v", err)
	}
	for range 2 {
		if _, err := run(t, "report", "--data", data, "--out", path); err != nil {
			t.Fatalf("report --out: %v", err)
		}
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read notes: %v", err)
	}
	meta, body, err := markdown.Split(string(raw))
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if meta["title"] != "Launches" || meta["launchdash_rows"] != 5 {
		t.Fatalf("unexpected front matter %#v", meta)
	}
	if strings.Count(body, markdown.BlockStart) != 1 || !strings.Contains(body, "My notes") {
		t.Fatalf("expected one generated block next to the notes:\n%s", body)
	}
}

func TestSnapshotCommand(t *testing.T) {
	data := writeCSV(t, launchesCSV)
	db := filepath.Join(t.TempDir(), "launches.db")
	out, err := run(t, "snapshot", "--data", data, "--db", db)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if !strings.Contains(out, "5 rows") {
		t.Fatalf("unexpected snapshot output %q", out)
	}
	if _, err := os.Stat(db); err != nil {
		t.Fatalf("snapshot file missing: %v", err)
	}
}

func TestMissingColumnsIsFatal(t *testing.T) {
	data := writeCSV(t, "Launch Site,class\nA,1\n")
	_, err := run(t, "sites", "--data", data)
	if err == nil {
		t.Fatalf("expected missing column error")
	}
	if !strings.Contains(err.Error(), "payload") || !strings.Contains(err.Error(), `"Launch Site"`) {
		t.Fatalf("error should name the missing role and the available columns: %v", err)
	}
}
