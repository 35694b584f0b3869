package history

import (
	"bytes"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/dtnitsch/seo-meta-lint/models"
	dbpkg "github.com/dtnitsch/seo-meta-lint/pkg/db"
)

func TestWriteRunsEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := writeRuns(&buf, nil); err != nil {
		t.Fatalf("writeRuns() error = %v", err)
	}
	if !strings.Contains(buf.String(), "No runs found") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestWriteRuns(t *testing.T) {
	runs := []dbpkg.Run{
		{RunID: "run-a", CreatedAt: time.Now(), Source: "pages.json", PageCount: 3, ErrorCount: 1},
		{RunID: "run-b", CreatedAt: time.Now(), Source: "about.html", PageCount: 1},
	}
	var buf bytes.Buffer
	if err := writeRuns(&buf, runs); err != nil {
		t.Fatalf("writeRuns() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"run-a", "run-b", "pages.json", "Total: 2 runs"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if !headerRuled(out, "warnings") {
		t.Errorf("runs table has no header row:\n%s", out)
	}
}

// headerRuled reports whether the line holding header is followed by a
// border line, which tablewriter only draws under a header.
func headerRuled(out, header string) bool {
	lines := strings.Split(out, "\n")
	for i, line := range lines {
		if !strings.Contains(strings.ToLower(line), strings.ToLower(header)) || i+1 >= len(lines) {
			continue
		}
		next := strings.TrimSpace(lines[i+1])
		return next != "" && strings.Trim(next, "─━┼├┤│+-|=: ") == ""
	}
	return false
}


func TestWriteRun(t *testing.T) {
	run := &dbpkg.Run{RunID: "run-a", CreatedAt: time.Now(), Source: "pages.json", PageCount: 2}
	pages := []dbpkg.RunPage{
		{PageIndex: 0, Source: "pages.json#0"},
		{PageIndex: 1, Source: "pages.json#1"},
	}
	findings := []dbpkg.StoredFinding{
		{
			PageIndex: sql.NullInt64{Int64: 1, Valid: true},
			Finding:   models.Finding{Field: "canonical_url", Severity: models.SeverityError, Code: "relative_url", Message: "relative URL"},
		},
		{
			Finding: models.Finding{Field: "title", Severity: models.SeverityWarning, Code: "title_duplicate", Message: "shared title"},
		},
	}

	var buf bytes.Buffer
	if err := writeRun(&buf, run, pages, findings); err != nil {
		t.Fatalf("writeRun() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Run run-a", "pages.json#1", "relative_url", "(batch)", "title_duplicate"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if !headerRuled(out, "severity") {
		t.Errorf("findings table has no header row:\n%s", out)
	}
}
