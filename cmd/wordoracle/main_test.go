package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/wordoracle/internal/oracle"
	"github.com/verte-zerg/wordoracle/internal/store"
)

func TestResolveFetchLangs(t *testing.T) {
	langs, err := resolveFetchLangs("english")
	if err != nil {
		t.Fatalf("resolveFetchLangs failed: %v", err)
	}
	if len(langs) != 1 || langs[0] != "english" {
		t.Fatalf("unexpected langs: %v", langs)
	}

	langs, err = resolveFetchLangs("ALL")
	if err != nil {
		t.Fatalf("resolveFetchLangs failed: %v", err)
	}
	if len(langs) != 25 {
		t.Fatalf("expected 25 languages for all, got %d", len(langs))
	}

	if _, err := resolveFetchLangs("klingon"); err == nil {
		t.Fatalf("expected error for unsupported language")
	}
	if _, err := resolveFetchLangs(""); err == nil {
		t.Fatalf("expected error for empty language")
	}
}

func TestHistoryRows(t *testing.T) {
	runs := []store.Run{
		{
			ID:        1,
			CreatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
			Result: oracle.Result{
				Language:         "english",
				Fraction:         2,
				ReferenceSampled: 50,
				CandidateSampled: 40,
				TruePositives:    30,
				FalsePositives:   10,
				FalseNegatives:   20,
				RecallPct:        60,
				PrecisionPct:     75,
			},
		},
	}
	headers, rows := historyRows(runs)
	if len(headers) != 10 {
		t.Fatalf("expected 10 columns, got %d", len(headers))
	}
	if len(rows) != 1 || len(rows[0]) != len(headers) {
		t.Fatalf("unexpected rows shape: %v", rows)
	}
	row := strings.Join(rows[0], "\t")
	if !strings.Contains(row, "english") || !strings.Contains(row, "60.0000") || !strings.Contains(row, "75.0000") {
		t.Fatalf("unexpected row content: %s", row)
	}
}

func TestIsTerminalWriter(t *testing.T) {
	if isTerminalWriter(&bytes.Buffer{}) {
		t.Fatalf("expected non-file writer to not be a terminal")
	}
	file, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	if err != nil {
		t.Fatalf("create file: %v", err)
	}
	t.Cleanup(func() {
		_ = file.Close()
	})
	if isTerminalWriter(file) {
		t.Fatalf("expected regular file to not be a terminal")
	}
}

func TestDefaultConfigTemplateParses(t *testing.T) {
	template := defaultConfigTemplate()
	if !strings.Contains(template, "[oracle]") {
		t.Fatalf("expected [oracle] section in template:\n%s", template)
	}
}
