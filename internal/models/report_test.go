package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestResetReportCounts(t *testing.T) {
	report := ResetReport{
		Platform:  "postgresql",
		Tables:    []string{"users", "orders"},
		Sequences: []string{"users_id_seq"},
	}

	if report.TableCount() != 2 {
		t.Errorf("Expected 2 tables, got %d", report.TableCount())
	}

	if report.SequenceCount() != 1 {
		t.Errorf("Expected 1 sequence, got %d", report.SequenceCount())
	}
}

func TestResetReportEmpty(t *testing.T) {
	var report ResetReport

	if report.TableCount() != 0 {
		t.Errorf("Expected 0 tables, got %d", report.TableCount())
	}

	if report.SequenceCount() != 0 {
		t.Errorf("Expected 0 sequences, got %d", report.SequenceCount())
	}
}

func TestResetReportJSONOmitsEmptySequences(t *testing.T) {
	report := ResetReport{
		Platform:  "sqlite",
		Tables:    []string{"users"},
		StartedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Duration:  "1ms",
	}

	data, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("Failed to marshal report: %v", err)
	}

	if strings.Contains(string(data), "sequences") {
		t.Errorf("Expected sequences to be omitted, got %s", data)
	}

	if !strings.Contains(string(data), `"platform":"sqlite"`) {
		t.Errorf("Expected platform in JSON, got %s", data)
	}
}
