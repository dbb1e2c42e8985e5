package reader

import (
	"strings"
	"testing"
)

func TestCSVReader_TableFromRecords(t *testing.T) {
	input := "name,score\nalice,10\nbob,12\n"

	doc, err := (&CSVReader{}).Read(strings.NewReader(input), "scores.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Title != "scores" {
		t.Errorf("expected title %q, got %q", "scores", doc.Title)
	}
	if len(doc.Tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(doc.Tables))
	}
	tab := doc.Tables[0]
	if len(tab.Headers) != 2 || tab.Headers[0] != "name" || tab.Headers[1] != "score" {
		t.Errorf("unexpected headers: %v", tab.Headers)
	}
	if len(tab.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(tab.Rows))
	}
	if tab.Rows[1][0] != "bob" || tab.Rows[1][1] != "12" {
		t.Errorf("unexpected second row: %v", tab.Rows[1])
	}
}

func TestCSVReader_EmptyFile(t *testing.T) {
	doc, err := (&CSVReader{}).Read(strings.NewReader(""), "empty.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Tables) != 0 {
		t.Errorf("expected no tables, got %d", len(doc.Tables))
	}
}
