package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Word", "Accuracy", "Caught"}
	rows := [][]string{
		{"go", "97.50%", "12"},
		{"hippopotamus", "8.00%", "3"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Word         Accuracy Caught" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "go             97.50%     12" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "hippopotamus    8.00%      3" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableWideRunes(t *testing.T) {
	lines := formatTable([]string{"Word"}, [][]string{{"日本"}, {"go"}}, nil)
	if lines[2] != "go  " {
		t.Fatalf("expected padding to double-width cell, got %q", lines[2])
	}
}

func TestFormatTableRaggedRows(t *testing.T) {
	lines := formatTable([]string{"Word"}, [][]string{{"cat", "3"}, {"go"}}, map[int]bool{1: true})
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Word  " || lines[1] != "cat  3" || lines[2] != "go    " {
		t.Fatalf("unexpected lines: %q", lines)
	}
	if formatTable(nil, nil, nil) != nil {
		t.Fatalf("expected no lines for an empty table")
	}
}
