package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseArray(t *testing.T) {
	records, err := Parse([]byte(`[{"id":"txtName","type":"RequiredFieldValidator"}]`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(records) != 1 || records[0].ID != "txtName" {
		t.Errorf("unexpected records: %+v", records)
	}
}

func TestParseSingleObject(t *testing.T) {
	records, err := Parse([]byte(`{"id":"pnlRoot","type":"Panel"}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(records) != 1 || records[0].Type != "Panel" {
		t.Errorf("unexpected records: %+v", records)
	}
}

func TestParseInvalid(t *testing.T) {
	if _, err := Parse([]byte("not json")); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestRenderTree(t *testing.T) {
	records := []Record{
		{
			ID:   "pnlForm",
			Type: "Panel",
			Children: []Record{
				{
					ID:   "rfvName",
					Type: "RequiredFieldValidator",
					Attributes: map[string]string{
						"controltovalidate": "txtName",
						"errormessage":      "Required",
					},
				},
			},
		},
	}

	out := RenderTree(records)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d:\n%s", len(lines), out)
	}
	if lines[0] != "Panel pnlForm" {
		t.Errorf("root line = %q", lines[0])
	}
	// Child is indented and attributes print in sorted key order.
	want := "  RequiredFieldValidator rfvName [controltovalidate=txtName errormessage=Required]"
	if lines[1] != want {
		t.Errorf("child line = %q, want %q", lines[1], want)
	}
}

func TestRenderJSONRoundTrip(t *testing.T) {
	records := []Record{{ID: "a", Type: "Validator", Attributes: map[string]string{"k": "v"}}}
	out, err := RenderJSON(records)
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}

	back, err := Parse([]byte(out))
	if err != nil {
		t.Fatalf("re-parse rendered JSON: %v", err)
	}
	if len(back) != 1 || back[0].Attributes["k"] != "v" {
		t.Errorf("round-trip mismatch: %+v", back)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	if err := os.WriteFile(path, []byte(`[{"id":"x","type":"T"}]`), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	records, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("expected 1 record, got %d", len(records))
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
