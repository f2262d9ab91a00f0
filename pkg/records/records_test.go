package records

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tferrors "github.com/matzehuels/tierflow/pkg/errors"
	"github.com/matzehuels/tierflow/pkg/flow"
)

func TestReadCSV(t *testing.T) {
	input := "\xEF\xBB\xBFname, country ,discipline,gender\n" +
		"Ann,USA,Athletics,Female\n" +
		"Bob,FRA,,Male\n" +
		"Cid,\"GER\",\"['Freestyle', 'Relay']\"\n"

	recs, err := ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("got %d records, want 3", len(recs))
	}

	if recs[0]["country"] != "USA" {
		t.Errorf("header should be trimmed and BOM stripped: %v", recs[0])
	}
	if v, ok := recs[1]["discipline"]; !ok || v != nil {
		t.Errorf("empty cell = %v (present %v), want nil", v, ok)
	}
	if _, ok := recs[2]["gender"]; ok {
		t.Error("short row should leave gender absent")
	}
	if recs[2]["discipline"] != "['Freestyle', 'Relay']" {
		t.Errorf("quoted cell = %v", recs[2]["discipline"])
	}

	cleaned := flow.SanitizeAll(recs, flow.DefaultColumns(), flow.DefaultFallbacks())
	if cleaned[1].CategoryRaw != flow.UnknownDiscipline {
		t.Errorf("blank discipline cleaned to %q", cleaned[1].CategoryRaw)
	}
	if cleaned[2].Subgroup != flow.Unknown {
		t.Errorf("missing gender cleaned to %q", cleaned[2].Subgroup)
	}
}

func TestReadCSVEmpty(t *testing.T) {
	recs, err := ReadCSV(strings.NewReader(""))
	if err != nil || len(recs) != 0 {
		t.Errorf("empty input: %v, %v", recs, err)
	}

	recs, err = ReadCSV(strings.NewReader("country,discipline,gender\n"))
	if err != nil || len(recs) != 0 {
		t.Errorf("header only: %v, %v", recs, err)
	}
}

func TestReadJSON(t *testing.T) {
	input := `[
		{"country": "USA", "discipline": "Swimming", "gender": "Male", "code": 7},
		{"country": null, "discipline": "Judo"}
	]`
	recs, err := ReadJSON(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records", len(recs))
	}
	if _, ok := recs[0]["code"].(json.Number); !ok {
		t.Errorf("numbers should decode as json.Number, got %T", recs[0]["code"])
	}
	if got := flow.Coerce(recs[0]["code"]); got != "7" {
		t.Errorf("Coerce(code) = %q", got)
	}
	if recs[1]["country"] != nil {
		t.Errorf("null country = %v", recs[1]["country"])
	}
}

func TestReadJSONInvalid(t *testing.T) {
	_, err := ReadJSON(strings.NewReader(`{"country": "USA"}`))
	if !tferrors.Is(err, tferrors.ErrCodeInvalidInput) {
		t.Errorf("object instead of array: %v", err)
	}
}

func TestReadJSONLines(t *testing.T) {
	input := "{\"country\":\"USA\"}\n\n{\"country\":\"FRA\"}\n"
	recs, err := ReadJSONLines(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadJSONLines: %v", err)
	}
	if len(recs) != 2 || recs[1]["country"] != "FRA" {
		t.Errorf("got %v", recs)
	}

	_, err = ReadJSONLines(strings.NewReader("{\"country\":\"USA\"}\n{oops}\n"))
	if !tferrors.Is(err, tferrors.ErrCodeInvalidInput) {
		t.Errorf("bad line: %v", err)
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"athletes.csv", FormatCSV, false},
		{"ATHLETES.CSV", FormatCSV, false},
		{"athletes.json", FormatJSON, false},
		{"athletes.jsonl", FormatJSONL, false},
		{"athletes.ndjson", FormatJSONL, false},
		{"athletes.xlsx", "", true},
		{"athletes", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := DetectFormat(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DetectFormat(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("DetectFormat(%q) = %q, want %q", tt.path, got, tt.want)
			}
			if err != nil && !tferrors.Is(err, tferrors.ErrCodeInvalidFormat) {
				t.Errorf("error code = %s", tferrors.GetCode(err))
			}
		})
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "athletes.csv")
	if err := os.WriteFile(path, []byte("country,discipline,gender\nUSA,Judo,Male\n"), 0644); err != nil {
		t.Fatal(err)
	}

	recs, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(recs) != 1 || recs[0]["discipline"] != "Judo" {
		t.Errorf("got %v", recs)
	}

	_, err = ReadFile(filepath.Join(dir, "missing.csv"))
	if !tferrors.Is(err, tferrors.ErrCodeFileNotFound) {
		t.Errorf("missing file: %v", err)
	}
}
