package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/tierflow/pkg/chart"
	tferrors "github.com/matzehuels/tierflow/pkg/errors"
	"github.com/matzehuels/tierflow/pkg/flow"
	"github.com/matzehuels/tierflow/pkg/graph"
)

const athletesCSV = `name,country,discipline,gender,height,weight
Ann,USA,Swimming,Female,180,70
Bob,USA,Swimming,Male,190,85
Cid,USA,Athletics,Male,,80
Dee,FRA,Judo,Female,165,60
Eve,FRA,"Judo, Fencing",Male,175,NaN
Fay,KEN,Athletics,Female,170,55
`

// setupCLI isolates config and cache directories and captures status
// output. It returns the path of a record file and the output buffer.
func setupCLI(t *testing.T) (string, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))

	path := filepath.Join(dir, "athletes.csv")
	if err := os.WriteFile(path, []byte(athletesCSV), 0644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	prev := out
	out = &buf
	t.Cleanup(func() { out = prev })
	return path, &buf
}

func runCLI(t *testing.T, args ...string) error {
	t.Helper()
	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func readGraph(t *testing.T, path string) flow.Graph {
	t.Helper()
	g, err := graph.ReadGraphFile(path)
	if err != nil {
		t.Fatalf("ReadGraphFile(%s): %v", path, err)
	}
	return g
}

func TestBuildCommandWritesFormats(t *testing.T) {
	input, buf := setupCLI(t)
	base := filepath.Join(t.TempDir(), "flow")

	if err := runCLI(t, "build", input, "--format", "json,dot", "-o", base); err != nil {
		t.Fatalf("build: %v", err)
	}

	g := readGraph(t, base+".json")
	if got := g.TotalWeight(); got != 14 {
		// 7 exploded rows, each counted on both hops
		t.Errorf("total weight = %d, want 14", got)
	}
	dot, err := os.ReadFile(base + ".dot")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(dot), `"C:USA"`) {
		t.Errorf("dot output missing country node:\n%s", dot)
	}
	if !strings.Contains(buf.String(), base+".json") {
		t.Errorf("status output should list written files: %s", buf.String())
	}
}

func TestBuildCommandFocus(t *testing.T) {
	input, _ := setupCLI(t)
	base := filepath.Join(t.TempDir(), "fra")

	if err := runCLI(t, "build", input, "--focus", "FRA", "--top-countries", "1", "-o", base); err != nil {
		t.Fatalf("build: %v", err)
	}

	g := readGraph(t, base+".json")
	countries := g.TierNodes(flow.TierCountry)
	if len(countries) != 1 || countries[0] != "C:FRA" {
		t.Errorf("country nodes = %v, want [C:FRA]", countries)
	}
}

func TestBuildCommandZeroTopCountries(t *testing.T) {
	input, _ := setupCLI(t)
	base := filepath.Join(t.TempDir(), "none")

	if err := runCLI(t, "build", input, "--top-countries", "0", "-o", base); err != nil {
		t.Fatalf("build: %v", err)
	}
	g := readGraph(t, base+".json")
	if !g.Empty() || len(g.Links) != 0 {
		t.Errorf("graph = %v / %v, want no nodes and no links", g.Nodes, g.Links)
	}
}

func TestBuildCommandSplitQuoted(t *testing.T) {
	dir := t.TempDir()
	_, _ = setupCLI(t)
	input := filepath.Join(dir, "events.csv")
	data := "country,discipline,gender\nUSA,\"['Swimming', 'Diving']\",Male\n"
	if err := os.WriteFile(input, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	for _, tt := range []struct {
		args []string
		want int
	}{
		{nil, 1},
		{[]string{"--split-quoted"}, 2},
	} {
		base := filepath.Join(dir, "out")
		args := append([]string{"build", input, "-o", base, "--no-cache"}, tt.args...)
		if err := runCLI(t, args...); err != nil {
			t.Fatalf("build %v: %v", tt.args, err)
		}
		if got := len(readGraph(t, base+".json").TierNodes(flow.TierCategory)); got != tt.want {
			t.Errorf("build %v: %d category nodes, want %d", tt.args, got, tt.want)
		}
	}
}

func TestBuildCommandRejectsInvalidOptions(t *testing.T) {
	input, _ := setupCLI(t)

	tests := []struct {
		name string
		args []string
		code tferrors.Code
	}{
		{"negative top", []string{"--top-countries=-1"}, tferrors.ErrCodeInvalidConfig},
		{"unknown variant", []string{"--variant", "medals"}, tferrors.ErrCodeInvalidVariant},
		{"unknown format", []string{"--format", "pdf"}, tferrors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runCLI(t, append([]string{"build", input}, tt.args...)...)
			if got := tferrors.GetCode(err); got != tt.code {
				t.Errorf("code = %q, want %q (err: %v)", got, tt.code, err)
			}
		})
	}
}

func TestBuildCommandStdoutNeedsOneFormat(t *testing.T) {
	input, _ := setupCLI(t)
	if err := runCLI(t, "build", input, "--format", "json,dot", "-o", "-"); err == nil {
		t.Error("expected an error for -o - with two formats")
	}
}

func TestBuildCommandMissingFile(t *testing.T) {
	_, _ = setupCLI(t)
	err := runCLI(t, "build", filepath.Join(t.TempDir(), "missing.csv"))
	if !tferrors.Is(err, tferrors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestBarsCommandJSON(t *testing.T) {
	input, buf := setupCLI(t)
	if err := runCLI(t, "bars", input, "--json", "--top-countries", "2"); err != nil {
		t.Fatal(err)
	}

	var bars []chart.Bar
	if err := json.Unmarshal(buf.Bytes(), &bars); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	want := []chart.Bar{{Country: "USA", Count: 3}, {Country: "FRA", Count: 2}}
	if len(bars) != len(want) {
		t.Fatalf("bars = %+v, want %+v", bars, want)
	}
	for i := range want {
		if bars[i] != want[i] {
			t.Errorf("bars[%d] = %+v, want %+v", i, bars[i], want[i])
		}
	}
}

func TestBarsCommandFocusMissing(t *testing.T) {
	input, buf := setupCLI(t)
	if err := runCLI(t, "bars", input, "--focus", "JPN"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "No records for JPN") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestPointsCommandJSON(t *testing.T) {
	input, buf := setupCLI(t)
	if err := runCLI(t, "points", input, "--json"); err != nil {
		t.Fatal(err)
	}

	var pts []chart.Point
	if err := json.Unmarshal(buf.Bytes(), &pts); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	// Cid has no height and Eve's weight is NaN.
	if len(pts) != 4 {
		t.Fatalf("got %d points, want 4: %+v", len(pts), pts)
	}
	if pts[0] != (chart.Point{Label: "Ann", X: 180, Y: 70}) {
		t.Errorf("pts[0] = %+v", pts[0])
	}
}

func TestPointsCommandTable(t *testing.T) {
	input, buf := setupCLI(t)
	if err := runCLI(t, "points", input, "--limit", "2"); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Ann", "Bob", "2 of 4 points shown"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output missing %q:\n%s", want, buf.String())
		}
	}
}

func TestCacheClearCommand(t *testing.T) {
	input, buf := setupCLI(t)
	if err := runCLI(t, "build", input, "-o", filepath.Join(t.TempDir(), "g")); err != nil {
		t.Fatal(err)
	}
	buf.Reset()

	if err := runCLI(t, "cache", "clear"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Cleared") {
		t.Errorf("output = %q", buf.String())
	}
	dir, _ := cacheDir()
	n, err := countEntries(dir)
	if err != nil || n != 0 {
		t.Errorf("entries after clear = %d (err %v), want 0", n, err)
	}
}

func TestOutputBase(t *testing.T) {
	tests := []struct {
		input, output, want string
	}{
		{"data/athletes.csv", "", "athletes"},
		{"athletes.jsonl", "", "athletes"},
		{"-", "", "tierflow"},
		{"athletes.csv", "out/graph", "out/graph"},
	}
	for _, tt := range tests {
		if got := outputBase(tt.input, tt.output); got != tt.want {
			t.Errorf("outputBase(%q, %q) = %q, want %q", tt.input, tt.output, got, tt.want)
		}
	}
}
