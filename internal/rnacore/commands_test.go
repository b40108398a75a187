package rnacore

import (
	"bytes"
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Ajaykumar525/EteRNA-Chrome-Extension/config"
	"github.com/Ajaykumar525/EteRNA-Chrome-Extension/internal/fold"
	"github.com/Ajaykumar525/EteRNA-Chrome-Extension/internal/layout"
	"github.com/Ajaykumar525/EteRNA-Chrome-Extension/internal/rna"
	"github.com/prometheus/client_golang/prometheus"
)

const hairpin = "((((....))))"

func testConfig() *config.Config {
	return &config.Config{
		Layout: config.LayoutConfig{PrimarySpace: 45, PairSpace: 45, CacheSize: 8},
		Fold:   config.FoldConfig{Engine: "file", Temperature: 37},
		Score:  config.ScoreConfig{Transform: "square"},
	}
}

// testSession folds everything into the hairpin with full confidence
func testSession(t *testing.T) *session {
	t.Helper()
	pairs, err := rna.ParseDotBracket(hairpin)
	if err != nil {
		t.Fatal(err)
	}
	return &session{
		conf:      testConfig(),
		folder:    fold.NewFile(pairs, rna.FromPairs(pairs)),
		transform: rna.Square,
	}
}

func mustDesign(t *testing.T, name, seq, structure string) Design {
	t.Helper()
	d, err := newDesign(name, seq, structure)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func Test_session_scoreDesign(t *testing.T) {
	s := testSession(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		design Design
		metric Metric
		check  func(Result) bool
	}{
		{
			"branchiness of the target",
			mustDesign(t, "a", "GGGGAAAACCCC", hairpin),
			Branchiness,
			func(r Result) bool { return math.Abs(*r.Branchiness-0.272727) < 1e-6 && r.EnsembleBranchiness == nil },
		},
		{
			"branchiness of the folded structure",
			mustDesign(t, "a", "GGGGAAAACCCC", ""),
			Branchiness,
			func(r Result) bool { return r.Structure == hairpin && math.Abs(*r.Branchiness-0.272727) < 1e-6 },
		},
		{
			"ensemble",
			mustDesign(t, "a", "GGGGAAAACCCC", ""),
			Ensemble,
			func(r Result) bool { return math.Abs(*r.EnsembleBranchiness-0.272727) < 1e-6 && r.Structure == "" },
		},
		{
			"unpaired",
			mustDesign(t, "a", "GGGGAAAACCCC", ""),
			Unpaired,
			func(r Result) bool { return math.Abs(*r.SumProbUnpaired-4) < 1e-9 },
		},
		{
			"accuracy",
			mustDesign(t, "a", "GGGGAAAACCCC", hairpin),
			Accuracy,
			func(r Result) bool { return math.Abs(*r.TargetExpectedAccuracy-1) < 1e-9 },
		},
		{
			"accuracy of another target",
			mustDesign(t, "a", "GGGGAAAACCCC", "............"),
			Accuracy,
			func(r Result) bool { return math.Abs(*r.TargetExpectedAccuracy-4.0/12) < 1e-9 },
		},
		{
			"basics",
			mustDesign(t, "a", "GGGGAAAACCCC", hairpin),
			BasicCounts,
			func(r Result) bool { return r.Basics.GC == 4 && r.Basics.Pairs == 4 && r.Basics.Unpaired == 4 },
		},
		{
			"all",
			mustDesign(t, "a", "GGGGAAAACCCC", hairpin),
			All,
			func(r Result) bool {
				return r.Branchiness != nil && r.EnsembleBranchiness != nil && r.SumProbUnpaired != nil &&
					r.TargetExpectedAccuracy != nil && r.Basics != nil
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.scoreDesign(ctx, tt.design, tt.metric)
			if err != nil {
				t.Fatal(err)
			}
			if !tt.check(got) {
				t.Errorf("session.scoreDesign() = %+v", got)
			}
		})
	}
}

func Test_session_scoreDesign_structureOnly(t *testing.T) {
	s := testSession(t)
	ctx := context.Background()
	d := mustDesign(t, "a", "", hairpin)

	got, err := s.scoreDesign(ctx, d, Branchiness)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(*got.Branchiness-0.272727) > 1e-6 {
		t.Errorf("branchiness = %v, want 0.272727", *got.Branchiness)
	}

	// no sequence to fold for a dot plot
	if _, err := s.scoreDesign(ctx, d, Ensemble); err == nil {
		t.Errorf("session.scoreDesign() folded a design without a sequence")
	}

	// unless one is given
	s.bpp = rna.FromPairs(d.Target)
	if _, err := s.scoreDesign(ctx, d, Ensemble); err != nil {
		t.Errorf("session.scoreDesign() with a dot plot error = %v", err)
	}
}

func Test_session_scoreDesign_badDotPlot(t *testing.T) {
	s := testSession(t)
	s.bpp = rna.ProbabilityMatrix{1, 40, 0.5}

	_, err := s.scoreDesign(context.Background(), mustDesign(t, "a", "GGGGAAAACCCC", ""), Unpaired)
	if !errors.Is(err, rna.ErrIndexRange) {
		t.Errorf("session.scoreDesign() error = %v, want %v", err, rna.ErrIndexRange)
	}
}

func Test_writeScoreTable(t *testing.T) {
	s := testSession(t)
	results, err := s.scoreDesigns(context.Background(), []Design{mustDesign(t, "hairpin", "GGGGAAAACCCC", hairpin)}, Branchiness)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := writeScoreTable(&buf, Output{Designs: results}); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("writeScoreTable() wrote %d lines, want 2", len(lines))
	}
	if !strings.Contains(lines[1], "0.272727") || !strings.HasPrefix(lines[1], "hairpin") {
		t.Errorf("writeScoreTable() row = %q", lines[1])
	}
}

func Test_writeJSON(t *testing.T) {
	s := testSession(t)
	results, err := s.scoreDesigns(context.Background(), []Design{mustDesign(t, "hairpin", "GGGGAAAACCCC", hairpin)}, All)
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "out.json")
	if err := writeJSON(path, Output{Designs: results}); err != nil {
		t.Fatal(err)
	}
	dat, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{`"branchiness"`, `"ensembleBranchiness"`, `"sumProbUnpaired"`, `"targetExpectedAccuracy"`, `"gc": 4`} {
		if !strings.Contains(string(dat), key) {
			t.Errorf("writeJSON() output is missing %s:\n%s", key, dat)
		}
	}
	if strings.Contains(string(dat), `"layout"`) {
		t.Errorf("writeJSON() wrote a layout that wasn't computed")
	}
}

func Test_session_layoutDesigns(t *testing.T) {
	s := testSession(t)
	reg := prometheus.NewRegistry()
	cache := layout.NewCache("layout", s.conf.Layout.CacheSize, reg)

	custom := writeFile(t, "custom.json", `[{"x": 1, "y": 2}, null, null, null, null, null]`)
	flags := &Flags{
		designs: []Design{
			mustDesign(t, "first", "GGAACC", "((..))"),
			mustDesign(t, "second design", "", "((..))"),
		},
		custom: custom,
	}

	results, err := s.layoutDesigns(context.Background(), flags, cache)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("session.layoutDesigns() = %d results, want 2", len(results))
	}

	for _, r := range results {
		if *r.TreeScore != 16 {
			t.Errorf("%s tree score = %d, want 16", r.Name, *r.TreeScore)
		}
		if p := r.Layout.Points[0]; p.X != 1 || p.Y != 2 {
			t.Errorf("%s first point = %+v, want the custom {1 2}", r.Name, p)
		}
	}

	var buf bytes.Buffer
	if err := writeMetrics(&buf, reg); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`rna_layout_cache_hits_total{cache="layout"} 1`, `rna_layout_cache_misses_total{cache="layout"} 1`} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("writeMetrics() is missing %q:\n%s", want, buf.String())
		}
	}

	buf.Reset()
	if err := writeLayoutTable(&buf, Output{Designs: results}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), ">first") || strings.Count(buf.String(), "position") != 2 {
		t.Errorf("writeLayoutTable() = %s", buf.String())
	}
}

func Test_session_layoutDesigns_badCustom(t *testing.T) {
	s := testSession(t)
	flags := &Flags{
		designs: []Design{mustDesign(t, "a", "", "((..))")},
		custom:  writeFile(t, "custom.json", `[{"x": 1, "y": 2}]`),
	}

	_, err := s.layoutDesigns(context.Background(), flags, layout.NewCache("layout", 0, nil))
	if !errors.Is(err, rna.ErrLengthMismatch) {
		t.Errorf("session.layoutDesigns() error = %v, want %v", err, rna.ErrLengthMismatch)
	}
}

func Test_session_foldDesigns(t *testing.T) {
	s := testSession(t)

	// the target is ignored when folding
	results, err := s.foldDesigns(context.Background(), []Design{mustDesign(t, "a", "GGGGAAAACCCC", "............")})
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Structure != hairpin || len(results[0].DotPlot) != 12 {
		t.Errorf("session.foldDesigns() = %+v", results[0])
	}

	var buf bytes.Buffer
	if err := writeFoldText(&buf, Output{Designs: results}); err != nil {
		t.Fatal(err)
	}
	want := ">a\nGGGGAAAACCCC\n((((....))))\n1 12 1\n2 11 1\n3 10 1\n4 9 1\n"
	if buf.String() != want {
		t.Errorf("writeFoldText() = %q, want %q", buf.String(), want)
	}

	buf.Reset()
	if err := writeDense(&buf, Output{Designs: results}, s); err != nil {
		t.Fatal(err)
	}
	if lines := strings.Count(buf.String(), "\n"); lines < 3+12 {
		t.Errorf("writeDense() wrote %d lines, want a row per position", lines)
	}

	if _, err := s.foldDesigns(context.Background(), []Design{mustDesign(t, "short", "GGGG", "")}); err == nil {
		t.Errorf("session.foldDesigns() folded a sequence the folder can't")
	}
}

func Test_newSession(t *testing.T) {
	conf := testConfig()
	conf.Fold.DotPlot = writeFile(t, "fold.dp", "1 12 0.9\n")
	conf.Fold.Structure = hairpin

	bpp := writeFile(t, "in.dp", "# from a file\n1 6 0.5\n")
	s, err := newSession(&Flags{bpp: bpp}, conf)
	if err != nil {
		t.Fatal(err)
	}
	if len(s.bpp) != 3 || s.transform != rna.Square {
		t.Errorf("newSession() = %+v", s)
	}

	conf.Score.Transform = "cube"
	if _, err := newSession(&Flags{}, conf); err == nil {
		t.Errorf("newSession() accepted an unknown transform")
	}

	conf = testConfig()
	if _, err := newSession(&Flags{bpp: filepath.Join(t.TempDir(), "missing.dp")}, conf); err == nil {
		t.Errorf("newSession() read a missing dot plot")
	}
}

func Test_convert(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"dot-bracket", "((..))", "5,4,-1,-1,1,0", false},
		{"pair list", "5,4,-1,-1,1,0", "((..))", false},
		{"spaces", "5 4 -1 -1 1 0", "((..))", false},
		{"pseudoknot", "((..[[..))..]]", "9,8,-1,-1,13,12,-1,-1,1,0,-1,-1,5,4", false},
		{"pseudoknot back", "9,8,-1,-1,13,12,-1,-1,1,0,-1,-1,5,4", "((..[[..))..]]", false},
		{"asymmetric", "5,4,-1,-1,1,1", "", true},
		{"garbage", "5,x", "", true},
		{"empty", " ", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := convert(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("convert() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("convert() = %v, want %v", got, tt.want)
			}
		})
	}
}

func Test_session_scoreDesign_allMatchesEachMetric(t *testing.T) {
	s := testSession(t)
	s.bpp = rna.ProbabilityMatrix{1, 12, 0.5, 2, 11, 0.7, 3, 10, 0.9, 1, 9, 0.2}
	s.constrain = true
	ctx := context.Background()
	d := mustDesign(t, "a", "GGGGAAAACCCC", hairpin)

	all, err := s.scoreDesign(ctx, d, All)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		metric Metric
		get    func(Result) *float64
	}{
		{Branchiness, func(r Result) *float64 { return r.Branchiness }},
		{Ensemble, func(r Result) *float64 { return r.EnsembleBranchiness }},
		{Unpaired, func(r Result) *float64 { return r.SumProbUnpaired }},
		{Accuracy, func(r Result) *float64 { return r.TargetExpectedAccuracy }},
	}
	for _, tt := range tests {
		t.Run(string(tt.metric), func(t *testing.T) {
			one, err := s.scoreDesign(ctx, d, tt.metric)
			if err != nil {
				t.Fatal(err)
			}
			if got, want := *tt.get(all), *tt.get(one); math.Abs(got-want) > 1e-12 {
				t.Errorf("all %s = %v, want %v", tt.metric, got, want)
			}
		})
	}

	// constrained accuracy ignores the square transform: (0.5+0.7+0.9)*2/12 + 4/12
	if want := (2*(0.5+0.7+0.9) + 4) / 12; math.Abs(*all.TargetExpectedAccuracy-want) > 1e-12 {
		t.Errorf("all accuracy = %v, want %v", *all.TargetExpectedAccuracy, want)
	}
}
