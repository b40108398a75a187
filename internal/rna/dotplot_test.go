package rna

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func Test_ParseTransform(t *testing.T) {
	tests := []struct {
		name    string
		want    Transform
		wantErr bool
	}{
		{"identity", Identity, false},
		{"SQUARE", Square, false},
		{"leave-alone", LeaveAlone, false},
		{"cube", Identity, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTransform(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTransform() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseTransform() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTransform_Apply(t *testing.T) {
	for _, p := range []float64{0, 0.25, 0.5, 1} {
		if got := Identity.Apply(p); got != p {
			t.Errorf("Identity.Apply(%v) = %v", p, got)
		}
		if got := LeaveAlone.Apply(p); got != p {
			t.Errorf("LeaveAlone.Apply(%v) = %v", p, got)
		}
		if got := Square.Apply(p); got != p*p {
			t.Errorf("Square.Apply(%v) = %v", p, got)
		}
	}
	if Transform(7).Valid() {
		t.Errorf("Transform(7).Valid() = true")
	}
}

func TestProbabilityMatrix_Validate(t *testing.T) {
	tests := []struct {
		name    string
		m       ProbabilityMatrix
		n       int
		wantErr error
	}{
		{"valid", ProbabilityMatrix{1, 12, 1, 2, 11, 0.5}, 12, nil},
		{"empty", ProbabilityMatrix{}, 4, nil},
		{"partial triple", ProbabilityMatrix{1, 2}, 4, ErrMalformed},
		{"zero index", ProbabilityMatrix{0, 2, 0.5}, 4, ErrIndexRange},
		{"past the end", ProbabilityMatrix{1, 5, 0.5}, 4, ErrIndexRange},
		{"fractional index", ProbabilityMatrix{1.5, 3, 0.5}, 4, ErrMalformed},
		{"self pair", ProbabilityMatrix{2, 2, 0.5}, 4, ErrMalformed},
		{"probability above 1", ProbabilityMatrix{1, 4, 1.5}, 4, ErrMalformed},
		{"negative probability", ProbabilityMatrix{1, 4, -0.1}, 4, ErrMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.m.Validate(tt.n); !errors.Is(err, tt.wantErr) {
				t.Errorf("ProbabilityMatrix.Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestProbabilityMatrix_Dense(t *testing.T) {
	m := ProbabilityMatrix{1, 4, 0.5, 4, 1, 0.25, 2, 3, 1}
	dense := m.Dense(4, Square)

	// repeated entries for (1, 4) accumulate after the transform
	if got, want := dense.At(0, 3), 0.25+0.0625; got != want {
		t.Errorf("Dense().At(0, 3) = %v, want %v", got, want)
	}
	if got := dense.At(3, 0); got != dense.At(0, 3) {
		t.Errorf("Dense() is not symmetric: %v", got)
	}
	if got := dense.At(1, 2); got != 1 {
		t.Errorf("Dense().At(1, 2) = %v, want 1", got)
	}
	if got := dense.At(0, 1); got != 0 {
		t.Errorf("Dense().At(0, 1) = %v, want 0", got)
	}
}

func Test_FromPairs(t *testing.T) {
	pairs, _ := ParseDotBracket("((..))")
	want := ProbabilityMatrix{1, 6, 1, 2, 5, 1}
	if got := FromPairs(pairs); !reflect.DeepEqual(got, want) {
		t.Errorf("FromPairs() = %v, want %v", got, want)
	}
}

func Test_ReadDotPlot(t *testing.T) {
	in := `# dot plot
1 12 0.99

2 11 0.5
`
	got, err := ReadDotPlot(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	want := ProbabilityMatrix{1, 12, 0.99, 2, 11, 0.5}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ReadDotPlot() = %v, want %v", got, want)
	}

	var buf bytes.Buffer
	if err := WriteDotPlot(&buf, got); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "1 12 0.99\n2 11 0.5\n" {
		t.Errorf("WriteDotPlot() = %q", buf.String())
	}

	if _, err := ReadDotPlot(strings.NewReader("1 2\n")); !errors.Is(err, ErrMalformed) {
		t.Errorf("ReadDotPlot() error = %v, want %v", err, ErrMalformed)
	}
	if _, err := ReadDotPlot(strings.NewReader("1 2 x\n")); !errors.Is(err, ErrMalformed) {
		t.Errorf("ReadDotPlot() error = %v, want %v", err, ErrMalformed)
	}
}
