package rna

import (
	"errors"
	"reflect"
	"testing"
)

func Test_ParseDotBracket(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    PairList
		wantErr error
	}{
		{
			"single hairpin",
			"(((....)))",
			PairList{9, 8, 7, -1, -1, -1, -1, 2, 1, 0},
			nil,
		},
		{
			"two branches",
			"((..))((..))",
			PairList{5, 4, -1, -1, 1, 0, 11, 10, -1, -1, 7, 6},
			nil,
		},
		{
			"pseudoknot level",
			"((..[[..))..]]",
			PairList{9, 8, -1, -1, 13, 12, -1, -1, 1, 0, -1, -1, 5, 4},
			nil,
		},
		{
			"empty",
			"",
			PairList{},
			nil,
		},
		{
			"unclosed bracket",
			"((..)",
			nil,
			ErrMalformed,
		},
		{
			"unopened bracket",
			"..)",
			nil,
			ErrMalformed,
		},
		{
			"unknown character",
			"((xx))",
			nil,
			ErrMalformed,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDotBracket(tt.in)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ParseDotBracket() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseDotBracket() = %v, want %v", []int(got), []int(tt.want))
			}
		})
	}
}

func TestPairList_DotBracket(t *testing.T) {
	structures := []string{
		"(((....)))",
		"((..))((..))",
		"..((((...))..((...)).))..",
		".....",
		"()",
		"((..[[..))..]]",
	}
	for _, s := range structures {
		t.Run(s, func(t *testing.T) {
			pairs, err := ParseDotBracket(s)
			if err != nil {
				t.Fatal(err)
			}
			if err := pairs.Validate(len(s)); err != nil {
				t.Fatalf("Validate() = %v", err)
			}
			if got := pairs.DotBracket(); got != s {
				t.Errorf("DotBracket() = %q, want %q", got, s)
			}
		})
	}
}

func TestPairList_Validate(t *testing.T) {
	tests := []struct {
		name    string
		pairs   PairList
		n       int
		wantErr error
	}{
		{"valid", PairList{9, 8, 7, -1, -1, -1, -1, 2, 1, 0}, 10, nil},
		{"wrong length", PairList{1, 0}, 3, ErrLengthMismatch},
		{"out of range", PairList{3, -1, -1}, 3, ErrIndexRange},
		{"below -1", PairList{-2, -1}, 2, ErrIndexRange},
		{"self pair", PairList{0, -1}, 2, ErrMalformed},
		{"asymmetric", PairList{2, -1, -1}, 3, ErrMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.pairs.Validate(tt.n); !errors.Is(err, tt.wantErr) {
				t.Errorf("PairList.Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPairList_Pairs(t *testing.T) {
	pairs := PairList{11, 10, 9, 8, -1, -1, -1, -1, 3, 2, 1, 0}
	want := []Pair{{0, 11}, {1, 10}, {2, 9}, {3, 8}}

	if got := pairs.Pairs(); !reflect.DeepEqual(got, want) {
		t.Errorf("PairList.Pairs() = %v, want %v", got, want)
	}
	if got := pairs.NumPairs(); got != 4 {
		t.Errorf("PairList.NumPairs() = %d, want 4", got)
	}
	if got := want[0].Span(); got != 11 {
		t.Errorf("Pair.Span() = %d, want 11", got)
	}
}
