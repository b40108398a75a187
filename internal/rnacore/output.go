package rnacore

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/Ajaykumar525/EteRNA-Chrome-Extension/internal/layout"
	"github.com/Ajaykumar525/EteRNA-Chrome-Extension/internal/rna"
	"github.com/Ajaykumar525/EteRNA-Chrome-Extension/internal/score"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Result is everything computed for one design.
type Result struct {
	// Name of the design. In >hairpin FASTA its "hairpin"
	Name string `json:"name"`

	// Seq of the design, empty if only a structure was given
	Seq string `json:"seq,omitempty"`

	// Structure that was scored or drawn, the target or the folded one
	Structure string `json:"structure,omitempty"`

	// Branchiness of Structure
	Branchiness *float64 `json:"branchiness,omitempty"`

	// EnsembleBranchiness of the dot plot
	EnsembleBranchiness *float64 `json:"ensembleBranchiness,omitempty"`

	// SumProbUnpaired of the dot plot
	SumProbUnpaired *float64 `json:"sumProbUnpaired,omitempty"`

	// TargetExpectedAccuracy of Structure against the dot plot
	TargetExpectedAccuracy *float64 `json:"targetExpectedAccuracy,omitempty"`

	// Basics are pair type and unpaired counts of Structure
	Basics *score.Basics `json:"basics,omitempty"`

	// TreeScore is the score of the structure's root loop
	TreeScore *int `json:"treeScore,omitempty"`

	// Layout is the drawing of Structure
	Layout *layout.Layout `json:"layout,omitempty"`

	// DotPlot is the folder's pairing probabilities as 1-indexed triples
	DotPlot rna.ProbabilityMatrix `json:"dotplot,omitempty"`
}

// Output is a struct containing the results of a command.
type Output struct {
	// Time, ex: "2018/01/01 20:41:00"
	Time string `json:"time"`

	// Execution is the number of seconds it took to execute the command
	Execution float64 `json:"execution"`

	// Designs results, in input order
	Designs []Result `json:"designs"`
}

// newOutput stamps results with the current time and how long they took since start
func newOutput(start time.Time, results []Result) Output {
	// same format as log.Println https://golang.org/pkg/log/#Println
	t := time.Now()
	stamp := fmt.Sprintf(
		"%d/%02d/%02d %02d:%02d:%02d",
		t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(),
	)

	return Output{
		Time:      stamp,
		Execution: time.Since(start).Seconds(),
		Designs:   results,
	}
}

// write sends the output to the file in flags, as JSON, or to stdout.
// table writes the human readable version
func write(flags *Flags, out Output, table func(io.Writer, Output) error) error {
	if flags.out != "" {
		return writeJSON(flags.out, out)
	}
	if flags.json {
		return encodeJSON(os.Stdout, out)
	}
	return table(os.Stdout, out)
}

// writeJSON writes the output to the filename requested
func writeJSON(filename string, out Output) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %v", filename, err)
	}
	defer f.Close()

	if err := encodeJSON(f, out); err != nil {
		return fmt.Errorf("failed to write output file %s: %v", filename, err)
	}
	return f.Close()
}

// encodeJSON writes indented JSON to w
func encodeJSON(w io.Writer, out Output) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// writeScoreTable writes a row of scores per design
func writeScoreTable(w io.Writer, out Output) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "name\tstructure\tbranchiness\tensemble\tunpaired\taccuracy\tGC\tAU\tGU\tpairs\tunpaired bases")

	for _, r := range out.Designs {
		row := []string{
			r.Name,
			r.Structure,
			formatFloat(r.Branchiness),
			formatFloat(r.EnsembleBranchiness),
			formatFloat(r.SumProbUnpaired),
			formatFloat(r.TargetExpectedAccuracy),
		}
		if b := r.Basics; b != nil {
			row = append(row, strconv.Itoa(b.GC), strconv.Itoa(b.AU), strconv.Itoa(b.GU), strconv.Itoa(b.Pairs), strconv.Itoa(b.Unpaired))
		} else {
			row = append(row, "-", "-", "-", "-", "-")
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// writeLayoutTable writes the coordinates of every position of every design
func writeLayoutTable(w io.Writer, out Output) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)

	for _, r := range out.Designs {
		if r.Layout == nil {
			continue
		}
		fmt.Fprintf(tw, ">%s\tscore %d\t\t\t\t\n", r.Name, *r.TreeScore)

		pairs, _ := rna.ParseDotBracket(r.Structure)
		seq := rna.ParseSequence(r.Seq)
		fmt.Fprintln(tw, "position\tbase\tpair\tx\ty\t")
		for i, p := range r.Layout.Points {
			base := "-"
			if i < seq.Len() {
				base = seq.At(i).String()
			}
			pair := -1
			if i < len(pairs) {
				pair = pairs[i]
			}
			fmt.Fprintf(tw, "%d\t%s\t%d\t%.2f\t%.2f\t\n", i, base, pair, p.X, p.Y)
		}
	}
	return tw.Flush()
}

// writeFoldText writes each design's structure followed by its dot plot
func writeFoldText(w io.Writer, out Output) error {
	for _, r := range out.Designs {
		if _, err := fmt.Fprintf(w, ">%s\n%s\n%s\n", r.Name, r.Seq, r.Structure); err != nil {
			return err
		}
		if err := rna.WriteDotPlot(w, r.DotPlot); err != nil {
			return err
		}
	}
	return nil
}

// writeMetrics dumps every metric in the registry in the Prometheus text format
func writeMetrics(w io.Writer, reg prometheus.Gatherer) error {
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %v", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("failed to write metrics: %v", err)
		}
	}
	return nil
}

// formatFloat rounds f for the tables, "-" if it wasn't computed
func formatFloat(f *float64) string {
	if f == nil {
		return "-"
	}
	return strconv.FormatFloat(*f, 'f', 6, 64)
}
