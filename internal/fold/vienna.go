package fold

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/Ajaykumar525/EteRNA-Chrome-Extension/internal/rna"
)

var (
	// mfeRegex matches RNAfold's structure line, ex: "((((....)))) ( -3.40)"
	mfeRegex = regexp.MustCompile(`^([().]+)\s+\(\s*(-?\d+(?:\.\d+)?)\s*\)`)

	// uboxRegex matches a base pair probability in a dot plot, ex: "1 12 0.9893 ubox".
	// The value is the square root of the probability
	uboxRegex = regexp.MustCompile(`^(\d+)\s+(\d+)\s+([0-9.eE+-]+)\s+ubox\s*$`)
)

// Vienna folds with ViennaRNA's RNAfold executable. Each call runs
// in its own temporary directory, so a Vienna is safe for concurrent use.
type Vienna struct {
	// path to RNAfold
	binary string

	// folding temperature for Fold
	temperature float64
}

// NewVienna returns a Folder that runs the RNAfold at binary
func NewVienna(binary string, temperature float64) *Vienna {
	return &Vienna{binary: binary, temperature: temperature}
}

// Fold returns RNAfold's minimum free energy structure
func (v *Vienna) Fold(ctx context.Context, seq rna.Sequence) (rna.PairList, error) {
	out, err := v.run(ctx, seq, nil, v.temperature, false)
	if err != nil {
		return nil, err
	}

	pairs, _, err := parseMFE(out.stdout)
	if err != nil {
		return nil, err
	}
	if err := pairs.Validate(seq.Len()); err != nil {
		return nil, fmt.Errorf("RNAfold structure doesn't fit %s: %w", seq, err)
	}
	return pairs, nil
}

// DotPlot returns RNAfold's base pair probabilities. RNAfold can't
// fold pseudoknots.
func (v *Vienna) DotPlot(ctx context.Context, seq rna.Sequence, constraints rna.PairList, temp float64, pseudoknots bool) (rna.ProbabilityMatrix, error) {
	if pseudoknots {
		return nil, fmt.Errorf("RNAfold can't fold pseudoknots")
	}
	if constraints != nil {
		if err := constraints.Validate(seq.Len()); err != nil {
			return nil, fmt.Errorf("constraints don't fit %s: %w", seq, err)
		}
	}

	out, err := v.run(ctx, seq, constraints, temp, true)
	if err != nil {
		return nil, err
	}

	bpp, err := parseDotPlot(out.dotPlot)
	if err != nil {
		return nil, err
	}
	if err := bpp.Validate(seq.Len()); err != nil {
		return nil, fmt.Errorf("RNAfold dot plot doesn't fit %s: %w", seq, err)
	}
	return bpp, nil
}

// rnafoldOutput is what one RNAfold run wrote
type rnafoldOutput struct {
	stdout  string
	dotPlot string
}

// run executes RNAfold on seq in a temporary directory
func (v *Vienna) run(ctx context.Context, seq rna.Sequence, constraints rna.PairList, temp float64, partition bool) (rnafoldOutput, error) {
	dir, err := os.MkdirTemp("", "rnafold-*")
	if err != nil {
		return rnafoldOutput{}, fmt.Errorf("failed to make a directory for RNAfold: %v", err)
	}
	defer os.RemoveAll(dir)

	args := []string{"--noPS", "-T", strconv.FormatFloat(temp, 'f', -1, 64)}
	input := seq.String() + "\n"
	if partition {
		args = append(args, "-p")
	}
	if constraints != nil {
		args = append(args, "-C")
		input += constraints.DotBracket() + "\n"
	}

	cmd := exec.CommandContext(ctx, v.binary, args...)
	cmd.Dir = dir
	cmd.Stdin = strings.NewReader(input)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return rnafoldOutput{}, fmt.Errorf("failed to execute %s: %v: %s", v.binary, err, strings.TrimSpace(stderr.String()))
	}

	out := rnafoldOutput{stdout: stdout.String()}
	if partition {
		dp, err := os.ReadFile(filepath.Join(dir, "dot.ps"))
		if err != nil {
			return rnafoldOutput{}, fmt.Errorf("failed to read RNAfold's dot plot: %v", err)
		}
		out.dotPlot = string(dp)
	}
	return out, nil
}

// parseMFE finds the minimum free energy structure and its energy in RNAfold's stdout
func parseMFE(stdout string) (rna.PairList, float64, error) {
	for _, line := range strings.Split(stdout, "\n") {
		match := mfeRegex.FindStringSubmatch(strings.TrimSpace(line))
		if match == nil {
			continue
		}

		pairs, err := rna.ParseDotBracket(match[1])
		if err != nil {
			return nil, 0, fmt.Errorf("failed to parse RNAfold structure %q: %w", match[1], err)
		}
		energy, err := strconv.ParseFloat(match[2], 64)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to parse RNAfold energy %q: %v", match[2], err)
		}
		return pairs, energy, nil
	}
	return nil, 0, fmt.Errorf("no structure in RNAfold output: %q", stdout)
}

// parseDotPlot reads the ubox entries of a dot plot PostScript file into
// a probability matrix. Entries hold square roots of probabilities
func parseDotPlot(ps string) (rna.ProbabilityMatrix, error) {
	var bpp rna.ProbabilityMatrix
	for _, line := range strings.Split(ps, "\n") {
		match := uboxRegex.FindStringSubmatch(strings.TrimSpace(line))
		if match == nil {
			continue
		}

		i, _ := strconv.Atoi(match[1])
		j, _ := strconv.Atoi(match[2])
		sqrtP, err := strconv.ParseFloat(match[3], 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse dot plot entry %q: %v", line, err)
		}
		bpp = append(bpp, float64(i), float64(j), sqrtP*sqrtP)
	}
	return bpp, nil
}
