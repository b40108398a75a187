package rnacore

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Ajaykumar525/EteRNA-Chrome-Extension/config"
	"github.com/Ajaykumar525/EteRNA-Chrome-Extension/internal/rna"
	"github.com/spf13/cobra"
)

var (
	// stderr is for logging to Stderr (without an annoying timestamp)
	stderr = log.New(os.Stderr, "", 0)

	// structureRegex matches a line of dot-bracket notation
	structureRegex = regexp.MustCompile(`^[.()\[\]{}<>]+$`)
)

// Design is a named sequence with an optional target structure
type Design struct {
	// Name from the FASTA header, ex: "hairpin" for ">hairpin"
	Name string

	// Seq of the design
	Seq rna.Sequence

	// Target structure, nil if none was given
	Target rna.PairList
}

// Flags contains parsed cobra Flags like "in", "out", "seq", etc that are used by multiple commands.
type Flags struct {
	// the designs to work on, from the input file or the seq/structure flags
	designs []Design

	// path to a dot plot file, empty to fold each design instead
	bpp string

	// the name of the file to write the output to, empty for stdout
	out string

	// path to a JSON file with custom coordinates
	custom string

	// whether to print layout cache metrics
	metrics bool

	// whether to write JSON to stdout rather than a table
	json bool

	// whether to print the dense probability matrix
	dense bool

	// whether to fold with the target structure as a constraint
	constrain bool
}

// parseCmdFlags gathers the designs, dot plot path, output path, etc from a cobra cmd object.
// requireSeq is whether the command needs sequences (not just structures)
func parseCmdFlags(cmd *cobra.Command, args []string, requireSeq bool) (*Flags, *config.Config, error) {
	fs := &Flags{}
	c := config.New()

	in, _ := cmd.Flags().GetString("in")
	seq, _ := cmd.Flags().GetString("seq")
	structure, _ := cmd.Flags().GetString("structure")
	if structure == "" && len(args) > 0 {
		structure = args[0]
	}

	fs.bpp, _ = cmd.Flags().GetString("bpp")
	fs.out, _ = cmd.Flags().GetString("out")
	fs.custom, _ = cmd.Flags().GetString("custom")
	fs.metrics, _ = cmd.Flags().GetBool("metrics")
	fs.json, _ = cmd.Flags().GetBool("json")
	fs.dense, _ = cmd.Flags().GetBool("dense")
	fs.constrain, _ = cmd.Flags().GetBool("constrain")

	switch {
	case in != "":
		designs, err := readDesigns(in)
		if err != nil {
			return nil, nil, err
		}
		fs.designs = designs
	case seq != "" || structure != "":
		d, err := newDesign("input", seq, structure)
		if err != nil {
			return nil, nil, err
		}
		fs.designs = []Design{d}
	default:
		return nil, nil, fmt.Errorf("no input: pass --in, --seq or --structure")
	}

	for _, d := range fs.designs {
		if requireSeq && d.Seq.Len() == 0 {
			return nil, nil, fmt.Errorf("design %s has no sequence", d.Name)
		}
	}

	if c.Verbose {
		stderr.Printf("read %d design(s)", len(fs.designs))
	}
	return fs, c, nil
}

// newDesign makes a Design from a sequence and dot-bracket structure, either
// of which may be empty. When both are set their lengths must match.
func newDesign(name, seq, structure string) (Design, error) {
	d := Design{Name: name, Seq: rna.ParseSequence(strings.TrimSpace(seq))}

	if structure = strings.TrimSpace(structure); structure != "" {
		pairs, err := rna.ParseDotBracket(structure)
		if err != nil {
			return Design{}, fmt.Errorf("design %s: %w", name, err)
		}
		d.Target = pairs
	}

	if d.Seq.Len() > 0 && d.Target != nil && d.Seq.Len() != len(d.Target) {
		return Design{}, fmt.Errorf("design %s: %d bases and %d positions in the structure: %w",
			name, d.Seq.Len(), len(d.Target), rna.ErrLengthMismatch)
	}
	return d, nil
}

// readDesigns reads a FASTA file where each record is a sequence, optionally
// followed by its target structure in dot-bracket notation:
//
//	>hairpin
//	GGGGAAAACCCC
//	((((....))))
func readDesigns(path string) ([]Design, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file %s: %v", path, err)
	}

	var designs []Design
	name, seq, structure := "", "", ""
	flush := func() error {
		if name == "" && seq == "" && structure == "" {
			return nil
		}
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		d, err := newDesign(name, seq, structure)
		if err != nil {
			return err
		}
		designs = append(designs, d)
		name, seq, structure = "", "", ""
		return nil
	}

	for _, line := range strings.Split(string(dat), "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "" || strings.HasPrefix(line, ";"):
			continue
		case strings.HasPrefix(line, ">"):
			if err := flush(); err != nil {
				return nil, err
			}
			name = strings.TrimSpace(line[1:])
		case structureRegex.MatchString(line):
			structure += line
		default:
			seq += line
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}

	if len(designs) == 0 {
		return nil, fmt.Errorf("no designs in %s", path)
	}
	return designs, nil
}
